package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/leaderboard"
)

// Leaderboard prints career scores. args is an optional sort key ("score",
// the default, or "name") followed by an optional name filter.
func (a *App) Leaderboard(ctx context.Context, args []string) error {
	sortBy := "score"
	if len(args) > 0 && (args[0] == "score" || args[0] == "name") {
		sortBy, args = args[0], args[1:]
	}
	query := strings.Join(args, " ")

	rows, err := a.leaderboardService.FetchAllUserScores(ctx)
	a.track(err)
	if err != nil {
		a.report(err)
		return err
	}

	all := rows
	rows = leaderboard.Filter(rows, query)
	if sortBy == "name" {
		rows = leaderboard.SortByName(rows)
	} else {
		rows = leaderboard.SortByScore(rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No players found.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tSCORE")
	for _, e := range leaderboard.RankAmong(rows, all) {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", e.Rank, e.FullName(), e.CareerTotalScore)
	}
	return tw.Flush()
}

var errNotTeacher = errors.New("not a teacher")

// Students prints the class roster by name, each student with their place
// on the leaderboard. Only teachers may see it.
func (a *App) Students(ctx context.Context) error {
	user, err := a.authService.CurrentUser(ctx)
	a.track(err)
	if err != nil {
		a.report(err)
		return err
	}
	if !user.IsTeacher() {
		fmt.Fprintln(a.out, "Only teachers can see the class roster.")
		return errNotTeacher
	}

	rows, err := a.leaderboardService.FetchStudents(ctx)
	a.track(err)
	if err != nil {
		a.report(err)
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No students yet.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tSCORE")
	for _, e := range leaderboard.Rank(leaderboard.SortByName(rows)) {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\n", e.Rank, e.UserID, e.FullName(), e.CareerTotalScore)
	}
	return tw.Flush()
}
