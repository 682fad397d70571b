// Package leaderboard orders and filters score rows on the client. The
// server returns rows in no particular order.
package leaderboard

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
)

// Entry is a ranked row.
type Entry struct {
	Rank int
	models.UserSummary
}

// SortByScore returns a copy of rows ordered by career score, highest
// first. Ties keep their server order.
func SortByScore(rows []models.UserSummary) []models.UserSummary {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b models.UserSummary) int {
		return cmp.Compare(b.CareerTotalScore, a.CareerTotalScore)
	})
	return out
}

// SortByName returns a copy of rows ordered by last name, then first name,
// ignoring case.
func SortByName(rows []models.UserSummary) []models.UserSummary {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b models.UserSummary) int {
		if c := cmp.Compare(strings.ToLower(a.LastName), strings.ToLower(b.LastName)); c != 0 {
			return c
		}
		return cmp.Compare(strings.ToLower(a.FirstName), strings.ToLower(b.FirstName))
	})
	return out
}

// Filter keeps rows whose first or last name contains query, ignoring
// case. An empty query keeps everything.
func Filter(rows []models.UserSummary, query string) []models.UserSummary {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return slices.Clone(rows)
	}
	out := make([]models.UserSummary, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.FirstName), q) ||
			strings.Contains(strings.ToLower(r.LastName), q) ||
			strings.Contains(strings.ToLower(r.FullName()), q) {
			out = append(out, r)
		}
	}
	return out
}

// Rank pairs each row with its place by score among rows. Equal scores
// share a rank ("1, 2, 2, 4"). Rows keep the order they came in.
func Rank(rows []models.UserSummary) []Entry {
	return RankAmong(rows, rows)
}

// RankAmong ranks each row against all, the set rows were filtered from,
// so a row keeps its real place whatever it was sorted or filtered by.
func RankAmong(rows, all []models.UserSummary) []Entry {
	scores := make([]int64, len(all))
	for i, r := range all {
		scores[i] = r.CareerTotalScore
	}
	slices.Sort(scores)

	out := make([]Entry, len(rows))
	for i, r := range rows {
		// rows scoring at most r sit below the insertion point of r+1
		atMost, _ := slices.BinarySearch(scores, r.CareerTotalScore+1)
		out[i] = Entry{Rank: len(scores) - atMost + 1, UserSummary: r}
	}
	return out
}
