package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/client"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/credstore"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/services"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/session"
)

// ---- register ----

func TestRegister_Success(t *testing.T) {
	a := newTestApp(t, "")
	stubInputs(t, []string{"Ava", "Jones", "ava@school.test", "ava", "teacher"}, []string{"secret", "secret"})

	require.NoError(t, a.Register(context.Background()))

	require.NotNil(t, a.auth.registered)
	assert.Equal(t, models.RegisterRequest{
		FirstName: "Ava", LastName: "Jones", Email: "ava@school.test",
		Username: "ava", Password: "secret", Role: models.RoleTeacher,
	}, *a.auth.registered)
	assert.Contains(t, a.out.String(), "You can now log in as ava")
	assert.False(t, a.isLoggedIn(), "registering does not sign in")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	a := newTestApp(t, "")
	stubInputs(t, []string{"Ava", "Jones", "ava@school.test", "ava"}, []string{"secret", "other"})

	assert.ErrorIs(t, a.Register(context.Background()), errPasswordMismatch)
	assert.Nil(t, a.auth.registered)
}

func TestRegister_ServerMessageShown(t *testing.T) {
	a := newTestApp(t, "")
	a.auth.regErr = &services.RegistrationError{Message: "Username already exists"}
	stubInputs(t, []string{"Ava", "Jones", "ava@school.test", "ava", ""}, []string{"secret", "secret"})

	require.Error(t, a.Register(context.Background()))
	assert.Equal(t, models.RoleStudent, a.auth.registered.Role)
	assert.Contains(t, a.out.String(), "Username already exists")
}

// ---- login / logout ----

func TestLogin_Success(t *testing.T) {
	a := newTestApp(t, "")
	a.auth.token = "abc123"
	a.auth.user = &models.UserDTO{Username: "user1"}
	stubInputs(t, []string{"user1"}, []string{"pw"})

	require.NoError(t, a.Login(context.Background()))

	assert.Equal(t, "user1", a.auth.lastUser)
	assert.Equal(t, "pw", a.auth.lastPass)
	assert.Equal(t, session.Session{Token: "abc123", IsAuthenticated: true}, a.sess.s)
	assert.Equal(t, "user1", a.userName)
	assert.Equal(t, ModeOnline, a.Mode)
	assert.Contains(t, a.out.String(), "Welcome, user1!")
}

func TestLogin_AuthFailure_NoSession(t *testing.T) {
	a := newTestApp(t, "")
	a.auth.authErr = &services.AuthenticationError{
		Message: "No response from server at https://api.test",
		Err:     &client.ConnectivityError{URL: "https://api.test/user/login", Err: errors.New("down")},
	}
	stubInputs(t, []string{"user1"}, []string{"pw"})

	require.Error(t, a.Login(context.Background()))

	assert.False(t, a.isLoggedIn())
	assert.Equal(t, ModeOffline, a.Mode)
	assert.Contains(t, a.out.String(), "No response from server at https://api.test")
}

func TestLogin_StoreFailure_NoSession(t *testing.T) {
	a := newTestApp(t, "")
	a.auth.token = "abc123"
	a.sess.loginErr = errors.New("disk full")
	stubInputs(t, []string{"user1"}, []string{"pw"})

	require.Error(t, a.Login(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.userName)
}

func TestLogin_InputError(t *testing.T) {
	a := newTestApp(t, "")
	stubInputs(t, nil, nil)
	assert.ErrorIs(t, a.Login(context.Background()), io.EOF)
}

func TestLogout(t *testing.T) {
	a := newTestApp(t, "")
	a.sess.s = session.Session{Token: "abc123", IsAuthenticated: true}
	a.userName = "ava"

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.userName)
	assert.Contains(t, a.out.String(), "Logged out.")
}

func TestLogout_StoreErrorStillSignsOut(t *testing.T) {
	a := newTestApp(t, "")
	a.sess.s = session.Session{Token: "abc123", IsAuthenticated: true}
	a.sess.logoutErr = errors.New("clean-fail")

	require.Error(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, a.out.String(), "clean-fail")
}

func TestWhoami(t *testing.T) {
	a := newTestApp(t, "")
	a.auth.user = &models.UserDTO{ID: 3, Username: "ava", Email: "a@b.com", Role: "Student"}

	require.NoError(t, a.Whoami(context.Background()))
	out := a.out.String()
	assert.Contains(t, out, "Username: ava")
	assert.Contains(t, out, "Role:     Student")

	a.out.Reset()
	a.auth.userErr = &services.ProfileFetchError{Message: "Failed to fetch current user"}
	require.Error(t, a.Whoami(context.Background()))
	assert.Contains(t, a.out.String(), "Failed to fetch current user")
}

// ---- leaderboard ----

func scores() []models.UserSummary {
	return []models.UserSummary{
		{UserID: 1, FirstName: "Ava", LastName: "Jones", CareerTotalScore: 12210},
		{UserID: 2, FirstName: "Liam", LastName: "Johnson", CareerTotalScore: 12720},
		{UserID: 3, FirstName: "Noah", LastName: "Brown", CareerTotalScore: 900},
	}
}

func TestLeaderboard_ByScore(t *testing.T) {
	a := newTestApp(t, "")
	a.board.rows = scores()

	require.NoError(t, a.Leaderboard(context.Background(), nil))

	out := a.out.String()
	liam, ava := strings.Index(out, "Liam Johnson"), strings.Index(out, "Ava Jones")
	require.True(t, liam >= 0 && ava >= 0, out)
	assert.Less(t, liam, ava)
	assert.Contains(t, out, "12720")
}

func TestLeaderboard_ByNameWithFilter(t *testing.T) {
	a := newTestApp(t, "")
	a.board.rows = scores()

	require.NoError(t, a.Leaderboard(context.Background(), []string{"name", "jo"}))

	out := a.out.String()
	assert.NotContains(t, out, "Noah")
	assert.Less(t, strings.Index(out, "Liam Johnson"), strings.Index(out, "Ava Jones"))
}

func TestLeaderboard_ByNameShowsScoreRanks(t *testing.T) {
	a := newTestApp(t, "")
	a.board.rows = scores()

	require.NoError(t, a.Leaderboard(context.Background(), []string{"name"}))

	var got [][]string
	for _, line := range strings.Split(strings.TrimSpace(a.out.String()), "\n")[1:] {
		f := strings.Fields(line)
		got = append(got, []string{f[0], f[2]})
	}
	assert.Equal(t, [][]string{{"3", "Brown"}, {"1", "Johnson"}, {"2", "Jones"}}, got)
}

func TestLeaderboard_FilterKeepsScoreRank(t *testing.T) {
	a := newTestApp(t, "")
	a.board.rows = scores()

	require.NoError(t, a.Leaderboard(context.Background(), []string{"score", "ava"}))

	assert.Regexp(t, `(?m)^2\s+Ava Jones\s+12210$`, a.out.String())
}

func TestStudents_TeacherSeesRosterByName(t *testing.T) {
	a := newTestApp(t, "")
	a.auth.user = &models.UserDTO{ID: 4, Username: "teacher", Role: models.RoleTeacher}
	a.board.students = scores()

	require.NoError(t, a.Students(context.Background()))

	out := a.out.String()
	brown, johnson := strings.Index(out, "Noah Brown"), strings.Index(out, "Liam Johnson")
	require.True(t, brown >= 0 && johnson >= 0, out)
	assert.Less(t, brown, johnson)
	assert.Regexp(t, `(?m)^1\s+2\s+Liam Johnson\s+12720$`, out)
}

func TestStudents_StudentIsRefused(t *testing.T) {
	a := newTestApp(t, "")
	a.auth.user = &models.UserDTO{ID: 1, Username: "ava", Role: models.RoleStudent}

	err := a.Students(context.Background())

	require.ErrorIs(t, err, errNotTeacher)
	assert.Zero(t, a.board.rosterCalls)
	assert.Contains(t, a.out.String(), "Only teachers can see the class roster.")
}

func TestStudents_FetchError(t *testing.T) {
	a := newTestApp(t, "")
	a.auth.user = &models.UserDTO{ID: 4, Username: "teacher", Role: models.RoleTeacher}
	a.board.studentsErr = &services.LeaderboardFetchError{Message: "You do not have permission to do that.", Err: client.ErrForbidden}

	require.Error(t, a.Students(context.Background()))
	assert.Contains(t, a.out.String(), "You do not have permission to do that.")
}

func TestLeaderboard_NoMatches(t *testing.T) {
	a := newTestApp(t, "")
	a.board.rows = scores()
	require.NoError(t, a.Leaderboard(context.Background(), []string{"zed"}))
	assert.Contains(t, a.out.String(), "No players found.")
}

func TestLeaderboard_Error(t *testing.T) {
	a := newTestApp(t, "")
	a.board.err = &services.LeaderboardFetchError{Message: "You do not have permission to do that.", Err: client.ErrForbidden}
	require.Error(t, a.Leaderboard(context.Background(), nil))
	assert.Contains(t, a.out.String(), "You do not have permission to do that.")
}

// ---- profile ----

var avaProfile = models.UserProfile{FirstName: "Ava", LastName: "Jones", Email: "ava@school.test", Username: "ava"}

func stubEdit(t *testing.T, answers []string, ok bool) {
	t.Helper()
	origGD, origC := getWithDefault, confirm
	t.Cleanup(func() { getWithDefault, confirm = origGD, origC })

	getWithDefault = func(_ *bufio.Reader, _, def string, _ io.Writer) (string, error) {
		v := answers[0]
		answers = answers[1:]
		if v == "" {
			return def, nil
		}
		return v, nil
	}
	confirm = func(*bufio.Reader, string, io.Writer) (bool, error) { return ok, nil }
}

func TestProfile_Show(t *testing.T) {
	a := newTestApp(t, "")
	a.profiles.current = avaProfile

	require.NoError(t, a.Profile(context.Background()))
	assert.Contains(t, a.out.String(), "Email:      ava@school.test")
}

func TestEdit_SaveSendsWholeRecord(t *testing.T) {
	a := newTestApp(t, "")
	a.profiles.current = avaProfile
	a.userName = "ava"
	stubEdit(t, []string{"", "Smith", "", "ava2"}, true)

	require.NoError(t, a.Edit(context.Background()))

	require.Len(t, a.profiles.submitted, 1)
	assert.Equal(t, models.UserProfile{FirstName: "Ava", LastName: "Smith", Email: "ava@school.test", Username: "ava2"}, a.profiles.submitted[0])
	assert.Equal(t, "ava2", a.userName)
	assert.Contains(t, a.out.String(), "Profile updated successfully!")
}

func TestEdit_DeclineDiscards(t *testing.T) {
	a := newTestApp(t, "")
	a.profiles.current = avaProfile
	stubEdit(t, []string{"Eve", "", "", ""}, false)

	require.NoError(t, a.Edit(context.Background()))

	assert.Empty(t, a.profiles.submitted)
	assert.Equal(t, avaProfile, a.editor.Draft())
	assert.Contains(t, a.out.String(), "Changes discarded.")
}

func TestEdit_NoChanges(t *testing.T) {
	a := newTestApp(t, "")
	a.profiles.current = avaProfile
	stubEdit(t, []string{"", "", "", ""}, true)

	require.NoError(t, a.Edit(context.Background()))
	assert.Empty(t, a.profiles.submitted)
	assert.Contains(t, a.out.String(), "No changes.")
}

func TestEdit_SaveFailure(t *testing.T) {
	a := newTestApp(t, "")
	a.profiles.current = avaProfile
	a.profiles.updateErr = &services.ProfileUpdateError{Message: "Failed to update profile"}
	stubEdit(t, []string{"Eve", "", "", ""}, true)

	require.Error(t, a.Edit(context.Background()))
	assert.Contains(t, a.out.String(), "Failed to update profile")
	assert.Equal(t, avaProfile, a.editor.Draft())
}

// ---- status ----

func TestStatus(t *testing.T) {
	a := newTestApp(t, "")
	a.sess.s = session.Session{Token: "abc123", IsAuthenticated: true}
	a.store.st = credstore.Status{Primary: true, Secondary: false, InSync: false}

	require.NoError(t, a.Status(context.Background()))

	out := a.out.String()
	assert.Contains(t, out, "Session:  authenticated")
	assert.Contains(t, out, "secure=saved plain=empty")
	assert.Contains(t, out, "disagree")
	assert.NotContains(t, out, "abc123")
}

func TestStatus_StoreError(t *testing.T) {
	a := newTestApp(t, "")
	a.store.err = errors.New("locked")
	require.Error(t, a.Status(context.Background()))
	assert.Contains(t, a.out.String(), "Session:  unauthenticated")
}
