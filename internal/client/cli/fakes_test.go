package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/config"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/credstore"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/services"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/session"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/logging"
)

// ---- fake session ----

type fakeSession struct {
	s         session.Session
	stored    string
	loginErr  error
	logoutErr error
	boots     int
}

func (f *fakeSession) Bootstrap(context.Context) session.Session {
	f.boots++
	if f.stored != "" {
		f.s = session.Session{Token: f.stored, IsAuthenticated: true}
	}
	return f.s
}

func (f *fakeSession) Login(_ context.Context, token string) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.stored = token
	f.s = session.Session{Token: token, IsAuthenticated: true}
	return nil
}

func (f *fakeSession) Logout(context.Context) error {
	f.stored = ""
	f.s = session.Session{}
	return f.logoutErr
}

func (f *fakeSession) Snapshot() session.Session { return f.s }
func (f *fakeSession) IsAuthenticated() bool     { return f.s.IsAuthenticated }

// ---- fake services ----

type fakeAuth struct {
	token   string
	authErr error

	user    *models.UserDTO
	userErr error

	registered *models.RegisterRequest
	regErr     error

	lastUser, lastPass string
}

func (f *fakeAuth) Authenticate(_ context.Context, username, password string) (string, error) {
	f.lastUser, f.lastPass = username, password
	return f.token, f.authErr
}

func (f *fakeAuth) Register(_ context.Context, req models.RegisterRequest) (*models.UserDTO, error) {
	f.registered = &req
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.UserDTO{ID: 9, Username: req.Username, Email: req.Email, Role: req.Role}, nil
}

func (f *fakeAuth) CurrentUser(context.Context) (*models.UserDTO, error) {
	return f.user, f.userErr
}

type fakeLeaderboard struct {
	rows []models.UserSummary
	err  error

	students    []models.UserSummary
	studentsErr error
	rosterCalls int
}

func (f *fakeLeaderboard) FetchAllUserScores(context.Context) ([]models.UserSummary, error) {
	return f.rows, f.err
}

func (f *fakeLeaderboard) FetchStudents(context.Context) ([]models.UserSummary, error) {
	f.rosterCalls++
	return f.students, f.studentsErr
}

type fakeProfiles struct {
	current   models.UserProfile
	fetchErr  error
	updateErr error
	submitted []models.UserProfile
}

func (f *fakeProfiles) FetchUserProfile(context.Context) (models.UserProfile, error) {
	return f.current, f.fetchErr
}

func (f *fakeProfiles) UpdateUserProfile(_ context.Context, p models.UserProfile) (models.UserProfile, error) {
	f.submitted = append(f.submitted, p)
	if f.updateErr != nil {
		return models.UserProfile{}, f.updateErr
	}
	f.current = p
	return p, nil
}

type fakeStore struct {
	st  credstore.Status
	err error
}

func (f *fakeStore) Status(context.Context) (credstore.Status, error) { return f.st, f.err }

// ---- app builder ----

type testApp struct {
	*App
	sess     *fakeSession
	auth     *fakeAuth
	board    *fakeLeaderboard
	profiles *fakeProfiles
	store    *fakeStore
	out      *bytes.Buffer
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	ta := &testApp{
		sess:     &fakeSession{},
		auth:     &fakeAuth{},
		board:    &fakeLeaderboard{},
		profiles: &fakeProfiles{},
		store:    &fakeStore{st: credstore.Status{InSync: true}},
		out:      &bytes.Buffer{},
	}
	ta.App = &App{
		config:             cfg,
		logger:             logging.Nop(),
		session:            ta.sess,
		store:              ta.store,
		authService:        ta.auth,
		leaderboardService: ta.board,
		profileService:     ta.profiles,
		editor:             services.NewProfileEditor(ta.profiles),
		reader:             bufio.NewReader(strings.NewReader(input)),
		out:                ta.out,
	}
	return ta
}

// stubInputs answers text prompts from texts and password prompts from
// passwords, in order.
func stubInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
}
