package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/client"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/session"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/logging"
)

func TestIsLoggedIn_FollowsSession(t *testing.T) {
	a := newTestApp(t, "")
	assert.False(t, a.isLoggedIn())

	a.sess.s = session.Session{Token: "abc123", IsAuthenticated: true}
	assert.True(t, a.isLoggedIn())
}

func TestSetMode_ChangesAndLogsOnce(t *testing.T) {
	a := newTestApp(t, "")
	var buf bytes.Buffer
	a.logger = logging.NewText(&buf, slog.LevelInfo)

	a.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, a.Mode)
	assert.Contains(t, buf.String(), "Switched to online mode")

	buf.Reset()
	a.setMode(ModeOnline)
	assert.Empty(t, buf.String(), "no log when mode does not change")

	a.setMode(ModeOffline)
	assert.Equal(t, ModeOffline, a.Mode)
	assert.Contains(t, buf.String(), "Switched to offline mode")
}

func TestTrack(t *testing.T) {
	a := newTestApp(t, "")

	a.track(&client.ConnectivityError{URL: "x", Err: errors.New("down")})
	assert.Equal(t, ModeOffline, a.Mode)

	a.track(&client.ServerError{Status: 500})
	assert.Equal(t, ModeOnline, a.Mode, "any HTTP answer means the server is up")

	a.setMode(ModeOffline)
	a.track(errors.New("validation"))
	assert.Equal(t, ModeOffline, a.Mode, "local errors say nothing about connectivity")

	a.track(nil)
	assert.Equal(t, ModeOnline, a.Mode)
}

func TestGetStatus(t *testing.T) {
	a := newTestApp(t, "")
	assert.Equal(t, "", a.getStatus())

	a.Mode = ModeOnline
	assert.Equal(t, "(online)", a.getStatus())

	a.userName = "ava"
	assert.Equal(t, "(ava online)", a.getStatus())
}

func TestOnSessionChange_ClearsUserName(t *testing.T) {
	a := newTestApp(t, "")
	a.userName = "ava"
	a.onSessionChange(session.Session{Token: "t", IsAuthenticated: true})
	assert.Equal(t, "ava", a.userName)
	a.onSessionChange(session.Session{})
	assert.Empty(t, a.userName)
}

func TestReport_SessionExpiredHint(t *testing.T) {
	a := newTestApp(t, "")
	err := &client.SessionExpiredError{Endpoint: "/user/current-user"}

	a.report(err)
	assert.Contains(t, a.out.String(), "Session expired. Please log in again.")

	a.out.Reset()
	a.sess.s = session.Session{Token: "t", IsAuthenticated: true}
	a.report(err)
	assert.NotContains(t, a.out.String(), "Session expired", "fail-call policy keeps the session")
}

func TestRun_BootstrapsAndExits(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	a := newTestApp(t, "exit\n")
	a.sess.stored = "abc123"
	a.auth.user = &models.UserDTO{Username: "ava"}

	a.Run(context.Background())

	assert.Equal(t, 1, a.sess.boots)
	assert.Equal(t, "ava", a.userName)
	assert.Contains(t, a.out.String(), "Welcome to Elementopia CLI")
}
