package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/client"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/config"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/credstore"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/services"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/session"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// sessionController is the part of session.Controller the CLI drives.
type sessionController interface {
	Bootstrap(ctx context.Context) session.Session
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	Snapshot() session.Session
	IsAuthenticated() bool
}

type storeStatus interface {
	Status(ctx context.Context) (credstore.Status, error)
}

type App struct {
	config             *config.Config
	logger             logging.Logger
	session            sessionController
	store              storeStatus
	authService        services.AuthService
	leaderboardService services.LeaderboardService
	profileService     services.ProfileService
	editor             *services.ProfileEditor
	closeFn            func() error

	userName string
	Mode     Mode
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the local credential store under cfg.DataDir and wires the
// gateway, services and session controller around it.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	store, closeFn, err := credstore.Open(ctx, cfg.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	gw := client.NewGateway(cfg.BaseURL, store,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithRetry(uint64(cfg.RetryMax), cfg.RetryBase),
		client.WithLogger(logger),
	)

	as := services.NewAuthService(gw)
	ps := services.NewProfileService(gw)

	opts := []session.Option{session.WithLogger(logger)}
	if cfg.ValidateOnStart {
		opts = append(opts, session.WithValidator(as))
	}
	ctrl := session.New(store, opts...)
	ctrl.Attach(gw, cfg.UnauthorizedPolicy)

	a := &App{
		config:             cfg,
		logger:             logger,
		session:            ctrl,
		store:              store,
		authService:        as,
		leaderboardService: services.NewLeaderboardService(gw),
		profileService:     ps,
		editor:             services.NewProfileEditor(ps),
		closeFn:            closeFn,
		reader:             bufio.NewReader(os.Stdin),
		out:                os.Stdout,
	}
	ctrl.Subscribe(a.onSessionChange)
	return a, nil
}

func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

// Run restores the previous session and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.logger.Error(ctx, "closing credential store", "error", err)
		}
	}()

	if s := a.session.Bootstrap(ctx); s.IsAuthenticated {
		a.loadUserName(ctx)
	}

	fmt.Fprintln(a.out, "Welcome to Elementopia CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) onSessionChange(s session.Session) {
	if !s.IsAuthenticated {
		a.userName = ""
	}
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.logger.Info(context.Background(), fmt.Sprintf("Switched to %s mode", mode))
	}
}

// track updates the connectivity mode from the outcome of a server call.
func (a *App) track(err error) {
	switch {
	case err == nil:
		a.setMode(ModeOnline)
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
	case client.StatusCode(err) != 0:
		a.setMode(ModeOnline)
	}
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// report prints err for the user. When a 401 has ended the session it adds
// a prompt to log in again.
func (a *App) report(err error) {
	fmt.Fprintln(a.out, "Error:", err.Error())
	if errors.Is(err, client.ErrUnauthorized) && !a.session.IsAuthenticated() {
		fmt.Fprintln(a.out, "Session expired. Please log in again.")
	}
}
