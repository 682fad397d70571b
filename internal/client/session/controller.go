package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/client"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/common"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/logging"
)

// TokenStore is the credential store as seen by the controller.
type TokenStore interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Validator checks a restored token against the server.
type Validator interface {
	CurrentUser(ctx context.Context) (*models.UserDTO, error)
}

// ExpiryNotifier is implemented by client.Gateway.
type ExpiryNotifier interface {
	OnSessionExpired(fn client.ExpiredFunc)
}

type Controller struct {
	store     TokenStore
	validator Validator
	logger    logging.Logger
	now       func() time.Time

	// opMu serialises transitions, including the store I/O they perform.
	opMu sync.Mutex

	mu      sync.RWMutex
	session Session

	subMu  sync.Mutex
	subs   map[int]func(Session)
	nextID int
}

type Option func(*Controller)

func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithValidator makes Bootstrap check a restored token with the server.
func WithValidator(v Validator) Option {
	return func(c *Controller) { c.validator = v }
}

func New(store TokenStore, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		logger: logging.Nop(),
		now:    time.Now,
		subs:   make(map[int]func(Session)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Attach applies policy to 401 responses seen by n. An unknown policy
// behaves as PolicyLogout.
func (c *Controller) Attach(n ExpiryNotifier, policy Policy) {
	if p, err := ParsePolicy(string(policy)); err == nil {
		policy = p
	}
	switch policy {
	case PolicyFailCall:
		n.OnSessionExpired(nil)
	default:
		n.OnSessionExpired(func(ctx context.Context, rejected string) {
			c.Expire(ctx, rejected)
		})
	}
}

func (c *Controller) Snapshot() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Controller) Token() string { return c.Snapshot().Token }

func (c *Controller) IsAuthenticated() bool { return c.Snapshot().IsAuthenticated }

func (c *Controller) State() State { return c.Snapshot().State() }

// Subscribe registers fn to receive the session after every transition.
// fn runs on the goroutine that made the transition and must not call
// Login, Logout, Expire or Bootstrap.
func (c *Controller) Subscribe(fn func(Session)) (cancel func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Controller) set(s Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

func (c *Controller) notify(s Session) {
	c.subMu.Lock()
	fns := make([]func(Session), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// Bootstrap restores a stored token. Failures are logged, never returned:
// the worst outcome is an unauthenticated session.
//
// With a validator the restored token is checked by fetching the current
// user. Only a 401 ends the session; an unreachable server leaves it
// in place.
func (c *Controller) Bootstrap(ctx context.Context) Session {
	c.opMu.Lock()
	token, err := c.store.Load(ctx)
	if err != nil {
		c.opMu.Unlock()
		c.logger.Warn(ctx, "token load failed, starting signed out", "error", err)
		return c.Snapshot()
	}
	if token == "" {
		c.opMu.Unlock()
		c.logger.Debug(ctx, "no stored token")
		return c.Snapshot()
	}

	restored := Session{Token: token, IsAuthenticated: true}
	c.set(restored)
	c.opMu.Unlock()

	info := Inspect(token)
	c.logger.Info(ctx, "session restored", info.logArgs()...)
	if info.Expired(c.now()) {
		c.logger.Warn(ctx, "restored token is past its exp claim; the server will decide", info.logArgs()...)
	}
	c.notify(restored)

	if c.validator == nil {
		return restored
	}

	if _, err := c.validator.CurrentUser(ctx); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			c.logger.Warn(ctx, "stored token rejected by server", "token", info.Fingerprint)
			c.Expire(ctx, token)
		} else {
			c.logger.Warn(ctx, "could not validate stored token", "error", err)
		}
	}
	return c.Snapshot()
}

// Login stores token and then marks the session authenticated. If the
// store write fails the session is left untouched.
func (c *Controller) Login(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return common.ErrEmptyToken
	}

	c.opMu.Lock()
	if err := c.store.Save(ctx, token); err != nil {
		c.opMu.Unlock()
		return fmt.Errorf("persist token: %w", err)
	}
	s := Session{Token: token, IsAuthenticated: true}
	c.set(s)
	c.opMu.Unlock()

	c.logger.Info(ctx, "logged in", Inspect(token).logArgs()...)
	c.notify(s)
	return nil
}

// Logout clears the store and ends the session. The session ends even
// when Clear fails; that error is still returned.
func (c *Controller) Logout(ctx context.Context) error {
	c.opMu.Lock()
	err := c.store.Clear(ctx)
	c.set(Session{})
	c.opMu.Unlock()

	if err != nil {
		c.logger.Error(ctx, "credential store clear failed during logout", "error", err)
		err = fmt.Errorf("clear stored token: %w", err)
	} else {
		c.logger.Info(ctx, "logged out")
	}
	c.notify(Session{})
	return err
}

// Expire ends the session after the server rejected rejected. It does
// nothing if the session has meanwhile moved on to another token, and
// reports whether it made a transition.
func (c *Controller) Expire(ctx context.Context, rejected string) bool {
	c.opMu.Lock()
	cur := c.Snapshot()
	if !cur.IsAuthenticated || cur.Token != rejected {
		c.opMu.Unlock()
		return false
	}
	err := c.store.Clear(ctx)
	c.set(Session{})
	c.opMu.Unlock()

	if err != nil {
		c.logger.Error(ctx, "credential store clear failed during expiry", "error", err)
	}
	c.logger.Info(ctx, "session expired", "token", Inspect(rejected).Fingerprint)
	c.notify(Session{})
	return true
}
