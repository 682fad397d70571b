package credstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/common"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/cryptox"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/logging"
)

// Backend is one key/value location. Get returns (nil, nil) when the key
// is absent and Delete of an absent key succeeds.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type Store struct {
	mu        sync.RWMutex
	primary   Backend
	secondary Backend
	key       string
	logger    logging.Logger
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithKey overrides the storage key (default common.TokenKey).
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func New(primary, secondary Backend, opts ...Option) *Store {
	s := &Store{
		primary:   primary,
		secondary: secondary,
		key:       common.TokenKey,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores token in both backends. On error neither backend changes.
func (s *Store) Save(ctx context.Context, token string) error {
	if token == "" {
		return common.ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, prevErr := s.secondary.Get(ctx, s.key)

	if err := s.secondary.Set(ctx, s.key, []byte(token)); err != nil {
		return fmt.Errorf("secondary store: %w", err)
	}

	if err := s.primary.Set(ctx, s.key, []byte(token)); err != nil {
		err = fmt.Errorf("primary store: %w", err)
		if rbErr := s.restoreSecondary(ctx, prev, prevErr); rbErr != nil {
			s.logger.Error(ctx, "credential rollback failed", "error", rbErr)
			return errors.Join(err, fmt.Errorf("rollback secondary store: %w", rbErr))
		}
		return err
	}

	s.logger.Debug(ctx, "token saved", "token", cryptox.Fingerprint(token))
	return nil
}

func (s *Store) restoreSecondary(ctx context.Context, prev []byte, prevErr error) error {
	if prevErr != nil || len(prev) == 0 {
		return s.secondary.Delete(ctx, s.key)
	}
	return s.secondary.Set(ctx, s.key, prev)
}

// Load returns the stored token, or "" if neither backend holds one. It
// only fails when a backend could not be read and no token was found.
func (s *Store) Load(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, pErr := s.primary.Get(ctx, s.key)
	if pErr == nil && len(v) > 0 {
		return string(v), nil
	}
	if pErr != nil {
		s.logger.Warn(ctx, "primary credential store unreadable, trying secondary", "error", pErr)
	}

	v, sErr := s.secondary.Get(ctx, s.key)
	if sErr == nil && len(v) > 0 {
		s.logger.Debug(ctx, "token loaded from secondary store")
		return string(v), nil
	}

	if pErr != nil || sErr != nil {
		return "", errors.Join(wrap("primary store", pErr), wrap("secondary store", sErr))
	}
	return "", nil
}

// Clear removes the token from both backends. Both deletes are attempted
// even if the first fails.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pErr := s.primary.Delete(ctx, s.key)
	sErr := s.secondary.Delete(ctx, s.key)

	return errors.Join(wrap("primary store", pErr), wrap("secondary store", sErr))
}

func wrap(where string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", where, err)
}

// Status says which backends hold a token without revealing it.
type Status struct {
	Primary   bool
	Secondary bool
	// InSync is true when both hold the same token or both are empty.
	InSync bool
}

func (s *Store) Status(ctx context.Context) (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, pErr := s.primary.Get(ctx, s.key)
	sec, sErr := s.secondary.Get(ctx, s.key)
	if err := errors.Join(wrap("primary store", pErr), wrap("secondary store", sErr)); err != nil {
		return Status{}, err
	}
	return Status{
		Primary:   len(p) > 0,
		Secondary: len(sec) > 0,
		InSync:    string(p) == string(sec),
	}, nil
}
