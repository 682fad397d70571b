package services

import (
	"context"
	"errors"
	"sync"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
)

var ErrProfileNotLoaded = errors.New("profile not loaded")

// ProfileEditor keeps a local draft of the user's profile. Edits only touch
// the draft until Save submits the whole record; Cancel drops them.
type ProfileEditor struct {
	svc ProfileService

	mu       sync.Mutex
	loaded   bool
	original models.UserProfile
	draft    models.UserProfile
}

func NewProfileEditor(svc ProfileService) *ProfileEditor {
	return &ProfileEditor{svc: svc}
}

// Load fetches the profile and resets the draft to it.
func (e *ProfileEditor) Load(ctx context.Context) (models.UserProfile, error) {
	p, err := e.svc.FetchUserProfile(ctx)
	if err != nil {
		return models.UserProfile{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loaded = true
	e.original = p
	e.draft = p
	return p, nil
}

func (e *ProfileEditor) Draft() models.UserProfile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

func (e *ProfileEditor) Original() models.UserProfile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.original
}

func (e *ProfileEditor) Edit(fn func(*models.UserProfile)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return ErrProfileNotLoaded
	}
	fn(&e.draft)
	return nil
}

// Cancel discards every edit since the last Load or Save.
func (e *ProfileEditor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = e.original
}

func (e *ProfileEditor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Normalize() != e.original
}

// Save submits the draft. On success both draft and original become the
// server's version; on failure the draft is kept so the user can retry.
func (e *ProfileEditor) Save(ctx context.Context) (models.UserProfile, error) {
	e.mu.Lock()
	if !e.loaded {
		e.mu.Unlock()
		return models.UserProfile{}, ErrProfileNotLoaded
	}
	draft := e.draft
	e.mu.Unlock()

	updated, err := e.svc.UpdateUserProfile(ctx, draft)
	if err != nil {
		return models.UserProfile{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.original = updated
	e.draft = updated
	return updated, nil
}
