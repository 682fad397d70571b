package services

import (
	"context"
	"net/http"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/client"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
)

type ProfileService interface {
	FetchUserProfile(ctx context.Context) (models.UserProfile, error)
	// UpdateUserProfile replaces the whole profile. All four fields are
	// sent every time, changed or not.
	UpdateUserProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error)
}

type profileService struct {
	api API
}

func NewProfileService(api API) ProfileService {
	return &profileService{api: api}
}

func (s *profileService) FetchUserProfile(ctx context.Context) (models.UserProfile, error) {
	var user models.UserDTO
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: pathCurrentUser}, &user); err != nil {
		return models.UserProfile{}, &ProfileFetchError{Message: "Failed to load profile data", Err: err}
	}
	return user.Profile(), nil
}

func (s *profileService) UpdateUserProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	p = p.Normalize()

	var updated models.UserProfile
	err := s.api.Do(ctx, client.Request{Method: http.MethodPut, Path: pathUpdateProfile, Body: p}, &updated)
	if err != nil {
		msg := "Failed to update profile"
		if m, ok := client.ServerMessage(err); ok {
			msg = m
		}
		return models.UserProfile{}, &ProfileUpdateError{Message: msg, Err: err}
	}

	// A server that answers 2xx without a body accepted p as sent.
	if updated == (models.UserProfile{}) {
		return p, nil
	}
	return updated, nil
}
