package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/client"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/common"
)

// AuthService obtains tokens and user records from the server.
//
// Contract:
//   - Authenticate: exchange username/password for a token. The token is
//     returned, not stored; persisting it is the session controller's job.
//   - Register: create a new account and return the created user.
//   - CurrentUser: fetch the user the current token belongs to.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.UserDTO, error)
	CurrentUser(ctx context.Context) (*models.UserDTO, error)
}

type authService struct {
	api API
}

func NewAuthService(api API) AuthService {
	return &authService{api: api}
}

func (a *authService) Authenticate(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", &AuthenticationError{
			Message: "Username and password are required",
			Err:     common.ErrorValidation,
		}
	}

	var resp models.LoginResponse
	err := a.api.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   pathLogin,
		Body:   models.LoginRequest{Username: username, Password: password},
		Public: true,
	}, &resp)
	if err != nil {
		return "", &AuthenticationError{Message: a.loginMessage(err), Err: err}
	}

	if strings.TrimSpace(resp.Token) == "" {
		return "", &AuthenticationError{
			Message: "Authentication token missing in response",
			Err:     common.ErrEmptyToken,
		}
	}
	return resp.Token, nil
}

func (a *authService) loginMessage(err error) string {
	var ce *client.ConnectivityError
	if errors.As(err, &ce) {
		return fmt.Sprintf("No response from server at %s", a.api.BaseURL())
	}
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	if status := client.StatusCode(err); status != 0 {
		return fmt.Sprintf("Server error: %d", status)
	}
	return "Login failed"
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, &RegistrationError{Message: err.Error(), Err: err}
	}

	var user models.UserDTO
	err := a.api.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   pathRegister,
		Body:   req,
		Public: true,
	}, &user)
	if err != nil {
		return nil, &RegistrationError{Message: registerMessage(err), Err: err}
	}
	return &user, nil
}

func registerMessage(err error) string {
	var ce *client.ConnectivityError
	switch {
	case errors.As(err, &ce):
		return client.UserMessage(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Registration failed"
	}
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	if status := client.StatusCode(err); status != 0 {
		return fmt.Sprintf("Server error: %d", status)
	}
	return "Registration failed"
}

func (a *authService) CurrentUser(ctx context.Context) (*models.UserDTO, error) {
	var user models.UserDTO
	if err := a.api.Do(ctx, client.Request{Method: http.MethodGet, Path: pathCurrentUser}, &user); err != nil {
		return nil, &ProfileFetchError{Message: "Failed to fetch current user", Err: err}
	}
	return &user, nil
}
