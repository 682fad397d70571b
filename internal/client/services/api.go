package services

import (
	"context"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/client"
)

// API is the part of client.Gateway the services depend on.
type API interface {
	Do(ctx context.Context, req client.Request, out any) error
	BaseURL() string
}

const (
	pathLogin         = "/user/login"
	pathRegister      = "/user/register"
	pathCurrentUser   = "/user/current-user"
	pathAllUserScores = "/user/getAllUserScore"
	pathUpdateProfile = "/user/update-profile"
	pathStudents      = "/user/students"
)
