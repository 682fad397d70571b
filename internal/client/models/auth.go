// Package models holds the request/response shapes of the Elementopia API
// and the client-side views derived from them.
package models

import (
	"fmt"
	"strings"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/common"
)

// Role values accepted by /user/register.
const (
	RoleStudent = "Student"
	RoleTeacher = "Teacher"
)

// LoginRequest is the body of POST /user/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /user/login. Token is required for a
// successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// RegisterRequest is the body of POST /user/register.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// Validate checks that every field is present, the email looks like one
// and the role is known.
func (r RegisterRequest) Validate() error {
	fields := []struct{ name, value string }{
		{"first name", r.FirstName},
		{"last name", r.LastName},
		{"email", r.Email},
		{"username", r.Username},
		{"password", r.Password},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", common.ErrorValidation, f.name)
		}
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("%w: invalid email %q", common.ErrorValidation, r.Email)
	}
	if !IsKnownRole(r.Role) {
		return fmt.Errorf("%w: unknown role %q", common.ErrorValidation, r.Role)
	}
	return nil
}

func IsKnownRole(role string) bool {
	return role == RoleStudent || role == RoleTeacher
}
