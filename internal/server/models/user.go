// Package models holds the records the development server persists.
package models

import (
	"time"

	cm "github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
)

// User is one account. PasswordHash is a bcrypt hash and never leaves
// the server.
type User struct {
	ID               int64
	Username         string
	Email            string
	PasswordHash     []byte
	Role             string
	FirstName        string
	LastName         string
	CareerTotalScore int64
	CreatedAt        time.Time
}

// DTO is the wire form returned by /user/register and /user/current-user.
func (u *User) DTO() cm.UserDTO {
	return cm.UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// Summary is the leaderboard row for u.
func (u *User) Summary() cm.UserSummary {
	return cm.UserSummary{
		UserID:           u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		CareerTotalScore: u.CareerTotalScore,
	}
}

// Profile is the editable part of u.
func (u *User) Profile() cm.UserProfile {
	return cm.UserProfile{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Username:  u.Username,
	}
}
