package models

import "strings"

// UserDTO is the user record returned by /user/register and
// /user/current-user. First and last name are only sent by servers that
// expose them on the current-user endpoint.
type UserDTO struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Profile projects the editable fields of a user record.
func (u UserDTO) Profile() UserProfile {
	return UserProfile{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Username:  u.Username,
	}
}

// IsTeacher reports whether the user may see the teacher leaderboard.
func (u UserDTO) IsTeacher() bool {
	return strings.EqualFold(u.Role, RoleTeacher)
}

// UserSummary is one row of GET /user/getAllUserScore.
type UserSummary struct {
	UserID           int64  `json:"userId"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	CareerTotalScore int64  `json:"careerTotalScore"`
}

// FullName is "First Last".
func (s UserSummary) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// UserProfile is the editable profile. It is submitted whole to
// PUT /user/update-profile; the password never travels with it.
type UserProfile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

// Normalize trims surrounding whitespace from every field.
func (p UserProfile) Normalize() UserProfile {
	return UserProfile{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Email:     strings.TrimSpace(p.Email),
		Username:  strings.TrimSpace(p.Username),
	}
}
