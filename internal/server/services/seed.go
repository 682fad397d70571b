package services

import (
	"context"
	"errors"

	cm "github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/common"
)

// SeedUser is a demo account created on start.
type SeedUser struct {
	cm.RegisterRequest
	Score int64
}

// DemoRoster is what a fresh development server knows about. Every
// password is "password".
var DemoRoster = []SeedUser{
	{RegisterRequest: cm.RegisterRequest{FirstName: "Ava", LastName: "Jones", Email: "ava@elementopia.dev", Username: "ava", Password: "password", Role: cm.RoleStudent}, Score: 12210},
	{RegisterRequest: cm.RegisterRequest{FirstName: "Liam", LastName: "Johnson", Email: "liam@elementopia.dev", Username: "liam", Password: "password", Role: cm.RoleStudent}, Score: 12720},
	{RegisterRequest: cm.RegisterRequest{FirstName: "Noah", LastName: "Brown", Email: "noah@elementopia.dev", Username: "noah", Password: "password", Role: cm.RoleStudent}, Score: 9840},
	{RegisterRequest: cm.RegisterRequest{FirstName: "Maria", LastName: "Santos", Email: "teacher@elementopia.dev", Username: "teacher", Password: "password", Role: cm.RoleTeacher}},
}

// Seed creates each user in roster that does not exist yet and reports
// how many it created.
func (s *UserService) Seed(ctx context.Context, roster []SeedUser) (int, error) {
	created := 0
	for _, su := range roster {
		_, err := s.create(ctx, su.RegisterRequest, su.Score)
		switch {
		case err == nil:
			created++
		case errors.Is(err, common.ErrorLoginAlreadyExists):
		default:
			return created, err
		}
	}
	return created, nil
}
