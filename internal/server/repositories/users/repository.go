// Package users stores development server accounts in PostgreSQL or in
// memory.
package users

import (
	"context"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/server/models"
)

// Repository persists accounts. Username lookups are case-insensitive and
// usernames are unique under that comparison: Create and UpdateProfile
// return common.ErrorLoginAlreadyExists on a clash. Missing rows yield
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}
