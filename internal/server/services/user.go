// Package services contains the development server's business logic.
// UserService handles registration, login, token verification, profile
// edits and the score listing.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	cm "github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/common"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/server/auth"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/server/config"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/server/models"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/server/repositories/repomanager"
)

type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
	cost          int
}

// NewUserService builds a UserService. db may be nil when m keeps
// accounts in memory.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	cost := cfg.PasswordCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidity,
		cost:          cost,
	}
}

// Register validates req and creates a user with a zero score.
func (s *UserService) Register(ctx context.Context, req cm.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.create(ctx, req, 0)
}

func (s *UserService) create(ctx context.Context, req cm.RegisterRequest, score int64) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:         strings.TrimSpace(req.Username),
		Email:            strings.TrimSpace(req.Email),
		PasswordHash:     hash,
		Role:             req.Role,
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		CareerTotalScore: score,
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the password and returns a signed token. Unknown users and
// wrong passwords both yield common.ErrorInvalidLoginPassword.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInvalidLoginPassword
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", common.ErrorInvalidLoginPassword
	}

	return auth.GenerateToken(auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, s.jwtSecret, s.tokenValidity)
}

// Authenticate verifies a bearer token issued by Login.
func (s *UserService) Authenticate(token string) (auth.Identity, error) {
	return auth.ParseToken(token, s.jwtSecret)
}

func (s *UserService) CurrentUser(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// UpdateProfile replaces every editable field of user id with p.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, p cm.UserProfile) (*models.User, error) {
	p = p.Normalize()

	switch {
	case p.FirstName == "", p.LastName == "", p.Email == "", p.Username == "":
		return nil, fmt.Errorf("%w: all profile fields are required", common.ErrorValidation)
	case !strings.Contains(p.Email, "@"):
		return nil, fmt.Errorf("%w: invalid email %q", common.ErrorValidation, p.Email)
	}

	return s.repomanager.Users(s.db).UpdateProfile(ctx, &models.User{
		ID:        id,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Username:  p.Username,
	})
}

// Scores lists every student in id order. Teachers have no score.
func (s *UserService) Scores(ctx context.Context) ([]*models.User, error) {
	all, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*models.User, 0, len(all))
	for _, u := range all {
		if !strings.EqualFold(u.Role, cm.RoleTeacher) {
			out = append(out, u)
		}
	}
	return out, nil
}
