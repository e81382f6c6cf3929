// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login, and session token issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecoscan/internal/common"
	"ecoscan/internal/server/auth"
	"ecoscan/internal/server/config"
	"ecoscan/internal/server/models"
	"ecoscan/internal/server/repositories/repomanager"
)

// UserService provides account operations:
// - Register: create an account with a bcrypt-hashed password
// - Login: verify credentials
// - IssueSessionToken / Authenticate: mint and validate session JWTs
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.SessionTokenValidityDuration,
	}
}

// Register creates a new account. A reused email yields common.ErrorEmailTaken;
// blank fields yield common.ErrorValidation.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash, Name: name})
	if err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			return nil, common.ErrorEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials. Unknown email and wrong password are the
// same failure to the caller, common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// IssueSessionToken mints the JWT carried by the browser session cookie.
func (s *UserService) IssueSessionToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
}

// Authenticate resolves a session token to an account ID.
func (s *UserService) Authenticate(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// GetUser loads one account by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}
