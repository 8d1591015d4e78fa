// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and resolving bearer tokens
// back into users.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskmaster/internal/common"
	"github.com/dmitrijs2005/taskmaster/internal/logging"
	"github.com/dmitrijs2005/taskmaster/internal/server/auth"
	"github.com/dmitrijs2005/taskmaster/internal/server/models"
	"github.com/dmitrijs2005/taskmaster/internal/server/repositories/repomanager"
)

// Token is the result of a successful login.
type Token struct {
	AccessToken string
	TokenType   string
}

// UserService provides authentication-related operations:
// - Register: create users with a hashed password
// - Login: verify credentials and mint an access token
// - Authenticate: resolve an access token into an active user
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	codec       *auth.TokenCodec
	logger      logging.Logger

	// verified against when the email is unknown, so both paths cost one hash
	dummyHash string
}

// dummyPassword is an indirection used to facilitate testing.
var dummyPassword = func() (string, error) {
	return common.MakeRandHexString(16)
}

// NewUserService constructs a UserService from its collaborators. It fails if
// the dummy hash used for unknown emails cannot be produced.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher,
	codec *auth.TokenCodec, logger logging.Logger) (*UserService, error) {

	pw, err := dummyPassword()
	if err != nil {
		return nil, fmt.Errorf("dummy hash error: %w", err)
	}

	dummy, err := hasher.Hash(pw)
	if err != nil {
		return nil, fmt.Errorf("dummy hash error: %w", err)
	}

	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		codec:       codec,
		logger:      logger,
		dummyHash:   dummy,
	}, nil
}

// Register creates an active user. The raw password is hashed before it
// reaches the repository; a taken email yields common.ErrDuplicateEmail.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Email: email, HashedPassword: hashed, IsActive: true}
	repo := s.repomanager.Users(s.db)

	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login verifies credentials and returns a bearer token whose subject is the
// user's email. Unknown email, wrong password and inactive account all yield
// the same common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*Token, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, common.ErrInvalidCredentials
	}

	access, err := s.codec.IssueDefault(user.Email)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &Token{AccessToken: access, TokenType: common.TokenType}, nil
}

// Authenticate resolves an access token into its user. Every rejection is
// common.ErrUnauthenticated; the precise reason is only logged.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrUnauthenticated
	}

	email, err := s.codec.Verify(token)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "reason", err.Error())
		return nil, common.ErrUnauthenticated
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Debug(ctx, "token subject unknown")
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !user.IsActive {
		s.logger.Debug(ctx, "token subject inactive", "user_id", user.ID)
		return nil, common.ErrUnauthenticated
	}

	return user, nil
}
