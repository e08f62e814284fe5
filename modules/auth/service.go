package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	domain "github.com/example/songvault/domain/user"
)

var (
	// ErrInvalidCredentials is returned when login fails. A missing user and
	// a wrong password produce this same error, so a caller cannot tell
	// which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidEmail is returned when the email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword is returned when the password is too short.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
)

// Service handles authentication business logic: registration, login, and
// resolving bearer tokens to users.
type Service struct {
	repo   *UserRepository
	hasher *PasswordHasher
	tokens *TokenManager
}

// NewService creates a new auth Service.
func NewService(repo *UserRepository, hasher *PasswordHasher, tokens *TokenManager) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a new user account and issues its first token.
func (s *Service) Register(_ context.Context, email, password string) (*domain.User, *domain.Token, error) {
	// Validate email using standard library
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, nil, ErrInvalidEmail
	}

	if len(password) < 8 {
		return nil, nil, ErrWeakPassword
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and issues a token. Every failure path yields
// ErrInvalidCredentials.
func (s *Service) Login(_ context.Context, email, password string) (*domain.Token, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// CurrentUser resolves a bearer token to its user record. Signature failure,
// a malformed or expired token, a missing subject, and an unknown subject
// all collapse into ErrInvalidToken, so the caller learns nothing about
// which step rejected the token.
func (s *Service) CurrentUser(_ context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}
