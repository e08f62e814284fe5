package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	domain "github.com/example/songvault/domain/user"
)

// AuthPort defines the interface for authentication operations.
// This is the port that other modules use to access auth functionality.
type AuthPort interface {
	Register(ctx context.Context, email, password string) (*domain.User, *domain.Token, error)
	Login(ctx context.Context, email, password string) (*domain.Token, error)
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}

// AuthAdapter implements AuthPort using the service container. It also
// satisfies storage.UserResolver, so owned-record modules can scope their
// queries through it.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// Register creates a new user account and returns it with its first token.
func (a *AuthAdapter) Register(ctx context.Context, email, password string) (*domain.User, *domain.Token, error) {
	req := RegisterRequest{Email: email, Password: password}
	var resp RegisterResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"register",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, nil, fmt.Errorf("register request failed: %w", err)
	}

	user := &domain.User{
		ID:        resp.ID,
		Email:     resp.Email,
		CreatedAt: resp.CreatedAt,
	}
	token := &domain.Token{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresIn:   resp.ExpiresIn,
	}
	return user, token, nil
}

// Login verifies credentials and returns the issued token.
func (a *AuthAdapter) Login(ctx context.Context, email, password string) (*domain.Token, error) {
	req := LoginRequest{Email: email, Password: password}
	var resp LoginResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"login",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	return &domain.Token{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresIn:   resp.ExpiresIn,
	}, nil
}

// CurrentUser resolves a bearer token to its user record.
func (a *AuthAdapter) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	req := CurrentUserRequest{Token: token}
	var resp CurrentUserResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"current-user",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("current-user request failed: %w", err)
	}

	return &domain.User{
		ID:        resp.ID,
		Email:     resp.Email,
		CreatedAt: resp.CreatedAt,
		UpdatedAt: resp.UpdatedAt,
	}, nil
}

// ResolveUser implements storage.UserResolver on top of CurrentUser.
func (a *AuthAdapter) ResolveUser(ctx context.Context, token string) (string, error) {
	user, err := a.CurrentUser(ctx, token)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}
