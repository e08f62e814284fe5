package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domain "github.com/example/songvault/domain/user"
)

var (
	// ErrInvalidToken is returned when a token fails validation for any
	// reason other than expiry: bad signature, malformed string, missing
	// subject, or a subject that resolves to no user.
	ErrInvalidToken = errors.New("could not validate credentials")
	// ErrExpiredToken is returned when the token's expiry has passed.
	ErrExpiredToken = errors.New("token has expired")
)

// TokenType is the literal token-type tag returned with every issued token.
const TokenType = "bearer"

// DefaultTokenDuration is how long an issued token stays valid.
const DefaultTokenDuration = 30 * time.Minute

// TokenConfig holds token signing configuration. The secret is loaded once
// at startup and treated as immutable afterwards.
type TokenConfig struct {
	Secret        []byte
	TokenDuration time.Duration
}

// TokenManager issues and validates signed bearer tokens. Issuing is a pure
// function of the user id, the clock, and the secret; nothing is persisted.
type TokenManager struct {
	config TokenConfig
}

// NewTokenManager creates a TokenManager with the given configuration.
// A zero TokenDuration falls back to DefaultTokenDuration.
func NewTokenManager(config TokenConfig) *TokenManager {
	if config.TokenDuration == 0 {
		config.TokenDuration = DefaultTokenDuration
	}
	return &TokenManager{config: config}
}

// Issue signs a token whose subject is the user's id and whose expiry is
// now + the configured duration.
func (m *TokenManager) Issue(userID string) (*domain.Token, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.config.Secret)
	if err != nil {
		return nil, err
	}

	return &domain.Token{
		AccessToken: signed,
		TokenType:   TokenType,
		ExpiresIn:   int64(m.config.TokenDuration.Seconds()),
	}, nil
}

// Validate verifies signature and expiry and returns the identity the token
// carries.
func (m *TokenManager) Validate(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.config.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &domain.Claims{UserID: claims.Subject}, nil
}
