package user

import (
	"time"
)

// User represents a registered account. The password hash never leaves the
// auth module; response types carry only the public fields.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Token is the credential handed to clients after a successful login or
// registration.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Claims is the identity extracted from a validated token.
type Claims struct {
	UserID string `json:"user_id"`
}
