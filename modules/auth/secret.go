package auth

import (
	"bytes"
	"fmt"
	"os"
)

const (
	// secretPath is the well-known location of the token signing secret.
	secretPath = "SECRET_KEY"
	// secretFallbackPath is checked when secretPath is unreadable, covering
	// container secret mounts.
	secretFallbackPath = "/run/secrets/SECRET_KEY"
)

// LoadSigningSecret reads the token signing secret from disk. The
// JWT_SECRET_FILE environment variable overrides the primary path. Failure
// to read a non-empty secret from either location is a startup failure.
func LoadSigningSecret() ([]byte, error) {
	primary := secretPath
	if p := os.Getenv("JWT_SECRET_FILE"); p != "" {
		primary = p
	}

	for _, path := range []string{primary, secretFallbackPath} {
		secret, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		secret = bytes.TrimSpace(secret)
		if len(secret) == 0 {
			return nil, fmt.Errorf("signing secret file %s is empty", path)
		}
		return secret, nil
	}

	return nil, fmt.Errorf("signing secret not readable from %s or %s", primary, secretFallbackPath)
}
