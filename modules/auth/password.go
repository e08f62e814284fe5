package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrInvalidHash is returned when a stored hash cannot be parsed.
var ErrInvalidHash = errors.New("malformed password hash")

// HashParams control the Argon2id work factor. Production uses
// DefaultHashParams; tests use TestHashParams to keep hashing fast. The
// parameters are recorded inside each hash, so verification works no matter
// which parameters the hasher currently carries.
type HashParams struct {
	Time       uint32
	MemoryKiB  uint32
	Threads    uint8
	SaltLength uint32
	KeyLength  uint32
}

// DefaultHashParams returns the production work factor.
func DefaultHashParams() HashParams {
	return HashParams{
		Time:       3,
		MemoryKiB:  64 * 1024,
		Threads:    4,
		SaltLength: 16,
		KeyLength:  32,
	}
}

// TestHashParams returns a reduced work factor for automated tests.
func TestHashParams() HashParams {
	return HashParams{
		Time:       1,
		MemoryKiB:  1024,
		Threads:    1,
		SaltLength: 16,
		KeyLength:  32,
	}
}

// PasswordHasher provides Argon2id password hashing and verification.
type PasswordHasher struct {
	params HashParams
}

// NewPasswordHasher creates a PasswordHasher with the production work factor.
func NewPasswordHasher() *PasswordHasher {
	return NewPasswordHasherWithParams(DefaultHashParams())
}

// NewPasswordHasherWithParams creates a PasswordHasher with explicit parameters.
func NewPasswordHasherWithParams(params HashParams) *PasswordHasher {
	return &PasswordHasher{params: params}
}

// Hash derives an Argon2id digest of password with a fresh random salt and
// returns it in PHC string form:
//
//	$argon2id$v=19$m=65536,t=3,p=4$<salt>$<key>
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.MemoryKiB, h.params.Threads, h.params.KeyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.MemoryKiB,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify reports whether password matches the stored hash. The comparison of
// the derived keys is constant-time.
func (h *PasswordHasher) Verify(password, hash string) bool {
	params, salt, key, err := decodeHash(hash)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, params.Time, params.MemoryKiB, params.Threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

// decodeHash parses a PHC-formatted Argon2id hash.
func decodeHash(hash string) (HashParams, []byte, []byte, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return HashParams{}, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return HashParams{}, nil, nil, ErrInvalidHash
	}
	if version != argon2.Version {
		return HashParams{}, nil, nil, ErrInvalidHash
	}

	var params HashParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.MemoryKiB, &params.Time, &params.Threads); err != nil {
		return HashParams{}, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return HashParams{}, nil, nil, ErrInvalidHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return HashParams{}, nil, nil, ErrInvalidHash
	}

	return params, salt, key, nil
}
