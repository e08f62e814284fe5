package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSigningSecret_FromOverridePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SECRET_KEY")
	if err := os.WriteFile(path, []byte("super-secret\n"), 0o600); err != nil {
		t.Fatalf("failed to write secret file: %v", err)
	}
	t.Setenv("JWT_SECRET_FILE", path)

	secret, err := LoadSigningSecret()
	if err != nil {
		t.Fatalf("LoadSigningSecret() error = %v", err)
	}

	// Trailing whitespace from the file must not become part of the secret.
	if string(secret) != "super-secret" {
		t.Errorf("secret = %q, want %q", secret, "super-secret")
	}
}

func TestLoadSigningSecret_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SECRET_KEY")
	if err := os.WriteFile(path, []byte("\n"), 0o600); err != nil {
		t.Fatalf("failed to write secret file: %v", err)
	}
	t.Setenv("JWT_SECRET_FILE", path)

	if _, err := LoadSigningSecret(); err == nil {
		t.Error("LoadSigningSecret() expected error for empty secret file")
	}
}

func TestLoadSigningSecret_Missing(t *testing.T) {
	// Point the override at a path that does not exist; the fallback mount
	// path will not exist on a development machine either.
	t.Setenv("JWT_SECRET_FILE", filepath.Join(t.TempDir(), "nope"))

	if _, err := LoadSigningSecret(); err == nil {
		t.Error("LoadSigningSecret() expected error when no secret file is readable")
	}
}
