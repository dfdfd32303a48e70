package auth

import (
	"errors"
	"fmt"
	"log/slog"
)

// MinSecretLength is the shortest HS256 signing secret accepted, in bytes.
const MinSecretLength = 32

const redacted = "[REDACTED]"

// ErrSecretMissing is returned when no signing secret is configured. There is
// no built-in fallback.
var ErrSecretMissing = errors.New("token signing secret is not configured")

// Secret is the process-wide token signing key. It redacts itself when
// printed or logged.
type Secret []byte

// NewSecret validates the configured secret and wraps it.
func NewSecret(raw string) (Secret, error) {
	if raw == "" {
		return nil, ErrSecretMissing
	}
	if len(raw) < MinSecretLength {
		return nil, fmt.Errorf("token signing secret must be at least %d bytes, got %d", MinSecretLength, len(raw))
	}
	return Secret(raw), nil
}

func (s Secret) String() string { return redacted }

func (s Secret) GoString() string { return redacted }

// LogValue implements slog.LogValuer.
func (s Secret) LogValue() slog.Value { return slog.StringValue(redacted) }
