package auth

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestNewSecretRequiresValue(t *testing.T) {
	if _, err := NewSecret(""); !errors.Is(err, ErrSecretMissing) {
		t.Fatalf("expected ErrSecretMissing, got %v", err)
	}
	if _, err := NewSecret("short"); err == nil {
		t.Fatalf("expected error for short secret")
	}
}

func TestSecretRedacts(t *testing.T) {
	secret, err := NewSecret(testSecret)
	if err != nil {
		t.Fatalf("new secret: %v", err)
	}

	for _, out := range []string{fmt.Sprint(secret), fmt.Sprintf("%v", secret), fmt.Sprintf("%#v", secret)} {
		if strings.Contains(out, testSecret) {
			t.Fatalf("secret leaked in %q", out)
		}
	}

	var buf bytes.Buffer
	slog.New(slog.NewJSONHandler(&buf, nil)).Info("boot", slog.Any("secret", secret))
	if strings.Contains(buf.String(), testSecret) {
		t.Fatalf("secret leaked in log line %s", buf.String())
	}
}
