package notification

import (
	"context"
	"log/slog"
)

const (
	// KindAccountRegistered is emitted after a new identity is stored.
	KindAccountRegistered = "account_registered"
	// KindLoginThrottled is emitted when a source address exceeds the login limit.
	KindLoginThrottled = "login_throttled"
	// KindLoggedOut is emitted when a token is revoked by its holder.
	KindLoggedOut = "logged_out"
)

// Message describes a security event. Destination is the identity or source
// address the event concerns.
type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier writes security events to the structured logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(ctx context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.InfoContext(ctx, "security event",
		slog.String("kind", message.Kind),
		slog.String("destination", message.Destination),
		slog.String("body", message.Body),
	)
	return nil
}
