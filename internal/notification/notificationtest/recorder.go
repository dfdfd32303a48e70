// Package notificationtest provides a notifier that captures messages for
// assertions in tests.
package notificationtest

import (
	"context"
	"sync"

	"github.com/deepakjoshi9239/finance-tracker/internal/notification"
)

// Recorder keeps every message it receives in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []notification.Message
}

var _ notification.Notifier = (*Recorder)(nil)

// Send appends the message.
func (r *Recorder) Send(_ context.Context, message notification.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	return nil
}

// Kinds returns the kinds of all recorded messages in order.
func (r *Recorder) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]string, 0, len(r.messages))
	for _, m := range r.messages {
		kinds = append(kinds, m.Kind)
	}
	return kinds
}
