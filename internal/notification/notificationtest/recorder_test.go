package notificationtest

import (
	"context"
	"testing"

	"github.com/deepakjoshi9239/finance-tracker/internal/notification"
)

func TestRecorderKinds(t *testing.T) {
	r := &Recorder{}
	_ = r.Send(context.Background(), notification.Message{Kind: notification.KindAccountRegistered})
	_ = r.Send(context.Background(), notification.Message{Kind: notification.KindLoggedOut})

	kinds := r.Kinds()
	if len(kinds) != 2 || kinds[0] != notification.KindAccountRegistered || kinds[1] != notification.KindLoggedOut {
		t.Fatalf("unexpected kinds: %v", kinds)
	}
}
