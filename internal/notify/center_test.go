package notify_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centavo/internal/notify"
	"centavo/internal/report"
)

type fakeUnreadSource struct {
	mu     sync.Mutex
	unread []report.Alert
	marked []uuid.UUID
}

func (f *fakeUnreadSource) FetchUnreadAlerts(context.Context) error {
	return nil
}

func (f *fakeUnreadSource) UnreadAlerts() []report.Alert {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]report.Alert(nil), f.unread...)
}

func (f *fakeUnreadSource) MarkAlertAsRead(_ context.Context, id uuid.UUID) (*report.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.marked = append(f.marked, id)

	kept := f.unread[:0]
	for _, a := range f.unread {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	f.unread = kept

	return &report.Alert{ID: id, IsRead: true}, nil
}

func (f *fakeUnreadSource) setUnread(alerts []report.Alert) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.unread = alerts
}

func (f *fakeUnreadSource) markedIDs() []uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]uuid.UUID(nil), f.marked...)
}

func TestCenter_ShowsNewAlerts(t *testing.T) {
	source := &fakeUnreadSource{}
	alert := report.Alert{ID: uuid.New(), Title: "Budget Alert ⚠️"}
	source.setUnread([]report.Alert{alert})

	center := notify.NewCenter(source, 10*time.Millisecond, time.Minute)
	center.Start(context.Background())
	defer center.Stop()

	require.Eventually(t, func() bool {
		return len(center.Visible()) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, alert.ID, center.Visible()[0].ID)

	select {
	case <-center.Changed():
	default:
		t.Fatal("expected a change signal after new alert appeared")
	}
}

func TestCenter_DoesNotDuplicateVisibleAlerts(t *testing.T) {
	source := &fakeUnreadSource{}
	alert := report.Alert{ID: uuid.New(), Title: "Goal Created! 🎯"}
	source.setUnread([]report.Alert{alert})

	center := notify.NewCenter(source, 5*time.Millisecond, time.Minute)
	center.Start(context.Background())
	defer center.Stop()

	require.Eventually(t, func() bool {
		return len(center.Visible()) == 1
	}, time.Second, 5*time.Millisecond)

	// Let several polls go by; the same alert must not reappear.
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, center.Visible(), 1)
}

func TestCenter_AutoDismissMarksRead(t *testing.T) {
	source := &fakeUnreadSource{}
	alert := report.Alert{ID: uuid.New(), Title: "Income Added! 💰"}
	source.setUnread([]report.Alert{alert})

	center := notify.NewCenter(source, 5*time.Millisecond, 20*time.Millisecond)
	center.Start(context.Background())
	defer center.Stop()

	require.Eventually(t, func() bool {
		return len(center.Visible()) == 1
	}, time.Second, time.Millisecond)

	require.Eventually(t, func() bool {
		return len(center.Visible()) == 0
	}, time.Second, time.Millisecond)

	require.Eventually(t, func() bool {
		marked := source.markedIDs()
		return len(marked) == 1 && marked[0] == alert.ID
	}, time.Second, time.Millisecond)
}

func TestCenter_ManualDismiss(t *testing.T) {
	source := &fakeUnreadSource{}
	first := report.Alert{ID: uuid.New(), Title: "First"}
	second := report.Alert{ID: uuid.New(), Title: "Second"}
	source.setUnread([]report.Alert{first, second})

	center := notify.NewCenter(source, 10*time.Millisecond, time.Minute)
	center.Start(context.Background())
	defer center.Stop()

	require.Eventually(t, func() bool {
		return len(center.Visible()) == 2
	}, time.Second, time.Millisecond)

	center.Dismiss(first.ID)

	visible := center.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, second.ID, visible[0].ID)

	require.Eventually(t, func() bool {
		marked := source.markedIDs()
		return len(marked) == 1 && marked[0] == first.ID
	}, time.Second, time.Millisecond)
}

func TestCenter_StopHaltsPolling(t *testing.T) {
	source := &fakeUnreadSource{}

	center := notify.NewCenter(source, 5*time.Millisecond, time.Minute)
	center.Start(context.Background())

	time.Sleep(20 * time.Millisecond)
	center.Stop()

	// New unread alerts after Stop must never become visible.
	source.setUnread([]report.Alert{{ID: uuid.New()}})
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, center.Visible())
}

func TestCenter_StartTwiceIsNoop(t *testing.T) {
	source := &fakeUnreadSource{}

	center := notify.NewCenter(source, 5*time.Millisecond, time.Minute)
	center.Start(context.Background())
	center.Start(context.Background())
	center.Stop()
}

func TestCenter_RestartAfterStop(t *testing.T) {
	source := &fakeUnreadSource{}

	center := notify.NewCenter(source, 5*time.Millisecond, time.Minute)
	center.Start(context.Background())
	center.Stop()

	// Logout followed by login starts the same center again; alerts arriving
	// after the restart must still surface.
	center.Start(context.Background())
	defer center.Stop()

	alert := report.Alert{ID: uuid.New(), Title: "Budget Alert ⚠️"}
	source.setUnread([]report.Alert{alert})

	require.Eventually(t, func() bool {
		return len(center.Visible()) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, alert.ID, center.Visible()[0].ID)
}

func TestCenter_DismissBeforeStart(t *testing.T) {
	source := &fakeUnreadSource{}

	center := notify.NewCenter(source, 5*time.Millisecond, time.Minute)

	id := uuid.New()
	center.Dismiss(id)

	marked := source.markedIDs()
	require.Len(t, marked, 1)
	assert.Equal(t, id, marked[0])
}
