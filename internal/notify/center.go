package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"centavo/internal/report"
)

// UnreadSource is the slice of the report store the center polls.
type UnreadSource interface {
	FetchUnreadAlerts(ctx context.Context) error
	UnreadAlerts() []report.Alert
	MarkAlertAsRead(ctx context.Context, id uuid.UUID) (*report.Alert, error)
}

// Center polls the unread-alerts endpoint on a single repeating ticker and
// maintains the transient set of visible notifications. Each newly observed
// alert arms its own auto-dismiss timer; dismissal (auto or manual) removes
// the alert from the visible set and marks it read through the store.
//
// Poll failures are logged and swallowed so transient connectivity problems
// never interrupt the user.
type Center struct {
	store        UnreadSource
	pollInterval time.Duration
	dismissAfter time.Duration

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	visible []report.Alert
	timers  map[uuid.UUID]*time.Timer

	changed chan struct{}
	done    chan struct{}
}

func NewCenter(store UnreadSource, pollInterval, dismissAfter time.Duration) *Center {
	return &Center{
		store:        store,
		pollInterval: pollInterval,
		dismissAfter: dismissAfter,
		timers:       make(map[uuid.UUID]*time.Timer),
		changed:      make(chan struct{}, 1),
	}
}

// Start begins polling until the context is canceled or Stop is called.
// A stopped center may be started again, so logout followed by a fresh
// login resumes polling.
func (c *Center) Start(ctx context.Context) {
	c.mu.Lock()

	if c.done != nil {
		c.mu.Unlock()
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.ctx, c.cancel, c.done = runCtx, cancel, done

	c.mu.Unlock()

	go c.run(runCtx, done)
}

// Stop cancels the polling ticker unconditionally and stops every pending
// auto-dismiss timer. Visible notifications are discarded without being
// marked read.
func (c *Center) Stop() {
	c.mu.Lock()

	if c.cancel == nil {
		c.mu.Unlock()
		return
	}

	c.cancel()
	done := c.done
	c.ctx, c.cancel, c.done = nil, nil, nil

	c.mu.Unlock()

	<-done
}

// Changed signals whenever the visible set mutates. The channel is buffered;
// consumers that fall behind see a single coalesced signal.
func (c *Center) Changed() <-chan struct{} {
	return c.changed
}

// Visible returns the currently displayed notifications, oldest first.
func (c *Center) Visible() []report.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]report.Alert(nil), c.visible...)
}

// Dismiss removes one notification from the visible set and marks it read,
// locally and via the API. It cancels only that alert's timer; polling
// continues.
func (c *Center) Dismiss(id uuid.UUID) {
	c.mu.Lock()

	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}

	kept := c.visible[:0]
	for _, a := range c.visible {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	c.visible = kept
	ctx := c.ctx

	c.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	c.signal()

	if _, err := c.store.MarkAlertAsRead(ctx, id); err != nil {
		slog.Warn("failed to mark dismissed alert read", "id", id, "error", err)
	}
}

func (c *Center) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	c.poll(ctx)

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.reset()
			return
		case <-ticker.C:
			c.poll(ctx)
		}
	}
}

func (c *Center) poll(ctx context.Context) {
	if err := c.store.FetchUnreadAlerts(ctx); err != nil {
		slog.Debug("unread alert poll failed", "error", err)
		return
	}

	unread := c.store.UnreadAlerts()

	c.mu.Lock()

	seen := make(map[uuid.UUID]struct{}, len(c.visible))
	for _, a := range c.visible {
		seen[a.ID] = struct{}{}
	}

	added := false

	for _, alert := range unread {
		if _, ok := seen[alert.ID]; ok {
			continue
		}

		c.visible = append(c.visible, alert)
		added = true

		id := alert.ID
		c.timers[id] = time.AfterFunc(c.dismissAfter, func() {
			c.Dismiss(id)
		})
	}

	c.mu.Unlock()

	if added {
		c.signal()
	}
}

func (c *Center) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.visible = nil
}

func (c *Center) signal() {
	select {
	case c.changed <- struct{}{}:
	default:
	}
}
