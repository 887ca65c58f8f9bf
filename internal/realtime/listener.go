// Package realtime consumes the platform's change feed for the transactions
// table (a NOTIFY fired by a row trigger) and fans it out to subscribers.
// Events are refetch hints only: unordered, at least once, no payload beyond
// the operation name.
package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
)

const channelName = "transactions_changed"

// Event is one change notice. Op is INSERT, UPDATE or DELETE.
type Event struct {
	Op string `json:"op"`
}

type Listener struct {
	connString string

	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewListener(connString string) *Listener {
	return &Listener{
		connString: connString,
		subs:       make(map[chan Event]struct{}),
	}
}

// Subscribe registers a change-feed consumer. The returned cancel func must
// be called when the consumer goes away; callers defer it unconditionally so
// a torn-down view never leaks its listener.
func (l *Listener) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)

	l.mu.Lock()
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	cancel := func() {
		l.mu.Lock()
		defer l.mu.Unlock()

		if _, ok := l.subs[ch]; ok {
			delete(l.subs, ch)
			close(ch)
		}
	}

	return ch, cancel
}

func (l *Listener) broadcast(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ch := range l.subs {
		select {
		case ch <- ev:
		default:
			// Slow subscriber already has a pending hint; dropping is fine.
		}
	}
}

// Run holds a dedicated connection on LISTEN until the context ends,
// reconnecting on failure.
func (l *Listener) Run(ctx context.Context) error {
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			slog.Error("change feed connection lost, reconnecting", "error", err)

			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.connString)
	if err != nil {
		return fmt.Errorf("connecting change feed: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+channelName); err != nil {
		return fmt.Errorf("listening on %s: %w", channelName, err)
	}

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("waiting for notification: %w", err)
		}

		l.broadcast(Event{Op: notification.Payload})
	}
}
