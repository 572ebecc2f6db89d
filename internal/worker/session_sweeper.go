package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/courseloom/courseloom-backend/internal/editor"
)

// SessionSweeper evicts editing sessions that have been idle past their
// TTL so abandoned drafts do not pile up in memory.
type SessionSweeper struct {
	store    *editor.Store
	interval time.Duration
	log      zerolog.Logger
}

// NewSessionSweeper creates a new SessionSweeper.
func NewSessionSweeper(store *editor.Store, interval time.Duration, log zerolog.Logger) *SessionSweeper {
	return &SessionSweeper{
		store:    store,
		interval: interval,
		log:      log.With().Str("component", "session_sweeper").Logger(),
	}
}

// Start begins the sweep loop. Call in a goroutine.
func (w *SessionSweeper) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case now := <-ticker.C:
			if removed := w.store.Sweep(now); removed > 0 {
				w.log.Info().
					Int("removed", removed).
					Int("live", w.store.Len()).
					Msg("Swept idle sessions")
			}
		}
	}
}
