package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"smoothies/internal/service"
)

// SessionSweeper releases idle browser sessions at a fixed interval.
type SessionSweeper struct {
	sessions *service.SessionStore
	interval time.Duration
	logger   *zap.Logger
}

func NewSessionSweeper(sessions *service.SessionStore, interval time.Duration, logger *zap.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

// Start blocks until ctx is cancelled.
func (w *SessionSweeper) Start(ctx context.Context) {
	w.logger.Info("starting session sweeper", zap.Duration("interval", w.interval))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("session sweeper stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *SessionSweeper) sweep() {
	released := w.sessions.Sweep()
	if released > 0 {
		w.logger.Debug("released idle sessions",
			zap.Int("released", released),
			zap.Int("active", w.sessions.Len()))
	}
}
