package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Sweeper releases seats whose holds have expired.  It runs lazily before
// reservation operations and, when started, on a fixed interval.
type Sweeper struct {
	ledger   ExpiryReleaser
	interval time.Duration
	now      func() time.Time
	log      *slog.Logger
}

// NewSweeper returns a Sweeper over ledger.  interval only matters for Start.
func NewSweeper(ledger ExpiryReleaser, interval time.Duration, log *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		ledger:   ledger,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

// Sweep releases every seat whose hold expired strictly before now and
// returns how many seats were released.  Calling it again with the same now
// releases nothing.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (int, error) {
	n, err := s.ledger.ReleaseExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("sweep expired holds: %w", err)
	}
	if n > 0 {
		s.log.Info("expired holds released",
			slog.Int("seats", n),
			slog.Time("now", now),
		)
	}
	return n, nil
}

// Start sweeps every interval until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("sweeper started", slog.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx, s.now()); err != nil {
				s.log.Error("periodic sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}
