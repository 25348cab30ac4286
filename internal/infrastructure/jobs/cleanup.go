package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenstreet/ledger-api/internal/api/metrics"
	"github.com/greenstreet/ledger-api/internal/core/ports"
)

const defaultSweepInterval = time.Hour

// CleanupSweeper periodically deletes expired session rows. The sweep only
// removes rows that are already invalid for any reader, so it needs no
// coordination with the request path.
type CleanupSweeper struct {
	tokens   ports.TokenService
	interval time.Duration
	log      zerolog.Logger
}

func NewCleanupSweeper(tokens ports.TokenService, interval time.Duration, log zerolog.Logger) *CleanupSweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &CleanupSweeper{tokens: tokens, interval: interval, log: log}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *CleanupSweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *CleanupSweeper) sweep(ctx context.Context) {
	start := time.Now()
	count, err := s.tokens.CleanupExpired(ctx)
	metrics.CleanupDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.log.Error().Err(err).Msg("session cleanup sweep failed")
		return
	}
	metrics.CleanupDeletedTotal.Add(float64(count))
}
