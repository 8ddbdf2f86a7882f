package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mysewa/sewa/pkg/metrics"
	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
)

// HousekeepingService runs the optional expiry sweep. Expiry is always
// enforced on read; the sweep only keeps stored state tidy for listings.
type HousekeepingService struct {
	Deps
	Logger *slog.Logger

	// Schedule is a cron spec ("@every 15m", "0 * * * *").
	Schedule string

	cron *cron.Cron
}

func (s *HousekeepingService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// SweepStats counts what one sweep changed.
type SweepStats struct {
	InvitationsExpired int64
	PinsCleared        int64
}

// Start registers the sweep and starts the scheduler.
func (s *HousekeepingService) Start() error {
	if s.cron == nil {
		s.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}
	if _, err := s.cron.AddFunc(s.Schedule, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			s.logger().Warn("expiry sweep failed", slog.Any("error", err))
		}
	}); err != nil {
		return fmt.Errorf("schedule expiry sweep %q: %w", s.Schedule, err)
	}
	s.cron.Start()
	s.logger().Info("housekeeping service started", slog.String("schedule", s.Schedule))
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *HousekeepingService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger().Info("housekeeping service stopped")
}

// RunOnce expires overdue PENDING invitations and drops expired PINs. Both
// steps run even when the other fails.
func (s *HousekeepingService) RunOnce(ctx context.Context) (SweepStats, error) {
	start := time.Now()
	now := s.now()
	var (
		stats SweepStats
		errs  error
	)

	wctx, cancel := s.writeCtx(ctx)
	defer cancel()

	n, err := s.Store.Invitations().ExpireOverdueInvitations(wctx, now)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("expire invitations: %w", err))
	} else {
		stats.InvitationsExpired = n
		metrics.InvitationTransitions.WithLabelValues("expired").Add(float64(n))
	}

	n, err = s.Store.Accounts().ClearExpiredPins(wctx, now)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("clear pins: %w", err))
	} else {
		stats.PinsCleared = n
	}

	result := "ok"
	if errs != nil {
		result = "error"
	}
	metrics.SweepRuns.WithLabelValues(result).Inc()

	s.logger().Info("expiry sweep completed",
		slog.Int64("invitations_expired", stats.InvitationsExpired),
		slog.Int64("pins_cleared", stats.PinsCleared),
		slog.Duration("took", time.Since(start)),
	)
	return stats, errs
}
