package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fantasy-league/internal/config"
	"fantasy-league/internal/constants"
	"fantasy-league/internal/domain"
	"fantasy-league/internal/feed"
	"fantasy-league/internal/service"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs the periodic pool sync and leaderboard refresh.
type Scheduler struct {
	cron        *cron.Cron
	poolSync    *service.PoolSyncService
	leaderboard *service.LeaderboardService
	season      int
	logger      zerolog.Logger
}

func New(cfg *config.Config, poolSync *service.PoolSyncService, leaderboard *service.LeaderboardService, logger zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:        cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		poolSync:    poolSync,
		leaderboard: leaderboard,
		season:      cfg.Season,
		logger:      logger,
	}

	if _, err := s.cron.AddFunc(cfg.PoolSyncCron, s.job("pool_sync", s.SyncPool)); err != nil {
		return nil, fmt.Errorf("register pool sync: %w", err)
	}
	if _, err := s.cron.AddFunc(cfg.LeaderboardCron, s.job("leaderboard_refresh", s.RefreshLeaderboards)); err != nil {
		return nil, fmt.Errorf("register leaderboard refresh: %w", err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
}

// Stop halts the cron loop and waits for running jobs until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info().Msg("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// RunNow syncs the pool and then refreshes every leaderboard once.
func (s *Scheduler) RunNow(ctx context.Context) error {
	if err := s.SyncPool(ctx); err != nil {
		return err
	}
	return s.RefreshLeaderboards(ctx)
}

func (s *Scheduler) SyncPool(ctx context.Context) error {
	_, err := s.poolSync.Sync(ctx)
	if errors.Is(err, feed.ErrDisabled) {
		return nil
	}
	return err
}

// RefreshLeaderboards rebuilds the global board and one board per region.
func (s *Scheduler) RefreshLeaderboards(ctx context.Context) error {
	scopes := append([]domain.Region{""}, domain.Regions...)

	var errs []error
	for _, region := range scopes {
		if _, err := s.leaderboard.Refresh(ctx, s.season, region); err != nil {
			errs = append(errs, fmt.Errorf("region %q: %w", region, err))
		}
	}
	return errors.Join(errs...)
}

// job wraps fn with a run id, a timeout and start/finish logging.
func (s *Scheduler) job(name string, fn func(context.Context) error) func() {
	return func() {
		start := time.Now()
		runID := uuid.New().String()
		log := s.logger.With().Str("job", name).Str("run_id", runID).Logger()

		ctx, cancel := context.WithTimeout(context.Background(), constants.JobTimeout)
		defer cancel()
		ctx = log.WithContext(ctx)

		log.Info().Msg("job started")
		if err := fn(ctx); err != nil {
			log.Error().Err(err).Dur("duration", time.Since(start)).Msg("job failed")
			return
		}
		log.Info().
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Dur("duration", time.Since(start)).
			Msg("job completed")
	}
}
