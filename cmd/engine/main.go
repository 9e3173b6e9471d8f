package main

import (
	"context"
	"database/sql"

	"fantasy-league/internal/cache"
	"fantasy-league/internal/constants"
	fxmodules "fantasy-league/internal/fx"
	"fantasy-league/internal/scheduler"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runEngine),
	).Run()
}

func runEngine(
	lc fx.Lifecycle,
	sched *scheduler.Scheduler,
	_ fxmodules.Services,
	lbCache cache.LeaderboardCache,
	db *sql.DB,
	logger zerolog.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				runCtx, cancel := context.WithTimeout(context.Background(), constants.JobTimeout)
				defer cancel()
				if err := sched.RunNow(runCtx); err != nil {
					logger.Error().Err(err).Msg("initial refresh failed")
				}
			}()
			sched.Start()
			logger.Info().Msg("engine started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down engine")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := sched.Stop(shutdownCtx); err != nil {
				logger.Warn().Err(err).Msg("scheduler did not stop in time")
			}

			if err := lbCache.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing leaderboard cache")
			}

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
				return err
			}
			logger.Info().Msg("engine stopped gracefully")
			return nil
		},
	})
}
