package fx

import (
	"database/sql"

	"fantasy-league/internal/cache"
	"fantasy-league/internal/config"
	"fantasy-league/internal/database"
	"fantasy-league/internal/db"
	"fantasy-league/internal/feed"
	"fantasy-league/internal/logger"
	"fantasy-league/internal/repository"
	"fantasy-league/internal/rules"
	"fantasy-league/internal/scheduler"
	"fantasy-league/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// Services is the caller-facing surface of the engine. Requesting it at
// startup makes a broken service graph fail on launch.
type Services struct {
	fx.In

	Teams        *service.TeamService
	Trades       *service.TradeService
	Leaderboard  *service.LeaderboardService
	Stats        *service.StatsService
	Replacements *service.ReplacementService
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewPlayerPoolRepository),
	fx.Provide(repository.NewTeamRepository),
	fx.Provide(repository.NewTradeRepository),
	fx.Provide(repository.NewLeaderboardRepository),
	// rules
	fx.Provide(rules.NewEngine),
	// infra
	fx.Provide(service.SystemClock),
	fx.Provide(cache.New),
	fx.Provide(feed.NewClient),
	fx.Provide(service.ProvideRankingFeed),
	// svc
	fx.Provide(service.NewTeamService),
	fx.Provide(service.NewTradeService),
	fx.Provide(service.NewLeaderboardService),
	fx.Provide(service.NewStatsService),
	fx.Provide(service.NewReplacementService),
	fx.Provide(service.NewPoolSyncService),
	// jobs
	fx.Provide(scheduler.New),
)
