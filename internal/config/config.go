package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"fantasy-league/internal/constants"
	"fantasy-league/internal/rules"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath          string
	LogLevel        string
	RulesFile       string
	FeedBaseURL     string
	FeedAPIKey      string
	RedisAddr       string
	PoolSyncCron    string
	LeaderboardCron string
	Season          int
	CacheTTL        time.Duration
	Rules           rules.Config
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:          getEnv("DB_PATH", "fantasy.db"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RulesFile:       getEnv("RULES_FILE", ""),
		FeedBaseURL:     getEnv("FEED_BASE_URL", ""),
		FeedAPIKey:      getEnv("FEED_API_KEY", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		PoolSyncCron:    getEnv("POOL_SYNC_CRON", "0 */15 * * * *"),
		LeaderboardCron: getEnv("LEADERBOARD_CRON", "0 */5 * * * *"),
		Season:          time.Now().Year(),
		CacheTTL:        constants.LeaderboardCacheTTL,
		Rules:           rules.DefaultConfig(),
	}

	if v := os.Getenv("SEASON"); v != "" {
		season, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SEASON %q: %w", v, err)
		}
		cfg.Season = season
	}

	if cfg.RulesFile != "" {
		if err := loadRulesFile(cfg.RulesFile, &cfg.Rules); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("TRADE_BUDGET"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TRADE_BUDGET %q: %w", v, err)
		}
		cfg.Rules.TradeBudget = n
	}
	if v := os.Getenv("RANK_CEILING"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RANK_CEILING %q: %w", v, err)
		}
		cfg.Rules.RankCeiling = n
	}

	if err := cfg.Rules.Validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("log_level", cfg.LogLevel).
		Int("season", cfg.Season).
		Bool("feed_enabled", cfg.FeedBaseURL != "").
		Bool("cache_enabled", cfg.RedisAddr != "").
		Int("trade_budget", cfg.Rules.TradeBudget).
		Int("rank_ceiling", cfg.Rules.RankCeiling).
		Float64("activity_threshold", cfg.Rules.ActivityThreshold).
		Str("restricted_month", cfg.Rules.RestrictedMonth.String()).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("configuration loaded")

	return cfg, nil
}

// loadRulesFile overlays the YAML rules file on top of dst; keys missing
// from the file keep their current values.
func loadRulesFile(path string, dst *rules.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse rules file: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Rules exposes the league rules to the fx graph.
func Rules(cfg *Config) rules.Config {
	return cfg.Rules
}

var Module = fx.Provide(Load, Rules)
