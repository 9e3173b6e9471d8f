// Package rules holds the league's domain rules: leaderboard ranking,
// percentile statistics, trade validation and replacement search. Every
// function here is a pure computation over caller-supplied snapshots.
package rules

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidConfig = errors.New("invalid rules config")

// Config stores the season-tunable rule parameters.
type Config struct {
	TradeBudget       int        `yaml:"trade_budget"`
	RankCeiling       int        `yaml:"rank_ceiling"`
	ActivityThreshold float64    `yaml:"activity_threshold"`
	RestrictedMonth   time.Month `yaml:"restricted_month"`
}

func DefaultConfig() Config {
	return Config{
		TradeBudget:       3,
		RankCeiling:       10,
		ActivityThreshold: 100,
		RestrictedMonth:   time.January,
	}
}

func (c Config) Validate() error {
	if c.TradeBudget < 0 {
		return fmt.Errorf("%w: trade_budget must be >= 0, got %d", ErrInvalidConfig, c.TradeBudget)
	}
	if c.RankCeiling < 1 {
		return fmt.Errorf("%w: rank_ceiling must be >= 1, got %d", ErrInvalidConfig, c.RankCeiling)
	}
	if c.ActivityThreshold < 0 {
		return fmt.Errorf("%w: activity_threshold must be >= 0, got %v", ErrInvalidConfig, c.ActivityThreshold)
	}
	if c.RestrictedMonth < time.January || c.RestrictedMonth > time.December {
		return fmt.Errorf("%w: restricted_month must be 1..12, got %d", ErrInvalidConfig, c.RestrictedMonth)
	}
	return nil
}
