package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fantasy-league/internal/rules"

	"github.com/rs/zerolog"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("RULES_FILE", "")
	t.Setenv("TRADE_BUDGET", "")
	t.Setenv("RANK_CEILING", "")
	t.Setenv("SEASON", "2025")

	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "fantasy.db" {
		t.Errorf("DBPath=%q", cfg.DBPath)
	}
	if cfg.Season != 2025 {
		t.Errorf("Season=%d want 2025", cfg.Season)
	}
	if cfg.Rules != rules.DefaultConfig() {
		t.Errorf("Rules=%+v want defaults", cfg.Rules)
	}
}

func TestLoad_RulesFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "trade_budget: 5\nrank_ceiling: 15\nrestricted_month: 2\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("RULES_FILE", path)
	t.Setenv("RANK_CEILING", "12")
	t.Setenv("TRADE_BUDGET", "")
	t.Setenv("SEASON", "")

	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := rules.Config{TradeBudget: 5, RankCeiling: 12, ActivityThreshold: 100, RestrictedMonth: time.February}
	if cfg.Rules != want {
		t.Errorf("Rules=%+v want %+v", cfg.Rules, want)
	}
	if Rules(cfg) != want {
		t.Error("Rules provider disagrees with config")
	}
}

func TestLoad_InvalidRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("rank_ceiling: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RULES_FILE", path)
	t.Setenv("RANK_CEILING", "")
	t.Setenv("SEASON", "")

	if _, err := Load(zerolog.Nop()); !errors.Is(err, rules.ErrInvalidConfig) {
		t.Fatalf("err=%v want ErrInvalidConfig", err)
	}
}

func TestLoad_BadNumbers(t *testing.T) {
	t.Setenv("RULES_FILE", "")
	t.Setenv("SEASON", "")
	t.Setenv("TRADE_BUDGET", "many")

	if _, err := Load(zerolog.Nop()); err == nil {
		t.Fatal("expected error for non-numeric TRADE_BUDGET")
	}
}
