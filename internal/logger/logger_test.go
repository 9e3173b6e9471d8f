package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := SetLevel(&buf, zerolog.WarnLevel)

	log.Info().Msg("hidden")
	log.Warn().Str("team_id", "t1").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %s", out)
	}
	if !strings.Contains(out, `"team_id":"t1"`) || !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %s", out)
	}
}

func TestNew_LevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	if got := New().GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("level=%v want debug", got)
	}

	t.Setenv("LOG_LEVEL", "nonsense")
	if got := New().GetLevel(); got != zerolog.InfoLevel {
		t.Errorf("level=%v want info fallback", got)
	}
}
