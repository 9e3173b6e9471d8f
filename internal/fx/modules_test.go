package fx

import (
	"testing"

	"fantasy-league/internal/scheduler"

	"go.uber.org/fx"
)

func TestModuleGraph(t *testing.T) {
	err := fx.ValidateApp(
		Module,
		fx.Invoke(func(*scheduler.Scheduler, Services) {}),
	)
	if err != nil {
		t.Fatalf("module graph is incomplete: %v", err)
	}
}
