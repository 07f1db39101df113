package engine

import (
	"os"
	"testing"

	"github.com/rcarvalhosa/flare-engine/internal/config"
	"github.com/rcarvalhosa/flare-engine/internal/content"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/pkg/dungeon"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/rcarvalhosa/flare-engine/pkg/utils"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{})
	os.Exit(m.Run())
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 7
	cfg.FPS = 30
	return cfg
}

func loadContent(t *testing.T, fps int) *content.Content {
	t.Helper()
	c, err := content.LoadDefault(fps)
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	return c
}

type spawnAt struct {
	name string
	x, y int
}

// arenaSession - открытая арена 12x12, герой в центре (5,5).
func arenaSession(t *testing.T, spawns ...spawnAt) *Session {
	t.Helper()
	cfg := testConfig()
	roller := utils.NewSeededRoller(cfg.Seed)
	b := dungeon.NewLevel(roller).WithSize(12, 12).WithArena()
	for _, sp := range spawns {
		b.SpawnAt(sp.name, sp.x, sp.y)
	}
	return NewSession(cfg, loadContent(t, cfg.FPS), b.Build(), roller)
}

func findByName(s *Session, name string) *domain.Entity {
	for _, e := range s.Entities() {
		if e.Stats.Name == name {
			return e
		}
	}
	return nil
}

// ticks прогоняет n кадров.
func ticks(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}
