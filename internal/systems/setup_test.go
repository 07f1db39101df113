package systems

import (
	"os"
	"testing"

	"github.com/rcarvalhosa/flare-engine/internal/core/types"
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init(logger.Options{})

	// Exit with the result of the tests
	os.Exit(m.Run())
}

// newTestEntity создаёт живую сущность в центре клетки (x, y).
func newTestEntity(t enums.EntityType, serial uint64, name string, x, y int) *domain.Entity {
	stats := domain.NewStats(name, 10, 5, 0.1)
	stats.Pos = domain.Point{X: x, Y: y}.Center()
	stats.ThreatRange = domain.DefaultThreatRange
	stats.MeleeRange = domain.DefaultMeleeRange
	stats.Hero = t == enums.EntityTypePlayer
	stats.HeroAlly = t == enums.EntityTypeAlly
	return &domain.Entity{
		ID:    types.PackEntityID(t, serial),
		Type:  t,
		Stats: stats,
	}
}

func center(x, y int) domain.FPoint {
	return domain.Point{X: x, Y: y}.Center()
}
