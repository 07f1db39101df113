package dungeon

import (
	"os"
	"testing"

	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/systems"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/rcarvalhosa/flare-engine/pkg/utils"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{})
	os.Exit(m.Run())
}

func TestGenerate(t *testing.T) {
	level := Generate(utils.NewSeededRoller(42), []string{"Goblin", "Cave Bat"})

	// 1. Проверка размеров мира
	if level.Width != MapWidth || level.Height != MapHeight {
		t.Errorf("Expected map size %dx%d, got %dx%d", MapWidth, MapHeight, level.Width, level.Height)
	}
	if len(level.Rooms) == 0 {
		t.Fatal("No rooms generated")
	}

	// 2. Игрок не должен появиться в стене
	start := level.Start.Tile()
	if level.TileAt(start.X, start.Y) != systems.TileFloor {
		t.Errorf("Start position %v is not a floor tile", start)
	}

	// 3. Точки появления - на полу, не на старте и не друг на друге
	seen := make(map[[2]int]bool)
	for _, s := range level.Spawns {
		p := s.Pos.Tile()
		if level.TileAt(p.X, p.Y) != systems.TileFloor {
			t.Errorf("Spawn %s at %v is not on floor", s.Template, p)
		}
		if p == start {
			t.Errorf("Spawn %s placed on hero start", s.Template)
		}
		key := [2]int{p.X, p.Y}
		if seen[key] {
			t.Errorf("Two spawns share tile %v", p)
		}
		seen[key] = true
	}
}

func TestGenerate_SameSeedSameLevel(t *testing.T) {
	a := Generate(utils.NewSeededRoller(7), []string{"Goblin"})
	b := Generate(utils.NewSeededRoller(7), []string{"Goblin"})

	if len(a.Rooms) != len(b.Rooms) || len(a.Spawns) != len(b.Spawns) {
		t.Fatalf("Levels differ: %d/%d rooms, %d/%d spawns", len(a.Rooms), len(b.Rooms), len(a.Spawns), len(b.Spawns))
	}
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			if a.TileAt(x, y) != b.TileAt(x, y) {
				t.Fatalf("Tile %d,%d differs", x, y)
			}
		}
	}
}

// Тест вспомогательной функции пересечения комнат
func TestRect_Intersects(t *testing.T) {
	r1 := Rect{0, 0, 10, 10}
	r2 := Rect{5, 5, 10, 10} // Пересекается
	r3 := Rect{20, 20, 5, 5} // Не пересекается

	if !r1.Intersects(r2) {
		t.Error("Rects should intersect")
	}

	if r1.Intersects(r3) {
		t.Error("Rects should NOT intersect")
	}
}

func TestArena(t *testing.T) {
	level := NewLevel(utils.NewSeededRoller(1)).
		WithSize(12, 10).
		WithArena().
		SpawnAt("Goblin", 3, 3).
		SpawnAt("Goblin", 3, 3). // занято
		SpawnAt("Goblin", 0, 0). // стена
		Build()

	if len(level.Spawns) != 1 {
		t.Fatalf("Expected 1 spawn, got %+v", level.Spawns)
	}

	tests := []struct {
		name string
		x, y int
		want systems.TileKind
	}{
		{"Border", 0, 5, systems.TileWall},
		{"FarBorder", 11, 9, systems.TileWall},
		{"Inside", 1, 1, systems.TileFloor},
		{"InsideFar", 10, 8, systems.TileFloor},
		{"OutOfBounds", -1, 20, systems.TileWall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := level.TileAt(tt.x, tt.y); got != tt.want {
				t.Errorf("TileAt(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	c := level.Collision()
	if c.IsValidPosition(0.5, 0.5, enums.MovementNormal, systems.CollideNormal) {
		t.Error("Border must not be walkable")
	}
	if !c.IsValidPosition(level.Start.X, level.Start.Y, enums.MovementNormal, systems.CollideNormal) {
		t.Error("Start must be walkable")
	}
}
