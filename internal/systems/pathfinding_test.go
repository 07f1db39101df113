package systems

import (
	"testing"

	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
)

func chebyshev(a, b domain.Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

func TestComputePath_AroundWall(t *testing.T) {
	// Стена x=2 с проходом только внизу (y=4)
	m := createTestMap(5, 5,
		domain.Point{X: 2, Y: 0},
		domain.Point{X: 2, Y: 1},
		domain.Point{X: 2, Y: 2},
		domain.Point{X: 2, Y: 3},
	)

	start := center(0, 0)
	goal := domain.FPoint{X: 4.3, Y: 0.7}

	path, ok := m.ComputePath(start, goal, enums.MovementNormal, 0)
	if !ok {
		t.Fatal("Expected path to be found")
	}
	if path[0] != goal {
		t.Errorf("First element must be the exact goal, got %v", path[0])
	}
	if d := chebyshev(path[len(path)-1].Tile(), start.Tile()); d != 1 {
		t.Errorf("Last waypoint must be adjacent to start, distance %d", d)
	}

	for i, p := range path {
		tile := p.Tile()
		if m.TileAt(tile.X, tile.Y) == TileWall {
			t.Errorf("Waypoint %d is inside a wall: %v", i, tile)
		}
		if i > 0 && chebyshev(tile, path[i-1].Tile()) != 1 {
			t.Errorf("Waypoints %d and %d are not neighbours", i-1, i)
		}
	}

	// Путь обязан пройти через проход
	passed := false
	for _, p := range path {
		if p.Tile() == (domain.Point{X: 2, Y: 4}) {
			passed = true
		}
	}
	if !passed {
		t.Error("Path must go through the gap at (2,4)")
	}
}

func TestComputePath_Failures(t *testing.T) {
	sealed := createTestMap(5, 5,
		domain.Point{X: 2, Y: 0},
		domain.Point{X: 2, Y: 1},
		domain.Point{X: 2, Y: 2},
		domain.Point{X: 2, Y: 3},
		domain.Point{X: 2, Y: 4},
	)

	tests := []struct {
		name  string
		m     *MapCollision
		goal  domain.FPoint
		limit int
	}{
		{"Sealed off", sealed, center(4, 0), 0},
		{"Goal in wall", sealed, center(2, 2), 0},
		{"Goal out of bounds", sealed, domain.FPoint{X: 9, Y: 9}, 0},
		{"Search limit", NewMapCollision(50, 50), center(49, 49), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if path, ok := tt.m.ComputePath(center(0, 0), tt.goal, enums.MovementNormal, tt.limit); ok {
				t.Errorf("Expected failure, got path %v", path)
			}
		})
	}
}

func TestComputePath_SameTileAndOccupiedGoal(t *testing.T) {
	m := NewMapCollision(5, 5)

	path, ok := m.ComputePath(domain.FPoint{X: 1.2, Y: 1.2}, domain.FPoint{X: 1.8, Y: 1.8}, enums.MovementNormal, 0)
	if !ok || len(path) != 1 {
		t.Fatalf("Same tile path must be just the goal, got %v %v", path, ok)
	}

	// Цель под врагом достижима, а вот сам враг на пути - нет
	m.Block(3.5, 0.5, false)
	path, ok = m.ComputePath(center(0, 0), center(3, 0), enums.MovementNormal, 0)
	if !ok {
		t.Fatal("Occupied goal must be reachable")
	}
	for _, p := range path[1:] {
		if m.IsBlocked(p.X, p.Y) {
			t.Errorf("Intermediate waypoint %v is occupied", p)
		}
	}
}
