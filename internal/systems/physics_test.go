package systems

import (
	"testing"

	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
)

// Helper для создания карты со стенами в нужных местах
func createTestMap(w, h int, walls ...domain.Point) *MapCollision {
	m := NewMapCollision(w, h)
	for _, p := range walls {
		m.SetTile(p.X, p.Y, TileWall)
	}
	return m
}

func TestLineOfSight(t *testing.T) {
	// Карта 5x5
	// . . . . .
	// . . # . .  (2,1) - стена
	// . # # # .  (1,2), (2,2), (3,2) - стена
	// . . # . .  (2,3) - стена
	// . . . . .
	m := createTestMap(5, 5,
		domain.Point{X: 2, Y: 1},
		domain.Point{X: 1, Y: 2},
		domain.Point{X: 2, Y: 2},
		domain.Point{X: 3, Y: 2},
		domain.Point{X: 2, Y: 3},
	)

	tests := []struct {
		name string
		p1   domain.FPoint
		p2   domain.FPoint
		want bool
	}{
		{"Clear horizontal", center(0, 0), center(4, 0), true},
		{"Blocked horizontal", center(0, 2), center(4, 2), false},
		{"Clear diagonal", center(0, 0), center(1, 1), true},
		{"Blocked diagonal", center(0, 0), center(4, 4), false}, // через (2,2)
		{"Adjacent wall", center(2, 1), center(2, 2), true},     // Стоим рядом со стеной и смотрим на неё
		{"Behind wall", center(2, 0), center(2, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.LineOfSight(tt.p1.X, tt.p1.Y, tt.p2.X, tt.p2.Y); got != tt.want {
				t.Errorf("LineOfSight(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

func TestLineOfMovement(t *testing.T) {
	m := createTestMap(6, 3, domain.Point{X: 5, Y: 1})

	from := center(0, 1)
	if !m.LineOfMovement(from.X, from.Y, 4.5, 1.5, enums.MovementNormal) {
		t.Error("Expected clear line of movement")
	}

	if m.LineOfMovement(from.X, from.Y, 5.5, 1.5, enums.MovementNormal) {
		t.Error("Line ending in a wall must not be walkable")
	}
	if !m.LineOfMovement(from.X, from.Y, 5.5, 1.5, enums.MovementIntangible) {
		t.Error("Intangible movement ignores walls")
	}

	m.Block(2.5, 1.5, false)
	if m.LineOfMovement(from.X, from.Y, 4.5, 1.5, enums.MovementNormal) {
		t.Error("Entity on the line must block movement")
	}
	m.Unblock(2.5, 1.5)
	if !m.LineOfMovement(from.X, from.Y, 4.5, 1.5, enums.MovementNormal) {
		t.Error("Unblocked tile must be passable again")
	}
}

func TestIsValidPosition(t *testing.T) {
	m := NewMapCollision(4, 4)
	m.SetTile(1, 1, TilePit)
	m.Block(2.5, 2.5, true)
	m.Block(3.5, 3.5, false)

	tests := []struct {
		name string
		x, y float64
		mt   enums.MovementType
		ct   CollideType
		want bool
	}{
		{"Floor", 0.5, 0.5, enums.MovementNormal, CollideNormal, true},
		{"Out of bounds", -0.1, 0.5, enums.MovementNormal, CollideNormal, false},
		{"Pit on foot", 1.5, 1.5, enums.MovementNormal, CollideNormal, false},
		{"Pit flying", 1.5, 1.5, enums.MovementFlying, CollideNormal, true},
		{"Ally for enemy", 2.5, 2.5, enums.MovementNormal, CollideNormal, false},
		{"Ally for hero", 2.5, 2.5, enums.MovementNormal, CollideHero, true},
		{"Enemy for hero", 3.5, 3.5, enums.MovementNormal, CollideHero, false},
		{"Enemy ignoring entities", 3.5, 3.5, enums.MovementNormal, CollideNoEntity, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.IsValidPosition(tt.x, tt.y, tt.mt, tt.ct); got != tt.want {
				t.Errorf("IsValidPosition(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
