package systems

import (
	"math"

	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
)

// TileKind - статическая проходимость клетки.
type TileKind uint8

const (
	TileFloor TileKind = iota
	TileWall
	// TilePit непроходим пешком, но его можно перелететь.
	TilePit
)

// CollideType - с какими занятыми клетками сталкивается проверяемая сущность.
type CollideType uint8

const (
	// CollideNormal - обычная сущность, упирается в любую занятую клетку.
	CollideNormal CollideType = iota
	// CollideHero - игрок и союзники: проходят сквозь союзников, упираются во врагов.
	CollideHero
	// CollideNoEntity - занятость клеток не учитывается (только статика).
	CollideNoEntity
)

// CollideTypeFor возвращает тип столкновений для сущности.
func CollideTypeFor(s *domain.StatsComponent) CollideType {
	if s.Hero || s.HeroAlly {
		return CollideHero
	}
	return CollideNormal
}

type occupancy uint8

const (
	occupancyNone occupancy = iota
	occupancyAlly
	occupancyEnemy
)

// DefaultPathLimit - сколько узлов может раскрыть A* по умолчанию.
const DefaultPathLimit = 4096

// MapCollision - сетка проходимости карты и занятости клеток сущностями.
// Сущности блокируют свою клетку в конце кадра и снимают блок в начале,
// чтобы не сталкиваться сами с собой.
type MapCollision struct {
	Width  int
	Height int

	tiles    []TileKind
	occupied []occupancy
}

// NewMapCollision создаёт пустую (полностью проходимую) карту.
func NewMapCollision(width, height int) *MapCollision {
	return &MapCollision{
		Width:    width,
		Height:   height,
		tiles:    make([]TileKind, width*height),
		occupied: make([]occupancy, width*height),
	}
}

func (m *MapCollision) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

func (m *MapCollision) index(x, y int) int {
	return y*m.Width + x
}

// SetTile задаёт статику клетки. Клетки вне карты игнорируются.
func (m *MapCollision) SetTile(x, y int, kind TileKind) {
	if m.inBounds(x, y) {
		m.tiles[m.index(x, y)] = kind
	}
}

// TileAt возвращает статику клетки. Всё за пределами карты - стена.
func (m *MapCollision) TileAt(x, y int) TileKind {
	if !m.inBounds(x, y) {
		return TileWall
	}
	return m.tiles[m.index(x, y)]
}

// IsWalkable проверяет только статику для данного типа передвижения.
func (m *MapCollision) IsWalkable(x, y int, mt enums.MovementType) bool {
	if !m.inBounds(x, y) {
		return false
	}
	switch m.tiles[m.index(x, y)] {
	case TileWall:
		return mt == enums.MovementIntangible
	case TilePit:
		return mt != enums.MovementNormal
	default:
		return true
	}
}

func (m *MapCollision) blockedFor(x, y int, ct CollideType) bool {
	if ct == CollideNoEntity || !m.inBounds(x, y) {
		return false
	}
	switch m.occupied[m.index(x, y)] {
	case occupancyEnemy:
		return true
	case occupancyAlly:
		return ct == CollideNormal
	default:
		return false
	}
}

// IsValidPosition - можно ли стоять в точке.
func (m *MapCollision) IsValidPosition(x, y float64, mt enums.MovementType, ct CollideType) bool {
	if x < 0 || y < 0 {
		return false
	}
	tx, ty := int(x), int(y)
	if !m.IsWalkable(tx, ty, mt) {
		return false
	}
	return !m.blockedFor(tx, ty, ct)
}

// Block помечает клетку занятой.
func (m *MapCollision) Block(x, y float64, isAlly bool) {
	tx, ty := int(math.Floor(x)), int(math.Floor(y))
	if !m.inBounds(tx, ty) {
		return
	}
	if isAlly {
		m.occupied[m.index(tx, ty)] = occupancyAlly
	} else {
		m.occupied[m.index(tx, ty)] = occupancyEnemy
	}
}

// Unblock освобождает клетку.
func (m *MapCollision) Unblock(x, y float64) {
	tx, ty := int(math.Floor(x)), int(math.Floor(y))
	if m.inBounds(tx, ty) {
		m.occupied[m.index(tx, ty)] = occupancyNone
	}
}

// IsBlocked - занята ли клетка какой-либо сущностью.
func (m *MapCollision) IsBlocked(x, y float64) bool {
	tx, ty := int(math.Floor(x)), int(math.Floor(y))
	return m.inBounds(tx, ty) && m.occupied[m.index(tx, ty)] != occupancyNone
}

// LineOfSight - ничего ли не загораживает прямую видимость (стены и края карты).
func (m *MapCollision) LineOfSight(x0, y0, x1, y1 float64) bool {
	from := domain.FPoint{X: x0, Y: y0}.Tile()
	to := domain.FPoint{X: x1, Y: y1}.Tile()
	return traceLine(from, to, func(p domain.Point) bool {
		return m.TileAt(p.X, p.Y) == TileWall
	})
}

// LineOfMovement - можно ли пройти по прямой: каждая клетка после старта
// должна быть проходима и не занята.
func (m *MapCollision) LineOfMovement(x0, y0, x1, y1 float64, mt enums.MovementType) bool {
	from := domain.FPoint{X: x0, Y: y0}.Tile()
	to := domain.FPoint{X: x1, Y: y1}.Tile()
	if from == to {
		return m.IsWalkable(to.X, to.Y, mt)
	}
	if !m.IsWalkable(to.X, to.Y, mt) || m.blockedFor(to.X, to.Y, CollideNormal) {
		return false
	}
	return traceLine(from, to, func(p domain.Point) bool {
		return !m.IsWalkable(p.X, p.Y, mt) || m.blockedFor(p.X, p.Y, CollideNormal)
	})
}
