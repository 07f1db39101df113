package dungeon

import (
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/systems"
	"github.com/rcarvalhosa/flare-engine/pkg/utils"
)

// Rect - Вспомогательная структура для комнаты
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Contains - клетка внутри пола комнаты (стены комнаты не считаются).
func (r Rect) Contains(x, y int) bool {
	return x > r.X && x < r.X+r.W && y > r.Y && y < r.Y+r.H
}

// Spawn - точка появления противника из шаблона контента.
type Spawn struct {
	Template string
	Pos      domain.FPoint
}

// Level - готовая карта: тайлы, комнаты, старт игрока и точки появления.
type Level struct {
	Width  int
	Height int
	Tiles  [][]systems.TileKind
	Rooms  []Rect
	Start  domain.FPoint
	Spawns []Spawn
}

// TileAt возвращает тайл; всё за границей карты - стена.
func (l *Level) TileAt(x, y int) systems.TileKind {
	if y < 0 || y >= len(l.Tiles) || x < 0 || x >= len(l.Tiles[y]) {
		return systems.TileWall
	}
	return l.Tiles[y][x]
}

// Collision строит карту столкновений уровня. Занятость клеток сущностями
// расставляет уже сессия.
func (l *Level) Collision() *systems.MapCollision {
	c := systems.NewMapCollision(l.Width, l.Height)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			c.SetTile(x, y, l.TileAt(x, y))
		}
	}
	return c
}

func createRoom(tiles [][]systems.TileKind, room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			tiles[y][x] = systems.TileFloor
		}
	}
}

func createHCorridor(tiles [][]systems.TileKind, x1, x2, y int) {
	start := min(x1, x2)
	end := max(x1, x2)
	for x := start; x <= end; x++ {
		tiles[y][x] = systems.TileFloor
	}
}

func createVCorridor(tiles [][]systems.TileKind, y1, y2, x int) {
	start := min(y1, y2)
	end := max(y1, y2)
	for y := start; y <= end; y++ {
		tiles[y][x] = systems.TileFloor
	}
}

// LevelBuilder предоставляет fluent API для создания уровней
type LevelBuilder struct {
	width  int
	height int
	rooms  []Rect
	tiles  [][]systems.TileKind
	spawns []Spawn
	used   map[domain.Point]bool
	roller utils.Roller
}

// NewLevel создает новый builder для уровня. Вся случайность берётся из roller,
// поэтому один сид даёт одну и ту же карту.
func NewLevel(roller utils.Roller) *LevelBuilder {
	return &LevelBuilder{
		width:  MapWidth,
		height: MapHeight,
		used:   make(map[domain.Point]bool),
		roller: roller,
	}
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = width
	b.height = height
	return b
}

func (b *LevelBuilder) fillWalls() {
	b.tiles = make([][]systems.TileKind, b.height)
	for y := 0; y < b.height; y++ {
		row := make([]systems.TileKind, b.width)
		for x := range row {
			row[x] = systems.TileWall
		}
		b.tiles[y] = row
	}
	b.rooms = b.rooms[:0]
}

// WithRooms генерирует комнаты и коридоры
func (b *LevelBuilder) WithRooms(maxRooms int) *LevelBuilder {
	b.fillWalls()

	for i := 0; i < maxRooms; i++ {
		w := b.roller.RandBetween(MinSize, MaxSize)
		h := b.roller.RandBetween(MinSize, MaxSize)
		if w >= b.width-1 || h >= b.height-1 {
			continue
		}
		x := b.roller.RandBetween(1, b.width-w-1)
		y := b.roller.RandBetween(1, b.height-h-1)

		newRoom := Rect{X: x, Y: y, W: w, H: h}

		failed := false
		for _, other := range b.rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		createRoom(b.tiles, newRoom)

		// Соединяем с предыдущей комнатой
		if len(b.rooms) > 0 {
			prevX, prevY := b.rooms[len(b.rooms)-1].Center()
			currX, currY := newRoom.Center()

			if b.roller.Intn(2) == 0 {
				createHCorridor(b.tiles, prevX, currX, prevY)
				createVCorridor(b.tiles, prevY, currY, currX)
			} else {
				createVCorridor(b.tiles, prevY, currY, prevX)
				createHCorridor(b.tiles, prevX, currX, currY)
			}
		}
		b.rooms = append(b.rooms, newRoom)
	}

	return b
}

// WithArena делает одну открытую комнату во всю карту, обнесённую стеной.
func (b *LevelBuilder) WithArena() *LevelBuilder {
	b.fillWalls()
	arena := Rect{X: 0, Y: 0, W: b.width - 1, H: b.height - 1}
	createRoom(b.tiles, arena)
	b.rooms = append(b.rooms, arena)
	return b
}

// WithPits роняет по count ям в комнаты, кроме первой.
func (b *LevelBuilder) WithPits(count int) *LevelBuilder {
	for i := 0; i < count && len(b.rooms) > 1; i++ {
		room := b.rooms[b.roller.RandBetween(1, len(b.rooms)-1)]
		if p, ok := b.freeTileIn(room); ok {
			b.tiles[p.Y][p.X] = systems.TilePit
			b.used[p] = true
		}
	}
	return b
}

// SpawnEnemy размещает противников шаблона в случайных комнатах (кроме первой).
func (b *LevelBuilder) SpawnEnemy(templateName string, count int) *LevelBuilder {
	for i := 0; i < count && len(b.rooms) > 1; i++ {
		room := b.rooms[b.roller.RandBetween(1, len(b.rooms)-1)]
		if p, ok := b.freeTileIn(room); ok {
			b.SpawnAt(templateName, p.X, p.Y)
		}
	}
	return b
}

// SpawnAt ставит противника в конкретную клетку. Стены и занятые клетки пропускаются.
func (b *LevelBuilder) SpawnAt(templateName string, x, y int) *LevelBuilder {
	p := domain.Point{X: x, Y: y}
	if b.tileAt(x, y) != systems.TileFloor || b.used[p] || p == b.startTile() {
		return b
	}
	b.used[p] = true
	b.spawns = append(b.spawns, Spawn{Template: templateName, Pos: p.Center()})
	return b
}

// freeTileIn ищет свободную клетку пола около центра комнаты (макс 20 попыток)
func (b *LevelBuilder) freeTileIn(room Rect) (domain.Point, bool) {
	cx, cy := room.Center()
	start := b.startTile()
	for attempt := 0; attempt < 20; attempt++ {
		p := domain.Point{
			X: cx + b.roller.RandBetween(-room.W/2+1, room.W/2-1),
			Y: cy + b.roller.RandBetween(-room.H/2+1, room.H/2-1),
		}
		if !room.Contains(p.X, p.Y) || b.tileAt(p.X, p.Y) != systems.TileFloor {
			continue
		}
		if b.used[p] || p == start {
			continue
		}
		return p, true
	}
	return domain.Point{}, false
}

func (b *LevelBuilder) tileAt(x, y int) systems.TileKind {
	if y < 0 || y >= len(b.tiles) || x < 0 || x >= len(b.tiles[y]) {
		return systems.TileWall
	}
	return b.tiles[y][x]
}

func (b *LevelBuilder) startTile() domain.Point {
	if len(b.rooms) > 0 {
		cx, cy := b.rooms[0].Center()
		return domain.Point{X: cx, Y: cy}
	}
	return domain.Point{X: b.width / 2, Y: b.height / 2}
}

// GetStartPos возвращает стартовую позицию (центр первой комнаты)
func (b *LevelBuilder) GetStartPos() domain.FPoint {
	return b.startTile().Center()
}

// Build собирает готовый уровень. Без комнат карта пустая, но валидная.
func (b *LevelBuilder) Build() *Level {
	if b.tiles == nil {
		b.fillWalls()
	}
	return &Level{
		Width:  b.width,
		Height: b.height,
		Tiles:  b.tiles,
		Rooms:  append([]Rect(nil), b.rooms...),
		Start:  b.GetStartPos(),
		Spawns: append([]Spawn(nil), b.spawns...),
	}
}
