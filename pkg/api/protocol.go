package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой полный "снимок" сессии на конкретном кадре.
// Отправляется подписчикам каждый кадр, в котором что-то изменилось.
type ServerResponse struct {
	// Type тип сообщения: "INIT" для первого снимка с картой, дальше "UPDATE".
	Type string `json:"type"`

	// Tick номер кадра симуляции.
	Tick int `json:"tick"`

	// MyEntityID ID аватара игрока.
	MyEntityID string `json:"myEntityId,omitempty"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map непроходимые тайлы карты. Приходит только в INIT.
	Map []TileView `json:"map,omitempty"`

	// Entities все сущности уровня, включая трупы.
	Entities []EntityView `json:"entities,omitempty"`

	Avatar    *AvatarView    `json:"avatar,omitempty"`
	Combat    *CombatView    `json:"combat,omitempty"`
	ActionBar *ActionBarView `json:"actionBar,omitempty"`

	// Logs срез новых сообщений, сгенерированных с прошлого снимка.
	Logs []LogEntry `json:"logs,omitempty"`

	// Sounds звуки, которые клиент должен проиграть на этом кадре.
	Sounds []string `json:"sounds,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO для одного непроходимого тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`
	// Kind - "WALL" или "PIT". Пол не передаётся.
	Kind string `json:"kind"`
}

// PointView - точка в тайловых координатах (дробная).
type PointView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EntityView это DTO для игровой сущности.
type EntityView struct {
	ID   string `json:"id"`
	Type string `json:"type"` // PLAYER, ENEMY, ALLY
	Name string `json:"name"`

	Pos       PointView `json:"pos"`
	Direction int       `json:"direction"`
	State     string    `json:"state"`
	InCombat  bool      `json:"inCombat,omitempty"`
	Corpse    bool      `json:"corpse,omitempty"`

	Stats *StatsView `json:"stats,omitempty"`
}

// StatsView это DTO для характеристик сущности.
type StatsView struct {
	HP     int  `json:"hp"`
	MaxHP  int  `json:"maxHp"`
	MP     int  `json:"mp"`
	MaxMP  int  `json:"maxMp"`
	IsDead bool `json:"isDead"`
}

// AvatarView - то, что клиенту нужно знать об управлении аватаром.
type AvatarView struct {
	State string `json:"state"`
	// Power - текущая способность, 0 если нет.
	Power       uint32      `json:"power,omitempty"`
	Target      PointView   `json:"target"`
	Path        []PointView `json:"path,omitempty"`
	LockEnemyID string      `json:"lockEnemyId,omitempty"`
}

// InitiativeView - одна строка очереди ходов.
type InitiativeView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Roll int    `json:"roll"`
}

// CombatView - состояние пошагового боя.
type CombatView struct {
	State            string           `json:"state"` // inactive, transitioning, active
	Round            int              `json:"round,omitempty"`
	ActiveEntityID   string           `json:"activeEntityId,omitempty"`
	ActionsRemaining int              `json:"actionsRemaining,omitempty"`
	MovementRange    float64          `json:"movementRange,omitempty"`
	MovementStart    *PointView       `json:"movementStart,omitempty"`
	Order            []InitiativeView `json:"order,omitempty"`
}

// SlotView - слот панели действий.
type SlotView struct {
	Power    uint32  `json:"power"`
	Enabled  bool    `json:"enabled"`
	Cooldown float64 `json:"cooldown"`
}

// ActionBarView - панель действий: 10 слотов и две кнопки мыши.
type ActionBarView struct {
	Slots          []SlotView `json:"slots"`
	EndTurnVisible bool       `json:"endTurnVisible"`
}

// LogEntry представляет одну запись в игровом логе (чате).
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, ERROR
	Tick      int    `json:"tick"`      // Кадр, на котором запись появилась
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID клиента. Заполняется сервером из соединения.
	Token string `json:"token,omitempty"`

	// Action название действия: INIT, INPUT, END_TURN, RESPAWN.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// InputPayload - снимок ввода клиента. Действует до следующего снимка.
type InputPayload struct {
	// Pressed - зажатые клавиши: UP, DOWN, LEFT, RIGHT, MAIN1, MAIN2,
	// SHIFT, BAR_1..BAR_0, END_TURN.
	Pressed    []string `json:"pressed"`
	MouseX     float64  `json:"mouseX"`
	MouseY     float64  `json:"mouseY"`
	UsingMouse bool     `json:"usingMouse"`
	OverUI     bool     `json:"overUi,omitempty"`
}

// RespawnPayload - точка воскрешения. Без точки - старт уровня.
type RespawnPayload struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
}
