package domain

import "encoding/json"

// ReplayAction - одна команда клиента, привязанная к кадру симуляции.
// Симуляция детерминирована при одинаковом сиде, поэтому этого достаточно
// для точного воспроизведения.
type ReplayAction struct {
	Tick    int             `json:"tick"`
	Action  ActionType      `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// ReplaySession - полная запись сессии
type ReplaySession struct {
	Seed      int64          `json:"seed"`
	Timestamp int64          `json:"timestamp"`
	FPS       int            `json:"fps"`
	Actions   []ReplayAction `json:"actions"`
}
