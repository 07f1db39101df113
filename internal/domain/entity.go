package domain

import (
	"github.com/rcarvalhosa/flare-engine/internal/core/types"
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
)

// Behavior - покадровая логика сущности, которой не управляет игрок.
type Behavior interface {
	Logic(e *Entity)
}

// BehaviorFunc позволяет передать функцию как Behavior (удобно в тестах).
type BehaviorFunc func(e *Entity)

func (f BehaviorFunc) Logic(e *Entity) { f(e) }

type Entity struct {
	ID   types.EntityID   `json:"id"`
	Type enums.EntityType `json:"type"`

	// Stats обязателен для всего, что участвует в бою.
	Stats *StatsComponent `json:"stats"`

	// StepSounds - ID набора звуков шагов из контента.
	StepSounds string `json:"stepSounds,omitempty"`

	// Behavior == nil для аватара: его ведёт avatar.Avatar.
	Behavior Behavior `json:"-"`
}

// Logic делегирует кадр поведению. Вызывается движком для свободных
// сущностей и координатором боя в ход сущности.
func (e *Entity) Logic() {
	if e.Behavior != nil {
		e.Behavior.Logic(e)
	}
}

// IsHostile - враждебна ли сущность игроку.
func (e *Entity) IsHostile() bool {
	return e.Stats != nil && !e.Stats.Hero && !e.Stats.HeroAlly
}
