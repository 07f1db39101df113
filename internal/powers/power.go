// Package powers описывает способности и исполняет их.
package powers

import (
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
)

// ReplaceRule: пока на заклинателе висит Count эффектов EffectID,
// способность подменяется на PowerID.
type ReplaceRule struct {
	EffectID string
	Count    int
	PowerID  domain.PowerID
}

// ChainPower - способность, которая срабатывает вместе с основной с шансом Chance%.
type ChainPower struct {
	PowerID domain.PowerID
	Chance  int
}

// EffectDef - шаблон эффекта. Duration в кадрах, 0 - постоянный.
type EffectDef struct {
	ID        string
	Kind      domain.EffectKind
	Magnitude float64
	Duration  int
	Trigger   domain.EffectTrigger
}

// Instantiate создаёт экземпляр эффекта от источника.
func (d EffectDef) Instantiate(source domain.PowerID, passive bool) domain.Effect {
	return domain.Effect{
		ID:        d.ID,
		Kind:      d.Kind,
		Magnitude: d.Magnitude,
		Timer:     domain.NewTimer(d.Duration),
		Trigger:   d.Trigger,
		Passive:   passive,
		Source:    source,
	}
}

// Power - определение способности. Все длительности в кадрах.
type Power struct {
	ID          domain.PowerID
	Name        string
	Type        enums.PowerType
	NewState    enums.PowerState
	StartingPos enums.StartingPos

	// Face - развернуть заклинателя к цели.
	Face bool
	// Passive способности активируются автоматически, пока заклинатель жив.
	Passive bool

	Cooldown         int
	AttackAnim       string
	AttackSpeed      float64
	StateDuration    int
	ChargeSpeed      float64
	PreventInterrupt bool

	ManaCost int
	Damage   int
	// Range - дальность от заклинателя, Radius - зона поражения вокруг точки цели.
	Range       float64
	Radius      float64
	RequiresLOS bool

	Sound string
	// Summon - шаблон сущности для SPAWN.
	Summon string

	PreChain        []ChainPower
	ReplaceByEffect []ReplaceRule
	// PostEffects вешаются на заклинателя, TargetEffects - на поражённую цель.
	PostEffects   []EffectDef
	TargetEffects []EffectDef
}

// IsInstant - срабатывает без анимации и состояния POWER.
func (p *Power) IsInstant() bool {
	return p.NewState == enums.PowerStateInstant
}

func (p *Power) IsBlock() bool {
	return p.Type == enums.PowerTypeBlock
}
