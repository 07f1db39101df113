package domain

import "github.com/rcarvalhosa/flare-engine/internal/core/types/enums"

// StatsComponent - характеристики, ресурсы и покадровое состояние сущности.
//
// Основное состояние (CurState) пишет только покадровая логика владельца.
// Урон не меняет состояние напрямую: он поднимает флаг попадания,
// который владелец применяет в своей логике на следующем проходе.
type StatsComponent struct {
	Name     string `json:"name"`
	Hero     bool   `json:"hero"`
	HeroAlly bool   `json:"heroAlly"`

	Pos          FPoint             `json:"pos"`
	Direction    int                `json:"direction"`
	CurState     enums.EntityState  `json:"state"`
	MovementType enums.MovementType `json:"movementType"`

	// Speed - базовая скорость в тайлах за кадр.
	Speed       float64           `json:"speed"`
	ThreatRange float64           `json:"threatRange"`
	CombatStyle enums.CombatStyle `json:"combatStyle"`
	MeleeRange  float64           `json:"meleeRange"`

	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`
	MP    int `json:"mp"`
	MaxMP int `json:"maxMp"`

	Corpse bool `json:"corpse"`

	Blocking   bool    `json:"blocking"`
	BlockPower PowerID `json:"blockPower,omitempty"`

	// Cooldown - общее восстановление после любой способности.
	Cooldown         Timer   `json:"cooldown"`
	StateTimer       Timer   `json:"stateTimer"`
	HoldState        bool    `json:"holdState"`
	PreventInterrupt bool    `json:"preventInterrupt"`
	ChargeSpeed      float64 `json:"chargeSpeed"`

	Permadeath   bool `json:"permadeath"`
	DeathPenalty bool `json:"deathPenalty"`
	RefreshStats bool `json:"-"`

	Effects       EffectsComponent `json:"effects"`
	PowersPassive []PowerID        `json:"powersPassive,omitempty"`

	inCombat   bool
	pendingHit bool
}

// NewStats создаёт блок характеристик с полным здоровьем и маной.
func NewStats(name string, hp, mp int, speed float64) *StatsComponent {
	return &StatsComponent{
		Name:     name,
		HP:       hp,
		MaxHP:    hp,
		MP:       mp,
		MaxMP:    mp,
		Speed:    speed,
		CurState: enums.StateStance,
		Effects:  NewEffectsComponent(),
	}
}

// IsAlive - здоровье строго положительное.
func (s *StatsComponent) IsAlive() bool {
	return s.HP > 0
}

// InCombat - участвует ли сущность в пошаговом бою.
func (s *StatsComponent) InCombat() bool {
	return s.inCombat
}

// SetInCombat пишет только координатор боя.
func (s *StatsComponent) SetInCombat(v bool) {
	s.inCombat = v
}

// TakeDamage наносит урон. Возвращает true, если цель погибла этим ударом.
func (s *StatsComponent) TakeDamage(amount int) bool {
	if !s.IsAlive() {
		return false
	}

	amount -= int(s.Effects.Shield)
	if amount < 0 {
		amount = 0
	}

	s.HP -= amount
	if amount > 0 && !s.Blocking {
		s.pendingHit = true
	}

	if s.HP <= 0 {
		s.HP = 0
		return true
	}
	return false
}

// ConsumeHit возвращает и сбрасывает флаг попадания.
func (s *StatsComponent) ConsumeHit() bool {
	hit := s.pendingHit
	s.pendingHit = false
	return hit
}

// Heal лечит сущность
func (s *StatsComponent) Heal(amount int) {
	if !s.IsAlive() {
		return // Не лечим трупы! Нет некромантии!
	}
	s.HP += amount
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
}

// HasMP проверяет, хватает ли маны
func (s *StatsComponent) HasMP(cost int) bool {
	return s.MP >= cost
}

// SpendMP тратит ману. Возвращает false, если не хватило.
func (s *StatsComponent) SpendMP(cost int) bool {
	if s.MP < cost {
		return false
	}
	s.MP -= cost
	return true
}

// Revive - явное воскрешение. Единственный выход из DEAD.
func (s *StatsComponent) Revive(pos FPoint) {
	s.HP = s.MaxHP
	s.MP = s.MaxMP
	s.Pos = pos
	s.Corpse = false
	s.DeathPenalty = false
	s.CurState = enums.StateStance
	s.pendingHit = false
	s.Blocking = false
	s.BlockPower = NoPower
	s.HoldState = false
	s.PreventInterrupt = false
	s.ChargeSpeed = 0
	s.StateTimer = s.StateTimer.Finish()
	s.Cooldown = s.Cooldown.Finish()
}

// EffectiveSpeed - скорость с учётом эффектов, без поправки на направление.
func (s *StatsComponent) EffectiveSpeed() float64 {
	return s.Speed * s.Effects.Speed / 100
}

// ClearEffects снимает все статус-эффекты.
func (s *StatsComponent) ClearEffects() {
	s.Effects.ClearEffects()
}

// Recalc приводит ресурсы к допустимым границам после смены эффектов.
func (s *StatsComponent) Recalc() {
	s.RefreshStats = false
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	if s.MP > s.MaxMP {
		s.MP = s.MaxMP
	}
}

// Logic - покадровое обслуживание: эффекты и таймеры.
func (s *StatsComponent) Logic() {
	s.Effects.Logic()
	s.Cooldown = s.Cooldown.Tick()
	s.StateTimer = s.StateTimer.Tick()

	// Блок держится, пока жив хотя бы один эффект блока
	if s.Blocking && !s.Effects.HasTrigger(TriggerBlock) {
		s.Blocking = false
	}

	if s.RefreshStats {
		s.Recalc()
	}
}
