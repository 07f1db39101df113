package systems

import (
	"github.com/rcarvalhosa/flare-engine/internal/domain"
)

// MovePolicy - внешнее правило, разрешающее или запрещающее перемещение.
// Пошаговый бой подставляет сюда проверку "сейчас ход этой сущности".
type MovePolicy interface {
	CanMove(e *domain.Entity) bool
}

// FreeMovement разрешает перемещение всегда.
type FreeMovement struct{}

func (FreeMovement) CanMove(*domain.Entity) bool { return true }

// MovementResult - результат одного кадра перемещения.
type MovementResult struct {
	From, To domain.FPoint
	HasMoved bool
	// Slid - полный шаг был невозможен, сдвинулись вдоль одной оси.
	Slid bool
}

// CalculateMove вычисляет шаг сущности на один кадр в её направлении. Не меняет состояние мира!
func CalculateMove(e *domain.Entity, c *MapCollision, policy MovePolicy) MovementResult {
	s := e.Stats
	res := MovementResult{From: s.Pos, To: s.Pos}

	if policy != nil && !policy.CanMove(e) {
		return res
	}
	if s.Effects.KnockbackSpeed != 0 || s.Effects.Stun || s.ChargeSpeed != 0 {
		return res
	}

	speed := s.EffectiveSpeed() * domain.SpeedMultiplier[s.Direction%domain.DirectionCount]
	if speed <= 0 {
		return res
	}
	ddx, ddy := domain.DirectionDelta(s.Direction)
	dx, dy := ddx*speed, ddy*speed

	ct := CollideTypeFor(s)
	full := domain.FPoint{X: s.Pos.X + dx, Y: s.Pos.Y + dy}
	if c.IsValidPosition(full.X, full.Y, s.MovementType, ct) {
		res.To = full
		res.HasMoved = true
		return res
	}

	// Скольжение вдоль стены: пробуем каждую ось по отдельности
	if dx != 0 && c.IsValidPosition(s.Pos.X+dx, s.Pos.Y, s.MovementType, ct) {
		res.To = domain.FPoint{X: s.Pos.X + dx, Y: s.Pos.Y}
		res.HasMoved, res.Slid = true, true
		return res
	}
	if dy != 0 && c.IsValidPosition(s.Pos.X, s.Pos.Y+dy, s.MovementType, ct) {
		res.To = domain.FPoint{X: s.Pos.X, Y: s.Pos.Y + dy}
		res.HasMoved, res.Slid = true, true
		return res
	}

	return res
}

// Move применяет CalculateMove. Возвращает true, если сущность сдвинулась.
func Move(e *domain.Entity, c *MapCollision, policy MovePolicy) bool {
	res := CalculateMove(e, c, policy)
	if res.HasMoved {
		e.Stats.Pos = res.To
	}
	return res.HasMoved
}

// MoveToward разворачивает сущность к точке и делает шаг не дальше неё.
func MoveToward(e *domain.Entity, dest domain.FPoint, c *MapCollision, policy MovePolicy) bool {
	s := e.Stats
	dist := domain.CalcDist(s.Pos, dest)
	if dist == 0 {
		return false
	}
	s.Direction = domain.CalcDirection(s.Pos.X, s.Pos.Y, dest.X, dest.Y)

	res := CalculateMove(e, c, policy)
	if !res.HasMoved {
		return false
	}
	// Не перешагиваем цель
	if domain.CalcDist(s.Pos, res.To) > dist && c.IsValidPosition(dest.X, dest.Y, s.MovementType, CollideTypeFor(s)) {
		s.Pos = dest
		return true
	}
	s.Pos = res.To
	return true
}
