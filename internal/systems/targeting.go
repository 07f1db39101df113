package systems

import (
	"github.com/rcarvalhosa/flare-engine/internal/domain"
)

// CursorRadius - насколько близко к центру сущности должен быть курсор.
const CursorRadius = 0.75

// ValidationResult - результат проверки цели
type ValidationResult struct {
	Target  *domain.Entity
	Valid   bool
	Message string // Сообщение об ошибке, если Valid == false
}

// ValidateInteraction проверяет, может ли actor взаимодействовать с target.
//
// Параметры:
// - rangeLimit: максимальная дистанция в тайлах.
// - needLOS: нужна ли прямая видимость.
func ValidateInteraction(actor, target *domain.Entity, rangeLimit float64, needLOS bool, c *MapCollision) ValidationResult {
	if target == nil || target.Stats == nil {
		return ValidationResult{Valid: false, Message: "Target not found."}
	}
	if !target.Stats.IsAlive() {
		return ValidationResult{Valid: false, Message: "Target is already dead."}
	}

	dist := domain.CalcDist(actor.Stats.Pos, target.Stats.Pos)
	if dist > rangeLimit {
		return ValidationResult{Valid: false, Message: "Target is too far away."}
	}

	if needLOS && dist > 0 {
		p1, p2 := actor.Stats.Pos, target.Stats.Pos
		if !c.LineOfSight(p1.X, p1.Y, p2.X, p2.Y) {
			return ValidationResult{Valid: false, Message: "You cannot see the target."}
		}
	}

	return ValidationResult{Target: target, Valid: true}
}

// EnemyAt возвращает живую враждебную сущность под курсором (ближайшую к точке) или nil.
func EnemyAt(p domain.FPoint, entities []*domain.Entity) *domain.Entity {
	var best *domain.Entity
	bestDist := CursorRadius
	for _, e := range entities {
		if e == nil || !e.IsHostile() || !e.Stats.IsAlive() {
			continue
		}
		if d := domain.CalcDist(p, e.Stats.Pos); d <= bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// NearestHostileTo ищет ближайшего живого противника для сущности
// в пределах maxDist с прямой видимостью.
func NearestHostileTo(actor *domain.Entity, entities []*domain.Entity, maxDist float64, c *MapCollision) *domain.Entity {
	var best *domain.Entity
	bestDist := maxDist
	for _, e := range entities {
		if e == nil || e == actor || e.Stats == nil || !e.Stats.IsAlive() {
			continue
		}
		if e.IsHostile() == actor.IsHostile() {
			continue
		}
		d := domain.CalcDist(actor.Stats.Pos, e.Stats.Pos)
		if d > bestDist {
			continue
		}
		p1, p2 := actor.Stats.Pos, e.Stats.Pos
		if !c.LineOfSight(p1.X, p1.Y, p2.X, p2.Y) {
			continue
		}
		best, bestDist = e, d
	}
	return best
}
