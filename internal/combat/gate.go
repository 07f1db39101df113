package combat

import "github.com/rcarvalhosa/flare-engine/internal/domain"

// Gate - политика перемещения для всех сущностей: в бою ходит только тот,
// чей сейчас ход.
type Gate struct {
	c *Coordinator
}

func (g Gate) CanMove(e *domain.Entity) bool {
	if e.Stats == nil || !e.Stats.InCombat() {
		return true
	}
	return g.c.CurrentTurnEntity() == e
}
