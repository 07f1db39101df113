package systems

import (
	"fmt"

	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/sirupsen/logrus"
)

// HitResult - итог одного удара.
type HitResult struct {
	Damage  int
	Died    bool
	Message string
}

// ApplyHit наносит урон цели. Состояние цели (HIT/DEAD) меняет её собственная логика.
func ApplyHit(attacker, target *domain.Entity, damage int) HitResult {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":   "combat_system",
		"attacker_id": attacker.ID,
		"target_id":   target.ID,
	})

	// --- Проверка граничных условий ---

	if target.Stats == nil {
		combatLogger.Warn("Attack failed: target has no StatsComponent.")
		return HitResult{}
	}
	if !target.Stats.IsAlive() {
		combatLogger.Info("Attack ineffective: target is already dead.")
		return HitResult{Message: fmt.Sprintf("%s is already dead.", target.Stats.Name)}
	}

	if damage < 1 {
		damage = 1
	}

	hpBefore := target.Stats.HP
	died := target.Stats.TakeDamage(damage)
	hpAfter := target.Stats.HP

	combatLogger.WithFields(logrus.Fields{
		"attacker_name": attacker.Stats.Name,
		"target_name":   target.Stats.Name,
		"damage":        damage,
		"blocking":      target.Stats.Blocking,
		"hp_before":     hpBefore,
		"hp_after":      hpAfter,
		"target_died":   died,
	}).Info("Attack resolved.")

	msg := fmt.Sprintf("%s hits %s for %d damage.", attacker.Stats.Name, target.Stats.Name, hpBefore-hpAfter)
	if died {
		msg += fmt.Sprintf(" %s dies.", target.Stats.Name)
	}

	return HitResult{Damage: hpBefore - hpAfter, Died: died, Message: msg}
}
