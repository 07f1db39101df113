package avatar

import (
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/sirupsen/logrus"
)

// QueueAction ставит способность в очередь текущего кадра.
func (a *Avatar) QueueAction(action ActionData) {
	a.ActionQueue = append(a.ActionQueue, action)
}

// handleActionQueue разбирает очередь кадра: подмена эффектом, затем
// мгновенные способности, блок или переход в POWER.
func (a *Avatar) handleActionQueue() {
	s := a.stats()
	for i := range a.ActionQueue {
		action := a.ActionQueue[i]

		id := a.deps.Powers.CheckReplaceByEffect(action.Power, &s.Effects)
		p := a.deps.Powers.Get(id)
		if p == nil {
			continue
		}

		actionLogger := a.log.WithFields(logrus.Fields{
			"power":     p.Name,
			"requested": action.Power,
			"resolved":  id,
		})

		// Между постановкой в очередь и этим кадром ход мог уйти
		if s.InCombat() && (!a.gate.IsPlayerTurn() || !a.gate.CanTakeAction()) {
			actionLogger.Debug("Action dropped: not player turn")
			continue
		}

		switch {
		case p.IsInstant():
			target := action.Target
			a.beginPower(id, &target)
			a.deps.Activator.Activate(id, a.Entity, target)
			a.setCooldown(action.Power, p.Cooldown)
			a.setCooldown(id, p.Cooldown)
			actionLogger.Debug("Instant power used")

		case s.CurState == enums.StateBlock && p.IsBlock():
			target := action.Target
			a.beginPower(id, &target)
			a.deps.Activator.Activate(id, a.Entity, target)
			s.RefreshStats = true

		case s.CurState == enums.StateStance || s.CurState == enums.StateMove:
			a.currentPower = id
			a.originalPower = action.Power
			a.actTarget = action.Target
			a.attackAnim = p.AttackAnim
			a.resetActiveAnimation()

			if p.NewState == enums.PowerStateAttack {
				a.setState(enums.StatePower)
			} else if p.IsBlock() {
				a.setState(enums.StateBlock)
				a.beginPower(id, &a.actTarget)
				a.deps.Activator.Activate(id, a.Entity, a.actTarget)
				s.RefreshStats = true
				if s.InCombat() {
					a.gate.SpendAction()
				}
			}
			actionLogger.Debug("Power queued for casting")
		}
	}
}

// beginPower готовит заклинателя к способности: блок, автонаведение,
// разворот, таймер состояния и цепочки.
func (a *Avatar) beginPower(id domain.PowerID, target *domain.FPoint) {
	p := a.deps.Powers.Get(id)
	if p == nil {
		return
	}
	s := a.stats()

	if p.IsBlock() {
		s.Blocking = true
		s.BlockPower = id
	}

	// Удар ближнего боя мышью бьёт врага под курсором, а не точку клика
	if a.input.UsingMouse && p.Type == enums.PowerTypeFixed &&
		p.StartingPos == enums.StartingPosMelee && isLiveEnemy(a.cursorEnemy) {
		*target = a.cursorEnemy.Stats.Pos
	}

	if p.Face && domain.CalcDist(s.Pos, *target) > 0 {
		s.Direction = domain.CalcDirection(s.Pos.X, s.Pos.Y, target.X, target.Y)
	}
	if p.StateDuration > 0 {
		s.StateTimer = domain.NewTimer(p.StateDuration)
	}
	if p.ChargeSpeed != 0 {
		s.ChargeSpeed = p.ChargeSpeed
	}
	s.PreventInterrupt = p.PreventInterrupt

	a.deps.Activator.ActivatePreChain(id, a.Entity, *target)
}
