package avatar

import (
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/input"
)

func (a *Avatar) handleCurrentState() {
	switch a.stats().CurState {
	case enums.StateStance:
		a.handleStance()
	case enums.StateMove:
		a.handleMove()
	case enums.StatePower:
		a.handlePower()
	case enums.StateBlock:
		a.setAnimation("block")
	case enums.StateHit:
		a.handleHit()
	case enums.StateDead:
		a.handleDead()
	}
}

func (a *Avatar) handleStance() {
	a.setAnimation("stance")

	in := a.input
	switch {
	case a.cfg.MouseMove:
		a.allowedToMove = a.restrictPowerUse && (!in.Lock[a.mmKey] || a.dragWalking)
		a.allowedToTurn = a.allowedToMove
		// Shift + кнопка ходьбы: стоим на месте, кнопка освобождается для атаки
		if in.Pressing[a.mmKey] && in.Pressing[input.KeyShift] {
			in.Lock[a.mmKey] = false
		}
	case !a.cfg.MouseAim:
		a.allowedToMove = !in.Pressing[input.KeyShift]
		a.allowedToTurn = true
	default:
		a.allowedToMove = true
		a.allowedToTurn = true
	}

	if a.allowedToTurn {
		a.setDirection()
	}

	if a.pressingMove() && a.allowedToMove && a.move() {
		if a.cfg.MouseMove && in.Pressing[a.mmKey] {
			a.dragWalking = true
		}
		a.setState(enums.StateMove)
		return
	}
	a.committedMove = false
}

func (a *Avatar) handleMove() {
	a.setAnimation("run")

	if a.anim.IsFirstFrame() || a.anim.IsActiveFrame() {
		a.playStepSound()
	}

	a.setDirection()

	in := a.input
	switch {
	case !a.pressingMove():
		a.stopMoving()
		return
	case !a.move():
		if a.cfg.MouseMove && !a.IsNearTarget() {
			a.collided = true
		}
		a.stopMoving()
		return
	case (a.cfg.MouseMove || !a.cfg.MouseAim) && in.Pressing[input.KeyShift]:
		a.stopMoving()
		return
	}

	if a.cfg.MouseMove && in.Pressing[a.mmKey] {
		a.dragWalking = true
	}

	// Набор без анимации бега: не бежим
	if name := a.anim.Name(); name != "" && name != "run" {
		a.stopMoving()
	}
}

func (a *Avatar) stopMoving() {
	a.committedMove = false
	a.setState(enums.StateStance)
}

func (a *Avatar) handlePower() {
	s := a.stats()
	a.setAnimation(a.attackAnim)

	if p := a.deps.Powers.Get(a.currentPower); p != nil {
		if a.anim.IsFirstFrame() {
			a.beginPower(a.currentPower, &a.actTarget)

			speed := p.AttackSpeed
			if speed <= 0 {
				speed = 100
			}
			a.anim.SetSpeed(s.Effects.AttackSpeed() * speed / 100)
			a.playSound(attackSound(p.Sound))

			d := a.anim.Duration()
			a.setCastTimer(a.currentPower, d)
			a.setCastTimer(a.originalPower, d)

			if s.InCombat() {
				a.gate.SpendAction()
			}
		}

		if a.anim.IsActiveFrame() && !s.HoldState {
			a.deps.Map.Block(s.Pos.X, s.Pos.Y, true)
			a.deps.Activator.Activate(a.currentPower, a.Entity, a.actTarget)

			a.setCooldown(a.currentPower, p.Cooldown)
			a.setCooldown(a.originalPower, p.Cooldown)

			if !s.StateTimer.IsEnd() {
				s.HoldState = true
			}
		}
	}

	if (a.anim.IsLastFrame() && s.StateTimer.IsEnd()) || a.anim.Name() != a.attackAnim {
		a.setState(enums.StateStance)
		s.Cooldown = s.Cooldown.Restart()
		s.PreventInterrupt = false
	}
}

func (a *Avatar) handleHit() {
	s := a.stats()
	a.setAnimation("hit")

	if a.anim.IsFirstFrame() {
		s.Effects.TriggeredHit = true

		if p := a.deps.Powers.Get(s.BlockPower); p != nil {
			a.setCooldown(s.BlockPower, p.Cooldown)
			s.BlockPower = 0
		}
	}

	if a.anim.TimesPlayed() >= 1 || a.anim.Name() != "hit" {
		a.setState(enums.StateStance)
	}
}

func (a *Avatar) handleDead() {
	s := a.stats()
	a.setAnimation("die")

	if !s.Corpse && a.anim.IsFirstFrame() && a.anim.TimesPlayed() < 1 {
		s.ClearEffects()
		s.PowersPassive = nil
		a.finishAllTimers()

		a.signals.CloseMenus = true
		a.playSound("die")
		a.message("You are defeated.")

		if s.Permadeath {
			s.DeathPenalty = false
			a.signals.DeleteSave = true
		} else {
			s.DeathPenalty = true
			a.signals.DeathPenalty = true
		}

		// Кнопка атаки не должна сработать сразу после воскрешения
		if a.input.Pressing[input.KeyMain1] {
			a.input.Lock[input.KeyMain1] = true
		}

		a.log.WithField("permadeath", s.Permadeath).Info("Avatar died")
	}

	if !s.Corpse && (a.anim.TimesPlayed() >= 1 || a.anim.Name() != "die") {
		s.Corpse = true
		a.signals.GameOver = true
	}
}

func attackSound(sound string) string {
	if sound == "" {
		return "attack"
	}
	return sound
}
