package engine

import (
	"math"

	"github.com/rcarvalhosa/flare-engine/internal/animation"
	"github.com/rcarvalhosa/flare-engine/internal/content"
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/systems"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/sirupsen/logrus"
)

// arriveEpsilon - ближе этого к точке назначения считаем, что дошли.
const arriveEpsilon = 0.05

// npc - поведение противника или союзника. Вне боя решает каждый кадр,
// в бою его кадр вызывает координатор, когда наступает его ход.
type npc struct {
	s      *Session
	attack domain.PowerID
	anims  *animation.Set
	log    *logrus.Entry

	moving bool
	dest   domain.FPoint
	// committed - перемещение оплачено действием хода и доводится до конца,
	// даже если ход уже перешёл к другому.
	committed   bool
	wasInCombat bool
}

func newNPC(s *Session, e *domain.Entity, t content.EnemyTemplate) *npc {
	return &npc{
		s:      s,
		attack: t.BasicAttack(),
		anims:  s.content.AnimationSet(t.AnimationSet),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "npc",
			"entity":    e.ID,
			"name":      t.Name,
		}),
	}
}

// duration - длина анимации в кадрах. Без анимации - полсекунды.
func (n *npc) duration(name string) int {
	if a, ok := n.anims.Lookup(name); ok && a.Name() == name && a.Duration() > 0 {
		return a.Duration()
	}
	return max(n.s.cfg.FPS/2, 1)
}

// upkeep - обслуживание, которое идёт каждый кадр независимо от хода:
// таймеры, эффекты и реакция на попадание.
func (n *npc) upkeep(e *domain.Entity) {
	st := e.Stats
	if !st.IsAlive() {
		return
	}
	st.Logic()

	if st.ConsumeHit() && !st.PreventInterrupt {
		n.stop(e)
		st.CurState = enums.StateHit
		st.StateTimer = domain.NewTimer(n.duration("hit"))
	}

	switch st.CurState {
	case enums.StateHit, enums.StatePower:
		if st.StateTimer.IsEnd() {
			st.CurState = enums.StateStance
			st.PreventInterrupt = false
		}
	}

	// Свой ход NPC ведёт координатор, здесь доводим только оплаченный путь
	if n.moving && n.committed && n.s.Combat.CurrentTurnEntity() != e {
		n.walk(e)
	}
}

// walk - шаг вне Logic: свой тайл на время шага освобождается.
func (n *npc) walk(e *domain.Entity) {
	st := e.Stats
	n.s.col.Unblock(st.Pos.X, st.Pos.Y)
	n.step(e)
	if st.IsAlive() && !st.Corpse {
		n.s.col.Block(st.Pos.X, st.Pos.Y, st.HeroAlly)
	}
}

// Logic - решение NPC на один кадр.
func (n *npc) Logic(e *domain.Entity) {
	st := e.Stats
	if !st.IsAlive() || st.Corpse {
		return
	}
	col := n.s.col
	col.Unblock(st.Pos.X, st.Pos.Y)
	defer func() {
		if st.IsAlive() && !st.Corpse {
			col.Block(st.Pos.X, st.Pos.Y, st.HeroAlly)
		}
	}()

	if st.InCombat() != n.wasInCombat {
		n.wasInCombat = st.InCombat()
		n.moving, n.committed = false, false
		if st.CurState == enums.StateMove {
			st.CurState = enums.StateStance
		}
	}

	inTurn := st.InCombat() && n.s.Combat.CurrentTurnEntity() == e

	switch st.CurState {
	case enums.StateHit, enums.StatePower, enums.StateDead:
		return
	}

	if st.Effects.Stun {
		if inTurn {
			n.s.Combat.SpendAction()
		}
		return
	}

	if n.moving {
		n.step(e)
		return
	}

	reach := st.ThreatRange * 2
	if st.InCombat() {
		reach = math.Max(reach, focusRange)
	}
	target := systems.NearestHostileTo(e, n.s.entities, reach, col)
	intent := systems.ComputeNPCAction(e, target, col, n.s.cfg.Pathing.Limit)

	switch intent.Kind {
	case systems.IntentAttack:
		n.strike(e, intent.Target, inTurn)
	case systems.IntentApproach:
		n.approach(e, intent, inTurn)
	default:
		n.wait(e, inTurn)
	}
}

func (n *npc) wait(e *domain.Entity, inTurn bool) {
	e.Stats.CurState = enums.StateStance
	if inTurn {
		n.s.Combat.SpendAction()
	}
}

func (n *npc) strike(e, target *domain.Entity, inTurn bool) {
	st := e.Stats
	p := n.s.content.Powers.Get(n.attack)
	if p == nil || !st.Cooldown.IsEnd() {
		n.wait(e, inTurn)
		return
	}

	at := target.Stats.Pos
	st.Direction = domain.CalcDirection(st.Pos.X, st.Pos.Y, at.X, at.Y)
	n.s.exec.ActivatePreChain(n.attack, e, at)
	if !n.s.exec.Activate(n.attack, e, at) {
		n.wait(e, inTurn)
		return
	}

	st.Cooldown = domain.NewTimer(p.Cooldown)
	if !p.IsInstant() {
		st.CurState = enums.StatePower
		st.StateTimer = domain.NewTimer(n.duration(p.AttackAnim))
		st.PreventInterrupt = p.PreventInterrupt
	}
	if p.Sound != "" {
		n.s.sounds = append(n.s.sounds, p.Sound)
	}
	n.log.WithFields(logrus.Fields{"power": p.Name, "target": target.Stats.Name}).Debug("NPC attacks")

	if inTurn {
		n.s.Combat.PerformAction(enums.TurnActionPower)
	}
}

func (n *npc) approach(e *domain.Entity, intent systems.NPCIntent, inTurn bool) {
	dest := intent.Destination
	if inTurn {
		var ok bool
		if dest, ok = n.turnDestination(e, intent); !ok {
			n.wait(e, inTurn)
			return
		}
	}
	n.moving, n.dest = true, dest
	e.Stats.CurState = enums.StateMove

	// Действие тратится в момент начала перемещения, а не по прибытии
	if inTurn {
		n.committed = true
		n.s.Combat.PerformAction(enums.TurnActionMove)
	}
	n.step(e)
}

// turnDestination - самая дальняя точка пути к цели, до которой можно дойти
// за одно действие хода.
func (n *npc) turnDestination(e *domain.Entity, intent systems.NPCIntent) (domain.FPoint, bool) {
	st := e.Stats
	combat := n.s.Combat
	start := combat.TurnState().MovementStart

	var best domain.FPoint
	found := false
	if path, ok := n.s.col.ComputePath(st.Pos, intent.Target.Stats.Pos, st.MovementType, n.s.cfg.Pathing.Limit); ok {
		// path[0] - цель, path[len-1] - первый шаг
		for i := len(path) - 1; i >= 0; i-- {
			if combat.IsValidMovementFor(e, path[i]) {
				best, found = path[i], true
				continue
			}
			if domain.CalcDist(start, path[i]) > combat.MovementRange() {
				break
			}
		}
	}
	if !found && combat.IsValidMovementFor(e, intent.Destination) {
		best, found = intent.Destination, true
	}
	return best, found
}

func (n *npc) step(e *domain.Entity) {
	var policy systems.MovePolicy = n.s.Combat.Gate()
	if n.committed {
		policy = systems.FreeMovement{}
	}
	moved := systems.MoveToward(e, n.dest, n.s.col, policy)
	if !moved || domain.CalcDist(e.Stats.Pos, n.dest) < arriveEpsilon {
		n.stop(e)
	}
}

// stop прерывает перемещение.
func (n *npc) stop(e *domain.Entity) {
	if !n.moving {
		return
	}
	n.moving, n.committed = false, false
	if e.Stats.CurState == enums.StateMove {
		e.Stats.CurState = enums.StateStance
	}
}
