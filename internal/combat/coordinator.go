// Package combat - пошаговый бой поверх покадровой симуляции: вход в бой,
// инициатива, очередь ходов и экономика действий.
package combat

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/rcarvalhosa/flare-engine/internal/config"
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/systems"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/rcarvalhosa/flare-engine/pkg/utils"
	"github.com/sirupsen/logrus"
)

// События автомата боя.
const (
	eventEngage    = "engage"
	eventActivate  = "activate"
	eventDisengage = "disengage"
)

// World - то, что координатор читает из мира.
type World interface {
	Entities() []*domain.Entity
	Collision() *systems.MapCollision
}

// TurnState - состояние текущего хода.
type TurnState struct {
	LastAction       enums.TurnAction `json:"lastAction"`
	MovementStart    domain.FPoint    `json:"movementStart"`
	ActionsRemaining int              `json:"actionsRemaining"`
}

// Coordinator ведёт одну боевую сессию. Не потокобезопасен: живёт в
// горутине своей сессии, как и всё остальное ядро.
type Coordinator struct {
	world  World
	player *domain.Entity
	roller utils.Roller
	cfg    config.Combat
	fps    int

	fsm *fsm.FSM
	log *logrus.Entry

	participants []*domain.Entity
	order        []Initiative
	turnIndex    int
	round        int
	turn         TurnState

	transition domain.Timer
	watchdog   domain.Timer

	messages []string
}

func NewCoordinator(world World, player *domain.Entity, roller utils.Roller, cfg config.Config) *Coordinator {
	fps := cfg.FPS
	if fps <= 0 {
		fps = 60
	}
	c := &Coordinator{
		world:  world,
		player: player,
		roller: roller,
		cfg:    cfg.Combat,
		fps:    fps,
		log:    logger.Log.WithField("component", "combat"),
	}
	if c.cfg.ActionsPerTurn <= 0 {
		c.cfg.ActionsPerTurn = 2
	}

	c.fsm = fsm.NewFSM(
		enums.CombatInactive.String(),
		fsm.Events{
			{Name: eventEngage, Src: []string{enums.CombatInactive.String()}, Dst: enums.CombatTransitioning.String()},
			{Name: eventActivate, Src: []string{enums.CombatTransitioning.String()}, Dst: enums.CombatActive.String()},
			{Name: eventDisengage, Src: []string{enums.CombatTransitioning.String(), enums.CombatActive.String()}, Dst: enums.CombatInactive.String()},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				c.log.WithFields(logrus.Fields{"from": e.Src, "to": e.Dst}).Debug("Combat state changed")
			},
		},
	)
	return c
}

func (c *Coordinator) fire(event string) bool {
	if err := c.fsm.Event(context.Background(), event); err != nil {
		c.log.WithError(err).WithField("event", event).Error("Combat transition rejected")
		return false
	}
	return true
}

// State - фаза боя.
func (c *Coordinator) State() enums.CombatState {
	return enums.ParseCombatState(c.fsm.Current())
}

// Gate возвращает политику перемещения, завязанную на этот бой.
func (c *Coordinator) Gate() Gate {
	return Gate{c: c}
}

// EnterCombat начинает бой между initiator и target. К бою присоединяются
// все живые не-союзники, видящие target в пределах своего радиуса угрозы.
func (c *Coordinator) EnterCombat(initiator, target *domain.Entity) bool {
	if c.State() != enums.CombatInactive || initiator == nil || target == nil {
		return false
	}

	c.participants = c.participants[:0]
	c.order = nil
	c.round = 1
	c.turnIndex = 0
	c.turn = TurnState{}

	c.join(initiator)
	c.join(target)

	col := c.world.Collision()
	for _, e := range c.world.Entities() {
		if !c.canJoin(e) || c.isParticipant(e) {
			continue
		}
		if domain.CalcDist(e.Stats.Pos, target.Stats.Pos) > e.Stats.ThreatRange {
			continue
		}
		from, to := e.Stats.Pos, target.Stats.Pos
		if col != nil && !col.LineOfSight(from.X, from.Y, to.X, to.Y) {
			continue
		}
		c.join(e)
	}

	c.transition = domain.NewTimer(int(c.cfg.TransitionSeconds * float64(c.fps)))
	if !c.fire(eventEngage) {
		return false
	}

	c.message("Combat started!")
	c.log.WithFields(logrus.Fields{
		"initiator":    initiator.Stats.Name,
		"target":       target.Stats.Name,
		"participants": len(c.participants),
	}).Info("Combat started")
	return true
}

func (c *Coordinator) canJoin(e *domain.Entity) bool {
	return e != nil && e.Stats != nil && e.Stats.IsAlive() && !e.Stats.HeroAlly && !e.Stats.Hero
}

func (c *Coordinator) join(e *domain.Entity) {
	if e == nil || e.Stats == nil || c.isParticipant(e) {
		return
	}
	e.Stats.SetInCombat(true)
	c.participants = append(c.participants, e)
}

func (c *Coordinator) isParticipant(e *domain.Entity) bool {
	for _, p := range c.participants {
		if p == e {
			return true
		}
	}
	return false
}

// AddCombatant вводит сущность в уже идущий бой. Бросок делает только
// новичок, после чего очередь пересортировывается. Текущий ход остаётся
// за тем же участником.
func (c *Coordinator) AddCombatant(e *domain.Entity) bool {
	if c.State() == enums.CombatInactive || e == nil || e.Stats == nil || !e.Stats.IsAlive() || c.isParticipant(e) {
		return false
	}
	c.join(e)

	if c.State() == enums.CombatActive {
		current := c.CurrentTurnEntity()
		c.order = append(c.order, rollInitiative(e, c.roller))
		sortOrder(c.order)
		c.turnIndex = c.indexOf(current)
	}

	c.log.WithField("entity", e.Stats.Name).Info("Combatant joined")
	return true
}

func (c *Coordinator) indexOf(e *domain.Entity) int {
	for i, in := range c.order {
		if in.Entity == e {
			return i
		}
	}
	return 0
}

// Logic - один кадр боя.
func (c *Coordinator) Logic() {
	switch c.State() {
	case enums.CombatTransitioning:
		c.transition = c.transition.Tick()
		if c.transition.IsEnd() {
			c.activate()
		}
	case enums.CombatActive:
		c.activeLogic()
	}
}

func (c *Coordinator) activate() {
	c.prune()
	if !c.hasEnemies() {
		c.ExitCombat()
		return
	}

	c.order = make([]Initiative, 0, len(c.participants))
	for _, e := range c.participants {
		c.order = append(c.order, rollInitiative(e, c.roller))
	}
	sortOrder(c.order)
	c.turnIndex = 0
	c.round = 1

	if !c.fire(eventActivate) {
		return
	}

	c.log.WithField("order", c.orderNames()).Info("Initiative rolled")
	c.message(fmt.Sprintf("Round %d", c.round))
	c.startTurn()
}

func (c *Coordinator) activeLogic() {
	c.prune()
	if !c.hasEnemies() {
		c.ExitCombat()
		return
	}

	cur := c.CurrentTurnEntity()
	if cur == c.player {
		return
	}

	if c.turn.ActionsRemaining > 0 {
		cur.Logic()
	}
	// Ход мог закончиться внутри Logic
	if c.State() != enums.CombatActive || c.CurrentTurnEntity() != cur {
		return
	}
	if c.turn.ActionsRemaining <= 0 {
		c.NextTurn()
		return
	}

	if c.watchdog.Duration > 0 {
		c.watchdog = c.watchdog.Tick()
		if c.watchdog.IsEnd() {
			c.log.WithField("entity", cur.Stats.Name).Warn("Turn timed out, forfeiting")
			c.NextTurn()
		}
	}
}

// prune убирает из боя всех с неположительным здоровьем, не ломая индекс хода.
func (c *Coordinator) prune() {
	alive := func(e *domain.Entity) bool { return e.Stats != nil && e.Stats.HP > 0 }

	kept := c.participants[:0]
	for _, e := range c.participants {
		if alive(e) {
			kept = append(kept, e)
			continue
		}
		e.Stats.SetInCombat(false)
		c.log.WithField("entity", e.Stats.Name).Info("Combatant removed")
	}
	c.participants = kept

	if len(c.order) == 0 {
		return
	}

	current := c.order[c.turnIndex].Entity
	currentAlive := alive(current)
	removedBefore := 0
	order := c.order[:0]
	for i, in := range c.order {
		if alive(in.Entity) {
			order = append(order, in)
		} else if i < c.turnIndex {
			removedBefore++
		}
	}
	c.order = order
	if len(c.order) == 0 {
		c.turnIndex = 0
		return
	}

	if currentAlive {
		c.turnIndex = c.indexOf(current)
		return
	}
	// Ходивший погиб: ход переходит к следующему по очереди
	c.turnIndex -= removedBefore
	if c.turnIndex >= len(c.order) {
		c.turnIndex = 0
		c.round++
		c.message(fmt.Sprintf("Round %d", c.round))
	}
	if c.State() == enums.CombatActive {
		c.startTurn()
	}
}

// hasEnemies - в бою остался игрок и хотя бы один враждебный ему участник.
func (c *Coordinator) hasEnemies() bool {
	playerIn := c.player == nil
	hostile := false
	for _, e := range c.participants {
		if e == c.player {
			playerIn = true
		}
		if e.IsHostile() {
			hostile = true
		}
	}
	return playerIn && hostile
}

// NextTurn передаёт ход следующему. Переход через конец очереди - новый раунд.
func (c *Coordinator) NextTurn() {
	if c.State() != enums.CombatActive || len(c.order) == 0 {
		return
	}
	c.turnIndex = (c.turnIndex + 1) % len(c.order)
	if c.turnIndex == 0 {
		c.round++
		c.message(fmt.Sprintf("Round %d", c.round))
		c.log.WithField("round", c.round).Debug("New round")
	}
	c.startTurn()
}

func (c *Coordinator) startTurn() {
	cur := c.order[c.turnIndex].Entity
	c.turn = TurnState{
		LastAction:       enums.TurnActionNone,
		MovementStart:    cur.Stats.Pos,
		ActionsRemaining: c.cfg.ActionsPerTurn,
	}
	c.watchdog = domain.NewTimer(int(c.cfg.TurnTimeoutSeconds * float64(c.fps)))

	if cur == c.player {
		c.message("Your turn.")
	} else {
		c.message(fmt.Sprintf("%s's turn.", cur.Stats.Name))
	}
	c.log.WithFields(logrus.Fields{
		"entity": cur.Stats.Name,
		"round":  c.round,
		"index":  c.turnIndex,
	}).Debug("Turn started")
}

// SpendAction тратит действие текущего хода. Последнее действие завершает ход.
func (c *Coordinator) SpendAction() {
	if c.State() != enums.CombatActive || c.turn.ActionsRemaining <= 0 {
		return
	}
	c.turn.ActionsRemaining--
	if c.turn.ActionsRemaining == 0 {
		c.NextTurn()
	}
}

// PerformAction запоминает вид действия и тратит его.
func (c *Coordinator) PerformAction(kind enums.TurnAction) {
	if c.State() != enums.CombatActive || c.turn.ActionsRemaining <= 0 {
		return
	}
	c.turn.LastAction = kind
	c.SpendAction()
}

// EndPlayerTurn - игрок сам отдаёт оставшиеся действия.
func (c *Coordinator) EndPlayerTurn() {
	if !c.IsPlayerTurn() {
		return
	}
	c.log.WithField("actions_left", c.turn.ActionsRemaining).Debug("Player ended turn")
	c.NextTurn()
}

// ExitCombat завершает бой. На неактивном бою ничего не делает.
func (c *Coordinator) ExitCombat() {
	if c.State() == enums.CombatInactive {
		return
	}
	for _, e := range c.participants {
		e.Stats.SetInCombat(false)
	}
	rounds := c.round

	c.participants = c.participants[:0]
	c.order = nil
	c.turnIndex = 0
	c.round = 0
	c.turn = TurnState{}
	c.transition = c.transition.Finish()
	c.watchdog = c.watchdog.Finish()

	c.fire(eventDisengage)
	c.message("Combat ended.")
	c.log.WithField("rounds", rounds).Info("Combat ended")
}

// CheckCombatState начинает бой, если враг в фокусе подошёл на расстояние
// угрозы, и затем прогоняет кадр боя.
func (c *Coordinator) CheckCombatState(player, focus *domain.Entity) {
	if c.State() == enums.CombatInactive && c.shouldEngage(player, focus) {
		c.EnterCombat(player, focus)
	}
	c.Logic()
}

func (c *Coordinator) shouldEngage(player, focus *domain.Entity) bool {
	if player == nil || focus == nil || focus.Stats == nil || focus == player {
		return false
	}
	if !player.Stats.IsAlive() || !focus.Stats.IsAlive() || !focus.IsHostile() {
		return false
	}
	if focus.Stats.CombatStyle == enums.CombatStylePassive {
		return false
	}
	return domain.CalcDist(player.Stats.Pos, focus.Stats.Pos) < focus.Stats.ThreatRange
}

// IsValidMovement проверяет точку назначения для хода игрока.
func (c *Coordinator) IsValidMovement(dest domain.FPoint) bool {
	if !c.IsPlayerTurn() {
		return false
	}
	return c.IsValidMovementFor(c.player, dest)
}

// IsValidMovementFor проверяет точку назначения для сущности, чей сейчас ход.
// Проверяется только начало движения.
func (c *Coordinator) IsValidMovementFor(e *domain.Entity, dest domain.FPoint) bool {
	if c.State() != enums.CombatActive || c.CurrentTurnEntity() != e || c.turn.ActionsRemaining <= 0 {
		return false
	}
	start := c.turn.MovementStart
	if domain.CalcDist(start, dest) > c.MovementRange() {
		return false
	}
	s := e.Stats
	col := c.world.Collision()
	if !col.LineOfMovement(start.X, start.Y, dest.X, dest.Y, s.MovementType) {
		return false
	}
	return col.IsValidPosition(dest.X, dest.Y, s.MovementType, systems.CollideTypeFor(s))
}

// CurrentTurnEntity - чей сейчас ход. nil вне активного боя.
func (c *Coordinator) CurrentTurnEntity() *domain.Entity {
	if c.State() != enums.CombatActive || len(c.order) == 0 {
		return nil
	}
	return c.order[c.turnIndex].Entity
}

func (c *Coordinator) IsPlayerTurn() bool {
	return c.player != nil && c.CurrentTurnEntity() == c.player
}

// CanTakeAction - игрок ходит и у него остались действия.
func (c *Coordinator) CanTakeAction() bool {
	return c.IsPlayerTurn() && c.turn.ActionsRemaining > 0
}

func (c *Coordinator) CanEndTurn() bool { return c.IsPlayerTurn() }

func (c *Coordinator) IsInCombat() bool { return c.State() != enums.CombatInactive }

func (c *Coordinator) IsTransitioning() bool { return c.State() == enums.CombatTransitioning }

// MovementRange - дальность перемещения за ход. Пока общая для всех.
func (c *Coordinator) MovementRange() float64 { return c.cfg.MovementRange }

func (c *Coordinator) CurrentRound() int { return c.round }

func (c *Coordinator) TurnIndex() int { return c.turnIndex }

func (c *Coordinator) TurnState() TurnState { return c.turn }

func (c *Coordinator) ActionsRemaining() int { return c.turn.ActionsRemaining }

// Participants - копия списка участников.
func (c *Coordinator) Participants() []*domain.Entity {
	return append([]*domain.Entity(nil), c.participants...)
}

// InitiativeOrder - копия очереди ходов.
func (c *Coordinator) InitiativeOrder() []Initiative {
	return append([]Initiative(nil), c.order...)
}

func (c *Coordinator) message(msg string) {
	c.messages = append(c.messages, msg)
}

// TakeMessages отдаёт накопленные сообщения для журнала игрока.
func (c *Coordinator) TakeMessages() []string {
	out := c.messages
	c.messages = nil
	return out
}

func (c *Coordinator) orderNames() []string {
	names := make([]string, 0, len(c.order))
	for _, in := range c.order {
		names = append(names, fmt.Sprintf("%s(%d)", in.Entity.Stats.Name, in.Roll))
	}
	return names
}

// DebugDump возвращает снимок боя для отладки
func (c *Coordinator) DebugDump() map[string]interface{} {
	order := make([]map[string]interface{}, 0, len(c.order))
	for i, in := range c.order {
		order = append(order, map[string]interface{}{
			"id":      in.Entity.ID,
			"name":    in.Entity.Stats.Name,
			"roll":    in.Roll,
			"current": i == c.turnIndex,
		})
	}
	return map[string]interface{}{
		"state":        c.State(),
		"round":        c.round,
		"turn_index":   c.turnIndex,
		"turn":         c.turn,
		"order":        order,
		"participants": len(c.participants),
	}
}
