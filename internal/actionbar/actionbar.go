// Package actionbar - панель действий игрока: решает, какие нажатия
// становятся заявками на способности в очереди аватара.
package actionbar

import (
	"github.com/rcarvalhosa/flare-engine/internal/avatar"
	"github.com/rcarvalhosa/flare-engine/internal/config"
	"github.com/rcarvalhosa/flare-engine/internal/content"
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/input"
	"github.com/rcarvalhosa/flare-engine/internal/powers"
	"github.com/rcarvalhosa/flare-engine/internal/systems"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/sirupsen/logrus"
)

// SlotCount - 10 слотов панели и две кнопки мыши.
const SlotCount = content.ActionBarSlots

const (
	SlotMain1 = 10
	SlotMain2 = 11
)

// TurnGate - то, что панель спрашивает у пошагового боя.
type TurnGate interface {
	IsPlayerTurn() bool
	CanTakeAction() bool
	ActionsRemaining() int
	CanEndTurn() bool
	EndPlayerTurn()
}

// RangeChecker проверяет дальность способности до точки.
type RangeChecker interface {
	InRange(id domain.PowerID, caster *domain.Entity, target domain.FPoint) bool
}

// Slot - состояние одного слота для интерфейса.
type Slot struct {
	Power   domain.PowerID `json:"power"`
	Enabled bool           `json:"enabled"`
	// Cooldown - доля оставшегося восстановления, 0 для пустого слота.
	Cooldown float64 `json:"cooldown"`
}

type Bar struct {
	av     *avatar.Avatar
	table  *powers.Table
	ranges RangeChecker
	col    *systems.MapCollision
	gate   TurnGate
	input  *input.State
	cfg    config.Controls
	fps    int
	log    *logrus.Entry

	slots        [SlotCount]Slot
	failCooldown [SlotCount]int

	endTurnVisible bool

	messages []string
	sounds   []string
}

// Deps - зависимости панели. Gate может быть nil, тогда боя нет.
type Deps struct {
	Avatar *avatar.Avatar
	Powers *powers.Table
	Ranges RangeChecker
	Map    *systems.MapCollision
	Gate   TurnGate
	Input  *input.State
	Config config.Config
}

func New(hotkeys [SlotCount]domain.PowerID, deps Deps) *Bar {
	fps := deps.Config.FPS
	if fps <= 0 {
		fps = 60
	}
	b := &Bar{
		av:     deps.Avatar,
		table:  deps.Powers,
		ranges: deps.Ranges,
		col:    deps.Map,
		gate:   deps.Gate,
		input:  deps.Input,
		cfg:    deps.Config.Controls,
		fps:    fps,
		log:    logger.Log.WithField("component", "actionbar"),
	}
	for i, id := range hotkeys {
		b.slots[i] = Slot{Power: id, Enabled: true}
	}
	return b
}

// SetSlot кладёт способность в слот.
func (b *Bar) SetSlot(i int, id domain.PowerID) {
	if i >= 0 && i < SlotCount {
		b.slots[i].Power = id
	}
}

// Slots - копия состояния слотов.
func (b *Bar) Slots() [SlotCount]Slot { return b.slots }

func (b *Bar) EndTurnVisible() bool { return b.endTurnVisible }

func (b *Bar) inCombat() bool {
	return b.gate != nil && b.av.Entity.Stats.InCombat()
}

func (b *Bar) mouseMoveSlot() int {
	if b.cfg.MouseMoveSwap {
		return SlotMain2
	}
	return SlotMain1
}

// hasMouseMoveTarget - захваченный враг в досягаемости способности
// слота ходьбы и в прямой видимости.
func (b *Bar) hasMouseMoveTarget() bool {
	if !b.cfg.MouseMove {
		return false
	}
	enemy := b.av.LockEnemy()
	if enemy == nil || enemy.Stats == nil || !enemy.Stats.IsAlive() {
		return false
	}
	s := b.av.Entity.Stats
	id := b.table.CheckReplaceByEffect(b.slots[b.mouseMoveSlot()].Power, &s.Effects)
	if id == domain.NoPower || b.ranges == nil || !b.ranges.InRange(id, b.av.Entity, enemy.Stats.Pos) {
		return false
	}
	to := enemy.Stats.Pos
	return b.col.LineOfSight(s.Pos.X, s.Pos.Y, to.X, to.Y)
}

// CheckAction заполняет очередь аватара заявками этого кадра.
func (b *Bar) CheckAction() {
	mmSlot := b.mouseMoveSlot()
	hasTarget := b.hasMouseMoveTarget()

	for i := range b.slots {
		action := avatar.ActionData{Hotkey: i}
		haveAim := false

		if i == mmSlot && hasTarget {
			action.Power = b.slots[i].Power
			haveAim = true
		} else if !b.checkHotkey(i, &action, &haveAim) {
			b.clearQueued(i)
			continue
		}

		if b.table.IsValid(action.Power) {
			b.processValidAction(i, action, haveAim, hasTarget)
		}
	}
}

func (b *Bar) checkHotkey(i int, action *avatar.ActionData, haveAim *bool) bool {
	pressed := false
	switch {
	case i < SlotMain1:
		pressed = b.input.Pressing[input.KeyBar1+input.Key(i)]
	case i == SlotMain1 || i == SlotMain2:
		key := input.KeyMain1
		if i == SlotMain2 {
			key = input.KeyMain2
		}
		// Под управлением мышью кнопка ходьбы применяет способность только с Shift
		enabled := !b.cfg.MouseMoveSwap || b.cfg.MouseMove
		pressed = b.input.Held(key) &&
			!b.input.OverUI &&
			(!b.cfg.MouseMove || b.input.Pressing[input.KeyShift]) &&
			enabled
	}
	if !pressed {
		return false
	}
	*haveAim = b.input.UsingMouse
	action.Power = b.slots[i].Power
	return true
}

// clearQueued убирает заявки слота, кнопку которого отпустили.
func (b *Bar) clearQueued(slot int) {
	q := b.av.ActionQueue[:0]
	for _, a := range b.av.ActionQueue {
		if a.ActivatedFromInventory || a.Hotkey != slot {
			q = append(q, a)
		}
	}
	b.av.ActionQueue = q
}

func (b *Bar) processValidAction(i int, action avatar.ActionData, haveAim, hasTarget bool) {
	p := b.table.Get(action.Power)
	if !b.checkResources(i, p) {
		return
	}

	if b.inCombat() {
		if !b.gate.IsPlayerTurn() || !b.gate.CanTakeAction() {
			return
		}
		queued := 0
		for _, q := range b.av.ActionQueue {
			if !q.ActivatedFromInventory {
				queued++
			}
		}
		if queued >= b.gate.ActionsRemaining() {
			return
		}
	}

	if cast, ok := b.av.CastTimer(action.Power); ok {
		b.failCooldown[i] = cast.Duration
	}

	action.Target = b.actionTarget(haveAim, hasTarget)

	if !b.canUsePower(i, p) {
		return
	}
	if i != b.mouseMoveSlot() && !action.InstantItem {
		b.av.ClearLockEnemy()
	}
	b.av.QueueAction(action)
	b.log.WithFields(logrus.Fields{"slot": i, "power": p.Name}).Debug("Action queued")
}

// checkResources - хватает ли маны. Провал включает секундный запрет слота.
func (b *Bar) checkResources(i int, p *powers.Power) bool {
	if b.failCooldown[i] > 0 {
		return false
	}
	if b.av.Entity.Stats.HasMP(p.ManaCost) {
		return true
	}
	b.messages = append(b.messages, "Not enough MP.")
	b.sounds = append(b.sounds, "unable_to_cast")
	b.failCooldown[i] = b.fps
	return false
}

func (b *Bar) actionTarget(haveAim, hasTarget bool) domain.FPoint {
	s := b.av.Entity.Stats
	if haveAim && b.cfg.MouseAim {
		if hasTarget {
			return b.av.LockEnemy().Stats.Pos
		}
		return b.input.Mouse
	}
	return domain.CalcVector(s.Pos, s.Direction, s.MeleeRange)
}

func (b *Bar) canUsePower(i int, p *powers.Power) bool {
	if !b.slots[i].Enabled {
		return false
	}
	if p.IsInstant() {
		return true
	}
	s := b.av.Entity.Stats
	return s.Cooldown.IsEnd() && s.CurState != enums.StatePower && s.CurState != enums.StateHit
}

// Logic обновляет доступность слотов и кнопку конца хода.
func (b *Bar) Logic() {
	b.endTurnVisible = b.inCombat() && b.gate.CanEndTurn()
	if b.endTurnVisible && b.input.Held(input.KeyEndTurn) {
		b.input.Lock[input.KeyEndTurn] = true
		b.EndTurn()
	}

	for i := range b.slots {
		slot := &b.slots[i]
		p := b.table.Get(slot.Power)
		if p == nil {
			slot.Enabled = true
			slot.Cooldown = 0
		} else {
			cd, _ := b.av.CooldownTimer(slot.Power)
			cast, _ := b.av.CastTimer(slot.Power)
			slot.Enabled = cd.IsEnd() && cast.IsEnd() && !p.Passive && b.av.Entity.Stats.IsAlive()

			switch {
			case !cast.IsEnd():
				slot.Cooldown = cast.Fraction()
			case !cd.IsEnd():
				slot.Cooldown = cd.Fraction()
			default:
				slot.Cooldown = 0
			}
		}

		if b.failCooldown[i] > 0 {
			b.failCooldown[i]--
		}
	}
}

// EndTurn отдаёт оставшиеся действия хода.
func (b *Bar) EndTurn() {
	if b.gate == nil || !b.gate.CanEndTurn() {
		return
	}
	b.log.Debug("End turn pressed")
	b.gate.EndPlayerTurn()
}

// TakeFeedback отдаёт накопленные сообщения и звуки.
func (b *Bar) TakeFeedback() (messages, sounds []string) {
	messages, sounds = b.messages, b.sounds
	b.messages, b.sounds = nil, nil
	return messages, sounds
}
