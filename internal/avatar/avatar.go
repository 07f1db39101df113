// Package avatar - покадровое управление персонажем игрока: конечный автомат
// состояний (STANCE, MOVE, POWER, BLOCK, HIT, DEAD), движение и прицеливание,
// очередь способностей.
//
// Аватар не владеет координатором боя: он спрашивает у него только то, что
// описано в TurnGate.
package avatar

import (
	"github.com/rcarvalhosa/flare-engine/internal/config"
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/input"
	"github.com/rcarvalhosa/flare-engine/internal/powers"
	"github.com/rcarvalhosa/flare-engine/internal/systems"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/rcarvalhosa/flare-engine/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Animation - проигрываемая анимация.
type Animation interface {
	Name() string
	AdvanceFrame()
	IsFirstFrame() bool
	IsActiveFrame() bool
	IsLastFrame() bool
	Duration() int
	TimesPlayed() int
	SetSpeed(percent float64)
	Reset()
}

// Animations выдаёт новый экземпляр анимации по имени.
type Animations interface {
	Lookup(name string) (Animation, bool)
}

// TurnGate - то, что аватар спрашивает у пошагового боя.
type TurnGate interface {
	IsPlayerTurn() bool
	CanTakeAction() bool
	IsValidMovement(dest domain.FPoint) bool
	SpendAction()
}

// PowerActivator исполняет способности.
type PowerActivator interface {
	Activate(id domain.PowerID, caster *domain.Entity, target domain.FPoint) bool
	ActivatePreChain(id domain.PowerID, caster *domain.Entity, target domain.FPoint)
	ActivatePassives(caster *domain.Entity)
}

// StepSounds выбирает звук шага из набора.
type StepSounds interface {
	StepSound(id string, roller utils.Roller) (string, bool)
}

// Deps - всё, с чем аватар работает. Map, Powers, Activator и Input обязательны.
type Deps struct {
	Map        *systems.MapCollision
	Powers     *powers.Table
	Activator  PowerActivator
	Gate       TurnGate
	Policy     systems.MovePolicy
	Animations Animations
	Steps      StepSounds
	Roller     utils.Roller
	Input      *input.State
	Config     config.Config
}

// ActionData - одна заявка на способность. Живёт один кадр.
type ActionData struct {
	Power                  domain.PowerID
	Hotkey                 int
	InstantItem            bool
	ActivatedFromInventory bool
	Target                 domain.FPoint
}

type Avatar struct {
	Entity *domain.Entity

	deps   Deps
	input  *input.State
	cfg    config.Controls
	fps    int
	log    *logrus.Entry
	anim   Animation
	gate   TurnGate
	policy systems.MovePolicy

	// ActionQueue заполняется панелью действий и опустошается в Logic.
	ActionQueue []ActionData

	currentPower  domain.PowerID
	originalPower domain.PowerID
	actTarget     domain.FPoint
	attackAnim    string

	cooldownTimers []*domain.Timer
	castTimers     []*domain.Timer

	// AllowMovement снимается внешними системами (диалог, меню).
	AllowMovement bool
	// TeleportCameraLock - камера догоняет аватар после телепорта.
	TeleportCameraLock bool

	mmKey            input.Key
	dragWalking      bool
	usingMain1       bool
	usingMain2       bool
	restrictPowerUse bool
	allowedToMove    bool
	allowedToTurn    bool
	mmIsDistant      bool
	mmTarget         domain.FPoint
	mmTargetDesired  domain.FPoint
	path             []domain.FPoint
	collided         bool
	// committedMove - ход в бою уже оплачен и доводится до конца, даже если очередь ушла.
	committedMove    bool
	replanner        *Replanner
	setDirTimer      domain.Timer

	cursorEnemy *domain.Entity
	lockEnemy   *domain.Entity

	passives []domain.PowerID
	prevHP   int
	signals  Signals
}

// New собирает аватар вокруг сущности игрока.
func New(e *domain.Entity, deps Deps) *Avatar {
	if deps.Roller == nil {
		deps.Roller = utils.NewSeededRoller(deps.Config.Seed)
	}
	fps := deps.Config.FPS
	if fps <= 0 {
		fps = 60
	}

	a := &Avatar{
		Entity:        e,
		deps:          deps,
		input:         deps.Input,
		cfg:           deps.Config.Controls,
		fps:           fps,
		gate:          deps.Gate,
		policy:        deps.Policy,
		AllowMovement: true,
		mmKey:         input.KeyMain1,
		passives:      append([]domain.PowerID(nil), e.Stats.PowersPassive...),
		prevHP:        e.Stats.HP,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "avatar",
			"entity_id": e.ID,
		}),
	}
	if a.gate == nil {
		a.gate = noCombat{}
	}
	if a.policy == nil {
		a.policy = systems.FreeMovement{}
	}
	if a.input == nil {
		a.input = &input.State{}
	}
	a.replanner = NewReplanner(deps.Map, deps.Roller, deps.Config.Pathing, fps)
	a.allocateTimers(deps.Powers)
	a.mmTarget = e.Stats.Pos
	a.mmTargetDesired = e.Stats.Pos
	a.anim = nullAnimation{}
	a.setAnimation("stance")
	return a
}

// noCombat используется, когда пошагового боя нет вовсе.
type noCombat struct{}

func (noCombat) IsPlayerTurn() bool                 { return true }
func (noCombat) CanTakeAction() bool                { return true }
func (noCombat) IsValidMovement(domain.FPoint) bool { return true }
func (noCombat) SpendAction()                       {}

func (a *Avatar) stats() *domain.StatsComponent {
	return a.Entity.Stats
}

// Logic продвигает аватар ровно на один кадр. Единственный писатель CurState.
func (a *Avatar) Logic() {
	a.handlePowerRestrictions()
	a.handleBasicState()
	a.handleLowHealth()
	a.handleMouseMovement()
	a.handleAnimations()
	a.handleStateChanges()
	a.handleCooldowns()
}

// handlePowerRestrictions: зажатая кнопка ходьбы вне интерфейса означает
// ходьбу, а не применение способности.
func (a *Avatar) handlePowerRestrictions() {
	a.mmKey = input.KeyMain1
	if a.cfg.MouseMoveSwap {
		a.mmKey = input.KeyMain2
	}
	a.restrictPowerUse = a.cfg.MouseMove &&
		a.input.Pressing[a.mmKey] &&
		!a.input.Pressing[input.KeyShift] &&
		!a.input.OverUI
}

func (a *Avatar) handleBasicState() {
	s := a.stats()
	a.deps.Map.Unblock(s.Pos.X, s.Pos.Y)

	if s.IsAlive() {
		a.deps.Activator.ActivatePassives(a.Entity)
	}

	// Блок закончился: эффект блока истёк
	if s.Effects.TriggeredBlock && !s.Blocking {
		a.resetBlockState()
	}

	s.Logic()
	a.applyPendingHit()
}

func (a *Avatar) resetBlockState() {
	s := a.stats()
	if s.CurState != enums.StateDead {
		a.setState(enums.StateStance)
	}
	s.Effects.TriggeredBlock = false
	s.Effects.ClearTriggerEffects(domain.TriggerBlock)
	s.RefreshStats = true
	s.BlockPower = domain.NoPower
}

// applyPendingHit применяет урон, полученный с прошлого кадра.
func (a *Avatar) applyPendingHit() {
	s := a.stats()
	hit := s.ConsumeHit()
	if s.CurState == enums.StateDead {
		return
	}
	if !s.IsAlive() {
		a.setState(enums.StateDead)
		return
	}
	if hit && !s.PreventInterrupt {
		if s.CurState == enums.StateHit {
			a.anim.Reset()
		}
		a.setState(enums.StateHit)
	}
}

func (a *Avatar) handleAnimations() {
	if !a.stats().Effects.Stun {
		a.anim.AdvanceFrame()
	}
}

func (a *Avatar) handleStateChanges() {
	a.setDirTimer = a.setDirTimer.Tick()
	if !a.pressingMove() {
		a.setDirTimer = a.setDirTimer.Finish()
	}

	if !a.stats().Effects.Stun {
		a.handleActionQueue()
		a.handleCurrentState()
	}
	a.ActionQueue = a.ActionQueue[:0]
}

func (a *Avatar) handleCooldowns() {
	s := a.stats()
	a.tickPowerTimers()

	if !s.Corpse {
		a.deps.Map.Block(s.Pos.X, s.Pos.Y, true)
	}
	if s.StateTimer.IsEnd() {
		s.HoldState = false
	}
	if s.CurState != enums.StatePower && s.ChargeSpeed != 0 {
		s.ChargeSpeed = 0
	}
	a.replanner.Tick()
}

func (a *Avatar) setState(st enums.EntityState) {
	s := a.stats()
	if s.CurState == st {
		return
	}
	a.log.WithFields(logrus.Fields{"from": s.CurState, "to": st}).Debug("Avatar state changed")
	s.CurState = st
}

// State - текущее состояние автомата.
func (a *Avatar) State() enums.EntityState {
	return a.stats().CurState
}

func (a *Avatar) CurrentPower() domain.PowerID { return a.currentPower }

// Target - точка применения текущей способности.
func (a *Avatar) Target() domain.FPoint { return a.actTarget }

// Animation - текущая анимация.
func (a *Avatar) Animation() Animation { return a.anim }

func (a *Avatar) UsingMain1() bool { return a.usingMain1 }

func (a *Avatar) UsingMain2() bool { return a.usingMain2 }

// MouseMoveKey - кнопка, которой сейчас ходят.
func (a *Avatar) MouseMoveKey() input.Key { return a.mmKey }

func (a *Avatar) RestrictPowerUse() bool { return a.restrictPowerUse }

// SetCursorEnemy сообщает, какой враг под курсором в этом кадре.
func (a *Avatar) SetCursorEnemy(e *domain.Entity) { a.cursorEnemy = e }

func (a *Avatar) CursorEnemy() *domain.Entity { return a.cursorEnemy }

func (a *Avatar) LockEnemy() *domain.Entity { return a.lockEnemy }

// ClearLockEnemy снимает захват цели, например когда игрок выбрал другую способность.
func (a *Avatar) ClearLockEnemy() { a.lockEnemy = nil }
