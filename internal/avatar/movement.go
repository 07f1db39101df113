package avatar

import (
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/input"
	"github.com/rcarvalhosa/flare-engine/internal/systems"
)

// pressingMove - хочет ли игрок двигаться в этом кадре.
func (a *Avatar) pressingMove() bool {
	s := a.stats()
	if !a.AllowMovement || a.TeleportCameraLock {
		return false
	}
	if s.Effects.KnockbackSpeed != 0 {
		return false
	}

	if a.cfg.MouseMove {
		a.updateMouseDistance()
		return a.mmIsDistant && !a.IsNearTarget()
	}
	// В бою ходят только кликом
	if s.InCombat() {
		return false
	}

	in := a.input
	for _, k := range [...]input.Key{input.KeyUp, input.KeyDown, input.KeyLeft, input.KeyRight} {
		if in.Pressing[k] && !in.Lock[k] {
			return true
		}
	}
	return false
}

// IsNearTarget - последний отрезок и цель ближе двух шагов.
func (a *Avatar) IsNearTarget() bool {
	s := a.stats()
	return len(a.path) == 0 && domain.CalcDist(s.Pos, a.mmTargetDesired) <= s.Speed*2
}

func (a *Avatar) setDirection() {
	if a.cfg.MouseMove {
		a.handleMouseMoveDirection()
		return
	}
	a.handleKeyboardDirection()
}

// keyDirections: индекс - маска вверх|вниз<<1|влево<<2|вправо<<3.
var keyDirections = map[int]int{
	1:     2,
	2:     6,
	4:     0,
	8:     4,
	1 | 4: 1,
	1 | 8: 3,
	2 | 8: 5,
	2 | 4: 7,
}

func (a *Avatar) keyMask(up, down, left, right input.Key) int {
	in := a.input
	mask := 0
	for i, k := range [...]input.Key{up, down, left, right} {
		if in.Held(k) {
			mask |= 1 << i
		}
	}
	return mask
}

func (a *Avatar) handleKeyboardDirection() {
	if !a.setDirTimer.IsEnd() {
		return
	}

	mask := a.keyMask(input.KeyUp, input.KeyDown, input.KeyLeft, input.KeyRight)
	if mask == 0 {
		mask = a.keyMask(input.KeyAimUp, input.KeyAimDown, input.KeyAimLeft, input.KeyAimRight)
	}
	dir, ok := keyDirections[mask]
	if !ok {
		return
	}
	if a.cfg.OrthogonalTileset {
		dir = (dir + 1) % domain.DirectionCount
	}

	s := a.stats()
	if dir != s.Direction {
		s.Direction = dir
		a.setDirTimer = domain.NewTimer(a.fps / 10)
	}
}

// handleMouseMoveDirection выбирает точку назначения по клику и направление к ней.
func (a *Avatar) handleMouseMoveDirection() {
	s := a.stats()
	in := a.input

	clicked := in.Pressing[a.mmKey] && !in.OverUI && (!in.Lock[a.mmKey] || a.dragWalking)
	// В бою каждый клик - действие, поэтому зажатая кнопка цель не двигает
	if clicked && s.InCombat() && in.Lock[a.mmKey] {
		clicked = false
	}

	// Клик внутри мёртвой зоны не сдвинет аватар: не захватываем кнопку и
	// не тратим действие
	if clicked && domain.CalcDist(s.Pos, in.Mouse) <= a.mouseDeadzone() {
		clicked = false
	}

	if clicked && a.lockEnemy == nil {
		dest := in.Mouse
		switch {
		case s.InCombat():
			if a.gate.IsValidMovement(dest) {
				in.Lock[a.mmKey] = true
				a.committedMove = true
				a.gate.SpendAction()
				a.mmTargetDesired = dest
				a.path = a.path[:0]
			}
		case a.deps.Map.IsValidPosition(dest.X, dest.Y, s.MovementType, systems.CollideHero):
			a.mmTargetDesired = dest
		}
	}

	a.mmTarget = a.mmTargetDesired
	if a.collided || !a.deps.Map.LineOfMovement(s.Pos.X, s.Pos.Y, a.mmTarget.X, a.mmTarget.Y, s.MovementType) {
		a.path, a.mmTarget = a.replanner.Update(s.Pos, a.mmTargetDesired, s.MovementType, a.path, a.collided)
		a.collided = false
	} else {
		a.path = a.path[:0]
	}

	if a.setDirTimer.IsEnd() && domain.CalcDist(s.Pos, a.mmTarget) > 0 {
		dir := domain.CalcDirection(s.Pos.X, s.Pos.Y, a.mmTarget.X, a.mmTarget.Y)
		if dir != s.Direction {
			s.Direction = dir
			a.updateDirectionTimer()
		}
	}
}

// updateDirectionTimer: чем дальше цель, тем реже разрешён поворот.
func (a *Avatar) updateDirectionTimer() {
	s := a.stats()
	frames := a.fps / 2
	speed := s.EffectiveSpeed() * domain.SpeedMultiplier[s.Direction%domain.DirectionCount]
	if speed > 0 {
		dist := domain.CalcDist(s.Pos, a.mmTarget)
		frames = min(frames, int(dist*0.5/speed))
	}
	a.setDirTimer = domain.NewTimer(frames)
}

// handleMouseMovement - покадровое обслуживание ходьбы мышью.
func (a *Avatar) handleMouseMovement() {
	in := a.input
	a.usingMain1 = in.Pressing[input.KeyMain1] && !in.Lock[input.KeyMain1]
	a.usingMain2 = in.Pressing[input.KeyMain2] && !in.Lock[input.KeyMain2]

	if !a.cfg.MouseMove {
		return
	}
	if !in.Pressing[a.mmKey] {
		a.dragWalking = false
	}

	a.handleMouseLock()
	a.updateLockedEnemy()
	a.updateMouseDistance()
}

// handleMouseLock: свежий клик по врагу захватывает его, клик мимо отпускает.
func (a *Avatar) handleMouseLock() {
	in := a.input
	if !in.Pressing[a.mmKey] || in.Lock[a.mmKey] || in.OverUI || a.dragWalking {
		return
	}
	if a.cfg.MouseMoveAttack && isLiveEnemy(a.cursorEnemy) {
		a.lockEnemy = a.cursorEnemy
		return
	}
	a.lockEnemy = nil
}

// updateLockedEnemy ведёт аватар за захваченным врагом. В бою враг только цель,
// ходьбу к нему оплачивает отдельный клик.
func (a *Avatar) updateLockedEnemy() {
	if a.lockEnemy == nil {
		return
	}
	if !isLiveEnemy(a.lockEnemy) {
		a.lockEnemy = nil
		return
	}
	if !a.stats().InCombat() {
		a.mmTargetDesired = a.lockEnemy.Stats.Pos
	}
}

func (a *Avatar) updateMouseDistance() {
	s := a.stats()
	a.mmIsDistant = domain.CalcDist(s.Pos, a.mmTargetDesired) > a.mouseDeadzone()
}

func (a *Avatar) mouseDeadzone() float64 {
	if a.State() == enums.StateMove {
		return a.cfg.DeadzoneMoving
	}
	return a.cfg.DeadzoneNotMoving
}

// move - один шаг. Ход по кругу боя проверяется здесь, а не в подклассах.
func (a *Avatar) move() bool {
	s := a.stats()
	if s.InCombat() && !a.gate.IsPlayerTurn() && !a.committedMove {
		return false
	}
	if !a.cfg.MouseMove {
		return systems.Move(a.Entity, a.deps.Map, a.policy)
	}

	// Последний шаг доводим точно до точки, чтобы не проскочить её
	step := s.EffectiveSpeed() * domain.SpeedMultiplier[s.Direction%domain.DirectionCount]
	if domain.CalcDist(s.Pos, a.mmTarget) <= step {
		return systems.MoveToward(a.Entity, a.mmTarget, a.deps.Map, a.policy)
	}
	return systems.Move(a.Entity, a.deps.Map, a.policy)
}

// HandleNewMap сбрасывает цели и путь после смены карты или телепорта.
func (a *Avatar) HandleNewMap() {
	s := a.stats()
	a.cursorEnemy = nil
	a.lockEnemy = nil
	a.path = nil
	a.collided = false
	a.committedMove = false
	a.mmTarget = s.Pos
	a.mmTargetDesired = s.Pos
	a.replanner.Reset()
}

// Path - копия текущего стека пути.
func (a *Avatar) Path() []domain.FPoint {
	return append([]domain.FPoint(nil), a.path...)
}

// MovementTarget - ближайшая точка, к которой идёт аватар.
func (a *Avatar) MovementTarget() domain.FPoint { return a.mmTarget }

// DesiredTarget - куда игрок хочет прийти.
func (a *Avatar) DesiredTarget() domain.FPoint { return a.mmTargetDesired }

func (a *Avatar) Collided() bool { return a.collided }

// Replanner нужен отладочному снимку.
func (a *Avatar) Replanner() *Replanner { return a.replanner }

func isLiveEnemy(e *domain.Entity) bool {
	return e != nil && e.Stats != nil && e.IsHostile() && e.Stats.IsAlive() && !e.Stats.Corpse
}
