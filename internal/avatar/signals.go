package avatar

import (
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
)

// Signals - побочные эффекты кадра, которые исполняет кто-то снаружи:
// меню, сохранения, звук, журнал сообщений.
type Signals struct {
	CloseMenus   bool     `json:"closeMenus,omitempty"`
	DeathPenalty bool     `json:"deathPenalty,omitempty"`
	DeleteSave   bool     `json:"deleteSave,omitempty"`
	GameOver     bool     `json:"gameOver,omitempty"`
	Sounds       []string `json:"sounds,omitempty"`
	Messages     []string `json:"messages,omitempty"`
}

// TakeSignals отдаёт накопленные сигналы и очищает их.
func (a *Avatar) TakeSignals() Signals {
	out := a.signals
	a.signals = Signals{}
	return out
}

func (a *Avatar) playSound(id string) {
	if id != "" {
		a.signals.Sounds = append(a.signals.Sounds, id)
	}
}

func (a *Avatar) message(msg string) {
	a.signals.Messages = append(a.signals.Messages, msg)
}

func (a *Avatar) playStepSound() {
	if a.deps.Steps == nil || a.Entity.StepSounds == "" {
		return
	}
	if sound, ok := a.deps.Steps.StepSound(a.Entity.StepSounds, a.deps.Roller); ok {
		a.playSound(sound)
	}
}

// handleLowHealth предупреждает при каждой потере здоровья ниже порога.
func (a *Avatar) handleLowHealth() {
	s := a.stats()
	defer func() { a.prevHP = s.HP }()

	if a.cfg.LowHPThreshold <= 0 || !s.IsAlive() || s.HP >= a.prevHP {
		return
	}
	if s.HP*100 >= s.MaxHP*a.cfg.LowHPThreshold {
		return
	}

	if a.cfg.LowHPWarning.ShowsText() {
		a.message("Your health is low!")
	}
	if a.cfg.LowHPWarning.PlaysSound() {
		a.playSound("low_health")
	}
}

// Respawn - единственный выход из DEAD. При вечной смерти воскрешения нет.
func (a *Avatar) Respawn(point domain.FPoint) bool {
	s := a.stats()
	if s.CurState != enums.StateDead {
		return false
	}
	if s.Permadeath {
		a.signals.DeleteSave = true
		return false
	}

	a.deps.Map.Unblock(s.Pos.X, s.Pos.Y)
	s.Revive(point)
	s.ClearEffects()
	s.PowersPassive = append([]domain.PowerID(nil), a.passives...)
	s.RefreshStats = true

	a.finishAllTimers()
	a.HandleNewMap()
	a.ActionQueue = a.ActionQueue[:0]
	a.currentPower = domain.NoPower
	a.originalPower = domain.NoPower
	a.prevHP = s.HP
	a.anim = nullAnimation{}
	a.setAnimation("stance")
	a.deps.Map.Block(s.Pos.X, s.Pos.Y, true)

	a.log.WithField("pos", point).Info("Avatar respawned")
	return true
}
