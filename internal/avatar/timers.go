package avatar

import (
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/powers"
)

// allocateTimers создаёт таймеры для каждого валидного ID способности.
// Для дыр в таблице таймеров нет.
func (a *Avatar) allocateTimers(table *powers.Table) {
	n := 0
	if table != nil {
		n = table.Len()
	}
	a.cooldownTimers = make([]*domain.Timer, n)
	a.castTimers = make([]*domain.Timer, n)
	for i := 0; i < n; i++ {
		if !table.IsValid(domain.PowerID(i)) {
			continue
		}
		cd := domain.Finished(0)
		cast := domain.Finished(0)
		a.cooldownTimers[i] = &cd
		a.castTimers[i] = &cast
	}
}

func (a *Avatar) timerAt(timers []*domain.Timer, id domain.PowerID) *domain.Timer {
	if id <= 0 || int(id) >= len(timers) {
		return nil
	}
	return timers[id]
}

func (a *Avatar) setCooldown(id domain.PowerID, d int) {
	if t := a.timerAt(a.cooldownTimers, id); t != nil {
		*t = domain.NewTimer(d)
	}
}

func (a *Avatar) setCastTimer(id domain.PowerID, d int) {
	if t := a.timerAt(a.castTimers, id); t != nil {
		*t = domain.NewTimer(d)
	}
}

func (a *Avatar) tickPowerTimers() {
	for i := range a.cooldownTimers {
		if a.cooldownTimers[i] == nil {
			continue
		}
		*a.cooldownTimers[i] = a.cooldownTimers[i].Tick()
		*a.castTimers[i] = a.castTimers[i].Tick()
	}
}

// finishAllTimers - смерть и воскрешение обнуляют все кулдауны.
func (a *Avatar) finishAllTimers() {
	for i := range a.cooldownTimers {
		if a.cooldownTimers[i] == nil {
			continue
		}
		*a.cooldownTimers[i] = a.cooldownTimers[i].Finish()
		*a.castTimers[i] = a.castTimers[i].Finish()
	}
}

// CooldownTimer возвращает копию таймера восстановления способности.
func (a *Avatar) CooldownTimer(id domain.PowerID) (domain.Timer, bool) {
	if t := a.timerAt(a.cooldownTimers, id); t != nil {
		return *t, true
	}
	return domain.Timer{}, false
}

// CastTimer возвращает копию таймера применения способности.
func (a *Avatar) CastTimer(id domain.PowerID) (domain.Timer, bool) {
	if t := a.timerAt(a.castTimers, id); t != nil {
		return *t, true
	}
	return domain.Timer{}, false
}
