package powers

import (
	"errors"
	"fmt"

	"github.com/rcarvalhosa/flare-engine/internal/domain"
)

var (
	ErrInvalidPowerID   = errors.New("power id must be positive")
	ErrDuplicatePowerID = errors.New("duplicate power id")
)

// Table - все способности, индексированные по ID. Слот 0 всегда пуст.
type Table struct {
	powers []*Power
}

// NewTable строит таблицу. Размер таблицы - максимальный ID + 1.
func NewTable(defs []Power) (*Table, error) {
	var maxID domain.PowerID
	for _, d := range defs {
		if d.ID == domain.NoPower {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPowerID, d.Name)
		}
		if d.ID > maxID {
			maxID = d.ID
		}
	}

	t := &Table{powers: make([]*Power, maxID+1)}
	for i := range defs {
		d := defs[i]
		if t.powers[d.ID] != nil {
			return nil, fmt.Errorf("%w: %d", ErrDuplicatePowerID, d.ID)
		}
		t.powers[d.ID] = &d
	}
	return t, nil
}

// Len - количество слотов (включая пустые). Таймеры способностей заводятся по этому размеру.
func (t *Table) Len() int {
	return len(t.powers)
}

func (t *Table) IsValid(id domain.PowerID) bool {
	return int(id) < len(t.powers) && t.powers[id] != nil
}

// Get возвращает способность или nil.
func (t *Table) Get(id domain.PowerID) *Power {
	if !t.IsValid(id) {
		return nil
	}
	return t.powers[id]
}

// Find ищет способность по имени. Используется при загрузке ссылок из контента.
func (t *Table) Find(name string) (domain.PowerID, bool) {
	for _, p := range t.powers {
		if p != nil && p.Name == name {
			return p.ID, true
		}
	}
	return domain.NoPower, false
}

// CheckReplaceByEffect возвращает ID способности, которая фактически сработает.
// Правила проверяются с конца: более поздние приоритетнее. Без подходящего
// правила возвращается исходный ID. Неизвестный исходный ID или подмена на
// неизвестную способность дают NoPower.
func (t *Table) CheckReplaceByEffect(id domain.PowerID, effects *domain.EffectsComponent) domain.PowerID {
	p := t.Get(id)
	if p == nil {
		return domain.NoPower
	}
	for i := len(p.ReplaceByEffect) - 1; i >= 0; i-- {
		rule := p.ReplaceByEffect[i]
		if effects.Has(rule.EffectID, rule.Count) {
			if !t.IsValid(rule.PowerID) {
				return domain.NoPower
			}
			return rule.PowerID
		}
	}
	return id
}
