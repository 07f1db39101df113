// Package content загружает игровые данные (способности, анимации, звуки шагов,
// шаблоны противников) из YAML и приводит их к типам симуляции.
package content

import (
	"github.com/rcarvalhosa/flare-engine/internal/animation"
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/powers"
	"github.com/rcarvalhosa/flare-engine/pkg/utils"
)

// ActionBarSlots - 10 слотов панели и две кнопки мыши.
const ActionBarSlots = 12

// HeroTemplate - готовый к использованию шаблон аватара.
type HeroTemplate struct {
	Name         string
	HP, MP       int
	Speed        float64
	MeleeRange   float64
	AnimationSet string
	StepSounds   string
	Permadeath   bool
	ActionBar    [ActionBarSlots]domain.PowerID
	Passives     []domain.PowerID
}

// NewStats создаёт характеристики аватара в точке pos.
func (h HeroTemplate) NewStats(pos domain.FPoint) *domain.StatsComponent {
	s := domain.NewStats(h.Name, h.HP, h.MP, h.Speed)
	s.Hero = true
	s.Pos = pos
	s.MeleeRange = h.MeleeRange
	s.Permadeath = h.Permadeath
	s.PowersPassive = append([]domain.PowerID(nil), h.Passives...)
	return s
}

// EnemyTemplate - шаблон противника.
type EnemyTemplate struct {
	Name         string
	HP, MP       int
	Speed        float64
	ThreatRange  float64
	MeleeRange   float64
	CombatStyle  enums.CombatStyle
	MovementType enums.MovementType
	AnimationSet string
	StepSounds   string
	Powers       []domain.PowerID
}

// NewStats создаёт характеристики противника в точке pos.
func (t EnemyTemplate) NewStats(pos domain.FPoint) *domain.StatsComponent {
	s := domain.NewStats(t.Name, t.HP, t.MP, t.Speed)
	s.Pos = pos
	s.ThreatRange = t.ThreatRange
	s.MeleeRange = t.MeleeRange
	s.CombatStyle = t.CombatStyle
	s.MovementType = t.MovementType
	return s
}

// BasicAttack - первая способность шаблона или NoPower.
func (t EnemyTemplate) BasicAttack() domain.PowerID {
	if len(t.Powers) == 0 {
		return domain.NoPower
	}
	return t.Powers[0]
}

// Content - весь загруженный контент.
type Content struct {
	Hero       HeroTemplate
	Powers     *powers.Table
	Animations map[string]*animation.Set
	StepSounds map[string][]string
	Enemies    []EnemyTemplate
}

// AnimationSet возвращает набор по имени. Неизвестный набор - пустой набор,
// с которым сущность продолжает работать без анимаций.
func (c *Content) AnimationSet(name string) *animation.Set {
	if set, ok := c.Animations[name]; ok {
		return set
	}
	return animation.NewSet()
}

// StepSound выбирает случайный звук из набора шагов.
func (c *Content) StepSound(id string, roller utils.Roller) (string, bool) {
	sounds := c.StepSounds[id]
	if len(sounds) == 0 {
		return "", false
	}
	return sounds[roller.Intn(len(sounds))], true
}

// Enemy ищет шаблон противника по имени.
func (c *Content) Enemy(name string) (EnemyTemplate, bool) {
	for _, e := range c.Enemies {
		if e.Name == name {
			return e, true
		}
	}
	return EnemyTemplate{}, false
}
