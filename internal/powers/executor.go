package powers

import (
	"math"
	"sort"

	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/systems"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/rcarvalhosa/flare-engine/pkg/utils"
	"github.com/sirupsen/logrus"
)

// DefaultRadius - зона поражения, если в способности она не задана.
const DefaultRadius = 0.75

// World - то, что исполнителю нужно знать о карте.
type World interface {
	Entities() []*domain.Entity
	Collision() *systems.MapCollision
}

// Spawner создаёт сущности для способностей типа SPAWN.
type Spawner interface {
	Spawn(p *Power, caster *domain.Entity, at domain.FPoint) bool
}

// Executor применяет способности к миру: урон, эффекты, призыв.
type Executor struct {
	table   *Table
	world   World
	roller  utils.Roller
	spawner Spawner

	onMessage func(string)
	log       *logrus.Entry
}

func NewExecutor(table *Table, world World, roller utils.Roller) *Executor {
	return &Executor{
		table:  table,
		world:  world,
		roller: roller,
		log:    logger.Log.WithField("component", "power_executor"),
	}
}

// SetSpawner подключает обработчик SPAWN. Без него такие способности не срабатывают.
func (x *Executor) SetSpawner(s Spawner) {
	x.spawner = s
}

// OnMessage задаёт получателя сообщений для журнала игрока.
func (x *Executor) OnMessage(fn func(string)) {
	x.onMessage = fn
}

func (x *Executor) report(msg string) {
	if x.onMessage != nil && msg != "" {
		x.onMessage(msg)
	}
}

// Table возвращает таблицу способностей, с которой работает исполнитель.
func (x *Executor) Table() *Table {
	return x.table
}

// Activate исполняет способность id от имени caster в точке target.
// Возвращает false, если способность не сработала (нет такой, мёртв, нет маны).
func (x *Executor) Activate(id domain.PowerID, caster *domain.Entity, target domain.FPoint) bool {
	p := x.table.Get(id)
	if p == nil || caster.Stats == nil || !caster.Stats.IsAlive() {
		return false
	}

	powerLogger := x.log.WithFields(logrus.Fields{
		"power":  p.Name,
		"caster": caster.Stats.Name,
		"target": target,
	})

	if !caster.Stats.SpendMP(p.ManaCost) {
		powerLogger.Debug("Not enough MP to activate power")
		return false
	}

	switch p.Type {
	case enums.PowerTypeFixed, enums.PowerTypeMissile, enums.PowerTypeRepeater:
		victims := x.findTargets(p, caster, target)
		for _, v := range victims {
			x.hit(p, caster, v)
		}
		powerLogger.WithField("victims", len(victims)).Debug("Power activated")
	case enums.PowerTypeSpawn:
		if x.spawner == nil || !x.spawner.Spawn(p, caster, x.impactPoint(p, caster, target)) {
			powerLogger.Warn("Spawn power could not be resolved")
			return false
		}
	case enums.PowerTypeBlock:
		powerLogger.Debug("Block power activated")
	}

	for _, e := range p.PostEffects {
		caster.Stats.Effects.Add(e.Instantiate(p.ID, false))
	}
	if len(p.PostEffects) > 0 {
		caster.Stats.RefreshStats = true
	}

	return true
}

// ActivatePreChain запускает способности, привязанные к началу id, каждую со своим шансом.
func (x *Executor) ActivatePreChain(id domain.PowerID, caster *domain.Entity, target domain.FPoint) {
	p := x.table.Get(id)
	if p == nil {
		return
	}
	for _, c := range p.PreChain {
		if c.PowerID == id {
			continue
		}
		if x.roller.PercentChance(c.Chance) {
			x.Activate(c.PowerID, caster, target)
		}
	}
}

// ActivatePassives вешает эффекты пассивных способностей, которых ещё нет на носителе.
func (x *Executor) ActivatePassives(caster *domain.Entity) {
	s := caster.Stats
	for _, id := range s.PowersPassive {
		p := x.table.Get(id)
		if p == nil || !p.Passive {
			continue
		}
		for _, e := range p.PostEffects {
			if s.Effects.Count(e.ID) > 0 {
				continue
			}
			s.Effects.Add(e.Instantiate(p.ID, true))
			s.RefreshStats = true
		}
	}
}

// InRange проверяет дальность и видимость точки цели для способности.
func (x *Executor) InRange(id domain.PowerID, caster *domain.Entity, target domain.FPoint) bool {
	p := x.table.Get(id)
	if p == nil {
		return false
	}
	reach := p.Range
	if reach <= 0 {
		reach = caster.Stats.MeleeRange
	}
	// Соседняя диагональ тоже в досягаемости ближнего боя
	if domain.CalcDist(caster.Stats.Pos, target) > reach*math.Sqrt2+0.01 {
		return false
	}
	if p.RequiresLOS {
		from := caster.Stats.Pos
		return x.world.Collision().LineOfSight(from.X, from.Y, target.X, target.Y)
	}
	return true
}

// impactPoint - точка срабатывания с учётом дальности способности.
func (x *Executor) impactPoint(p *Power, caster *domain.Entity, target domain.FPoint) domain.FPoint {
	from := caster.Stats.Pos
	if p.StartingPos == enums.StartingPosSource {
		return from
	}
	reach := p.Range
	if p.StartingPos == enums.StartingPosMelee {
		reach = caster.Stats.MeleeRange
		if reach <= 0 {
			reach = domain.DefaultMeleeRange
		}
		reach *= math.Sqrt2
	}
	dist := domain.CalcDist(from, target)
	if reach <= 0 || dist <= reach {
		return target
	}
	k := reach / dist
	return domain.FPoint{X: from.X + (target.X-from.X)*k, Y: from.Y + (target.Y-from.Y)*k}
}

func (x *Executor) findTargets(p *Power, caster *domain.Entity, target domain.FPoint) []*domain.Entity {
	point := x.impactPoint(p, caster, target)
	radius := p.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}

	var victims []*domain.Entity
	for _, e := range x.world.Entities() {
		if e == caster || e.Stats == nil || !e.Stats.IsAlive() {
			continue
		}
		if e.IsHostile() == caster.IsHostile() {
			continue
		}
		if domain.CalcDist(point, e.Stats.Pos) > radius {
			continue
		}
		if p.RequiresLOS {
			from := caster.Stats.Pos
			if !x.world.Collision().LineOfSight(from.X, from.Y, e.Stats.Pos.X, e.Stats.Pos.Y) {
				continue
			}
		}
		victims = append(victims, e)
	}

	// Одиночные способности бьют ближайшего к точке
	if p.Type != enums.PowerTypeRepeater && len(victims) > 1 {
		sort.SliceStable(victims, func(i, j int) bool {
			return domain.CalcDist(point, victims[i].Stats.Pos) < domain.CalcDist(point, victims[j].Stats.Pos)
		})
		victims = victims[:1]
	}
	return victims
}

func (x *Executor) hit(p *Power, caster, victim *domain.Entity) {
	res := systems.ApplyHit(caster, victim, p.Damage)
	x.report(res.Message)
	if res.Died {
		return
	}
	for _, e := range p.TargetEffects {
		victim.Stats.Effects.Add(e.Instantiate(p.ID, false))
	}
}
