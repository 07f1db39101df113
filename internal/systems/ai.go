package systems

import (
	"math"

	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/sirupsen/logrus"
)

// NPCIntentKind - что NPC собирается сделать в этом кадре.
type NPCIntentKind uint8

const (
	IntentWait NPCIntentKind = iota
	IntentAttack
	IntentApproach
)

func (k NPCIntentKind) String() string {
	switch k {
	case IntentAttack:
		return "ATTACK"
	case IntentApproach:
		return "APPROACH"
	default:
		return "WAIT"
	}
}

// NPCIntent - решение ИИ. Destination заполнен только для IntentApproach.
type NPCIntent struct {
	Kind        NPCIntentKind
	Target      *domain.Entity
	Destination domain.FPoint
}

// ComputeNPCAction решает, что делать NPC по отношению к цели.
// Ничего не меняет: исполнение решения на стороне поведения сущности.
func ComputeNPCAction(npc, target *domain.Entity, c *MapCollision, pathLimit int) NPCIntent {
	wait := NPCIntent{Kind: IntentWait}
	if npc.Stats == nil || !npc.Stats.IsAlive() || target == nil || target.Stats == nil || !target.Stats.IsAlive() {
		return wait
	}

	aiLogger := logger.Log.WithFields(logrus.Fields{
		"component": "ai_system",
		"npc":       npc.Stats.Name,
		"target":    target.Stats.Name,
	})

	dist := domain.CalcDist(npc.Stats.Pos, target.Stats.Pos)
	canSee := c.LineOfSight(npc.Stats.Pos.X, npc.Stats.Pos.Y, target.Stats.Pos.X, target.Stats.Pos.Y)

	aiLogger.WithFields(logrus.Fields{"distance": dist, "los": canSee}).Debug("Evaluating target")

	if !canSee {
		return wait
	}

	melee := npc.Stats.MeleeRange
	if melee <= 0 {
		melee = domain.DefaultMeleeRange
	}
	// Диагональные соседи тоже в досягаемости
	if dist <= melee*math.Sqrt2+0.01 {
		return NPCIntent{Kind: IntentAttack, Target: target}
	}

	if npc.Stats.CombatStyle == enums.CombatStylePassive {
		return wait
	}

	pursuit := npc.Stats.ThreatRange
	if npc.Stats.CombatStyle == enums.CombatStyleAggressive {
		pursuit *= 2
	}
	if dist > pursuit && !npc.Stats.InCombat() {
		return wait
	}

	if path, ok := c.ComputePath(npc.Stats.Pos, target.Stats.Pos, npc.Stats.MovementType, pathLimit); ok && len(path) > 1 {
		return NPCIntent{Kind: IntentApproach, Target: target, Destination: path[len(path)-1]}
	}

	// Пути нет: пробуем шагнуть напрямую или вдоль одной из осей
	if dest, ok := smartStep(npc, target, c); ok {
		return NPCIntent{Kind: IntentApproach, Target: target, Destination: dest}
	}

	aiLogger.Debug("Path is blocked. Waiting")
	return wait
}

func smartStep(npc, target *domain.Entity, c *MapCollision) (domain.FPoint, bool) {
	from := npc.Stats.Pos.Tile()
	to := target.Stats.Pos.Tile()
	stepX := sign(to.X - from.X)
	stepY := sign(to.Y - from.Y)

	candidates := []domain.Point{{X: from.X + stepX, Y: from.Y + stepY}}
	if math.Abs(float64(to.X-from.X)) > math.Abs(float64(to.Y-from.Y)) {
		candidates = append(candidates, domain.Point{X: from.X + stepX, Y: from.Y}, domain.Point{X: from.X, Y: from.Y + stepY})
	} else {
		candidates = append(candidates, domain.Point{X: from.X, Y: from.Y + stepY}, domain.Point{X: from.X + stepX, Y: from.Y})
	}

	for _, p := range candidates {
		if p == from {
			continue
		}
		center := p.Center()
		if c.IsValidPosition(center.X, center.Y, npc.Stats.MovementType, CollideTypeFor(npc.Stats)) {
			return center, true
		}
	}
	return domain.FPoint{}, false
}
