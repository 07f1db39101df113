package avatar

import (
	"github.com/rcarvalhosa/flare-engine/internal/config"
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/pkg/utils"
)

const (
	// replanStep - прибавка к шансу за каждый кадр без перепланирования.
	replanStep = 5
	// replanReset - шанс сразу после попытки. Следующие 20 кадров монетка не сработает.
	replanReset = -100
)

// PathPlanner - поиск пути по карте. Путь - стек: ближайшая точка последняя.
type PathPlanner interface {
	ComputePath(start, goal domain.FPoint, mt enums.MovementType, limit int) ([]domain.FPoint, bool)
}

// Replanner решает, когда пересчитывать путь к точке назначения.
// Пересчёт размазан по кадрам случайным образом, а после серии неудач
// подавлен на время, чтобы не долбить недостижимую цель каждый кадр.
type Replanner struct {
	planner PathPlanner
	roller  utils.Roller

	threshold int
	limit     int
	failWait  int

	chance     int
	fails      int
	failTimer  domain.Timer
	prevTarget domain.FPoint
	attempts   int
}

// NewReplanner создаёт планировщик. fps нужен для перевода паузы после неудач в кадры.
func NewReplanner(planner PathPlanner, roller utils.Roller, cfg config.Pathing, fps int) *Replanner {
	threshold := cfg.FailThreshold
	if threshold < 1 {
		threshold = 1
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 4096
	}
	return &Replanner{
		planner:   planner,
		roller:    roller,
		threshold: threshold,
		limit:     limit,
		failWait:  int(cfg.FailWaitSeconds * float64(fps)),
		chance:    replanReset,
		failTimer: domain.Finished(0),
	}
}

// Update возвращает новый стек пути и промежуточную цель на этот кадр.
// collided - был ли упор с прошлого кадра.
func (r *Replanner) Update(pos, target domain.FPoint, mt enums.MovementType, path []domain.FPoint, collided bool) ([]domain.FPoint, domain.FPoint) {
	r.chance += replanStep
	replan := r.roller.PercentChance(r.chance)

	if collided || len(path) == 0 || targetMoved(r.prevTarget, target) {
		replan = true
	}

	if !r.failTimer.IsEnd() {
		replan = false
		r.chance = replanReset
	}

	if replan {
		r.prevTarget = target
		r.chance = replanReset
		r.attempts++

		var found bool
		path, found = r.planner.ComputePath(pos, target, mt, r.limit)
		if found {
			r.fails = 0
			r.failTimer = r.failTimer.Finish()
		} else {
			path = nil
			r.fails++
			if r.fails >= r.threshold {
				r.failTimer = domain.NewTimer(r.failWait)
			}
		}
	}

	// Узел ближе тайла считается пройденным
	if n := len(path); n > 0 && domain.CalcDist(pos, path[n-1]) <= 1 {
		path = path[:n-1]
	}
	if n := len(path); n > 0 {
		return path, path[n-1]
	}
	return path, target
}

// Tick продвигает паузу после неудач. Раз в кадр.
func (r *Replanner) Tick() {
	r.failTimer = r.failTimer.Tick()
}

// Reset забывает накопленное состояние. На смене карты и воскрешении.
func (r *Replanner) Reset() {
	r.chance = replanReset
	r.fails = 0
	r.failTimer = r.failTimer.Finish()
	r.prevTarget = domain.FPoint{}
}

func (r *Replanner) Chance() int { return r.chance }

func (r *Replanner) Fails() int { return r.fails }

// Attempts - сколько раз за жизнь планировщика вызывался поиск пути.
func (r *Replanner) Attempts() int { return r.attempts }

// CoolingDown - идёт пауза после серии неудач.
func (r *Replanner) CoolingDown() bool { return !r.failTimer.IsEnd() }

// targetMoved сравнивает цели по тайлам, а не по точкам.
func targetMoved(prev, next domain.FPoint) bool {
	return domain.CalcDist(prev.Tile().Center(), next.Tile().Center()) > 1
}
