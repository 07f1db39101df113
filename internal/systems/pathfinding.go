package systems

import (
	"container/heap"
	"math"

	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/sirupsen/logrus"
)

type navNeighbor struct {
	dx, dy   int
	cost     float64
	diagonal bool
}

var navNeighborOffsets = [...]navNeighbor{
	{dx: 0, dy: -1, cost: 1},
	{dx: 1, dy: 0, cost: 1},
	{dx: 0, dy: 1, cost: 1},
	{dx: -1, dy: 0, cost: 1},
	{dx: 1, dy: -1, cost: math.Sqrt2, diagonal: true},
	{dx: 1, dy: 1, cost: math.Sqrt2, diagonal: true},
	{dx: -1, dy: 1, cost: math.Sqrt2, diagonal: true},
	{dx: -1, dy: -1, cost: math.Sqrt2, diagonal: true},
}

type pathNode struct {
	point  domain.Point
	g      float64
	f      float64
	index  int
	parent *pathNode
}

type pathQueue []*pathNode

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool { return pq[i].f < pq[j].f }

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x any) {
	item := x.(*pathNode)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

func octileHeuristic(a, b domain.Point) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	if dx > dy {
		return dx + (math.Sqrt2-1)*dy
	}
	return dy + (math.Sqrt2-1)*dx
}

// passable - клетка годится как промежуточный узел пути.
func (m *MapCollision) passable(p domain.Point, mt enums.MovementType) bool {
	return m.IsWalkable(p.X, p.Y, mt) && !m.blockedFor(p.X, p.Y, CollideNormal)
}

// canCutCorner запрещает срезать угол стены по диагонали.
func (m *MapCollision) canCutCorner(from domain.Point, d navNeighbor, mt enums.MovementType) bool {
	if !d.diagonal {
		return true
	}
	return m.IsWalkable(from.X+d.dx, from.Y, mt) && m.IsWalkable(from.X, from.Y+d.dy, mt)
}

// ComputePath ищет путь A* от start к goal.
//
// Путь возвращается стеком: path[0] - сама цель, последний элемент - ближайшая
// к старту путевая точка. Клетка старта в путь не входит. Цель может быть
// занята сущностью (например, это враг, к которому идём), промежуточные клетки - нет.
// limit ограничивает число раскрытых узлов; при превышении поиск проваливается.
func (m *MapCollision) ComputePath(start, goal domain.FPoint, mt enums.MovementType, limit int) ([]domain.FPoint, bool) {
	pathLogger := logger.Log.WithFields(logrus.Fields{
		"component": "pathfinding",
		"start":     start,
		"goal":      goal,
	})

	if limit <= 0 {
		limit = DefaultPathLimit
	}

	from := start.Tile()
	to := goal.Tile()
	if !m.IsWalkable(to.X, to.Y, mt) {
		pathLogger.Debug("Goal is not walkable")
		return nil, false
	}
	if from == to {
		return []domain.FPoint{goal}, true
	}

	open := &pathQueue{}
	heap.Init(open)
	heap.Push(open, &pathNode{point: from, f: octileHeuristic(from, to)})
	gScore := map[domain.Point]float64{from: 0}
	closed := make(map[domain.Point]struct{})

	expanded := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if _, seen := closed[current.point]; seen {
			continue
		}
		closed[current.point] = struct{}{}

		if current.point == to {
			return buildPathStack(current, goal), true
		}

		expanded++
		if expanded > limit {
			pathLogger.WithField("limit", limit).Debug("Path search limit exceeded")
			return nil, false
		}

		for _, d := range navNeighborOffsets {
			next := domain.Point{X: current.point.X + d.dx, Y: current.point.Y + d.dy}
			if _, seen := closed[next]; seen {
				continue
			}
			if next != to && !m.passable(next, mt) {
				continue
			}
			if !m.canCutCorner(current.point, d, mt) {
				continue
			}
			tentative := current.g + d.cost
			if prev, ok := gScore[next]; ok && tentative >= prev {
				continue
			}
			gScore[next] = tentative
			heap.Push(open, &pathNode{
				point:  next,
				g:      tentative,
				f:      tentative + octileHeuristic(next, to),
				parent: current,
			})
		}
	}

	pathLogger.Debug("No path found")
	return nil, false
}

// buildPathStack разворачивает цепочку родителей в стек: цель первой,
// ближайшая к старту точка последней.
func buildPathStack(end *pathNode, goal domain.FPoint) []domain.FPoint {
	path := []domain.FPoint{goal}
	for node := end.parent; node != nil && node.parent != nil; node = node.parent {
		path = append(path, node.point.Center())
	}
	return path
}
