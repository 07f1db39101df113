package domain

import "math"

// FPoint - позиция в координатах карты (1.0 = один тайл).
type FPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point - целочисленная клетка карты.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Tile возвращает клетку, в которой лежит точка.
func (p FPoint) Tile() Point {
	return Point{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// Center возвращает центр клетки.
func (p Point) Center() FPoint {
	return FPoint{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5}
}

// CalcDist - евклидово расстояние между точками.
func CalcDist(a, b FPoint) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// DirectionCount - количество направлений (изометрические восемь сторон).
const DirectionCount = 8

// Смещения по осям для каждого направления.
// Направление 5 смотрит вдоль +X, 7 вдоль +Y.
var (
	directionDeltaX = [DirectionCount]float64{-1, -1, -1, 0, 1, 1, 1, 0}
	directionDeltaY = [DirectionCount]float64{1, 0, -1, -1, -1, 0, 1, 1}
)

// SpeedMultiplier нормализует диагональные шаги, чтобы скорость не зависела от направления.
var SpeedMultiplier = [DirectionCount]float64{
	1 / math.Sqrt2, 1, 1 / math.Sqrt2, 1, 1 / math.Sqrt2, 1, 1 / math.Sqrt2, 1,
}

// DirectionDelta возвращает единичный шаг по осям. Неизвестное направление даёт нулевой шаг.
func DirectionDelta(direction int) (float64, float64) {
	if direction < 0 || direction >= DirectionCount {
		return 0, 0
	}
	return directionDeltaX[direction], directionDeltaY[direction]
}

// calcTheta - угол от (x0,y0) к (x1,y1). Вертикаль при dx == 0 считается явно,
// чтобы совпадающие точки давали предсказуемое направление.
func calcTheta(x0, y0, x1, y1 float64) float64 {
	dx := x1 - x0
	dy := y1 - y0
	if dx == 0 {
		if dy > 0 {
			return math.Pi / 2
		}
		return -math.Pi / 2
	}
	theta := math.Atan(dy / dx)
	if dx < 0 && dy >= 0 {
		theta += math.Pi
	}
	if dx < 0 && dy < 0 {
		theta -= math.Pi
	}
	return theta
}

// CalcDirection возвращает одно из восьми направлений от одной точки к другой.
func CalcDirection(x0, y0, x1, y1 float64) int {
	val := calcTheta(x0, y0, x1, y1) / (math.Pi / 4)
	var dir int
	if val < 0 {
		dir = int(math.Ceil(val-0.5)) + 4
	} else {
		dir = int(math.Floor(val+0.5)) + 4
	}
	dir = (dir + 1) % DirectionCount
	if dir < 0 || dir >= DirectionCount {
		return 0
	}
	return dir
}

// CalcVector сдвигает точку на dist в заданном направлении.
// Диагональ укорачивается, чтобы итоговая длина совпадала с dist.
func CalcVector(pos FPoint, direction int, dist float64) FPoint {
	dx, dy := DirectionDelta(direction)
	if dx != 0 && dy != 0 {
		dist /= math.Sqrt2
	}
	return FPoint{X: pos.X + dx*dist, Y: pos.Y + dy*dist}
}
