package api

import (
	"errors"
	"math"
)

// MaxPressedKeys - больше клавиш одновременно клиент прислать не может.
const MaxPressedKeys = 32

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p InputPayload) Validate() error {
	if len(p.Pressed) > MaxPressedKeys {
		return errors.New("too many pressed keys")
	}
	if !finite(p.MouseX) || !finite(p.MouseY) {
		return errors.New("mouse position must be finite")
	}
	return nil
}

func (p RespawnPayload) Validate() error {
	if (p.X == nil) != (p.Y == nil) {
		return errors.New("respawn point needs both x and y")
	}
	if p.X != nil && (!finite(*p.X) || !finite(*p.Y)) {
		return errors.New("respawn point must be finite")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
