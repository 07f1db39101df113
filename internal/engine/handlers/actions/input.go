package actions

import (
	"fmt"

	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/engine/handlers"
	"github.com/rcarvalhosa/flare-engine/internal/input"
	"github.com/rcarvalhosa/flare-engine/pkg/api"
)

// HandleInput ставит снимок ввода клиента в очередь сессии.
func HandleInput(ctx handlers.Context, p api.InputPayload) (handlers.Result, error) {
	frame, err := ToFrame(p)
	if err != nil {
		return handlers.Result{}, err
	}
	ctx.Controls.QueueInput(frame)
	return handlers.EmptyResult(), nil
}

// ToFrame переводит сетевой снимок ввода во внутренний.
func ToFrame(p api.InputPayload) (input.Frame, error) {
	f := input.Frame{
		Mouse:      domain.FPoint{X: p.MouseX, Y: p.MouseY},
		UsingMouse: p.UsingMouse,
		OverUI:     p.OverUI,
	}
	for _, name := range p.Pressed {
		k, ok := input.ParseKey(name)
		if !ok {
			return input.Frame{}, fmt.Errorf("unknown key %q", name)
		}
		f.Pressed = append(f.Pressed, k)
	}
	return f, nil
}
