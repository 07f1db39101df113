package actions

import (
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/engine/handlers"
	"github.com/rcarvalhosa/flare-engine/pkg/api"
)

// HandleRespawn воскрешает погибший аватар.
func HandleRespawn(ctx handlers.Context, p api.RespawnPayload) (handlers.Result, error) {
	var at *domain.FPoint
	if p.X != nil {
		at = &domain.FPoint{X: *p.X, Y: *p.Y}
	}
	if !ctx.Controls.Respawn(at) {
		return handlers.Result{Msg: "You cannot respawn now.", MsgType: "ERROR"}, nil
	}
	return handlers.Result{Msg: "You have been revived.", MsgType: "INFO"}, nil
}
