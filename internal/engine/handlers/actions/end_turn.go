package actions

import "github.com/rcarvalhosa/flare-engine/internal/engine/handlers"

// HandleEndTurn отдаёт оставшиеся действия хода игрока.
func HandleEndTurn(ctx handlers.Context) (handlers.Result, error) {
	if !ctx.Controls.EndTurn() {
		return handlers.Result{Msg: "It is not your turn.", MsgType: "ERROR"}, nil
	}
	return handlers.EmptyResult(), nil
}
