package actions

import "github.com/rcarvalhosa/flare-engine/internal/engine/handlers"

// HandleInit просит полный снимок сессии для только что подключившегося клиента.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{Resync: true}, nil
}
