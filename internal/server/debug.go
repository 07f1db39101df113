package server

import (
	"encoding/json"
	"net/http"

	"github.com/rcarvalhosa/flare-engine/internal/engine"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Instance *engine.Instance
}

func NewDebugHandler(i *engine.Instance) *DebugHandler {
	return &DebugHandler{Instance: i}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/combat", h.handleCombat)
	mux.HandleFunc("/debug/avatar", h.handleAvatar)
	mux.HandleFunc("/debug/entities", h.handleEntities)
}

// /debug/combat - состояние боя: очередь инициативы, текущий ход, действия
func (h *DebugHandler) handleCombat(w http.ResponseWriter, r *http.Request) {
	h.dump(w, func(s *engine.Session) interface{} {
		d := s.Combat.DebugDump()
		d["tick"] = s.CurrentTick()
		return d
	})
}

// /debug/avatar - автомат управления аватаром и планировщик пути
func (h *DebugHandler) handleAvatar(w http.ResponseWriter, r *http.Request) {
	h.dump(w, func(s *engine.Session) interface{} { return s.AvatarDebug() })
}

// /debug/entities - полные структуры сущностей, включая скрытые таймеры
func (h *DebugHandler) handleEntities(w http.ResponseWriter, r *http.Request) {
	h.dump(w, func(s *engine.Session) interface{} { return s.Entities() })
}

// dump сериализует данные под замком сессии: они меняются в каждом кадре.
func (h *DebugHandler) dump(w http.ResponseWriter, read func(s *engine.Session) interface{}) {
	var body []byte
	var err error
	h.Instance.WithSession(func(s *engine.Session) {
		body, err = json.Marshal(read(s))
	})
	if err != nil {
		logger.Log.WithError(err).Warn("failed to encode debug response")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	setDebugHeaders(w)
	_, _ = w.Write(body)
}

func setDebugHeaders(w http.ResponseWriter) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")
}
