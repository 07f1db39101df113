package handlers

import (
	"encoding/json"

	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/input"
)

// Controls - то, чем клиентские команды управляют в сессии.
// Session неявно реализует этот интерфейс.
type Controls interface {
	// QueueInput ставит снимок ввода в очередь; применяется в начале кадра.
	QueueInput(f input.Frame)
	// EndTurn отдаёт остаток хода игрока. false, если сейчас не его ход.
	EndTurn() bool
	// Respawn воскрешает аватар. at == nil значит старт уровня.
	Respawn(at *domain.FPoint) bool
}

// Context передает хендлеру состояние сессии.
type Context struct {
	Controls Controls
	Actor    *domain.Entity // Аватар игрока
	Tick     int
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сессии напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, COMBAT, ERROR)
	// Resync - клиенту нужен полный снимок с картой.
	Resync bool
}

// HandlerFunc - это контракт для любой команды (INPUT, END_TURN, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
