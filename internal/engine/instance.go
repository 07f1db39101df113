package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/engine/handlers"
	"github.com/rcarvalhosa/flare-engine/internal/engine/handlers/actions"
	"github.com/rcarvalhosa/flare-engine/internal/network"
	"github.com/rcarvalhosa/flare-engine/pkg/api"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/sirupsen/logrus"
)

// commandBuffer - сколько команд может ждать следующего кадра.
const commandBuffer = 128

// registerHandlers - таблица команд клиента. Общая для живой игры и реплея.
func registerHandlers() map[domain.ActionType]handlers.HandlerFunc {
	return map[domain.ActionType]handlers.HandlerFunc{
		domain.ActionInit:    handlers.WithEmptyPayload(actions.HandleInit),
		domain.ActionInput:   handlers.WithPayload(actions.HandleInput),
		domain.ActionEndTurn: handlers.WithEmptyPayload(actions.HandleEndTurn),
		domain.ActionRespawn: handlers.WithPayload(actions.HandleRespawn),
	}
}

// execute выполняет команду в контексте сессии и пишет её результат в журнал.
func execute(s *Session, table map[domain.ActionType]handlers.HandlerFunc, cmd domain.InternalCommand) (handlers.Result, error) {
	handler, ok := table[cmd.Action]
	if !ok {
		return handlers.Result{}, fmt.Errorf("no handler for action %s", cmd.Action)
	}

	ctx := handlers.Context{
		Controls: s,
		Actor:    s.hero,
		Tick:     s.tick,
	}
	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		return result, err
	}
	if result.Msg != "" {
		s.addLog(result.Msg, result.MsgType)
	}
	return result, nil
}

// Instance крутит одну сессию в своей горутине с фиксированной частотой
// кадров и рассылает снимки подписчикам.
type Instance struct {
	session *Session
	Hub     *network.Broadcaster

	// CommandChan - команды от клиентов, применяются в начале кадра
	CommandChan chan domain.InternalCommand

	// mu защищает сессию от чтения отладочным API посреди кадра
	mu       sync.Mutex
	handlers map[domain.ActionType]handlers.HandlerFunc
	resync   []string

	Replay *domain.ReplaySession // Лента событий
	log    *logrus.Entry
}

func NewInstance(s *Session, hub *network.Broadcaster) *Instance {
	return &Instance{
		session:     s,
		Hub:         hub,
		CommandChan: make(chan domain.InternalCommand, commandBuffer),
		handlers:    registerHandlers(),
		Replay: &domain.ReplaySession{
			Seed:      s.cfg.Seed,
			Timestamp: time.Now().Unix(),
			FPS:       s.cfg.FPS,
			Actions:   make([]domain.ReplayAction, 0),
		},
		log: logger.Log.WithFields(logrus.Fields{"component": "instance", "seed": s.cfg.Seed}),
	}
}

// ProcessCommand - точка входа для сетевого слоя. Команда попадает в очередь
// и выполнится в начале следующего кадра.
func (i *Instance) ProcessCommand(cmd api.ClientCommand) error {
	action := domain.ParseAction(cmd.Action)
	if action == domain.ActionUnknown {
		return fmt.Errorf("unknown action %q", cmd.Action)
	}

	internal := domain.InternalCommand{
		Action:  action,
		Token:   cmd.Token,
		Payload: cmd.Payload,
	}
	select {
	case i.CommandChan <- internal:
		return nil
	default:
		i.log.WithFields(logrus.Fields{"token": cmd.Token, "action": action}).Warn("Command queue full, dropping")
		return fmt.Errorf("command queue is full")
	}
}

// Run запускает игровой цикл. Возвращается при отмене ctx.
func (i *Instance) Run(ctx context.Context) error {
	interval := i.session.cfg.TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	i.log.WithField("interval", interval).Info("Instance loop started")
	for {
		select {
		case <-ctx.Done():
			i.log.WithField("tick", i.CurrentTick()).Info("Instance loop stopped")
			return nil
		case <-ticker.C:
			i.Step()
		}
	}
}

// Step - один кадр: команды, симуляция, рассылка.
func (i *Instance) Step() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.drainCommands()
	i.session.Tick()
	i.publish()
}

func (i *Instance) drainCommands() {
	for {
		select {
		case cmd := <-i.CommandChan:
			i.executeCommand(cmd)
		default:
			return
		}
	}
}

func (i *Instance) executeCommand(cmd domain.InternalCommand) {
	cmdLog := i.log.WithFields(logrus.Fields{
		"token":  cmd.Token,
		"action": cmd.Action,
		"tick":   i.session.tick,
	})

	result, err := execute(i.session, i.handlers, cmd)
	if err != nil {
		cmdLog.WithError(err).Warn("Command rejected")
		i.session.addLog(err.Error(), LogError)
		return
	}

	if cmd.Action != domain.ActionInit {
		i.recordAction(cmd, i.session.tick)
	}
	if result.Resync {
		i.resync = append(i.resync, cmd.Token)
	}
	cmdLog.Debug("Command executed")
}

func (i *Instance) recordAction(cmd domain.InternalCommand, tick int) {
	i.Replay.Actions = append(i.Replay.Actions, domain.ReplayAction{
		Tick:    tick,
		Action:  cmd.Action,
		Payload: cmd.Payload,
	})
}

// publish рассылает снимок кадра. Без подписчиков накопленное просто
// выбрасывается, чтобы не расти бесконечно.
func (i *Instance) publish() {
	if i.Hub == nil || i.Hub.SubscriberCount() == 0 {
		i.session.TakeLogs()
		i.session.TakeSounds()
		i.resync = i.resync[:0]
		return
	}

	i.Hub.Broadcast(i.session.Snapshot(SnapshotUpdate))
	for _, token := range i.resync {
		i.Hub.SendTo(token, i.session.Snapshot(SnapshotInit))
	}
	i.resync = i.resync[:0]
}

// WithSession даёт прочитать сессию между кадрами.
func (i *Instance) WithSession(fn func(s *Session)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	fn(i.session)
}

func (i *Instance) CurrentTick() int {
	return i.session.tick
}

// ReplaySnapshot возвращает копию записи, безопасную для сохранения
// из другой горутины.
func (i *Instance) ReplaySnapshot() domain.ReplaySession {
	i.mu.Lock()
	defer i.mu.Unlock()
	rec := *i.Replay
	rec.Actions = append([]domain.ReplayAction(nil), i.Replay.Actions...)
	return rec
}
