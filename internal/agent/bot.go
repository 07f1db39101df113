// Package agent содержит автопилот: он подписывается на снимки как обычный
// клиент и играет за героя через те же команды, что шлёт браузер.
package agent

import (
	"context"
	"encoding/json"
	"math"

	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/input"
	"github.com/rcarvalhosa/flare-engine/internal/network"
	"github.com/rcarvalhosa/flare-engine/pkg/api"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/sirupsen/logrus"
)

// patienceTicks - сколько кадров бот ждёт, пока в его ход меняется
// счётчик действий, прежде чем завершить ход.
const patienceTicks = 90

// Commander принимает команды клиента. Реализуется engine.Instance.
type Commander interface {
	ProcessCommand(cmd api.ClientCommand) error
}

// Bot - автопилот героя
type Bot struct {
	Token     string
	Commander Commander
	Hub       *network.Broadcaster

	log *logrus.Entry

	// последняя отправленная команда, чтобы не забивать очередь ввода
	lastKey string
	// слежение за ходом: сколько кадров не менялось число действий
	turnActions int
	turnSince   int
}

func NewBot(token string, c Commander, hub *network.Broadcaster) *Bot {
	return &Bot{
		Token:     token,
		Commander: c,
		Hub:       hub,
		log:       logger.Component("agent").WithField("token", token),
		turnSince: -1,
	}
}

// Run читает снимки до отмены контекста или закрытия канала Hub.
func (b *Bot) Run(ctx context.Context) error {
	updates := b.Hub.Register(b.Token)
	defer b.Hub.Unregister(b.Token, updates)
	b.log.Info("Bot connected")

	b.send(api.ClientCommand{Action: domain.ActionInit.String()})
	for {
		select {
		case <-ctx.Done():
			b.log.Info("Bot stopped")
			return nil
		case state, ok := <-updates:
			if !ok {
				return nil
			}
			if cmd, ok := b.Decide(state); ok {
				b.send(cmd)
			}
		}
	}
}

// Decide выбирает команду по снимку. false - ничего не менять.
func (b *Bot) Decide(state api.ServerResponse) (api.ClientCommand, bool) {
	me, foe := findActors(state)
	if me == nil {
		return api.ClientCommand{}, false
	}

	// Мёртвый герой не ходит: воскрешаемся на старте уровня
	if me.Stats != nil && me.Stats.IsDead {
		return b.once("respawn", api.ClientCommand{Action: domain.ActionRespawn.String()})
	}

	if myTurn(state, me.ID) {
		c := state.Combat
		if c.ActionsRemaining != b.turnActions || b.turnSince < 0 {
			b.turnActions = c.ActionsRemaining
			b.turnSince = state.Tick
		}
		if foe == nil || c.ActionsRemaining <= 0 || state.Tick-b.turnSince > patienceTicks {
			b.turnSince = -1
			b.lastKey = ""
			return api.ClientCommand{Action: domain.ActionEndTurn.String()}, true
		}
	} else {
		b.turnSince = -1
	}

	if foe == nil {
		return b.input("idle", api.InputPayload{})
	}

	// Клик по врагу: вне боя герой подойдёт, в бою ударит
	return b.input("attack:"+foe.ID, api.InputPayload{
		Pressed:    []string{input.KeyMain1.String()},
		MouseX:     foe.Pos.X,
		MouseY:     foe.Pos.Y,
		UsingMouse: true,
	})
}

func (b *Bot) input(key string, p api.InputPayload) (api.ClientCommand, bool) {
	raw, err := json.Marshal(p)
	if err != nil {
		b.log.WithError(err).Error("failed to marshal input")
		return api.ClientCommand{}, false
	}
	return b.once(key, api.ClientCommand{Action: domain.ActionInput.String(), Payload: raw})
}

// once отдаёт команду, только если она отличается от предыдущей.
func (b *Bot) once(key string, cmd api.ClientCommand) (api.ClientCommand, bool) {
	if key == b.lastKey {
		return api.ClientCommand{}, false
	}
	b.lastKey = key
	return cmd, true
}

func (b *Bot) send(cmd api.ClientCommand) {
	cmd.Token = b.Token
	if err := b.Commander.ProcessCommand(cmd); err != nil {
		b.log.WithError(err).WithField("action", cmd.Action).Warn("Command rejected")
	}
}

// findActors ищет героя и ближайшего к нему живого врага.
func findActors(state api.ServerResponse) (me, foe *api.EntityView) {
	for i := range state.Entities {
		if state.Entities[i].ID == state.MyEntityID {
			me = &state.Entities[i]
		}
	}
	if me == nil {
		return nil, nil
	}

	best := math.MaxFloat64
	for i := range state.Entities {
		ev := &state.Entities[i]
		if ev.Type != enums.EntityTypeEnemy.String() || ev.Corpse {
			continue
		}
		if ev.Stats != nil && ev.Stats.IsDead {
			continue
		}
		d := math.Hypot(ev.Pos.X-me.Pos.X, ev.Pos.Y-me.Pos.Y)
		if d < best {
			best = d
			foe = ev
		}
	}
	return me, foe
}

func myTurn(state api.ServerResponse, id string) bool {
	c := state.Combat
	return c != nil && c.State == enums.CombatActive.String() && c.ActiveEntityID == id
}
