package engine

import (
	"github.com/rcarvalhosa/flare-engine/internal/config"
	"github.com/rcarvalhosa/flare-engine/internal/content"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Playback прогоняет запись без сети и без таймера: та же сессия из того же
// сида, те же команды на тех же кадрах. После последней команды симуляция
// идёт ещё tail кадров.
func Playback(cfg config.Config, c *content.Content, rec domain.ReplaySession, tail int) *Session {
	cfg.Seed = rec.Seed
	if rec.FPS > 0 {
		cfg.FPS = rec.FPS
	}
	s := NewSandbox(cfg, c)
	table := registerHandlers()

	replayLog := logger.Log.WithFields(logrus.Fields{
		"component": "replay",
		"seed":      rec.Seed,
		"actions":   len(rec.Actions),
	})
	replayLog.Info("Replay started")

	last := 0
	if n := len(rec.Actions); n > 0 {
		last = rec.Actions[n-1].Tick
	}

	next := 0
	for s.tick <= last+tail {
		for next < len(rec.Actions) && rec.Actions[next].Tick <= s.tick {
			a := rec.Actions[next]
			if _, err := execute(s, table, domain.InternalCommand{Action: a.Action, Payload: a.Payload}); err != nil {
				replayLog.WithError(err).WithField("tick", a.Tick).Warn("Recorded command rejected")
			}
			next++
		}
		s.Tick()
		s.TakeLogs()
		s.TakeSounds()
	}

	replayLog.WithFields(logrus.Fields{
		"ticks":     s.tick,
		"game_over": s.gameOver,
		"hero_pos":  s.hero.Stats.Pos,
	}).Info("Replay finished")
	return s
}
