package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rcarvalhosa/flare-engine/internal/agent"
	"github.com/rcarvalhosa/flare-engine/internal/config"
	"github.com/rcarvalhosa/flare-engine/internal/content"
	"github.com/rcarvalhosa/flare-engine/internal/engine"
	"github.com/rcarvalhosa/flare-engine/internal/infrastructure/storage"
	"github.com/rcarvalhosa/flare-engine/internal/network"
	"github.com/rcarvalhosa/flare-engine/internal/server"
	"github.com/rcarvalhosa/flare-engine/internal/version"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid configuration")
	}

	// Флаги перекрывают окружение
	var seed int64
	var replayPath string
	var tail int
	var autopilot bool
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 keeps FLARE_SEED or a random one)")
	flag.StringVar(&replayPath, "replay", "", "Path to a "+storage.Extension+" replay file to simulate")
	flag.IntVar(&tail, "tail", 0, "Frames to simulate after the last recorded command")
	flag.StringVar(&cfg.Port, "port", cfg.Port, "HTTP port")
	flag.BoolVar(&autopilot, "bot", false, "Let the autopilot play the hero")
	flag.Parse()
	if seed != 0 {
		cfg.Seed = seed
	}

	logger.Log.Info("Starting Flare engine...")
	logger.Log.Info(version.String())

	c, err := loadContent(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load content")
	}

	replays, err := storage.NewReplayService(cfg.ReplayDir)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to prepare replay storage")
	}

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("Mode: Replay Simulation")
		rec, err := replays.Load(replayPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to load replay")
		}
		engine.Playback(cfg, c, *rec, tail)
		return
	}

	logger.Log.WithField("seed", cfg.Seed).Info("Using master seed")

	hub := network.NewBroadcaster()
	instance := engine.NewInstance(engine.NewSandbox(cfg, c), hub)
	srv := server.New(instance, cfg.Port)

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return instance.Run(ctx) })
	g.Go(func() error { return srv.Run(ctx) })
	if autopilot {
		bot := agent.NewBot("autopilot", instance, hub)
		g.Go(func() error { return bot.Run(ctx) })
	}

	if err := g.Wait(); err != nil {
		logger.Log.WithError(err).Error("Server stopped with error")
	}
	logger.Log.Info("Shutting down...")

	rec := instance.ReplaySnapshot()
	if path, err := replays.Save(&rec); err != nil {
		logger.Log.WithError(err).Error("Failed to save replay")
	} else {
		logger.Log.WithFields(logrus.Fields{"path": path, "actions": len(rec.Actions)}).Info("Replay written")
	}

	logger.Log.Info("Done.")
}

func loadContent(cfg config.Config) (*content.Content, error) {
	if cfg.ContentFile == "" {
		return content.LoadDefault(cfg.FPS)
	}
	return content.LoadFile(cfg.ContentFile, cfg.FPS)
}
