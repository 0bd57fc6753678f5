package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/corvidae/roombot/internal/app"
	"github.com/corvidae/roombot/internal/config"
	"github.com/corvidae/roombot/internal/log"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config file")
		username   = flag.String("username", "", "override login username")
		server     = flag.String("server", "", "override server websocket URL")
		logLevel   = flag.String("log-level", "", "override log level (debug, info, warn, error)")
	)
	flag.Parse()

	logger := log.New("info")
	cfg, path, err := config.Load(logger, *configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if *username != "" {
		cfg.Username = *username
	}
	if *server != "" {
		cfg.ServerURL = *server
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	logger = log.New(cfg.LogLevel)
	logger.Info().Str("config", path).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("init failed")
	}

	logger.Info().Str("server", cfg.ServerURL).Str("username", cfg.Username).Msg("starting roombot")
	if err := application.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("bot exited")
	}
	logger.Info().Msg("bot stopped")
}
