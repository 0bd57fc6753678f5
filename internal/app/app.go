package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/corvidae/roombot/internal/client"
	"github.com/corvidae/roombot/internal/command"
	"github.com/corvidae/roombot/internal/config"
	"github.com/corvidae/roombot/internal/core"
)

// App wires the user directory, room registry, command engine, and
// transport together.
type App struct {
	cfg      config.Config
	log      *zerolog.Logger
	client   *client.Client
	registry *core.Registry
	dir      *core.Directory
}

// New constructs the application with the provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	if cfg.ServerURL == "" {
		return nil, errors.New("server_url is required")
	}
	if cfg.Username == "" {
		return nil, errors.New("username is required")
	}

	dir := core.NewDirectory()
	cl := client.New(cfg, logger, dir)
	engine := command.NewEngine(cfg.CommandCharacter, cl, logger)
	registry := core.NewRegistry(dir, cl, engine, *logger)
	cl.AttachRegistry(registry)

	return &App{
		cfg:      cfg,
		log:      logger,
		client:   cl,
		registry: registry,
		dir:      dir,
	}, nil
}

// Run keeps the connection alive until the context is cancelled, redialing
// after transport failures. Room state is discarded between connections;
// the server resends it on reinit.
func (a *App) Run(ctx context.Context) error {
	for {
		err := a.client.Run(ctx)
		a.registry.Clear()

		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			a.log.Error().Err(err).Msg("connection lost")
		}

		a.log.Info().Dur("delay", a.cfg.ReconnectDelay).Msg("reconnecting")
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(a.cfg.ReconnectDelay):
		}
	}
}
