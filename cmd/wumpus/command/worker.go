package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pixil98/go-service"
	"github.com/pixil98/go-wumpus/internal/commands"
	"github.com/pixil98/go-wumpus/internal/driver"
	"github.com/pixil98/go-wumpus/internal/game"
	"github.com/pixil98/go-wumpus/internal/listener"
	"github.com/pixil98/go-wumpus/internal/player"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	if err := cfg.Log.setup(); err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	workers := service.WorkerList{}
	var pmOpts []player.PlayerManagerOpt
	if cfg.WrapWidth > 0 {
		pmOpts = append(pmOpts, player.WithWrapWidth(cfg.WrapWidth))
	}

	// Notices travel over embedded NATS when enabled, in-process otherwise.
	var bus game.Bus = game.NewLocalBus()
	if cfg.Nats.Enabled {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		workers["nats"] = ns
		bus = ns
		pmOpts = append(pmOpts, player.WithBusReady(ns.Ready()))
	}

	world, err := cfg.Cave.buildWorld(bus)
	if err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}
	ladder := world.Cave().RoomsWhere((*game.Room).HasLadder)
	slog.Info("cave ready", "rooms", world.Cave().Size(), "ladder", ladder)

	cmdHandler, err := commands.NewHandler(world)
	if err != nil {
		return nil, fmt.Errorf("creating command handler: %w", err)
	}

	pm := player.NewPlayerManager(world, cmdHandler, pmOpts...)
	cm := listener.NewConnectionManager(pm)

	// Create Listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = w
	}

	// Registration happens once, before any player can connect.
	registrar, err := cfg.Registry.buildRegistrar()
	if err != nil {
		return nil, fmt.Errorf("creating registrar: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Registry.timeout())
	defer cancel()
	err = registrar.Register(ctx, cfg.endpoint())
	if c, ok := registrar.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil {
			slog.Warn("closing registrar", "error", cerr)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("registering with cave system: %w", err)
	}
	slog.Info("registered with cave system", "endpoint", cfg.endpoint())

	workers["driver"] = driver.NewDriver([]driver.Ticker{world}, driver.WithTickLength(cfg.statusInterval()))
	workers["player_manager"] = pm
	workers["listeners"] = &listeners

	return workers, nil
}
