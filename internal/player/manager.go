package player

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-wumpus/internal/commands"
	"github.com/pixil98/go-wumpus/internal/display"
	"github.com/pixil98/go-wumpus/internal/game"
)

type PlayerManager struct {
	world      *game.WorldState
	cmdHandler *commands.Handler
	clientOpts []ClientOpt
	busReady   <-chan struct{}

	sessions sync.WaitGroup
}

type PlayerManagerOpt func(*PlayerManager)

// WithWrapWidth sets the column player output is wrapped at.
func WithWrapWidth(width int) PlayerManagerOpt {
	return func(m *PlayerManager) {
		m.clientOpts = append(m.clientOpts, WithWidth(width))
	}
}

// WithBusReady holds new players at the banner until ready is closed, so
// their mailbox can subscribe to the notice bus.
func WithBusReady(ready <-chan struct{}) PlayerManagerOpt {
	return func(m *PlayerManager) {
		m.busReady = ready
	}
}

func NewPlayerManager(world *game.WorldState, cmd *commands.Handler, opts ...PlayerManagerOpt) *PlayerManager {
	m := &PlayerManager{
		world:      world,
		cmdHandler: cmd,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start blocks until ctx is done and every running session has returned.
func (m *PlayerManager) Start(ctx context.Context) error {
	<-ctx.Done()
	m.sessions.Wait()
	return nil
}

// RunSession plays one connection from welcome banner to departure. The
// player is placed in a random room and removed again when the session ends,
// leaving behind anything they carried unless they escaped with it.
func (m *PlayerManager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	m.sessions.Add(1)
	defer m.sessions.Done()

	client := NewClient(conn, m.clientOpts...)
	defer client.Close()

	banner, err := display.Banner(commands.Usage())
	if err != nil {
		return fmt.Errorf("rendering banner: %w", err)
	}
	if err := client.SendNotifications(banner); err != nil {
		return fmt.Errorf("sending banner: %w", err)
	}

	if m.busReady != nil {
		select {
		case <-m.busReady:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	charId := uuid.NewString()
	ps, err := m.world.AddPlayer(charId)
	if err != nil {
		return fmt.Errorf("adding player: %w", err)
	}
	defer func() {
		if err := m.world.RemovePlayer(charId); err != nil {
			slog.WarnContext(ctx, "removing player", "charId", charId, "error", err)
		}
	}()

	room, _ := ps.Location()
	slog.InfoContext(ctx, "player entered the cave", "charId", charId, "room", room)

	if err := client.SendSenses(m.world.Cave().Sense(room)); err != nil {
		return fmt.Errorf("sending senses: %w", err)
	}

	p := &Player{
		client:     client,
		state:      ps,
		cmdHandler: m.cmdHandler,
	}
	err = p.Play(ctx)

	slog.InfoContext(ctx, "player left the cave", "charId", charId, "status", ps.Status(), "gold", ps.Gold())
	return err
}
