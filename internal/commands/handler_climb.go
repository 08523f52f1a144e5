package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-wumpus/internal/display"
	"github.com/pixil98/go-wumpus/internal/game"
)

// ClimbHandlerFactory creates the handler that lets a player escape up the
// ladder with whatever gold they hold.
type ClimbHandlerFactory struct {
	world *game.WorldState
}

func NewClimbHandlerFactory(world *game.WorldState) *ClimbHandlerFactory {
	return &ClimbHandlerFactory{world: world}
}

func (f *ClimbHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, t *Turn) error {
		room, err := f.world.CurrentRoom(t.Player)
		if err != nil {
			return fmt.Errorf("locating player: %w", err)
		}

		if !room.HasLadder() {
			return NewUserError(MsgNoLadder)
		}

		t.End()
		if !t.Player.Escape() {
			// Shot on the way up.
			return nil
		}
		room.Leave(t.Player.CharId)

		gold := t.Player.Gold()
		slog.InfoContext(ctx, "player escaped", "charId", t.Player.CharId, "gold", gold)

		summary, err := display.EscapeSummary(gold)
		if err != nil {
			return fmt.Errorf("rendering escape summary: %w", err)
		}
		return t.Out.SendNotifications(summary)
	}, nil
}
