package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-wumpus/internal/game"
)

// QuitHandlerFactory creates handlers that drop everything and leave.
type QuitHandlerFactory struct {
	world *game.WorldState
}

func NewQuitHandlerFactory(world *game.WorldState) *QuitHandlerFactory {
	return &QuitHandlerFactory{world: world}
}

func (f *QuitHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, t *Turn) error {
		room, err := f.world.CurrentRoom(t.Player)
		if err != nil {
			return fmt.Errorf("locating player: %w", err)
		}

		room.AddLoot(t.Player.DropLoot())
		t.Player.Quit()
		t.End()
		return nil
	}, nil
}
