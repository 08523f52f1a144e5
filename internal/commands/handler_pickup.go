package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-wumpus/internal/game"
)

// PickupHandlerFactory creates the handler that takes everything lying in
// the player's room.
type PickupHandlerFactory struct {
	world *game.WorldState
}

func NewPickupHandlerFactory(world *game.WorldState) *PickupHandlerFactory {
	return &PickupHandlerFactory{world: world}
}

func (f *PickupHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, t *Turn) error {
		room, err := f.world.CurrentRoom(t.Player)
		if err != nil {
			return fmt.Errorf("locating player: %w", err)
		}

		gold, arrows := room.TakeLoot()
		t.Player.AddLoot(gold, arrows)

		var lines []string
		if gold > 0 {
			lines = append(lines, fmt.Sprintf(MsgFoundGold, gold))
		}
		if arrows > 0 {
			lines = append(lines, fmt.Sprintf(MsgFoundArrows, arrows))
		}
		if len(lines) == 0 {
			lines = append(lines, MsgNothingHere)
		}

		return t.Out.SendNotifications(lines)
	}, nil
}
