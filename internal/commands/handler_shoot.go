package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-wumpus/internal/game"
)

// ShootHandlerFactory creates the handler that fires one arrow into an
// adjacent room, killing the wumpus and every other player in it.
type ShootHandlerFactory struct {
	world *game.WorldState
}

func NewShootHandlerFactory(world *game.WorldState) *ShootHandlerFactory {
	return &ShootHandlerFactory{world: world}
}

func (f *ShootHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, t *Turn) error {
		if t.Player.Arrows() == 0 {
			return NewUserError(MsgNoArrows)
		}

		from, err := f.world.CurrentRoom(t.Player)
		if err != nil {
			return fmt.Errorf("locating player: %w", err)
		}
		target, ok := f.world.Cave().Neighbor(from.Id(), t.Room)
		if !ok {
			return NewUserError(MsgInvalidRoom)
		}

		if !t.Player.SpendArrow() {
			return NewUserError(MsgNoArrows)
		}
		target.LaunchArrow()
		defer target.LandArrow()

		lines := []string{MsgShotsFired}

		if f.world.Wumpus().Kill(target.Id()) {
			target.AddLoot(WumpusGold, WumpusArrows)
			lines = append(lines, MsgKilledWumpus)
			slog.InfoContext(ctx, "wumpus killed", "charId", t.Player.CharId, "room", target.Id())
		}

		for _, victim := range target.Occupants() {
			if victim == t.Player.CharId {
				continue
			}
			if f.world.KillPlayer(victim, MsgShotByPlayer) {
				slog.InfoContext(ctx, "player shot", "charId", t.Player.CharId, "victim", victim, "room", target.Id())
			}
		}

		return t.Out.SendNotifications(lines)
	}, nil
}
