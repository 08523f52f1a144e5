package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-wumpus/internal/game"
)

// MoveHandlerFactory creates the handler that walks a player through a tunnel
// and resolves whatever is waiting on the other side.
type MoveHandlerFactory struct {
	world *game.WorldState
}

func NewMoveHandlerFactory(world *game.WorldState) *MoveHandlerFactory {
	return &MoveHandlerFactory{world: world}
}

func (f *MoveHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, t *Turn) error {
		from, err := f.world.CurrentRoom(t.Player)
		if err != nil {
			return fmt.Errorf("locating player: %w", err)
		}

		if _, ok := f.world.Cave().Neighbor(from.Id(), t.Room); !ok {
			return NewUserError(MsgCantMove)
		}

		// The wumpus wanders after every move that happens, fatal or not.
		defer f.world.Wumpus().Relocate()

		to, err := f.world.MovePlayer(t.Player, t.Room)
		if err != nil {
			return fmt.Errorf("moving player: %w", err)
		}
		if err := t.Out.SendSenses(f.world.Cave().Sense(to.Id())); err != nil {
			return err
		}

		return f.resolveHazards(t, to)
	}, nil
}

// resolveHazards applies the pit, then bats, then the wumpus, to a player who
// has just entered room.
func (f *MoveHandlerFactory) resolveHazards(t *Turn, room *game.Room) error {
	if room.HasPit() {
		room.Leave(t.Player.CharId)
		t.Player.Kill()
		t.End()
		return t.Out.SendNotifications([]string{MsgPitDeath})
	}

	if room.HasBats() {
		dest := f.world.Dice().IntN(f.world.Cave().Size())
		var err error
		room, err = f.world.MovePlayer(t.Player, dest)
		if err != nil {
			return fmt.Errorf("carrying player off: %w", err)
		}
		if err := t.Out.SendNotifications([]string{MsgBats}); err != nil {
			return err
		}
		if err := t.Out.SendSenses(f.world.Cave().Sense(room.Id())); err != nil {
			return err
		}
	}

	if room.HasWumpus() {
		room.AddLoot(t.Player.DropLoot())
		room.Leave(t.Player.CharId)
		t.Player.Kill()
		t.End()
		return t.Out.SendNotifications([]string{MsgWumpusDeath})
	}

	return nil
}
