package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-wumpus/internal/commands"
	"github.com/pixil98/go-wumpus/internal/game"
)

type Player struct {
	client     *Client
	state      *game.PlayerState
	cmdHandler *commands.Handler
}

// Id returns the player's session id.
func (p *Player) Id() string {
	return p.state.CharId
}

// Play runs the session until the player dies, escapes, quits or hangs up.
// Notices from other sessions and the player's own commands are handled in
// the order they become ready; notices already queued when a command arrives
// are shown first.
func (p *Player) Play(ctx context.Context) error {
	mailbox := p.state.Mailbox()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-mailbox.Ready():
			over, err := p.deliverNotices()
			if over || err != nil {
				return err
			}

		case line, ok := <-p.client.Lines():
			if !ok {
				// Connection lost. The caller releases the room.
				return p.client.Err()
			}

			over, err := p.deliverNotices()
			if over || err != nil {
				return err
			}

			if !p.state.Alive() {
				// Killed elsewhere; the fatal notice is on its way.
				continue
			}

			ended, err := p.cmdHandler.Exec(ctx, p.state, p.client, line)
			if err != nil {
				var userErr *commands.UserError
				if !errors.As(err, &userErr) {
					return fmt.Errorf("command execution failed: %w", err)
				}
				if err := p.client.SendNotifications([]string{userErr.Message}); err != nil {
					return err
				}
			}

			if ended {
				return p.finish()
			}
		}
	}
}

// deliverNotices writes every queued notice to the client. It reports whether
// one of them ended the session.
func (p *Player) deliverNotices() (bool, error) {
	fatal := false
	for _, n := range p.state.Mailbox().Drain() {
		if err := p.client.SendNotifications(n.Lines); err != nil {
			return true, err
		}
		fatal = fatal || n.Fatal
	}

	if !fatal {
		return false, nil
	}
	slog.Info("player killed", "charId", p.Id())
	return true, p.client.Died()
}

// finish wraps up a session whose last command ended it.
func (p *Player) finish() error {
	if over, err := p.deliverNotices(); over || err != nil {
		return err
	}
	if p.state.Status() == game.StatusDead {
		return p.client.Died()
	}
	return nil
}
