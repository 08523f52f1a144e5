package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goccy/go-json"
)

// WorldState is the single source of truth for all mutable game state.
// All access must go through its methods to ensure thread-safety.
type WorldState struct {
	cave   *Cave
	wumpus *Wumpus
	dice   Dice
	bus    Bus

	mu      sync.RWMutex
	players map[string]*PlayerState
}

// NewWorldState wires a cave and its wumpus to a notice bus. A nil bus means
// notices go straight into mailboxes.
func NewWorldState(cave *Cave, wumpus *Wumpus, dice Dice, bus Bus) *WorldState {
	return &WorldState{
		cave:    cave,
		wumpus:  wumpus,
		dice:    dice,
		bus:     bus,
		players: make(map[string]*PlayerState),
	}
}

func (w *WorldState) Cave() *Cave {
	return w.cave
}

func (w *WorldState) Wumpus() *Wumpus {
	return w.wumpus
}

func (w *WorldState) Dice() Dice {
	return w.dice
}

// GetPlayer returns the player state. Returns nil if player not found.
func (w *WorldState) GetPlayer(charId string) *PlayerState {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.players[charId]
}

// PlayerCount returns the number of registered players.
func (w *WorldState) PlayerCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.players)
}

// ForEachPlayer calls fn for each player in the world while holding the lock.
func (w *WorldState) ForEachPlayer(fn func(string, *PlayerState)) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for id, ps := range w.players {
		fn(id, ps)
	}
}

// AddPlayer registers a new player and places them in a uniformly random room.
func (w *WorldState) AddPlayer(charId string) (*PlayerState, error) {
	return w.AddPlayerAt(charId, w.dice.IntN(w.cave.Size()))
}

// AddPlayerAt registers a new player in the given room.
func (w *WorldState) AddPlayerAt(charId string, roomId int) (*PlayerState, error) {
	room, ok := w.cave.Room(roomId)
	if !ok {
		return nil, fmt.Errorf("placing player %s: %w", charId, ErrRoomNotFound)
	}

	w.mu.Lock()
	if _, exists := w.players[charId]; exists {
		w.mu.Unlock()
		return nil, ErrPlayerExists
	}
	ps := newPlayerState(charId)
	w.players[charId] = ps
	w.mu.Unlock()

	if w.bus != nil {
		if err := w.subscribe(ps); err != nil {
			// Notices will still reach the mailbox directly.
			slog.Warn("subscribing player mailbox", "charId", charId, "error", err)
		}
	}

	room.Enter(charId)
	ps.setLocation(roomId)

	return ps, nil
}

func (w *WorldState) subscribe(ps *PlayerState) error {
	unsub, err := w.bus.Subscribe(PlayerSubject(ps.CharId), func(data []byte) {
		var n Notice
		if err := json.Unmarshal(data, &n); err != nil {
			slog.Warn("discarding malformed notice", "charId", ps.CharId, "error", err)
			return
		}
		ps.mailbox.Post(n)
	})
	if err != nil {
		return fmt.Errorf("subscribing to '%s': %w", PlayerSubject(ps.CharId), err)
	}
	ps.setUnsubscribe(unsub)
	return nil
}

// RemovePlayer takes a player out of the world. Anything they were carrying
// is left in their room unless they escaped with it.
func (w *WorldState) RemovePlayer(charId string) error {
	w.mu.Lock()
	ps, exists := w.players[charId]
	if !exists {
		w.mu.Unlock()
		return ErrPlayerNotFound
	}
	delete(w.players, charId)
	w.mu.Unlock()

	ps.unsubscribe()

	roomId, placed := ps.Location()
	if !placed {
		return nil
	}
	room, ok := w.cave.Room(roomId)
	if !ok {
		return nil
	}
	if ps.Status() != StatusEscaped {
		room.AddLoot(ps.DropLoot())
	}
	room.Leave(charId)

	return nil
}

// MovePlayer moves a player out of their current room and into room toId.
func (w *WorldState) MovePlayer(ps *PlayerState, toId int) (*Room, error) {
	to, ok := w.cave.Room(toId)
	if !ok {
		return nil, fmt.Errorf("moving player %s to %d: %w", ps.CharId, toId, ErrRoomNotFound)
	}

	if fromId, placed := ps.Location(); placed {
		if from, ok := w.cave.Room(fromId); ok {
			from.Leave(ps.CharId)
		}
	}
	to.Enter(ps.CharId)
	ps.setLocation(toId)

	return to, nil
}

// CurrentRoom returns the room a player stands in.
func (w *WorldState) CurrentRoom(ps *PlayerState) (*Room, error) {
	id, placed := ps.Location()
	if !placed {
		return nil, fmt.Errorf("player %s has not been placed: %w", ps.CharId, ErrRoomNotFound)
	}
	room, ok := w.cave.Room(id)
	if !ok {
		return nil, fmt.Errorf("player %s in room %d: %w", ps.CharId, id, ErrRoomNotFound)
	}
	return room, nil
}

// Notify delivers a notice to a player's mailbox, over the bus when the
// player is subscribed to it.
func (w *WorldState) Notify(charId string, n Notice) error {
	ps := w.GetPlayer(charId)
	if ps == nil {
		return ErrPlayerNotFound
	}

	if w.bus != nil && ps.subscribed() {
		data, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("encoding notice: %w", err)
		}
		err = w.bus.Publish(PlayerSubject(charId), data)
		if err == nil {
			return nil
		}
		slog.Warn("publishing notice, delivering directly", "charId", charId, "error", err)
	}

	ps.mailbox.Post(n)
	return nil
}

// KillPlayer kills another player from outside their session: the victim is
// marked dead, taken out of their room and sent a fatal notice. Returns false
// if the victim was already gone or no longer alive.
func (w *WorldState) KillPlayer(charId string, lines ...string) bool {
	ps := w.GetPlayer(charId)
	if ps == nil || !ps.Kill() {
		return false
	}

	if room, err := w.CurrentRoom(ps); err == nil {
		room.Leave(charId)
	}

	if err := w.Notify(charId, Notice{Lines: lines, Fatal: true}); err != nil {
		slog.Warn("notifying killed player", "charId", charId, "error", err)
	}
	return true
}

// Tick logs a snapshot of the cave for operators.
func (w *WorldState) Tick(ctx context.Context) error {
	room, alive := w.wumpus.Room()

	gold := 0
	for id := 0; id < w.cave.Size(); id++ {
		r, _ := w.cave.Room(id)
		g, _ := r.Loot()
		gold += g
	}

	slog.InfoContext(ctx, "cave status",
		"players", w.PlayerCount(),
		"wumpus_alive", alive,
		"gold_on_floor", gold,
	)
	slog.DebugContext(ctx, "wumpus position", "room", room)
	return nil
}
