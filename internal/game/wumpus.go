package game

import (
	"fmt"
	"sync"
)

// Wumpus owns the single shared wumpus location. The room flags are the
// ground truth; the controller only ever changes them under its own lock.
type Wumpus struct {
	mu    sync.Mutex
	cave  *Cave
	dice  Dice
	room  int
	alive bool
}

// NewWumpus takes control of the wumpus flagged in cave. Exactly one room
// must carry the flag.
func NewWumpus(cave *Cave, dice Dice) (*Wumpus, error) {
	ids := cave.RoomsWhere((*Room).HasWumpus)
	switch len(ids) {
	case 0:
		return nil, ErrNoWumpus
	case 1:
	default:
		return nil, fmt.Errorf("cave has %d wumpus rooms, expected 1", len(ids))
	}

	return &Wumpus{
		cave:  cave,
		dice:  dice,
		room:  ids[0],
		alive: true,
	}, nil
}

// Room returns the wumpus's room and whether it is alive. A dead wumpus
// reports the room it died in.
func (w *Wumpus) Room() (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.room, w.alive
}

// Relocate moves the wumpus to a uniformly chosen neighbor of the room it is
// in now. A dead wumpus comes back to life in a neighbor of the room where it
// was killed.
func (w *Wumpus) Relocate() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	from, ok := w.cave.Room(w.room)
	if !ok {
		return w.room
	}
	candidates := from.Neighbors()
	if len(candidates) == 0 {
		if !w.alive {
			from.setWumpus(true)
			w.alive = true
		}
		return w.room
	}

	to, _ := w.cave.Room(candidates[w.dice.IntN(len(candidates))])
	if w.alive {
		w.cave.swapWumpus(from, to)
	} else {
		to.setWumpus(true)
		w.alive = true
	}
	w.room = to.id

	return w.room
}

// Kill slays the wumpus if it is alive and in room id.
func (w *Wumpus) Kill(id int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.alive || w.room != id {
		return false
	}
	r, ok := w.cave.Room(id)
	if !ok {
		return false
	}
	r.setWumpus(false)
	w.alive = false

	return true
}
