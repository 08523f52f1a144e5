package commands

import (
	"sync"
	"testing"

	"github.com/pixil98/go-wumpus/internal/game"
)

// scriptedDice returns the scripted values in order, each reduced mod n, and
// 0 once the script runs out.
type scriptedDice struct {
	mu   sync.Mutex
	vals []int
}

func (d *scriptedDice) IntN(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.vals) == 0 {
		return 0
	}
	v := d.vals[0]
	d.vals = d.vals[1:]
	return v % n
}

// recordingResponder keeps everything a turn sends.
type recordingResponder struct {
	notifications []string
	senses        [][]string
}

func (r *recordingResponder) SendNotifications(lines []string) error {
	r.notifications = append(r.notifications, lines...)
	return nil
}

func (r *recordingResponder) SendSenses(lines []string) error {
	r.senses = append(r.senses, lines)
	return nil
}

func newTestWorld(t *testing.T, l game.Layout, dice game.Dice) *game.WorldState {
	t.Helper()
	if l.Size == 0 {
		l.Size = game.DefaultCaveSize
	}
	if l.Offsets == nil {
		l.Offsets = game.DefaultOffsets
	}
	cave, err := game.NewCave(l)
	if err != nil {
		t.Fatalf("building cave: %v", err)
	}
	if dice == nil {
		dice = &scriptedDice{}
	}
	w, err := game.NewWumpus(cave, dice)
	if err != nil {
		t.Fatalf("creating wumpus: %v", err)
	}
	return game.NewWorldState(cave, w, dice, game.NewLocalBus())
}

func newTestHandler(t *testing.T, world *game.WorldState) *Handler {
	t.Helper()
	h, err := NewHandler(world)
	if err != nil {
		t.Fatalf("creating handler: %v", err)
	}
	return h
}

func addTestPlayer(t *testing.T, world *game.WorldState, charId string, room int) *game.PlayerState {
	t.Helper()
	ps, err := world.AddPlayerAt(charId, room)
	if err != nil {
		t.Fatalf("adding player %s: %v", charId, err)
	}
	return ps
}

func wumpusRooms(world *game.WorldState) []int {
	return world.Cave().RoomsWhere((*game.Room).HasWumpus)
}
