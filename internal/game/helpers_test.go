package game

import (
	"sync"
	"testing"
)

// scriptedDice returns the scripted values in order, each reduced mod n.
// Once the script runs out it returns 0.
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

func newTestCave(t *testing.T, l Layout) *Cave {
	t.Helper()
	if l.Size == 0 {
		l.Size = DefaultCaveSize
	}
	if l.Offsets == nil {
		l.Offsets = DefaultOffsets
	}
	c, err := NewCave(l)
	if err != nil {
		t.Fatalf("building cave: %v", err)
	}
	return c
}

func newTestWorld(t *testing.T, l Layout, dice Dice, bus Bus) *WorldState {
	t.Helper()
	c := newTestCave(t, l)
	w, err := NewWumpus(c, dice)
	if err != nil {
		t.Fatalf("creating wumpus: %v", err)
	}
	return NewWorldState(c, w, dice, bus)
}
