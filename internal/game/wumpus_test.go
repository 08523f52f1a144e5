package game

import (
	"sync"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestNewWumpus(t *testing.T) {
	c := newTestCave(t, Layout{Ladder: 0, Wumpus: 10})

	w, err := NewWumpus(c, NewDice(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	room, alive := w.Room()
	testutil.AssertEqual(t, "room", room, 10)
	testutil.AssertEqual(t, "alive", alive, true)

	r, _ := c.Room(10)
	r.setWumpus(false)
	_, err = NewWumpus(c, NewDice(1))
	testutil.AssertErrorContains(t, err, "no wumpus")

	r.setWumpus(true)
	r2, _ := c.Room(3)
	r2.setWumpus(true)
	_, err = NewWumpus(c, NewDice(1))
	testutil.AssertErrorContains(t, err, "2 wumpus rooms")
}

func TestWumpus_Relocate(t *testing.T) {
	dice := &scriptedDice{vals: []int{0, 5}}
	c := newTestCave(t, Layout{Ladder: 0, Wumpus: 10})
	w, err := NewWumpus(c, dice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Neighbors of 10 are 7, 8, 9, 11, 12 and 13.
	testutil.AssertEqual(t, "first move", w.Relocate(), 7)
	testutil.AssertEqual(t, "flagged rooms", len(c.RoomsWhere((*Room).HasWumpus)), 1)
	r, _ := c.Room(7)
	testutil.AssertEqual(t, "flag moved", r.HasWumpus(), true)

	// Neighbors of 7 are 4, 5, 6, 8, 9 and 10.
	testutil.AssertEqual(t, "second move", w.Relocate(), 10)
	testutil.AssertEqual(t, "flag left", r.HasWumpus(), false)
}

func TestWumpus_KillAndRespawn(t *testing.T) {
	dice := &scriptedDice{vals: []int{3}}
	c := newTestCave(t, Layout{Ladder: 0, Wumpus: 10})
	w, _ := NewWumpus(c, dice)

	testutil.AssertEqual(t, "wrong room", w.Kill(9), false)
	testutil.AssertEqual(t, "kill", w.Kill(10), true)
	testutil.AssertEqual(t, "kill again", w.Kill(10), false)
	testutil.AssertEqual(t, "flagged rooms", len(c.RoomsWhere((*Room).HasWumpus)), 0)

	room, alive := w.Room()
	testutil.AssertEqual(t, "dead room", room, 10)
	testutil.AssertEqual(t, "alive", alive, false)

	testutil.AssertEqual(t, "respawn", w.Relocate(), 11)
	_, alive = w.Room()
	testutil.AssertEqual(t, "alive again", alive, true)
	testutil.AssertEqual(t, "flagged after respawn", len(c.RoomsWhere((*Room).HasWumpus)), 1)
}

func TestWumpus_ConcurrentRelocate(t *testing.T) {
	c := newTestCave(t, Layout{Ladder: 0, Wumpus: 10})
	w, _ := NewWumpus(c, NewDice(99))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				w.Relocate()
			}
		}()
	}
	wg.Wait()

	flagged := c.RoomsWhere((*Room).HasWumpus)
	testutil.AssertEqual(t, "flagged rooms", len(flagged), 1)
	room, _ := w.Room()
	testutil.AssertEqual(t, "controller agrees", flagged[0], room)
}
