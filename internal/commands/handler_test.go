package commands

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pixil98/go-testutil"
	"github.com/pixil98/go-wumpus/internal/game"
)

// worldLayout is a 20 room cave with the ladder in 15 and the wumpus in 10.
// Room 0 is adjacent to 1, 2, 3, 17, 18 and 19.
func worldLayout() game.Layout {
	return game.Layout{Ladder: 15, Wumpus: 10}
}

func TestHandler_Exec(t *testing.T) {
	tests := map[string]struct {
		line     string
		expErr   string
		expEnded bool
	}{
		"unknown command": {line: "dance", expErr: MsgInvalidCommand},
		"blank line":      {line: "   ", expErr: MsgInvalidCommand},
		"pickup":          {line: "pickup"},
		"quit":            {line: "quit", expEnded: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			world := newTestWorld(t, worldLayout(), nil)
			h := newTestHandler(t, world)
			ps := addTestPlayer(t, world, "alice", 0)

			ended, err := h.Exec(context.Background(), ps, &recordingResponder{}, tt.line)
			testutil.AssertEqual(t, "ended", ended, tt.expEnded)
			if tt.expErr != "" {
				var userErr *UserError
				if !errors.As(err, &userErr) {
					t.Fatalf("expected *UserError, got %v", err)
				}
				testutil.AssertEqual(t, "message", userErr.Message, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestMove(t *testing.T) {
	tests := map[string]struct {
		layout      game.Layout
		dice        []int
		gold        int
		target      int
		expErr      string
		expRoom     int
		expStatus   game.Status
		expEnded    bool
		expNotes    []string
		expSenses   int
		expWumpus   int
		expRoomGold int
	}{
		"not adjacent": {
			layout:    worldLayout(),
			target:    5,
			expErr:    MsgCantMove,
			expRoom:   0,
			expWumpus: 10,
		},
		"self is not adjacent": {
			layout:    worldLayout(),
			target:    0,
			expErr:    MsgCantMove,
			expRoom:   0,
			expWumpus: 10,
		},
		"safe move": {
			layout:    worldLayout(),
			target:    1,
			expRoom:   1,
			expSenses: 1,
			expWumpus: 7,
		},
		"backwards through a tunnel": {
			layout:    worldLayout(),
			target:    18,
			expRoom:   18,
			expSenses: 1,
			expWumpus: 7,
		},
		"pit": {
			layout:    game.Layout{Ladder: 15, Wumpus: 10, Pits: []int{1}},
			target:    1,
			expRoom:   1,
			expStatus: game.StatusDead,
			expEnded:  true,
			expNotes:  []string{MsgPitDeath},
			expSenses: 1,
			expWumpus: 7,
		},
		"pit wins over bats": {
			layout:    game.Layout{Ladder: 15, Wumpus: 10, Pits: []int{1}, Bats: []int{1}},
			dice:      []int{5},
			target:    1,
			expRoom:   1,
			expStatus: game.StatusDead,
			expEnded:  true,
			expNotes:  []string{MsgPitDeath},
			expSenses: 1,
			expWumpus: 13,
		},
		"bats": {
			layout:    game.Layout{Ladder: 15, Wumpus: 10, Bats: []int{1}},
			dice:      []int{15},
			target:    1,
			expRoom:   15,
			expNotes:  []string{MsgBats},
			expSenses: 2,
			expWumpus: 7,
		},
		"wumpus": {
			layout:      game.Layout{Ladder: 15, Wumpus: 1},
			gold:        10,
			target:      1,
			expRoom:     1,
			expStatus:   game.StatusDead,
			expEnded:    true,
			expNotes:    []string{MsgWumpusDeath},
			expSenses:   1,
			expWumpus:   0,
			expRoomGold: 10,
		},
		"bats drop you on the wumpus": {
			layout:    game.Layout{Ladder: 15, Wumpus: 12, Bats: []int{1}},
			dice:      []int{12},
			target:    1,
			expRoom:   12,
			expStatus: game.StatusDead,
			expEnded:  true,
			expNotes:  []string{MsgBats, MsgWumpusDeath},
			expSenses: 2,
			expWumpus: 9,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			world := newTestWorld(t, tt.layout, &scriptedDice{vals: tt.dice})
			h := newTestHandler(t, world)
			ps := addTestPlayer(t, world, "alice", 0)
			ps.AddLoot(tt.gold, 0)
			out := &recordingResponder{}

			ended, err := h.Exec(context.Background(), ps, out, "move "+strconv.Itoa(tt.target))
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			room, _ := ps.Location()
			testutil.AssertEqual(t, "room", room, tt.expRoom)
			testutil.AssertEqual(t, "status", ps.Status(), tt.expStatus)
			testutil.AssertEqual(t, "ended", ended, tt.expEnded)
			testutil.AssertEqual(t, "senses sent", len(out.senses), tt.expSenses)
			if diff := cmp.Diff(tt.expNotes, out.notifications); diff != "" {
				t.Errorf("notifications mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]int{tt.expWumpus}, wumpusRooms(world)); diff != "" {
				t.Errorf("wumpus rooms mismatch (-want +got):\n%s", diff)
			}

			r, _ := world.Cave().Room(room)
			gold, _ := r.Loot()
			testutil.AssertEqual(t, "room gold", gold, tt.expRoomGold)
			if ps.Alive() {
				testutil.AssertEqual(t, "occupants", r.PlayerCount(), 1)
			} else {
				testutil.AssertEqual(t, "occupants", r.PlayerCount(), 0)
			}
		})
	}
}

func TestMove_SensesNewRoom(t *testing.T) {
	world := newTestWorld(t, worldLayout(), nil)
	h := newTestHandler(t, world)
	ps := addTestPlayer(t, world, "alice", 0)
	out := &recordingResponder{}

	if _, err := h.Exec(context.Background(), ps, out, "move 2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exp := [][]string{{
		"You are in room 2",
		"You see tunnels to rooms 0, 1, 3, 4, 5 and 19.",
	}}
	if diff := cmp.Diff(exp, out.senses); diff != "" {
		t.Errorf("senses mismatch (-want +got):\n%s", diff)
	}
}

func TestShoot(t *testing.T) {
	tests := map[string]struct {
		layout    game.Layout
		spend     int
		target    int
		expErr    string
		expArrows int
		expNotes  []string
		expWumpus []int
		expLoot   [2]int
		expWAlive bool
	}{
		"no arrows": {
			layout:    worldLayout(),
			spend:     3,
			target:    1,
			expErr:    MsgNoArrows,
			expWumpus: []int{10},
			expWAlive: true,
		},
		"no arrows is checked first": {
			layout:    worldLayout(),
			spend:     3,
			target:    5,
			expErr:    MsgNoArrows,
			expWumpus: []int{10},
			expWAlive: true,
		},
		"not adjacent": {
			layout:    worldLayout(),
			target:    5,
			expErr:    MsgInvalidRoom,
			expArrows: 3,
			expWumpus: []int{10},
			expWAlive: true,
		},
		"miss": {
			layout:    worldLayout(),
			target:    1,
			expArrows: 2,
			expNotes:  []string{MsgShotsFired},
			expWumpus: []int{10},
			expWAlive: true,
		},
		"last arrow": {
			layout:    worldLayout(),
			spend:     2,
			target:    3,
			expArrows: 0,
			expNotes:  []string{MsgShotsFired},
			expWumpus: []int{10},
			expWAlive: true,
		},
		"kills the wumpus": {
			layout:    game.Layout{Ladder: 15, Wumpus: 1},
			target:    1,
			expArrows: 2,
			expNotes:  []string{MsgShotsFired, MsgKilledWumpus},
			expLoot:   [2]int{WumpusGold, WumpusArrows},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			world := newTestWorld(t, tt.layout, nil)
			h := newTestHandler(t, world)
			ps := addTestPlayer(t, world, "alice", 0)
			for i := 0; i < tt.spend; i++ {
				ps.SpendArrow()
			}
			out := &recordingResponder{}

			ended, err := h.Exec(context.Background(), ps, out, "shoot "+strconv.Itoa(tt.target))
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "ended", ended, false)
			testutil.AssertEqual(t, "arrows", ps.Arrows(), tt.expArrows)
			testutil.AssertEqual(t, "status", ps.Status(), game.StatusActive)
			if diff := cmp.Diff(tt.expNotes, out.notifications); diff != "" {
				t.Errorf("notifications mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.expWumpus, wumpusRooms(world)); diff != "" {
				t.Errorf("wumpus rooms mismatch (-want +got):\n%s", diff)
			}
			_, alive := world.Wumpus().Room()
			testutil.AssertEqual(t, "wumpus alive", alive, tt.expWAlive)

			if target, ok := world.Cave().Room(tt.target); ok {
				gold, arrows := target.Loot()
				testutil.AssertEqual(t, "loot", [2]int{gold, arrows}, tt.expLoot)
				testutil.AssertEqual(t, "arrows in flight", target.ArrowsInFlight(), 0)
			}
		})
	}
}

func TestShoot_KillsOtherPlayers(t *testing.T) {
	world := newTestWorld(t, worldLayout(), nil)
	h := newTestHandler(t, world)
	alice := addTestPlayer(t, world, "alice", 0)
	bob := addTestPlayer(t, world, "bob", 1)
	carol := addTestPlayer(t, world, "carol", 1)
	dave := addTestPlayer(t, world, "dave", 2)
	out := &recordingResponder{}

	if _, err := h.Exec(context.Background(), alice, out, "shoot 1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{MsgShotsFired}, out.notifications); diff != "" {
		t.Errorf("shooter notifications mismatch (-want +got):\n%s", diff)
	}

	fatal := []game.Notice{{Lines: []string{MsgShotByPlayer}, Fatal: true}}
	for _, victim := range []*game.PlayerState{bob, carol} {
		testutil.AssertEqual(t, victim.CharId+" status", victim.Status(), game.StatusDead)
		if diff := cmp.Diff(fatal, victim.Mailbox().Drain()); diff != "" {
			t.Errorf("%s mailbox mismatch (-want +got):\n%s", victim.CharId, diff)
		}
	}

	testutil.AssertEqual(t, "alice status", alice.Status(), game.StatusActive)
	testutil.AssertEqual(t, "dave status", dave.Status(), game.StatusActive)
	testutil.AssertEqual(t, "dave mailbox", dave.Mailbox().Len(), 0)

	r, _ := world.Cave().Room(1)
	testutil.AssertEqual(t, "room 1 occupants", r.PlayerCount(), 0)
}

func TestShoot_ThreeMisses(t *testing.T) {
	world := newTestWorld(t, worldLayout(), nil)
	h := newTestHandler(t, world)
	ps := addTestPlayer(t, world, "alice", 0)
	out := &recordingResponder{}

	for _, line := range []string{"shoot 1", "shoot 2", "shoot 19"} {
		ended, err := h.Exec(context.Background(), ps, out, line)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", line, err)
		}
		testutil.AssertEqual(t, line+" ended", ended, false)
	}

	testutil.AssertEqual(t, "arrows", ps.Arrows(), 0)
	testutil.AssertEqual(t, "status", ps.Status(), game.StatusActive)
	if diff := cmp.Diff([]string{MsgShotsFired, MsgShotsFired, MsgShotsFired}, out.notifications); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}

	_, err := h.Exec(context.Background(), ps, out, "shoot 1")
	testutil.AssertErrorContains(t, err, MsgNoArrows)
}

func TestPickup(t *testing.T) {
	tests := map[string]struct {
		gold      int
		arrows    int
		expNotes  []string
		expGold   int
		expArrows int
	}{
		"gold only": {
			gold:      5,
			expNotes:  []string{"You found 5 gold!"},
			expGold:   5,
			expArrows: game.StartingArrows,
		},
		"gold and arrows": {
			gold:      500,
			arrows:    1,
			expNotes:  []string{"You found 500 gold!", "You found 1 arrows!"},
			expGold:   500,
			expArrows: game.StartingArrows + 1,
		},
		"arrows only": {
			arrows:    2,
			expNotes:  []string{"You found 2 arrows!"},
			expArrows: game.StartingArrows + 2,
		},
		"empty room": {
			expNotes:  []string{MsgNothingHere},
			expArrows: game.StartingArrows,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := worldLayout()
			l.Gold = map[int]int{0: tt.gold}
			l.Arrows = map[int]int{0: tt.arrows}
			world := newTestWorld(t, l, nil)
			h := newTestHandler(t, world)
			ps := addTestPlayer(t, world, "alice", 0)
			out := &recordingResponder{}

			if _, err := h.Exec(context.Background(), ps, out, "pickup"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.expNotes, out.notifications); diff != "" {
				t.Errorf("notifications mismatch (-want +got):\n%s", diff)
			}
			testutil.AssertEqual(t, "player gold", ps.Gold(), tt.expGold)
			testutil.AssertEqual(t, "player arrows", ps.Arrows(), tt.expArrows)

			r, _ := world.Cave().Room(0)
			gold, arrows := r.Loot()
			testutil.AssertEqual(t, "room gold", gold, 0)
			testutil.AssertEqual(t, "room arrows", arrows, 0)
		})
	}
}

func TestClimb(t *testing.T) {
	tests := map[string]struct {
		start     int
		gold      int
		expErr    string
		expEnded  bool
		expStatus game.Status
		expNotes  []string
	}{
		"no ladder": {
			start:     0,
			expErr:    MsgNoLadder,
			expStatus: game.StatusActive,
		},
		"escape": {
			start:     15,
			gold:      42,
			expEnded:  true,
			expStatus: game.StatusEscaped,
			expNotes: []string{
				"Congratulations! You escaped!",
				"You collected 42 gold.",
				"Goodbye!",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			world := newTestWorld(t, worldLayout(), nil)
			h := newTestHandler(t, world)
			ps := addTestPlayer(t, world, "alice", tt.start)
			ps.AddLoot(tt.gold, 0)
			out := &recordingResponder{}

			ended, err := h.Exec(context.Background(), ps, out, "climb")
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "ended", ended, tt.expEnded)
			testutil.AssertEqual(t, "status", ps.Status(), tt.expStatus)
			if diff := cmp.Diff(tt.expNotes, out.notifications); diff != "" {
				t.Errorf("notifications mismatch (-want +got):\n%s", diff)
			}

			if err := world.RemovePlayer("alice"); err != nil {
				t.Fatalf("removing player: %v", err)
			}
			r, _ := world.Cave().Room(tt.start)
			gold, _ := r.Loot()
			if tt.expStatus == game.StatusEscaped {
				testutil.AssertEqual(t, "gold left behind", gold, 0)
			} else {
				testutil.AssertEqual(t, "gold left behind", gold, tt.gold)
			}
		})
	}
}

func TestQuit_LootIsLeftForOthers(t *testing.T) {
	world := newTestWorld(t, worldLayout(), nil)
	h := newTestHandler(t, world)
	alice := addTestPlayer(t, world, "alice", 4)
	bob := addTestPlayer(t, world, "bob", 4)
	alice.AddLoot(10, 0)
	aliceOut := &recordingResponder{}

	ended, err := h.Exec(context.Background(), alice, aliceOut, "quit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "ended", ended, true)
	testutil.AssertEqual(t, "status", alice.Status(), game.StatusQuit)
	testutil.AssertEqual(t, "quit output", len(aliceOut.notifications), 0)
	if err := world.RemovePlayer("alice"); err != nil {
		t.Fatalf("removing player: %v", err)
	}

	r, _ := world.Cave().Room(4)
	gold, _ := r.Loot()
	testutil.AssertEqual(t, "room gold", gold, 10)

	bobOut := &recordingResponder{}
	if _, err := h.Exec(context.Background(), bob, bobOut, "pickup"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exp := []string{"You found 10 gold!", "You found 3 arrows!"}
	if diff := cmp.Diff(exp, bobOut.notifications); diff != "" {
		t.Errorf("pickup mismatch (-want +got):\n%s", diff)
	}
}
