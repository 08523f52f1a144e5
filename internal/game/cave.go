package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
)

const (
	DefaultCaveSize  = 20
	DefaultBatChance = 15 // percent
	DefaultPitChance = 12 // percent
)

// DefaultOffsets connects room i to rooms i+1, i+2 and i+3.
var DefaultOffsets = []int{1, 2, 3}

// Layout describes everything needed to build a cave. It is plain data so
// tests can describe a cave exactly while servers generate one with
// RandomLayout.
type Layout struct {
	Size    int         `json:"size"`
	Offsets []int       `json:"offsets"`
	Ladder  int         `json:"ladder"`
	Bats    []int       `json:"bats,omitempty"`
	Pits    []int       `json:"pits,omitempty"`
	Wumpus  int         `json:"wumpus"`
	Gold    map[int]int `json:"gold,omitempty"`
	Arrows  map[int]int `json:"arrows,omitempty"`
}

// Validate checks that every room reference in the layout is in range.
func (l *Layout) Validate() error {
	el := errors.NewErrorList()

	if l.Size < 2 {
		el.Add(fmt.Errorf("size must be at least 2, got %d", l.Size))
		return el.Err()
	}
	if len(l.Offsets) == 0 {
		el.Add(fmt.Errorf("at least one offset is required"))
	}

	inRange := func(what string, id int) {
		if id < 0 || id >= l.Size {
			el.Add(fmt.Errorf("%s room %d out of range [0,%d)", what, id, l.Size))
		}
	}
	inRange("ladder", l.Ladder)
	inRange("wumpus", l.Wumpus)
	for _, id := range l.Bats {
		inRange("bat", id)
	}
	for _, id := range l.Pits {
		inRange("pit", id)
	}
	for id, n := range l.Gold {
		inRange("gold", id)
		if n < 0 {
			el.Add(fmt.Errorf("room %d: gold must not be negative", id))
		}
	}
	for id, n := range l.Arrows {
		inRange("arrow", id)
		if n < 0 {
			el.Add(fmt.Errorf("room %d: arrows must not be negative", id))
		}
	}

	return el.Err()
}

type layoutConfig struct {
	size      int
	offsets   []int
	batChance int
	pitChance int
}

type LayoutOpt func(*layoutConfig)

// WithSize sets the number of rooms.
func WithSize(n int) LayoutOpt {
	return func(c *layoutConfig) {
		c.size = n
	}
}

// WithOffsets sets the tunnel offsets used to connect rooms.
func WithOffsets(offsets ...int) LayoutOpt {
	return func(c *layoutConfig) {
		c.offsets = offsets
	}
}

// WithBatChance sets the percent chance that a non-ladder room has bats.
func WithBatChance(pct int) LayoutOpt {
	return func(c *layoutConfig) {
		c.batChance = pct
	}
}

// WithPitChance sets the percent chance that a non-ladder room has a pit.
func WithPitChance(pct int) LayoutOpt {
	return func(c *layoutConfig) {
		c.pitChance = pct
	}
}

// RandomLayout rolls a new cave. The ladder goes in one uniformly chosen room,
// every other room independently rolls for bats and for a pit, and the wumpus
// is placed uniformly with no exclusions.
func RandomLayout(dice Dice, opts ...LayoutOpt) Layout {
	cfg := &layoutConfig{
		size:      DefaultCaveSize,
		offsets:   DefaultOffsets,
		batChance: DefaultBatChance,
		pitChance: DefaultPitChance,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	l := Layout{
		Size:    cfg.size,
		Offsets: slices.Clone(cfg.offsets),
		Ladder:  dice.IntN(cfg.size),
	}
	for id := 0; id < cfg.size; id++ {
		if id != l.Ladder && dice.IntN(100) < cfg.batChance {
			l.Bats = append(l.Bats, id)
		}
	}
	for id := 0; id < cfg.size; id++ {
		if id != l.Ladder && dice.IntN(100) < cfg.pitChance {
			l.Pits = append(l.Pits, id)
		}
	}
	l.Wumpus = dice.IntN(cfg.size)

	return l
}

// Cave is the fixed graph of rooms for one running server.
type Cave struct {
	rooms []*Room
}

// NewCave builds the rooms and tunnels described by the layout. The topology
// never changes afterwards; only room contents do.
func NewCave(l Layout) (*Cave, error) {
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("validating layout: %w", err)
	}

	c := &Cave{rooms: make([]*Room, l.Size)}
	for id := range c.rooms {
		c.rooms[id] = newRoom(id)
	}

	for id := range c.rooms {
		for _, off := range l.Offsets {
			c.connect(id, ((id+off)%l.Size+l.Size)%l.Size)
		}
	}

	c.rooms[l.Ladder].ladder = true
	for _, id := range l.Bats {
		c.rooms[id].bats = true
	}
	for _, id := range l.Pits {
		c.rooms[id].pit = true
	}
	for id, n := range l.Gold {
		c.rooms[id].gold = n
	}
	for id, n := range l.Arrows {
		c.rooms[id].arrows = n
	}
	c.rooms[l.Wumpus].wumpus = true

	return c, nil
}

// connect adds a tunnel from a to b. Tunnels can be walked both ways.
func (c *Cave) connect(a, b int) {
	c.rooms[a].addExit(b)
	c.rooms[a].addNeighbor(b)
	c.rooms[b].addNeighbor(a)
}

// Size returns the number of rooms.
func (c *Cave) Size() int {
	return len(c.rooms)
}

// Room returns the room with the given id.
func (c *Cave) Room(id int) (*Room, bool) {
	if id < 0 || id >= len(c.rooms) {
		return nil, false
	}
	return c.rooms[id], true
}

// Neighbor returns room id if it is adjacent to from. A room is never its
// own neighbor.
func (c *Cave) Neighbor(from, id int) (*Room, bool) {
	r, ok := c.Room(from)
	if !ok || !r.IsAdjacent(id) {
		return nil, false
	}
	return c.Room(id)
}

// RoomsWhere returns the ids of every room matching fn, in ascending order.
func (c *Cave) RoomsWhere(fn func(*Room) bool) []int {
	var ids []int
	for _, r := range c.rooms {
		if fn(r) {
			ids = append(ids, r.id)
		}
	}
	return ids
}

// swapWumpus moves the wumpus flag between two rooms while holding both
// locks, so no reader ever sees zero or two wumpus rooms. Locks are taken in
// ascending id order.
func (c *Cave) swapWumpus(from, to *Room) {
	if from == to {
		return
	}
	first, second := from, to
	if second.id < first.id {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	from.wumpus = false
	to.wumpus = true
}
