package game

import (
	"slices"
	"sync"
)

// Room is a single node of the cave. Every field below mu is shared between
// sessions and is only touched while holding mu.
type Room struct {
	id int

	mu        sync.RWMutex
	exits     []int // outgoing edges in construction order
	neighbors []int // distinct, ascending, never contains id
	ladder    bool
	bats      bool
	pit       bool
	wumpus    bool
	gold      int
	arrows    int
	inFlight  int
	occupants []string
}

func newRoom(id int) *Room {
	return &Room{id: id}
}

// Id returns the room number.
func (r *Room) Id() int {
	return r.id
}

// Exits returns the edges created from this room when the cave was built.
func (r *Room) Exits() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.exits)
}

// Neighbors returns the ids of every adjacent room in ascending order.
func (r *Room) Neighbors() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.neighbors)
}

// IsAdjacent reports whether id is reachable through a single tunnel.
func (r *Room) IsAdjacent(id int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, found := slices.BinarySearch(r.neighbors, id)
	return found
}

func (r *Room) addExit(to int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exits = append(r.exits, to)
}

func (r *Room) addNeighbor(id int) {
	if id == r.id {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i, found := slices.BinarySearch(r.neighbors, id)
	if !found {
		r.neighbors = slices.Insert(r.neighbors, i, id)
	}
}

// Enter adds a player to the room.
func (r *Room) Enter(charId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.occupants, charId) {
		r.occupants = append(r.occupants, charId)
	}
}

// Leave removes a player from the room. Returns false if they were not here.
func (r *Room) Leave(charId string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.Index(r.occupants, charId)
	if i < 0 {
		return false
	}
	r.occupants = slices.Delete(r.occupants, i, i+1)
	return true
}

// Occupants returns the players in the room in arrival order.
func (r *Room) Occupants() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.occupants)
}

// PlayerCount returns the number of players in the room.
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.occupants)
}

func (r *Room) HasLadder() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ladder
}

func (r *Room) HasBats() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bats
}

func (r *Room) HasPit() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pit
}

func (r *Room) HasWumpus() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.wumpus
}

func (r *Room) setWumpus(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wumpus = v
}

// Loot returns the gold and arrows lying in the room.
func (r *Room) Loot() (gold, arrows int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gold, r.arrows
}

// AddLoot drops gold and arrows into the room. Negative amounts are ignored.
func (r *Room) AddLoot(gold, arrows int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gold += max(gold, 0)
	r.arrows += max(arrows, 0)
}

// TakeLoot empties the room's gold and arrows and returns what was there.
func (r *Room) TakeLoot() (gold, arrows int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	gold, arrows = r.gold, r.arrows
	r.gold, r.arrows = 0, 0
	return gold, arrows
}

// LaunchArrow records an arrow arriving in the room and returns the number
// currently in flight.
func (r *Room) LaunchArrow() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight++
	return r.inFlight
}

// LandArrow records an arrow coming to rest. The counter never goes negative.
func (r *Room) LandArrow() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inFlight > 0 {
		r.inFlight--
	}
	return r.inFlight
}

// ArrowsInFlight returns the number of arrows currently resolving in the room.
func (r *Room) ArrowsInFlight() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inFlight
}

// roomView is a consistent copy of a room taken under its lock.
type roomView struct {
	id        int
	neighbors []int
	ladder    bool
	bats      bool
	pit       bool
	wumpus    bool
	gold      int
	arrows    int
	occupied  bool
}

func (r *Room) view() roomView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return roomView{
		id:        r.id,
		neighbors: slices.Clone(r.neighbors),
		ladder:    r.ladder,
		bats:      r.bats,
		pit:       r.pit,
		wumpus:    r.wumpus,
		gold:      r.gold,
		arrows:    r.arrows,
		occupied:  len(r.occupants) > 0,
	}
}
