package game

import (
	"sync"
	"sync/atomic"
)

const StartingArrows = 3

// Status is where a player is in their session lifecycle. A player leaves
// StatusActive at most once.
type Status int32

const (
	StatusActive Status = iota
	StatusDead
	StatusEscaped
	StatusQuit
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDead:
		return "dead"
	case StatusEscaped:
		return "escaped"
	case StatusQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// PlayerState holds all mutable state for one connected player. Counters
// and location are only changed by the owning session; status may be changed
// by any session (an arrow from another player).
type PlayerState struct {
	CharId string

	status  atomic.Int32
	mailbox *Mailbox

	mu     sync.Mutex
	gold   int
	arrows int
	room   int
	placed bool
	unsub  func()
}

func newPlayerState(charId string) *PlayerState {
	return &PlayerState{
		CharId:  charId,
		mailbox: NewMailbox(),
		arrows:  StartingArrows,
	}
}

// Mailbox returns the player's notice queue.
func (p *PlayerState) Mailbox() *Mailbox {
	return p.mailbox
}

func (p *PlayerState) Status() Status {
	return Status(p.status.Load())
}

// Alive reports whether the player is still playing.
func (p *PlayerState) Alive() bool {
	return p.Status() == StatusActive
}

// Kill marks the player dead. Only the first transition out of
// StatusActive succeeds, so exactly one caller wins a race to kill.
func (p *PlayerState) Kill() bool {
	return p.finish(StatusDead)
}

// Escape marks the player as having climbed out.
func (p *PlayerState) Escape() bool {
	return p.finish(StatusEscaped)
}

// Quit marks the player as having left voluntarily.
func (p *PlayerState) Quit() bool {
	return p.finish(StatusQuit)
}

func (p *PlayerState) finish(s Status) bool {
	return p.status.CompareAndSwap(int32(StatusActive), int32(s))
}

// Location returns the player's current room and whether they have been
// placed yet.
func (p *PlayerState) Location() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.room, p.placed
}

func (p *PlayerState) setLocation(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.room = id
	p.placed = true
}

func (p *PlayerState) Gold() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gold
}

func (p *PlayerState) Arrows() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.arrows
}

// AddLoot credits gold and arrows to the player. Negative amounts are ignored.
func (p *PlayerState) AddLoot(gold, arrows int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gold += max(gold, 0)
	p.arrows += max(arrows, 0)
}

// DropLoot zeroes the player's gold and arrows and returns what they held.
func (p *PlayerState) DropLoot() (gold, arrows int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	gold, arrows = p.gold, p.arrows
	p.gold, p.arrows = 0, 0
	return gold, arrows
}

// SpendArrow uses one arrow. Returns false if the quiver is empty.
func (p *PlayerState) SpendArrow() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.arrows == 0 {
		return false
	}
	p.arrows--
	return true
}

func (p *PlayerState) subscribed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unsub != nil
}

func (p *PlayerState) setUnsubscribe(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unsub = fn
}

// unsubscribe drops the bus subscription, if any.
func (p *PlayerState) unsubscribe() {
	p.mu.Lock()
	unsub := p.unsub
	p.unsub = nil
	p.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}
