package game

import (
	"math/rand/v2"
	"sync"
)

// Dice is the random source every game rule draws from. Tests inject
// deterministic implementations.
type Dice interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

type lockedDice struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewDice returns a goroutine-safe Dice seeded with seed.
func NewDice(seed uint64) Dice {
	return &lockedDice{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (d *lockedDice) IntN(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.IntN(n)
}
