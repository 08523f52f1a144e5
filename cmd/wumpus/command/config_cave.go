package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-wumpus/internal/game"
)

type CaveConfig struct {
	Size      int     `json:"size,omitempty"`
	Offsets   []int   `json:"offsets,omitempty"`
	BatChance *int    `json:"bat_chance,omitempty"`
	PitChance *int    `json:"pit_chance,omitempty"`
	Seed      *uint64 `json:"seed,omitempty"`

	// LayoutFile is a hand-authored cave used instead of rolling one.
	LayoutFile string `json:"layout_file,omitempty"`
	// ExportFile receives a copy of the rolled cave.
	ExportFile string `json:"export_file,omitempty"`
}

func (c *CaveConfig) validate() error {
	el := errors.NewErrorList()

	size := c.size()
	if size < 2 {
		el.Add(fmt.Errorf("cave size must be at least 2"))
	}
	for _, off := range c.Offsets {
		if size > 0 && off%size == 0 {
			el.Add(fmt.Errorf("offset %d connects a room to itself", off))
		}
	}
	if c.BatChance != nil && (*c.BatChance < 0 || *c.BatChance > 100) {
		el.Add(fmt.Errorf("bat_chance must be between 0 and 100"))
	}
	if c.PitChance != nil && (*c.PitChance < 0 || *c.PitChance > 100) {
		el.Add(fmt.Errorf("pit_chance must be between 0 and 100"))
	}
	if c.LayoutFile != "" && c.ExportFile != "" {
		el.Add(fmt.Errorf("layout_file and export_file are mutually exclusive"))
	}

	return el.Err()
}

func (c *CaveConfig) size() int {
	if c.Size == 0 {
		return game.DefaultCaveSize
	}
	return c.Size
}

// buildWorld rolls a new cave and sets the wumpus loose in it.
func (c *CaveConfig) buildWorld(bus game.Bus) (*game.WorldState, error) {
	seed := uint64(time.Now().UnixNano())
	if c.Seed != nil {
		seed = *c.Seed
	}
	dice := game.NewDice(seed)

	opts := []game.LayoutOpt{game.WithSize(c.size())}
	if len(c.Offsets) > 0 {
		opts = append(opts, game.WithOffsets(c.Offsets...))
	}
	if c.BatChance != nil {
		opts = append(opts, game.WithBatChance(*c.BatChance))
	}
	if c.PitChance != nil {
		opts = append(opts, game.WithPitChance(*c.PitChance))
	}

	layout, err := c.layout(dice, opts)
	if err != nil {
		return nil, err
	}

	cave, err := game.NewCave(layout)
	if err != nil {
		return nil, fmt.Errorf("building cave: %w", err)
	}
	wumpus, err := game.NewWumpus(cave, dice)
	if err != nil {
		return nil, fmt.Errorf("placing wumpus: %w", err)
	}

	return game.NewWorldState(cave, wumpus, dice, bus), nil
}
