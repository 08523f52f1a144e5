package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Sense lines. Clients match on these so the wording is fixed.
const (
	SenseLadder   = "You've found the ladder!"
	SenseBats     = "There are bats in this room."
	SensePit      = "There isn't a floor in here."
	SenseWumpus   = "There is a wumpus in here."
	SenseGold     = "Something glimmers around your feet."
	SenseArrows   = "Something poked your big toe."
	SenseFlapping = "You hear flapping!"
	SenseBreeze   = "You feel a breeze."
	SenseSmell    = "You smell something foul."
	SensePresence = "You feel another presence."
)

// Sense describes what a player standing in room id perceives: where they
// are, the tunnels out, what is in the room itself, and one hint line per
// hazard or presence in each neighboring room.
func (c *Cave) Sense(id int) []string {
	r, ok := c.Room(id)
	if !ok {
		return nil
	}
	here := r.view()

	lines := []string{
		fmt.Sprintf("You are in room %d", here.id),
		"You see tunnels to rooms " + tunnelList(here.neighbors),
	}

	if here.ladder {
		lines = append(lines, SenseLadder)
	}
	if here.bats {
		lines = append(lines, SenseBats)
	}
	if here.pit {
		lines = append(lines, SensePit)
	}
	if here.wumpus {
		lines = append(lines, SenseWumpus)
	}
	if here.gold > 0 {
		lines = append(lines, SenseGold)
	}
	if here.arrows > 0 {
		lines = append(lines, SenseArrows)
	}

	for _, nid := range here.neighbors {
		n, ok := c.Room(nid)
		if !ok {
			continue
		}
		nv := n.view()
		if nv.bats {
			lines = append(lines, SenseFlapping)
		}
		if nv.pit {
			lines = append(lines, SenseBreeze)
		}
		if nv.wumpus {
			lines = append(lines, SenseSmell)
		}
		if nv.occupied {
			lines = append(lines, SensePresence)
		}
	}

	return lines
}

// tunnelList renders ids as "1, 2 and 3.".
func tunnelList(ids []int) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = strconv.Itoa(id)
	}

	switch len(strs) {
	case 0:
		return "nowhere."
	case 1:
		return strs[0] + "."
	default:
		return strings.Join(strs[:len(strs)-1], ", ") + " and " + strs[len(strs)-1] + "."
	}
}
