package commands

// Responses sent to players. Clients match on these so the wording is fixed.
const (
	MsgInvalidCommand = "Invalid command."
	MsgCantMove       = "You can't move to that room!"
	MsgPitDeath       = "You've fallen into a pit and died. Nice job."
	MsgBats           = "You've been teleported to a random room by pesky bats!"
	MsgWumpusDeath    = "You have been killed by the Wumpus."
	MsgNoArrows       = "You don't have any arrows!"
	MsgInvalidRoom    = "Invalid room!"
	MsgShotsFired     = "Shots fired!"
	MsgKilledWumpus   = "You've killed the wumpus!"
	MsgShotByPlayer   = "You were shot by another player. You are dead."
	MsgFoundGold      = "You found %d gold!"
	MsgFoundArrows    = "You found %d arrows!"
	MsgNothingHere    = "Nothing to pick up."
	MsgNoLadder       = "There isn't a ladder in here!"
)

// Loot dropped where the wumpus dies.
const (
	WumpusGold   = 500
	WumpusArrows = 1
)
