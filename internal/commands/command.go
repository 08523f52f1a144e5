package commands

import (
	"strconv"
	"strings"
)

// Verb is the first word of a command line.
type Verb string

const (
	VerbMove   Verb = "move"
	VerbShoot  Verb = "shoot"
	VerbPickup Verb = "pickup"
	VerbClimb  Verb = "climb"
	VerbQuit   Verb = "quit"
)

// verbs lists every known verb and whether it takes a room number.
var verbs = map[Verb]bool{
	VerbMove:   true,
	VerbShoot:  true,
	VerbPickup: false,
	VerbClimb:  false,
	VerbQuit:   false,
}

// Usage is the command list shown to new players.
func Usage() []string {
	return []string{
		string(VerbMove) + " <room>",
		string(VerbShoot) + " <room>",
		string(VerbPickup),
		string(VerbClimb),
		string(VerbQuit),
	}
}

// Command is one parsed line of player input.
type Command struct {
	Verb Verb
	Room int // only set for verbs that take a room
}

// Parse turns a line of input into a Command. Verbs are case-sensitive and
// must have exactly the arguments they expect; anything else is rejected with
// a UserError.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, NewUserError(MsgInvalidCommand)
	}

	verb := Verb(fields[0])
	takesRoom, ok := verbs[verb]
	if !ok {
		return Command{}, NewUserError(MsgInvalidCommand)
	}

	if !takesRoom {
		if len(fields) != 1 {
			return Command{}, NewUserError(MsgInvalidCommand)
		}
		return Command{Verb: verb}, nil
	}

	if len(fields) != 2 {
		return Command{}, NewUserError(MsgInvalidCommand)
	}
	room, err := strconv.Atoi(fields[1])
	if err != nil {
		return Command{}, NewUserError(MsgInvalidCommand)
	}

	return Command{Verb: verb, Room: room}, nil
}
