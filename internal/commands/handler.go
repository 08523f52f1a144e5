package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-wumpus/internal/game"
)

// Responder is the part of a player's connection a command writes to.
type Responder interface {
	SendNotifications(lines []string) error
	SendSenses(lines []string) error
}

// Turn carries one command through its handler.
type Turn struct {
	Player *game.PlayerState
	Out    Responder
	Room   int

	ended bool
}

// End marks the session as over once the turn completes.
func (t *Turn) End() {
	t.ended = true
}

// CommandFunc is the signature for compiled command functions.
type CommandFunc func(ctx context.Context, t *Turn) error

// HandlerFactory creates the CommandFunc for one verb.
type HandlerFactory interface {
	Create() (CommandFunc, error)
}

type Handler struct {
	world     *game.WorldState
	factories map[Verb]HandlerFactory
	compiled  map[Verb]CommandFunc
}

// NewHandler creates a handler with every built-in verb registered and compiled.
func NewHandler(world *game.WorldState) (*Handler, error) {
	h := &Handler{
		world:     world,
		factories: make(map[Verb]HandlerFactory),
		compiled:  make(map[Verb]CommandFunc),
	}

	builtins := map[Verb]HandlerFactory{
		VerbMove:   NewMoveHandlerFactory(world),
		VerbShoot:  NewShootHandlerFactory(world),
		VerbPickup: NewPickupHandlerFactory(world),
		VerbClimb:  NewClimbHandlerFactory(world),
		VerbQuit:   NewQuitHandlerFactory(world),
	}
	for verb, f := range builtins {
		if err := h.RegisterFactory(verb, f); err != nil {
			return nil, err
		}
	}

	if err := h.CompileAll(); err != nil {
		return nil, err
	}
	return h, nil
}

// RegisterFactory registers a handler factory for a verb.
func (h *Handler) RegisterFactory(verb Verb, factory HandlerFactory) error {
	if _, ok := verbs[verb]; !ok {
		return fmt.Errorf("unknown verb %q", verb)
	}
	if factory == nil {
		return fmt.Errorf("handler factory cannot be nil")
	}
	if _, exists := h.factories[verb]; exists {
		return fmt.Errorf("handler factory %q already registered", verb)
	}
	h.factories[verb] = factory
	return nil
}

// CompileAll creates the CommandFunc of every registered factory.
func (h *Handler) CompileAll() error {
	for verb, f := range h.factories {
		fn, err := f.Create()
		if err != nil {
			return fmt.Errorf("compiling command %q: %w", verb, err)
		}
		h.compiled[verb] = fn
	}
	return nil
}

// Exec parses and runs one line of input as a single turn for ps. It reports
// whether the turn ended the session. A *UserError means the command was
// rejected; any other error is a system failure.
func (h *Handler) Exec(ctx context.Context, ps *game.PlayerState, out Responder, line string) (bool, error) {
	cmd, err := Parse(line)
	if err != nil {
		return false, err
	}

	fn, ok := h.compiled[cmd.Verb]
	if !ok {
		return false, NewUserError(MsgInvalidCommand)
	}

	t := &Turn{
		Player: ps,
		Out:    out,
		Room:   cmd.Room,
	}
	err = fn(ctx, t)
	return t.ended, err
}
