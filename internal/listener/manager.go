package listener

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime/debug"
)

// SessionRunner plays one session over an accepted connection.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

type ConnectionManager struct {
	pm SessionRunner
}

func NewConnectionManager(pm SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		pm: pm,
	}
}

// AcceptConnection runs a session to completion. A failing or panicking
// session is logged and only takes down its own connection.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "player session panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	if err := m.pm.RunSession(ctx, conn); err != nil && !errors.Is(err, context.Canceled) {
		slog.WarnContext(ctx, "player session", "error", err)
	}
}
