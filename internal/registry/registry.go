package registry

import (
	"context"
	"log/slog"
)

// Registrar announces a running cave server to the cave-system registry.
type Registrar interface {
	Register(ctx context.Context, endpoint string) error
}

// Registration is the body sent to registries that take a message.
type Registration struct {
	Endpoint string `json:"endpoint"`
}

// NoopRegistrar registers nowhere. It is used for local play.
type NoopRegistrar struct{}

func (NoopRegistrar) Register(ctx context.Context, endpoint string) error {
	slog.InfoContext(ctx, "no registry configured, skipping registration", "endpoint", endpoint)
	return nil
}
