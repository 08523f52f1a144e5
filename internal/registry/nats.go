package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
)

const (
	DefaultSubject = "cavesystem.register"
	DefaultTimeout = 5 * time.Second
)

// NatsRegistrar registers by sending a request to the registry over NATS.
type NatsRegistrar struct {
	url     string
	subject string
	timeout time.Duration
}

type NatsRegistrarOpt func(*NatsRegistrar)

// WithSubject sets the subject registration requests are sent on.
func WithSubject(subject string) NatsRegistrarOpt {
	return func(r *NatsRegistrar) {
		r.subject = subject
	}
}

// WithTimeout bounds connecting and waiting for the reply.
func WithTimeout(d time.Duration) NatsRegistrarOpt {
	return func(r *NatsRegistrar) {
		r.timeout = d
	}
}

func NewNatsRegistrar(url string, opts ...NatsRegistrarOpt) *NatsRegistrar {
	r := &NatsRegistrar{
		url:     url,
		subject: DefaultSubject,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// reply is what a registry may answer with. Any reply without an error
// counts as accepted.
type reply struct {
	Error string `json:"error,omitempty"`
}

func (r *NatsRegistrar) Register(ctx context.Context, endpoint string) error {
	nc, err := nats.Connect(r.url, nats.Timeout(r.timeout))
	if err != nil {
		return fmt.Errorf("connecting to registry at %s: %w", r.url, err)
	}
	defer nc.Close()

	data, err := json.Marshal(Registration{Endpoint: endpoint})
	if err != nil {
		return fmt.Errorf("encoding registration: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	msg, err := nc.RequestWithContext(ctx, r.subject, data)
	if err != nil {
		return fmt.Errorf("requesting registration on %q: %w", r.subject, err)
	}

	var rep reply
	if err := json.Unmarshal(msg.Data, &rep); err == nil && rep.Error != "" {
		return fmt.Errorf("registry rejected %s: %s", endpoint, rep.Error)
	}

	slog.InfoContext(ctx, "registered with cave system", "endpoint", endpoint, "subject", r.subject)
	return nil
}
