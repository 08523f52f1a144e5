package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// NatsServer is an embedded NATS server plus the one client connection the
// game publishes and subscribes through. It satisfies game.Bus.
type NatsServer struct {
	ns *server.Server

	mu    sync.RWMutex
	conn  *nats.Conn
	ready chan struct{}

	startupTimeout time.Duration
	host           string
	port           int
}

func NewNatsServer(opts ...NatsServerOpt) (*NatsServer, error) {
	s := &NatsServer{
		startupTimeout: 10 * time.Second,
		host:           "127.0.0.1",
		port:           server.RANDOM_PORT,
		ready:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	ns, err := server.NewServer(&server.Options{
		Host:   s.host,
		Port:   s.port,
		NoSigs: true, // Let the application handle signals
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	s.ns = ns

	return s, nil
}

func (n *NatsServer) Start(ctx context.Context) error {
	n.ns.Start()

	if !n.ns.ReadyForConnections(n.startupTimeout) {
		n.ns.Shutdown()
		return fmt.Errorf("nats server not ready for connections after %s", n.startupTimeout)
	}

	conn, err := nats.Connect(n.ns.ClientURL())
	if err != nil {
		n.ns.Shutdown()
		return fmt.Errorf("creating nats client connection: %w", err)
	}

	n.mu.Lock()
	n.conn = conn
	n.mu.Unlock()
	close(n.ready)

	slog.InfoContext(ctx, "nats server listening", "addr", n.ns.Addr())

	<-ctx.Done()

	n.mu.Lock()
	n.conn.Close()
	n.conn = nil
	n.mu.Unlock()

	n.ns.Shutdown()
	n.ns.WaitForShutdown()

	return nil
}

// Ready is closed once the server accepts subscriptions.
func (n *NatsServer) Ready() <-chan struct{} {
	return n.ready
}

// Subscribe creates a subscription on the given subject.
// The handler is called for each message received.
// Returns an unsubscribe function to remove the subscription.
func (n *NatsServer) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.conn == nil {
		return nil, fmt.Errorf("nats server not started")
	}
	sub, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to %q: %w", subject, err)
	}
	return func() {
		if err := sub.Unsubscribe(); err != nil && err != nats.ErrConnectionClosed {
			slog.Warn("unsubscribing", "subject", subject, "error", err)
		}
	}, nil
}

// Publish sends a message to the given subject
func (n *NatsServer) Publish(subject string, data []byte) error {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.conn == nil {
		return fmt.Errorf("nats server not started")
	}
	return n.conn.Publish(subject, data)
}

// ClientURL is the address clients outside the process can connect to.
func (n *NatsServer) ClientURL() string {
	return n.ns.ClientURL()
}
