package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-wumpus/internal/messaging"
)

// NatsConfig controls the embedded NATS server that carries notices between
// sessions. When disabled, notices are delivered in-process.
type NatsConfig struct {
	Enabled      bool   `json:"enabled"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	StartTimeout string `json:"start_timeout"`
}

func (n *NatsConfig) validate() error {
	el := errors.NewErrorList()

	if n.StartTimeout != "" {
		_, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing start_timeout: %w", err))
		}
	}
	if n.Port < -1 || n.Port > 65535 {
		el.Add(fmt.Errorf("nats port %d out of range", n.Port))
	}

	return el.Err()
}

func (n *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt
	if n.StartTimeout != "" {
		d, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing start_timeout: %w", err)
		}
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if n.Host != "" {
		opts = append(opts, messaging.WithHost(n.Host))
	}
	if n.Port != 0 {
		opts = append(opts, messaging.WithPort(n.Port))
	}

	s, err := messaging.NewNatsServer(opts...)
	if err != nil {
		return nil, err
	}

	return s, nil
}
