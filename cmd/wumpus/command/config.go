package command

import (
	"fmt"
	"net"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-wumpus/internal/driver"
)

type Config struct {
	Cave      CaveConfig       `json:"cave"`
	Listeners []ListenerConfig `json:"listeners"`
	Nats      NatsConfig       `json:"nats"`
	Registry  RegistryConfig   `json:"registry"`
	Log       LogConfig        `json:"log"`

	// Advertise is the host:port registered with the cave system. Defaults to
	// localhost and the first listener's port.
	Advertise string `json:"advertise,omitempty"`
	WrapWidth int    `json:"wrap_width,omitempty"`

	// StatusInterval is how often cave status is logged.
	StatusInterval string `json:"status_interval,omitempty"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		if err := l.validate(); err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	if c.Advertise != "" {
		if _, _, err := net.SplitHostPort(c.Advertise); err != nil {
			el.Add(fmt.Errorf("parsing advertise: %w", err))
		}
	}
	if c.WrapWidth < 0 {
		el.Add(fmt.Errorf("wrap_width must not be negative"))
	}

	if c.StatusInterval != "" {
		if _, err := time.ParseDuration(c.StatusInterval); err != nil {
			el.Add(fmt.Errorf("parsing status_interval: %w", err))
		}
	}

	el.Add(c.Cave.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Registry.validate())
	el.Add(c.Log.validate())

	return el.Err()
}

// endpoint is the address players are told to connect to.
func (c *Config) endpoint() string {
	if c.Advertise != "" {
		return c.Advertise
	}
	if len(c.Listeners) == 0 {
		return ""
	}
	return fmt.Sprintf("localhost:%d", c.Listeners[0].Port)
}

func (c *Config) statusInterval() time.Duration {
	d, err := time.ParseDuration(c.StatusInterval)
	if err != nil {
		return driver.DefaultTickLength
	}
	return d
}
