package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-wumpus/internal/registry"
	"github.com/redis/go-redis/v9"
)

type RegistryType int

const (
	RegistryTypeNone RegistryType = iota
	RegistryTypeNats
	RegistryTypeRedis
)

func (rt *RegistryType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "none":
		*rt = RegistryTypeNone
	case "nats":
		*rt = RegistryTypeNats
	case "redis":
		*rt = RegistryTypeRedis
	default:
		return fmt.Errorf("unknown registry type: %s", text)
	}
	return nil
}

type RegistryConfig struct {
	Type    RegistryType `json:"type"`
	Timeout string       `json:"timeout,omitempty"`

	// nats
	Url     string `json:"url,omitempty"`
	Subject string `json:"subject,omitempty"`

	// redis
	Addr     string `json:"addr,omitempty"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db,omitempty"`
	Key      string `json:"key,omitempty"`
}

func (c *RegistryConfig) validate() error {
	el := errors.NewErrorList()

	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			el.Add(fmt.Errorf("parsing registry timeout: %w", err))
		}
	}

	switch c.Type {
	case RegistryTypeNats:
		if c.Url == "" {
			el.Add(fmt.Errorf("registry url is required for nats"))
		}
	case RegistryTypeRedis:
		if c.Addr == "" {
			el.Add(fmt.Errorf("registry addr is required for redis"))
		}
	}

	return el.Err()
}

func (c *RegistryConfig) timeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return registry.DefaultTimeout
	}
	return d
}

func (c *RegistryConfig) buildRegistrar() (registry.Registrar, error) {
	switch c.Type {
	case RegistryTypeNone:
		return registry.NoopRegistrar{}, nil
	case RegistryTypeNats:
		opts := []registry.NatsRegistrarOpt{registry.WithTimeout(c.timeout())}
		if c.Subject != "" {
			opts = append(opts, registry.WithSubject(c.Subject))
		}
		return registry.NewNatsRegistrar(c.Url, opts...), nil
	case RegistryTypeRedis:
		client := redis.NewClient(&redis.Options{
			Addr:         c.Addr,
			Password:     c.Password,
			DB:           c.DB,
			DialTimeout:  c.timeout(),
			ReadTimeout:  c.timeout(),
			WriteTimeout: c.timeout(),
		})
		return registry.NewRedisRegistrar(client, c.Key), nil
	default:
		return nil, fmt.Errorf("unknown registry type: %v", c.Type)
	}
}
