package driver

import (
	"context"
	"time"
)

const (
	DefaultTickLength = time.Minute
)

// Ticker is anything that wants to run on the driver's clock.
type Ticker interface {
	Tick(context.Context) error
}

type Driver struct {
	tickLength time.Duration
	tickers    []Ticker
}

func NewDriver(tickers []Ticker, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		tickers:    tickers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *Driver) Tick(ctx context.Context) error {
	for _, t := range d.tickers {
		if err := t.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
