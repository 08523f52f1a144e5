package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pixil98/go-errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogConfig struct {
	Level  string `json:"level,omitempty"`
	Format string `json:"format,omitempty"` // text or json

	// File, when set, sends logs to a rotated file instead of stderr.
	File       string `json:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty"`
}

func (c *LogConfig) validate() error {
	el := errors.NewErrorList()

	if _, err := c.level(); err != nil {
		el.Add(err)
	}
	switch c.Format {
	case "", "text", "json":
	default:
		el.Add(fmt.Errorf("unknown log format: %s", c.Format))
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		el.Add(fmt.Errorf("log rotation limits must not be negative"))
	}

	return el.Err()
}

func (c *LogConfig) level() (slog.Level, error) {
	var lvl slog.Level
	if c.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return lvl, fmt.Errorf("parsing log level: %w", err)
	}
	return lvl, nil
}

func (c *LogConfig) writer() io.Writer {
	if c.File == "" {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   c.File,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAgeDays,
	}
}

func (c *LogConfig) buildHandler(w io.Writer) (slog.Handler, error) {
	lvl, err := c.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if c.Format == "json" {
		return slog.NewJSONHandler(w, opts), nil
	}
	return slog.NewTextHandler(w, opts), nil
}

// setup installs the configured logger as the slog default.
func (c *LogConfig) setup() error {
	h, err := c.buildHandler(c.writer())
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(h))
	return nil
}
