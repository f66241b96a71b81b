package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Name is the name of the application the logger is created for.
type Name string

// Config is the configuration for a logger.
type Config struct {
	// Name is added to every record as the "app" attribute.
	Name Name

	// Level is the minimum level that will be written.
	Level slog.Level

	// JSON switches the handler from text to JSON.
	JSON bool
}

// NewConfig creates a logging config for the given application name. The level and format are read from the
// LOG_LEVEL and LOG_FORMAT environment variables.
func NewConfig(name Name) *Config {
	c := &Config{
		Name:  name,
		Level: slog.LevelInfo,
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(lvl)); err == nil {
			c.Level = l
		}
	}

	c.JSON = strings.EqualFold(os.Getenv(EnvLogFormat), "json")
	return c
}

// CommonLogger creates the logger used across the application and sets it as the slog default.
func CommonLogger(c *Config) (*slog.Logger, error) {
	if c == nil {
		return nil, fmt.Errorf("logging config is nil")
	}

	opts := &slog.HandlerOptions{
		AddSource: c.Level == slog.LevelDebug,
		Level:     c.Level,
	}

	var h slog.Handler
	if c.JSON {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	l := slog.New(h).With(slog.String(KeyApp, string(c.Name)))
	slog.SetDefault(l)
	return l, nil
}
