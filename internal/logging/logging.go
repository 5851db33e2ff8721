// Package logging builds zerolog loggers for diagnostics on stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level written.
	Level zerolog.Level
	// Output defaults to os.Stderr.
	Output io.Writer
	// Pretty enables human-readable console output.
	Pretty bool
	// NoColor disables colour in pretty output.
	NoColor bool
	// TimeFormat defaults to time.Kitchen in pretty mode and RFC3339 otherwise.
	TimeFormat string
}

// DefaultConfig logs warnings and above, pretty-printed to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  zerolog.WarnLevel,
		Output: os.Stderr,
		Pretty: true,
	}
}

// New returns a logger for cfg. No global state is touched.
func New(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	output := cfg.Output
	if cfg.Pretty {
		format := cfg.TimeFormat
		if format == "" {
			format = time.Kitchen
		}
		output = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			NoColor:    cfg.NoColor,
			TimeFormat: format,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel parses a level name case-insensitively. "warning" is accepted
// as an alias of "warn".
func ParseLevel(level string) (zerolog.Level, error) {
	s := strings.ToLower(strings.TrimSpace(level))
	switch s {
	case "":
		return zerolog.WarnLevel, nil
	case "warning":
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
	}
	return lvl, nil
}
