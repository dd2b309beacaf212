package config

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Runtime holds process settings read from the environment.
type Runtime struct {
	DebounceDelay time.Duration `env:"REDUXEVENTS_DEBOUNCE_DELAY" envDefault:"300ms"`
	SnapshotPath  string        `env:"REDUXEVENTS_SNAPSHOT_PATH"  envDefault:":memory:"`
	LogLevel      string        `env:"REDUXEVENTS_LOG_LEVEL"      envDefault:"info"`
}

// LoadRuntime reads Runtime from the environment.
func LoadRuntime() (Runtime, error) {
	var rt Runtime
	if err := env.Parse(&rt); err != nil {
		return Runtime{}, fmt.Errorf("parse env: %w", err)
	}
	return rt, nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (r Runtime) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(r.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

// Logger returns a JSON logger writing to w at the configured level.
// An invalid level falls back to info.
func (r Runtime) Logger(w io.Writer) *slog.Logger {
	level, _ := r.Level()
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Apply fills in DebounceDelay for debounced declarations that leave it unset.
func (r Runtime) Apply(decls []Declaration) []Declaration {
	out := make([]Declaration, len(decls))
	for i, d := range decls {
		if d.Debounce && d.DebounceDelay == 0 {
			d.DebounceDelay = r.DebounceDelay
		}
		out[i] = d
	}
	return out
}
