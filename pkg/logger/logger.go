// Package logger wires up the process-wide zerolog logger.
//
// Call Setup once from main before anything logs; components receive the
// returned logger (or a derived sub-logger) through their constructors.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.Mutex
	root zerolog.Logger
	set  bool
)

// Setup configures and stores the root logger. level accepts trace, debug,
// info, warn or error; anything else falls back to info. When pretty is true
// output is rendered for human consumption instead of JSON. The first call
// wins; later calls return the already-configured logger.
func Setup(level string, pretty bool, w io.Writer) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if set {
		return root
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	if w == nil {
		w = os.Stdout
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	lvl := levelFrom(level)
	zerolog.SetGlobalLevel(lvl)

	root = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	set = true
	return root
}

// Root returns the configured root logger, configuring a default one on
// demand so library code never logs through a zero-value logger.
func Root() zerolog.Logger {
	mu.Lock()
	configured := set
	l := root
	mu.Unlock()
	if configured {
		return l
	}
	return Setup("info", false, nil)
}

// reset is used by tests to rebuild the logger between cases.
func reset() {
	mu.Lock()
	root = zerolog.Logger{}
	set = false
	mu.Unlock()
}

func levelFrom(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
