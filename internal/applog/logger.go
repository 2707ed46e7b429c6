// Package applog provides the process-wide structured logger used by the
// shell, the persistence layer and the planner. It wraps zerolog rather
// than reaching for the standard library's log package, matching the
// logging idiom elsewhere in the wider example corpus. schema, storage,
// sqlfront and executor do no I/O and no caching worth observing, so they
// never import it; persistence (load/save/corruption) and planner (cache
// hits/misses) accept a zerolog.Logger through their constructors instead
// of reaching for a package-level global, so they stay testable without
// touching global log state.
package applog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds a console-formatted logger at the given level, suitable for an
// interactive terminal session. levelName is parsed case-insensitively;
// an unrecognized level falls back to info.
func New(levelName string, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if out == nil {
		out = os.Stderr
	}
	writer := zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// NoOp returns a logger that discards everything, for use in tests.
func NoOp() zerolog.Logger {
	return zerolog.Nop()
}
