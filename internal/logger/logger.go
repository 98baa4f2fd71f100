// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type stackTracer interface{ StackTrace() pkgerrors.StackTrace }

// New returns a logger writing to w. Console format is human readable;
// anything else is JSON. Error events logged with .Stack() carry a stack trace.
func New(w io.Writer, level, format, service string) zerolog.Logger {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if strings.EqualFold(format, FormatConsole) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).Level(lvl).With().Timestamp()
	if service != "" {
		ctx = ctx.Str("service", service)
	}
	return ctx.Logger()
}

// Setup installs the global logger. Console output goes to stderr and JSON
// to stdout.
func Setup(level, format, service string) zerolog.Logger {
	var out io.Writer = os.Stdout
	if strings.EqualFold(format, FormatConsole) {
		out = os.Stderr
	}
	l := New(out, level, format, service)
	log.Logger = l
	return l
}
