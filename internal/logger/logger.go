// Package logger provides the configured zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"

	"github.com/zhouzirui/folio/backend/internal/config"
)

type stackTracer interface{ StackTrace() pkgerrors.StackTrace }

// New returns a logger writing to w at the configured level. Call sites
// should use .Stack() on error events to include stacks.
func New(cfg config.LoggingConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}

	return zerolog.New(w).Level(level).With().
		Str("service", "folio-api").
		Timestamp().
		Logger(), nil
}

// NewStdout is New writing to stdout.
func NewStdout(cfg config.LoggingConfig) (zerolog.Logger, error) {
	return New(cfg, os.Stdout)
}
