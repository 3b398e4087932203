// Package logging configures the global zerolog logger the way every binary
// in this repo wants it.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup routes the global logger to a console writer on w (stdout when nil)
// at the named level. An unknown level falls back to info and is reported.
func Setup(w io.Writer, level string) error {
	if w == nil {
		w = os.Stdout
	}
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// Discard silences the global logger. Full-screen front-ends use it when no
// log file was asked for.
func Discard() {
	log.Logger = zerolog.New(io.Discard)
	zerolog.SetGlobalLevel(zerolog.Disabled)
}
