package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// NewLogger returns a slog logger writing through a charmbracelet/log handler.
// Warnings are shown by default, -v enables info and -vv debug. Quiet shows errors only.
func NewLogger(w io.Writer, g GlobalOptions) *slog.Logger {
	level := log.WarnLevel
	switch {
	case g.Quiet:
		level = log.ErrorLevel
	case g.Verbose >= 2:
		level = log.DebugLevel
	case g.Verbose == 1:
		level = log.InfoLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		Prefix: "apkmeta",
		Level:  level,
	})
	if g.NoColor {
		handler.SetColorProfile(termenv.Ascii)
	}
	return slog.New(handler)
}
