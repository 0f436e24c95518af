// Package logging builds the application logger.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New returns a colorized, human-friendly logger writing to w. Debug lowers
// the level and reports call sites for stream diagnostics.
func New(debug bool, w io.Writer) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		ReportCaller:    debug,
	})
}
