package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger builds a logger writing to w at the configured level.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: Log.Timestamps,
		Prefix:          prefix,
		Level:           level,
	})
}
