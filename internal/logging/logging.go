// Package logging builds the hclog loggers used across txkv.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// ParseLevel converts a configured level name into an hclog.Level.
func ParseLevel(level string) (hclog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return hclog.Trace, nil
	case "debug":
		return hclog.Debug, nil
	case "info", "":
		return hclog.Info, nil
	case "warning", "warn":
		return hclog.Warn, nil
	case "error":
		return hclog.Error, nil
	case "off":
		return hclog.Off, nil
	default:
		return hclog.NoLevel, fmt.Errorf("invalid log level: %s. must be one of trace, debug, info, warn, error, off", level)
	}
}

// New creates a named logger writing to w (stderr when nil).
func New(name, level string, w io.Writer) (hclog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  lvl,
		Output: w,
	}), nil
}
