// Package logging builds the process logger. The terminal is in raw mode
// while the editor runs, so logs go to a file or nowhere, never to the
// screen.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// TimeFormat is the timestamp layout used in log files.
const TimeFormat = "2006-01-02 15:04:05.000000"

// Open returns a logger writing to path at the named level, and a function
// that closes the file. An empty path discards all output.
func Open(path, level string) (*log.Logger, func() error, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", level, err)
	}

	var w io.Writer = io.Discard
	closer := func() error { return nil }
	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		w = f
		closer = f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "ophelia",
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
	})
	return logger, closer, nil
}
