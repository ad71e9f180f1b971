package terminal

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

// Option configures a backend.
type Option func(*options)

type options struct {
	in       *os.File
	out      *os.File
	fallback Size
	logger   *log.Logger
	screen   tcell.Screen
}

func newOptions(opts []Option) *options {
	o := &options{
		in:       os.Stdin,
		out:      os.Stdout,
		fallback: DefaultSize(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFiles overrides the input and output files of the ANSI backend.
func WithFiles(in, out *os.File) Option {
	return func(o *options) {
		o.in = in
		o.out = out
	}
}

// WithScreen makes the tcell backend drive s instead of opening the
// controlling terminal.
func WithScreen(s tcell.Screen) Option {
	return func(o *options) {
		o.screen = s
	}
}

// WithFallbackSize sets the size reported when the terminal cannot be queried.
func WithFallbackSize(s Size) Option {
	return func(o *options) {
		o.fallback = s
	}
}

// WithLogger sets the logger used for backend diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
