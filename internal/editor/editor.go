package editor

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/JackWReid/ophelia/internal/terminal"
)

const (
	// DefaultName is the product name shown in the welcome banner.
	DefaultName = "Ophelia text editor"

	farewell    = "bye!."
	placeholder = "~"
)

// Screen is the terminal capability set the editor draws and reads through.
// Output calls are buffered by the implementation until Flush.
type Screen interface {
	Size() terminal.Size
	ReadKey() (terminal.Key, error)
	ClearScreen()
	ClearLine()
	HideCursor()
	ShowCursor()
	MoveCursor(terminal.Position)
	Println(string)
	Flush() error
}

// State is everything the editor knows between frames.
type State struct {
	Quit   bool
	Cursor terminal.Position
}

// Editor owns the state and drives the render/read/update cycle.
type Editor struct {
	screen  Screen
	state   State
	name    string
	version string
	logger  *log.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithName sets the product name shown in the welcome banner.
func WithName(name string) Option {
	return func(e *Editor) { e.name = name }
}

// WithVersion sets the version shown in the welcome banner.
func WithVersion(version string) Option {
	return func(e *Editor) { e.version = version }
}

// WithLogger sets the logger. Logs must never go to the screen itself.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New returns an editor with the cursor at the canvas origin, drawing on s.
func New(s Screen, opts ...Option) *Editor {
	e := &Editor{
		screen:  s,
		name:    DefaultName,
		version: "dev",
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns a copy of the current editor state.
func (e *Editor) State() State {
	return e.state
}

// Run renders a frame, waits for one key and applies it, until the user
// quits. The farewell frame is the last thing drawn. Any render or read
// failure ends the loop and is returned; restoring the terminal is left to
// whoever owns the screen.
func (e *Editor) Run() error {
	for {
		if err := e.Render(); err != nil {
			return e.fail("render", err)
		}
		if e.state.Quit {
			e.logger.Info("quit")
			return nil
		}

		key, err := e.screen.ReadKey()
		if err != nil {
			return e.fail("read key", err)
		}
		e.HandleKey(key)
	}
}

func (e *Editor) fail(phase string, err error) error {
	e.logger.Error("terminal failure", "phase", phase, "err", err)
	// Best effort: the screen may be the thing that is broken.
	e.screen.ClearScreen()
	e.screen.MoveCursor(terminal.Position{})
	_ = e.screen.Flush()
	return fmt.Errorf("%s: %w", phase, err)
}
