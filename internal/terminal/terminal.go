package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// Escape sequences emitted by the ANSI backend.
const (
	escClearScreen = "\x1b[2J"
	escClearLine   = "\x1b[2K"
	escHideCursor  = "\x1b[?25l"
	escShowCursor  = "\x1b[?25h"
)

// Size is a snapshot of the terminal dimensions in character cells.
type Size struct {
	Width  int
	Height int
}

// DefaultSize returns the size reported when the terminal dimensions
// cannot be queried and no other fallback is configured.
func DefaultSize() Size {
	return Size{Width: 80, Height: 24}
}

// Position is a 0-based column and row on the editor canvas.
type Position struct {
	X int
	Y int
}

// Terminal is the ANSI backend. It owns raw mode on the input file and
// buffers every escape sequence until Flush.
type Terminal struct {
	in       *os.File
	out      *bufio.Writer
	rawOut   io.Writer // unbuffered, used only by Restore
	outFd    int
	pending  []byte // read but not yet decoded
	oldState *term.State
	fallback Size
	logger   *log.Logger

	restoreOnce sync.Once
	restoreErr  error
}

// New switches the input terminal (stdin unless overridden) to raw mode.
// Callers must defer Restore.
func New(opts ...Option) (*Terminal, error) {
	o := newOptions(opts)
	t := &Terminal{
		in:       o.in,
		out:      bufio.NewWriter(o.out),
		rawOut:   o.out,
		outFd:    int(o.out.Fd()),
		fallback: o.fallback,
		logger:   o.logger,
	}

	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return nil, &Error{Op: "init", Err: ErrNotTerminal}
	}

	// Switch to raw mode.
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, &Error{Op: "init", Err: err}
	}
	t.oldState = oldState
	t.logger.Debug("raw mode enabled", "fd", fd)

	return t, nil
}

// Restore returns the terminal to its original state. Only the first call
// has any effect; later calls return the first result. Restore bypasses the
// frame buffer, so it may run from a signal handler while a frame is being
// drawn; output not yet flushed is dropped.
func (t *Terminal) Restore() error {
	t.restoreOnce.Do(func() {
		if _, err := io.WriteString(t.rawOut, escShowCursor); err != nil {
			t.restoreErr = &Error{Op: "restore", Err: err}
		}
		if t.oldState != nil {
			if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
				t.restoreErr = &Error{Op: "restore", Err: err}
			}
		}
		t.logger.Debug("terminal restored", "err", t.restoreErr)
	})
	return t.restoreErr
}

// Size returns the current terminal dimensions, or the fallback size when
// they cannot be queried.
func (t *Terminal) Size() Size {
	w, h, err := term.GetSize(t.outFd)
	if err != nil {
		t.logger.Debug("size query failed, using fallback",
			"err", err, "width", t.fallback.Width, "height", t.fallback.Height)
		return t.fallback
	}
	return Size{Width: w, Height: h}
}

// ReadKey returns the next key event, blocking until one is available.
// Keys left over from an earlier read are returned first.
func (t *Terminal) ReadKey() (Key, error) {
	if len(t.pending) == 0 {
		buf := make([]byte, 32)
		n, err := t.in.Read(buf)
		if err != nil {
			return Key{}, &Error{Op: "read", Err: err}
		}
		t.pending = buf[:n]
	}

	k, n := parseKey(t.pending)
	t.pending = t.pending[n:]
	return k, nil
}

// ClearScreen erases the whole screen. The cursor does not move.
func (t *Terminal) ClearScreen() { t.out.WriteString(escClearScreen) }

// ClearLine erases the line the cursor is on.
func (t *Terminal) ClearLine() { t.out.WriteString(escClearLine) }

// HideCursor hides the terminal cursor.
func (t *Terminal) HideCursor() { t.out.WriteString(escHideCursor) }

// ShowCursor shows the terminal cursor.
func (t *Terminal) ShowCursor() { t.out.WriteString(escShowCursor) }

// MoveCursor moves the terminal cursor to canvas position p. Terminal rows
// and columns are 1-based.
func (t *Terminal) MoveCursor(p Position) {
	fmt.Fprintf(t.out, "\x1b[%d;%dH", p.Y+1, p.X+1)
}

// Println writes s and moves to the start of the next line. Raw mode turns
// off output post-processing, so the carriage return is explicit.
func (t *Terminal) Println(s string) {
	t.out.WriteString(s)
	t.out.WriteString("\r\n")
}

// Flush writes all buffered output to the terminal. A failed write in any
// earlier output call is reported here.
func (t *Terminal) Flush() error {
	if err := t.out.Flush(); err != nil {
		return &Error{Op: "flush", Err: err}
	}
	return nil
}
