package terminal

import (
	"io"
	"sync"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Tcell is a backend that draws through a tcell.Screen. Output calls move a
// pen over tcell's cell buffer the way the ANSI backend moves the terminal
// cursor, so both backends render a frame identically.
//
// tcell draws on the alternate screen, which Fini throws away. Restore prints
// the text of the last flushed frame to the output afterwards so that, as
// with the ANSI backend, it stays on the terminal once the editor exits.
type Tcell struct {
	screen   tcell.Screen
	out      io.Writer
	pen      Position
	hidden   bool
	fallback Size
	logger   *log.Logger

	lines []string // printed since the last ClearScreen

	mu    sync.Mutex
	shown []string // lines of the last flushed frame

	finiOnce sync.Once
	finiErr  error
}

// NewTcell initializes a tcell screen (the controlling terminal unless
// WithScreen is given), which puts it in raw mode. Callers must defer Restore.
func NewTcell(opts ...Option) (*Tcell, error) {
	o := newOptions(opts)
	s := o.screen
	if s == nil {
		var err error
		if s, err = tcell.NewScreen(); err != nil {
			return nil, &Error{Op: "init", Err: err}
		}
	}
	if err := s.Init(); err != nil {
		return nil, &Error{Op: "init", Err: err}
	}
	o.logger.Debug("tcell screen initialized")

	return &Tcell{
		screen:   s,
		out:      o.out,
		fallback: o.fallback,
		logger:   o.logger,
	}, nil
}

// Restore shuts the screen down, restores the terminal and replays the last
// flushed frame on the main screen. Safe to call multiple times.
func (t *Tcell) Restore() error {
	t.finiOnce.Do(func() {
		t.screen.Fini()
		t.logger.Debug("tcell screen finalized")

		t.mu.Lock()
		shown := append([]string(nil), t.shown...)
		t.mu.Unlock()
		for _, line := range shown {
			if _, err := io.WriteString(t.out, line+"\n"); err != nil {
				t.finiErr = &Error{Op: "restore", Err: err}
				return
			}
		}
	})
	return t.finiErr
}

// Size returns the screen dimensions, or the fallback size when the screen
// reports none.
func (t *Tcell) Size() Size {
	w, h := t.screen.Size()
	if w <= 0 || h <= 0 {
		t.logger.Debug("screen reported no size, using fallback", "width", w, "height", h)
		return t.fallback
	}
	return Size{Width: w, Height: h}
}

// ReadKey blocks until the next key event. Resize events resynchronize the
// screen and are otherwise dropped; the next frame picks up the new size.
func (t *Tcell) ReadKey() (Key, error) {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return Key{}, &Error{Op: "read", Err: ErrClosed}
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			return convertKey(ev), nil
		}
	}
}

// ClearScreen blanks every cell. The pen does not move.
func (t *Tcell) ClearScreen() {
	t.lines = t.lines[:0]
	t.screen.Clear()
}

// ClearLine blanks the row under the pen.
func (t *Tcell) ClearLine() {
	w, _ := t.screen.Size()
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, t.pen.Y, ' ', nil, tcell.StyleDefault)
	}
}

// HideCursor hides the cursor.
func (t *Tcell) HideCursor() {
	t.hidden = true
	t.screen.HideCursor()
}

// ShowCursor shows the cursor at the pen.
func (t *Tcell) ShowCursor() {
	t.hidden = false
	t.screen.ShowCursor(t.pen.X, t.pen.Y)
}

// MoveCursor moves the pen, and the cursor with it when it is visible.
func (t *Tcell) MoveCursor(p Position) {
	t.pen = p
	if !t.hidden {
		t.screen.ShowCursor(p.X, p.Y)
	}
}

// Println draws s at the pen and moves the pen to the start of the next row.
// Cells past the right edge are dropped by tcell.
func (t *Tcell) Println(s string) {
	x := t.pen.X
	for _, r := range s {
		t.screen.SetContent(x, t.pen.Y, r, nil, tcell.StyleDefault)
		x += runewidth.RuneWidth(r)
	}
	t.lines = append(t.lines, s)
	t.pen = Position{X: 0, Y: t.pen.Y + 1}
}

// Flush makes the drawn cells visible.
func (t *Tcell) Flush() error {
	t.screen.Show()
	t.mu.Lock()
	t.shown = append(t.shown[:0], t.lines...)
	t.mu.Unlock()
	return nil
}

func convertKey(ev *tcell.EventKey) Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return Key{Type: KeyUp}
	case tcell.KeyDown:
		return Key{Type: KeyDown}
	case tcell.KeyLeft:
		return Key{Type: KeyLeft}
	case tcell.KeyRight:
		return Key{Type: KeyRight}
	case tcell.KeyHome:
		return Key{Type: KeyHome}
	case tcell.KeyEnd:
		return Key{Type: KeyEnd}
	case tcell.KeyDelete:
		return Key{Type: KeyDelete}
	case tcell.KeyPgUp:
		return Key{Type: KeyPgUp}
	case tcell.KeyPgDn:
		return Key{Type: KeyPgDn}
	case tcell.KeyEnter:
		return Key{Type: KeyEnter}
	case tcell.KeyTab:
		return Key{Type: KeyTab}
	case tcell.KeyEscape:
		return Key{Type: KeyEscape}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Key{Type: KeyBackspace}
	case tcell.KeyRune:
		// Some terminals report Ctrl+letter as a rune with the Ctrl modifier.
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return Ctrl(unicode.ToLower(ev.Rune()))
		}
		return Key{Type: KeyRune, Rune: ev.Rune()}
	}

	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return Ctrl(rune('a' + k - tcell.KeyCtrlA))
	}
	return Key{Type: KeyUnknown}
}
