package editor

import (
	"fmt"
	"io"

	"github.com/JackWReid/ophelia/internal/terminal"
)

// fakeScreen records every output call as an op string and replays queued
// keys. Once the keys run out ReadKey fails with readErr (io.EOF if unset).
type fakeScreen struct {
	size     terminal.Size
	keys     []terminal.Key
	ops      []string
	readErr  error
	flushErr error
}

func newFakeScreen(w, h int, keys ...terminal.Key) *fakeScreen {
	return &fakeScreen{size: terminal.Size{Width: w, Height: h}, keys: keys}
}

func (f *fakeScreen) Size() terminal.Size { return f.size }

func (f *fakeScreen) ReadKey() (terminal.Key, error) {
	if len(f.keys) == 0 {
		if f.readErr != nil {
			return terminal.Key{}, f.readErr
		}
		return terminal.Key{}, &terminal.Error{Op: "read", Err: io.EOF}
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k, nil
}

func (f *fakeScreen) ClearScreen() { f.ops = append(f.ops, "clear") }
func (f *fakeScreen) ClearLine()   { f.ops = append(f.ops, "clearline") }
func (f *fakeScreen) HideCursor()  { f.ops = append(f.ops, "hide") }
func (f *fakeScreen) ShowCursor()  { f.ops = append(f.ops, "show") }

func (f *fakeScreen) MoveCursor(p terminal.Position) {
	f.ops = append(f.ops, fmt.Sprintf("move %d,%d", p.X, p.Y))
}

func (f *fakeScreen) Println(s string) { f.ops = append(f.ops, "print "+s) }

func (f *fakeScreen) Flush() error {
	f.ops = append(f.ops, "flush")
	return f.flushErr
}

// lastFrame returns the ops of the most recent frame, which starts at the
// last "hide".
func (f *fakeScreen) lastFrame() []string {
	for i := len(f.ops) - 1; i >= 0; i-- {
		if f.ops[i] == "hide" {
			return f.ops[i:]
		}
	}
	return nil
}

func (f *fakeScreen) reset() { f.ops = nil }

func repeatKey(k terminal.Key, n int) []terminal.Key {
	keys := make([]terminal.Key, n)
	for i := range keys {
		keys[i] = k
	}
	return keys
}
