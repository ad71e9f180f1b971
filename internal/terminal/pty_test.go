//go:build linux || darwin

package terminal

import (
	"os"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

// openPTY returns the controlling and the terminal side of a fresh pseudo
// terminal sized w×h.
func openPTY(t *testing.T, w, h int) (ptmx, tty *os.File) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		tty.Close()
		ptmx.Close()
	})
	require.NoError(t, pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(h), Cols: uint16(w)}))
	return ptmx, tty
}

func TestPTYRawModeLifecycle(t *testing.T) {
	_, tty := openPTY(t, 80, 24)
	before, err := term.GetState(int(tty.Fd()))
	require.NoError(t, err)

	tm, err := New(WithFiles(tty, tty))
	require.NoError(t, err)
	raw, err := term.GetState(int(tty.Fd()))
	require.NoError(t, err)
	assert.NotEqual(t, before, raw, "New should switch the tty to raw mode")

	require.NoError(t, tm.Restore())
	after, err := term.GetState(int(tty.Fd()))
	require.NoError(t, err)
	assert.Equal(t, before, after, "Restore should bring back the original mode")

	require.NoError(t, tm.Restore())
}

func TestPTYSize(t *testing.T) {
	ptmx, tty := openPTY(t, 80, 24)
	tm, err := New(WithFiles(tty, tty))
	require.NoError(t, err)
	defer tm.Restore()

	assert.Equal(t, Size{Width: 80, Height: 24}, tm.Size())

	// A resize is visible on the very next query.
	require.NoError(t, pty.Setsize(ptmx, &pty.Winsize{Rows: 10, Cols: 30}))
	assert.Equal(t, Size{Width: 30, Height: 10}, tm.Size())
}

func TestPTYReadKey(t *testing.T) {
	ptmx, tty := openPTY(t, 80, 24)
	tm, err := New(WithFiles(tty, tty))
	require.NoError(t, err)
	defer tm.Restore()

	tests := []struct {
		input []byte
		want  Key
	}{
		{[]byte("\x1b[C"), Key{Type: KeyRight}},
		{[]byte("x"), Key{Type: KeyRune, Rune: 'x'}},
		{[]byte{23}, Ctrl('w')},
	}
	for _, tc := range tests {
		_, err := ptmx.Write(tc.input)
		require.NoError(t, err)

		k, err := tm.ReadKey()
		require.NoError(t, err)
		assert.Equal(t, tc.want, k, "input %q", tc.input)
	}
}

func TestPTYReadKeySeveralPerRead(t *testing.T) {
	ptmx, tty := openPTY(t, 80, 24)
	tm, err := New(WithFiles(tty, tty))
	require.NoError(t, err)
	defer tm.Restore()

	// One write, so both keys arrive in a single read.
	_, err = ptmx.Write([]byte("\x1b[C\x17"))
	require.NoError(t, err)

	k, err := tm.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, Key{Type: KeyRight}, k)

	k, err = tm.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, Ctrl('w'), k)
}
