package terminal

import "errors"

var (
	// ErrNotTerminal is returned when the input is not attached to a terminal.
	ErrNotTerminal = errors.New("not a terminal")

	// ErrClosed is returned by ReadKey once the screen has been shut down.
	ErrClosed = errors.New("screen closed")
)

// Error is the single error kind reported by the terminal backends. Op names
// the failing operation: "init", "restore", "read" or "flush".
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "terminal " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTerminalError reports whether any error in err's chain is an *Error.
func IsTerminalError(err error) bool {
	var te *Error
	return errors.As(err, &te)
}
