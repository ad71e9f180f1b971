package editor

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/JackWReid/ophelia/internal/terminal"
)

// Render draws one full frame: the farewell line when quitting, otherwise
// the welcome banner and placeholder rows with the cursor placed last. The
// cursor is hidden while drawing.
func (e *Editor) Render() error {
	e.screen.HideCursor()
	e.screen.ClearScreen()
	e.screen.MoveCursor(terminal.Position{})

	if e.state.Quit {
		e.screen.ClearScreen()
		e.screen.Println(farewell)
	} else {
		e.drawRows()
		e.screen.MoveCursor(e.state.Cursor)
	}

	if err := e.screen.Flush(); err != nil {
		return err
	}
	e.screen.ShowCursor()
	return e.screen.Flush()
}

// drawRows leaves the bottom row of the terminal empty.
func (e *Editor) drawRows() {
	size := e.screen.Size()
	for row := 0; row < size.Height-1; row++ {
		e.screen.ClearLine()
		if row == 0 {
			e.screen.Println(WelcomeLine(e.name, e.version, size.Width))
		} else {
			e.screen.Println(placeholder)
		}
	}
}

// WelcomeLine returns the centred "<name> -- version <version>" banner for a
// terminal width columns wide. The leading placeholder glyph takes one
// column of the padding. The result never exceeds width display cells.
func WelcomeLine(name, version string, width int) string {
	if width <= 0 {
		return ""
	}
	msg := fmt.Sprintf("%s -- version %s", name, version)
	padding := max(0, width-runewidth.StringWidth(msg)) / 2
	line := placeholder + strings.Repeat(" ", max(0, padding-1)) + msg
	return runewidth.Truncate(line, width, "")
}
