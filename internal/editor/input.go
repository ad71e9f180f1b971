package editor

import "github.com/JackWReid/ophelia/internal/terminal"

// HandleKey applies one key event. Ctrl+W quits, arrows move the cursor and
// every other key is ignored.
func (e *Editor) HandleKey(k terminal.Key) {
	switch {
	case k == terminal.Ctrl('w'):
		e.state.Quit = true
		e.logger.Debug("quit requested")
	case k.IsArrow():
		e.moveCursor(k.Type)
	}
}

// moveCursor bounds the cursor to a canvas twice the size of the terminal
// in each direction, measured at the time of the move so a resize applies
// immediately. Nothing scrolls yet, so the cursor can leave the visible
// area; the doubled canvas is a placeholder for scrolling.
func (e *Editor) moveCursor(dir terminal.KeyType) {
	p := e.state.Cursor
	size := e.screen.Size()
	maxX := 2 * max(0, size.Width-1)
	maxY := 2 * max(0, size.Height-1)

	switch dir {
	case terminal.KeyUp:
		p.Y = max(0, p.Y-1)
	case terminal.KeyDown:
		if p.Y < maxY {
			p.Y++
		}
	case terminal.KeyLeft:
		p.X = max(0, p.X-1)
	case terminal.KeyRight:
		if p.X < maxX {
			p.X++
		}
	}
	e.state.Cursor = p
}
