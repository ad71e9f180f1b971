package terminal

import "unicode/utf8"

// KeyType identifies the kind of key event.
type KeyType int

// Key types.
const (
	KeyRune      KeyType = iota // Printable character
	KeyCtrl                     // Ctrl+letter, Rune holds the lower-case letter
	KeyEscape                   // Escape key (standalone)
	KeyEnter                    // Enter/Return
	KeyTab                      // Tab
	KeyBackspace                // Backspace/Delete-backward
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyHome                     // Home
	KeyEnd                      // End
	KeyDelete                   // Delete/Forward-delete
	KeyPgUp                     // Page Up
	KeyPgDn                     // Page Down
	KeyUnknown                  // Unrecognised sequence
)

var keyNames = map[KeyType]string{
	KeyRune:      "rune",
	KeyCtrl:      "ctrl",
	KeyEscape:    "esc",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyDelete:    "delete",
	KeyPgUp:      "pgup",
	KeyPgDn:      "pgdn",
	KeyUnknown:   "unknown",
}

func (t KeyType) String() string {
	if name, ok := keyNames[t]; ok {
		return name
	}
	return "unknown"
}

// Key is a single decoded key event.
type Key struct {
	Type KeyType
	Rune rune
}

// Ctrl returns the key event for Ctrl held together with letter r.
func Ctrl(r rune) Key {
	return Key{Type: KeyCtrl, Rune: r}
}

// IsArrow reports whether k is one of the four arrow keys.
func (k Key) IsArrow() bool {
	switch k.Type {
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		return true
	}
	return false
}

func (k Key) String() string {
	switch k.Type {
	case KeyRune:
		return string(k.Rune)
	case KeyCtrl:
		return "ctrl+" + string(k.Rune)
	}
	return k.Type.String()
}

// parseKey decodes the first key in buf and returns it with the number of
// bytes it used. A read can carry several keys (key repeat, paste), so the
// caller decodes the rest from buf[n:].
func parseKey(buf []byte) (Key, int) {
	if len(buf) == 0 {
		return Key{Type: KeyUnknown}, 0
	}

	b := buf[0]
	switch {
	case b == 27:
		return parseEscape(buf)
	case b == 13:
		return Key{Type: KeyEnter}, 1
	case b == 9:
		return Key{Type: KeyTab}, 1
	case b == 127 || b == 8:
		return Key{Type: KeyBackspace}, 1
	case b >= 1 && b <= 26:
		return Ctrl(rune('a' + b - 1)), 1
	case b < 32:
		return Key{Type: KeyUnknown}, 1
	case b < 127:
		return Key{Type: KeyRune, Rune: rune(b)}, 1
	}

	// Multi-byte UTF-8 character.
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return Key{Type: KeyUnknown}, size
	}
	return Key{Type: KeyRune, Rune: r}, size
}

// parseEscape decodes a key starting with ESC. SS3 (ESC O) arrives when the
// terminal is in application cursor mode. An ESC that does not start a
// sequence is the escape key on its own.
func parseEscape(buf []byte) (Key, int) {
	if len(buf) < 3 || (buf[1] != '[' && buf[1] != 'O') {
		return Key{Type: KeyEscape}, 1
	}

	switch buf[2] {
	case 'A':
		return Key{Type: KeyUp}, 3
	case 'B':
		return Key{Type: KeyDown}, 3
	case 'C':
		return Key{Type: KeyRight}, 3
	case 'D':
		return Key{Type: KeyLeft}, 3
	case 'H':
		return Key{Type: KeyHome}, 3
	case 'F':
		return Key{Type: KeyEnd}, 3
	}
	if buf[1] == 'O' {
		return Key{Type: KeyUnknown}, 3
	}

	// CSI: parameter bytes up to a final byte in 0x40-0x7E.
	end := 2
	for end < len(buf) && (buf[end] < 0x40 || buf[end] > 0x7E) {
		end++
	}
	if end == len(buf) {
		return Key{Type: KeyUnknown}, len(buf)
	}
	n := end + 1

	// ESC [ <n> ~
	if n == 4 && buf[3] == '~' {
		switch buf[2] {
		case '1', '7':
			return Key{Type: KeyHome}, n
		case '3':
			return Key{Type: KeyDelete}, n
		case '4', '8':
			return Key{Type: KeyEnd}, n
		case '5':
			return Key{Type: KeyPgUp}, n
		case '6':
			return Key{Type: KeyPgDn}, n
		}
	}
	return Key{Type: KeyUnknown}, n
}
