package terminal

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	esc = 0x1b
	etx = 0x03

	kittyModCtrl = 4
	// kitty encodes functional keys (modifiers, keypad, media) in the private use area.
	kittyFunctionalBase = 57344
)

// ParseKeys decodes key events from raw terminal input. It understands the
// kitty keyboard protocol (CSI code;mods:event u) and legacy bytes. The
// second result is how many bytes were consumed; an incomplete trailing
// escape sequence is left for the next read.
func ParseKeys(b []byte) ([]Event, int) {
	var events []Event
	i := 0
	for i < len(b) {
		switch c := b[i]; {
		case c == esc:
			ev, n, ok := parseEscape(b[i:])
			if !ok {
				return events, i
			}
			events = append(events, ev)
			i += n
		case c == etx:
			events = append(events, Event{Type: EventPress, Key: KeyInterrupt})
			i++
		case c == ' ':
			events = append(events, Event{Type: EventPress, Key: KeySpace})
			i++
		case c < 0x20 || c == 0x7f:
			events = append(events, Event{Type: EventPress, Key: KeyUnknown})
			i++
		default:
			if !utf8.FullRune(b[i:]) {
				return events, i
			}
			r, size := utf8.DecodeRune(b[i:])
			events = append(events, Event{Type: EventPress, Key: KeyRune, Rune: r})
			i += size
		}
	}
	return events, i
}

func parseEscape(b []byte) (Event, int, bool) {
	if len(b) == 1 {
		return Event{Type: EventPress, Key: KeyEscape}, 1, true
	}
	switch b[1] {
	case '[':
		for j := 2; j < len(b); j++ {
			if b[j] >= 0x40 && b[j] <= 0x7e {
				if b[j] == 'u' {
					return parseKitty(string(b[2:j])), j + 1, true
				}
				return Event{Type: EventOther}, j + 1, true
			}
		}
		return Event{}, 0, false
	case 'O':
		if len(b) < 3 {
			return Event{}, 0, false
		}
		return Event{Type: EventOther}, 3, true
	case esc:
		return Event{Type: EventPress, Key: KeyEscape}, 1, true
	default:
		// Alt+key arrives as ESC followed by the key.
		if !utf8.FullRune(b[1:]) {
			return Event{}, 0, false
		}
		_, size := utf8.DecodeRune(b[1:])
		return Event{Type: EventOther}, 1 + size, true
	}
}

// parseKitty decodes the parameters of a CSI ... u sequence.
func parseKitty(params string) Event {
	fields := strings.Split(params, ";")
	code := atoiDefault(strings.Split(fields[0], ":")[0], 0)
	mods, kind := 1, 1
	if len(fields) > 1 {
		parts := strings.Split(fields[1], ":")
		mods = atoiDefault(parts[0], 1)
		if len(parts) > 1 {
			kind = atoiDefault(parts[1], 1)
		}
	}

	ev := Event{Type: EventPress}
	switch kind {
	case 2:
		ev.Type = EventOther
	case 3:
		ev.Type = EventRelease
	}

	ctrl := (mods-1)&kittyModCtrl != 0
	switch {
	case code == ' ':
		ev.Key = KeySpace
	case code == esc:
		ev.Key = KeyEscape
	case ctrl && (code == 'c' || code == 'C'):
		ev.Key = KeyInterrupt
	case code <= 0 || code >= kittyFunctionalBase:
		ev.Key = KeyUnknown
	default:
		ev.Key = KeyRune
		ev.Rune = rune(code)
	}
	return ev
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
