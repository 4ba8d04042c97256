// Package terminal provides the display surface and key input used by the
// timer session.
package terminal

import (
	"errors"
	"time"
)

// ErrNotTerminal is returned when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("stdin and stdout must be a terminal")

// Color is a display color.
type Color int

const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorWhite
)

// Surface receives draw commands for one frame. Nothing is shown until Flush.
type Surface interface {
	Clear()
	MoveTo(x, y int)
	Write(s string)
	SetForeground(c Color)
	SetBackground(c Color)
	ResetStyle()
	Size() (cols, rows int, err error)
	Flush() error
}

// Input is a source of key events.
type Input interface {
	// Poll waits up to timeout and reports whether an event can be read.
	Poll(timeout time.Duration) (bool, error)
	// Read returns the next event, blocking until one is available.
	Read() (Event, error)
}

// EventType distinguishes presses from releases.
type EventType int

const (
	// EventOther covers repeats and anything that is not a press or release.
	EventOther EventType = iota
	EventPress
	EventRelease
)

// Key identifies the key of an event.
type Key int

const (
	KeyUnknown Key = iota
	KeySpace
	KeyEscape
	KeyInterrupt
	KeyRune
)

// Event is a decoded key event. Rune is set for KeyRune.
type Event struct {
	Type EventType
	Key  Key
	Rune rune
}
