//go:build !unix

package terminal

import (
	"errors"
	"time"
)

var errUnsupported = errors.New("the timer needs a unix terminal")

// Terminal is unavailable on this platform.
type Terminal struct {
	*screen
}

// Open always fails on this platform.
func Open() (*Terminal, error) {
	return nil, errUnsupported
}

// Close is a no-op.
func (t *Terminal) Close() error { return nil }

// Size always fails on this platform.
func (t *Terminal) Size() (int, int, error) { return 0, 0, errUnsupported }

// Poll always fails on this platform.
func (t *Terminal) Poll(time.Duration) (bool, error) { return false, errUnsupported }

// Read always fails on this platform.
func (t *Terminal) Read() (Event, error) { return Event{}, errUnsupported }
