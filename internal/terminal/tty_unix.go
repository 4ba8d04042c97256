//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/muesli/termenv"
	"go.uber.org/multierr"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Kitty keyboard protocol: disambiguate (1) | report event types (2) |
// report all keys as escape codes (8). Terminals without support ignore it.
const (
	kittyPush = "\x1b[>11u"
	kittyPop  = "\x1b[<u"
)

// Terminal is the process TTY in raw mode, used as both Surface and Input.
type Terminal struct {
	*screen

	in      *os.File
	out     *os.File
	state   *term.State
	ctl     *termenv.Output
	buf     [256]byte
	partial []byte
	pending []Event
	closed  bool
}

// Open switches the terminal to raw mode on the alternate screen. Callers
// must Close it to restore the original mode.
func Open() (*Terminal, error) {
	in, out := os.Stdin, os.Stdout
	if !term.IsTerminal(int(in.Fd())) || !term.IsTerminal(int(out.Fd())) {
		return nil, ErrNotTerminal
	}
	profile := termenv.EnvColorProfile()
	state, err := term.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to enable raw mode: %w", err)
	}
	t := &Terminal{
		screen: newScreen(out, profile),
		in:     in,
		out:    out,
		state:  state,
		ctl:    termenv.NewOutput(out, termenv.WithProfile(profile)),
	}
	t.ctl.AltScreen()
	t.ctl.HideCursor()
	if _, err := out.WriteString(kittyPush); err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to configure keyboard: %w", err), t.Close())
	}
	return t, nil
}

// Close restores the terminal. It is safe to call more than once.
func (t *Terminal) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	_, err := t.out.WriteString(kittyPop)
	t.ctl.ShowCursor()
	t.ctl.ExitAltScreen()
	if rerr := term.Restore(int(t.in.Fd()), t.state); rerr != nil {
		err = multierr.Append(err, fmt.Errorf("failed to restore terminal: %w", rerr))
	}
	return err
}

// Size reports the terminal dimensions in cells.
func (t *Terminal) Size() (int, int, error) {
	cols, rows, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read terminal size: %w", err)
	}
	return cols, rows, nil
}

// Poll waits up to timeout for input. A negative timeout waits indefinitely.
func (t *Terminal) Poll(timeout time.Duration) (bool, error) {
	if len(t.pending) > 0 {
		return true, nil
	}
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}
	fds := []unix.PollFd{{Fd: int32(t.in.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, ms)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, fmt.Errorf("failed to poll input: %w", err)
	}
	if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
		return false, nil
	}
	read, err := t.in.Read(t.buf[:])
	if err != nil {
		return false, fmt.Errorf("failed to read input: %w", err)
	}
	data := append(t.partial, t.buf[:read]...)
	events, consumed := ParseKeys(data)
	t.partial = append([]byte(nil), data[consumed:]...)
	t.pending = append(t.pending, events...)
	return len(t.pending) > 0, nil
}

// Read returns the next decoded event.
func (t *Terminal) Read() (Event, error) {
	for len(t.pending) == 0 {
		if _, err := t.Poll(-1); err != nil {
			return Event{}, err
		}
	}
	ev := t.pending[0]
	t.pending = t.pending[1:]
	return ev, nil
}
