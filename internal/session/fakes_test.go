package session

import (
	"context"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuicube/internal/model"
	"github.com/verte-zerg/tuicube/internal/terminal"
)

type drawn struct {
	x, y   int
	text   string
	fg, bg terminal.Color
}

type fakeSurface struct {
	cols, rows int
	x, y       int
	fg, bg     terminal.Color
	pending    []drawn
	frames     [][]drawn
	sizeErr    error
	flushErr   error
}

func newFakeSurface(cols, rows int) *fakeSurface {
	return &fakeSurface{cols: cols, rows: rows}
}

func (f *fakeSurface) Clear() {
	f.pending = nil
}

func (f *fakeSurface) MoveTo(x, y int) {
	f.x, f.y = x, y
}

func (f *fakeSurface) SetForeground(c terminal.Color) {
	f.fg = c
}

func (f *fakeSurface) SetBackground(c terminal.Color) {
	f.bg = c
}

func (f *fakeSurface) ResetStyle() {
	f.fg, f.bg = terminal.ColorDefault, terminal.ColorDefault
}

func (f *fakeSurface) Write(s string) {
	f.pending = append(f.pending, drawn{x: f.x, y: f.y, text: s, fg: f.fg, bg: f.bg})
	f.x += runewidth.StringWidth(s)
}

func (f *fakeSurface) Size() (int, int, error) {
	if f.sizeErr != nil {
		return 0, 0, f.sizeErr
	}
	return f.cols, f.rows, nil
}

func (f *fakeSurface) Flush() error {
	if f.flushErr != nil {
		return f.flushErr
	}
	f.frames = append(f.frames, f.pending)
	f.pending = nil
	return nil
}

func (f *fakeSurface) last() []drawn {
	if len(f.frames) == 0 {
		return nil
	}
	return f.frames[len(f.frames)-1]
}

// screen renders the last frame as text lines with trailing spaces trimmed.
func (f *fakeSurface) screen() []string {
	grid := make([][]rune, f.rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", f.cols))
	}
	for _, d := range f.last() {
		if d.y < 0 || d.y >= f.rows {
			continue
		}
		x := d.x
		for _, r := range d.text {
			if x >= 0 && x < f.cols {
				grid[d.y][x] = r
			}
			x++
		}
	}
	lines := make([]string, f.rows)
	for i, row := range grid {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return lines
}

func (f *fakeSurface) find(text string) (drawn, bool) {
	for _, d := range f.last() {
		if d.text == text {
			return d, true
		}
	}
	return drawn{}, false
}

type advancer interface {
	Advance(time.Duration)
}

type step struct {
	wait time.Duration
	ev   *terminal.Event
}

// scriptedInput replays steps, advancing the clock before each poll result.
// Once the script is exhausted polls time out.
type scriptedInput struct {
	clock   advancer
	steps   []step
	pending *terminal.Event
	pollErr error
	readErr error
}

func (in *scriptedInput) Poll(timeout time.Duration) (bool, error) {
	if in.pollErr != nil {
		return false, in.pollErr
	}
	if len(in.steps) == 0 {
		in.clock.Advance(timeout)
		return false, nil
	}
	st := in.steps[0]
	in.steps = in.steps[1:]
	in.clock.Advance(st.wait)
	if st.ev == nil {
		return false, nil
	}
	in.pending = st.ev
	return true, nil
}

func (in *scriptedInput) Read() (terminal.Event, error) {
	if in.readErr != nil {
		return terminal.Event{}, in.readErr
	}
	ev := *in.pending
	in.pending = nil
	return ev, nil
}

func press(k terminal.Key) *terminal.Event {
	return &terminal.Event{Type: terminal.EventPress, Key: k}
}

func release(k terminal.Key) *terminal.Event {
	return &terminal.Event{Type: terminal.EventRelease, Key: k}
}

func at(wait time.Duration, ev *terminal.Event) step {
	return step{wait: wait, ev: ev}
}

type memoryRecorder struct {
	solves []model.Solve
	err    error
}

func (r *memoryRecorder) Append(_ context.Context, solve model.Solve) error {
	if r.err != nil {
		return r.err
	}
	r.solves = append(r.solves, solve)
	return nil
}
