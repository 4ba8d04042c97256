package terminal

import (
	"bytes"
	"io"

	"github.com/muesli/termenv"
)

// screen buffers one frame of draw commands and writes it out in a single
// write on Flush.
type screen struct {
	dst    io.Writer
	frame  bytes.Buffer
	output *termenv.Output
	fg     Color
	bg     Color
}

func newScreen(dst io.Writer, profile termenv.Profile) *screen {
	s := &screen{dst: dst}
	s.output = termenv.NewOutput(&s.frame, termenv.WithProfile(profile))
	return s
}

func (s *screen) Clear() {
	s.output.ClearScreen()
}

// MoveTo positions the cursor at zero-based column x and row y.
func (s *screen) MoveTo(x, y int) {
	s.output.MoveCursor(max(y, 0)+1, max(x, 0)+1)
}

func (s *screen) Write(text string) {
	if s.fg == ColorDefault && s.bg == ColorDefault {
		s.frame.WriteString(text)
		return
	}
	style := s.output.String(text)
	if c, ok := ansiColor(s.fg); ok {
		style = style.Foreground(c)
	}
	if c, ok := ansiColor(s.bg); ok {
		style = style.Background(c)
	}
	s.frame.WriteString(style.String())
}

func (s *screen) SetForeground(c Color) {
	s.fg = c
}

func (s *screen) SetBackground(c Color) {
	s.bg = c
}

func (s *screen) ResetStyle() {
	s.fg = ColorDefault
	s.bg = ColorDefault
}

func (s *screen) Flush() error {
	defer s.frame.Reset()
	_, err := s.dst.Write(s.frame.Bytes())
	return err
}

func ansiColor(c Color) (termenv.Color, bool) {
	switch c {
	case ColorBlack:
		return termenv.ANSIBlack, true
	case ColorRed:
		return termenv.ANSIRed, true
	case ColorGreen:
		return termenv.ANSIGreen, true
	case ColorYellow:
		return termenv.ANSIYellow, true
	case ColorWhite:
		return termenv.ANSIWhite, true
	default:
		return nil, false
	}
}
