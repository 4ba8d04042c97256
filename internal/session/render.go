package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuicube/internal/model"
	"github.com/verte-zerg/tuicube/internal/stats"
	"github.com/verte-zerg/tuicube/internal/terminal"
	"github.com/verte-zerg/tuicube/internal/timer"
)

const (
	boxWidth  = 20
	boxHeight = 3
	// rows kept free below the results table for the instructions line
	tableReserve = 5
)

type glyphs struct {
	topLeft, topRight, bottomLeft, bottomRight, horizontal, vertical string
}

var (
	squareGlyphs  = glyphs{"┌", "┐", "└", "┘", "─", "│"}
	roundedGlyphs = glyphs{"╭", "╮", "╰", "╯", "─", "│"}
)

func boxGlyphs(style model.Style) (glyphs, bool) {
	switch style {
	case model.StyleBoxes:
		return squareGlyphs, true
	case model.StyleRounded:
		return roundedGlyphs, true
	default:
		return glyphs{}, false
	}
}

func instructions(d model.Discipline) string {
	if d == model.DisciplineHold {
		return "Hold Space to arm, release to start, press to stop. Press Esc to exit."
	}
	return "Press Space to start/stop. Press Esc to exit."
}

func badge(p timer.Phase) (string, terminal.Color) {
	switch p {
	case timer.Running:
		return "RUNNING", terminal.ColorRed
	case timer.Armed:
		return "ARMED", terminal.ColorYellow
	case timer.ArmedWaiting:
		return "HOLD", terminal.ColorWhite
	default:
		return "IDLE", terminal.ColorGreen
	}
}

// render redraws the whole frame.
func (s *Session) render() error {
	cols, rows, err := s.surface.Size()
	if err != nil {
		return fmt.Errorf("failed to query terminal size: %w", err)
	}
	out := s.surface
	out.Clear()
	out.ResetStyle()

	out.MoveTo(0, 0)
	out.Write("ATTEMPT | TIME")
	tableRows := min(len(s.results), max(rows-tableReserve, 0))
	for i := range tableRows {
		idx := len(s.results) - 1 - i
		out.MoveTo(0, 1+i)
		out.Write(fmt.Sprintf("%-7d | %s", idx+1, stats.FormatDuration(s.results[idx])))
	}

	statsY := 1 + tableRows + 1
	lines := []struct {
		label string
		value stats.Stat
	}{
		{"Ao5", s.summary.Ao5},
		{"Ao12", s.summary.Ao12},
		{"Bo12", s.summary.Bo12},
		{"Best", s.summary.Best},
	}
	for i, line := range lines {
		if !line.value.OK {
			continue
		}
		out.MoveTo(0, statsY+i)
		out.Write(line.label + ": " + line.value.String())
	}

	help := instructions(s.cfg.Discipline)
	out.MoveTo(centered(cols, help), max(rows-3, 0))
	out.Write(help)

	boxX := max(cols-boxWidth, 0) / 2
	boxY := max(rows-(boxHeight+3), 0) / 2
	indicatorY := boxY + boxHeight + 1
	g, boxed := boxGlyphs(s.cfg.Style)

	clock := stats.FormatDuration(s.displayed())
	status, color := badge(s.machine.Phase())
	if boxed {
		drawBox(out, boxX, boxY, boxWidth, boxHeight, g)
		drawBox(out, boxX, indicatorY, boxWidth, boxHeight, g)
		out.MoveTo(boxX+centered(boxWidth, clock), boxY+1)
		out.Write(clock)
		out.MoveTo(boxX+centered(boxWidth, status), indicatorY+1)
	} else {
		out.MoveTo(centered(cols, clock), max(rows/2-1, 0))
		out.Write(clock)
		out.MoveTo(centered(cols, status), rows/2+1)
	}
	out.SetBackground(color)
	out.SetForeground(terminal.ColorBlack)
	out.Write(status)
	out.ResetStyle()

	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to draw frame: %w", err)
	}
	return nil
}

// displayed is the live time while running, otherwise the last solve.
func (s *Session) displayed() time.Duration {
	if s.machine.Phase() == timer.Running {
		return s.machine.Elapsed()
	}
	return s.last
}

func centered(width int, text string) int {
	return max(width-runewidth.StringWidth(text), 0) / 2
}

func drawBox(out terminal.Surface, x, y, width, height int, g glyphs) {
	inner := strings.Repeat(g.horizontal, width-2)
	out.MoveTo(x, y)
	out.Write(g.topLeft + inner + g.topRight)
	for i := 1; i < height-1; i++ {
		out.MoveTo(x, y+i)
		out.Write(g.vertical)
		out.MoveTo(x+width-1, y+i)
		out.Write(g.vertical)
	}
	out.MoveTo(x, y+height-1)
	out.Write(g.bottomLeft + inner + g.bottomRight)
}
