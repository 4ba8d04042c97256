package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"

	"github.com/verte-zerg/tuicube/internal/model"
	"github.com/verte-zerg/tuicube/internal/terminal"
)

func seconds(values ...float64) []time.Duration {
	out := make([]time.Duration, len(values))
	for i, v := range values {
		out[i] = time.Duration(v * float64(time.Second))
	}
	return out
}

func renderWith(t *testing.T, style model.Style, cols, rows int, results []time.Duration) *fakeSurface {
	t.Helper()
	clock := clockz.NewFakeClock()
	surface := newFakeSurface(cols, rows)
	cfg := testConfig(model.DisciplineImmediate)
	cfg.Style = style
	s := New(cfg, surface, &scriptedInput{clock: clock}, Deps{Clock: clock})
	s.results = results
	require.NoError(t, s.Step(context.Background()))
	return surface
}

func TestRenderResultsAndStatistics(t *testing.T) {
	surface := renderWith(t, model.StyleBoxes, 80, 24, seconds(12, 11, 13.5, 10, 14))
	lines := surface.screen()

	assert.Equal(t, "ATTEMPT | TIME", lines[0])
	assert.Equal(t, "5       | 14.000s", lines[1])
	assert.Equal(t, "1       | 12.000s", lines[5])
	assert.Equal(t, "Ao5: 12.167s", lines[7])
	assert.Empty(t, lines[8])
	assert.True(t, strings.HasPrefix(lines[9], "Bo12: 10.000s"))
	assert.True(t, strings.HasPrefix(lines[10], "Best: 10.000s"))
	assert.Contains(t, lines[21], "Press Space to start/stop. Press Esc to exit.")
}

func TestRenderBoxesCentresTimerAndBadge(t *testing.T) {
	surface := renderWith(t, model.StyleBoxes, 80, 24, nil)
	lines := surface.screen()

	assert.Equal(t, "┌"+strings.Repeat("─", 18)+"┐", strings.TrimSpace(lines[9]))
	assert.Equal(t, "└"+strings.Repeat("─", 18)+"┘", strings.TrimSpace(lines[15]))

	clock, ok := surface.find("0.000s")
	require.True(t, ok)
	assert.Equal(t, 37, clock.x)
	assert.Equal(t, 10, clock.y)

	idle, ok := surface.find("IDLE")
	require.True(t, ok)
	assert.Equal(t, 38, idle.x)
	assert.Equal(t, 14, idle.y)
	assert.Equal(t, terminal.ColorGreen, idle.bg)
	assert.Equal(t, terminal.ColorBlack, idle.fg)
}

func TestRenderRoundedStyle(t *testing.T) {
	surface := renderWith(t, model.StyleRounded, 80, 24, nil)
	assert.Contains(t, strings.Join(surface.screen(), "\n"), "╭")
}

func TestRenderTextStyleDrawsNoBoxes(t *testing.T) {
	surface := renderWith(t, model.StyleText, 80, 24, nil)
	screen := strings.Join(surface.screen(), "\n")
	assert.NotContains(t, screen, "┌")
	assert.NotContains(t, screen, "╭")

	clock, ok := surface.find("0.000s")
	require.True(t, ok)
	assert.Equal(t, 37, clock.x)
	assert.Equal(t, 11, clock.y)
	idle, ok := surface.find("IDLE")
	require.True(t, ok)
	assert.Equal(t, 13, idle.y)
}

func TestRenderClipsTableToScreen(t *testing.T) {
	results := seconds(10, 11, 12, 13, 14, 15, 16, 17, 18, 19)
	surface := renderWith(t, model.StyleText, 80, 8, results)
	lines := surface.screen()

	assert.True(t, strings.HasPrefix(lines[1], "10      | 19.000s"))
	assert.True(t, strings.HasPrefix(lines[3], "8       | 17.000s"))
	for _, line := range lines {
		assert.False(t, strings.HasPrefix(line, "7       |"))
	}
}

func TestRenderTinyTerminal(t *testing.T) {
	surface := renderWith(t, model.StyleBoxes, 4, 2, seconds(1, 2))
	require.Len(t, surface.frames, 1)
	_, ok := surface.find("IDLE")
	assert.True(t, ok)
}

func TestInstructionsFollowDiscipline(t *testing.T) {
	assert.Contains(t, instructions(model.DisciplineImmediate), "start/stop")
	assert.Contains(t, instructions(model.DisciplineHold), "Hold Space")
}
