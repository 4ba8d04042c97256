package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuicube/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	assert.Equal(t, []float64{2, 3, 5, 7}, got)

	in := []float64{1, 2}
	out := MovingAverage(in, 1)
	out[0] = 99
	assert.Equal(t, 1.0, in[0])
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil))
	assert.Equal(t, "+++", Sparkline([]float64{3, 3, 3}))
	line := Sparkline([]float64{0, 5, 10})
	assert.Equal(t, " +@", line)
}

func TestResample(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	assert.Equal(t, []float64{0, 4, 9}, Resample(values, 3))
	assert.Equal(t, values, Resample(values, 20))
}

func TestRenderSummaryAndTable(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	var solves []model.Solve
	for i, d := range secs(12.0, 11.0, 13.5, 10.0, 14.0) {
		solves = append(solves, model.Solve{
			ID:         int64(i + 1),
			Duration:   d,
			RecordedAt: base.Add(time.Duration(i) * time.Minute),
			Discipline: model.DisciplineHold,
		})
	}

	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, solves))
	out := buf.String()
	assert.Contains(t, out, "Solves: 5")
	assert.Contains(t, out, "Best: 10.000s")
	assert.Contains(t, out, "Ao5: 12.167s")
	assert.Contains(t, out, "Ao12: -")

	buf.Reset()
	require.NoError(t, RenderSolveTable(&buf, solves))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[1], "5"), "newest solve first: %q", lines[1])
	assert.Contains(t, lines[1], "14.000s")
	assert.Contains(t, lines[1], "12.167s")
	assert.Contains(t, lines[5], "hold")
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, nil))
	assert.Equal(t, "No solves found.\n", buf.String())
}
