// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/tuicube/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Durations extracts the solve times in order.
func Durations(solves []model.Solve) []time.Duration {
	out := make([]time.Duration, len(solves))
	for i, s := range solves {
		out[i] = s.Duration
	}
	return out
}

// Seconds converts durations into float seconds for plotting.
func Seconds(values []time.Duration) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.Seconds()
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Resample stretches or shrinks values to width points by nearest index.
func Resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return values
	}
	out := make([]float64, width)
	for i := range out {
		idx := i * (len(values) - 1) / max(1, width-1)
		out[i] = values[idx]
	}
	return out
}

// RenderSummary prints a summary block for solves.
func RenderSummary(w io.Writer, solves []model.Solve) error {
	if len(solves) == 0 {
		_, err := fmt.Fprintln(w, "No solves found.")
		return err
	}
	s := Summarize(Durations(solves))
	lines := []string{
		"Summary",
		fmt.Sprintf("Solves: %d", s.Count),
		fmt.Sprintf("Best: %s", s.Best),
		fmt.Sprintf("Worst: %s", s.Worst),
		fmt.Sprintf("Mean: %s", s.Mean),
		fmt.Sprintf("Ao5: %s", s.Ao5),
		fmt.Sprintf("Ao12: %s", s.Ao12),
		fmt.Sprintf("Bo12: %s", s.Bo12),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSolveTable prints solves newest first with their running Ao5.
func RenderSolveTable(w io.Writer, solves []model.Solve) error {
	if len(solves) == 0 {
		return nil
	}
	durations := Durations(solves)
	cols := []column{
		{title: "#", numeric: true},
		{title: "Time", numeric: true},
		{title: "Ao5", numeric: true},
		{title: "Recorded"},
		{title: "Mode"},
	}
	rows := make([][]string, 0, len(solves))
	for i := len(solves) - 1; i >= 0; i-- {
		s := solves[i]
		ao5 := stat(TrimmedRollingAverage(durations[:i+1], Ao5Window))
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			FormatDuration(s.Duration),
			ao5.String(),
			s.RecordedAt.Local().Format("2006-01-02 15:04:05"),
			s.Discipline.String(),
		})
	}
	for _, line := range layoutTable(cols, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
