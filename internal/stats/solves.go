package stats

import (
	"fmt"
	"slices"
	"time"
)

// Standard window sizes.
const (
	Ao5Window  = 5
	Ao12Window = 12
	Bo12Window = 12
)

// TrimmedRollingAverage averages the last window results after dropping one
// fastest and one slowest entry. Windows smaller than three are not trimmed.
// It reports false when fewer than window results exist.
func TrimmedRollingAverage(results []time.Duration, window int) (time.Duration, bool) {
	if window <= 0 || len(results) < window {
		return 0, false
	}
	recent := results[len(results)-window:]
	if len(recent) < 3 {
		return mean(recent), true
	}
	sorted := slices.Clone(recent)
	slices.Sort(sorted)
	return mean(sorted[1 : len(sorted)-1]), true
}

// BestOfWindow returns the fastest of the last window results, or of all of
// them when fewer exist.
func BestOfWindow(results []time.Duration, window int) (time.Duration, bool) {
	if window <= 0 || len(results) == 0 {
		return 0, false
	}
	if window > len(results) {
		window = len(results)
	}
	return slices.Min(results[len(results)-window:]), true
}

// BestOverall returns the fastest result.
func BestOverall(results []time.Duration) (time.Duration, bool) {
	if len(results) == 0 {
		return 0, false
	}
	return slices.Min(results), true
}

func mean(values []time.Duration) time.Duration {
	var sum time.Duration
	for _, v := range values {
		sum += v
	}
	return sum / time.Duration(len(values))
}

// Stat is an optional statistic value.
type Stat struct {
	Value time.Duration
	OK    bool
}

// String renders the value, or a dash when it is not available.
func (s Stat) String() string {
	if !s.OK {
		return "-"
	}
	return FormatDuration(s.Value)
}

// Summary groups the statistics shown next to the timer and in the viewer.
type Summary struct {
	Count int
	Ao5   Stat
	Ao12  Stat
	Bo12  Stat
	Best  Stat
	Worst Stat
	Mean  Stat
}

// Summarize computes all session statistics for results.
func Summarize(results []time.Duration) Summary {
	s := Summary{Count: len(results)}
	s.Ao5 = stat(TrimmedRollingAverage(results, Ao5Window))
	s.Ao12 = stat(TrimmedRollingAverage(results, Ao12Window))
	s.Bo12 = stat(BestOfWindow(results, Bo12Window))
	s.Best = stat(BestOverall(results))
	if len(results) > 0 {
		s.Worst = Stat{Value: slices.Max(results), OK: true}
		s.Mean = Stat{Value: mean(results), OK: true}
	}
	return s
}

func stat(v time.Duration, ok bool) Stat {
	return Stat{Value: v, OK: ok}
}

// FormatDuration renders d as seconds with millisecond precision.
func FormatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}
