// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Style selects how the timer and status containers are drawn.
type Style int

const (
	StyleText Style = iota
	StyleBoxes
	StyleRounded
)

var styleNames = []string{"text", "boxes", "rounded"}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("style(%d)", int(s))
	}
	return styleNames[s]
}

// Next cycles to the following style.
func (s Style) Next() Style {
	return Style((int(s) + 1) % len(styleNames))
}

// ParseStyle converts a config or flag value into a Style.
func ParseStyle(v string) (Style, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i, name := range styleNames {
		if v == name {
			return Style(i), nil
		}
	}
	return StyleBoxes, fmt.Errorf("unknown style %q (expected %s)", v, strings.Join(styleNames, ", "))
}

// Discipline is the arming discipline used by the timer.
type Discipline int

const (
	// DisciplineImmediate starts and stops the timer on key press.
	DisciplineImmediate Discipline = iota
	// DisciplineHold requires holding the trigger before release starts the timer.
	DisciplineHold
)

var disciplineNames = []string{"immediate", "hold"}

func (d Discipline) String() string {
	if d < 0 || int(d) >= len(disciplineNames) {
		return fmt.Sprintf("discipline(%d)", int(d))
	}
	return disciplineNames[d]
}

// Next cycles to the following discipline.
func (d Discipline) Next() Discipline {
	return Discipline((int(d) + 1) % len(disciplineNames))
}

// ParseDiscipline converts a config or flag value into a Discipline.
func ParseDiscipline(v string) (Discipline, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i, name := range disciplineNames {
		if v == name {
			return Discipline(i), nil
		}
	}
	return DisciplineImmediate, fmt.Errorf("unknown discipline %q (expected %s)", v, strings.Join(disciplineNames, ", "))
}

// Config defines timer session settings. It is fixed once the session starts.
type Config struct {
	Style        Style
	Discipline   Discipline
	PollInterval time.Duration
	Save         bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since   *time.Time
	Last    int
	Window  int
	Session string
}

// Solve is one completed timed attempt.
type Solve struct {
	ID         int64
	SessionID  string
	Duration   time.Duration
	RecordedAt time.Time
	Discipline Discipline
}
