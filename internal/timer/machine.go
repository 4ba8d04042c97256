// Package timer implements the solve timer state machine.
package timer

import (
	"time"

	"github.com/zoobzio/clockz"

	"github.com/verte-zerg/tuicube/internal/model"
)

// HoldThreshold is how long the trigger must be held before the hold
// discipline arms.
const HoldThreshold = 500 * time.Millisecond

// Phase is the current run state of the timer.
type Phase int

const (
	// Idle waits for the trigger.
	Idle Phase = iota
	// ArmedWaiting holds the trigger but the hold threshold has not elapsed.
	ArmedWaiting
	// Armed has held long enough; releasing starts the run.
	Armed
	// Running measures a solve.
	Running
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case ArmedWaiting:
		return "holding"
	case Armed:
		return "armed"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// InputKind identifies what drives a transition.
type InputKind int

const (
	// Press is a trigger key press.
	Press InputKind = iota
	// Release is a trigger key release.
	Release
	// Tick re-evaluates time-gated transitions.
	Tick
)

// Input is one timed stimulus for the state machine.
type Input struct {
	Kind InputKind
	At   time.Time
}

// State is the full run state. HoldStart is meaningful in ArmedWaiting,
// Start in Running.
type State struct {
	Phase     Phase
	HoldStart time.Time
	Start     time.Time
}

// Step applies in to s under the given discipline. When the input stops a
// run, the completed duration is returned with ok set.
func Step(d model.Discipline, s State, in Input) (next State, solved time.Duration, ok bool) {
	if s.Phase == Running {
		if in.Kind != Press {
			return s, 0, false
		}
		elapsed := in.At.Sub(s.Start)
		if elapsed < 0 {
			elapsed = 0
		}
		return State{Phase: Idle}, elapsed, true
	}

	if d == model.DisciplineImmediate {
		if s.Phase == Idle && in.Kind == Press {
			return State{Phase: Running, Start: in.At}, 0, false
		}
		return s, 0, false
	}

	switch s.Phase {
	case Idle:
		if in.Kind == Press {
			return State{Phase: ArmedWaiting, HoldStart: in.At}, 0, false
		}
	case ArmedWaiting:
		switch in.Kind {
		case Tick:
			if in.At.Sub(s.HoldStart) >= HoldThreshold {
				return State{Phase: Armed}, 0, false
			}
		case Release:
			// a release past the threshold arms and starts in one step
			if in.At.Sub(s.HoldStart) >= HoldThreshold {
				return State{Phase: Running, Start: in.At}, 0, false
			}
			return State{Phase: Idle}, 0, false
		}
	case Armed:
		if in.Kind == Release {
			return State{Phase: Running, Start: in.At}, 0, false
		}
	}
	return s, 0, false
}

// Machine drives Step with readings from a clock.
type Machine struct {
	discipline model.Discipline
	clock      clockz.Clock
	state      State
}

// NewMachine returns an idle machine for the discipline.
func NewMachine(d model.Discipline, clock clockz.Clock) *Machine {
	return &Machine{discipline: d, clock: clock}
}

// Press feeds a trigger press.
func (m *Machine) Press() (time.Duration, bool) {
	return m.apply(Press)
}

// Release feeds a trigger release.
func (m *Machine) Release() (time.Duration, bool) {
	return m.apply(Release)
}

// Tick evaluates time-gated transitions at the current instant.
func (m *Machine) Tick() {
	m.apply(Tick)
}

func (m *Machine) apply(kind InputKind) (time.Duration, bool) {
	next, solved, ok := Step(m.discipline, m.state, Input{Kind: kind, At: m.clock.Now()})
	m.state = next
	return solved, ok
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.state.Phase
}

// Elapsed returns the running time of the current solve, or zero when not running.
func (m *Machine) Elapsed() time.Duration {
	if m.state.Phase != Running {
		return 0
	}
	return m.clock.Now().Sub(m.state.Start)
}
