package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"

	"github.com/verte-zerg/tuicube/internal/model"
)

func TestImmediatePressPressRecordsOneSolve(t *testing.T) {
	clock := clockz.NewFakeClock()
	m := NewMachine(model.DisciplineImmediate, clock)

	_, ok := m.Press()
	require.False(t, ok)
	assert.Equal(t, Running, m.Phase())

	clock.Advance(1234 * time.Millisecond)
	assert.Equal(t, 1234*time.Millisecond, m.Elapsed())

	d, ok := m.Press()
	require.True(t, ok)
	assert.Equal(t, 1234*time.Millisecond, d)
	assert.Equal(t, Idle, m.Phase())
	assert.Zero(t, m.Elapsed())
}

func TestImmediateIgnoresReleaseAndTick(t *testing.T) {
	clock := clockz.NewFakeClock()
	m := NewMachine(model.DisciplineImmediate, clock)

	_, ok := m.Release()
	assert.False(t, ok)
	m.Tick()
	assert.Equal(t, Idle, m.Phase())

	m.Press()
	clock.Advance(time.Second)
	_, ok = m.Release()
	assert.False(t, ok)
	m.Tick()
	assert.Equal(t, Running, m.Phase())
}

func TestHoldEarlyReleaseNeverRuns(t *testing.T) {
	clock := clockz.NewFakeClock()
	m := NewMachine(model.DisciplineHold, clock)

	m.Press()
	assert.Equal(t, ArmedWaiting, m.Phase())

	clock.Advance(HoldThreshold - time.Millisecond)
	m.Tick()
	assert.Equal(t, ArmedWaiting, m.Phase())

	_, ok := m.Release()
	assert.False(t, ok)
	assert.Equal(t, Idle, m.Phase())

	clock.Advance(time.Second)
	m.Tick()
	assert.Equal(t, Idle, m.Phase())
}

func TestHoldArmReleaseRunPress(t *testing.T) {
	clock := clockz.NewFakeClock()
	m := NewMachine(model.DisciplineHold, clock)

	m.Press()
	clock.Advance(HoldThreshold)
	m.Tick()
	require.Equal(t, Armed, m.Phase())

	// holding longer keeps it armed
	clock.Advance(2 * time.Second)
	m.Tick()
	require.Equal(t, Armed, m.Phase())

	_, ok := m.Release()
	require.False(t, ok)
	require.Equal(t, Running, m.Phase())

	clock.Advance(9870 * time.Millisecond)
	d, ok := m.Press()
	require.True(t, ok)
	assert.Equal(t, 9870*time.Millisecond, d)
	assert.Equal(t, Idle, m.Phase())

	// the release that follows the stopping press is ignored
	_, ok = m.Release()
	assert.False(t, ok)
	assert.Equal(t, Idle, m.Phase())
}

func TestHoldReleaseAfterThresholdStartsWithoutTick(t *testing.T) {
	clock := clockz.NewFakeClock()
	m := NewMachine(model.DisciplineHold, clock)

	m.Press()
	clock.Advance(495 * time.Millisecond)
	m.Tick()
	require.Equal(t, ArmedWaiting, m.Phase())

	// the poll that carries the release lands before the next tick
	clock.Advance(8 * time.Millisecond)
	_, ok := m.Release()
	assert.False(t, ok)
	require.Equal(t, Running, m.Phase())

	clock.Advance(2 * time.Second)
	d, ok := m.Press()
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, d)
}

func TestHoldReleaseJustBeforeThresholdIsEarly(t *testing.T) {
	start := time.Unix(100, 0)
	s := State{Phase: ArmedWaiting, HoldStart: start}

	next, _, ok := Step(model.DisciplineHold, s, Input{Kind: Release, At: start.Add(HoldThreshold - time.Nanosecond)})
	assert.False(t, ok)
	assert.Equal(t, State{Phase: Idle}, next)

	next, _, _ = Step(model.DisciplineHold, s, Input{Kind: Release, At: start.Add(HoldThreshold)})
	assert.Equal(t, Running, next.Phase)
	assert.Equal(t, start.Add(HoldThreshold), next.Start)
}

func TestHoldRepeatedPressWhileWaitingKeepsHoldStart(t *testing.T) {
	start := time.Unix(100, 0)
	s := State{Phase: ArmedWaiting, HoldStart: start}

	next, _, ok := Step(model.DisciplineHold, s, Input{Kind: Press, At: start.Add(300 * time.Millisecond)})
	assert.False(t, ok)
	assert.Equal(t, s, next)

	next, _, _ = Step(model.DisciplineHold, next, Input{Kind: Tick, At: start.Add(HoldThreshold)})
	assert.Equal(t, Armed, next.Phase)
}

func TestStepNeverReportsNegativeDuration(t *testing.T) {
	start := time.Unix(50, 0)
	s := State{Phase: Running, Start: start}
	_, d, ok := Step(model.DisciplineImmediate, s, Input{Kind: Press, At: start.Add(-time.Second)})
	require.True(t, ok)
	assert.Zero(t, d)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "holding", ArmedWaiting.String())
	assert.Equal(t, "armed", Armed.String())
	assert.Equal(t, "running", Running.String())
}
