// Package session runs the interactive timer loop.
package session

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"github.com/verte-zerg/tuicube/internal/logging"
	"github.com/verte-zerg/tuicube/internal/model"
	"github.com/verte-zerg/tuicube/internal/stats"
	"github.com/verte-zerg/tuicube/internal/terminal"
	"github.com/verte-zerg/tuicube/internal/timer"
)

// DefaultPollInterval bounds how long one iteration waits for input.
const DefaultPollInterval = 10 * time.Millisecond

// Recorder stores completed solves.
type Recorder interface {
	Append(ctx context.Context, solve model.Solve) error
}

// Deps are the collaborators of a session. Zero values fall back to the real
// clock, no persistence and a no-op logger.
type Deps struct {
	Clock    clockz.Clock
	Recorder Recorder
	Logger   *zap.SugaredLogger
}

// Session owns the timer, the solves of this run and the display.
type Session struct {
	id       string
	cfg      model.Config
	surface  terminal.Surface
	input    terminal.Input
	clock    clockz.Clock
	recorder Recorder
	logger   *zap.SugaredLogger

	machine *timer.Machine
	results []time.Duration
	last    time.Duration
	summary stats.Summary
	quit    bool
}

// New prepares a session. Nothing is drawn until the first Step.
func New(cfg model.Config, surface terminal.Surface, input terminal.Input, deps Deps) *Session {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	clock := deps.Clock
	if clock == nil {
		clock = clockz.RealClock
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	recorder := deps.Recorder
	if !cfg.Save {
		recorder = nil
	}
	id := uuid.NewString()
	return &Session{
		id:       id,
		cfg:      cfg,
		surface:  surface,
		input:    input,
		clock:    clock,
		recorder: recorder,
		logger:   logger.With("session", id),
		machine:  timer.NewMachine(cfg.Discipline, clock),
	}
}

// Run loops until a quit key is read or ctx is cancelled. Cancellation is a
// normal stop and returns nil.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Infow("session started", "style", s.cfg.Style.String(), "discipline", s.cfg.Discipline.String())
	for !s.quit {
		if ctx.Err() != nil {
			s.logger.Infow("session cancelled", "solves", len(s.results))
			return nil
		}
		if err := s.Step(ctx); err != nil {
			s.logger.Errorw("session failed", "error", err)
			return err
		}
	}
	s.logger.Infow("session finished", "solves", len(s.results))
	return nil
}

// Step runs one iteration: poll, dispatch, tick, recompute and render.
func (s *Session) Step(ctx context.Context) error {
	ready, err := s.input.Poll(s.cfg.PollInterval)
	if err != nil {
		return fmt.Errorf("failed to poll input: %w", err)
	}
	if ready {
		ev, err := s.input.Read()
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		s.dispatch(ctx, ev)
	}
	s.machine.Tick()
	s.summary = stats.Summarize(s.results)
	if s.quit {
		return nil
	}
	return s.render()
}

func (s *Session) dispatch(ctx context.Context, ev terminal.Event) {
	switch ev.Key {
	case terminal.KeyEscape, terminal.KeyInterrupt:
		if ev.Type == terminal.EventPress {
			s.quit = true
		}
	case terminal.KeySpace:
		var (
			solved time.Duration
			ok     bool
		)
		switch ev.Type {
		case terminal.EventPress:
			solved, ok = s.machine.Press()
		case terminal.EventRelease:
			solved, ok = s.machine.Release()
		}
		if ok {
			s.complete(ctx, solved)
		}
	}
}

func (s *Session) complete(ctx context.Context, d time.Duration) {
	s.results = append(s.results, d)
	s.last = d
	s.logger.Debugw("solve completed", "duration", d, "count", len(s.results))
	if s.recorder == nil {
		return
	}
	solve := model.Solve{
		SessionID:  s.id,
		Duration:   d,
		RecordedAt: s.clock.Now(),
		Discipline: s.cfg.Discipline,
	}
	if err := s.recorder.Append(ctx, solve); err != nil {
		s.logger.Warnw("failed to save solve", "duration", d, "error", err)
	}
}

// ID is the identifier stamped on every saved solve of this session.
func (s *Session) ID() string {
	return s.id
}

// Results returns the completed solves, oldest first.
func (s *Session) Results() []time.Duration {
	return slices.Clone(s.results)
}

// Phase reports the current timer phase.
func (s *Session) Phase() timer.Phase {
	return s.machine.Phase()
}

// Done reports whether a quit key has been read.
func (s *Session) Done() bool {
	return s.quit
}
