package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/verte-zerg/tuicube/internal/model"
	"github.com/verte-zerg/tuicube/internal/terminal"
)

type console interface {
	terminal.Surface
	terminal.Input
	Close() error
}

var openConsole = func() (console, error) {
	t, err := terminal.Open()
	if err != nil {
		return nil, err
	}
	return t, nil
}

// RunTerminal runs a session on the process terminal and restores the
// terminal on every exit path. It returns the solves completed in the run.
func RunTerminal(ctx context.Context, cfg model.Config, deps Deps) (results []time.Duration, err error) {
	con, err := openConsole()
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	defer func() {
		if cerr := con.Close(); cerr != nil {
			if deps.Logger != nil {
				deps.Logger.Warnw("failed to restore terminal", "error", cerr)
			}
			err = multierr.Append(err, fmt.Errorf("failed to restore terminal: %w", cerr))
		}
	}()

	s := New(cfg, con, con, deps)
	err = s.Run(ctx)
	return s.Results(), err
}
