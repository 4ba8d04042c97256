package stats

import (
	"context"

	"github.com/verte-zerg/tuicube/internal/model"
	"github.com/verte-zerg/tuicube/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Solves  []model.Solve
	Summary Summary
	Curve   []float64
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	solves, err := st.ListSolves(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	durations := Durations(solves)
	return Report{
		Solves:  solves,
		Summary: Summarize(durations),
		Curve:   MovingAverage(Seconds(durations), cfg.Window),
	}, nil
}
