package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcrl2org/besolve/bes"
)

// Names of the available strategies, as accepted by New.
const (
	StrategySPM   = "spm"
	StrategyGauss = "gauss"
)

// ErrSweepLimit is returned when a solver reached its maximum number of sweeps before the
// measures stabilized.
var ErrSweepLimit = errors.New("sweep limit reached")

// A Result is the outcome of solving a system.
// Status is the value of the initial variable, or Indet if solving was interrupted.
// Values associates each variable of the system with its value; it is nil if Status is Indet.
// Measures is the stabilized progress measure table; it is only provided by ProgressMeasures.
type Result struct {
	Status   Status
	Values   map[bes.Variable]bool
	Measures map[bes.Variable]Measure
	Stats    Stats
}

// Interface is any type implementing a strategy to solve a BES.
// Both ProgressMeasures and GaussElimination implement it.
type Interface interface {
	// Solve decides the value of the initial variable of sys.
	// sys must be closed; if it is not, a *bes.ConfigurationError is returned before any work is done.
	// If ctx is cancelled, solving stops, Status is Indet and ctx.Err() is returned.
	Solve(ctx context.Context, sys *bes.System) (Result, error)
}

// New returns a solver implementing the named strategy, with default options.
func New(strategy string) (Interface, error) {
	switch strategy {
	case StrategySPM:
		return &ProgressMeasures{}, nil
	case StrategyGauss:
		return &GaussElimination{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}

// Solve decides the value of the initial variable of sys with the small progress measures algorithm.
func Solve(sys *bes.System) (bool, error) {
	res, err := (&ProgressMeasures{}).Solve(context.Background(), sys)
	if err != nil {
		return false, err
	}
	return res.Status == True, nil
}
