// Package logging builds the zap loggers used by besolve and plugs them into the solvers.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mcrl2org/besolve/bes"
	"github.com/mcrl2org/besolve/solver"
)

// New returns a logger writing to stderr at the given level ("debug", "info", "warn" or "error"),
// encoded as "json" or "console".
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("could not parse log level: %w", err)
	}
	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
		cfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// Observer logs the progress of a solver.
// Sweeps are logged at the info level, measure updates and resolved variables at the debug level.
type Observer struct {
	logger *zap.Logger
}

var _ solver.Observer = (*Observer)(nil)

// NewObserver returns an observer logging to logger.
func NewObserver(logger *zap.Logger) *Observer {
	return &Observer{logger: logger.Named("solver")}
}

func (o *Observer) Sweep(n, changed int) {
	o.logger.Info("sweep done", zap.Int("sweep", n), zap.Int("changed", changed))
}

func (o *Observer) Update(v bes.Variable, m solver.Measure) {
	if ce := o.logger.Check(zap.DebugLevel, "measure updated"); ce != nil {
		ce.Write(zap.String("var", string(v)), zap.Stringer("measure", m))
	}
}

func (o *Observer) Resolve(v bes.Variable, value bool) {
	o.logger.Debug("variable resolved", zap.String("var", string(v)), zap.Bool("value", value))
}
