package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mcrl2org/besolve/bes"
	"github.com/mcrl2org/besolve/internal/config"
	"github.com/mcrl2org/besolve/internal/logging"
	"github.com/mcrl2org/besolve/solver"
)

func newSolveCmd(e *env) *cobra.Command {
	solveCmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Decide the value of the initial variable of a system",
		Long: `Parses the system in FILE and decides the value of its initial variable.
Example) besolve solve --strategy gauss --cross-check system.bes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if e.cfg.Solver.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, e.cfg.Solver.Timeout)
				defer cancel()
			}
			sys, err := readSystem(args[0])
			if err != nil {
				e.logger.Error("Failed to read system", zap.String("file", args[0]), zap.Error(err))
				return err
			}
			rep, err := runSolve(ctx, e.logger, e.cfg.Solver, sys)
			if err != nil {
				e.logger.Error("Failed to solve system", zap.String("file", args[0]), zap.Error(err))
				return err
			}
			rep.File = args[0]
			return printReport(cmd.OutOrStdout(), rep, e.cfg.Output)
		},
	}
	flags := solveCmd.Flags()
	flags.String("strategy", "spm", "Solving strategy (spm, gauss)")
	flags.Bool("jacobi", false, "Compute progress measure sweeps in parallel")
	flags.Int("workers", 0, "Goroutines of a parallel sweep (0 = GOMAXPROCS)")
	flags.Int("max-sweeps", 0, "Maximum number of sweeps (0 = no limit)")
	flags.Duration("timeout", 0, "Abort solving after the given duration (0 = no timeout)")
	flags.Bool("cross-check", false, "Also solve with the other strategy and fail if the verdicts differ")
	flags.String("format", "text", "Report format (text, yaml)")
	flags.Bool("measures", false, "Report the value and measure of every variable")
	return solveCmd
}

func readSystem(path string) (*bes.System, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sys, err := bes.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return sys, nil
}

// newStrategy returns the solver described by cfg, reporting to obs.
func newStrategy(name string, cfg config.SolverConfig, obs solver.Observer) (solver.Interface, error) {
	switch name {
	case solver.StrategySPM:
		return &solver.ProgressMeasures{
			Observer:  obs,
			Jacobi:    cfg.Jacobi,
			Workers:   cfg.Workers,
			MaxSweeps: cfg.MaxSweeps,
		}, nil
	case solver.StrategyGauss:
		return &solver.GaussElimination{Observer: obs}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// other returns the strategy used to cross-check the given one.
func other(strategy string) string {
	if strategy == solver.StrategyGauss {
		return solver.StrategySPM
	}
	return solver.StrategyGauss
}

type report struct {
	File         string           `yaml:"file,omitempty"`
	Strategy     string           `yaml:"strategy"`
	Init         string           `yaml:"init"`
	Status       string           `yaml:"status"`
	Sweeps       int              `yaml:"sweeps"`
	Updates      int              `yaml:"updates"`
	NbFalse      int              `yaml:"false_variables"`
	CrossChecked string           `yaml:"cross_checked,omitempty"`
	Variables    []variableReport `yaml:"variables,omitempty"`
}

type variableReport struct {
	Name    string `yaml:"name"`
	Value   bool   `yaml:"value"`
	Measure string `yaml:"measure,omitempty"`
}

func runSolve(ctx context.Context, logger *zap.Logger, cfg config.SolverConfig, sys *bes.System) (*report, error) {
	obs := logging.NewObserver(logger)
	s, err := newStrategy(cfg.Strategy, cfg, obs)
	if err != nil {
		return nil, err
	}
	logger.Info("Solving system", zap.Int("equations", len(sys.Equations)), zap.String("strategy", cfg.Strategy))
	res, err := s.Solve(ctx, sys)
	if err != nil {
		return nil, err
	}
	rep := &report{
		Strategy: cfg.Strategy,
		Init:     string(sys.Init),
		Status:   res.Status.String(),
		Sweeps:   res.Stats.NbSweeps,
		Updates:  res.Stats.NbUpdates,
		NbFalse:  res.Stats.NbTop,
		Variables: lo.Map(sys.Equations, func(eq bes.Equation, _ int) variableReport {
			vr := variableReport{Name: string(eq.Var), Value: res.Values[eq.Var]}
			if m, ok := res.Measures[eq.Var]; ok {
				vr.Measure = m.String()
			}
			return vr
		}),
	}
	if cfg.CrossCheck {
		name := other(cfg.Strategy)
		checker, err := newStrategy(name, cfg, nil)
		if err != nil {
			return nil, err
		}
		ref, err := checker.Solve(ctx, sys)
		if err != nil {
			return nil, fmt.Errorf("could not cross-check with %s: %w", name, err)
		}
		if diff := disagreements(sys, res.Values, ref.Values); len(diff) > 0 {
			return nil, fmt.Errorf("%s and %s disagree on %s", cfg.Strategy, name, strings.Join(diff, ", "))
		}
		rep.CrossChecked = name
	}
	return rep, nil
}

// disagreements returns the variables of sys whose values differ in a and b, in equation order.
func disagreements(sys *bes.System, a, b map[bes.Variable]bool) []string {
	diff := lo.Filter(sys.Equations, func(eq bes.Equation, _ int) bool {
		return a[eq.Var] != b[eq.Var]
	})
	return lo.Map(diff, func(eq bes.Equation, _ int) string { return string(eq.Var) })
}

func printReport(w io.Writer, rep *report, out config.OutputConfig) error {
	if !out.Measures {
		rep.Variables = nil
	}
	if out.Format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("could not encode report: %w", err)
		}
		return enc.Close()
	}
	if rep.File != "" {
		fmt.Fprintf(w, "c solving %s with %s\n", rep.File, rep.Strategy)
	}
	fmt.Fprintf(w, "c sweeps: %d, updates: %d, false variables: %d\n", rep.Sweeps, rep.Updates, rep.NbFalse)
	if rep.CrossChecked != "" {
		fmt.Fprintf(w, "c verdict confirmed by %s\n", rep.CrossChecked)
	}
	fmt.Fprintf(w, "s %s\n", rep.Status)
	for _, vr := range rep.Variables {
		if vr.Measure != "" {
			fmt.Fprintf(w, "v %s %t %s\n", vr.Name, vr.Value, vr.Measure)
		} else {
			fmt.Fprintf(w, "v %s %t\n", vr.Name, vr.Value)
		}
	}
	return nil
}
