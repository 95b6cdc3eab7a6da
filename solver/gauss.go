package solver

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mcrl2org/besolve/bes"
)

// GaussElimination solves systems by successive substitutions.
//
// Equations are eliminated from the last one to the first one. Eliminating an equation
// "sigma X = f" first solves it locally, replacing X in f by false if sigma is mu and by true if
// sigma is nu, then replaces X by the resulting formula in all the previous equations.
// Once all equations are eliminated, the first one is closed; values are then propagated
// forward, from the first equation to the last one.
//
// Right-hand sides are stored in a bes.Pool, so substitutions share subterms instead of copying
// them. They can still grow large on systems with many alternations: ProgressMeasures should be
// preferred for large systems. The context is checked while substituting, so a deadline
// interrupts even a single long elimination step.
//
// The zero value is ready to use.
type GaussElimination struct {
	Observer Observer // Notified of each elimination step and resolved variable. May be nil.
}

// Solve decides the value of the initial variable of sys.
// See Interface for the semantics of errors.
func (ge *GaussElimination) Solve(ctx context.Context, sys *bes.System) (res Result, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "GaussElimination.Solve",
		trace.WithAttributes(attribute.Int("equations", len(sys.Equations))))
	defer span.End()
	pool := bes.NewPool()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "solving failed")
		}
		span.SetAttributes(
			attribute.Int("nodes", pool.Len()),
			attribute.String("status", res.Status.String()),
		)
	}()

	if err := sys.Validate(); err != nil {
		return Result{Status: Indet}, err
	}
	obs := observerOrNop(ge.Observer)
	eqs := sys.Equations
	rhs := make([]bes.Ref, len(eqs))
	for i, eq := range eqs {
		rhs[i] = pool.Intern(eq.Formula)
	}
	for i := len(eqs) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return Result{Status: Indet, Stats: res.Stats}, err
		}
		eq := eqs[i]
		self := pool.NewSubstitution(map[bes.Variable]bes.Ref{eq.Var: local(eq.Symbol)})
		if rhs[i], err = self.Apply(ctx, rhs[i]); err != nil {
			return Result{Status: Indet, Stats: res.Stats}, err
		}
		sub := pool.NewSubstitution(map[bes.Variable]bes.Ref{eq.Var: rhs[i]})
		for j := 0; j < i; j++ {
			if rhs[j], err = sub.Apply(ctx, rhs[j]); err != nil {
				return Result{Status: Indet, Stats: res.Stats}, err
			}
		}
		res.Stats.NbSweeps++
		res.Stats.NbUpdates += i
		obs.Sweep(res.Stats.NbSweeps, i)
	}
	// rhs[i] now only refers to variables bound before equation i.
	values := make(map[bes.Variable]bool, len(eqs))
	for i, eq := range eqs {
		if err := ctx.Err(); err != nil {
			return Result{Status: Indet, Stats: res.Stats}, err
		}
		val := pool.Eval(rhs[i], values)
		values[eq.Var] = val
		if !val {
			res.Stats.NbTop++
		}
		obs.Resolve(eq.Var, val)
	}
	res.Values = values
	res.Status = statusOf(values[sys.Init])
	return res, nil
}

// local returns the value of a variable that only depends on itself, given its fixpoint symbol.
func local(s bes.Symbol) bes.Ref {
	if s == bes.Mu {
		return bes.FalseRef
	}
	return bes.TrueRef
}
