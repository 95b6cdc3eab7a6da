package solver

import (
	"context"
	"fmt"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/mcrl2org/besolve/bes"
)

const tracerName = "github.com/mcrl2org/besolve/solver"

// ProgressMeasures solves systems with the small progress measures algorithm.
//
// Each equation is a vertex of a parity game whose priority is the rank of the equation.
// Each vertex carries a measure, initially the null vector. Sweeps over the vertices lift
// the measure of each vertex according to the measures of its successors, until a sweep changes
// nothing. A variable is true iff its measure is not Top.
//
// The zero value is ready to use. A ProgressMeasures can be used for several systems, even
// concurrently: each call to Solve works on its own measure table.
type ProgressMeasures struct {
	Observer  Observer // Notified of each sweep and update. May be nil.
	Jacobi    bool     // If true, all measures of a sweep are computed from the measures of the previous one.
	Workers   int      // Number of goroutines computing a Jacobi sweep. 0 means GOMAXPROCS.
	MaxSweeps int      // Maximum number of sweeps. 0 means no limit.
}

// A sweeper computes the new measures of vertices.
type sweeper struct {
	g    *Graph
	beta []uint64
	t    *table
}

// prog computes in alpha the candidate measure of vertex v, given the current measures.
// It returns true iff the candidate is Top, in which case alpha is meaningless.
//
// The candidate is the measure of the smallest (for a disjunctive vertex) or greatest (for a
// conjunctive one) successor, truncated to the rank m of v, and incremented at index m if m is odd.
// Entries beyond m are always 0.
func (s *sweeper) prog(v int, alpha []uint64) (top bool) {
	vx := &s.g.Vertices[v]
	measures := s.t.measures
	if len(vx.Succ) == 0 {
		if vx.Falsum {
			return true
		}
		cur := measures[v]
		copy(alpha, cur.vec)
		return cur.top
	}
	m := vx.Rank
	w := vx.Succ[0]
	for _, u := range vx.Succ[1:] {
		c := Compare(measures[u], measures[w], m)
		if (vx.Owner == Disjunctive && c < 0) || (vx.Owner == Conjunctive && c > 0) {
			w = u
		}
	}
	if measures[w].top {
		return true
	}
	copy(alpha[:m+1], measures[w].vec[:m+1])
	clear(alpha[m+1:])
	if m%2 == 1 {
		return !inc(alpha, m, s.beta)
	}
	return false
}

// gaussSeidel lifts each vertex in turn. Vertices see the measures written earlier in the same sweep.
func (s *sweeper) gaussSeidel(obs Observer, alpha []uint64) int {
	changed := 0
	for v := range s.g.Vertices {
		top := s.prog(v, alpha)
		if s.t.set(v, top, alpha) {
			changed++
			obs.Update(s.g.Vertices[v].Var, s.t.measures[v].clone())
		}
	}
	return changed
}

// jacobi computes the candidates of all vertices in parallel from the measures of the previous
// sweep, then writes them all.
func (s *sweeper) jacobi(ctx context.Context, obs Observer, workers int, tops []bool, alphas []uint64) (int, error) {
	n := len(s.g.Vertices)
	d := s.t.d
	chunk := (n + workers - 1) / workers
	grp, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for v := lo; v < hi; v++ {
				tops[v] = s.prog(v, alphas[v*d:(v+1)*d])
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return 0, err
	}
	changed := 0
	for v := 0; v < n; v++ {
		if s.t.set(v, tops[v], alphas[v*d:(v+1)*d]) {
			changed++
			obs.Update(s.g.Vertices[v].Var, s.t.measures[v].clone())
		}
	}
	return changed, nil
}

// Solve decides the value of the initial variable of sys.
// See Interface for the semantics of errors.
func (pm *ProgressMeasures) Solve(ctx context.Context, sys *bes.System) (res Result, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ProgressMeasures.Solve",
		trace.WithAttributes(
			attribute.Int("equations", len(sys.Equations)),
			attribute.Bool("jacobi", pm.Jacobi),
		))
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "solving failed")
		}
		span.SetAttributes(
			attribute.Int("sweeps", res.Stats.NbSweeps),
			attribute.Int("updates", res.Stats.NbUpdates),
			attribute.String("status", res.Status.String()),
		)
	}()

	g, err := BuildGraph(sys)
	if err != nil {
		return Result{Status: Indet}, err
	}
	s := &sweeper{g: g, beta: g.Ranking.Beta, t: newTable(len(g.Vertices), g.D())}
	span.SetAttributes(attribute.Int("d", g.D()))
	if err := pm.run(ctx, s, &res.Stats); err != nil {
		return Result{Status: Indet, Stats: res.Stats}, err
	}

	obs := observerOrNop(pm.Observer)
	res.Values = make(map[bes.Variable]bool, len(g.Vertices))
	res.Measures = make(map[bes.Variable]Measure, len(g.Vertices))
	for v, vx := range g.Vertices {
		m := s.t.measures[v]
		res.Values[vx.Var] = !m.top
		res.Measures[vx.Var] = m
		if m.top {
			res.Stats.NbTop++
		}
		obs.Resolve(vx.Var, !m.top)
	}
	res.Status = statusOf(!s.t.measures[g.Init].top)
	return res, nil
}

// run sweeps until the measures are stable.
func (pm *ProgressMeasures) run(ctx context.Context, s *sweeper, stats *Stats) error {
	obs := observerOrNop(pm.Observer)
	var (
		n      = len(s.g.Vertices)
		d      = s.t.d
		alpha  []uint64
		tops   []bool
		alphas []uint64
	)
	workers := pm.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if pm.Jacobi {
		tops = make([]bool, n)
		alphas = make([]uint64, n*d)
	} else {
		alpha = make([]uint64, d)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if pm.MaxSweeps > 0 && stats.NbSweeps >= pm.MaxSweeps {
			return fmt.Errorf("no fixpoint after %d sweeps: %w", stats.NbSweeps, ErrSweepLimit)
		}
		var changed int
		if pm.Jacobi {
			var err error
			if changed, err = s.jacobi(ctx, obs, workers, tops, alphas); err != nil {
				return err
			}
		} else {
			changed = s.gaussSeidel(obs, alpha)
		}
		stats.NbSweeps++
		stats.NbUpdates += changed
		obs.Sweep(stats.NbSweeps, changed)
		if changed == 0 {
			return nil
		}
	}
}
