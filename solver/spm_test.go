package solver

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcrl2org/besolve/bes"
)

var fixtures = []struct {
	name     string
	expected bool
}{
	{"worked.bes", true},
	{"nu_self.bes", true},
	{"mu_self.bes", false},
	{"alternation.bes", false},
	{"constants.bes", false},
	{"buchi.bes", true},
	{"buchi_all.bes", false},
	{"random0.bes", true},
	{"random1.bes", false},
	{"random2.bes", true},
}

func TestProgressMeasuresWorked(t *testing.T) {
	pm := &ProgressMeasures{}
	res, err := pm.Solve(context.Background(), load(t, "worked.bes"))
	require.NoError(t, err)
	assert.Equal(t, True, res.Status)
	assert.Equal(t, 2, res.Stats.NbSweeps)
	assert.Equal(t, 1, res.Stats.NbUpdates)
	assert.Equal(t, 0, res.Stats.NbTop)
	assert.Equal(t, "[0 0]", res.Measures["X1"].String())
	assert.Equal(t, "[0 1]", res.Measures["X2"].String())
	assert.Equal(t, map[bes.Variable]bool{"X1": true, "X2": true}, res.Values)
}

func TestProgressMeasuresBoundary(t *testing.T) {
	val, err := Solve(parse(t, "nu X = X; init X;"))
	require.NoError(t, err)
	assert.True(t, val)

	val, err = Solve(parse(t, "mu X = X; init X;"))
	require.NoError(t, err)
	assert.False(t, val)
}

func TestProgressMeasuresFixtures(t *testing.T) {
	for _, jacobi := range []bool{false, true} {
		for _, test := range fixtures {
			t.Run(fmt.Sprintf("%s/jacobi=%t", test.name, jacobi), func(t *testing.T) {
				pm := &ProgressMeasures{Jacobi: jacobi, Workers: 3}
				res, err := pm.Solve(context.Background(), load(t, test.name))
				require.NoError(t, err)
				assert.Equal(t, statusOf(test.expected), res.Status)
				for v, val := range res.Values {
					assert.Equal(t, !val, res.Measures[v].IsTop(), "variable %s", v)
				}
			})
		}
	}
}

func TestProgressMeasuresConstants(t *testing.T) {
	res, err := (&ProgressMeasures{}).Solve(context.Background(), load(t, "constants.bes"))
	require.NoError(t, err)
	assert.Equal(t, map[bes.Variable]bool{"X": false, "Y": false, "Z": true, "T": true}, res.Values)
	assert.Equal(t, 2, res.Stats.NbTop)
}

// monotony checks that the measure of each vertex, truncated to its rank, never decreases.
type monotony struct {
	t        *testing.T
	ranks    map[bes.Variable]int
	last     map[bes.Variable]Measure
	sweeps   int
	resolved int
}

func newMonotony(t *testing.T, sys *bes.System) *monotony {
	g, err := BuildGraph(sys)
	require.NoError(t, err)
	mon := &monotony{t: t, ranks: make(map[bes.Variable]int), last: make(map[bes.Variable]Measure)}
	for _, vx := range g.Vertices {
		mon.ranks[vx.Var] = vx.Rank
		mon.last[vx.Var] = MakeMeasure(make([]uint64, g.D())...)
	}
	return mon
}

func (mon *monotony) Sweep(n, changed int) {
	mon.sweeps++
	assert.Equal(mon.t, mon.sweeps, n)
}

func (mon *monotony) Update(v bes.Variable, m Measure) {
	prev := mon.last[v]
	assert.Equal(mon.t, 1, Compare(m, prev, mon.ranks[v]), "measure of %s went from %v to %v", v, prev, m)
	mon.last[v] = m
}

func (mon *monotony) Resolve(v bes.Variable, value bool) {
	mon.resolved++
	assert.Equal(mon.t, !value, mon.last[v].IsTop())
}

func TestProgressMeasuresMonotony(t *testing.T) {
	for _, jacobi := range []bool{false, true} {
		for _, test := range fixtures {
			t.Run(fmt.Sprintf("%s/jacobi=%t", test.name, jacobi), func(t *testing.T) {
				sys := load(t, test.name)
				mon := newMonotony(t, sys)
				res, err := (&ProgressMeasures{Observer: mon, Jacobi: jacobi}).Solve(context.Background(), sys)
				require.NoError(t, err)
				assert.Equal(t, res.Stats.NbSweeps, mon.sweeps)
				assert.Equal(t, len(sys.Equations), mon.resolved)
			})
		}
	}
}

func TestProgressMeasuresIdempotence(t *testing.T) {
	for _, test := range fixtures {
		t.Run(test.name, func(t *testing.T) {
			sys := load(t, test.name)
			pm := &ProgressMeasures{}
			res1, err := pm.Solve(context.Background(), sys)
			require.NoError(t, err)
			res2, err := pm.Solve(context.Background(), sys)
			require.NoError(t, err)
			assert.Equal(t, res1, res2)

			g, err := BuildGraph(sys)
			require.NoError(t, err)
			s := &sweeper{g: g, beta: g.Ranking.Beta, t: newTable(len(g.Vertices), g.D())}
			require.NoError(t, pm.run(context.Background(), s, &Stats{}))
			assert.Equal(t, 0, s.gaussSeidel(NopObserver{}, make([]uint64, g.D())), "sweep after stabilization")
		})
	}
}

func TestProgressMeasuresCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, jacobi := range []bool{false, true} {
		res, err := (&ProgressMeasures{Jacobi: jacobi}).Solve(ctx, load(t, "worked.bes"))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, Indet, res.Status)
		assert.Nil(t, res.Values)
	}
}

func TestProgressMeasuresSweepLimit(t *testing.T) {
	pm := &ProgressMeasures{MaxSweeps: 1}
	res, err := pm.Solve(context.Background(), load(t, "worked.bes"))
	assert.ErrorIs(t, err, ErrSweepLimit)
	assert.Equal(t, Indet, res.Status)
	assert.Equal(t, 1, res.Stats.NbSweeps)

	pm.MaxSweeps = 2
	res, err = pm.Solve(context.Background(), load(t, "worked.bes"))
	require.NoError(t, err)
	assert.Equal(t, True, res.Status)
}

func TestProgressMeasuresInvalid(t *testing.T) {
	sys := &bes.System{
		Equations: []bes.Equation{{Symbol: bes.Mu, Var: "X", Formula: bes.Var("Y")}},
		Init:      "X",
	}
	res, err := (&ProgressMeasures{}).Solve(context.Background(), sys)
	assert.ErrorIs(t, err, bes.ErrOpenSystem)
	assert.Equal(t, Indet, res.Status)
	_, err = Solve(sys)
	assert.ErrorIs(t, err, bes.ErrOpenSystem)
}

func TestNew(t *testing.T) {
	s, err := New(StrategySPM)
	require.NoError(t, err)
	assert.IsType(t, &ProgressMeasures{}, s)
	s, err = New(StrategyGauss)
	require.NoError(t, err)
	assert.IsType(t, &GaussElimination{}, s)
	_, err = New("zielonka")
	assert.Error(t, err)
}

func TestObservers(t *testing.T) {
	var counts [2]int
	obs := Observers(sweepCounter{&counts[0]}, NopObserver{}, sweepCounter{&counts[1]})
	_, err := (&ProgressMeasures{Observer: obs}).Solve(context.Background(), load(t, "worked.bes"))
	require.NoError(t, err)
	assert.Equal(t, [2]int{2, 2}, counts)
}

type sweepCounter struct{ n *int }

func (c sweepCounter) Sweep(int, int)              { *c.n++ }
func (c sweepCounter) Update(bes.Variable, Measure) {}
func (c sweepCounter) Resolve(bes.Variable, bool)  {}

func ExampleProgressMeasures() {
	sys := &bes.System{
		Equations: []bes.Equation{
			{Symbol: bes.Nu, Var: "X1", Formula: bes.And(bes.Var("X2"), bes.Var("X1"))},
			{Symbol: bes.Mu, Var: "X2", Formula: bes.Or(bes.Var("X1"), bes.Var("X2"))},
		},
		Init: "X1",
	}
	res, err := (&ProgressMeasures{}).Solve(context.Background(), sys)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Status, res.Measures["X1"], res.Measures["X2"])
	// Output: TRUE [0 0] [0 1]
}
