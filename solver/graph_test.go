package solver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcrl2org/besolve/bes"
)

// load parses the system in testdata/name.
func load(t *testing.T, name string) *bes.System {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()
	sys, err := bes.Parse(f)
	require.NoError(t, err, "could not parse %s", name)
	return sys
}

func parse(t *testing.T, desc string) *bes.System {
	t.Helper()
	sys, err := bes.Parse(strings.NewReader(desc))
	require.NoError(t, err)
	return sys
}

func TestBuildGraphWorked(t *testing.T) {
	g, err := BuildGraph(load(t, "worked.bes"))
	require.NoError(t, err)
	require.Len(t, g.Vertices, 2)
	assert.Equal(t, 0, g.Init)
	assert.Equal(t, 2, g.D())
	assert.Equal(t, []uint64{0, 1}, g.Ranking.Beta)
	assert.Equal(t, 1, g.Ranking.MaxRank)

	x1, x2 := g.Vertices[0], g.Vertices[1]
	assert.Equal(t, bes.Variable("X1"), x1.Var)
	assert.Equal(t, Conjunctive, x1.Owner)
	assert.Equal(t, 0, x1.Rank)
	assert.Equal(t, []int{1, 0}, x1.Succ)
	assert.Equal(t, bes.Variable("X2"), x2.Var)
	assert.Equal(t, Disjunctive, x2.Owner)
	assert.Equal(t, 1, x2.Rank)
	assert.Equal(t, []int{0, 1}, x2.Succ)
}

func TestBuildGraphConstants(t *testing.T) {
	g, err := BuildGraph(load(t, "constants.bes"))
	require.NoError(t, err)
	require.Len(t, g.Vertices, 4)
	assert.Equal(t, []int{0, 1}, g.Vertices[0].Succ)
	assert.Empty(t, g.Vertices[1].Succ)
	assert.True(t, g.Vertices[1].Falsum, "mu Y = false")
	assert.Equal(t, Disjunctive, g.Vertices[2].Owner)
	assert.Empty(t, g.Vertices[3].Succ)
	assert.False(t, g.Vertices[3].Falsum, "mu T = true")
}

func TestBuildGraphDuplicateOccurrences(t *testing.T) {
	g, err := BuildGraph(parse(t, "pbes mu X = Y && Y; nu Y = X || X; init Y;"))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, g.Vertices[0].Succ)
	assert.Equal(t, []int{0}, g.Vertices[1].Succ)
	assert.Equal(t, 1, g.Init)
}

func TestBuildGraphErrors(t *testing.T) {
	tests := []struct {
		name string
		sys  *bes.System
		err  error
	}{
		{
			"open",
			&bes.System{
				Equations: []bes.Equation{{Symbol: bes.Nu, Var: "X", Formula: bes.And(bes.Var("X"), bes.Var("Y"))}},
				Init:      "X",
			},
			bes.ErrOpenSystem,
		},
		{
			"duplicate",
			&bes.System{
				Equations: []bes.Equation{
					{Symbol: bes.Nu, Var: "X", Formula: bes.Var("X")},
					{Symbol: bes.Mu, Var: "X", Formula: bes.True},
				},
				Init: "X",
			},
			bes.ErrDuplicateBinder,
		},
		{"empty", &bes.System{Init: "X"}, bes.ErrEmptySystem},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g, err := BuildGraph(test.sys)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, test.err)
			var cerr *bes.ConfigurationError
			assert.True(t, errors.As(err, &cerr))
		})
	}
}
