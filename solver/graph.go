package solver

import (
	"github.com/mcrl2org/besolve/bes"
)

// A Vertex is the parity game vertex associated with an equation.
type Vertex struct {
	Var   bes.Variable
	Owner Owner
	Rank  int
	Succ  []int // Indices of the vertices of the variables occurring in the formula
	// For a vertex without successors, Falsum tells whether its formula is false.
	// Such a vertex is lost by its owner, whatever it is.
	Falsum bool
}

// A Graph is the parity game described by a system.
// Vertices are in the same order as the equations they come from.
type Graph struct {
	Vertices []Vertex
	Ranking  bes.Ranking
	Init     int // Index of the vertex of the initial variable
}

// BuildGraph builds the parity game of sys.
// sys is validated first: the error, if any, is a *bes.ConfigurationError.
//
// The owner of a vertex only depends on the top-level connective of its formula: it is
// Disjunctive iff the formula is a disjunction. This is only correct if sys is in standard form.
func BuildGraph(sys *bes.System) (*Graph, error) {
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	idx, err := sys.Index()
	if err != nil {
		return nil, err
	}
	g := &Graph{
		Vertices: make([]Vertex, len(sys.Equations)),
		Ranking:  bes.Classify(sys.Equations),
		Init:     idx[sys.Init],
	}
	for i, eq := range sys.Equations {
		vx := &g.Vertices[i]
		vx.Var = eq.Var
		vx.Rank = g.Ranking.Ranks[i]
		if bes.IsOr(eq.Formula) {
			vx.Owner = Disjunctive
		}
		occs := bes.Occurrences(eq.Formula)
		vx.Succ = make([]int, len(occs))
		for j, v := range occs {
			succ, ok := idx[v]
			if !ok {
				return nil, &bes.ConfigurationError{Err: bes.ErrOpenSystem, Var: v, Equation: i}
			}
			vx.Succ[j] = succ
		}
		if len(vx.Succ) == 0 {
			vx.Falsum = !eq.Formula.Eval(nil)
		}
	}
	return g, nil
}

// D returns the length of the measure vectors of g.
func (g *Graph) D() int {
	return g.Ranking.D()
}
