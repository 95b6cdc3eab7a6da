package bes

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolIntern(t *testing.T) {
	a, b := Var("a"), Var("b")
	p := NewPool()
	assert.Equal(t, 2, p.Len())

	ab := p.Intern(And(a, b))
	n := p.Len()
	assert.Equal(t, ab, p.Intern(And(a, b)))
	assert.Equal(t, ab, p.Intern(And(b, a)))
	assert.Equal(t, n, p.Len(), "interning an existing expression must not add nodes")
	assert.NotEqual(t, ab, p.Intern(Or(a, b)))

	assert.Equal(t, FalseRef, p.Intern(And(a, False)))
	assert.Equal(t, TrueRef, p.Intern(Or(True, b)))
	assert.Equal(t, TrueRef, p.Intern(Or(a, Not(a))))
	assert.Equal(t, FalseRef, p.Intern(And(Not(b), b)))
	assert.Equal(t, p.Intern(a), p.Intern(Not(Not(a))))
	assert.Equal(t, p.Intern(Not(a)), p.Intern(Imp(a, False)))
	assert.Equal(t, p.Intern(Or(Not(a), b)), p.Intern(Imp(a, b)))
	assert.Equal(t, p.Intern(a), p.Intern(And(a, a)))
}

func TestPoolEval(t *testing.T) {
	a, b, c := Var("a"), Var("b"), Var("c")
	exprs := []Expr{
		Imp(And(a, b), Or(Not(a), c)),
		Or(And(a, Not(b)), And(Not(a), b)),
		Not(Imp(c, Or(a, False))),
		And(Or(a, b), Or(Not(a), c)),
	}
	p := NewPool()
	for _, e := range exprs {
		r := p.Intern(e)
		for i := 0; i < 8; i++ {
			model := map[Variable]bool{"a": i&1 != 0, "b": i&2 != 0, "c": i&4 != 0}
			assert.Equal(t, e.Eval(model), p.Eval(r, model), "%s under %v", e, model)
		}
	}
	assert.Panics(t, func() { p.Eval(p.Var("d"), map[Variable]bool{}) })
}

func TestSubstitutionApply(t *testing.T) {
	p := NewPool()
	f := p.Intern(Or(Var("X"), And(Var("Y"), Not(Var("X")))))

	s := p.NewSubstitution(map[Variable]Ref{"X": FalseRef})
	got, err := s.Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, p.Var("Y"), got)

	s = p.NewSubstitution(map[Variable]Ref{"X": p.Var("Z")})
	got, err = s.Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, p.Intern(Or(Var("Z"), And(Var("Y"), Not(Var("Z"))))), got)

	s = p.NewSubstitution(map[Variable]Ref{"W": TrueRef})
	got, err = s.Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

// ladder returns an expression whose tree has 2^n leaves but whose graph has O(n) nodes.
func ladder(p *Pool, n int) Ref {
	r := p.Var("X")
	for k := 0; k < n; k++ {
		x, y := p.Var(Variable(fmt.Sprintf("x%d", k))), p.Var(Variable(fmt.Sprintf("y%d", k)))
		r = p.Or(p.And(r, x), p.And(r, y))
	}
	return r
}

func TestSubstitutionSharing(t *testing.T) {
	p := NewPool()
	r := ladder(p, 64)
	before := p.Len()
	s := p.NewSubstitution(map[Variable]Ref{"X": p.Var("Z")})
	got, err := s.Apply(context.Background(), r)
	require.NoError(t, err)
	assert.NotEqual(t, r, got)
	assert.LessOrEqual(t, p.Len()-before, 3*64+1)

	s = p.NewSubstitution(map[Variable]Ref{"X": FalseRef})
	got, err = s.Apply(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, FalseRef, got)
}

func TestSubstitutionCancel(t *testing.T) {
	p := NewPool()
	r := p.Var("X")
	for k := 0; k < 1000; k++ {
		r = p.And(r, p.Var(Variable(fmt.Sprintf("x%d", k))))
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := p.NewSubstitution(map[Variable]Ref{"X": TrueRef})
	_, err := s.Apply(ctx, r)
	assert.ErrorIs(t, err, context.Canceled)
}
