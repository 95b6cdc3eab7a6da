package bes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	f := And(Or(Var("a"), Not(Var("b"))), Imp(Var("c"), False))
	const expected = "(a || !b) && (c => false)"
	if f.String() != expected {
		t.Errorf("string representation of formula not as expected: wanted %q, got %q", expected, f.String())
	}
}

func TestIsOr(t *testing.T) {
	assert.True(t, IsOr(Or(Var("a"), Var("b"))))
	assert.False(t, IsOr(And(Var("a"), Var("b"))))
	assert.False(t, IsOr(Not(Or(Var("a"), Var("b")))))
	assert.False(t, IsOr(Imp(Var("a"), Var("b"))))
	assert.False(t, IsOr(Var("a")))
	assert.False(t, IsOr(True))
	assert.True(t, IsTrue(True))
	assert.True(t, IsFalse(False))
	assert.False(t, IsTrue(Var("true")))
}

func TestOccurrences(t *testing.T) {
	f := Or(And(Var("b"), Var("a")), Imp(Not(Var("b")), Or(Var("c"), True)))
	assert.Equal(t, []Variable{"b", "a", "c"}, Occurrences(f))
	assert.Empty(t, Occurrences(And(True, Not(False))))
}

func TestSimplify(t *testing.T) {
	a, b := Var("a"), Var("b")
	tests := []struct {
		in       Expr
		expected Expr
	}{
		{Not(True), False},
		{Not(Not(a)), a},
		{Not(Not(Not(False))), True},
		{And(True, a), a},
		{And(a, True), a},
		{And(a, False), False},
		{And(False, a), False},
		{Or(False, a), a},
		{Or(a, False), a},
		{Or(a, True), True},
		{Imp(False, a), True},
		{Imp(True, a), a},
		{Imp(a, True), True},
		{Imp(a, False), Not(a)},
		{And(Or(a, False), Imp(True, b)), And(a, b)},
		{Or(And(a, Not(True)), b), b},
		{Imp(a, b), Imp(a, b)},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, Simplify(test.in), "simplifying %s", test.in)
	}
}

func TestSubstitute(t *testing.T) {
	f := Or(Var("X"), And(Var("Y"), Not(Var("X"))))
	got := Substitute(f, map[Variable]Expr{"X": False, "Z": True})
	assert.Equal(t, "false || (Y && !false)", got.String())
	assert.Equal(t, "Y", Simplify(got).String())
	assert.Equal(t, f, Substitute(f, nil))
}

func TestEval(t *testing.T) {
	f := Imp(And(Var("a"), Var("b")), Or(Not(Var("a")), Var("c")))
	model := map[Variable]bool{"a": true, "b": true, "c": false}
	assert.False(t, f.Eval(model))
	model["c"] = true
	assert.True(t, f.Eval(model))
	model["b"] = false
	model["c"] = false
	assert.True(t, f.Eval(model))
	assert.Panics(t, func() { Var("d").Eval(model) })
}
