package bes

import (
	"fmt"

	"github.com/hashicorp/go-set/v2"
)

// A Variable is the name of a boolean variable. It identifies the equation binding it.
type Variable string

// An Expr is a boolean expression: a constant, a variable, or a connective applied to
// subexpressions. Expressions are immutable and can safely be shared.
type Expr interface {
	String() string
	// Eval evaluates the expression under the given model.
	// It panics if the model lacks a binding for one of the variables.
	Eval(model map[Variable]bool) bool
	subst(sigma map[Variable]Expr) Expr
	simplify() Expr
	occurrences(seen *set.Set[Variable], res []Variable) []Variable
}

// The "true" constant.
type trueConst struct{}

// True is the constant denoting a tautology.
var True Expr = trueConst{}

func (t trueConst) String() string                     { return "true" }
func (t trueConst) Eval(model map[Variable]bool) bool  { return true }
func (t trueConst) subst(sigma map[Variable]Expr) Expr { return t }
func (t trueConst) simplify() Expr                     { return t }
func (t trueConst) occurrences(_ *set.Set[Variable], res []Variable) []Variable {
	return res
}

// The "false" constant.
type falseConst struct{}

// False is the constant denoting a contradiction.
var False Expr = falseConst{}

func (f falseConst) String() string                     { return "false" }
func (f falseConst) Eval(model map[Variable]bool) bool  { return false }
func (f falseConst) subst(sigma map[Variable]Expr) Expr { return f }
func (f falseConst) simplify() Expr                     { return f }
func (f falseConst) occurrences(_ *set.Set[Variable], res []Variable) []Variable {
	return res
}

// Var generates a reference to the named variable.
func Var(name Variable) Expr {
	return variable(name)
}

type variable Variable

func (v variable) String() string {
	return string(v)
}

func (v variable) Eval(model map[Variable]bool) bool {
	b, ok := model[Variable(v)]
	if !ok {
		panic(fmt.Errorf("model lacks binding for variable %s", string(v)))
	}
	return b
}

func (v variable) subst(sigma map[Variable]Expr) Expr {
	if e, ok := sigma[Variable(v)]; ok {
		return e
	}
	return v
}

func (v variable) simplify() Expr { return v }

func (v variable) occurrences(seen *set.Set[Variable], res []Variable) []Variable {
	if seen.Insert(Variable(v)) {
		res = append(res, Variable(v))
	}
	return res
}

// Not represents a negation. It negates the given subexpression.
func Not(e Expr) Expr {
	return not{e}
}

type not [1]Expr

func (n not) String() string {
	return "!" + operand(n[0])
}

func (n not) Eval(model map[Variable]bool) bool {
	return !n[0].Eval(model)
}

func (n not) subst(sigma map[Variable]Expr) Expr {
	return not{n[0].subst(sigma)}
}

func (n not) simplify() Expr {
	switch e := n[0].simplify().(type) {
	case trueConst:
		return False
	case falseConst:
		return True
	case not:
		return e[0]
	default:
		return not{e}
	}
}

func (n not) occurrences(seen *set.Set[Variable], res []Variable) []Variable {
	return n[0].occurrences(seen, res)
}

// And generates the conjunction of two subexpressions.
func And(left, right Expr) Expr {
	return and{left, right}
}

type and [2]Expr

func (a and) String() string {
	return operand(a[0]) + " && " + operand(a[1])
}

func (a and) Eval(model map[Variable]bool) bool {
	return a[0].Eval(model) && a[1].Eval(model)
}

func (a and) subst(sigma map[Variable]Expr) Expr {
	return and{a[0].subst(sigma), a[1].subst(sigma)}
}

func (a and) simplify() Expr {
	left := a[0].simplify()
	switch left.(type) {
	case falseConst:
		return False
	case trueConst:
		return a[1].simplify()
	}
	right := a[1].simplify()
	switch right.(type) {
	case falseConst:
		return False
	case trueConst:
		return left
	}
	return and{left, right}
}

func (a and) occurrences(seen *set.Set[Variable], res []Variable) []Variable {
	res = a[0].occurrences(seen, res)
	return a[1].occurrences(seen, res)
}

// Or generates the disjunction of two subexpressions.
func Or(left, right Expr) Expr {
	return or{left, right}
}

type or [2]Expr

func (o or) String() string {
	return operand(o[0]) + " || " + operand(o[1])
}

func (o or) Eval(model map[Variable]bool) bool {
	return o[0].Eval(model) || o[1].Eval(model)
}

func (o or) subst(sigma map[Variable]Expr) Expr {
	return or{o[0].subst(sigma), o[1].subst(sigma)}
}

func (o or) simplify() Expr {
	left := o[0].simplify()
	switch left.(type) {
	case trueConst:
		return True
	case falseConst:
		return o[1].simplify()
	}
	right := o[1].simplify()
	switch right.(type) {
	case trueConst:
		return True
	case falseConst:
		return left
	}
	return or{left, right}
}

func (o or) occurrences(seen *set.Set[Variable], res []Variable) []Variable {
	res = o[0].occurrences(seen, res)
	return o[1].occurrences(seen, res)
}

// Imp indicates the left subexpression implies the right one.
// Unlike Implies in formula libraries based on NNF, the implication is kept as a node of its own.
func Imp(left, right Expr) Expr {
	return imp{left, right}
}

type imp [2]Expr

func (i imp) String() string {
	return operand(i[0]) + " => " + operand(i[1])
}

func (i imp) Eval(model map[Variable]bool) bool {
	return !i[0].Eval(model) || i[1].Eval(model)
}

func (i imp) subst(sigma map[Variable]Expr) Expr {
	return imp{i[0].subst(sigma), i[1].subst(sigma)}
}

func (i imp) simplify() Expr {
	left := i[0].simplify()
	if _, ok := left.(falseConst); ok {
		return True
	}
	right := i[1].simplify()
	switch right.(type) {
	case trueConst:
		return True
	case falseConst:
		return not{left}.simplify()
	}
	if _, ok := left.(trueConst); ok {
		return right
	}
	return imp{left, right}
}

func (i imp) occurrences(seen *set.Set[Variable], res []Variable) []Variable {
	res = i[0].occurrences(seen, res)
	return i[1].occurrences(seen, res)
}

// operand returns the string of e, parenthesized if e is a binary node.
func operand(e Expr) string {
	switch e.(type) {
	case and, or, imp:
		return "(" + e.String() + ")"
	default:
		return e.String()
	}
}

// IsOr is true iff e is, syntactically, a disjunction.
// It does not look below the top-level node: "!(a && b)" is not a disjunction.
func IsOr(e Expr) bool {
	_, ok := e.(or)
	return ok
}

// IsTrue is true iff e is the constant True.
func IsTrue(e Expr) bool {
	_, ok := e.(trueConst)
	return ok
}

// IsFalse is true iff e is the constant False.
func IsFalse(e Expr) bool {
	_, ok := e.(falseConst)
	return ok
}

// Occurrences returns the variables occurring in e, each one once, in order of first occurrence.
func Occurrences(e Expr) []Variable {
	return e.occurrences(set.New[Variable](0), nil)
}

// Substitute returns e where each variable bound in sigma is replaced by its image.
// The result shares its leaves and the images of sigma with the inputs.
func Substitute(e Expr, sigma map[Variable]Expr) Expr {
	if len(sigma) == 0 {
		return e
	}
	return e.subst(sigma)
}

// Simplify returns an equivalent expression where constants have been propagated away.
// The result is either a constant or an expression where no constant appears.
func Simplify(e Expr) Expr {
	return e.simplify()
}
