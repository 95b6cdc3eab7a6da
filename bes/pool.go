package bes

import (
	"context"
	"fmt"
)

// A Ref designates an expression stored in a Pool.
type Ref int32

// Refs of the constants. They are the same in every Pool.
const (
	FalseRef Ref = 0
	TrueRef  Ref = 1
)

type kind byte

const (
	kFalse kind = iota
	kTrue
	kVar
	kNot
	kAnd
	kOr
)

type node struct {
	kind        kind
	name        Variable // For kVar only
	left, right Ref
}

// A Pool stores expressions as a shared graph: structurally equal expressions are stored once
// and designated by the same Ref. Constants are propagated while nodes are built, and implications
// are stored as disjunctions.
//
// Substituting an expression in a Pool only builds the nodes on the paths leading to the substituted
// variables, the rest being shared with the original expression.
// A Pool is not safe for concurrent use.
type Pool struct {
	nodes []node
	index map[node]Ref
}

// NewPool returns a pool containing only the constants.
func NewPool() *Pool {
	p := &Pool{index: make(map[node]Ref)}
	p.mk(node{kind: kFalse})
	p.mk(node{kind: kTrue})
	return p
}

// Len is the number of distinct expressions stored in p.
func (p *Pool) Len() int {
	return len(p.nodes)
}

func (p *Pool) mk(n node) Ref {
	if r, ok := p.index[n]; ok {
		return r
	}
	r := Ref(len(p.nodes))
	p.nodes = append(p.nodes, n)
	p.index[n] = r
	return r
}

// Var returns the Ref of variable v.
func (p *Pool) Var(v Variable) Ref {
	return p.mk(node{kind: kVar, name: v})
}

// Not returns the Ref of the negation of r.
func (p *Pool) Not(r Ref) Ref {
	switch n := p.nodes[r]; n.kind {
	case kFalse:
		return TrueRef
	case kTrue:
		return FalseRef
	case kNot:
		return n.left
	}
	return p.mk(node{kind: kNot, left: r})
}

// And returns the Ref of the conjunction of l and r.
func (p *Pool) And(l, r Ref) Ref {
	switch {
	case l == FalseRef || r == FalseRef:
		return FalseRef
	case l == TrueRef:
		return r
	case r == TrueRef || l == r:
		return l
	case p.complements(l, r):
		return FalseRef
	}
	if l > r {
		l, r = r, l
	}
	return p.mk(node{kind: kAnd, left: l, right: r})
}

// Or returns the Ref of the disjunction of l and r.
func (p *Pool) Or(l, r Ref) Ref {
	switch {
	case l == TrueRef || r == TrueRef:
		return TrueRef
	case l == FalseRef:
		return r
	case r == FalseRef || l == r:
		return l
	case p.complements(l, r):
		return TrueRef
	}
	if l > r {
		l, r = r, l
	}
	return p.mk(node{kind: kOr, left: l, right: r})
}

// complements is true iff one of l and r is the negation of the other.
func (p *Pool) complements(l, r Ref) bool {
	nl, nr := p.nodes[l], p.nodes[r]
	return (nl.kind == kNot && nl.left == r) || (nr.kind == kNot && nr.left == l)
}

// Intern stores e in p and returns its Ref.
func (p *Pool) Intern(e Expr) Ref {
	switch e := e.(type) {
	case trueConst:
		return TrueRef
	case falseConst:
		return FalseRef
	case variable:
		return p.Var(Variable(e))
	case not:
		return p.Not(p.Intern(e[0]))
	case and:
		return p.And(p.Intern(e[0]), p.Intern(e[1]))
	case or:
		return p.Or(p.Intern(e[0]), p.Intern(e[1]))
	case imp:
		return p.Or(p.Not(p.Intern(e[0])), p.Intern(e[1]))
	default:
		panic(fmt.Errorf("unexpected expression type %T", e))
	}
}

// Eval evaluates the expression r under model.
// As for Expr.Eval, a variable absent from model makes Eval panic.
func (p *Pool) Eval(r Ref, model map[Variable]bool) bool {
	return p.eval(r, model, make(map[Ref]bool))
}

func (p *Pool) eval(r Ref, model map[Variable]bool, memo map[Ref]bool) bool {
	if val, ok := memo[r]; ok {
		return val
	}
	var val bool
	switch n := p.nodes[r]; n.kind {
	case kFalse:
		val = false
	case kTrue:
		val = true
	case kVar:
		b, ok := model[n.name]
		if !ok {
			panic(fmt.Errorf("model lacks binding for variable %s", string(n.name)))
		}
		val = b
	case kNot:
		val = !p.eval(n.left, model, memo)
	case kAnd:
		val = p.eval(n.left, model, memo) && p.eval(n.right, model, memo)
	case kOr:
		val = p.eval(n.left, model, memo) || p.eval(n.right, model, memo)
	}
	memo[r] = val
	return val
}

// checkEvery is the number of visited nodes between two checks of the context during a substitution.
const checkEvery = 256

// A Substitution replaces variables by expressions of a Pool.
// It remembers the image of every node it visits, so that applying it to several expressions
// sharing subterms only visits them once.
type Substitution struct {
	p     *Pool
	sigma map[Variable]Ref
	memo  map[Ref]Ref
	steps int
}

// NewSubstitution returns the substitution replacing each variable bound in sigma by its image.
func (p *Pool) NewSubstitution(sigma map[Variable]Ref) *Substitution {
	return &Substitution{p: p, sigma: sigma, memo: make(map[Ref]Ref)}
}

// Apply returns the Ref of r where each variable bound by s is replaced by its image.
// If ctx is done before the substitution is complete, ctx.Err() is returned.
func (s *Substitution) Apply(ctx context.Context, r Ref) (Ref, error) {
	if res, ok := s.memo[r]; ok {
		return res, nil
	}
	s.steps++
	if s.steps%checkEvery == 0 {
		if err := ctx.Err(); err != nil {
			return FalseRef, err
		}
	}
	n := s.p.nodes[r]
	var res Ref
	switch n.kind {
	case kFalse, kTrue:
		return r, nil
	case kVar:
		res = r
		if img, ok := s.sigma[n.name]; ok {
			res = img
		}
	case kNot:
		c, err := s.Apply(ctx, n.left)
		if err != nil {
			return FalseRef, err
		}
		res = s.p.Not(c)
	case kAnd, kOr:
		l, err := s.Apply(ctx, n.left)
		if err != nil {
			return FalseRef, err
		}
		rr, err := s.Apply(ctx, n.right)
		if err != nil {
			return FalseRef, err
		}
		if n.kind == kAnd {
			res = s.p.And(l, rr)
		} else {
			res = s.p.Or(l, rr)
		}
	}
	s.memo[r] = res
	return res, nil
}
