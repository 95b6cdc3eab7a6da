package bes

import (
	"strings"

	"github.com/hashicorp/go-set/v2"
)

// Symbol is the fixpoint symbol of an equation.
type Symbol byte

const (
	// Nu denotes a greatest fixpoint.
	Nu = Symbol(iota)
	// Mu denotes a least fixpoint.
	Mu
)

func (s Symbol) String() string {
	switch s {
	case Nu:
		return "nu"
	case Mu:
		return "mu"
	default:
		panic("invalid fixpoint symbol")
	}
}

// An Equation binds a variable to a formula, as a least or greatest fixpoint.
type Equation struct {
	Symbol  Symbol
	Var     Variable
	Formula Expr
}

func (eq Equation) String() string {
	return eq.Symbol.String() + " " + string(eq.Var) + " = " + eq.Formula.String() + ";"
}

// A System is an ordered list of equations and the variable whose value is queried.
// The order of the equations matters: it defines the nesting of fixpoints.
// A System is not modified by the solvers, but must not be modified while they run either.
type System struct {
	Equations []Equation
	Init      Variable
}

// Validate checks the system is closed: each variable is bound by exactly one equation,
// and each variable appearing in a formula, as well as the initial variable, is bound.
// The error, if any, is a *ConfigurationError.
func (sys *System) Validate() error {
	if len(sys.Equations) == 0 {
		return &ConfigurationError{Err: ErrEmptySystem}
	}
	bound := set.New[Variable](len(sys.Equations))
	for i, eq := range sys.Equations {
		if !bound.Insert(eq.Var) {
			return &ConfigurationError{Err: ErrDuplicateBinder, Var: eq.Var, Equation: i}
		}
	}
	for i, eq := range sys.Equations {
		for _, v := range Occurrences(eq.Formula) {
			if !bound.Contains(v) {
				return &ConfigurationError{Err: ErrOpenSystem, Var: v, Equation: i}
			}
		}
	}
	if !bound.Contains(sys.Init) {
		return &ConfigurationError{Err: ErrOpenSystem, Var: sys.Init, Equation: -1}
	}
	return nil
}

// Index associates each bound variable with the position of its equation.
// It fails if a variable is bound twice.
func (sys *System) Index() (map[Variable]int, error) {
	idx := make(map[Variable]int, len(sys.Equations))
	for i, eq := range sys.Equations {
		if _, ok := idx[eq.Var]; ok {
			return nil, &ConfigurationError{Err: ErrDuplicateBinder, Var: eq.Var, Equation: i}
		}
		idx[eq.Var] = i
	}
	return idx, nil
}

// String returns the system in the textual format accepted by Parse.
func (sys *System) String() string {
	var sb strings.Builder
	sb.WriteString("pbes\n")
	for _, eq := range sys.Equations {
		sb.WriteString("  ")
		sb.WriteString(eq.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("init ")
	sb.WriteString(string(sys.Init))
	sb.WriteString(";\n")
	return sb.String()
}
