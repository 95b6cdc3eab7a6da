// Package bes describes Boolean Equation Systems (BES).
//
// A BES is an ordered list of fixpoint equations
//
//	nu X1 = X2 && X1;
//	mu X2 = X1 || X2;
//
// together with an initial variable. Each equation binds one variable; the right-hand side is a
// propositional formula over the bound variables. The symbol of an equation tells whether its
// variable is defined as a greatest (nu) or least (mu) fixpoint, and the order of the equations
// gives the nesting of those fixpoints: earlier equations are outermost.
//
// The same system can be built programmatically:
//
//	sys := &bes.System{
//		Equations: []bes.Equation{
//			{Symbol: bes.Nu, Var: "X1", Formula: bes.And(bes.Var("X2"), bes.Var("X1"))},
//			{Symbol: bes.Mu, Var: "X2", Formula: bes.Or(bes.Var("X1"), bes.Var("X2"))},
//		},
//		Init: "X1",
//	}
//
// or parsed from its textual form with Parse.
//
// Solvers expect a closed system (every variable bound, no variable bound twice, see
// System.Validate) in standard form: the right-hand side of every equation is a constant, a
// variable, or a single connective whose operands are variables. Standard form is not checked by
// this package.
//
// Classify derives from the order of the equations the rank of each equation and the bound
// vector used by the small progress measures algorithm.
package bes
