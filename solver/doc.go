/*
Package solver decides the value of the initial variable of a Boolean Equation System.

Describing a system

Systems are described with the bes package, either programmatically or by parsing their
textual form:

    sys, err := bes.Parse(f)

The system must be closed (see bes.System.Validate) and in standard form: each right-hand side is
a constant, a variable, or a single connective between variables. Standard form is not checked;
a formula with nested connectives is treated according to its top-level connective only.

Solving a system

The simplest way to solve a system is:

    val, err := solver.Solve(sys)

Two strategies are available, both implementing Interface:

  - ProgressMeasures, the small progress measures algorithm. The system is seen as a parity
    game where each equation is a vertex, owned by the verifier if its formula is a disjunction
    and by the refuter otherwise, with a priority given by the rank of its block. Measures are
    lifted, sweep after sweep, until they are stable; variables whose measure is not Top are true.
    Measures are lifted in place by default; with the Jacobi option, each sweep is computed in
    parallel from the measures of the previous one.

  - GaussElimination, which eliminates equations one after the other by substitution.

Both strategies agree on every closed system in standard form.

    s := &solver.ProgressMeasures{Observer: obs}
    res, err := s.Solve(ctx, sys)
    if err != nil {
        ...
    }
    fmt.Println(res.Status, res.Measures)

Errors

A system that is not closed is reported with a *bes.ConfigurationError before solving starts.
Solving can be cancelled through its context; the result then has the Indet status.
*/
package solver
