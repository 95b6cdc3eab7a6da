package solver

// Describes basic types and constants that are used by the solvers

// Status is the status of a system, or of one of its variables, at a given moment.
type Status byte

const (
	// Indet means the value is not known yet, typically because solving was interrupted.
	Indet = Status(iota)
	// True means the variable is true in the solution of the system.
	True
	// False means the variable is false in the solution of the system.
	False
)

func (s Status) String() string {
	switch s {
	case Indet:
		return "INDETERMINATE"
	case True:
		return "TRUE"
	case False:
		return "FALSE"
	default:
		panic("invalid status")
	}
}

// statusOf returns True if b is true, False else.
func statusOf(b bool) Status {
	if b {
		return True
	}
	return False
}

// Owner tells which player chooses the successor of a vertex in the parity game.
type Owner byte

const (
	// Conjunctive vertices are owned by the refuter: all successors must hold.
	Conjunctive = Owner(iota)
	// Disjunctive vertices are owned by the verifier: one successor is enough.
	Disjunctive
)

func (o Owner) String() string {
	if o == Disjunctive {
		return "disjunctive"
	}
	return "conjunctive"
}

// Stats are statistics about the resolution of a system.
// They are provided for information purpose only.
type Stats struct {
	NbSweeps  int // How many sweeps over the equations were done
	NbUpdates int // How many times a measure or an equation was rewritten
	NbTop     int // How many variables ended with the Top measure, i.e are false
}
