package solver

import "github.com/mcrl2org/besolve/bes"

// An Observer is notified of the progress of a solver.
// Observers are called synchronously, from the goroutine that called Solve; they must not
// modify the system being solved.
type Observer interface {
	// Sweep is called at the end of each sweep (for ProgressMeasures) or of each elimination
	// step (for GaussElimination), n being its 1-based number and changed the number of
	// measures or equations that were rewritten during it.
	Sweep(n, changed int)
	// Update is called each time the measure of a variable changes.
	Update(v bes.Variable, m Measure)
	// Resolve is called once the value of a variable is known.
	Resolve(v bes.Variable, value bool)
}

// NopObserver ignores all notifications. It is the observer used when none is given.
type NopObserver struct{}

func (NopObserver) Sweep(int, int)              {}
func (NopObserver) Update(bes.Variable, Measure) {}
func (NopObserver) Resolve(bes.Variable, bool)  {}

// Observers returns an observer forwarding each notification to all the given observers, in order.
func Observers(obs ...Observer) Observer {
	return multiObserver(obs)
}

type multiObserver []Observer

func (mo multiObserver) Sweep(n, changed int) {
	for _, o := range mo {
		o.Sweep(n, changed)
	}
}

func (mo multiObserver) Update(v bes.Variable, m Measure) {
	for _, o := range mo {
		o.Update(v, m)
	}
}

func (mo multiObserver) Resolve(v bes.Variable, value bool) {
	for _, o := range mo {
		o.Resolve(v, value)
	}
}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return NopObserver{}
	}
	return o
}
