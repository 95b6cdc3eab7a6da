package solver

import (
	"strconv"
	"strings"
)

// A Measure is a progress measure: either Top, or a vector of d naturals.
// The zero value is the empty vector. Measures returned by the solvers are never modified afterwards.
type Measure struct {
	top bool
	vec []uint64
}

// Top is the measure greater than every vector.
var Top = Measure{top: true}

// MakeMeasure returns the vector measure with the given entries.
func MakeMeasure(vec ...uint64) Measure {
	return Measure{vec: vec}
}

// IsTop is true iff m is Top.
func (m Measure) IsTop() bool {
	return m.top
}

// Vector returns the entries of m, or nil if m is Top.
// The returned slice must not be modified.
func (m Measure) Vector() []uint64 {
	if m.top {
		return nil
	}
	return m.vec
}

func (m Measure) String() string {
	if m.top {
		return "T"
	}
	strs := make([]string, len(m.vec))
	for i, v := range m.vec {
		strs[i] = strconv.FormatUint(v, 10)
	}
	return "[" + strings.Join(strs, " ") + "]"
}

// clone returns a copy of m that does not share its storage.
func (m Measure) clone() Measure {
	if m.top {
		return Top
	}
	vec := make([]uint64, len(m.vec))
	copy(vec, m.vec)
	return Measure{vec: vec}
}

// Compare compares a and b lexicographically on their entries 0 to m, both included.
// It returns -1 if a < b, 0 if they are equal up to m, 1 if a > b.
// Top is greater than any vector and only equal to itself. Entries missing from a vector
// shorter than m+1, such as the zero Measure, count as 0.
func Compare(a, b Measure, m int) int {
	switch {
	case a.top && b.top:
		return 0
	case a.top:
		return 1
	case b.top:
		return -1
	}
	for i := 0; i <= m; i++ {
		ai, bi := entry(a.vec, i), entry(b.vec, i)
		if ai < bi {
			return -1
		}
		if ai > bi {
			return 1
		}
	}
	return 0
}

func entry(vec []uint64, i int) uint64 {
	if i < len(vec) {
		return vec[i]
	}
	return 0
}

// inc increments vec at index p, wrapping saturated entries to 0 and carrying
// into the previous index. Entry i is saturated when it reaches beta[i].
// It returns false iff the carry went past index 0, i.e the result is Top.
func inc(vec []uint64, p int, beta []uint64) bool {
	for ; p >= 0; p-- {
		if vec[p] >= beta[p] {
			vec[p] = 0
			continue
		}
		vec[p]++
		return true
	}
	return false
}

// A table holds the measure of each vertex. All vectors share the same backing array.
type table struct {
	d        int
	measures []Measure
}

func newTable(n, d int) *table {
	arena := make([]uint64, n*d)
	measures := make([]Measure, n)
	for i := range measures {
		measures[i].vec = arena[i*d : (i+1)*d : (i+1)*d]
	}
	return &table{d: d, measures: measures}
}

// set writes the candidate measure of vertex v, described by top and vec.
// It returns true iff the measure of v changed.
func (t *table) set(v int, top bool, vec []uint64) bool {
	cur := &t.measures[v]
	if top {
		if cur.top {
			return false
		}
		cur.top = true
		return true
	}
	if !cur.top && equal(cur.vec, vec) {
		return false
	}
	cur.top = false
	copy(cur.vec, vec)
	return true
}

func equal(a, b []uint64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
