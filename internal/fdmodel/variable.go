package fdmodel

import "github.com/gitrdm/searchcore/pkg/search"

// intVar is the reference IntVar: a name, an index into the owning
// Solver's variable list (used by constraint rechecks and Store), and a
// current *domain swapped in place on every mutation. Every mutating
// method pushes an undo closure restoring the prior domain onto the
// solver's trail before installing the new one, and calls
// solver.recheckFrom(idx) so any constraint watching this variable gets a
// chance to react (or fail) immediately, matching a real propagator's
// synchronous-on-post behavior closely enough for the scenarios this
// host is built to run.
type intVar struct {
	solver *Solver
	idx    int
	name   string
	cur    *domain
}

var _ search.IntVar = (*intVar)(nil)

func (v *intVar) Min() int64 {
	if v.cur.isEmpty() {
		return 0
	}
	return v.cur.lo
}

func (v *intVar) Max() int64 {
	if v.cur.isEmpty() {
		return 0
	}
	return v.cur.hi
}

func (v *intVar) Size() int64 { return v.cur.size() }

func (v *intVar) Bound() bool { return !v.cur.isEmpty() && v.cur.lo == v.cur.hi }

func (v *intVar) Contains(val int64) bool { return v.cur.contains(val) }

func (v *intVar) Value() int64 { return v.cur.lo }

func (v *intVar) Name() string { return v.name }

func (v *intVar) install(nd *domain) {
	if nd == v.cur {
		return
	}
	old := v.cur
	v.solver.pushUndo(func() { v.cur = old })
	v.cur = nd
	if nd.isEmpty() {
		v.solver.Fail()
		return
	}
	v.solver.recheckFrom(v.idx)
}

func (v *intVar) SetValue(val int64) { v.install(v.cur.withValue(val)) }
func (v *intVar) SetMin(m int64)     { v.install(v.cur.withMin(m)) }
func (v *intVar) SetMax(m int64)     { v.install(v.cur.withMax(m)) }
func (v *intVar) RemoveValue(val int64) { v.install(v.cur.withHole(val)) }

func (v *intVar) DomainIterator() search.DomainIterator {
	vals := make([]int64, 0, v.cur.size())
	v.cur.forEach(func(x int64) { vals = append(vals, x) })
	return &sliceIterator{vals: vals, i: -1}
}

type sliceIterator struct {
	vals []int64
	i    int
}

func (it *sliceIterator) Next() bool {
	it.i++
	return it.i < len(it.vals)
}

func (it *sliceIterator) Value() int64 { return it.vals[it.i] }
