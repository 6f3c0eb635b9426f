package fdmodel

import "github.com/gitrdm/searchcore/pkg/search"

// genericConstraint is every constraint this host posts: a check
// function re-evaluated whenever any variable changes (Solver.recheckFrom),
// reporting false the moment the constraint is provably violated given
// the current (possibly partial) bounds. This is weaker than real
// bound-consistency propagation — only a few checks narrow a domain
// (MakeGreaterOrEqual/MakeLessOrEqual set a bound, MakeEquality and the
// Is*CstCt reifications fix a variable once the other side decides it) —
// but it is enough to reject inconsistent branches by the time they
// reach a leaf, which is all the search-control core's own tests need
// from a host.
type genericConstraint struct {
	solver *Solver
	check  func() bool
}

var _ search.Constraint = (*genericConstraint)(nil)

func (c *genericConstraint) Post() {
	c.solver.constraints = append(c.solver.constraints, c)
	if !c.check() {
		c.solver.Fail()
	}
}

func (s *Solver) newConstraint(check func() bool) search.Constraint {
	return &genericConstraint{solver: s, check: check}
}

func (s *Solver) AddConstraint(c search.Constraint) { c.Post() }

func (s *Solver) MakeBoolVar(name string) search.IntVar {
	return s.newVar(name, 0, 1)
}

func (s *Solver) MakeIsEqualCstCt(e search.IntExpr, value int64, target search.IntVar) search.Constraint {
	return s.newConstraint(func() bool {
		if e.Min() == e.Max() {
			want := boolOf(e.Min() == value)
			if target.Bound() {
				return target.Value() == want
			}
			target.SetValue(want)
			return true
		}
		if target.Bound() && target.Value() == 1 && (e.Min() > value || e.Max() < value) {
			return false
		}
		return true
	})
}

func (s *Solver) MakeIsDifferentCstCt(e search.IntExpr, value int64, target search.IntVar) search.Constraint {
	return s.newConstraint(func() bool {
		if e.Min() == e.Max() {
			want := boolOf(e.Min() != value)
			if target.Bound() {
				return target.Value() == want
			}
			target.SetValue(want)
			return true
		}
		return true
	})
}

func (s *Solver) MakeIsGreaterOrEqualCstCt(e search.IntExpr, value int64, target search.IntVar) search.Constraint {
	return s.newConstraint(func() bool {
		if e.Min() >= value {
			if target.Bound() {
				return target.Value() == 1
			}
			target.SetValue(1)
			return true
		}
		if e.Max() < value {
			if target.Bound() {
				return target.Value() == 0
			}
			target.SetValue(0)
			return true
		}
		return true
	})
}

func (s *Solver) MakeIsLessOrEqualCstCt(e search.IntExpr, value int64, target search.IntVar) search.Constraint {
	return s.newConstraint(func() bool {
		if e.Max() <= value {
			if target.Bound() {
				return target.Value() == 1
			}
			target.SetValue(1)
			return true
		}
		if e.Min() > value {
			if target.Bound() {
				return target.Value() == 0
			}
			target.SetValue(0)
			return true
		}
		return true
	})
}

func (s *Solver) MakeGreaterOrEqual(e search.IntExpr, value int64) search.Constraint {
	return s.newConstraint(func() bool {
		if v, ok := e.(search.IntVar); ok && !v.Bound() && v.Min() < value {
			v.SetMin(value)
		}
		return e.Max() >= value
	})
}

func (s *Solver) MakeLessOrEqual(e search.IntExpr, value int64) search.Constraint {
	return s.newConstraint(func() bool {
		if v, ok := e.(search.IntVar); ok && !v.Bound() && v.Max() > value {
			v.SetMax(value)
		}
		return e.Min() <= value
	})
}

func (s *Solver) MakeGreaterOrEqualExpr(a, b search.IntExpr) search.Constraint {
	return s.newConstraint(func() bool { return a.Max() >= b.Min() })
}

func (s *Solver) MakeLessOrEqualExpr(a, b search.IntExpr) search.Constraint {
	return s.newConstraint(func() bool { return a.Min() <= b.Max() })
}

func (s *Solver) MakeEquality(a, b search.IntExpr) search.Constraint {
	return s.newConstraint(func() bool {
		if av, ok := a.(search.IntVar); ok && !av.Bound() && b.Min() == b.Max() {
			av.SetValue(b.Min())
		}
		if bv, ok := b.(search.IntVar); ok && !bv.Bound() && a.Min() == a.Max() {
			bv.SetValue(a.Min())
		}
		return a.Max() >= b.Min() && b.Max() >= a.Min()
	})
}

func (s *Solver) MakeNonEquality(a, b search.IntExpr) search.Constraint {
	return s.newConstraint(func() bool {
		if a.Min() == a.Max() && b.Min() == b.Max() {
			return a.Min() != b.Min()
		}
		return true
	})
}

func (s *Solver) MakeSumGreaterOrEqual(vars []search.IntVar, value int64) search.Constraint {
	return s.newConstraint(func() bool {
		var hi int64
		for _, v := range vars {
			hi += v.Max()
		}
		return hi >= value
	})
}

func boolOf(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
