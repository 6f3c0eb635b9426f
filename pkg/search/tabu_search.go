package search

import "math"

// tabuEntry is one (variable, value) pair recorded in a rolling tabu
// list, timestamped by the monotone stamp it was pushed at.
type tabuEntry struct {
	v     IntVar
	value int64
	stamp int64
}

// TabuSearch escapes plateaus by forbidding recently-tried (var, value)
// pairs (the forbid list) while requiring recently-committed ones to
// persist for a while (the keep list), both aged out by tenure. See
// SPEC_FULL.md / spec.md §4.G for the five constraints posted on every
// decision.
type TabuSearch struct {
	Metaheuristic

	vars         []IntVar
	keepTenure   int64
	forbidTenure int64
	factor       float64 // tabu_factor: 1.0 => all listed pairs required, 0.0 => none required

	keep   []tabuEntry
	forbid []tabuEntry
	stamp  int64
	last   int64 // objective of the solution before the previous one
	afterFirstLocalOptimum bool
	snapshot Assignment
}

// MakeTabuSearch returns a TabuSearch monitor over vars (the decision
// variables whose (var,value) pairs are tracked), minimizing or
// maximizing objective by step, with the given keep/forbid tenures and
// tabu_factor (1.0 requires every listed pair to be respected, 0.0
// requires none).
func MakeTabuSearch(s Solver, maximize bool, objective IntVar, step int64, vars []IntVar, keepTenure, forbidTenure int64, factor float64) *TabuSearch {
	return &TabuSearch{
		Metaheuristic: newMetaheuristic(s, maximize, objective, step),
		vars:          vars,
		keepTenure:    keepTenure,
		forbidTenure:  forbidTenure,
		factor:        factor,
	}
}

func (t *TabuSearch) EnterSearch() {
	t.Metaheuristic.EnterSearch()
	t.keep = t.keep[:0]
	t.forbid = t.forbid[:0]
	t.stamp = 0
	t.last = t.worstExtreme()
	t.afterFirstLocalOptimum = false
	t.snapshot = nil
}

// ApplyDecision posts the five tabu constraints ahead of committing d's
// apply branch, except for the balancing decision (which carries no
// variable/value semantics to tabu against).
func (t *TabuSearch) ApplyDecision(d Decision) {
	if d == t.solver.BalancingDecision() {
		return
	}
	t.postConstraints()
}

func (t *TabuSearch) postConstraints() {
	s := t.solver
	combined := make([]tabuEntry, 0, len(t.keep)+len(t.forbid))
	combined = append(combined, t.keep...)
	combined = append(combined, t.forbid...)

	// 1. Aspiration: objective strictly beats best +/- step.
	aspiration := s.MakeBoolVar("tabu_aspiration")
	if t.maximize {
		s.AddConstraint(s.MakeIsGreaterOrEqualCstCt(t.objective, t.best+t.step, aspiration))
	} else {
		s.AddConstraint(s.MakeIsLessOrEqualCstCt(t.objective, t.best-t.step, aspiration))
	}

	// 2. Tabu satisfaction: >= ceil(factor * n) listed pairs respected.
	satisfied := s.MakeBoolVar("tabu_satisfied")
	if len(combined) == 0 {
		s.AddConstraint(s.MakeIsGreaterOrEqualCstCt(constInt(1), 1, satisfied))
	} else {
		respected := make([]IntVar, 0, len(combined))
		for i, e := range t.keep {
			_ = i
			b := s.MakeBoolVar("tabu_keep_respected")
			s.AddConstraint(s.MakeIsEqualCstCt(e.v, e.value, b))
			respected = append(respected, b)
		}
		for _, e := range t.forbid {
			b := s.MakeBoolVar("tabu_forbid_respected")
			s.AddConstraint(s.MakeIsDifferentCstCt(e.v, e.value, b))
			respected = append(respected, b)
		}
		required := int64(math.Ceil(t.factor * float64(len(combined))))
		exprs := make([]IntExpr, len(respected))
		for i, b := range respected {
			exprs[i] = b
		}
		sumVar := s.MakeSum(exprs...)
		s.AddConstraint(s.MakeIsGreaterOrEqualCstCt(sumVar, required, satisfied))
	}

	// 3. aspiration OR tabu >= 1.
	s.AddConstraint(s.MakeSumGreaterOrEqual([]IntVar{aspiration, satisfied}, 1))

	// 4. Downhill.
	if t.maximize {
		s.AddConstraint(s.MakeGreaterOrEqual(t.objective, t.current+t.step))
	} else {
		s.AddConstraint(s.MakeLessOrEqual(t.objective, t.current-t.step))
	}

	// 5. Plateau breaker.
	s.AddConstraint(s.MakeNonEquality(t.objective, constInt(t.last)))
}

func (t *TabuSearch) AtSolution() bool {
	old := t.current
	t.last = old
	if t.afterFirstLocalOptimum && t.snapshot != nil {
		for i, v := range t.vars {
			newVal := v.Value()
			if !t.snapshot.Activated(i) || t.snapshot.Value(i) == newVal {
				continue
			}
			t.keep = append(t.keep, tabuEntry{v, newVal, t.stamp})
			t.forbid = append(t.forbid, tabuEntry{v, t.snapshot.Value(i), t.stamp})
		}
	}
	t.Metaheuristic.AtSolution()
	t.stamp++
	return true
}

// LocalOptimum ages both lists (dropping entries with stamp strictly
// less than stamp - tenure, per spec.md §9's "ambiguity to preserve"),
// resets current to the worst extreme, and takes a fresh snapshot to
// diff against at the next solution.
func (t *TabuSearch) LocalOptimum() bool {
	t.keep = ageEntries(t.keep, t.stamp, t.keepTenure)
	t.forbid = ageEntries(t.forbid, t.stamp, t.forbidTenure)
	t.current = t.worstExtreme()
	t.snapshot = t.solver.Store(t.vars, nil)
	t.afterFirstLocalOptimum = true
	t.stamp++
	return true
}

func ageEntries(entries []tabuEntry, stamp, tenure int64) []tabuEntry {
	kept := entries[:0]
	for _, e := range entries {
		if e.stamp >= stamp-tenure {
			kept = append(kept, e)
		}
	}
	return kept
}

// constIntExpr is a trivial IntExpr wrapping a fixed value, used to post
// constraints against host-side constants (e.g. "last") without
// requiring the Solver interface to expose a separate constant factory.
type constIntExpr int64

func constInt(v int64) constIntExpr { return constIntExpr(v) }

func (c constIntExpr) Min() int64 { return int64(c) }
func (c constIntExpr) Max() int64 { return int64(c) }
