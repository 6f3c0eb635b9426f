package search

import "math"

// OptimizeVar tightens an objective variable's bound between and during
// solutions. It enforces the objective-tightening invariant (§3): after
// each accepted solution with value v, all subsequent search is
// constrained to an objective strictly better than v by at least Step.
type OptimizeVar struct {
	BaseMonitor

	solver   Solver
	maximize bool
	obj      IntVar
	step     int64

	best int64
}

// MakeOptimize returns an OptimizeVar monitor. maximize selects the
// direction; step must be strictly positive (ErrNonPositiveStep is a
// documented precondition violation, not a runtime-checked error, per
// §7's "misuse" taxonomy — callers are expected to validate before
// constructing).
func MakeOptimize(s Solver, maximize bool, obj IntVar, step int64) *OptimizeVar {
	return &OptimizeVar{solver: s, maximize: maximize, obj: obj, step: step}
}

// MakeMinimize returns MakeOptimize(s, false, obj, step).
func MakeMinimize(s Solver, obj IntVar, step int64) *OptimizeVar {
	return MakeOptimize(s, false, obj, step)
}

// MakeMaximize returns MakeOptimize(s, true, obj, step).
func MakeMaximize(s Solver, obj IntVar, step int64) *OptimizeVar {
	return MakeOptimize(s, true, obj, step)
}

func (o *OptimizeVar) EnterSearch() {
	if o.maximize {
		o.best = math.MinInt64
	} else {
		o.best = math.MaxInt64
	}
}

// applyBound re-asserts obj >= best+step (max) or obj <= best-step (min).
func (o *OptimizeVar) applyBound() {
	if o.maximize {
		if o.best == math.MinInt64 {
			return // no solution yet; nothing to tighten against
		}
		o.solver.AddConstraint(o.solver.MakeGreaterOrEqual(o.obj, o.best+o.step))
	} else {
		if o.best == math.MaxInt64 {
			return
		}
		o.solver.AddConstraint(o.solver.MakeLessOrEqual(o.obj, o.best-o.step))
	}
}

func (o *OptimizeVar) RefuteDecision(d Decision) { o.applyBound() }

func (o *OptimizeVar) RestartSearch() { o.applyBound() }

// AcceptSolution returns true iff the candidate strictly improves best by
// at least Step.
func (o *OptimizeVar) AcceptSolution() bool {
	v := o.obj.Value()
	if o.maximize {
		return o.best == math.MinInt64 || v >= o.best+o.step
	}
	return o.best == math.MaxInt64 || v <= o.best-o.step
}

// AtSolution asserts the improvement held and updates best.
func (o *OptimizeVar) AtSolution() bool {
	if !o.AcceptSolution() {
		panic("search: OptimizeVar.AtSolution called for a solution that does not improve best by step")
	}
	v := o.obj.Value()
	o.best = v
	return true
}

// Best returns the current best objective value found, and whether any
// solution has been accepted yet.
func (o *OptimizeVar) Best() (int64, bool) {
	if o.maximize {
		return o.best, o.best != math.MinInt64
	}
	return o.best, o.best != math.MaxInt64
}
