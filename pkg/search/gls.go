package search

import "sort"

// CostFunc2 is a binary arc cost function cost(i, j) for the variable at
// index i taking value j.
type CostFunc2 func(i int, j int64) int64

// CostFunc3 is a ternary arc cost function cost(i, j, k) where k comes
// from a parallel "secondary" variable array.
type CostFunc3 func(i int, j, k int64) int64

// GuidedLocalSearch associates each (variable, value) arc with a
// non-negative penalty count, incremented at each local optimum on the
// worst-utility arcs, and folds the accumulated penalties into the
// objective bound so the search is pushed away from repeatedly-chosen
// expensive arcs.
type GuidedLocalSearch struct {
	Metaheuristic

	vars          []IntVar
	secondary     []IntVar // nil for the binary evaluator
	cost2         CostFunc2
	cost3         CostFunc3
	penaltyFactor float64
	penalties     GuidedLocalSearchPenalties

	anyPenalty    bool
	baselineTotal int64
	deltaPerIndex map[int]int64
	deltaTotal    int64
	deltaReady    bool
}

// MakeGuidedLocalSearch returns the binary-evaluator GLS monitor: cost is
// a function of (variable index, value).
func MakeGuidedLocalSearch(s Solver, maximize bool, objective IntVar, step int64, vars []IntVar, cost CostFunc2, penaltyFactor float64, penalties GuidedLocalSearchPenalties) *GuidedLocalSearch {
	return &GuidedLocalSearch{
		Metaheuristic: newMetaheuristic(s, maximize, objective, step),
		vars:          vars,
		cost2:         cost,
		penaltyFactor: penaltyFactor,
		penalties:     penalties,
	}
}

// MakeGuidedLocalSearchTernary returns the ternary-evaluator GLS monitor:
// cost is a function of (variable index, primary value, secondary value),
// with secondary[i] the parallel variable contributing the third argument
// for vars[i].
func MakeGuidedLocalSearchTernary(s Solver, maximize bool, objective IntVar, step int64, vars, secondary []IntVar, cost CostFunc3, penaltyFactor float64, penalties GuidedLocalSearchPenalties) *GuidedLocalSearch {
	return &GuidedLocalSearch{
		Metaheuristic: newMetaheuristic(s, maximize, objective, step),
		vars:          vars,
		secondary:     secondary,
		cost3:         cost,
		penaltyFactor: penaltyFactor,
		penalties:     penalties,
	}
}

func (g *GuidedLocalSearch) costAt(i int, j int64) int64 {
	if g.secondary != nil {
		return g.cost3(i, j, g.secondary[i].Value())
	}
	return g.cost2(i, j)
}

// penalizedTerm returns penalty_factor * penalty(i, j) * cost(i, j, ...),
// negated when maximizing (so the term always discourages, never
// encourages, repeated selection of a penalized arc).
func (g *GuidedLocalSearch) penalizedTerm(i int, j int64) int64 {
	p := g.penalties.Value(i, j)
	term := int64(g.penaltyFactor * float64(p) * float64(g.costAt(i, j)))
	if g.maximize {
		term = -term
	}
	return term
}

func (g *GuidedLocalSearch) EnterSearch() {
	g.Metaheuristic.EnterSearch()
	g.anyPenalty = false
	g.baselineTotal = 0
	g.deltaPerIndex = nil
	g.deltaReady = false
}

// ApplyDecision materializes the penalized objective (if any penalty
// exists yet) and posts the GLS objective bound; otherwise it falls back
// to plain objective tightening.
func (g *GuidedLocalSearch) ApplyDecision(d Decision) {
	if d == g.solver.BalancingDecision() {
		return
	}
	s := g.solver
	if !g.anyPenalty {
		if !g.haveAny {
			return
		}
		if g.maximize {
			s.AddConstraint(s.MakeGreaterOrEqual(g.objective, g.best+g.step))
		} else {
			s.AddConstraint(s.MakeLessOrEqual(g.objective, g.best-g.step))
		}
		return
	}

	penalized := g.buildPenalizedExpr()
	if g.maximize {
		lhs := s.MakeDifference(constInt(g.current+g.step), penalized)
		rhs := constInt(g.best + g.step)
		bound := s.MakeMin(lhs, rhs)
		s.AddConstraint(s.MakeGreaterOrEqualExpr(g.objective, bound))
	} else {
		lhs := s.MakeDifference(constInt(g.current-g.step), penalized)
		rhs := constInt(g.best - g.step)
		bound := s.MakeMax(lhs, rhs)
		s.AddConstraint(s.MakeLessOrEqualExpr(g.objective, bound))
	}
}

func (g *GuidedLocalSearch) buildPenalizedExpr() IntExpr {
	s := g.solver
	terms := make([]IntExpr, len(g.vars))
	for idx, v := range g.vars {
		i := idx
		if g.secondary != nil {
			terms[idx] = s.MakeElement2(func(j, k int64) int64 { return g.penalizedTermWithSecondary(i, j, k) }, v, g.secondary[idx])
		} else {
			terms[idx] = s.MakeElement(func(j int64) int64 { return g.penalizedTerm(i, j) }, v)
		}
	}
	return s.MakeSum(terms...)
}

func (g *GuidedLocalSearch) penalizedTermWithSecondary(i int, j, k int64) int64 {
	p := g.penalties.Value(i, j)
	term := int64(g.penaltyFactor * float64(p) * float64(g.cost3(i, j, k)))
	if g.maximize {
		term = -term
	}
	return term
}

// evaluateCurrentPenalized sums penalizedTerm over every variable at its
// currently bound value.
func (g *GuidedLocalSearch) evaluateCurrentPenalized() int64 {
	var total int64
	for i, v := range g.vars {
		total += g.penalizedTerm(i, v.Value())
	}
	return total
}

// AcceptDelta incrementally re-evaluates the penalized objective over a
// neighbor delta: for each changed index it subtracts the cached
// per-index contribution (if any), recomputes it, and adds it back. If
// deltadelta is empty the incremental state is resynchronized from the
// baseline (the last full evaluation, taken at the last LocalOptimum)
// rather than continuing to build on a possibly-stale prior delta.
func (g *GuidedLocalSearch) AcceptDelta(delta, deltadelta Assignment) bool {
	if delta == nil {
		return true
	}
	if deltadelta == nil || deltadelta.NumVars() == 0 || !g.deltaReady {
		g.deltaPerIndex = make(map[int]int64)
		g.deltaTotal = g.baselineTotal
		g.deltaReady = true
	}
	for i := 0; i < delta.NumVars(); i++ {
		if !delta.Activated(i) {
			continue
		}
		if old, ok := g.deltaPerIndex[i]; ok {
			g.deltaTotal -= old
		}
		val := delta.Value(i)
		contrib := g.penalizedTerm(i, val)
		g.deltaPerIndex[i] = contrib
		g.deltaTotal += contrib
	}

	var bound int64
	if g.maximize {
		bound = min64(g.current+g.step-g.deltaTotal, g.best+g.step)
	} else {
		bound = max64(g.current-g.step-g.deltaTotal, g.best-g.step)
	}
	if v, ok := delta.Objective(); ok {
		if g.maximize {
			return v >= bound
		}
		return v <= bound
	}
	return true
}

// LocalOptimum computes utility cost(i, var[i]) / (1 + penalty(arc)) for
// every index, increments the penalty of the top-utility arc and every
// arc tied with it, and resets current to the worst extreme.
func (g *GuidedLocalSearch) LocalOptimum() bool {
	type scored struct {
		i   int
		val int64
		u   float64
	}
	scores := make([]scored, len(g.vars))
	for i, v := range g.vars {
		val := v.Value()
		p := g.penalties.Value(i, val)
		scores[i] = scored{i, val, float64(g.costAt(i, val)) / float64(1+p)}
	}
	sort.Slice(scores, func(a, b int) bool { return scores[a].u > scores[b].u })
	if len(scores) > 0 {
		top := scores[0].u
		for _, sc := range scores {
			if sc.u < top {
				break
			}
			g.penalties.Increment(sc.i, sc.val)
			g.anyPenalty = true
		}
	}
	g.current = g.worstExtreme()
	g.baselineTotal = g.evaluateCurrentPenalized()
	g.deltaReady = false
	return true
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
