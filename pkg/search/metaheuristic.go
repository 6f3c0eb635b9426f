package search

import "math"

// Metaheuristic is the shared base for Tabu Search, Simulated Annealing,
// and Guided Local Search. All three reshape the feasible region after
// every solution or local optimum to escape plateaus, and all three share
// the same refute-time admissibility check: on refute, fail if the
// current branch cannot possibly beat best by step anymore (the branch
// being refuted is dead weight once no improvement is reachable from it).
type Metaheuristic struct {
	BaseMonitor

	solver    Solver
	objective IntVar
	maximize  bool
	step      int64

	current int64 // last solution's objective
	best    int64
	haveAny bool
}

func newMetaheuristic(s Solver, maximize bool, objective IntVar, step int64) Metaheuristic {
	return Metaheuristic{solver: s, objective: objective, maximize: maximize, step: step}
}

func (m *Metaheuristic) worstExtreme() int64 {
	if m.maximize {
		return math.MinInt64
	}
	return math.MaxInt64
}

func (m *Metaheuristic) EnterSearch() {
	m.current = m.worstExtreme()
	m.best = m.worstExtreme()
	m.haveAny = false
}

// beatsBest reports whether v is strictly better than best by at least
// step. Before any solution exists, everything "beats" the unset best.
func (m *Metaheuristic) beatsBest(v int64) bool {
	if !m.haveAny {
		return true
	}
	if m.maximize {
		return v >= m.best+m.step
	}
	return v <= m.best-m.step
}

// admissible fails the branch if the objective's current best-case bound
// (Max when maximizing, Min when minimizing) can no longer beat best.
func (m *Metaheuristic) admissible() bool {
	if !m.haveAny {
		return true
	}
	if m.maximize {
		return m.objective.Max() >= m.best+m.step
	}
	return m.objective.Min() <= m.best-m.step
}

func (m *Metaheuristic) RefuteDecision(d Decision) {
	if !m.admissible() {
		m.solver.Fail()
	}
}

func (m *Metaheuristic) AtSolution() bool {
	v := m.objective.Value()
	if m.beatsBest(v) || !m.haveAny {
		m.best = v
	}
	m.current = v
	m.haveAny = true
	return true
}
