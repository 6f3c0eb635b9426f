package search

import "math"

// SimulatedAnnealing escapes plateaus by accepting worsening moves with a
// probability that decreases as the Cauchy-schedule temperature cools.
type SimulatedAnnealing struct {
	Metaheuristic

	temperature0 int64
	iteration    int64
	firstNeighborSeen bool
}

// MakeSimulatedAnnealing returns a SimulatedAnnealing monitor with the
// given initial temperature.
func MakeSimulatedAnnealing(s Solver, maximize bool, objective IntVar, step, temperature0 int64) *SimulatedAnnealing {
	return &SimulatedAnnealing{Metaheuristic: newMetaheuristic(s, maximize, objective, step), temperature0: temperature0}
}

func (sa *SimulatedAnnealing) EnterSearch() {
	sa.Metaheuristic.EnterSearch()
	sa.iteration = 1
	sa.firstNeighborSeen = false
}

// temperature returns the Cauchy-schedule temperature T = temperature0 /
// iteration.
func (sa *SimulatedAnnealing) temperature() float64 {
	if sa.iteration <= 0 {
		return float64(sa.temperature0)
	}
	return float64(sa.temperature0) / float64(sa.iteration)
}

// ApplyDecision posts obj >= current + step + energy_bound (max) or
// obj <= current - step - energy_bound (min), where
// energy_bound = T * ln(rand()) and rand() is drawn uniform in (0, 1).
func (sa *SimulatedAnnealing) ApplyDecision(d Decision) {
	if d == sa.solver.BalancingDecision() {
		return
	}
	t := sa.temperature()
	r := sa.uniform01()
	energyBound := int64(t * math.Log(r))
	s := sa.solver
	if sa.maximize {
		s.AddConstraint(s.MakeGreaterOrEqual(sa.objective, sa.current+sa.step+energyBound))
	} else {
		s.AddConstraint(s.MakeLessOrEqual(sa.objective, sa.current-sa.step-energyBound))
	}
}

// uniform01 draws a value in (0, 1) from the host RNG.
func (sa *SimulatedAnnealing) uniform01() float64 {
	const scale = 1 << 30
	r := sa.solver.Rand64(scale)
	return float64(r+1) / float64(scale+1)
}

// LocalOptimum resets current to the worst extreme, increments the
// iteration counter, and returns true iff the temperature is still
// strictly positive (the schedule has not yet frozen).
func (sa *SimulatedAnnealing) LocalOptimum() bool {
	sa.current = sa.worstExtreme()
	sa.iteration++
	return sa.temperature() > 0
}

// AcceptNeighbor increments the iteration counter, except for the very
// first accepted neighbor (the schedule starts at iteration 1).
func (sa *SimulatedAnnealing) AcceptNeighbor() {
	if sa.firstNeighborSeen {
		sa.iteration++
	}
	sa.firstNeighborSeen = true
}
