package search

// solveOnceBuilder wraps a child DecisionBuilder and its monitors so the
// whole sub-search runs as a single nested solve, appearing to the parent
// search as an atomic decision rather than a sequence of individually
// backtrackable ones.
type solveOnceBuilder struct {
	db       DecisionBuilder
	monitors []SearchMonitor
	restore  bool
	done     bool
}

// MakeSolveOnce returns a DecisionBuilder that, on its first Next call,
// runs db to completion as a nested search (with monitors attached) via
// Solver.NestedSolve, restoring solver state afterward. If the nested
// search found no solution it calls Fail; otherwise it reports itself
// exhausted so the parent search continues. With restore=true the nested
// search's side effects on the trail are undone, so
// only what the nested search posted as permanent constraints (if any)
// survives.
func MakeSolveOnce(db DecisionBuilder, monitors ...SearchMonitor) DecisionBuilder {
	return &solveOnceBuilder{db: db, monitors: monitors, restore: true}
}

// MakeSolveOnceKeepState is MakeSolveOnce but leaves the solver in
// whatever state the nested search ended in (restore=false), for callers
// that want the nested search's last assignment to persist as the
// current state of the parent search.
func MakeSolveOnceKeepState(db DecisionBuilder, monitors ...SearchMonitor) DecisionBuilder {
	return &solveOnceBuilder{db: db, monitors: monitors, restore: false}
}

func (n *solveOnceBuilder) Next(s Solver) (Decision, bool) {
	if n.done {
		return nil, false
	}
	n.done = true
	if !s.NestedSolve(n.db, n.restore, n.monitors) {
		s.Fail()
	}
	return nil, false
}
