package search

// RegularLimit enforces up to four budgets: wall-clock time (ms),
// branches, failures, and solutions. On EnterSearch it snapshots the
// solver's current counters as offsets, so limits are relative to the
// start of (this) search rather than absolute. Once Check reports the
// limit crossed, it latches: every subsequent Check returns true until
// the next EnterSearch. Its own BeginNextDecision and RefuteDecision hooks
// call Fail whenever Check is true.
type RegularLimit struct {
	BaseMonitor

	solver Solver

	wallTimeMs int64 // <=0 means unbounded
	branches   int64
	failures   int64
	solutions  int64

	smartTimeCheck bool

	// offsets captured at EnterSearch
	startWallTime int64
	startBranches int64
	startFailures int64
	startSolutions int64

	latched bool

	// smart_time_check bookkeeping
	checksSinceLastClock int64
	checksSkippedBudget   int64
	callRateEstimate      float64
}

// MakeLimit returns a RegularLimit. Any budget <= 0 is treated as
// unbounded (never exceeded by that dimension alone).
func MakeLimit(s Solver, wallTimeMs, branches, failures, solutions int64, smartTimeCheck bool) *RegularLimit {
	return &RegularLimit{
		solver:         s,
		wallTimeMs:     wallTimeMs,
		branches:       branches,
		failures:       failures,
		solutions:      solutions,
		smartTimeCheck: smartTimeCheck,
	}
}

func (l *RegularLimit) EnterSearch() {
	l.startWallTime = l.solver.WallTime()
	l.startBranches = l.solver.Branches()
	l.startFailures = l.solver.Failures()
	l.startSolutions = l.solver.Solutions()
	l.latched = false
	l.checksSinceLastClock = 0
	l.checksSkippedBudget = 0
}

// UpdateLimits tightens an already-constructed limit's budgets in place,
// without resetting its offsets or latch, matching the original's
// iterative-deepening use case (SPEC_FULL.md §C.3).
func (l *RegularLimit) UpdateLimits(wallTimeMs, branches, failures, solutions int64) {
	l.wallTimeMs, l.branches, l.failures, l.solutions = wallTimeMs, branches, failures, solutions
}

// CopyFrom copies other's latched state into l, for warm-started re-solves
// (SPEC_FULL.md §C.4).
func (l *RegularLimit) CopyFrom(other *RegularLimit) {
	l.wallTimeMs, l.branches, l.failures, l.solutions = other.wallTimeMs, other.branches, other.failures, other.solutions
	l.latched = other.latched
}

// Check returns true iff at least one budget is strictly exceeded
// relative to the EnterSearch snapshot, or the limit has already latched.
// smart_time_check mode: the time budget is evaluated only on calls that
// read the clock (see shouldSkipClockRead), so it can be detected up to
// 100 calls late. No call rate is estimated.
func (l *RegularLimit) Check() bool {
	if l.latched {
		return true
	}
	if l.branches > 0 && l.solver.Branches()-l.startBranches > l.branches {
		l.latched = true
		return true
	}
	if l.failures > 0 && l.solver.Failures()-l.startFailures > l.failures {
		l.latched = true
		return true
	}
	if l.solutions > 0 && l.solver.Solutions()-l.startSolutions > l.solutions {
		l.latched = true
		return true
	}
	if l.wallTimeMs > 0 {
		if l.shouldSkipClockRead() {
			return false
		}
		elapsed := l.solver.WallTime() - l.startWallTime
		if elapsed > l.wallTimeMs {
			l.latched = true
			return true
		}
	}
	return false
}

// shouldSkipClockRead implements smart_time_check as a fixed cycle: a run
// of at least 100 calls reads the clock, the next 100 calls skip the read,
// then both counters reset and the cycle repeats. The decision does not
// depend on elapsed time or on how close the budget is.
func (l *RegularLimit) shouldSkipClockRead() bool {
	if !l.smartTimeCheck {
		return false
	}
	l.checksSinceLastClock++
	const warmup = 100
	const maxSkip = 100
	if l.checksSinceLastClock <= warmup {
		return false
	}
	if l.checksSkippedBudget >= maxSkip {
		l.checksSkippedBudget = 0
		l.checksSinceLastClock = 0
		return false
	}
	l.checksSkippedBudget++
	return true
}

// BeginNextDecision and RefuteDecision are the two hook points spec.md
// §4.H calls RegularLimit.Check from; both fail the branch the moment
// Check reports a budget exceeded.
func (l *RegularLimit) BeginNextDecision(db DecisionBuilder) {
	if l.Check() {
		l.solver.Fail()
	}
}

func (l *RegularLimit) RefuteDecision(d Decision) {
	if l.Check() {
		l.solver.Fail()
	}
}

// CustomLimit delegates to a user predicate. It must be safely
// cloneable: Clone returns a new CustomLimit sharing the same predicate
// function value but none of the original's mutable state, so the clone
// does not own (and cannot invalidate) the predicate.
type CustomLimit struct {
	BaseMonitor

	solver    Solver
	predicate func() bool
}

// MakeCustomLimit returns a CustomLimit delegating to predicate.
func MakeCustomLimit(s Solver, predicate func() bool) *CustomLimit {
	return &CustomLimit{solver: s, predicate: predicate}
}

// Clone returns a new CustomLimit sharing predicate but no other state.
func (c *CustomLimit) Clone() *CustomLimit {
	return &CustomLimit{solver: c.solver, predicate: c.predicate}
}

func (c *CustomLimit) Check() bool {
	if c.predicate == nil {
		return false
	}
	return c.predicate()
}

func (c *CustomLimit) BeginNextDecision(db DecisionBuilder) {
	if c.Check() {
		c.solver.Fail()
	}
}

func (c *CustomLimit) RefuteDecision(d Decision) {
	if c.Check() {
		c.solver.Fail()
	}
}

// GetTime returns the solver's current wall-clock counter, exposed as a
// free function for parity with the public surface in spec.md §6.
func GetTime(s Solver) int64 { return s.WallTime() }
