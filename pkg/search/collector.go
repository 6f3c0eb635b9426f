package search

// solutionRecord bundles one captured solution's snapshot and metadata.
// Collectors keep three parallel sequences (snapshot, metadata,
// objective) at all times the same length by always appending/removing a
// full solutionRecord.
type solutionRecord struct {
	snapshot  Assignment
	wallTime  int64
	branches  int64
	failures  int64
	objective int64
	hasObj    bool
}

// replacementPolicy decides what AtSolution does to the retained
// sequence when a new solution arrives: append (All/First, with First
// additionally refusing pushes after the first), replace-the-only-slot
// (Last), or replace-if-better (BestValue).
type replacementPolicy interface {
	// push is called with the candidate record; it returns the records
	// slice after applying the policy, and the records it evicted (to be
	// returned to the recycle list).
	push(records []solutionRecord, candidate solutionRecord) (next []solutionRecord, evicted []solutionRecord)
}

// SolutionCollector captures solutions and their metadata as a
// SearchMonitor. Vars/objective name what gets snapshotted at each
// AtSolution. Records a policy evicts, and those EnterSearch releases,
// are appended to the free list; buildRecord does not draw from it, so
// every accepted solution takes a fresh Solver.Store snapshot.
type SolutionCollector struct {
	BaseMonitor

	solver    Solver
	vars      []IntVar
	objective IntExpr
	maximize  bool
	policy    replacementPolicy

	records []solutionRecord
	free    []solutionRecord // released records; not reused by buildRecord
}

func newCollector(s Solver, vars []IntVar, objective IntExpr, maximize bool, policy replacementPolicy) *SolutionCollector {
	return &SolutionCollector{solver: s, vars: vars, objective: objective, maximize: maximize, policy: policy}
}

// MakeFirstSolutionCollector returns a SolutionCollector that captures
// only the first solution; later solutions are ignored. Its
// solution_count() is never more than 1.
func MakeFirstSolutionCollector(s Solver, vars []IntVar, objective IntExpr) *SolutionCollector {
	return newCollector(s, vars, objective, false, firstPolicy{})
}

// MakeLastSolutionCollector returns a SolutionCollector that always
// replaces its single retained slot with the newest solution.
func MakeLastSolutionCollector(s Solver, vars []IntVar, objective IntExpr) *SolutionCollector {
	return newCollector(s, vars, objective, false, lastPolicy{})
}

// MakeBestValueSolutionCollector returns a SolutionCollector that retains
// exactly one snapshot: the strict extremum (maximize selects the
// largest, otherwise the smallest) objective value seen so far. Per
// SPEC_FULL.md, the comparison uses the live objective bound
// (Max in maximize mode, Min in minimize mode) rather than the snapshot's
// recorded value, for parity with the host's own convention.
func MakeBestValueSolutionCollector(s Solver, vars []IntVar, objective IntExpr, maximize bool) *SolutionCollector {
	return newCollector(s, vars, objective, maximize, &bestValuePolicy{maximize: maximize})
}

// MakeAllSolutionCollector returns a SolutionCollector that captures
// every solution.
func MakeAllSolutionCollector(s Solver, vars []IntVar, objective IntExpr) *SolutionCollector {
	return newCollector(s, vars, objective, false, allPolicy{})
}

// EnterSearch releases everything captured so far back to the recycle
// list; no state leaks across runs.
func (c *SolutionCollector) EnterSearch() {
	c.free = append(c.free, c.records...)
	c.records = c.records[:0]
	if p, ok := c.policy.(*bestValuePolicy); ok {
		p.hasBest = false
	}
}

func (c *SolutionCollector) AtSolution() bool {
	candidate := c.buildRecord()
	next, evicted := c.policy.push(c.records, candidate)
	c.records = next
	c.free = append(c.free, evicted...)
	return true
}

func (c *SolutionCollector) buildRecord() solutionRecord {
	rec := solutionRecord{
		snapshot: c.solver.Store(c.vars, c.objective),
		wallTime: c.solver.WallTime(),
		branches: c.solver.Branches(),
		failures: c.solver.Failures(),
	}
	if c.objective != nil {
		if c.maximize {
			rec.objective = c.objective.Max()
		} else {
			rec.objective = c.objective.Min()
		}
		rec.hasObj = true
	}
	return rec
}

// SolutionCount returns the number of solutions currently retained.
func (c *SolutionCollector) SolutionCount() int { return len(c.records) }

// Solution returns the i'th retained snapshot. Bounds-checked; returns
// ErrInvalidIndex (identifying itself via the error text) on violation.
func (c *SolutionCollector) Solution(i int) (Assignment, error) {
	if i < 0 || i >= len(c.records) {
		return nil, ErrInvalidIndex
	}
	return c.records[i].snapshot, nil
}

// WallTime returns the solver's WallTime (ms since the solver was created)
// at which the i'th solution was recorded.
func (c *SolutionCollector) WallTime(i int) (int64, error) {
	if i < 0 || i >= len(c.records) {
		return 0, ErrInvalidIndex
	}
	return c.records[i].wallTime, nil
}

// Branches returns the branch count at the i'th solution.
func (c *SolutionCollector) Branches(i int) (int64, error) {
	if i < 0 || i >= len(c.records) {
		return 0, ErrInvalidIndex
	}
	return c.records[i].branches, nil
}

// Failures returns the failure count at the i'th solution.
func (c *SolutionCollector) Failures(i int) (int64, error) {
	if i < 0 || i >= len(c.records) {
		return 0, ErrInvalidIndex
	}
	return c.records[i].failures, nil
}

// ObjectiveValue returns the objective value recorded at the i'th
// solution, if an objective was tracked.
func (c *SolutionCollector) ObjectiveValue(i int) (int64, bool, error) {
	if i < 0 || i >= len(c.records) {
		return 0, false, ErrInvalidIndex
	}
	return c.records[i].objective, c.records[i].hasObj, nil
}

// --- replacement policies ---

type firstPolicy struct{}

func (firstPolicy) push(records []solutionRecord, candidate solutionRecord) ([]solutionRecord, []solutionRecord) {
	if len(records) >= 1 {
		return records, []solutionRecord{candidate} // discard the candidate itself
	}
	return append(records, candidate), nil
}

type lastPolicy struct{}

func (lastPolicy) push(records []solutionRecord, candidate solutionRecord) ([]solutionRecord, []solutionRecord) {
	if len(records) == 0 {
		return append(records, candidate), nil
	}
	evicted := records[0]
	records[0] = candidate
	return records, []solutionRecord{evicted}
}

type allPolicy struct{}

func (allPolicy) push(records []solutionRecord, candidate solutionRecord) ([]solutionRecord, []solutionRecord) {
	return append(records, candidate), nil
}

// bestValuePolicy keeps exactly one snapshot, replacing it (and updating
// "best") only when the new solution strictly beats the previously
// retained one.
type bestValuePolicy struct {
	maximize bool
	hasBest  bool
	best     int64
}

func (p *bestValuePolicy) push(records []solutionRecord, candidate solutionRecord) ([]solutionRecord, []solutionRecord) {
	improves := !p.hasBest
	if p.hasBest {
		if p.maximize {
			improves = candidate.objective > p.best
		} else {
			improves = candidate.objective < p.best
		}
	}
	if !improves {
		return records, []solutionRecord{candidate}
	}
	p.best, p.hasBest = candidate.objective, true
	if len(records) == 0 {
		return append(records, candidate), nil
	}
	evicted := records[0]
	records[0] = candidate
	return records, []solutionRecord{evicted}
}
