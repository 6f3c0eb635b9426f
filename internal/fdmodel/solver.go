package fdmodel

import (
	"context"
	"math/rand"
	"time"

	"github.com/gitrdm/searchcore/pkg/search"
)

// failSignal unwinds the Go call stack to the nearest protected
// choice-point boundary, the reference host's implementation of
// Solver.Fail's "never returns to its caller" contract. It is recovered
// only inside (*Solver).protect and must never escape Solve/NestedSolve.
type failSignal struct{}

// restartSignal is Fail's sibling for Solver.RestartSearch: it unwinds
// all the way to the root driver loop rather than to the nearest choice
// point, which then notifies monitors and starts the search over.
type restartSignal struct{}

var _ search.Solver = (*Solver)(nil)

// Solver is the reference host: a trailed variable store, a flat
// constraint list rechecked on every domain change, and a depth-first
// driver that runs a search.DecisionBuilder against a fan of
// search.SearchMonitor hooks. It is built for the scenarios SPEC_FULL.md
// §8 names, not for performance or completeness as a CP solver.
type Solver struct {
	vars        []*intVar
	constraints []*genericConstraint
	trail       []func()

	branches  int64
	failures  int64
	solutions int64
	start     time.Time

	rng *rand.Rand

	balancing search.Decision

	searchDepth int
	solveDepth  int

	ctx context.Context
}

// NewSolver returns an empty Solver seeded from seed for reproducible
// random tie-breaking and value selection.
func NewSolver(seed int64) *Solver {
	return &Solver{
		start:     time.Now(),
		rng:       rand.New(rand.NewSource(seed)),
		balancing: balancingDecision{},
		ctx:       context.Background(),
	}
}

// NewIntVar registers a new variable with initial domain [lo, hi].
func (s *Solver) NewIntVar(name string, lo, hi int64) search.IntVar {
	return s.newVar(name, lo, hi)
}

func (s *Solver) newVar(name string, lo, hi int64) *intVar {
	v := &intVar{solver: s, idx: len(s.vars), name: name, cur: fullDomain(lo, hi)}
	s.vars = append(s.vars, v)
	return v
}

func (s *Solver) pushUndo(f func()) { s.trail = append(s.trail, f) }

// Mark returns the current trail length, a restore point for UndoTo.
func (s *Solver) Mark() int { return len(s.trail) }

// UndoTo restores every trailed mutation recorded since mark, latest
// first.
func (s *Solver) UndoTo(mark int) {
	for len(s.trail) > mark {
		i := len(s.trail) - 1
		undo := s.trail[i]
		s.trail = s.trail[:i]
		undo()
	}
}

func (s *Solver) recheckFrom(int) {
	for _, c := range s.constraints {
		if !c.check() {
			s.Fail()
		}
	}
}

// RevAlloc returns obj unchanged; Go's garbage collector already tracks
// obj's lifetime, so there is nothing to register it with here.
func (s *Solver) RevAlloc(obj any) any { return obj }

func (s *Solver) SaveAndSetValue(addr *int64, newValue int64) {
	old := *addr
	s.pushUndo(func() { *addr = old })
	*addr = newValue
}

func (s *Solver) Fail() { panic(failSignal{}) }

func (s *Solver) RestartSearch() { panic(restartSignal{}) }

func (s *Solver) Branches() int64     { return s.branches }
func (s *Solver) Failures() int64     { return s.failures }
func (s *Solver) Solutions() int64    { return s.solutions }
func (s *Solver) WallTime() int64     { return time.Since(s.start).Milliseconds() }
func (s *Solver) SearchDepth() int    { return s.searchDepth }
func (s *Solver) SolveDepth() int     { return s.solveDepth }
func (s *Solver) MemoryUsage() uint64 { return uint64(len(s.trail)*24 + len(s.vars)*64) }

func (s *Solver) Rand32(n uint32) uint32 { return s.rng.Uint32() % n }
func (s *Solver) Rand64(n uint64) uint64 { return uint64(s.rng.Int63()) % n }

func (s *Solver) BalancingDecision() search.Decision { return s.balancing }

func (s *Solver) Context() context.Context { return s.ctx }

// WithContext returns a copy of s using ctx for future Context() calls.
func (s *Solver) WithContext(ctx context.Context) *Solver {
	c := *s
	c.ctx = ctx
	return &c
}

// balancingDecision is the sentinel BalancingDecision returned by
// Solver.BalancingDecision. Applying or refuting it is a no-op; it only
// ever serves as an identity token decision builders compare against.
type balancingDecision struct{}

func (balancingDecision) Apply(search.Solver)  {}
func (balancingDecision) Refute(search.Solver) {}
func (balancingDecision) Accept(search.DecisionVisitor) {}
func (balancingDecision) String() string { return "[balancing]" }

// protect runs fn, catching a Fail triggered anywhere beneath it.
// Reports false if fn failed, true otherwise. Panics other than
// failSignal (including restartSignal) propagate to protect's caller
// unchanged.
func (s *Solver) protect(fn func()) (ok bool) {
	ok = true
	defer func() {
		if r := recover(); r != nil {
			if _, isFail := r.(failSignal); isFail {
				ok = false
				return
			}
			panic(r)
		}
	}()
	fn()
	return
}

// runBranch runs fn — a decision's apply-or-refute step plus the
// recursive dfs call it leads to — as a single Fail-protected unit. A
// Fail triggered anywhere inside fn, whether from d.Apply/d.Refute's own
// propagation or from a monitor hook invoked deeper in the recursion
// (BeginNextDecision, a rejected AcceptSolution, a limit), unwinds no
// further than this call: it is caught here rather than skipping this
// decision's sibling branch and every ancestor's on its way out. ok is
// false iff fn failed; stop is only meaningful when ok is true.
func (s *Solver) runBranch(fn func() bool) (stop, ok bool) {
	ok = true
	defer func() {
		if r := recover(); r != nil {
			if _, isFail := r.(failSignal); isFail {
				ok, stop = false, false
				return
			}
			panic(r)
		}
	}()
	stop = fn()
	return
}

// Solve drives db to exhaustion against monitors, returning true iff at
// least one solution was accepted. If stopAtFirst is set, search stops
// immediately after the first accepted solution regardless of what
// AtSolution's monitors report.
func (s *Solver) Solve(db search.DecisionBuilder, monitors []search.SearchMonitor, stopAtFirst bool) bool {
	ms := search.Monitors(monitors...)
	found := false
	ms.EnterSearch()
	root := s.Mark()
	for {
		restarted := func() (restart bool) {
			defer func() {
				if r := recover(); r != nil {
					if _, isRestart := r.(restartSignal); isRestart {
						s.UndoTo(root)
						s.protect(ms.RestartSearch)
						restart = true
						return
					}
					panic(r)
				}
			}()
			s.runBranch(func() bool {
				ms.BeginInitialPropagation()
				ms.EndInitialPropagation()
				return s.dfs(db, ms, stopAtFirst, &found)
			})
			return false
		}()
		if !restarted {
			break
		}
	}
	ms.ExitSearch()
	return found
}

// NestedSolve runs db as a single atomic nested search (§4.K), reverting
// every trailed effect afterward iff restore is set.
func (s *Solver) NestedSolve(db search.DecisionBuilder, restore bool, monitors []search.SearchMonitor) bool {
	mark := s.Mark()
	s.solveDepth++
	found := s.Solve(db, monitors, true)
	s.solveDepth--
	if restore {
		s.UndoTo(mark)
	}
	return found
}

// dfs is the depth-first driver: it asks db for the next decision, then
// applies and refutes it in turn, each under its own runBranch scope so a
// Fail anywhere in that branch's subtree backs out to exactly this choice
// point rather than some more distant ancestor. A leaf (db exhausted) is
// a candidate solution, subject to ms.AcceptSolution/AtSolution. Returns
// true iff the search should stop entirely (stopAtFirst reached, or every
// monitor voted to stop); accepted solutions are recorded into *found as
// they are seen.
//
// BeginNextDecision/EndNextDecision and the Fail triggered by a rejected
// solution are deliberately left unprotected here: they run as part of
// whichever branch this dfs call was reached through, so the enclosing
// runBranch in the parent call — not this one — is what catches them.
func (s *Solver) dfs(db search.DecisionBuilder, ms search.SearchMonitor, stopAtFirst bool, found *bool) bool {
	s.searchDepth++
	defer func() { s.searchDepth-- }()

	ms.BeginNextDecision(db)
	d, ok := db.Next(s)
	ms.EndNextDecision(db, d)

	if !ok {
		if ms.AcceptSolution() {
			s.solutions++
			*found = true
			cont := ms.AtSolution()
			return stopAtFirst || !cont
		}
		s.beginFail(ms)
		return false
	}

	s.branches++
	mark := s.Mark()

	if stop, applyOK := s.runBranch(func() bool {
		ms.ApplyDecision(d)
		d.Apply(s)
		return s.dfs(db, ms, stopAtFirst, found)
	}); !applyOK {
		s.beginFail(ms)
	} else if stop {
		return true
	}
	s.UndoTo(mark)

	if stop, refuteOK := s.runBranch(func() bool {
		ms.RefuteDecision(d)
		d.Refute(s)
		return s.dfs(db, ms, stopAtFirst, found)
	}); !refuteOK {
		s.beginFail(ms)
	} else if stop {
		return true
	}
	s.UndoTo(mark)

	return false
}

func (s *Solver) beginFail(ms search.SearchMonitor) {
	s.failures++
	ms.BeginFail()
	ms.EndFail()
}

// Store snapshots vars (and objective, if non-nil) as an Assignment.
func (s *Solver) Store(vars []search.IntVar, objective search.IntExpr) search.Assignment {
	a := &assignment{vars: append([]search.IntVar(nil), vars...)}
	a.values = make([]int64, len(vars))
	a.activated = make([]bool, len(vars))
	for i, v := range vars {
		if v.Bound() {
			a.values[i] = v.Value()
			a.activated[i] = true
		}
	}
	if objective != nil && objective.Min() == objective.Max() {
		a.objective = objective.Min()
		a.hasObjective = true
	}
	return a
}
