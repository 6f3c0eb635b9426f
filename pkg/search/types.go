// Package search implements the search-control core of a finite-domain
// constraint-programming solver: branching strategies, the search-monitor
// protocol, solution collectors, objective tightening, metaheuristics,
// search limits, restarts, and symmetry-breaking during search.
//
// The package never stores variable domains or performs constraint
// propagation itself; it drives and observes a host solver through the
// interfaces in this file. See SPEC_FULL.md for the full requirements this
// package implements and DESIGN.md for how each part is grounded.
package search

import "context"

// IntVar is a finite-domain integer variable owned by the host solver.
// The search-control core reads bounds/membership, changes a domain
// directly only when a Decision is applied or refuted (SetValue,
// RemoveValue), and otherwise restricts domains by posting constraints.
// Its own reversible state goes through Solver.SaveAndSetValue.
type IntVar interface {
	// Min returns the current minimum of the domain.
	Min() int64
	// Max returns the current maximum of the domain.
	Max() int64
	// Size returns the number of values currently in the domain.
	Size() int64
	// Bound reports whether the domain is a singleton.
	Bound() bool
	// Contains reports whether v is currently in the domain.
	Contains(v int64) bool
	// Value returns the bound value. Callers must check Bound first.
	Value() int64
	// SetValue restricts the domain to {v}.
	SetValue(v int64)
	// SetMin raises the domain's minimum to m.
	SetMin(m int64)
	// SetMax lowers the domain's maximum to m.
	SetMax(m int64)
	// RemoveValue removes v from the domain.
	RemoveValue(v int64)
	// DomainIterator returns a lazy ascending iterator over current domain
	// values. Safe to abandon early.
	DomainIterator() DomainIterator
	// Name returns a human-readable identifier, used only for logging.
	Name() string
}

// DomainIterator lazily walks an IntVar's domain.
type DomainIterator interface {
	// Next advances the iterator and reports whether a value is available.
	Next() bool
	// Value returns the current value. Valid only after a true Next().
	Value() int64
}

// IntExpr is any integer-valued expression usable as an objective or as an
// argument to the expression builders on Solver. A bound IntVar is itself
// a valid IntExpr.
type IntExpr interface {
	Min() int64
	Max() int64
}

// Constraint is a posted propagator. The search-control core never
// inspects a Constraint's internals; it only posts constraints it builds
// via the Solver's expression factories.
type Constraint interface {
	// Post registers the constraint with the solver's propagation queue.
	Post()
}

// Assignment is an external, read-only snapshot of variable values taken
// via Solver.Store (or produced by a prior search). It backs
// AssignFromAssignment decision builders and solution collectors.
type Assignment interface {
	// NumVars returns how many variables this snapshot covers.
	NumVars() int
	// Var returns the i'th variable covered by the snapshot.
	Var(i int) IntVar
	// Value returns the stored value for the i'th variable.
	Value(i int) int64
	// Activated reports whether the i'th entry was bound when snapshotted.
	Activated(i int) bool
	// Objective returns the snapshot's recorded objective value and
	// whether an objective was tracked at all.
	Objective() (value int64, ok bool)
}

// Solver is the host constraint solver the search-control core is driven
// by. It is the sole gateway to reversible mutation, failure, nested
// search, counters, and expression construction. Implementations are not
// required to be safe for concurrent use from more than one goroutine at a
// time; callers running independent searches in parallel must use one
// Solver instance per goroutine (see internal/fdmodel and
// internal/parallel for the reference host's approach).
type Solver interface {
	// RevAlloc registers obj so its lifetime tracks the solver's; returns
	// obj unchanged. Mirrors the host's arena-allocation contract (§3).
	RevAlloc(obj any) any

	// SaveAndSetValue reversibly sets *addr to newValue, recording the
	// prior value on the trail so it is restored on backtrack.
	SaveAndSetValue(addr *int64, newValue int64)

	// Fail unwinds to the nearest choice point. It is the only sanctioned
	// way for a monitor to reject a branch. Calling Fail from EnterSearch
	// or ExitSearch is a programming error (§3 invariant) and panics.
	Fail()

	// RestartSearch unwinds all the way back to the root of the current
	// (possibly nested) search and begins it again with whatever permanent
	// constraints have accumulated since the last restart still in force.
	// It is the action a restart monitor's BeginFail triggers once its
	// failure budget for the current run is exhausted; like Fail it never
	// returns to its caller.
	RestartSearch()

	// NestedSolve runs a sub-search with db and monitors as a single
	// atomic decision; restore indicates whether the solver should revert
	// to the state it had before the nested search on return. Reports
	// whether the nested search found at least one solution.
	NestedSolve(db DecisionBuilder, restore bool, monitors []SearchMonitor) bool

	// Counters.
	Branches() int64
	Failures() int64
	Solutions() int64
	WallTime() int64 // milliseconds since the solver was created
	SearchDepth() int
	SolveDepth() int
	MemoryUsage() uint64 // bytes

	// RNG.
	Rand32(n uint32) uint32
	Rand64(n uint64) uint64

	// Expression builders.
	MakeSum(vars ...IntExpr) IntExpr
	MakeMin(vars ...IntExpr) IntExpr
	MakeMax(vars ...IntExpr) IntExpr
	MakeDifference(a, b IntExpr) IntExpr
	MakeElement(f func(int64) int64, index IntVar) IntExpr
	MakeElement2(f func(int64, int64) int64, index1, index2 IntVar) IntExpr
	MakeBoolVar(name string) IntVar
	MakeIsEqualCstCt(e IntExpr, value int64, target IntVar) Constraint
	MakeIsDifferentCstCt(e IntExpr, value int64, target IntVar) Constraint
	MakeIsGreaterOrEqualCstCt(e IntExpr, value int64, target IntVar) Constraint
	MakeIsLessOrEqualCstCt(e IntExpr, value int64, target IntVar) Constraint
	MakeGreaterOrEqual(e IntExpr, value int64) Constraint
	MakeLessOrEqual(e IntExpr, value int64) Constraint
	// MakeGreaterOrEqualExpr and MakeLessOrEqualExpr are the IntExpr-vs-IntExpr
	// overloads of the above (the real OR-Tools API overloads both constraints
	// this way); GLS needs them to bound the objective against a penalized
	// expression rather than a host-side constant.
	MakeGreaterOrEqualExpr(a, b IntExpr) Constraint
	MakeLessOrEqualExpr(a, b IntExpr) Constraint
	MakeEquality(a, b IntExpr) Constraint
	MakeNonEquality(a, b IntExpr) Constraint
	MakeSumGreaterOrEqual(vars []IntVar, value int64) Constraint
	AddConstraint(c Constraint)

	// BalancingDecision returns the sentinel decision the host uses to
	// rebalance a search tree. TabuSearch, SimulatedAnnealing and
	// GuidedLocalSearch compare against it to skip it; no decision builder
	// in this package emits it.
	BalancingDecision() Decision

	// Store takes a read-only snapshot of the given variables (plus the
	// optional objective) as they currently stand.
	Store(vars []IntVar, objective IntExpr) Assignment

	// Context is threaded through so a host embedding this core in a
	// cancellable pipeline can hand cancellation to monitor hooks. No
	// monitor in this package reads it.
	Context() context.Context
}
