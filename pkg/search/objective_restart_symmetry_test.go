package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/searchcore/internal/fdmodel"
	"github.com/gitrdm/searchcore/pkg/search"
)

func TestOptimizeVarReportsBestOnlyAfterASolution(t *testing.T) {
	s := fdmodel.NewSolver(1)
	obj := s.NewIntVar("obj", 0, 10)
	opt := search.MakeMinimize(s, obj, 1)

	opt.EnterSearch()
	_, ok := opt.Best()
	assert.False(t, ok, "no solution has been accepted yet")
}

func TestOptimizeVarAcceptsFirstSolutionThenRequiresImprovement(t *testing.T) {
	s := fdmodel.NewSolver(1)
	obj := s.NewIntVar("obj", 0, 10)
	opt := search.MakeMinimize(s, obj, 2)
	opt.EnterSearch()

	root := s.Mark()
	obj.SetValue(5)
	assert.True(t, opt.AcceptSolution(), "the first solution always beats the unset best")
	opt.AtSolution()
	best, ok := opt.Best()
	require.True(t, ok)
	assert.Equal(t, int64(5), best)
	s.UndoTo(root)

	obj.SetValue(6)
	assert.False(t, opt.AcceptSolution(), "6 is worse than best=5 for a minimize objective")
	s.UndoTo(root)

	obj.SetValue(3)
	assert.True(t, opt.AcceptSolution(), "3 beats best=5 by at least step=2")
}

func TestLubyFollowsKnownSequence(t *testing.T) {
	want := []int64{1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8}
	for i, w := range want {
		assert.Equal(t, w, search.Luby(int64(i+1)), "luby(%d)", i+1)
	}
}

func TestConstantRestartFiresExactlyAtFrequency(t *testing.T) {
	s := fdmodel.NewSolver(1)
	cr := search.MakeConstantRestart(s, 3)
	cr.EnterSearch()

	restarted := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				restarted = true
			}
		}()
		cr.BeginFail()
		cr.BeginFail()
		cr.BeginFail()
	}()
	assert.True(t, restarted, "the third BeginFail must hit the configured frequency")
}

func TestNestedSolveFindsAssignmentWithinParentSearch(t *testing.T) {
	s := fdmodel.NewSolver(1)
	outer := s.NewIntVar("outer", 0, 1)
	inner := s.NewIntVar("inner", 0, 2)

	outerDB, err := search.MakePhase([]search.IntVar{outer}, search.ChooseFirstUnbound, search.AssignMinValue)
	require.NoError(t, err)
	innerDB, err := search.MakePhase([]search.IntVar{inner}, search.ChooseFirstUnbound, search.AssignMinValue)
	require.NoError(t, err)

	var innerFoundDuringOuter bool
	hook := &nestedSolveProbe{run: func() {
		innerFoundDuringOuter = s.NestedSolve(innerDB, true, nil)
	}}

	s.Solve(outerDB, []search.SearchMonitor{hook}, true)

	assert.True(t, innerFoundDuringOuter)
	assert.False(t, inner.Bound(), "restore=true nested solve must leave inner untouched once the outer search resumes")
}

// nestedSolveProbe runs a nested solve the first time a decision is
// applied, exercising SolveOnce-style nesting without needing a second
// dedicated monitor type per scenario.
type nestedSolveProbe struct {
	search.BaseMonitor
	run  func()
	done bool
}

func (p *nestedSolveProbe) ApplyDecision(d search.Decision) {
	if !p.done {
		p.done = true
		p.run()
	}
}

// recordingBreaker is a SymmetryBreaker that pushes one guard literal per
// decision whose value is 0, simulating a breaker that only cares about
// "leftmost" branches.
type recordingBreaker struct {
	guards []search.IntVar
	visits int
}

func (b *recordingBreaker) Visit(d search.Decision, mgr *search.SymmetryManager, breakerIndex int) {
	b.visits++
	assign, ok := d.(*search.AssignVariableValue)
	if !ok || assign.Value != 0 {
		return
	}
	mgr.AddTermToClause(breakerIndex, b.guards[0])
}

// TestSymmetryManagerVisitsEveryDecisionAndSkipsZeroGrowthRefute checks
// the two cheap-to-verify invariants without needing a full Solve run:
// every decision the manager's EndNextDecision sees is forwarded to each
// registered breaker exactly once, and RefuteDecision is a no-op for a
// decision whose Visit call never grew the breaker's clause FIFO.
func TestSymmetryManagerVisitsEveryDecisionAndSkipsZeroGrowthRefute(t *testing.T) {
	s := fdmodel.NewSolver(1)
	guard := s.NewIntVar("guard", 0, 1)
	breaker := &recordingBreaker{guards: []search.IntVar{guard}}
	mgr := search.MakeSymmetryManager(s, breaker)

	v := s.NewIntVar("v", 0, 1)
	leftDecision := &search.AssignVariableValue{V: v, Value: 0}
	rightDecision := &search.AssignVariableValue{V: v, Value: 1}

	mgr.EndNextDecision(nil, leftDecision)
	mgr.EndNextDecision(nil, rightDecision)

	assert.Equal(t, 2, breaker.visits, "both decisions must reach the breaker")

	// Neither refute should panic: rightDecision grew no clause (a no-op
	// refute), and leftDecision did grow one (posts a no-go clause, then
	// is idempotent on a second refute of the same decision).
	assert.NotPanics(t, func() { mgr.RefuteDecision(rightDecision) })
	assert.NotPanics(t, func() { mgr.RefuteDecision(leftDecision) })
	assert.NotPanics(t, func() { mgr.RefuteDecision(leftDecision) })
}

// TestSymmetryManagerFIFOsShrinkOnBacktrack checks the reversibility
// SPEC_FULL.md §4.J requires: a clause/decision pushed while exploring a
// branch must disappear once the solver undoes back past that branch's
// mark, rather than persisting and being mistaken for live state by a
// later, unrelated branch. Re-visiting the same decision after an
// UndoTo must behave exactly like the first visit — same breaker hit,
// a fresh (not-yet-posted) direction flag — rather than accumulating a
// second, stale FIFO entry alongside the first.
func TestSymmetryManagerFIFOsShrinkOnBacktrack(t *testing.T) {
	s := fdmodel.NewSolver(1)
	guard := s.NewIntVar("guard", 0, 1)
	breaker := &recordingBreaker{guards: []search.IntVar{guard}}
	mgr := search.MakeSymmetryManager(s, breaker)

	v := s.NewIntVar("v", 0, 1)
	leftDecision := &search.AssignVariableValue{V: v, Value: 0}

	mark := s.Mark()
	mgr.EndNextDecision(nil, leftDecision)
	assert.Equal(t, 1, breaker.visits)
	mgr.RefuteDecision(leftDecision)
	// A second refute of the same decision, still within this branch,
	// must now be a no-op: the direction flag was flipped above.
	assert.NotPanics(t, func() { mgr.RefuteDecision(leftDecision) })

	s.UndoTo(mark)

	// Past the mark, the FIFOs must have shrunk back: visiting the same
	// decision again grows exactly one fresh entry rather than leaving
	// the already-posted one behind, so it can be posted again.
	mgr.EndNextDecision(nil, leftDecision)
	assert.Equal(t, 2, breaker.visits)
	assert.NotPanics(t, func() { mgr.RefuteDecision(leftDecision) })
}
