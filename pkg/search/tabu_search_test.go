package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/searchcore/internal/fdmodel"
	"github.com/gitrdm/searchcore/pkg/search"
)

// TestTabuSearchImprovesBelowStartingSum minimizes a sum over a small
// domain with tabu search, starting from the all-max assignment (sum 20),
// and checks that the best collected objective is below that start.
func TestTabuSearchImprovesBelowStartingSum(t *testing.T) {
	s := fdmodel.NewSolver(3)
	vars := make([]search.IntVar, 4)
	exprs := make([]search.IntExpr, 4)
	for i := range vars {
		vars[i] = s.NewIntVar("x", 0, 5)
		exprs[i] = vars[i]
	}
	objVar := s.NewIntVar("sum", 0, 20)
	s.AddConstraint(s.MakeEquality(objVar, s.MakeSum(exprs...)))

	db, err := search.MakePhase(vars, search.ChooseFirstUnbound, search.AssignMaxValue)
	require.NoError(t, err)

	tabu := search.MakeTabuSearch(s, false, objVar, 1, vars, 3, 3, 0.5)
	limit := search.MakeLimit(s, 0, 500, 0, 0, false)
	collector := search.MakeBestValueSolutionCollector(s, vars, objVar, false)

	s.Solve(db, []search.SearchMonitor{tabu, limit, collector}, false)

	require.GreaterOrEqual(t, collector.SolutionCount(), 1)
	best, ok, err := collector.ObjectiveValue(0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Less(t, best, int64(20), "tabu search seeded with AssignMaxValue must improve below the all-max starting sum")
}

func TestGuidedLocalSearchFindsASolution(t *testing.T) {
	s := fdmodel.NewSolver(5)
	vars := make([]search.IntVar, 3)
	exprs := make([]search.IntExpr, 3)
	for i := range vars {
		vars[i] = s.NewIntVar("x", 0, 3)
		exprs[i] = vars[i]
	}
	objVar := s.NewIntVar("sum", 0, 9)
	s.AddConstraint(s.MakeEquality(objVar, s.MakeSum(exprs...)))

	db, err := search.MakePhase(vars, search.ChooseFirstUnbound, search.AssignMaxValue)
	require.NoError(t, err)

	cost := func(i int, j int64) int64 { return j }
	penalties := search.NewDensePenalties(vars)
	gls := search.MakeGuidedLocalSearch(s, false, objVar, 1, vars, cost, 0.1, penalties)
	limit := search.MakeLimit(s, 0, 500, 0, 0, false)
	collector := search.MakeBestValueSolutionCollector(s, vars, objVar, false)

	s.Solve(db, []search.SearchMonitor{gls, limit, collector}, false)

	assert.GreaterOrEqual(t, collector.SolutionCount(), 1)
}

// TestBestValueSolutionCollectorUsesMaxBoundWhenMaximizing covers the
// maximize=true branch of buildRecord, which cmd/searchdemo's tabu
// scenario (the one that maximizes) exercises but no prior test did: the recorded
// objective must track the live upper bound, not always the lower one.
func TestBestValueSolutionCollectorUsesMaxBoundWhenMaximizing(t *testing.T) {
	s := fdmodel.NewSolver(1)
	v := s.NewIntVar("v", 0, 10)
	collector := search.MakeBestValueSolutionCollector(s, []search.IntVar{v}, v, true)
	collector.EnterSearch()

	// Narrow the domain to [3, 8] without binding it, so Min() and Max()
	// genuinely disagree: a buggy buildRecord that always reads Min()
	// would record 3 here instead of the maximize bound, 8.
	root := s.Mark()
	v.SetMin(3)
	v.SetMax(8)
	collector.AtSolution()
	s.UndoTo(root)

	require.Equal(t, 1, collector.SolutionCount())
	got, ok, err := collector.ObjectiveValue(0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(8), got, "maximize mode must record the objective's Max() bound, not Min()")
}

func TestSparsePenaltiesAccumulateIndependentlyOfDensePenalties(t *testing.T) {
	s := fdmodel.NewSolver(1)
	v := s.NewIntVar("v", 0, 3)
	dense := search.NewDensePenalties([]search.IntVar{v})
	sparse := search.NewSparsePenalties()

	assert.False(t, dense.HasAnyPenalty(0))
	assert.False(t, sparse.HasAnyPenalty(0))

	dense.Increment(0, 2)
	sparse.Increment(0, 2)

	assert.Equal(t, int64(1), dense.Value(0, 2))
	assert.Equal(t, int64(1), sparse.Value(0, 2))
	assert.True(t, dense.HasAnyPenalty(0))
	assert.True(t, sparse.HasAnyPenalty(0))
	assert.Equal(t, int64(0), dense.Value(0, 1))
	assert.Equal(t, int64(0), sparse.Value(0, 1))
}
