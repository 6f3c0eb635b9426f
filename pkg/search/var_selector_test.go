package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/searchcore/internal/fdmodel"
	"github.com/gitrdm/searchcore/pkg/search"
)

func TestFirstUnboundSelectorSkipsBoundPrefix(t *testing.T) {
	s := fdmodel.NewSolver(1)
	a := s.NewIntVar("a", 0, 0)
	b := s.NewIntVar("b", 3, 5)
	sel := search.NewFirstUnboundSelector([]search.IntVar{a, b})

	v, i := sel.Select(s)
	require.NotNil(t, v)
	assert.Equal(t, 1, i, "a is already bound, so the selector must skip it and land on b")
	assert.Equal(t, b, v)
}

func TestFirstUnboundSelectorNoVarFoundWhenAllBound(t *testing.T) {
	s := fdmodel.NewSolver(1)
	a := s.NewIntVar("a", 2, 2)
	sel := search.NewFirstUnboundSelector([]search.IntVar{a})

	_, i := sel.Select(s)
	assert.Equal(t, search.NoVarFound, i)
}

func TestMinSizeSelectorLowestMinPrefersSmallestDomain(t *testing.T) {
	s := fdmodel.NewSolver(1)
	wide := s.NewIntVar("wide", 0, 9)
	narrow := s.NewIntVar("narrow", 2, 3)
	sel, err := search.NewMinSizeSelector([]search.IntVar{wide, narrow}, search.ChooseMinSizeLowestMin)
	require.NoError(t, err)

	v, i := sel.Select(s)
	assert.Equal(t, 1, i)
	assert.Equal(t, narrow, v)
}

func TestMinSizeSelectorUnknownStrategyErrors(t *testing.T) {
	s := fdmodel.NewSolver(1)
	v := s.NewIntVar("v", 0, 1)
	_, err := search.NewMinSizeSelector([]search.IntVar{v}, search.ChooseFirstUnbound)
	assert.ErrorIs(t, err, search.ErrUnknownStrategy)
}

func TestPathSelectorFollowsChain(t *testing.T) {
	s := fdmodel.NewSolver(1)
	vars := []search.IntVar{
		s.NewIntVar("v0", 5, 5),
		s.NewIntVar("v1", 0, 1),
		s.NewIntVar("v2", 0, 1),
	}
	next := func(i int) (int, bool) {
		switch i {
		case 0:
			return 1, true
		case 1:
			return 2, true
		default:
			return 0, false
		}
	}
	sel := search.NewPathSelector(vars, next)

	v, i := sel.Select(s)
	assert.Equal(t, 1, i, "v0 is bound, so the chain should advance to v1")
	assert.Equal(t, vars[1], v)
}

func TestPathSelectorFirstPointerIsReversible(t *testing.T) {
	s := fdmodel.NewSolver(1)
	vars := []search.IntVar{
		s.NewIntVar("v0", 5, 5),
		s.NewIntVar("v1", 0, 1),
		s.NewIntVar("v2", 0, 1),
	}
	next := func(i int) (int, bool) {
		switch i {
		case 0:
			return 1, true
		case 1:
			return 2, true
		default:
			return 0, false
		}
	}
	sel := search.NewPathSelector(vars, next)

	mark := s.Mark()
	v, i := sel.Select(s)
	require.NotNil(t, v)
	assert.Equal(t, 1, i, "v0 is bound, so the chain should advance to v1")

	// Bind v1 and select again: the cached "first" pointer now names a
	// bound variable, so the selector recomputes the start and advances
	// to v2.
	vars[1].SetValue(0)
	v, i = sel.Select(s)
	require.NotNil(t, v)
	assert.Equal(t, 2, i)

	// Undo back to before v1 was bound: the "first" pointer must be
	// restored too, so the next Select lands on v1 again rather than
	// staying stuck on the now-undone v2.
	s.UndoTo(mark)
	v, i = sel.Select(s)
	require.NotNil(t, v)
	assert.Equal(t, 1, i, "undoing the bind must restore the selector's cached first pointer along with the domain")
	assert.Equal(t, vars[1], v)
}

func TestCheapestVarSelectorPicksArgmin(t *testing.T) {
	s := fdmodel.NewSolver(1)
	vars := []search.IntVar{
		s.NewIntVar("v0", 0, 1),
		s.NewIntVar("v1", 0, 1),
	}
	cost := func(i int) int64 {
		if i == 1 {
			return -5
		}
		return 0
	}
	sel := search.NewCheapestVarSelector(vars, cost)

	v, i := sel.Select(s)
	assert.Equal(t, 1, i)
	assert.Equal(t, vars[1], v)
}

func TestMinValueAndMaxValueSelectors(t *testing.T) {
	s := fdmodel.NewSolver(1)
	v := s.NewIntVar("v", 3, 7)

	assert.Equal(t, int64(3), search.NewMinValueSelector().Select(v, 0))
	assert.Equal(t, int64(7), search.NewMaxValueSelector().Select(v, 0))
}

func TestCenterValueSelectorPicksMidpoint(t *testing.T) {
	s := fdmodel.NewSolver(1)
	v := s.NewIntVar("v", 0, 4)
	assert.Equal(t, int64(2), search.NewCenterValueSelector().Select(v, 0))
}

func TestCheapestValueSelectorPicksArgminWithTieBreak(t *testing.T) {
	s := fdmodel.NewSolver(1)
	v := s.NewIntVar("v", 0, 3)
	cost := func(id int, value int64) int64 {
		if value == 1 || value == 2 {
			return 0
		}
		return 10
	}
	tieBreak := func(id int, ties []int64) int64 { return ties[len(ties)-1] }
	sel := search.NewCheapestValueSelector(cost, tieBreak)

	assert.Equal(t, int64(2), sel.Select(v, 0))
}

func TestRandomValueSelectorStaysWithinDomain(t *testing.T) {
	s := fdmodel.NewSolver(7)
	v := s.NewIntVar("v", 0, 2)
	v.RemoveValue(1)
	sel := search.NewRandomValueSelector(s)
	for i := 0; i < 50; i++ {
		got := sel.Select(v, 0)
		assert.True(t, got == 0 || got == 2, "selected value %d must be in the sparse domain {0,2}", got)
	}
}
