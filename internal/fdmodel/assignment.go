package fdmodel

import "github.com/gitrdm/searchcore/pkg/search"

// assignment is a read-only snapshot taken by Solver.Store: one
// value/activated pair per snapshotted variable plus an optional
// objective value, matching the shape solution collectors and
// AssignFromAssignment decision builders expect from search.Assignment.
type assignment struct {
	vars         []search.IntVar
	values       []int64
	activated    []bool
	objective    int64
	hasObjective bool
}

var _ search.Assignment = (*assignment)(nil)

func (a *assignment) NumVars() int { return len(a.vars) }

func (a *assignment) Var(i int) search.IntVar { return a.vars[i] }

func (a *assignment) Value(i int) int64 { return a.values[i] }

func (a *assignment) Activated(i int) bool { return a.activated[i] }

func (a *assignment) Objective() (int64, bool) { return a.objective, a.hasObjective }
