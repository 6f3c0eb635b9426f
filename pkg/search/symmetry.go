package search

// SymmetryBreaker is consulted by SymmetryManager on every decision. It
// records no-go clause terms (as 0/1 IntVar "guard" literals) into the
// manager's per-breaker clause FIFO whenever the decision it is shown
// would, if refuted, re-open a symmetric equivalent of an already-refuted
// branch.
type SymmetryBreaker interface {
	// Visit is called once per decision with the manager's clause FIFO for
	// this breaker; implementations push zero or more guard literals by
	// calling mgr.AddTermToClause.
	Visit(d Decision, mgr *SymmetryManager, breakerIndex int)
}

// symmetryState is the three reversible FIFOs SPEC_FULL.md §4.J requires
// per registered breaker: clause terms added during the breaker's visit,
// one decision marker per clause-growing visit, and a direction flag
// (0 = left/apply, flipped to 1 once the symmetry clause for that
// decision has been posted so it is never posted twice).
//
// clauses/decisions are backing arrays grown append-only; clauseLen and
// decisionLen are the reversible logical lengths (trailed via
// Solver.SaveAndSetValue) that make UndoTo shrink the FIFOs back to
// their state at the enclosing choice point instead of leaking entries
// from an abandoned branch. directions holds one individually
// heap-allocated flag per decision so RefuteDecision can trail a single
// flag's flip without depending on the backing slice's address staying
// stable across later appends.
type symmetryState struct {
	clauses   []IntVar
	clauseLen int64

	decisions   []Decision
	directions  []*int64
	decisionLen int64
}

// SymmetryManager records per-symmetry no-go clauses derived from
// refuted decisions and posts equivalence-breaking constraints.
type SymmetryManager struct {
	BaseMonitor

	solver   Solver
	breakers []SymmetryBreaker
	states   []symmetryState
}

// MakeSymmetryManager returns a SymmetryManager driving breakers.
func MakeSymmetryManager(s Solver, breakers ...SymmetryBreaker) *SymmetryManager {
	return &SymmetryManager{solver: s, breakers: breakers, states: make([]symmetryState, len(breakers))}
}

// AddTermToClause pushes a guard literal onto breaker breakerIndex's
// clause FIFO, reversibly: the logical length grows on the trail, so a
// later UndoTo past this point shrinks the FIFO back rather than leaving
// the term visible to an unrelated branch.
func (m *SymmetryManager) AddTermToClause(breakerIndex int, guard IntVar) {
	st := &m.states[breakerIndex]
	st.clauses = append(st.clauses[:st.clauseLen], guard)
	m.solver.SaveAndSetValue(&st.clauseLen, st.clauseLen+1)
}

// EndNextDecision visits every breaker with d; for any breaker whose
// clause FIFO grew as a result, it records d (direction 0/left) so
// RefuteDecision knows to post a no-go when this exact decision is later
// refuted. The decision FIFO's growth is trailed the same way the clause
// FIFO's is.
func (m *SymmetryManager) EndNextDecision(db DecisionBuilder, d Decision) {
	if d == nil {
		return
	}
	for i, b := range m.breakers {
		st := &m.states[i]
		before := st.clauseLen
		b.Visit(d, m, i)
		if st.clauseLen > before {
			st.decisions = append(st.decisions[:st.decisionLen], d)
			st.directions = append(st.directions[:st.decisionLen], new(int64))
			m.solver.SaveAndSetValue(&st.decisionLen, st.decisionLen+1)
		}
	}
}

// RefuteDecision posts, for each breaker whose most recently recorded
// decision equals d, the symmetry no-go clause over every term on that
// breaker's clause FIFO (terms are not filtered by the direction of the
// decision that recorded them; the current decision's term is among
// them): if any term is bound to 0 the premise is already false and
// nothing is posted; terms bound to 1 are dropped; the remaining
// not-yet-fixed terms form the guard set, and min(guard) == 0 is posted.
// The direction for d is then flipped to 1, reversibly,
// so the same clause is never posted twice for the same decision and a
// later backtrack restores it to "not yet posted".
func (m *SymmetryManager) RefuteDecision(d Decision) {
	for i := range m.breakers {
		st := &m.states[i]
		n := int(st.decisionLen)
		if n == 0 || st.decisions[n-1] != d {
			continue
		}
		idx := n - 1
		if *st.directions[idx] != 0 {
			continue // already posted for this decision
		}

		var guard []IntExpr
		for _, term := range st.clauses[:st.clauseLen] {
			if term.Bound() && term.Value() == 0 {
				// Premise already false: this whole clause is vacuous.
				guard = nil
				break
			}
			if term.Bound() {
				continue // term fixed to 1: contributes nothing to the min
			}
			guard = append(guard, term)
		}
		if guard != nil {
			m.solver.AddConstraint(m.solver.MakeEquality(m.solver.MakeMin(guard...), constInt(0)))
		}
		m.solver.SaveAndSetValue(st.directions[idx], 1)
	}
}
