package search

import "sort"

// EvaluatorStrategy selects between the two global-evaluator selection
// modes.
type EvaluatorStrategy int

const (
	// EvaluatorDynamic re-enumerates all unbound (i, j) pairs on every
	// selection.
	EvaluatorDynamic EvaluatorStrategy = iota
	// EvaluatorStatic precomputes the sorted candidate list once, lazily,
	// on first use.
	EvaluatorStatic
)

// GlobalEvaluatorSelector selects both a variable and a value jointly to
// minimize a user-supplied cost function g(i, j) over all unbound
// variable index i and candidate value j. Unlike VariableSelector and
// ValueSelector, it is driven directly by a DecisionBuilder rather than
// composed with a separate value selector.
type GlobalEvaluatorSelector interface {
	// Select returns the chosen variable, its index, and the value to
	// assign, or ok=false if no unbound variable remains.
	Select(s Solver) (v IntVar, id int, value int64, ok bool)
}

// evalCandidate is one (variable index, value) pair with its evaluated
// cost, used by both evaluator selector variants.
type evalCandidate struct {
	varIndex int
	value    int64
	cost     int64
}

// TieBreaker picks among candidates tied for the best cost. It receives
// the tied candidates' original indices and returns the position within
// ties (not the original index) of the one to keep.
type TieBreaker func(ties []int) int

// dynamicEvaluatorSelector re-evaluates every unbound (i, j) pair on each
// call to Select.
type dynamicEvaluatorSelector struct {
	vars       []IntVar
	g          func(i int, j int64) int64
	tieBreaker TieBreaker
}

// NewDynamicEvaluatorSelector returns a GlobalEvaluatorSelector that, on
// every Select call, enumerates all unbound (i, j) and returns the one
// minimizing g. tieBreaker may be nil.
func NewDynamicEvaluatorSelector(vars []IntVar, g func(i int, j int64) int64, tieBreaker TieBreaker) GlobalEvaluatorSelector {
	return &dynamicEvaluatorSelector{vars: vars, g: g, tieBreaker: tieBreaker}
}

func (d *dynamicEvaluatorSelector) Select(s Solver) (IntVar, int, int64, bool) {
	var candidates []evalCandidate
	for i, v := range d.vars {
		if v.Bound() {
			continue
		}
		it := v.DomainIterator()
		for it.Next() {
			j := it.Value()
			candidates = append(candidates, evalCandidate{i, j, d.g(i, j)})
		}
	}
	if len(candidates) == 0 {
		return nil, NoVarFound, 0, false
	}
	return pickBest(candidates, d.vars, d.tieBreaker)
}

// staticEvaluatorSelector lazily precomputes, on first call, the sorted
// list of all (i, j) candidates for the variables unbound at that time,
// then resumes from a trailed cursor on each subsequent call, skipping
// entries whose variable is no longer unbound or whose value is no
// longer in-domain (both may change between calls as search progresses).
type staticEvaluatorSelector struct {
	vars       []IntVar
	g          func(i int, j int64) int64
	tieBreaker TieBreaker
	sorted     []evalCandidate // computed lazily
	computed   bool
	cursor     int64
}

// NewStaticEvaluatorSelector returns a GlobalEvaluatorSelector that
// precomputes its sorted candidate list once.
func NewStaticEvaluatorSelector(vars []IntVar, g func(i int, j int64) int64, tieBreaker TieBreaker) GlobalEvaluatorSelector {
	return &staticEvaluatorSelector{vars: vars, g: g, tieBreaker: tieBreaker}
}

func (st *staticEvaluatorSelector) Select(s Solver) (IntVar, int, int64, bool) {
	if !st.computed {
		for i, v := range st.vars {
			if v.Bound() {
				continue
			}
			it := v.DomainIterator()
			for it.Next() {
				j := it.Value()
				st.sorted = append(st.sorted, evalCandidate{i, j, st.g(i, j)})
			}
		}
		sort.Slice(st.sorted, func(a, b int) bool { return st.sorted[a].cost < st.sorted[b].cost })
		st.computed = true
	}
	for pos := int(st.cursor); pos < len(st.sorted); pos++ {
		c := st.sorted[pos]
		v := st.vars[c.varIndex]
		if v.Bound() || !v.Contains(c.value) {
			continue
		}
		if int64(pos) != st.cursor {
			s.SaveAndSetValue(&st.cursor, int64(pos))
		}
		return v, c.varIndex, c.value, true
	}
	return nil, NoVarFound, 0, false
}

// pickBest finds the minimum-cost candidate(s) in candidates, applying
// tieBreaker when more than one share the minimum cost.
func pickBest(candidates []evalCandidate, vars []IntVar, tieBreaker TieBreaker) (IntVar, int, int64, bool) {
	best := candidates[0].cost
	for _, c := range candidates[1:] {
		if c.cost < best {
			best = c.cost
		}
	}
	var ties []int
	for i, c := range candidates {
		if c.cost == best {
			ties = append(ties, i)
		}
	}
	chosen := ties[0]
	if tieBreaker != nil && len(ties) > 1 {
		chosen = ties[tieBreaker(ties)]
	}
	c := candidates[chosen]
	return vars[c.varIndex], c.varIndex, c.value, true
}
