package search

// IntVarStrategy enumerates the variable-selection strategies a
// VariableSelector can implement. It mirrors the closed enum from §6.
type IntVarStrategy int

const (
	// ChooseFirstUnbound picks the first unbound variable in array order.
	ChooseFirstUnbound IntVarStrategy = iota
	// ChooseRandom picks the first unbound variable at or after a
	// uniformly random array position, wrapping around.
	ChooseRandom
	// ChooseMinSizeLowestMin picks the minimum-domain-size variable,
	// breaking ties toward the lowest Min.
	ChooseMinSizeLowestMin
	// ChooseMinSizeHighestMin picks the minimum-domain-size variable,
	// breaking ties toward the highest Min.
	ChooseMinSizeHighestMin
	// ChooseMinSizeLowestMax picks the minimum-domain-size variable,
	// breaking ties toward the lowest Max.
	ChooseMinSizeLowestMax
	// ChooseMinSizeHighestMax picks the minimum-domain-size variable,
	// breaking ties toward the highest Max.
	ChooseMinSizeHighestMax
	// ChoosePath follows a next[i] successor chain.
	ChoosePath
	// ChooseCheapest picks argmin over a user cost function.
	ChooseCheapest
)

// NoVarFound is the sentinel index VariableSelector.Select returns when
// no unbound variable remains.
const NoVarFound = -1

// VariableSelector picks the next unbound variable to branch on.
// Selectors never fail; Select returns (nil, NoVarFound) when no unbound
// variable remains. Implementations that carry mutable cursor state must
// make that state reversible (§3) by routing mutations through
// Solver.SaveAndSetValue.
type VariableSelector interface {
	Select(s Solver) (IntVar, int)
}

// baseArraySelector holds the flat, immutable candidate array shared by
// every array-based strategy.
type baseArraySelector struct {
	vars []IntVar
}

// firstUnboundSelector implements ChooseFirstUnbound. Its cursor never
// regresses across untrailed mutations: once a variable is bound at
// position k, re-entry from the same tree node starts at k, but
// backtracking restores the earlier cursor via the trail.
type firstUnboundSelector struct {
	baseArraySelector
	cursor int64
}

// NewFirstUnboundSelector returns a VariableSelector implementing
// ChooseFirstUnbound over vars.
func NewFirstUnboundSelector(vars []IntVar) VariableSelector {
	return &firstUnboundSelector{baseArraySelector: baseArraySelector{vars: vars}}
}

func (f *firstUnboundSelector) Select(s Solver) (IntVar, int) {
	i := int(f.cursor)
	for i < len(f.vars) && f.vars[i].Bound() {
		i++
	}
	if i >= len(f.vars) {
		return nil, NoVarFound
	}
	if int64(i) != f.cursor {
		s.SaveAndSetValue(&f.cursor, int64(i))
	}
	return f.vars[i], i
}

// randomSelector implements ChooseRandom: the array is scanned circularly
// from a uniformly random shift and the first unbound variable is taken.
// Selection probabilities are not equal: an unbound variable that follows
// a run of bound ones is picked for every shift in that run.
type randomSelector struct {
	baseArraySelector
}

// NewRandomSelector returns a VariableSelector implementing ChooseRandom.
func NewRandomSelector(vars []IntVar) VariableSelector {
	return &randomSelector{baseArraySelector{vars: vars}}
}

func (r *randomSelector) Select(s Solver) (IntVar, int) {
	n := len(r.vars)
	if n == 0 {
		return nil, NoVarFound
	}
	shift := int(s.Rand32(uint32(n)))
	for k := 0; k < n; k++ {
		i := (shift + k) % n
		if !r.vars[i].Bound() {
			return r.vars[i], i
		}
	}
	return nil, NoVarFound
}

// minSizeSelector implements the four CHOOSE_MIN_SIZE_* strategies,
// distinguished only by their tie-break comparator.
type minSizeSelector struct {
	baseArraySelector
	better func(candidate, incumbent IntVar) bool
}

// NewMinSizeSelector returns a VariableSelector for one of the four
// CHOOSE_MIN_SIZE_* strategies.
func NewMinSizeSelector(vars []IntVar, strategy IntVarStrategy) (VariableSelector, error) {
	var better func(c, inc IntVar) bool
	switch strategy {
	case ChooseMinSizeLowestMin:
		better = func(c, inc IntVar) bool {
			if c.Size() != inc.Size() {
				return c.Size() < inc.Size()
			}
			return c.Min() < inc.Min()
		}
	case ChooseMinSizeHighestMin:
		better = func(c, inc IntVar) bool {
			if c.Size() != inc.Size() {
				return c.Size() < inc.Size()
			}
			return c.Min() > inc.Min()
		}
	case ChooseMinSizeLowestMax:
		better = func(c, inc IntVar) bool {
			if c.Size() != inc.Size() {
				return c.Size() < inc.Size()
			}
			return c.Max() < inc.Max()
		}
	case ChooseMinSizeHighestMax:
		better = func(c, inc IntVar) bool {
			if c.Size() != inc.Size() {
				return c.Size() < inc.Size()
			}
			return c.Max() > inc.Max()
		}
	default:
		return nil, ErrUnknownStrategy
	}
	return &minSizeSelector{baseArraySelector{vars: vars}, better}, nil
}

func (m *minSizeSelector) Select(s Solver) (IntVar, int) {
	best := -1
	for i, v := range m.vars {
		if v.Bound() {
			continue
		}
		if best == -1 || m.better(v, m.vars[best]) {
			best = i
		}
	}
	if best == -1 {
		return nil, NoVarFound
	}
	return m.vars[best], best
}

// pathSelector implements ChoosePath: follow a next[i] successor chain.
// The start is the unbound variable with no possible predecessor in
// `next` (i.e. no j with next[j] == i), falling back to the first
// unbound variable if every unbound variable has a predecessor. Cycles
// are detected and broken by bounding the visited set to len(vars).
//
// first is the selector's reversible "first" pointer (§3): the start
// index found by the last Select call, trailed via SaveAndSetValue so a
// backtrack restores the earlier starting point rather than forcing a
// full rescan from index 0 on every call. It is still only a cache —
// recomputed via findPathStart whenever it is unset, out of range, or
// points at a bound variable.
type pathSelector struct {
	baseArraySelector
	next  func(i int) (j int, ok bool)
	first int64
}

// NewPathSelector returns a VariableSelector implementing ChoosePath.
// next(i) reports the successor index of vars[i], if any.
func NewPathSelector(vars []IntVar, next func(i int) (int, bool)) VariableSelector {
	return &pathSelector{baseArraySelector: baseArraySelector{vars: vars}, next: next, first: -1}
}

// findPathStart recomputes the start of the unassigned chain: the
// unbound variable with no predecessor in `next`, falling back to the
// first unbound variable if every unbound variable has one.
func (p *pathSelector) findPathStart() int {
	n := len(p.vars)
	hasPredecessor := make([]bool, n)
	for i := range p.vars {
		if j, ok := p.next(i); ok && j >= 0 && j < n {
			hasPredecessor[j] = true
		}
	}
	for i, v := range p.vars {
		if !v.Bound() && !hasPredecessor[i] {
			return i
		}
	}
	for i, v := range p.vars {
		if !v.Bound() {
			return i
		}
	}
	return -1
}

func (p *pathSelector) Select(s Solver) (IntVar, int) {
	n := len(p.vars)
	start := int(p.first)
	if start < 0 || start >= n || p.vars[start].Bound() {
		start = p.findPathStart()
		if start == -1 {
			return nil, NoVarFound
		}
		if int64(start) != p.first {
			s.SaveAndSetValue(&p.first, int64(start))
		}
	}
	i := start
	visited := make(map[int]bool, n)
	for {
		if p.vars[i].Bound() {
			if j, ok := p.next(i); ok && j >= 0 && j < n && !visited[j] {
				visited[j] = true
				i = j
				continue
			}
			return nil, NoVarFound
		}
		return p.vars[i], i
	}
}

// cheapestVarSelector implements CHEAPEST: argmin over a user-supplied
// cost function keyed by array index.
type cheapestVarSelector struct {
	baseArraySelector
	cost func(i int) int64
}

// NewCheapestVarSelector returns a VariableSelector implementing CHEAPEST.
func NewCheapestVarSelector(vars []IntVar, cost func(i int) int64) VariableSelector {
	return &cheapestVarSelector{baseArraySelector{vars: vars}, cost}
}

func (c *cheapestVarSelector) Select(s Solver) (IntVar, int) {
	best := -1
	var bestCost int64
	for i, v := range c.vars {
		if v.Bound() {
			continue
		}
		cst := c.cost(i)
		if best == -1 || cst < bestCost {
			best, bestCost = i, cst
		}
	}
	if best == -1 {
		return nil, NoVarFound
	}
	return c.vars[best], best
}
