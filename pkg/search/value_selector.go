package search

// IntValueStrategy enumerates the value-selection strategies a
// ValueSelector can implement.
type IntValueStrategy int

const (
	// AssignMinValue picks the domain minimum.
	AssignMinValue IntValueStrategy = iota
	// AssignMaxValue picks the domain maximum.
	AssignMaxValue
	// AssignRandomValue picks a uniformly random domain value.
	AssignRandomValue
	// AssignCenterValue picks the value closest to (Min+Max)/2.
	AssignCenterValue
	// AssignCheapestValue picks the argmin of a user cost function.
	AssignCheapestValue
)

// ValueSelector picks a value from v's domain for branching.
type ValueSelector interface {
	Select(v IntVar, id int) int64
}

// minValueSelector implements AssignMinValue.
type minValueSelector struct{}

// NewMinValueSelector returns a ValueSelector implementing AssignMinValue.
func NewMinValueSelector() ValueSelector { return minValueSelector{} }

func (minValueSelector) Select(v IntVar, id int) int64 { return v.Min() }

// maxValueSelector implements AssignMaxValue.
type maxValueSelector struct{}

// NewMaxValueSelector returns a ValueSelector implementing AssignMaxValue.
func NewMaxValueSelector() ValueSelector { return maxValueSelector{} }

func (maxValueSelector) Select(v IntVar, id int) int64 { return v.Max() }

// randomValueSelector implements AssignRandomValue. For dense domains
// (Size close to Max-Min+1) it rejection-samples within [Min,Max]; for
// sparse domains it counts to a randomly chosen ordinal from whichever
// end is closer, avoiding pathological rejection-sampling loops.
type randomValueSelector struct {
	solver Solver
}

// NewRandomValueSelector returns a ValueSelector implementing
// AssignRandomValue, using s for its random draws.
func NewRandomValueSelector(s Solver) ValueSelector {
	return &randomValueSelector{solver: s}
}

func (r *randomValueSelector) Select(v IntVar, id int) int64 {
	lo, hi := v.Min(), v.Max()
	span := hi - lo + 1
	if span <= 0 {
		return lo
	}
	size := v.Size()
	dense := size*2 >= span // at least half of the span is present
	if dense {
		for attempts := 0; attempts < 64; attempts++ {
			candidate := lo + int64(r.solver.Rand64(uint64(span)))
			if v.Contains(candidate) {
				return candidate
			}
		}
		// Fall through to counted enumeration if rejection sampling
		// stalls (pathological near-half-dense domains).
	}
	ordinal := int64(r.solver.Rand64(uint64(size)))
	fromLow := ordinal <= size-ordinal
	it := v.DomainIterator()
	if fromLow {
		var i int64
		for it.Next() {
			if i == ordinal {
				return it.Value()
			}
			i++
		}
	} else {
		values := make([]int64, 0, size)
		for it.Next() {
			values = append(values, it.Value())
		}
		return values[len(values)-1-int(size-1-ordinal)]
	}
	return lo
}

// centerValueSelector implements AssignCenterValue: pick (Min+Max)/2,
// else expand outward by +/-1, +/-2, ..., preferring the + side on ties.
// Per §9, returns 0 as a fallback when no value is found; this branch is
// unreachable for non-empty domains but the fallback is preserved
// deliberately, matching the host's own documented quirk.
type centerValueSelector struct{}

// NewCenterValueSelector returns a ValueSelector implementing
// AssignCenterValue.
func NewCenterValueSelector() ValueSelector { return centerValueSelector{} }

func (centerValueSelector) Select(v IntVar, id int) int64 {
	center := (v.Min() + v.Max()) / 2
	if v.Contains(center) {
		return center
	}
	for delta := int64(1); delta <= v.Max()-v.Min(); delta++ {
		if v.Contains(center + delta) {
			return center + delta
		}
		if v.Contains(center - delta) {
			return center - delta
		}
	}
	return 0
}

// cheapestValueSelector implements AssignCheapestValue: evaluate
// cost(id, value) over the domain, keep the argmin set, and optionally
// pick among ties via tieBreak.
type cheapestValueSelector struct {
	cost     func(id int, value int64) int64
	tieBreak func(id int, ties []int64) int64
}

// NewCheapestValueSelector returns a ValueSelector implementing
// AssignCheapestValue. tieBreak may be nil, in which case the first
// argmin value encountered (ascending domain order) is returned.
func NewCheapestValueSelector(cost func(id int, value int64) int64, tieBreak func(id int, ties []int64) int64) ValueSelector {
	return &cheapestValueSelector{cost: cost, tieBreak: tieBreak}
}

func (c *cheapestValueSelector) Select(v IntVar, id int) int64 {
	it := v.DomainIterator()
	var best int64
	var bestCost int64
	ties := make([]int64, 0, 4)
	first := true
	for it.Next() {
		val := it.Value()
		cst := c.cost(id, val)
		switch {
		case first || cst < bestCost:
			best, bestCost, first = val, cst, false
			ties = ties[:0]
			ties = append(ties, val)
		case cst == bestCost:
			ties = append(ties, val)
		}
	}
	if c.tieBreak != nil && len(ties) > 1 {
		return c.tieBreak(id, ties)
	}
	return best
}
