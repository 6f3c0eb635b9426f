package search

// GuidedLocalSearchPenalties is the contract shared by the dense and
// sparse penalty stores: a non-negative count per (variable index,
// value) arc, plus a fast "does this variable have any penalty at all"
// check (GuidedLocalSearch.ApplyDecision does not call it; it
// short-circuits on its own anyPenalty flag). Property 7 (spec.md §8) requires the two
// implementations to be observationally equivalent for any sequence of
// Increment/Value calls.
type GuidedLocalSearchPenalties interface {
	Increment(i int, j int64)
	Value(i int, j int64) int64
	HasAnyPenalty(i int) bool
}

// DensePenalties is a 2-D ragged table: one slice per variable index,
// sized to that variable's initial domain span, so lookups are O(1)
// array indexing rather than hashing. There is no default store: the
// caller passes either this or SparsePenalties to MakeGuidedLocalSearch.
type DensePenalties struct {
	offset  []int64
	table   [][]int64
	hasAny  []bool
}

// NewDensePenalties allocates a DensePenalties table sized to vars'
// initial domains.
func NewDensePenalties(vars []IntVar) *DensePenalties {
	offset := make([]int64, len(vars))
	table := make([][]int64, len(vars))
	for i, v := range vars {
		offset[i] = v.Min()
		span := v.Max() - v.Min() + 1
		if span < 0 {
			span = 0
		}
		table[i] = make([]int64, span)
	}
	return &DensePenalties{offset: offset, table: table, hasAny: make([]bool, len(vars))}
}

func (d *DensePenalties) Increment(i int, j int64) {
	d.table[i][j-d.offset[i]]++
	d.hasAny[i] = true
}

func (d *DensePenalties) Value(i int, j int64) int64 {
	return d.table[i][j-d.offset[i]]
}

func (d *DensePenalties) HasAnyPenalty(i int) bool { return d.hasAny[i] }

// arcKey identifies one (variable index, value) arc in the sparse store.
type arcKey struct {
	i int
	j int64
}

// SparsePenalties is a map keyed by arc, plus a companion bitmap of which
// variable indices have any penalty at all, for the same fast
// short-circuit the dense store gets from a flat bool slice. Go's map
// already applies a standard 64-bit hash to the struct key, so no custom
// mixing function is needed (per spec.md §9's "Sparse GLS hasher" note:
// the mix function is an implementation detail, not a contract).
type SparsePenalties struct {
	values map[arcKey]int64
	hasAny map[int]bool
}

// NewSparsePenalties returns an empty SparsePenalties store
// (use_sparse_gls_penalties: true).
func NewSparsePenalties() *SparsePenalties {
	return &SparsePenalties{values: make(map[arcKey]int64), hasAny: make(map[int]bool)}
}

func (s *SparsePenalties) Increment(i int, j int64) {
	s.values[arcKey{i, j}]++
	s.hasAny[i] = true
}

func (s *SparsePenalties) Value(i int, j int64) int64 {
	return s.values[arcKey{i, j}]
}

func (s *SparsePenalties) HasAnyPenalty(i int) bool { return s.hasAny[i] }
