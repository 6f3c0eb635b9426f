package fdmodel

import "github.com/gitrdm/searchcore/pkg/search"

// exprNode is a read-only interval-arithmetic view over other IntExprs:
// Min/Max are recomputed on every call rather than cached, since the
// underlying variables can change between calls (and there is no
// invalidation channel to hook into). This is cheap enough for the small
// models this host is built to run and keeps exprNode itself stateless.
type exprNode struct {
	min func() int64
	max func() int64
}

var _ search.IntExpr = exprNode{}

func (e exprNode) Min() int64 { return e.min() }
func (e exprNode) Max() int64 { return e.max() }

// constInt is a fixed-value IntExpr that lets a literal int64 stand in
// as an IntExpr (this package's tests post constraints against it);
// pkg/search keeps its own equivalent for tabu search.
type constIntExpr int64

func (c constIntExpr) Min() int64 { return int64(c) }
func (c constIntExpr) Max() int64 { return int64(c) }

func constInt(v int64) search.IntExpr { return constIntExpr(v) }

func (s *Solver) MakeSum(vars ...search.IntExpr) search.IntExpr {
	return exprNode{
		min: func() int64 {
			var t int64
			for _, v := range vars {
				t += v.Min()
			}
			return t
		},
		max: func() int64 {
			var t int64
			for _, v := range vars {
				t += v.Max()
			}
			return t
		},
	}
}

func (s *Solver) MakeMin(vars ...search.IntExpr) search.IntExpr {
	return exprNode{
		min: func() int64 {
			best := vars[0].Min()
			for _, v := range vars[1:] {
				if m := v.Min(); m < best {
					best = m
				}
			}
			return best
		},
		max: func() int64 {
			best := vars[0].Max()
			for _, v := range vars[1:] {
				if m := v.Max(); m < best {
					best = m
				}
			}
			return best
		},
	}
}

func (s *Solver) MakeMax(vars ...search.IntExpr) search.IntExpr {
	return exprNode{
		min: func() int64 {
			best := vars[0].Min()
			for _, v := range vars[1:] {
				if m := v.Min(); m > best {
					best = m
				}
			}
			return best
		},
		max: func() int64 {
			best := vars[0].Max()
			for _, v := range vars[1:] {
				if m := v.Max(); m > best {
					best = m
				}
			}
			return best
		},
	}
}

func (s *Solver) MakeDifference(a, b search.IntExpr) search.IntExpr {
	return exprNode{
		min: func() int64 { return a.Min() - b.Max() },
		max: func() int64 { return a.Max() - b.Min() },
	}
}

// MakeElement returns f(index) as an IntExpr: exact when index is bound,
// an interval bound scanning index's current domain otherwise.
func (s *Solver) MakeElement(f func(int64) int64, index search.IntVar) search.IntExpr {
	return exprNode{
		min: func() int64 { return elementBound(f, index, true) },
		max: func() int64 { return elementBound(f, index, false) },
	}
}

func elementBound(f func(int64) int64, index search.IntVar, wantMin bool) int64 {
	if index.Bound() {
		return f(index.Value())
	}
	it := index.DomainIterator()
	first := true
	var best int64
	for it.Next() {
		v := f(it.Value())
		if first || (wantMin && v < best) || (!wantMin && v > best) {
			best, first = v, false
		}
	}
	return best
}

func (s *Solver) MakeElement2(f func(int64, int64) int64, index1, index2 search.IntVar) search.IntExpr {
	return exprNode{
		min: func() int64 { return element2Bound(f, index1, index2, true) },
		max: func() int64 { return element2Bound(f, index1, index2, false) },
	}
}

func element2Bound(f func(int64, int64) int64, i1, i2 search.IntVar, wantMin bool) int64 {
	if i1.Bound() && i2.Bound() {
		return f(i1.Value(), i2.Value())
	}
	first := true
	var best int64
	it1 := i1.DomainIterator()
	for it1.Next() {
		v1 := it1.Value()
		it2 := i2.DomainIterator()
		for it2.Next() {
			v := f(v1, it2.Value())
			if first || (wantMin && v < best) || (!wantMin && v > best) {
				best, first = v, false
			}
		}
	}
	return best
}
