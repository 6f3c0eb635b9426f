package search

// SearchMonitor is an observer receiving search-lifecycle events. Every
// hook has a no-op (or return-true/return-false, as documented) default so
// concrete monitors only override the hooks they care about; BaseMonitor
// provides that default implementation to embed.
//
// The driver calls hooks in the fixed order documented on each method; see
// SPEC_FULL.md §5 "Ordering guarantees" for the full contract: monitors
// fire in registration order, and all mutation happens synchronously
// during hook dispatch.
type SearchMonitor interface {
	// EnterSearch is called once before the first decision of a (possibly
	// nested) search. Fail must not be called from this hook.
	EnterSearch()
	// ExitSearch is called once after search completes. Fail must not be
	// called from this hook.
	ExitSearch()
	// BeginNextDecision is called before db.Next is invoked.
	BeginNextDecision(db DecisionBuilder)
	// EndNextDecision is called after db.Next returns; d is nil if no
	// decision remains (ok was false).
	EndNextDecision(db DecisionBuilder, d Decision)
	// ApplyDecision is called when d's apply branch is taken.
	ApplyDecision(d Decision)
	// RefuteDecision is called when d's refute branch is taken.
	RefuteDecision(d Decision)
	// BeginFail is called when the solver begins unwinding a failure.
	BeginFail()
	// EndFail is called once the failure has finished unwinding.
	EndFail()
	// BeginInitialPropagation is called before the solver's initial
	// fixed-point propagation.
	BeginInitialPropagation()
	// EndInitialPropagation is called after initial propagation completes.
	EndInitialPropagation()
	// AcceptSolution is called for every candidate solution. If any
	// registered monitor returns false, the solution is rejected (treated
	// as if the branch had failed) instead of being accepted.
	AcceptSolution() bool
	// AtSolution is called once a solution has been accepted. If any
	// registered monitor returns true, search continues looking for more
	// solutions; otherwise search stops.
	AtSolution() bool
	// NoMoreSolutions is called once the search tree is exhausted.
	NoMoreSolutions()
	// RestartSearch is called when a restart monitor triggers a restart.
	RestartSearch()
	// LocalOptimum is called by local-search metaheuristics when the
	// current neighborhood yields no improving neighbor. Returning true
	// signals the metaheuristic should continue escaping; false signals
	// the local search phase itself should stop.
	LocalOptimum() bool
	// AcceptNeighbor is called when a local-search neighbor is accepted
	// after going through local-optimum detection.
	AcceptNeighbor()
	// AcceptUncheckedNeighbor is called when a neighbor is accepted
	// without going through local-optimum detection (e.g. by an external
	// LNS loop driving the same monitors).
	AcceptUncheckedNeighbor()
	// AcceptDelta is called to ask whether an incremental neighbor delta
	// should be accepted; deltadelta carries the delta-of-delta when the
	// neighbor is itself an incremental refinement of the prior one.
	AcceptDelta(delta, deltadelta Assignment) bool
}

// BaseMonitor implements every SearchMonitor hook as a no-op (booleans
// default to the permissive value: AcceptSolution true, AtSolution true
// so search continues, LocalOptimum true, AcceptDelta true). Concrete
// monitors embed BaseMonitor and override only what they need.
type BaseMonitor struct{}

func (BaseMonitor) EnterSearch()                  {}
func (BaseMonitor) ExitSearch()                   {}
func (BaseMonitor) BeginNextDecision(DecisionBuilder) {}
func (BaseMonitor) EndNextDecision(DecisionBuilder, Decision) {}
func (BaseMonitor) ApplyDecision(Decision)         {}
func (BaseMonitor) RefuteDecision(Decision)        {}
func (BaseMonitor) BeginFail()                     {}
func (BaseMonitor) EndFail()                       {}
func (BaseMonitor) BeginInitialPropagation()        {}
func (BaseMonitor) EndInitialPropagation()          {}
func (BaseMonitor) AcceptSolution() bool            { return true }
func (BaseMonitor) AtSolution() bool                { return true }
func (BaseMonitor) NoMoreSolutions()                {}
func (BaseMonitor) RestartSearch()                  {}
func (BaseMonitor) LocalOptimum() bool              { return true }
func (BaseMonitor) AcceptNeighbor()                 {}
func (BaseMonitor) AcceptUncheckedNeighbor()        {}
func (BaseMonitor) AcceptDelta(Assignment, Assignment) bool { return true }

var _ SearchMonitor = BaseMonitor{}

// Monitors fans a list of monitors out as a single SearchMonitor in
// registration order, so a host driver can attach "all of these" to one
// search the same way it would attach a single monitor.
func Monitors(ms ...SearchMonitor) SearchMonitor {
	return monitorList(ms)
}

// monitorList dispatches each hook to every monitor in registration
// order, implementing the "ordering guarantees" of SPEC_FULL.md §5 in one
// place so every call site (the reference driver, NestedSolve, etc.)
// shares identical fan-out semantics instead of duplicating the loop.
type monitorList []SearchMonitor

func (ms monitorList) EnterSearch() {
	for _, m := range ms {
		m.EnterSearch()
	}
}

func (ms monitorList) ExitSearch() {
	for _, m := range ms {
		m.ExitSearch()
	}
}

func (ms monitorList) BeginNextDecision(db DecisionBuilder) {
	for _, m := range ms {
		m.BeginNextDecision(db)
	}
}

func (ms monitorList) EndNextDecision(db DecisionBuilder, d Decision) {
	for _, m := range ms {
		m.EndNextDecision(db, d)
	}
}

func (ms monitorList) ApplyDecision(d Decision) {
	for _, m := range ms {
		m.ApplyDecision(d)
	}
}

func (ms monitorList) RefuteDecision(d Decision) {
	for _, m := range ms {
		m.RefuteDecision(d)
	}
}

func (ms monitorList) BeginFail() {
	for _, m := range ms {
		m.BeginFail()
	}
}

func (ms monitorList) EndFail() {
	for _, m := range ms {
		m.EndFail()
	}
}

func (ms monitorList) BeginInitialPropagation() {
	for _, m := range ms {
		m.BeginInitialPropagation()
	}
}

func (ms monitorList) EndInitialPropagation() {
	for _, m := range ms {
		m.EndInitialPropagation()
	}
}

// AcceptSolution rejects the solution if any monitor returns false.
func (ms monitorList) AcceptSolution() bool {
	ok := true
	for _, m := range ms {
		if !m.AcceptSolution() {
			ok = false
		}
	}
	return ok
}

// AtSolution continues search if any monitor returns true.
func (ms monitorList) AtSolution() bool {
	cont := false
	for _, m := range ms {
		if m.AtSolution() {
			cont = true
		}
	}
	return cont
}

func (ms monitorList) NoMoreSolutions() {
	for _, m := range ms {
		m.NoMoreSolutions()
	}
}

func (ms monitorList) RestartSearch() {
	for _, m := range ms {
		m.RestartSearch()
	}
}

func (ms monitorList) LocalOptimum() bool {
	cont := false
	for _, m := range ms {
		if m.LocalOptimum() {
			cont = true
		}
	}
	return cont
}

func (ms monitorList) AcceptNeighbor() {
	for _, m := range ms {
		m.AcceptNeighbor()
	}
}

func (ms monitorList) AcceptUncheckedNeighbor() {
	for _, m := range ms {
		m.AcceptUncheckedNeighbor()
	}
}

func (ms monitorList) AcceptDelta(delta, deltadelta Assignment) bool {
	ok := true
	for _, m := range ms {
		if !m.AcceptDelta(delta, deltadelta) {
			ok = false
		}
	}
	return ok
}
