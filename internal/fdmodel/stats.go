package fdmodel

import (
	"fmt"
	"sync"
	"time"

	"github.com/gitrdm/searchcore/pkg/search"
)

// Stats is a point-in-time snapshot of a search run, taken by
// StatsMonitor.Snapshot. It mirrors the fields a host embedding this
// reference solver would want to log or export alongside Solver's own
// Branches/Failures/Solutions/WallTime counters: a per-run view rather
// than a lifetime-of-the-solver one, since a single Solver can run many
// searches (nested solves, restarts) whose individual costs are
// otherwise indistinguishable from the running totals.
type Stats struct {
	Branches    int64
	Failures    int64
	Solutions   int64
	MaxDepth    int
	RunTime     time.Duration
	LocalOptima int
	Neighbors   int
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"branches=%d failures=%d solutions=%d max_depth=%d local_optima=%d neighbors=%d time=%v",
		s.Branches, s.Failures, s.Solutions, s.MaxDepth, s.LocalOptima, s.Neighbors, s.RunTime,
	)
}

// StatsMonitor is a SearchMonitor that accumulates per-run statistics by
// hooking EnterSearch/ExitSearch and the decision/fail/local-optimum
// events, the same way the teacher's SolverMonitor accumulates
// NodesExplored/Backtracks/MaxDepth by hand-instrumented calls from the
// FD solver's own loop. Here the instrumentation point is the
// search-monitor protocol itself rather than direct calls from the
// driver, since that protocol is this package's one sanctioned
// observation channel.
type StatsMonitor struct {
	search.BaseMonitor

	solver *Solver

	mu       sync.Mutex
	started  time.Time
	branches int64
	failures int64
	solns    int64
	depth    int
	maxDepth int
	optima   int
	neigh    int
}

// MakeStatsMonitor returns a StatsMonitor tracking s's per-run counters.
func MakeStatsMonitor(s *Solver) *StatsMonitor {
	return &StatsMonitor{solver: s}
}

func (m *StatsMonitor) EnterSearch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = time.Now()
	m.branches, m.failures, m.solns = 0, 0, 0
	m.depth, m.maxDepth, m.optima, m.neigh = 0, 0, 0, 0
}

func (m *StatsMonitor) ApplyDecision(search.Decision) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.branches++
	m.depth++
	if m.depth > m.maxDepth {
		m.maxDepth = m.depth
	}
}

func (m *StatsMonitor) RefuteDecision(search.Decision) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.depth--
}

func (m *StatsMonitor) BeginFail() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

func (m *StatsMonitor) AtSolution() bool {
	m.mu.Lock()
	m.solns++
	m.mu.Unlock()
	return true
}

func (m *StatsMonitor) LocalOptimum() bool {
	m.mu.Lock()
	m.optima++
	m.mu.Unlock()
	return true
}

func (m *StatsMonitor) AcceptNeighbor() {
	m.mu.Lock()
	m.neigh++
	m.mu.Unlock()
}

func (m *StatsMonitor) AcceptUncheckedNeighbor() {
	m.mu.Lock()
	m.neigh++
	m.mu.Unlock()
}

// Snapshot returns the statistics accumulated since the last EnterSearch.
func (m *StatsMonitor) Snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt := time.Duration(0)
	if !m.started.IsZero() {
		rt = time.Since(m.started)
	}
	return Stats{
		Branches:    m.branches,
		Failures:    m.failures,
		Solutions:   m.solns,
		MaxDepth:    m.maxDepth,
		RunTime:     rt,
		LocalOptima: m.optima,
		Neighbors:   m.neigh,
	}
}

var _ search.SearchMonitor = (*StatsMonitor)(nil)
