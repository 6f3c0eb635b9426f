package search

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// SearchLog emits a periodic progress line every Period branches, plus
// structured lines on EnterSearch, ExitSearch, AtSolution,
// NoMoreSolutions, and after initial propagation. It tracks solution
// count, wall-clock since EnterSearch, objective min/max across
// solutions, current tree depth, a sliding min/max depth window reset on
// each emission, the minimum right-branch depth seen (a proxy for proof
// depth), and the max depth ever seen.
//
// Re-entering search (a fresh EnterSearch) resets every counter; no state
// leaks from a prior run.
type SearchLog struct {
	BaseMonitor

	solver     Solver
	period     int64
	objective  IntExpr
	maximize   bool
	onSolution func() string // optional, may append custom text
	logger     *slog.Logger

	runID        string
	enterTime    time.Time
	solutions    int64
	objMin       int64
	objMax       int64
	haveObj      bool
	depth        int
	slidingMin   int
	slidingMax   int
	minRightDepth int
	maxDepth     int
	lastBranches int64
}

// NewSearchLog returns a SearchLog that emits a line every period
// branches (period <= 0 disables the periodic line; solution/search
// boundary lines are always emitted). objective may be nil if the search
// has no objective. onSolution may be nil.
func NewSearchLog(s Solver, period int64, objective IntExpr, maximize bool, logger *slog.Logger, onSolution func() string) *SearchLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchLog{
		solver:     s,
		period:     period,
		objective:  objective,
		maximize:   maximize,
		onSolution: onSolution,
		logger:     logger,
	}
}

func (l *SearchLog) EnterSearch() {
	l.runID = uuid.NewString()
	l.enterTime = time.Now()
	l.solutions = 0
	l.haveObj = false
	l.depth = 0
	l.slidingMin, l.slidingMax = 0, 0
	l.minRightDepth = -1
	l.maxDepth = 0
	l.lastBranches = l.solver.Branches()
	l.logger.Info("enter search", "run", l.runID)
}

func (l *SearchLog) ExitSearch() {
	l.logger.Info("exit search", "run", l.runID,
		"solutions", l.solutions,
		"elapsed", time.Since(l.enterTime),
		"branches", l.solver.Branches(),
		"failures", l.solver.Failures(),
	)
}

func (l *SearchLog) BeginInitialPropagation() {}

func (l *SearchLog) EndInitialPropagation() {
	l.logger.Info("initial propagation done", "run", l.runID, "memory", prettyMemory(l.solver.MemoryUsage()))
}

func (l *SearchLog) BeginNextDecision(db DecisionBuilder) {
	l.depth = l.solver.SearchDepth()
	if l.depth < l.slidingMin || l.slidingMin == 0 {
		l.slidingMin = l.depth
	}
	if l.depth > l.slidingMax {
		l.slidingMax = l.depth
	}
	if l.depth > l.maxDepth {
		l.maxDepth = l.depth
	}
	if l.period > 0 {
		branches := l.solver.Branches()
		if branches-l.lastBranches >= l.period {
			l.emitPeriodic(branches)
			l.lastBranches = branches
			l.slidingMin, l.slidingMax = l.depth, l.depth
		}
	}
}

func (l *SearchLog) RefuteDecision(d Decision) {
	depth := l.solver.SearchDepth()
	if l.minRightDepth == -1 || depth < l.minRightDepth {
		l.minRightDepth = depth
	}
}

func (l *SearchLog) emitPeriodic(branches int64) {
	l.logger.Info("search progress", "run", l.runID,
		"branches", branches,
		"failures", l.solver.Failures(),
		"depth_min", l.slidingMin,
		"depth_max", l.slidingMax,
		"elapsed", time.Since(l.enterTime),
	)
}

func (l *SearchLog) AcceptSolution() bool { return true }

func (l *SearchLog) AtSolution() bool {
	l.solutions++
	fields := []any{
		"run", l.runID,
		"solution", l.solutions,
		"elapsed", time.Since(l.enterTime),
		"branches", l.solver.Branches(),
		"failures", l.solver.Failures(),
		"depth_max", l.maxDepth,
		"right_depth_min", l.minRightDepth,
	}
	if l.objective != nil {
		v := l.objective.Min() // bound at a solution: Min == Max
		if !l.haveObj {
			l.objMin, l.objMax, l.haveObj = v, v, true
		} else {
			if v < l.objMin {
				l.objMin = v
			}
			if v > l.objMax {
				l.objMax = v
			}
		}
		fields = append(fields, "objective", v, "objective_min", l.objMin, "objective_max", l.objMax)
	}
	if l.onSolution != nil {
		fields = append(fields, "note", l.onSolution())
	}
	l.logger.Info("solution found", fields...)
	return true
}

func (l *SearchLog) NoMoreSolutions() {
	l.logger.Info("no more solutions", "run", l.runID, "solutions", l.solutions)
}

// prettyMemory renders a byte count as whole bytes (B) below 1024, and
// otherwise as KB/MB/GB with one fractional digit, switching unit at each
// power-of-1024 threshold.
func prettyMemory(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%dB", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit && exp < 2; n /= unit {
		div *= unit
		exp++
	}
	units := []string{"KB", "MB", "GB"}
	return fmt.Sprintf("%.1f%s", float64(bytes)/float64(div), units[exp])
}
