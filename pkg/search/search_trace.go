package search

import (
	"log/slog"

	"github.com/google/uuid"
)

// SearchTrace emits one structured event per hook invocation, intended
// for step-by-step debugging rather than periodic progress reporting
// (that is SearchLog's job). Decisions are traced by their String form,
// which names the concrete variable/value effect.
type SearchTrace struct {
	BaseMonitor

	logger *slog.Logger
	runID  string
}

// NewSearchTrace returns a SearchTrace writing to logger (slog.Default if
// nil).
func NewSearchTrace(logger *slog.Logger) *SearchTrace {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchTrace{logger: logger}
}

func (t *SearchTrace) EnterSearch() {
	t.runID = uuid.NewString()
	t.logger.Debug("enter search", "run", t.runID)
}

func (t *SearchTrace) ExitSearch() { t.logger.Debug("exit search", "run", t.runID) }

func (t *SearchTrace) BeginNextDecision(db DecisionBuilder) {
	t.logger.Debug("begin next decision", "run", t.runID)
}

func (t *SearchTrace) EndNextDecision(db DecisionBuilder, d Decision) {
	if d == nil {
		t.logger.Debug("end next decision: none", "run", t.runID)
		return
	}
	t.logger.Debug("end next decision", "run", t.runID, "decision", d.String())
}

func (t *SearchTrace) ApplyDecision(d Decision) {
	t.logger.Debug("apply", "run", t.runID, "decision", d.String())
}

func (t *SearchTrace) RefuteDecision(d Decision) {
	t.logger.Debug("refute", "run", t.runID, "decision", d.String())
}

func (t *SearchTrace) BeginFail() { t.logger.Debug("begin fail", "run", t.runID) }
func (t *SearchTrace) EndFail()   { t.logger.Debug("end fail", "run", t.runID) }

func (t *SearchTrace) BeginInitialPropagation() {
	t.logger.Debug("begin initial propagation", "run", t.runID)
}

func (t *SearchTrace) EndInitialPropagation() {
	t.logger.Debug("end initial propagation", "run", t.runID)
}

func (t *SearchTrace) AcceptSolution() bool {
	t.logger.Debug("accept solution?", "run", t.runID)
	return true
}

func (t *SearchTrace) AtSolution() bool {
	t.logger.Debug("at solution", "run", t.runID)
	return true
}

func (t *SearchTrace) NoMoreSolutions() { t.logger.Debug("no more solutions", "run", t.runID) }
func (t *SearchTrace) RestartSearch()   { t.logger.Debug("restart search", "run", t.runID) }

func (t *SearchTrace) LocalOptimum() bool {
	t.logger.Debug("local optimum", "run", t.runID)
	return true
}

func (t *SearchTrace) AcceptNeighbor() { t.logger.Debug("accept neighbor", "run", t.runID) }
func (t *SearchTrace) AcceptUncheckedNeighbor() {
	t.logger.Debug("accept unchecked neighbor", "run", t.runID)
}

func (t *SearchTrace) AcceptDelta(delta, deltadelta Assignment) bool {
	t.logger.Debug("accept delta", "run", t.runID)
	return true
}
