package search

// DecisionBuilder is a source of Decisions that also decides when search
// is complete. Next returns (nil, false) once no more decisions remain
// at the current tree node.
type DecisionBuilder interface {
	Next(s Solver) (Decision, bool)
}

// assigningBuilder pairs a VariableSelector with a ValueSelector, emitting
// "assign v to value" decisions until the variable selector is exhausted.
type assigningBuilder struct {
	varSel VariableSelector
	valSel ValueSelector
}

// NewAssigningBuilder returns the base DecisionBuilder: it selects a
// variable with varSel, a value with valSel, and emits an
// AssignVariableValue decision, repeating until varSel reports no
// unbound variable remains.
func NewAssigningBuilder(varSel VariableSelector, valSel ValueSelector) DecisionBuilder {
	return &assigningBuilder{varSel: varSel, valSel: valSel}
}

func (a *assigningBuilder) Next(s Solver) (Decision, bool) {
	v, id := a.varSel.Select(s)
	if id == NoVarFound {
		return nil, false
	}
	value := a.valSel.Select(v, id)
	return &AssignVariableValue{V: v, Value: value}, true
}

// globalEvaluatorBuilder drives a GlobalEvaluatorSelector directly,
// emitting the joint (variable, value) decision it selects.
type globalEvaluatorBuilder struct {
	sel GlobalEvaluatorSelector
}

// NewGlobalEvaluatorBuilder returns a DecisionBuilder driven by a
// GlobalEvaluatorSelector (dynamic or static).
func NewGlobalEvaluatorBuilder(sel GlobalEvaluatorSelector) DecisionBuilder {
	return &globalEvaluatorBuilder{sel: sel}
}

func (g *globalEvaluatorBuilder) Next(s Solver) (Decision, bool) {
	v, _, value, ok := g.sel.Select(s)
	if !ok {
		return nil, false
	}
	return &AssignVariableValue{V: v, Value: value}, true
}

// composeBuilder drives db1..dbN in order: it calls each child until one
// yields a non-exhausted decision, then always retries the same child
// first on the next call. A trailed start_index cursor guarantees each
// child is driven to completion in order, and a child exhausted at tree
// depth d remains exhausted for all descendants of d (the cursor only
// ever advances, and advancing is reversible).
type composeBuilder struct {
	children []DecisionBuilder
	cursor   int64
}

// Compose returns a DecisionBuilder that drives each of dbs to completion
// in order before moving to the next.
func Compose(dbs ...DecisionBuilder) DecisionBuilder {
	return &composeBuilder{children: dbs}
}

func (c *composeBuilder) Next(s Solver) (Decision, bool) {
	for int(c.cursor) < len(c.children) {
		i := int(c.cursor)
		if d, ok := c.children[i].Next(s); ok {
			return d, true
		}
		s.SaveAndSetValue(&c.cursor, c.cursor+1)
	}
	return nil, false
}

// assignFromAssignmentBuilder emits one "assign v to stored value"
// decision per listed variable from a prior Assignment, then delegates to
// a chained builder once every listed variable has been replayed.
type assignFromAssignmentBuilder struct {
	assignment Assignment
	indices    []int // which Assignment entries to replay, in order
	cursor     int64
	next       DecisionBuilder
}

// NewAssignFromAssignmentBuilder replays the entries of assignment named
// by indices (positions into the Assignment, not variable IDs) as
// AssignVariableValue decisions, then falls through to next.
func NewAssignFromAssignmentBuilder(assignment Assignment, indices []int, next DecisionBuilder) DecisionBuilder {
	return &assignFromAssignmentBuilder{assignment: assignment, indices: indices, next: next}
}

func (a *assignFromAssignmentBuilder) Next(s Solver) (Decision, bool) {
	for int(a.cursor) < len(a.indices) {
		idx := a.indices[a.cursor]
		s.SaveAndSetValue(&a.cursor, a.cursor+1)
		if !a.assignment.Activated(idx) {
			continue
		}
		v := a.assignment.Var(idx)
		if v.Bound() {
			continue
		}
		return &AssignVariableValue{V: v, Value: a.assignment.Value(idx)}, true
	}
	if a.next == nil {
		return nil, false
	}
	return a.next.Next(s)
}
