package search

import "fmt"

// DecisionVisitor names the set-variable-value effect of a Decision,
// letting monitors (e.g. SymmetryManager, SearchTrace) inspect a decision
// without knowing its concrete kind.
type DecisionVisitor interface {
	// VisitSetVariableValue is called for decisions whose apply branch
	// sets a single variable to a single value.
	VisitSetVariableValue(v IntVar, value int64)
	// VisitSetVariableValueOrFail is called for decisions whose refute
	// branch fails outright rather than removing the value.
	VisitSetVariableValueOrFail(v IntVar, value int64)
	// VisitSetVariablesValues is called for decisions that assign a list
	// of variables to a tuple of values in one shot.
	VisitSetVariablesValues(vars []IntVar, values []int64)
}

// Decision is an atomic, reversible commitment at a search-tree node.
// This package defines three variants (§3). Decision is an ordinary
// interface: a host may add its own implementations (internal/fdmodel's
// balancing decision is one), and neither the driver nor SymmetryManager
// switches on the concrete type.
type Decision interface {
	// Apply commits the decision's left branch.
	Apply(s Solver)
	// Refute commits the decision's right branch (taken when Apply's
	// branch later fails).
	Refute(s Solver)
	// Accept dispatches to the appropriate DecisionVisitor method.
	Accept(v DecisionVisitor)
	// String returns a human-readable description, used by SearchLog and
	// SearchTrace.
	String() string
}

// AssignVariableValue assigns v to Value on Apply and removes Value from
// v's domain on Refute.
type AssignVariableValue struct {
	V     IntVar
	Value int64
}

var _ Decision = (*AssignVariableValue)(nil)

func (d *AssignVariableValue) Apply(s Solver) { d.V.SetValue(d.Value) }

func (d *AssignVariableValue) Refute(s Solver) { d.V.RemoveValue(d.Value) }

func (d *AssignVariableValue) Accept(v DecisionVisitor) {
	v.VisitSetVariableValue(d.V, d.Value)
}

func (d *AssignVariableValue) String() string {
	return fmt.Sprintf("[%s == %d]", d.V.Name(), d.Value)
}

// AssignVariableValueOrFail assigns v to Value on Apply and fails
// outright on Refute — used when the caller has determined there is no
// useful alternative branch (e.g. a single-value CHEAPEST selection).
type AssignVariableValueOrFail struct {
	V     IntVar
	Value int64
}

var _ Decision = (*AssignVariableValueOrFail)(nil)

func (d *AssignVariableValueOrFail) Apply(s Solver) { d.V.SetValue(d.Value) }

func (d *AssignVariableValueOrFail) Refute(s Solver) { s.Fail() }

func (d *AssignVariableValueOrFail) Accept(v DecisionVisitor) {
	v.VisitSetVariableValueOrFail(d.V, d.Value)
}

func (d *AssignVariableValueOrFail) String() string {
	return fmt.Sprintf("[%s == %d or fail]", d.V.Name(), d.Value)
}

// AssignVariablesValues assigns each Vars[i] to Values[i] on Apply. On
// Refute it posts an "at least one differs" cardinality constraint: the
// sum of per-index mismatch indicators must be at least one, so the
// refuted branch forbids exactly the tuple just tried while leaving every
// other combination open.
type AssignVariablesValues struct {
	Vars   []IntVar
	Values []int64
}

var _ Decision = (*AssignVariablesValues)(nil)

func (d *AssignVariablesValues) Apply(s Solver) {
	for i, v := range d.Vars {
		v.SetValue(d.Values[i])
	}
}

func (d *AssignVariablesValues) Refute(s Solver) {
	mismatches := make([]IntVar, 0, len(d.Vars))
	for i, v := range d.Vars {
		b := s.MakeBoolVar(fmt.Sprintf("%s_ne_%d", v.Name(), d.Values[i]))
		s.AddConstraint(s.MakeIsDifferentCstCt(v, d.Values[i], b))
		mismatches = append(mismatches, b)
	}
	s.AddConstraint(s.MakeSumGreaterOrEqual(mismatches, 1))
}

func (d *AssignVariablesValues) Accept(v DecisionVisitor) {
	v.VisitSetVariablesValues(d.Vars, d.Values)
}

func (d *AssignVariablesValues) String() string {
	return fmt.Sprintf("[assign %d vars to tuple]", len(d.Vars))
}
