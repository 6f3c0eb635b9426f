package search

// This file consolidates the public construction surface named in
// SPEC_FULL.md §6 that doesn't already have a natural home next to its
// type definition: the MakePhase family, which ties the IntVarStrategy /
// IntValueStrategy / EvaluatorStrategy enums to concrete selectors and
// wraps them in a DecisionBuilder. The Make* factories for collectors,
// the objective, metaheuristics, limits, restarts, and the symmetry
// manager are defined alongside their types (collector.go, objective.go,
// tabu_search.go, simulated_annealing.go, gls.go, limit.go, restart.go,
// symmetry.go) and are not re-declared here.

// MakePhase builds the standard assigning DecisionBuilder for vars,
// selecting a variable per varStrategy and a value per valStrategy. It
// is an error to pass ChoosePath, ChooseCheapest, AssignRandomValue, or
// AssignCheapestValue here since those strategies need extra arguments
// (a successor callback, a cost callback, or a Solver); use
// MakePhaseRandomValue, MakePhaseWithPath, or MakePhaseWithCost instead.
func MakePhase(vars []IntVar, varStrategy IntVarStrategy, valStrategy IntValueStrategy) (DecisionBuilder, error) {
	varSel, err := makeVarSelector(vars, varStrategy, nil)
	if err != nil {
		return nil, err
	}
	valSel, err := makeValueSelector(valStrategy, nil, nil)
	if err != nil {
		return nil, err
	}
	return NewAssigningBuilder(varSel, valSel), nil
}

// MakePhaseRandomValue builds a MakePhase variant for AssignRandomValue,
// which needs a Solver for its random draws.
func MakePhaseRandomValue(s Solver, vars []IntVar, varStrategy IntVarStrategy) (DecisionBuilder, error) {
	varSel, err := makeVarSelector(vars, varStrategy, nil)
	if err != nil {
		return nil, err
	}
	return NewAssigningBuilder(varSel, NewRandomValueSelector(s)), nil
}

// MakePhaseWithPath builds a MakePhase variant for ChoosePath, which
// needs a successor callback.
func MakePhaseWithPath(vars []IntVar, next func(i int) (int, bool), valStrategy IntValueStrategy) (DecisionBuilder, error) {
	valSel, err := makeValueSelector(valStrategy, nil, nil)
	if err != nil {
		return nil, err
	}
	return NewAssigningBuilder(NewPathSelector(vars, next), valSel), nil
}

// MakePhaseWithCost builds a MakePhase variant where both variable and
// value selection are driven by user cost callbacks (ChooseCheapest /
// AssignCheapestValue).
func MakePhaseWithCost(vars []IntVar, varCost func(i int) int64, valCost func(id int, value int64) int64, tieBreak func(id int, ties []int64) int64) DecisionBuilder {
	return NewAssigningBuilder(NewCheapestVarSelector(vars, varCost), NewCheapestValueSelector(valCost, tieBreak))
}

// MakePhaseFromEvaluator builds a DecisionBuilder driven directly by a
// joint (variable, value) GlobalEvaluatorSelector rather than a separate
// VariableSelector/ValueSelector pair.
func MakePhaseFromEvaluator(sel GlobalEvaluatorSelector) DecisionBuilder {
	return NewGlobalEvaluatorBuilder(sel)
}

func makeVarSelector(vars []IntVar, strategy IntVarStrategy, next func(i int) (int, bool)) (VariableSelector, error) {
	switch strategy {
	case ChooseFirstUnbound:
		return NewFirstUnboundSelector(vars), nil
	case ChooseRandom:
		return NewRandomSelector(vars), nil
	case ChooseMinSizeLowestMin, ChooseMinSizeHighestMin, ChooseMinSizeLowestMax, ChooseMinSizeHighestMax:
		return NewMinSizeSelector(vars, strategy)
	default:
		return nil, ErrUnknownStrategy
	}
}

func makeValueSelector(strategy IntValueStrategy, cost func(id int, value int64) int64, tieBreak func(id int, ties []int64) int64) (ValueSelector, error) {
	switch strategy {
	case AssignMinValue:
		return NewMinValueSelector(), nil
	case AssignMaxValue:
		return NewMaxValueSelector(), nil
	case AssignCenterValue:
		return NewCenterValueSelector(), nil
	case AssignCheapestValue:
		if cost == nil {
			return nil, ErrNilArgument
		}
		return NewCheapestValueSelector(cost, tieBreak), nil
	default:
		return nil, ErrUnknownStrategy
	}
}
