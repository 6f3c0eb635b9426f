package search

import "errors"

// Sentinel errors for host/caller misuse. Constraint infeasibility is
// never reported through these: it unwinds via Solver.Fail and the host's
// trail, not through returned errors (see SPEC_FULL.md §7).
var (
	// ErrInvalidIndex is returned by collector accessors when asked for an
	// out-of-range solution index.
	ErrInvalidIndex = errors.New("search: index out of range")
	// ErrUnknownStrategy is returned when a caller passes an enum value
	// outside the set a factory recognizes.
	ErrUnknownStrategy = errors.New("search: unknown strategy")
	// ErrNilArgument is returned when a required constructor argument is nil.
	ErrNilArgument = errors.New("search: required argument is nil")
	// ErrNonPositiveStep names a step parameter (objective, tabu, GLS) that
	// is not strictly positive. The constructors in this package do not
	// check step and do not return it.
	ErrNonPositiveStep = errors.New("search: step must be strictly positive")
	// ErrNotInSearch describes a Fail call from a hook invoked outside of
	// search (EnterSearch/ExitSearch). Nothing in this package returns it
	// or panics with it.
	ErrNotInSearch = errors.New("search: Fail called outside of search")
)
