package search

// Luby returns luby(i) for i >= 1: the i'th term of the sequence
// 1,1,2,1,1,2,4,1,1,2,1,1,2,4,8,... For i+1 a power of two 2^p, the term
// is 2^(p-1); otherwise it recurses on i - 2^(p-1) + 1.
func Luby(i int64) int64 {
	for p := int64(1); ; p++ {
		if i+1 == int64(1)<<uint(p) {
			return int64(1) << uint(p-1)
		}
		if i+1 < int64(1)<<uint(p) {
			return Luby(i - (int64(1)<<uint(p-1) - 1))
		}
	}
}

// restartMonitorBase tracks the shared BeginFail-counting machinery used
// by both restart strategies: count failures since the last restart (or
// search start), and trigger RestartSearch when the count reaches the
// current step.
type restartMonitorBase struct {
	BaseMonitor

	solver      Solver
	failures    int64
	nextStepFn  func() int64 // returns the step for the *current* restart number
	restartNum  int64
}

func (r *restartMonitorBase) EnterSearch() {
	r.failures = 0
	r.restartNum = 0
}

func (r *restartMonitorBase) BeginFail() {
	r.failures++
	if r.failures >= r.nextStepFn() {
		r.failures = 0
		r.restartNum++
		r.solver.RestartSearch()
	}
}

// LubyRestart restarts with step luby(k) * scaleFactor, k advancing by
// one restart at a time, so restart intervals grow in the Luby pattern
// (bounded doubling with frequent short resets) rather than geometrically
// without bound.
type LubyRestart struct {
	restartMonitorBase
	scaleFactor int64
}

// MakeLubyRestart returns a LubyRestart monitor with the given scale
// factor.
func MakeLubyRestart(s Solver, scaleFactor int64) *LubyRestart {
	lr := &LubyRestart{scaleFactor: scaleFactor}
	lr.solver = s
	lr.nextStepFn = func() int64 { return Luby(lr.restartNum+1) * lr.scaleFactor }
	return lr
}

// ConstantRestart restarts every fixed number of failures.
type ConstantRestart struct {
	restartMonitorBase
	frequency int64
}

// MakeConstantRestart returns a ConstantRestart monitor restarting every
// frequency failures.
func MakeConstantRestart(s Solver, frequency int64) *ConstantRestart {
	cr := &ConstantRestart{frequency: frequency}
	cr.solver = s
	cr.nextStepFn = func() int64 { return cr.frequency }
	return cr
}
