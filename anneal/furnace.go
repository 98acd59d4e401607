// Package anneal provides the annealing driver: a single Metropolis step
// that proposes a mutation via a Modifier, accepts or rolls it back
// according to a Cost function, and cools a Furnace's temperature via a
// Schedule only when the step was not rejected.
package anneal

import (
	"github.com/pthm-cable/reconstruct/tracker"
)

// CostTolerance bounds the error tolerated between a rejected step's
// post-rollback recomputed cost and its pre-proposal cost: relative to the
// pre-proposal cost when its magnitude is at least 1, absolute below that.
const CostTolerance = 1e-9

// Furnace is the immutable record of one annealing session's state: the
// system being evolved, the target it is matched against, the current
// temperature, and the step counters. Step never mutates a Furnace in
// place; it returns a new one.
type Furnace struct {
	System      tracker.Tracker
	Target      tracker.Tracker
	Temperature float64
	Steps       uint64
	Accepted    uint64
	Rejected    uint64
}

// New constructs a Furnace at temperature T0 with zeroed counters.
func New(system, target tracker.Tracker, t0 float64) *Furnace {
	return &Furnace{System: system, Target: target, Temperature: t0}
}

// next returns a new Furnace advancing f by one step: System and Target are
// shared (the driver mutates trackers in place through rollback tokens, not
// by copying them), Steps always increments, and Accepted/Rejected tick
// according to how the step classified.
func (f *Furnace) next(temperature float64, accepted, rejected bool) *Furnace {
	out := &Furnace{
		System:      f.System,
		Target:      f.Target,
		Temperature: temperature,
		Steps:       f.Steps + 1,
		Accepted:    f.Accepted,
		Rejected:    f.Rejected,
	}
	if accepted {
		out.Accepted++
	}
	if rejected {
		out.Rejected++
	}
	return out
}
