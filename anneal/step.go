package anneal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pthm-cable/reconstruct/cost"
	"github.com/pthm-cable/reconstruct/cooldown"
	"github.com/pthm-cable/reconstruct/modifier"
)

// Step performs one Metropolis step against f and returns the resulting
// Furnace. costFn reads both trackers, mod mutates f.System in place via its
// sampler and tracker, and sched is consulted for the next temperature only
// when the step is not rejected.
//
// Step never mutates f; the returned Furnace shares f's System and Target
// (the driver mutates those trackers through rollback tokens, not by
// copying them) but carries its own counters and temperature.
func Step(f *Furnace, costFn cost.Cost, mod modifier.Modifier, sched cooldown.Schedule, rng *rand.Rand) (*Furnace, error) {
	c1, err := costFn(f.System, f.Target)
	if err != nil {
		return nil, fmt.Errorf("anneal: pre-proposal cost: %w", err)
	}

	tok, err := mod.Modify(f.System, rng)
	if err != nil {
		return nil, fmt.Errorf("anneal: modify: %w", err)
	}

	c2, err := costFn(f.System, f.Target)
	if err != nil {
		return nil, fmt.Errorf("anneal: post-proposal cost: %w", err)
	}

	if c2 <= c1 {
		return f.next(sched.Next(f.Temperature, c2), false, false), nil
	}

	p := math.Exp(-(c2 - c1) / f.Temperature)
	u := rng.Float64()
	if u <= p {
		return f.next(sched.Next(f.Temperature, c2), true, false), nil
	}

	mod.Reject(f.System, tok)
	c3, err := costFn(f.System, f.Target)
	if err != nil {
		return nil, fmt.Errorf("anneal: post-rollback cost: %w", err)
	}
	if math.Abs(c3-c1) > CostTolerance*math.Max(1, math.Abs(c1)) {
		return nil, fmt.Errorf("%w: pre-proposal %v, post-rollback %v", ErrCostRegression, c1, c3)
	}

	return f.next(f.Temperature, false, true), nil
}
