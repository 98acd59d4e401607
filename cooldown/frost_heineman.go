package cooldown

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// FrostHeineman cools by tracking a target cost mu_target, initially +Inf.
// Every call appends to a growable buffer (minimum capacity n). Once the
// buffer reaches length n, if the current mean mu is below mu_target: the
// schedule computes sigma, records mu_prev (the previous mu_target, or mu
// itself the first time, since mu_target starts at +Inf), sets
// mu_target = mu - lambda*sigma, clears the buffer, and returns
// T + (mu_target-mu_prev)*(T/sigma)^2. Otherwise T is returned unchanged
// and the buffer keeps growing.
type FrostHeineman struct {
	n        int
	lambda   float64
	buf      []float64
	muTarget float64
}

// NewFrostHeineman constructs a Frost-Heineman schedule with minimum buffer
// size n and decay parameter lambda.
func NewFrostHeineman(n int, lambda float64) *FrostHeineman {
	return &FrostHeineman{n: n, lambda: lambda, muTarget: math.Inf(1)}
}

// Next implements Schedule.
func (f *FrostHeineman) Next(T, lastCost float64) float64 {
	f.buf = append(f.buf, lastCost)
	if len(f.buf) < f.n {
		return T
	}

	mu := stat.Mean(f.buf, nil)
	if mu >= f.muTarget {
		return T
	}

	sigma := stat.StdDev(f.buf, nil)
	muPrev := f.muTarget
	if math.IsInf(f.muTarget, 1) {
		muPrev = mu
	}
	f.muTarget = mu - f.lambda*sigma
	f.buf = f.buf[:0]

	ratio := T / sigma
	return T + (f.muTarget-muPrev)*ratio*ratio
}
