package cooldown

import "gonum.org/v1/gonum/stat"

// AartsKorst cools using the standard deviation of the n most recent costs:
// every call appends to a circular buffer of size n; every n-th call (once
// the buffer has cycled), it computes the buffer's standard deviation sigma
// and returns T*sigma/(sigma+lambda*T). Calls in between leave T unchanged.
type AartsKorst struct {
	n      int
	lambda float64
	buf    []float64
	count  int
}

// NewAartsKorst constructs an Aarts-Korst schedule with buffer size n and
// decay parameter lambda.
func NewAartsKorst(n int, lambda float64) *AartsKorst {
	return &AartsKorst{n: n, lambda: lambda, buf: make([]float64, 0, n)}
}

// Next implements Schedule.
func (a *AartsKorst) Next(T, lastCost float64) float64 {
	if len(a.buf) < a.n {
		a.buf = append(a.buf, lastCost)
	} else {
		a.buf[a.count%a.n] = lastCost
	}
	a.count++

	if a.count%a.n != 0 {
		return T
	}
	sigma := stat.StdDev(a.buf, nil)
	return T * sigma / (sigma + a.lambda*T)
}
