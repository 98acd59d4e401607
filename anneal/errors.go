package anneal

import "errors"

// ErrCostRegression is returned by Step when a rejected proposal's rollback
// failed to restore the system's prior cost within tolerance -- a fatal
// programmer error in some modifier, sampler, or tracker, never a condition
// a caller should retry past.
var ErrCostRegression = errors.New("anneal: cost after rollback does not match cost before proposal")
