package sampler

import "errors"

// ErrNoInterface is returned by Interface.Sample when no phase boundary
// could be found within the bounded retry budget -- typically because the
// grid is homogeneous (a single phase everywhere), for which no interface
// exists and the naive sampling loop would never terminate.
var ErrNoInterface = errors.New("sampler: no interface found within retry budget")

// ErrHistogramInvariant indicates DPN's maintained histogram has fallen out
// of sync with the grid it describes -- either a bucket chosen to sample
// from is empty, or rejection sampling could not find a site in a bucket
// the histogram reports as populated. Both indicate a bug in the
// incremental UpdatePre/UpdatePost maintenance, not a condition to retry.
var ErrHistogramInvariant = errors.New("sampler: DPN histogram out of sync with grid")
