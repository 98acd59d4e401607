package cost

import "errors"

// ErrDescriptorMismatch is returned (or, for the annealing driver's own
// trackers, treated as fatal) when two trackers passed to a cost function
// do not carry the identical set of tracked descriptors and directions.
var ErrDescriptorMismatch = errors.New("cost: trackers carry different tracked descriptors or directions")

// ErrZeroBaseline is returned by a weighted cost factory when some
// descriptor's baseline distance is zero at construction time -- the
// normalization would divide by zero.
var ErrZeroBaseline = errors.New("cost: weighted cost baseline distance is zero for some descriptor")
