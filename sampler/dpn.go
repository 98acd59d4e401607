package sampler

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/reconstruct/lattice"
)

// maxBucketRetries bounds the rejection-sampling loop that looks for a site
// with a specific different-phase-neighbor count.
const maxBucketRetries = 100000

// DPN (different-phase-neighbors) samples lattice sites weighted by a
// biased histogram of each site's count of 8-/26-connected neighbors of the
// opposite phase. It is stateful: it maintains the histogram incrementally
// across grid mutations via UpdatePre/UpdatePost, so it must be notified of
// every write made through it.
type DPN struct {
	alpha float64
	hist  []int
	shape []int
}

var _ Stateful = (*DPN)(nil)

// NewDPN constructs a DPN sampler over g with bias parameter alpha (alpha^n
// weights bucket n; alpha=1 reduces to uniform-over-buckets weighting by
// population, alpha>1 biases toward high-DPN boundary sites).
func NewDPN(g lattice.Reader, alpha float64) *DPN {
	return &DPN{
		alpha: alpha,
		hist:  DPNHistogram(g),
		shape: append([]int(nil), g.Shape()...),
	}
}

// DPNHistogram recomputes, from scratch, the count of sites having each
// possible number of different-phase neighbors. Both DPN's incremental
// maintenance and tests that check it against a freshly-recomputed
// histogram after a sequence of flips/swaps call this same ground-truth
// computation.
func DPNHistogram(g lattice.Reader) []int {
	hist := make([]int, intPow3(len(g.Shape())))
	for flat := 0; flat < g.Len(); flat++ {
		idx := lattice.CoordsOf(g.Shape(), flat)
		hist[diffCount(g, idx)]++
	}
	return hist
}

func diffCount(g lattice.Reader, idx []int) int {
	phase := g.At(idx)
	n := 0
	for _, nb := range lattice.NeighborsOf(g.Shape(), g.Periodic(), idx) {
		if g.At(nb) != phase {
			n++
		}
	}
	return n
}

func intPow3(dim int) int {
	p := 1
	for i := 0; i < dim; i++ {
		p *= 3
	}
	return p
}

// Sample draws a bucket n with probability proportional to alpha^n*H[n],
// then rejection-samples a uniformly random site whose DPN count equals n.
func (d *DPN) Sample(g lattice.Reader, rng *rand.Rand) ([]int, error) {
	weights := make([]float64, len(d.hist))
	var total float64
	for n, count := range d.hist {
		if count == 0 {
			continue
		}
		w := pow(d.alpha, n) * float64(count)
		weights[n] = w
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("sampler: DPN histogram has no weight to sample from")
	}

	draw := rng.Float64() * total
	bucket := -1
	var cum float64
	for n, w := range weights {
		if w == 0 {
			continue
		}
		cum += w
		if draw <= cum {
			bucket = n
			break
		}
	}
	if bucket == -1 {
		bucket = len(weights) - 1
	}

	if d.hist[bucket] <= 0 {
		return nil, fmt.Errorf("%w: H[%d] <= 0 before sampling", ErrHistogramInvariant, bucket)
	}

	for attempt := 0; attempt < maxBucketRetries; attempt++ {
		idx := lattice.CoordsOf(g.Shape(), rng.Intn(g.Len()))
		if diffCount(g, idx) == bucket {
			return idx, nil
		}
	}
	return nil, fmt.Errorf("%w: rejection sampling found no site in bucket %d after %d attempts", ErrHistogramInvariant, bucket, maxBucketRetries)
}

func pow(base float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= base
	}
	return result
}

// UpdatePre decrements the histogram entries for idx and its neighbors,
// computed against the grid's state immediately before the mutation.
func (d *DPN) UpdatePre(g lattice.Reader, idx []int) {
	for _, s := range d.affected(g, idx) {
		d.hist[diffCount(g, s)]--
	}
}

// UpdatePost recomputes and increments the histogram entries for idx and
// its neighbors, computed against the grid's state immediately after the
// mutation.
func (d *DPN) UpdatePost(g lattice.Reader, idx []int) {
	for _, s := range d.affected(g, idx) {
		d.hist[diffCount(g, s)]++
	}
}

// affected is idx together with its neighbors: the only sites whose
// different-phase-neighbor count can change when idx's phase changes.
func (d *DPN) affected(g lattice.Reader, idx []int) [][]int {
	sites := make([][]int, 0, 27)
	sites = append(sites, idx)
	sites = append(sites, lattice.NeighborsOf(g.Shape(), g.Periodic(), idx)...)
	return sites
}

// Histogram returns a copy of the sampler's current maintained histogram,
// primarily for test assertions against DPNHistogram.
func (d *DPN) Histogram() []int {
	return append([]int(nil), d.hist...)
}
