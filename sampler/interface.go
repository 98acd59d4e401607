package sampler

import (
	"math/rand"

	"github.com/pthm-cable/reconstruct/lattice"
)

// defaultMaxRetries bounds the number of fresh seeds Interface tries (the
// steps of a single ray are bounded separately by rayStepBudget). Without a
// bound, a homogeneous-phase grid (no interface exists anywhere) makes the
// naive "walk until the phase changes" loop non-terminating.
const defaultMaxRetries = 1024

// Interface draws a random seed, walks a Line-ray from it, and returns the
// first site along the ray whose phase differs from the seed's. This
// samples sites on a phase boundary with probability proportional to
// boundary exposure. It carries no persistent state between calls.
type Interface struct {
	// MaxRetries bounds the number of seeds tried before giving up with
	// ErrNoInterface. Zero means defaultMaxRetries.
	MaxRetries int
}

// NewInterface constructs an Interface sampler with the default retry
// budget.
func NewInterface() *Interface { return &Interface{MaxRetries: defaultMaxRetries} }

// Sample implements Sampler.
func (s *Interface) Sample(g lattice.Reader, rng *rand.Rand) ([]int, error) {
	retries := s.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}
	maxRaySteps := rayStepBudget(g.Shape())

	for attempt := 0; attempt < retries; attempt++ {
		seed := lattice.CoordsOf(g.Shape(), rng.Intn(g.Len()))
		seedPhase := g.At(seed)

		ray, err := lattice.NewRay(rng, seed)
		if err != nil {
			return nil, err
		}
		ray.Next() // first emitted site is the seed itself; skip it

		for step := 0; step < maxRaySteps; step++ {
			site := ray.Next()
			if !inBounds(g.Shape(), site) {
				break // ray left the grid before a change was found; retry
			}
			if g.At(site) != seedPhase {
				return site, nil
			}
		}
	}
	return nil, ErrNoInterface
}

// rayStepBudget bounds a single ray walk. Ray sites are not wrapped, even on
// a periodic grid: a walk ends at the budget or at the first site outside
// the grid, whichever comes first.
func rayStepBudget(shape []int) int {
	maxDim := 0
	for _, s := range shape {
		if s > maxDim {
			maxDim = s
		}
	}
	return 4 * maxDim
}

func inBounds(shape, idx []int) bool {
	if len(idx) != len(shape) {
		return false
	}
	for d, v := range idx {
		if v < 0 || v >= shape[d] {
			return false
		}
	}
	return true
}
