package initializer

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/reconstruct/lattice"
	"github.com/pthm-cable/reconstruct/tracker"
)

// SphereFitFunc fits a Boolean model of spheres -- radius and intensity --
// whose S2 void-phase matches target's, seeded from (r0, lambda0). The fit
// procedure itself is an external collaborator; this package only consumes
// its result.
type SphereFitFunc func(target tracker.Tracker, r0, lambda0 float64) (radius, intensity float64, err error)

// NaiveSphereFit is a placeholder SphereFitFunc for callers without access
// to a real fitting routine: it returns r0 and lambda0 unchanged. Tests and
// quick scenarios use it; production fits should supply their own.
func NaiveSphereFit(target tracker.Tracker, r0, lambda0 float64) (float64, float64, error) {
	return r0, lambda0, nil
}

// InitializeSpheres fits (radius, intensity) via fit, draws
// Poisson(intensity*N) sphere centers uniformly over a grid of the given
// shape (target's shape if shape is nil; N is its number of sites), and
// renders filled spheres
// of that radius. The resulting phase fraction need not exactly match
// target's.
func InitializeSpheres(target tracker.Tracker, shape []int, r0, lambda0 float64, fit SphereFitFunc, rng *rand.Rand) (tracker.Tracker, error) {
	if shape == nil {
		shape = target.Shape()
	}
	radius, intensity, err := fit(target, r0, lambda0)
	if err != nil {
		return nil, err
	}

	g, err := lattice.NewGrid(shape, target.Periodic())
	if err != nil {
		return nil, err
	}

	numCenters := poissonDraw(rng, intensity*float64(g.Len()))

	for c := 0; c < numCenters; c++ {
		center := make([]int, len(shape))
		for d := range shape {
			center[d] = rng.Intn(shape[d])
		}
		fillSphere(g, center, radius)
	}

	descriptors, directions := descriptorConfig(target)
	return target.ConstructLike(g, descriptors, directions)
}

// poissonDraw draws one sample from Poisson(lambda) via Knuth's algorithm:
// multiply uniform draws until their product crosses exp(-lambda). Plain
// rng.Float64() rather than gonum's distuv.Poisson, for the same reason
// randomUnitVector avoids distuv.Uniform -- distuv.Src wants an
// x/exp/rand.Source, not the *math/rand.Rand threaded throughout this
// module.
func poissonDraw(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		k++
		p *= rng.Float64()
		if p <= l {
			return k - 1
		}
	}
}

// fillSphere sets every site within radius of center to phase 1, skipping
// out-of-bounds offsets on clamped (non-periodic) grids.
func fillSphere(g *lattice.Grid, center []int, radius float64) {
	r := int(math.Ceil(radius))
	r2 := radius * radius

	switch g.Dim() {
	case 2:
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				if float64(dx*dx+dy*dy) > r2 {
					continue
				}
				idx := []int{center[0] + dx, center[1] + dy}
				if !g.Periodic() && !g.InBounds(idx) {
					continue
				}
				g.Set(idx, 1)
			}
		}
	case 3:
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				for dz := -r; dz <= r; dz++ {
					if float64(dx*dx+dy*dy+dz*dz) > r2 {
						continue
					}
					idx := []int{center[0] + dx, center[1] + dy, center[2] + dz}
					if !g.Periodic() && !g.InBounds(idx) {
						continue
					}
					g.Set(idx, 1)
				}
			}
		}
	}
}
