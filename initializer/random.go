// Package initializer produces starting grids for an annealing run, each
// preserving (approximately, for spheres) the target's bulk phase fraction
// and wrapped into a tracker that inherits the target's tracked descriptor
// and direction configuration.
package initializer

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/reconstruct/lattice"
	"github.com/pthm-cable/reconstruct/tracker"
)

// InitializeRandom computes phi = count(1)/len over target, then builds a
// grid of the given shape (target's shape if shape is nil) with exactly
// floor(phi*N) sites set to 1 at uniformly random positions, where N is the
// number of sites in that shape.
// Duplicate draws are silently retried.
func InitializeRandom(target tracker.Tracker, shape []int, rng *rand.Rand) (tracker.Tracker, error) {
	if shape == nil {
		shape = target.Shape()
	}
	g, err := lattice.NewGrid(shape, target.Periodic())
	if err != nil {
		return nil, err
	}

	phi := phaseFraction(target)
	want := int(math.Floor(phi * float64(g.Len())))

	set := 0
	for set < want {
		flat := rng.Intn(g.Len())
		if g.AtFlat(flat) == 0 {
			g.SetFlat(flat, 1)
			set++
		}
	}

	descriptors, directions := descriptorConfig(target)
	return target.ConstructLike(g, descriptors, directions)
}

func phaseFraction(target tracker.Tracker) float64 {
	n := 0
	for i := 0; i < target.Len(); i++ {
		if target.At(lattice.CoordsOf(target.Shape(), i)) == 1 {
			n++
		}
	}
	return float64(n) / float64(target.Len())
}

func descriptorConfig(target tracker.Tracker) ([]tracker.Descriptor, map[tracker.Descriptor][]tracker.Direction) {
	descs := target.Descriptors()
	dirs := make(map[tracker.Descriptor][]tracker.Direction, len(descs))
	for _, d := range descs {
		dirs[d] = target.Directions(d)
	}
	return descs, dirs
}
