package lattice

import (
	"fmt"
	"math"
	"math/rand"
)

// Ray is the lazy infinite sequence of lattice sites obtained by stepping
// outward from a seed site along a uniformly random direction on the
// (N-1)-sphere. The first emitted site is the seed itself; every call to
// Next afterward advances the real step parameter by sqrt(N) and floors the
// continuous position into lattice coordinates. Emitted sites may leave the
// grid bounds -- callers must bounds-check with Grid.InBounds.
type Ray struct {
	seed []float64
	dir  []float64
	r    float64
	step float64
	n    int
	done bool // Next has already been called (the seed was emitted)
}

// NewRay builds a ray seeded at idx with a direction drawn uniformly from
// the (N-1)-sphere, where N = len(idx) in {2,3}.
func NewRay(rng *rand.Rand, idx []int) (*Ray, error) {
	n := len(idx)
	if n != 2 && n != 3 {
		return nil, fmt.Errorf("lattice: ray requires a 2D or 3D seed, got dimension %d", n)
	}
	seed := make([]float64, n)
	for i, v := range idx {
		seed[i] = float64(v)
	}
	dir := randomUnitVector(rng, n)
	return &Ray{
		seed: seed,
		dir:  dir,
		r:    0,
		step: math.Sqrt(float64(n)),
		n:    n,
	}, nil
}

// randomUnitVector draws a direction uniform over the (N-1)-sphere. For N=2
// this is a uniformly random polar angle; for N=3, azimuth and elevation are
// drawn so the resulting point is uniform over the sphere's surface (not a
// naive independent-angle draw, which clusters at the poles). Both draws are
// plain rng.Float64() scaling rather than gonum's distuv.Uniform: distuv's
// Src field wants an x/exp/rand.Source, a different Seed signature than
// *math/rand.Rand, and every Sampler/Modifier/Step in this module threads a
// single *math/rand.Rand end to end.
func randomUnitVector(rng *rand.Rand, n int) []float64 {
	switch n {
	case 2:
		theta := rng.Float64() * 2 * math.Pi
		return []float64{math.Cos(theta), math.Sin(theta)}
	case 3:
		u := rng.Float64()*2 - 1
		phi := rng.Float64() * 2 * math.Pi
		sinTheta := math.Sqrt(1 - u*u)
		return []float64{sinTheta * math.Cos(phi), sinTheta * math.Sin(phi), u}
	default:
		panic("lattice: randomUnitVector only supports N in {2,3}")
	}
}

// Next returns the next lattice site along the ray. The first call returns
// the seed site unchanged.
func (ray *Ray) Next() []int {
	if !ray.done {
		ray.done = true
		return floorVec(ray.seed)
	}
	ray.r += ray.step
	pos := make([]float64, ray.n)
	for d := range pos {
		pos[d] = ray.seed[d] + ray.dir[d]*ray.r
	}
	return floorVec(pos)
}

func floorVec(v []float64) []int {
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(math.Floor(x))
	}
	return out
}
