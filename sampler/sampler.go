// Package sampler provides the strategy layer for choosing a single
// lattice site: uniformly, on a phase interface, or weighted by the number
// of different-phase neighbors (DPN).
package sampler

import (
	"math/rand"

	"github.com/pthm-cable/reconstruct/lattice"
)

// Sampler chooses one lattice site per call. Sample must return an
// in-bounds index.
type Sampler interface {
	Sample(g lattice.Reader, rng *rand.Rand) ([]int, error)
}

// Stateful is implemented by samplers that must be notified of every grid
// mutation so their internal bookkeeping (e.g. DPN's histogram) stays in
// sync. A Modifier brackets every tracker write with UpdatePre/UpdatePost,
// on both the forward modify and the reject path, so stateful sampler state
// rewinds exactly on rollback.
type Stateful interface {
	Sampler
	UpdatePre(g lattice.Reader, idx []int)
	UpdatePost(g lattice.Reader, idx []int)
}

// Uniform returns a uniformly random lattice index. It carries no state.
type Uniform struct{}

// NewUniform constructs a Uniform sampler.
func NewUniform() *Uniform { return &Uniform{} }

// Sample implements Sampler.
func (*Uniform) Sample(g lattice.Reader, rng *rand.Rand) ([]int, error) {
	flat := rng.Intn(g.Len())
	return lattice.CoordsOf(g.Shape(), flat), nil
}
