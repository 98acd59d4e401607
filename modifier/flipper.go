package modifier

import (
	"math/rand"

	"github.com/pthm-cable/reconstruct/sampler"
	"github.com/pthm-cable/reconstruct/tracker"
)

// Flipper proposes a mutation by drawing one site via its sampler and
// writing the opposite phase value. It may change the grid's phase
// fraction by +-1.
type Flipper struct {
	Sampler sampler.Sampler
}

// NewFlipper constructs a Flipper over the given sampler.
func NewFlipper(s sampler.Sampler) *Flipper { return &Flipper{Sampler: s} }

// Modify implements Modifier.
func (f *Flipper) Modify(sys tracker.Tracker, rng *rand.Rand) (Token, error) {
	idx, err := f.Sampler.Sample(sys, rng)
	if err != nil {
		return Token{}, err
	}
	cur := sys.At(idx)
	w := bracketedUpdate(sys, f.Sampler, idx, 1-cur)
	return Token{sampler: f.Sampler, writes: []write{w}}, nil
}

// Reject implements Modifier.
func (f *Flipper) Reject(sys tracker.Tracker, tok Token) { tok.reject(sys) }
