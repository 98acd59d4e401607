package modifier

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/reconstruct/sampler"
	"github.com/pthm-cable/reconstruct/tracker"
)

// defaultSwapRetries bounds the search for a second site of opposing phase.
const defaultSwapRetries = 10000

// Swapper proposes a mutation by drawing one site, then repeatedly drawing
// a second site until it finds one of the opposing phase, and exchanges
// their values. Swaps preserve the grid's phase fraction exactly.
type Swapper struct {
	Sampler sampler.Sampler
	// MaxRetries bounds the search for a differing-phase partner. Zero
	// means defaultSwapRetries.
	MaxRetries int
}

// NewSwapper constructs a Swapper over the given sampler.
func NewSwapper(s sampler.Sampler) *Swapper {
	return &Swapper{Sampler: s, MaxRetries: defaultSwapRetries}
}

// Modify implements Modifier.
func (s *Swapper) Modify(sys tracker.Tracker, rng *rand.Rand) (Token, error) {
	i1, err := s.Sampler.Sample(sys, rng)
	if err != nil {
		return Token{}, err
	}
	v1 := sys.At(i1)

	retries := s.MaxRetries
	if retries <= 0 {
		retries = defaultSwapRetries
	}

	var i2 []int
	var v2 uint8
	found := false
	for attempt := 0; attempt < retries; attempt++ {
		cand, err := s.Sampler.Sample(sys, rng)
		if err != nil {
			return Token{}, err
		}
		cv := sys.At(cand)
		if cv != v1 {
			i2, v2, found = cand, cv, true
			break
		}
	}
	if !found {
		return Token{}, fmt.Errorf("modifier: swapper found no differing-phase partner for %v within %d attempts", i1, retries)
	}

	// Write i2's value into i1, then i1's original value into i2, through
	// the tracker in that order, so reject (reverse order) mirrors the
	// forward path.
	w1 := bracketedUpdate(sys, s.Sampler, i1, v2)
	w2 := bracketedUpdate(sys, s.Sampler, i2, v1)
	return Token{sampler: s.Sampler, writes: []write{w1, w2}}, nil
}

// Reject implements Modifier.
func (s *Swapper) Reject(sys tracker.Tracker, tok Token) { tok.reject(sys) }
