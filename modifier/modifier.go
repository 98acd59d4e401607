// Package modifier provides the strategy layer for proposing and
// undoing local grid mutations: flipping one site, or swapping two sites
// of opposing phase.
package modifier

import (
	"math/rand"

	"github.com/pthm-cable/reconstruct/sampler"
	"github.com/pthm-cable/reconstruct/tracker"
)

// Modifier proposes a mutation to sys using its sampler and returns a Token
// sufficient to undo it.
type Modifier interface {
	Modify(sys tracker.Tracker, rng *rand.Rand) (Token, error)
	Reject(sys tracker.Tracker, tok Token)
}

// write pairs a sampled site with the tracker rollback token its update
// produced.
type write struct {
	idx []int
	tok tracker.RollbackToken
}

// Token is the rollback handle returned by Modify: one write for a flip, a
// pair of writes (in forward order) for a swap.
type Token struct {
	sampler sampler.Sampler
	writes  []write
}

// reject reverses every write in reverse order, so a swap's intermediate
// tracker states mirror the forward path exactly, and rewinds the
// modifier's sampler state (if stateful) around each one in the same
// bracket it used going forward.
func (t Token) reject(sys tracker.Tracker) {
	for i := len(t.writes) - 1; i >= 0; i-- {
		bracketedRollback(sys, t.sampler, t.writes[i])
	}
}

func bracketedUpdate(sys tracker.Tracker, s sampler.Sampler, idx []int, value uint8) write {
	if st, ok := s.(sampler.Stateful); ok {
		st.UpdatePre(sys, idx)
	}
	tok := sys.Update(value, idx)
	if st, ok := s.(sampler.Stateful); ok {
		st.UpdatePost(sys, idx)
	}
	return write{idx: idx, tok: tok}
}

func bracketedRollback(sys tracker.Tracker, s sampler.Sampler, w write) {
	if st, ok := s.(sampler.Stateful); ok {
		st.UpdatePre(sys, w.idx)
	}
	sys.Rollback(w.tok)
	if st, ok := s.(sampler.Stateful); ok {
		st.UpdatePost(sys, w.idx)
	}
}
