package modifier

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/reconstruct/lattice"
	"github.com/pthm-cable/reconstruct/sampler"
	"github.com/pthm-cable/reconstruct/tracker"
)

func newTestSystem(t *testing.T, seed int64) *tracker.Simple {
	t.Helper()
	g, err := lattice.NewGrid([]int{8, 8}, true)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < g.Len()/2; i++ {
		g.SetFlat(rng.Intn(g.Len()), 1)
	}
	descs := []tracker.Descriptor{{Kind: tracker.KindS2, Phase: 0, Length: 2}}
	dirs := map[tracker.Descriptor][]tracker.Direction{descs[0]: {tracker.DirX, tracker.DirY}}
	tr, err := tracker.NewSimple(g, descs, dirs)
	if err != nil {
		t.Fatalf("NewSimple: %v", err)
	}
	return tr
}

func gridSnapshot(tr *tracker.Simple) []uint8 {
	out := make([]uint8, tr.Len())
	for i := range out {
		out[i] = tr.At(lattice.CoordsOf(tr.Shape(), i))
	}
	return out
}

func TestFlipperModifyRejectIsExactInverse(t *testing.T) {
	tr := newTestSystem(t, 10)
	rng := rand.New(rand.NewSource(11))
	f := NewFlipper(sampler.NewUniform())

	before := gridSnapshot(tr)
	tok, err := f.Modify(tr, rng)
	if err != nil {
		t.Fatalf("Modify: %v", err)
	}
	f.Reject(tr, tok)
	after := gridSnapshot(tr)

	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("grid changed after modify+reject at index %d", i)
		}
	}
}

func TestSwapperPreservesPhaseFraction(t *testing.T) {
	tr := newTestSystem(t, 20)
	rng := rand.New(rand.NewSource(21))
	s := NewSwapper(sampler.NewUniform())

	before := countOnes(tr)
	tok, err := s.Modify(tr, rng)
	if err != nil {
		t.Fatalf("Modify: %v", err)
	}
	if got := countOnes(tr); got != before {
		t.Errorf("swap changed phase fraction: before=%d after=%d", before, got)
	}
	s.Reject(tr, tok)
	if got := countOnes(tr); got != before {
		t.Errorf("reject left phase fraction changed: before=%d after=%d", before, got)
	}
}

func TestFlipperChangesPhaseFractionByOne(t *testing.T) {
	tr := newTestSystem(t, 30)
	rng := rand.New(rand.NewSource(31))
	f := NewFlipper(sampler.NewUniform())

	before := countOnes(tr)
	_, err := f.Modify(tr, rng)
	if err != nil {
		t.Fatalf("Modify: %v", err)
	}
	after := countOnes(tr)
	diff := after - before
	if diff != 1 && diff != -1 {
		t.Errorf("flip changed phase fraction by %d, want +-1", diff)
	}
}

func countOnes(tr *tracker.Simple) int {
	n := 0
	for i := 0; i < tr.Len(); i++ {
		if tr.At(lattice.CoordsOf(tr.Shape(), i)) == 1 {
			n++
		}
	}
	return n
}

func TestSwapperRejectReverseOrder(t *testing.T) {
	tr := newTestSystem(t, 40)
	rng := rand.New(rand.NewSource(41))
	s := NewSwapper(sampler.NewUniform())

	before := gridSnapshot(tr)
	tok, err := s.Modify(tr, rng)
	if err != nil {
		t.Fatalf("Modify: %v", err)
	}
	s.Reject(tr, tok)
	after := gridSnapshot(tr)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("grid differs after swap+reject at index %d", i)
		}
	}
}
