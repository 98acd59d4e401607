package tracker

import (
	"testing"

	"github.com/pthm-cable/reconstruct/lattice"
)

func newTestTracker(t *testing.T, periodic bool) (*Simple, *lattice.Grid) {
	t.Helper()
	g, err := lattice.NewGrid([]int{6, 6}, periodic)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	for i := 0; i < g.Len(); i++ {
		if i%3 == 0 {
			g.SetFlat(i, 1)
		}
	}
	descs := []Descriptor{{Kind: KindS2, Phase: 0, Length: 3}, {Kind: KindL2, Phase: 1, Length: 3}}
	dirs := map[Descriptor][]Direction{
		descs[0]: {DirX, DirY},
		descs[1]: {DirX, DirY},
	}
	tr, err := NewSimple(g, descs, dirs)
	if err != nil {
		t.Fatalf("NewSimple: %v", err)
	}
	return tr, g
}

func TestUpdateRollbackIsExactInverse(t *testing.T) {
	tr, g := newTestTracker(t, true)

	before := make([]uint8, g.Len())
	copy(before, gridCells(g))
	beforeVectors := snapshotAll(tr)

	tok := tr.Update(1-g.At([]int{2, 3}), []int{2, 3})
	tr.Rollback(tok)

	after := gridCells(g)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("grid differs after update+rollback at flat index %d: %d != %d", i, before[i], after[i])
		}
	}
	afterVectors := snapshotAll(tr)
	for d, dirs := range beforeVectors {
		for dir, vec := range dirs {
			got := afterVectors[d][dir]
			for i := range vec {
				if vec[i] != got[i] {
					t.Fatalf("descriptor %+v dir %s lag %d: got %v want %v", d, dir, i, got, vec)
				}
			}
		}
	}
}

func TestSameDescriptors(t *testing.T) {
	a, _ := newTestTracker(t, true)
	b, _ := newTestTracker(t, true)
	if !SameDescriptors(a, b) {
		t.Error("identically configured trackers should report same descriptors")
	}
}

func gridCells(g *lattice.Grid) []uint8 {
	out := make([]uint8, g.Len())
	for i := range out {
		out[i] = g.AtFlat(i)
	}
	return out
}

func snapshotAll(tr *Simple) map[Descriptor]map[Direction][]float64 {
	out := make(map[Descriptor]map[Direction][]float64)
	for _, d := range tr.Descriptors() {
		cd, _ := tr.CorrelationFor(d)
		dirs := tr.Directions(d)
		vecs := make(map[Direction][]float64, len(dirs))
		for _, dir := range dirs {
			v, _ := cd.ForDirection(dir)
			vecs[dir] = v
		}
		out[d] = vecs
	}
	return out
}
