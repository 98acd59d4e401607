package lattice

import (
	"math/rand"
	"testing"
)

func TestGridWrapPeriodic(t *testing.T) {
	g, err := NewGrid([]int{4, 4}, true)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	got := g.Wrap([]int{-1, 5})
	want := []int{3, 1}
	if got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Wrap(-1,5) = %v, want %v", got, want)
	}
}

func TestGridWrapClamped(t *testing.T) {
	g, err := NewGrid([]int{4, 4}, false)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	got := g.Wrap([]int{-1, 5})
	want := []int{0, 3}
	if got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Wrap(-1,5) = %v, want %v", got, want)
	}
}

func TestGridSetAtRoundTrip(t *testing.T) {
	g, _ := NewGrid([]int{3, 3, 3}, true)
	g.Set([]int{1, 2, 0}, 1)
	if got := g.At([]int{1, 2, 0}); got != 1 {
		t.Errorf("At = %d, want 1", got)
	}
	if got := g.CountPhase(1); got != 1 {
		t.Errorf("CountPhase(1) = %d, want 1", got)
	}
}

func TestGridNeighbors2D(t *testing.T) {
	g, _ := NewGrid([]int{5, 5}, true)
	nb := g.Neighbors([]int{2, 2})
	if len(nb) != 8 {
		t.Fatalf("expected 8 neighbors in 2D, got %d", len(nb))
	}
}

func TestGridNeighbors3D(t *testing.T) {
	g, _ := NewGrid([]int{5, 5, 5}, true)
	nb := g.Neighbors([]int{2, 2, 2})
	if len(nb) != 26 {
		t.Fatalf("expected 26 neighbors in 3D, got %d", len(nb))
	}
}

func TestGridNeighborsClampedBoundary(t *testing.T) {
	g, _ := NewGrid([]int{3, 3}, false)
	nb := g.Neighbors([]int{0, 0})
	if len(nb) != 3 {
		t.Fatalf("corner of clamped grid should have 3 in-bounds neighbors, got %d", len(nb))
	}
}

func TestRayFirstSiteIsSeed(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ray, err := NewRay(rng, []int{3, 4})
	if err != nil {
		t.Fatalf("NewRay: %v", err)
	}
	first := ray.Next()
	if first[0] != 3 || first[1] != 4 {
		t.Errorf("first site = %v, want seed [3 4]", first)
	}
}

func TestRayAdvances(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ray, _ := NewRay(rng, []int{10, 10, 10})
	seen := make(map[[3]int]bool)
	prev := ray.Next()
	for i := 0; i < 20; i++ {
		next := ray.Next()
		key := [3]int{next[0], next[1], next[2]}
		seen[key] = true
		prev = next
	}
	_ = prev
	if len(seen) < 2 {
		t.Error("ray should visit more than one distinct site over 20 steps")
	}
}
