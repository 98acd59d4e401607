package tracker

import "github.com/pthm-cable/reconstruct/lattice"

// computeS2 returns the two-point probability function for phase along dir,
// for lags r = 0..length-1: S2(r) = P(site x is phase AND site x+r*dir is
// phase), averaged over every valid starting site x. For a periodic grid
// every site is valid for every r; for a clamped grid only sites whose
// r-step neighbor stays in bounds count, and the denominator shrinks with r.
func computeS2(g *lattice.Grid, phase uint8, dir []int, length int) []float64 {
	out := make([]float64, length)
	n := g.Len()
	for r := 0; r < length; r++ {
		var hits, total int
		for flat := 0; flat < n; flat++ {
			coords := g.Coords(flat)
			target := stepBy(coords, dir, r)
			if !g.Periodic() && !g.InBounds(target) {
				continue
			}
			total++
			if g.AtFlat(flat) == phase && g.At(target) == phase {
				hits++
			}
		}
		if total == 0 {
			out[r] = 0
			continue
		}
		out[r] = float64(hits) / float64(total)
	}
	return out
}

// computeL2 returns the lineal-path probability function for phase along
// dir: L2(r) is the probability that a run of r+1 consecutive sites starting
// at x, stepping by dir, are all phase.
func computeL2(g *lattice.Grid, phase uint8, dir []int, length int) []float64 {
	out := make([]float64, length)
	n := g.Len()
	for r := 0; r < length; r++ {
		var hits, total int
		for flat := 0; flat < n; flat++ {
			coords := g.Coords(flat)
			allIn := true
			for k := 0; k <= r; k++ {
				target := stepBy(coords, dir, k)
				if !g.Periodic() && !g.InBounds(target) {
					allIn = false
					break
				}
			}
			if !allIn {
				continue
			}
			total++
			ok := true
			for k := 0; k <= r; k++ {
				target := stepBy(coords, dir, k)
				if g.At(target) != phase {
					ok = false
					break
				}
			}
			if ok {
				hits++
			}
		}
		if total == 0 {
			out[r] = 0
			continue
		}
		out[r] = float64(hits) / float64(total)
	}
	return out
}

func stepBy(coords, dir []int, r int) []int {
	out := make([]int, len(coords))
	for d := range coords {
		out[d] = coords[d] + dir[d]*r
	}
	return out
}

func computeVector(g *lattice.Grid, kind Kind, phase uint8, dir []int, length int) []float64 {
	switch kind {
	case KindL2:
		return computeL2(g, phase, dir, length)
	default:
		// Surface-surface statistics belong to a production tracker this
		// reference implementation doesn't provide; treating KindSurface
		// identically to S2 keeps it a valid, self-consistent (if not
		// literature-accurate) stand-in for rollback/mean/cost plumbing.
		return computeS2(g, phase, dir, length)
	}
}
