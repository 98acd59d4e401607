// Package fixtures builds synthetic target grids for scenarios and tests
// that don't have a real target micrograph to reconstruct against.
package fixtures

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/reconstruct/lattice"
)

// NoiseConfig parameterizes a fractal value-noise target pattern.
type NoiseConfig struct {
	// Scale is the base sampling frequency; larger values produce finer
	// structure.
	Scale float64
	// Octaves is the number of noise layers summed (fractal Brownian
	// motion). Must be at least 1.
	Octaves int
	// Lacunarity is the per-octave frequency multiplier.
	Lacunarity float64
	// Gain is the per-octave amplitude multiplier.
	Gain float64
	// Threshold in [0,1] selects which fraction of the noise field becomes
	// phase 1: sites whose normalized noise value exceeds Threshold are
	// set.
	Threshold float64
}

// DefaultNoiseConfig returns reasonable defaults for a two-phase target
// with roughly equal phase fractions.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{Scale: 0.08, Octaves: 4, Lacunarity: 2.0, Gain: 0.5, Threshold: 0.5}
}

// ValueNoiseTarget renders a dense shape-sized grid (shape length 2 or 3)
// by thresholding fractal value noise seeded from seed. It is meant to
// stand in for a real target micrograph in scenarios and tests.
func ValueNoiseTarget(shape []int, seed int64, cfg NoiseConfig) (*lattice.Grid, error) {
	if len(shape) != 2 && len(shape) != 3 {
		return nil, fmt.Errorf("fixtures: unsupported dimensionality %d (want 2 or 3)", len(shape))
	}
	if cfg.Octaves < 1 {
		return nil, fmt.Errorf("fixtures: noise config requires at least one octave, got %d", cfg.Octaves)
	}

	g, err := lattice.NewGrid(shape, true)
	if err != nil {
		return nil, err
	}

	noise := opensimplex.New(seed)

	for i := 0; i < g.Len(); i++ {
		idx := lattice.CoordsOf(shape, i)
		var v float64
		if len(shape) == 2 {
			v = fbm2(noise, float64(idx[0]), float64(idx[1]), cfg)
		} else {
			v = fbm3(noise, float64(idx[0]), float64(idx[1]), float64(idx[2]), cfg)
		}
		if v > cfg.Threshold {
			g.SetFlat(i, 1)
		}
	}

	return g, nil
}

func fbm2(noise opensimplex.Noise, x, y float64, cfg NoiseConfig) float64 {
	sum, amp, freq, norm := 0.0, 0.5, cfg.Scale, 0.0
	for o := 0; o < cfg.Octaves; o++ {
		n := (noise.Eval2(x*freq, y*freq) + 1) * 0.5
		sum += amp * n
		norm += amp
		freq *= cfg.Lacunarity
		amp *= cfg.Gain
	}
	return clamp01(sum / norm)
}

func fbm3(noise opensimplex.Noise, x, y, z float64, cfg NoiseConfig) float64 {
	sum, amp, freq, norm := 0.0, 0.5, cfg.Scale, 0.0
	for o := 0; o < cfg.Octaves; o++ {
		n := (noise.Eval3(x*freq, y*freq, z*freq) + 1) * 0.5
		sum += amp * n
		norm += amp
		freq *= cfg.Lacunarity
		amp *= cfg.Gain
	}
	return clamp01(sum / norm)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
