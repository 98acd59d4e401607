// Package lattice provides the dense N-dimensional binary grid that
// underlies a reconstruction run, along with the index arithmetic shared by
// samplers, modifiers, and trackers.
package lattice

import "fmt"

// Reader is the read-only view of a grid that samplers operate against.
// tracker.Tracker implementations satisfy this interface structurally so a
// Sampler never needs to import the tracker package.
type Reader interface {
	Shape() []int
	Periodic() bool
	Len() int
	At(idx []int) uint8
}

// Grid is a dense N-dimensional (N in {2,3}) array of phase values.
type Grid struct {
	shape    []int
	strides  []int
	periodic bool
	cells    []uint8
}

// NewGrid allocates a zeroed grid of the given shape. shape must have length
// 2 or 3 and every dimension must be positive.
func NewGrid(shape []int, periodic bool) (*Grid, error) {
	if len(shape) != 2 && len(shape) != 3 {
		return nil, fmt.Errorf("lattice: unsupported dimensionality %d (want 2 or 3)", len(shape))
	}
	n := 1
	for _, s := range shape {
		if s <= 0 {
			return nil, fmt.Errorf("lattice: non-positive dimension in shape %v", shape)
		}
		n *= s
	}
	shapeCopy := append([]int(nil), shape...)
	return &Grid{
		shape:    shapeCopy,
		strides:  strides(shapeCopy),
		periodic: periodic,
		cells:    make([]uint8, n),
	}, nil
}

// strides computes row-major strides for shape.
func strides(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

// Shape returns the grid's dimensions. Callers must not mutate the result.
func (g *Grid) Shape() []int { return g.shape }

// Dim returns the number of dimensions (2 or 3).
func (g *Grid) Dim() int { return len(g.shape) }

// Periodic reports whether the grid wraps at its boundaries.
func (g *Grid) Periodic() bool { return g.periodic }

// Len returns the total number of sites.
func (g *Grid) Len() int { return len(g.cells) }

// Wrap maps idx into bounds according to the grid's boundary condition.
// For periodic grids it wraps modulo the shape; for clamped grids it
// clamps each coordinate into [0, shape[d]-1]. It never fails.
func (g *Grid) Wrap(idx []int) []int {
	return wrapOf(g.shape, g.periodic, idx)
}

// InBounds reports whether idx lies within the grid without wrapping or
// clamping it. Consumers of the line-ray iterator use this to stop walking
// a ray that has left the grid.
func (g *Grid) InBounds(idx []int) bool {
	return inBoundsOf(g.shape, idx)
}

// flatIndex converts (already in-bounds) coordinates to a flat offset.
func (g *Grid) flatIndex(idx []int) int {
	f := 0
	for d, v := range idx {
		f += v * g.strides[d]
	}
	return f
}

// FlatIndex applies the boundary condition and returns the flat offset.
func (g *Grid) FlatIndex(idx []int) int {
	return g.flatIndex(g.Wrap(idx))
}

// Coords converts a flat offset back into N-dimensional coordinates.
func (g *Grid) Coords(flat int) []int {
	return CoordsOf(g.shape, flat)
}

// CoordsOf converts a flat row-major offset into N-dimensional coordinates
// for the given shape, without requiring a Grid instance. Samplers use this
// to turn a flat index drawn against any lattice.Reader (Grid or Tracker)
// into lattice coordinates.
func CoordsOf(shape []int, flat int) []int {
	s := strides(shape)
	out := make([]int, len(shape))
	for d, stride := range s {
		out[d] = flat / stride
		flat -= out[d] * stride
	}
	return out
}

// At reads the phase value at idx, applying the grid's boundary condition.
func (g *Grid) At(idx []int) uint8 {
	return g.cells[g.FlatIndex(idx)]
}

// AtFlat reads the phase value at a flat offset directly.
func (g *Grid) AtFlat(flat int) uint8 { return g.cells[flat] }

// Set writes a phase value at idx, applying the grid's boundary condition.
func (g *Grid) Set(idx []int, v uint8) {
	g.cells[g.FlatIndex(idx)] = v
}

// SetFlat writes a phase value at a flat offset directly.
func (g *Grid) SetFlat(flat int, v uint8) { g.cells[flat] = v }

// CountPhase returns the number of sites equal to phase.
func (g *Grid) CountPhase(phase uint8) int {
	n := 0
	for _, v := range g.cells {
		if v == phase {
			n++
		}
	}
	return n
}

// Clone returns an independent deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cp := &Grid{
		shape:    append([]int(nil), g.shape...),
		strides:  append([]int(nil), g.strides...),
		periodic: g.periodic,
		cells:    append([]uint8(nil), g.cells...),
	}
	return cp
}

// Neighbors returns the 8-connected (2D) or 26-connected (3D) neighbors of
// idx, wrapped or clamped per the grid's boundary condition. Clamped grids
// silently skip neighbors that would fall outside the grid (periodic grids
// never need to, since Wrap always succeeds).
func (g *Grid) Neighbors(idx []int) [][]int {
	return NeighborsOf(g.shape, g.periodic, idx)
}

// NeighborsOf enumerates the 8-connected (2D) or 26-connected (3D)
// neighbors of idx for a grid of the given shape and boundary condition,
// without requiring a *Grid instance. Samplers use this against any
// lattice.Reader (Grid or Tracker), both of which expose Shape/Periodic.
func NeighborsOf(shape []int, periodic bool, idx []int) [][]int {
	dim := len(shape)
	offsets := neighborOffsets(dim)
	out := make([][]int, 0, len(offsets))
	for _, off := range offsets {
		raw := make([]int, len(idx))
		for d := range idx {
			raw[d] = idx[d] + off[d]
		}
		if !periodic && !inBoundsOf(shape, raw) {
			continue
		}
		out = append(out, wrapOf(shape, periodic, raw))
	}
	return out
}

func inBoundsOf(shape, idx []int) bool {
	if len(idx) != len(shape) {
		return false
	}
	for d, v := range idx {
		if v < 0 || v >= shape[d] {
			return false
		}
	}
	return true
}

func wrapOf(shape []int, periodic bool, idx []int) []int {
	out := make([]int, len(idx))
	for d, v := range idx {
		n := shape[d]
		if periodic {
			v %= n
			if v < 0 {
				v += n
			}
		} else {
			if v < 0 {
				v = 0
			} else if v >= n {
				v = n - 1
			}
		}
		out[d] = v
	}
	return out
}

// neighborOffsets enumerates every nonzero offset in {-1,0,1}^dim.
func neighborOffsets(dim int) [][]int {
	var out [][]int
	var rec func(prefix []int)
	rec = func(prefix []int) {
		if len(prefix) == dim {
			zero := true
			for _, v := range prefix {
				if v != 0 {
					zero = false
					break
				}
			}
			if !zero {
				out = append(out, append([]int(nil), prefix...))
			}
			return
		}
		for d := -1; d <= 1; d++ {
			rec(append(prefix, d))
		}
	}
	rec(make([]int, 0, dim))
	return out
}
