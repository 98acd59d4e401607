package tracker

import (
	"fmt"

	"github.com/pthm-cable/reconstruct/lattice"
)

// Simple is a reference Tracker implementation. Spec deliberately scopes the
// production correlation tracker -- fast incremental S2/L2/surface
// statistics maintained in O(length*directions) per write -- out of CORE as
// an external collaborator. Simple exists only so the annealing core's cost
// functions, modifiers, samplers, and driver have something concrete to run
// against in tests and examples: on every Update it snapshots the prior
// correlation vectors for every tracked descriptor/direction, writes the
// grid, and fully recomputes each vector from scratch. That makes Rollback
// trivial and exactly correct, at the cost of being O(grid size * length)
// per write rather than O(length) -- a production tracker should do better,
// but this one does not need to.
type Simple struct {
	grid        *lattice.Grid
	descriptors []Descriptor
	directions  map[Descriptor][]Direction
	data        map[Descriptor]map[Direction][]float64
}

var _ Tracker = (*Simple)(nil)

// NewSimple builds a Simple tracker over grid, tracking descriptors along
// the given per-descriptor direction sets, and computes initial correlation
// vectors for all of them.
func NewSimple(grid *lattice.Grid, descriptors []Descriptor, directions map[Descriptor][]Direction) (*Simple, error) {
	t := &Simple{
		grid:        grid,
		descriptors: append([]Descriptor(nil), descriptors...),
		directions:  make(map[Descriptor][]Direction, len(directions)),
		data:        make(map[Descriptor]map[Direction][]float64, len(descriptors)),
	}
	for _, d := range descriptors {
		dirs, ok := directions[d]
		if !ok || len(dirs) == 0 {
			return nil, fmt.Errorf("tracker: descriptor %+v has no configured directions", d)
		}
		t.directions[d] = append([]Direction(nil), dirs...)
		vectors := make(map[Direction][]float64, len(dirs))
		for _, dir := range dirs {
			vec, err := t.recompute(d, dir)
			if err != nil {
				return nil, err
			}
			vectors[dir] = vec
		}
		t.data[d] = vectors
	}
	return t, nil
}

func (t *Simple) recompute(d Descriptor, dir Direction) ([]float64, error) {
	step, ok := dir.Vector(t.grid.Dim())
	if !ok {
		return nil, fmt.Errorf("tracker: direction %q not defined for %d dimensions", dir, t.grid.Dim())
	}
	return computeVector(t.grid, d.Kind, d.Phase, step, d.Length), nil
}

// Shape implements lattice.Reader.
func (t *Simple) Shape() []int { return t.grid.Shape() }

// Periodic implements lattice.Reader.
func (t *Simple) Periodic() bool { return t.grid.Periodic() }

// Len implements lattice.Reader.
func (t *Simple) Len() int { return t.grid.Len() }

// At implements lattice.Reader.
func (t *Simple) At(idx []int) uint8 { return t.grid.At(idx) }

// Update writes value at idx and recomputes every tracked correlation
// vector, returning a token that restores the pre-update state exactly.
func (t *Simple) Update(value uint8, idx []int) RollbackToken {
	prior := t.grid.At(idx)

	snapshot := make(map[Descriptor]map[Direction][]float64, len(t.descriptors))
	for _, d := range t.descriptors {
		cur := t.data[d]
		snap := make(map[Direction][]float64, len(cur))
		for dir, vec := range cur {
			snap[dir] = append([]float64(nil), vec...)
		}
		snapshot[d] = snap
	}

	t.grid.Set(idx, value)

	for _, d := range t.descriptors {
		for _, dir := range t.directions[d] {
			vec, err := t.recompute(d, dir)
			if err != nil {
				// Direction validity was already checked at construction
				// time; this cannot happen unless the descriptor/direction
				// table was tampered with after construction.
				panic(err)
			}
			t.data[d][dir] = vec
		}
	}

	return RollbackToken{idx: append([]int(nil), idx...), priorValue: prior, snapshot: snapshot}
}

// Rollback reverses a RollbackToken previously returned by Update.
func (t *Simple) Rollback(tok RollbackToken) {
	t.grid.Set(tok.idx, tok.priorValue)
	for d, dirs := range tok.snapshot {
		restored := make(map[Direction][]float64, len(dirs))
		for dir, vec := range dirs {
			restored[dir] = append([]float64(nil), vec...)
		}
		t.data[d] = restored
	}
}

// Descriptors returns the tracked descriptors.
func (t *Simple) Descriptors() []Descriptor {
	return append([]Descriptor(nil), t.descriptors...)
}

// CorrelationFor returns the current correlation data for descriptor d.
func (t *Simple) CorrelationFor(d Descriptor) (CorrelationData, bool) {
	vectors, ok := t.data[d]
	if !ok {
		return nil, false
	}
	return correlationData{dirs: t.directions[d], vectors: vectors}, true
}

// Directions returns the direction set tracked for descriptor d.
func (t *Simple) Directions(d Descriptor) []Direction {
	return append([]Direction(nil), t.directions[d]...)
}

// ConstructLike builds a new Simple tracker wrapping grid, tracking the
// given descriptors along the given directions.
func (t *Simple) ConstructLike(grid *lattice.Grid, descriptors []Descriptor, directions map[Descriptor][]Direction) (Tracker, error) {
	return NewSimple(grid, descriptors, directions)
}

// correlationData is the CorrelationData implementation backing Simple.
type correlationData struct {
	dirs    []Direction
	vectors map[Direction][]float64
}

func (c correlationData) Mean() []float64 {
	if len(c.dirs) == 0 {
		return nil
	}
	length := len(c.vectors[c.dirs[0]])
	mean := make([]float64, length)
	for _, dir := range c.dirs {
		vec := c.vectors[dir]
		for i, v := range vec {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= float64(len(c.dirs))
	}
	return mean
}

func (c correlationData) ForDirection(d Direction) ([]float64, bool) {
	vec, ok := c.vectors[d]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), vec...), true
}
