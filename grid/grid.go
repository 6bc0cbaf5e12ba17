// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/skydata/index"
)

// Grid is a regular N-dimensional coordinate grid.
//   - reference is the coordinate located at referenceIndex.
//   - resolution is the coordinate step per unit index, one per axis (may be negative).
type Grid struct {
	reference      []float64
	referenceIndex []float64
	resolution     []float64
}

var (
	_ Referenced   = (*Grid)(nil)
	_ fmt.Stringer = (*Grid)(nil)
)

// New builds a grid from a reference coordinate, the reference index at which
// it sits, and the per-axis resolution. All three must have the same length.
// MAIN DESCRIPTION:
//   - Validated constructor; inputs are copied.
//
// Errors:
//   - ErrBadDimension when no axis is given.
//   - ErrDimensionMismatch when lengths differ.
//   - ErrNonFinite for NaN/Inf reference components.
//   - ErrBadResolution for zero/NaN/Inf resolution components.
//
// Complexity:
//   - Time O(D), Space O(D).
func New(reference, referenceIndex, resolution []float64) (*Grid, error) {
	if len(reference) == 0 {
		return nil, fmt.Errorf("grid.New: %w", ErrBadDimension)
	}
	if len(referenceIndex) != len(reference) || len(resolution) != len(reference) {
		return nil, fmt.Errorf("grid.New(%d,%d,%d): %w",
			len(reference), len(referenceIndex), len(resolution), ErrDimensionMismatch)
	}
	g := &Grid{
		reference:      make([]float64, len(reference)),
		referenceIndex: make([]float64, len(reference)),
		resolution:     make([]float64, len(reference)),
	}
	if err := g.SetReference(reference); err != nil {
		return nil, err
	}
	if err := g.SetReferenceIndex(referenceIndex); err != nil {
		return nil, err
	}
	if err := g.SetResolution(resolution); err != nil {
		return nil, err
	}

	return g, nil
}

// Uniform builds a dim-dimensional grid with zero reference at index zero and
// the same resolution on every axis.
func Uniform(dim int, resolution float64) (*Grid, error) {
	if dim < 1 {
		return nil, fmt.Errorf("grid.Uniform(%d): %w", dim, ErrBadDimension)
	}
	res := make([]float64, dim)
	for i := range res {
		res[i] = resolution
	}

	return New(make([]float64, dim), make([]float64, dim), res)
}

// Dimension returns the number of axes.
func (g *Grid) Dimension() int { return len(g.reference) }

func isNonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

// checkVec validates v's length against the grid dimension.
func (g *Grid) checkVec(method string, v []float64) error {
	if len(v) != len(g.reference) {
		return fmt.Errorf("Grid.%s(len %d): %w", method, len(v), ErrDimensionMismatch)
	}

	return nil
}

// Reference returns a copy of the reference coordinate.
func (g *Grid) Reference() []float64 { return append([]float64(nil), g.reference...) }

// ReferenceIndex returns a copy of the reference index.
func (g *Grid) ReferenceIndex() []float64 { return append([]float64(nil), g.referenceIndex...) }

// Resolution returns a copy of the per-axis resolution.
func (g *Grid) Resolution() []float64 { return append([]float64(nil), g.resolution...) }

// SetReference replaces the reference coordinate.
func (g *Grid) SetReference(ref []float64) error {
	if err := g.checkVec("SetReference", ref); err != nil {
		return err
	}
	for i, v := range ref {
		if isNonFinite(v) {
			return fmt.Errorf("Grid.SetReference(axis %d): %w", i, ErrNonFinite)
		}
	}
	copy(g.reference, ref)

	return nil
}

// SetReferenceIndex replaces the (fractional) reference index.
func (g *Grid) SetReferenceIndex(idx []float64) error {
	if err := g.checkVec("SetReferenceIndex", idx); err != nil {
		return err
	}
	for i, v := range idx {
		if isNonFinite(v) {
			return fmt.Errorf("Grid.SetReferenceIndex(axis %d): %w", i, ErrNonFinite)
		}
	}
	copy(g.referenceIndex, idx)

	return nil
}

// SetResolution replaces the per-axis resolution.
func (g *Grid) SetResolution(res []float64) error {
	if err := g.checkVec("SetResolution", res); err != nil {
		return err
	}
	for i, v := range res {
		if v == 0 || isNonFinite(v) {
			return fmt.Errorf("Grid.SetResolution(axis %d = %g): %w", i, v, ErrBadResolution)
		}
	}
	copy(g.resolution, res)

	return nil
}

// ValueAt returns the coordinate of the integer index idx.
// Errors: ErrDimensionMismatch.
// Complexity: O(D).
func (g *Grid) ValueAt(idx *index.Index) ([]float64, error) {
	if idx == nil || idx.Dimension() != len(g.reference) {
		return nil, fmt.Errorf("Grid.ValueAt: %w", ErrDimensionMismatch)
	}
	pos := make([]float64, len(g.reference))
	_ = idx.ToVector(pos) // same dimension checked above

	return g.ValueAtPosition(pos)
}

// ValueAtPosition returns the coordinate of a fractional index position.
func (g *Grid) ValueAtPosition(pos []float64) ([]float64, error) {
	if err := g.checkVec("ValueAtPosition", pos); err != nil {
		return nil, err
	}
	out := make([]float64, len(pos))
	for i, p := range pos {
		out[i] = g.reference[i] + (p-g.referenceIndex[i])*g.resolution[i]
	}

	return out, nil
}

// IndexOf returns the fractional index position of coordinate value.
// It is the inverse of ValueAtPosition:
//
//	index[i] = referenceIndex[i] + (value[i] - reference[i]) / resolution[i]
//
// Errors: ErrDimensionMismatch, ErrNonFinite.
func (g *Grid) IndexOf(value []float64) ([]float64, error) {
	if err := g.checkVec("IndexOf", value); err != nil {
		return nil, err
	}
	out := make([]float64, len(value))
	for i, v := range value {
		if isNonFinite(v) {
			return nil, fmt.Errorf("Grid.IndexOf(axis %d): %w", i, ErrNonFinite)
		}
		out[i] = g.referenceIndex[i] + (v-g.reference[i])/g.resolution[i]
	}

	return out, nil
}

// NearestIndex returns the integer index whose coordinate is closest to value
// (IndexOf rounded half away from zero).
func (g *Grid) NearestIndex(value []float64) (*index.Index, error) {
	pos, err := g.IndexOf(value)
	if err != nil {
		return nil, err
	}
	out, _ := index.New(len(pos)) // len(pos) ≥ 1 by construction
	for i, p := range pos {
		_ = out.SetValue(i, int(math.Round(p)))
	}

	return out, nil
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		reference:      g.Reference(),
		referenceIndex: g.ReferenceIndex(),
		resolution:     g.Resolution(),
	}
}

// String renders the grid parameters for diagnostics.
func (g *Grid) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Grid{ref=%v @ %v, res=%v}", g.reference, g.referenceIndex, g.resolution)

	return b.String()
}
