// SPDX-License-Identifier: MIT

// Package indexed - Array storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer for any dimensionality.
//   - Guarantee safety at the public surface: accessors return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// Complexity quicksheet:
//   - NewArray: O(V) zero-init; Get/Set/Add/Scale/Clear: O(D); Clone: O(V); SetSize: O(V').

package indexed

import (
	"fmt"
	"math"

	"github.com/katalvlaran/skydata/index"
)

// ---------- error context tags ----------

const (
	typArray = "Array"

	ctxGet   = "Get"
	ctxSet   = "Set"
	ctxAdd   = "Add"
	ctxScale = "Scale"
	ctxClear = "Clear"
)

// Array is a concrete dense N-dimensional container.
//   - size is the shape (owned copy; never aliased to caller indices).
//   - data is a flat buffer of length size.Volume() in row-major order.
//   - validateNaNInf enables NaN/Inf rejection in Set/Add/Scale.
type Array struct {
	size           *index.Index
	data           []float64
	validateNaNInf bool
}

// Compile-time assertions.
var (
	_ Values    = (*Array)(nil)
	_ Resizable = (*Array)(nil)
)

// NewArray creates a zero-filled container of the given shape.
// MAIN DESCRIPTION:
//   - Public constructor with shape validation and the configured numeric policy.
//
// Implementation:
//   - Stage 1: validate size (non-nil, extents ≥ 0, at most MaxCells cells).
//   - Stage 2: allocate a zero-filled buffer of size.Volume() cells.
//   - Stage 3: resolve numeric policy from options.
//
// Errors:
//   - ErrBadShape when size is nil, has a negative extent or its volume overflows.
//   - ErrTooLarge when the volume exceeds MaxCells.
//
// Complexity:
//   - Time O(V), Space O(V).
func NewArray(size *index.Index, opts ...Option) (*Array, error) {
	if err := index.ValidateShape(size); err != nil {
		return nil, opErrorf("NewArray", fmt.Errorf("%w: %w", ErrBadShape, err))
	}
	if uint64(size.Volume()) > MaxCells {
		return nil, opErrorf("NewArray", ErrTooLarge)
	}
	o := gatherOptions(opts...)

	return &Array{
		size:           size.Copy(),
		data:           make([]float64, size.Volume()),
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// NewArrayFrom creates a container of the given shape holding a copy of data
// (row-major). len(data) must equal size.Volume(); values are checked against
// the numeric policy.
func NewArrayFrom(size *index.Index, data []float64, opts ...Option) (*Array, error) {
	a, err := NewArray(size, opts...)
	if err != nil {
		return nil, err
	}
	if len(data) != len(a.data) {
		return nil, opErrorf("NewArrayFrom", ErrShapeMismatch)
	}
	if a.validateNaNInf {
		for i, v := range data {
			if isNonFinite(v) {
				return nil, opErrorf(fmt.Sprintf("NewArrayFrom[%d]", i), ErrNaNInf)
			}
		}
	}
	copy(a.data, data)

	return a, nil
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

// Size returns a copy of the shape. Complexity: O(D).
func (a *Array) Size() *index.Index { return a.size.Copy() }

// Capacity returns the number of cells. Complexity: O(1).
func (a *Array) Capacity() int { return len(a.data) }

// ContainsIndex reports whether idx lies inside the shape.
func (a *Array) ContainsIndex(idx *index.Index) bool { return index.Contains(a.size, idx) }

// ConformsTo reports whether size equals the container's shape.
func (a *Array) ConformsTo(size *index.Index) bool { return a.size.Equal(size) }

// Data exposes the live row-major buffer. Writes through it bypass the
// numeric policy; callers own that responsibility.
func (a *Array) Data() []float64 { return a.data }

// ValidatesNaNInf reports the numeric policy of this container.
func (a *Array) ValidatesNaNInf() bool { return a.validateNaNInf }

// offsetOf computes the row-major offset or returns ErrOutOfRange.
// Keep unexported; public methods wrap with their own context.
func (a *Array) offsetOf(idx *index.Index) (int, error) {
	off, err := index.Offset(a.size, idx)
	if err != nil {
		return 0, ErrOutOfRange
	}

	return off, nil
}

// checkValue applies the numeric policy to v.
func (a *Array) checkValue(v float64) error {
	if a.validateNaNInf && isNonFinite(v) {
		return ErrNaNInf
	}

	return nil
}

// Get returns the value at idx or ErrOutOfRange.
// Complexity: O(D).
func (a *Array) Get(idx *index.Index) (float64, error) {
	off, err := a.offsetOf(idx)
	if err != nil {
		return 0, indexedErrorf(typArray, ctxGet, idx, err)
	}

	return a.data[off], nil
}

// Set stores v at idx.
// MAIN DESCRIPTION:
//   - Safe element write with optional finite-only policy.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for rejected numbers.
//
// Complexity:
//   - Time O(D), Space O(1).
func (a *Array) Set(idx *index.Index, v float64) error {
	off, err := a.offsetOf(idx)
	if err != nil {
		return indexedErrorf(typArray, ctxSet, idx, err)
	}
	if err = a.checkValue(v); err != nil {
		return indexedErrorf(typArray, ctxSet, idx, err)
	}
	a.data[off] = v

	return nil
}

// Add accumulates v into the cell at idx. The numeric policy applies to the
// resulting sum, so an overflow to ±Inf is rejected and the cell is kept.
func (a *Array) Add(idx *index.Index, v float64) error {
	off, err := a.offsetOf(idx)
	if err != nil {
		return indexedErrorf(typArray, ctxAdd, idx, err)
	}
	sum := a.data[off] + v
	if err = a.checkValue(sum); err != nil {
		return indexedErrorf(typArray, ctxAdd, idx, err)
	}
	a.data[off] = sum

	return nil
}

// Scale multiplies the cell at idx by factor.
func (a *Array) Scale(idx *index.Index, factor float64) error {
	off, err := a.offsetOf(idx)
	if err != nil {
		return indexedErrorf(typArray, ctxScale, idx, err)
	}
	prod := a.data[off] * factor
	if err = a.checkValue(prod); err != nil {
		return indexedErrorf(typArray, ctxScale, idx, err)
	}
	a.data[off] = prod

	return nil
}

// Clear resets the cell at idx to zero.
func (a *Array) Clear(idx *index.Index) error {
	off, err := a.offsetOf(idx)
	if err != nil {
		return indexedErrorf(typArray, ctxClear, idx, err)
	}
	a.data[off] = 0

	return nil
}

// SetSize discards the content and reallocates a zero-filled buffer of the
// given shape. The dimensionality may change. The numeric policy is kept.
// Errors: ErrBadShape, ErrTooLarge.
// Complexity: Time O(V'), Space O(V').
func (a *Array) SetSize(size *index.Index) error {
	if err := index.ValidateShape(size); err != nil {
		return opErrorf("Array.SetSize", fmt.Errorf("%w: %w", ErrBadShape, err))
	}
	if uint64(size.Volume()) > MaxCells {
		return opErrorf("Array.SetSize", ErrTooLarge)
	}
	a.size = size.Copy()
	a.data = make([]float64, size.Volume())

	return nil
}

// Clone returns a deep copy (new buffer, same shape and numeric policy).
func (a *Array) Clone() *Array {
	cp := make([]float64, len(a.data))
	copy(cp, a.data)

	return &Array{
		size:           a.size.Copy(),
		data:           cp,
		validateNaNInf: a.validateNaNInf,
	}
}
