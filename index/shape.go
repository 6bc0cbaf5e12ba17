// SPDX-License-Identifier: MIT

// Shape helpers: an Index used as a size.
//
// Layout:
//   - Row-major: dimension 0 varies slowest, dimension D-1 fastest.
//   - offset = ((i0*s1 + i1)*s2 + i2)... for size (s0, s1, s2, ...).
//
// Determinism:
//   - ForEach visits indices in ascending offset order; every index of the
//     shape is visited exactly once.

package index

import (
	"fmt"
	"math"
)

// ValidateShape checks that every component of size is ≥ 0 and that the
// volume fits in an int. Returns ErrBadShape otherwise.
func ValidateShape(size *Index) error {
	if size == nil {
		return fmt.Errorf("ValidateShape: %w", ErrBadShape)
	}
	empty := false
	for i, c := range size.v {
		if c < 0 {
			return fmt.Errorf("ValidateShape(dim %d = %d): %w", i, c, ErrBadShape)
		}
		empty = empty || c == 0
	}
	if empty {
		return nil
	}
	vol := 1
	for _, c := range size.v {
		if vol > math.MaxInt/c {
			return fmt.Errorf("ValidateShape(%s): volume overflows int: %w", size, ErrBadShape)
		}
		vol *= c
	}

	return nil
}

// Contains reports whether idx addresses a cell inside the shape size,
// i.e. dimensions agree and 0 ≤ idx[i] < size[i] for all i.
func Contains(size, idx *Index) bool {
	if size == nil || idx == nil || len(size.v) != len(idx.v) {
		return false
	}
	for i, c := range idx.v {
		if c < 0 || c >= size.v[i] {
			return false
		}
	}

	return true
}

// Offset returns the row-major storage offset of idx within size.
// MAIN DESCRIPTION:
//   - Bounds-checked flattening of an N-d coordinate.
//
// Errors:
//   - ErrDimensionMismatch when dimensions differ.
//   - ErrOutOfRange when any component lies outside [0, size[i]).
//
// Complexity:
//   - Time O(D), Space O(1).
func Offset(size, idx *Index) (int, error) {
	if size == nil || idx == nil || len(size.v) != len(idx.v) {
		return 0, fmt.Errorf("Offset: %w", ErrDimensionMismatch)
	}
	off := 0
	for i, c := range idx.v {
		if c < 0 || c >= size.v[i] {
			return 0, fmt.Errorf("Offset%s in %s: %w", idx, size, ErrOutOfRange)
		}
		off = off*size.v[i] + c
	}

	return off, nil
}

// FromOffset writes into dst the index whose row-major offset within size is off.
// Returns ErrOutOfRange when off is outside [0, size.Volume()).
func FromOffset(size *Index, off int, dst *Index) error {
	if size == nil || dst == nil || len(size.v) != len(dst.v) {
		return fmt.Errorf("FromOffset: %w", ErrDimensionMismatch)
	}
	if off < 0 || off >= size.Volume() {
		return fmt.Errorf("FromOffset(%d) in %s: %w", off, size, ErrOutOfRange)
	}
	for i := len(size.v) - 1; i >= 0; i-- {
		dst.v[i] = off % size.v[i]
		off /= size.v[i]
	}

	return nil
}

// ForEach calls fn for every index of the shape size in row-major order.
// MAIN DESCRIPTION:
//   - Odometer-style traversal without allocating per step.
//
// Implementation:
//   - Stage 1: validate the shape; an empty shape (any zero extent) visits nothing.
//   - Stage 2: advance the last dimension, carrying into earlier ones.
//
// Behavior highlights:
//   - The *Index passed to fn is a cursor reused between calls; Copy it to retain.
//   - A non-nil error from fn stops the traversal and is returned as-is.
//
// Complexity:
//   - Time O(Volume·D) worst case (amortized O(Volume)), Space O(D).
func ForEach(size *Index, fn func(idx *Index) error) error {
	if err := ValidateShape(size); err != nil {
		return err
	}
	if size.Volume() == 0 {
		return nil
	}
	cur := &Index{v: make([]int, len(size.v))}
	for {
		if err := fn(cur); err != nil {
			return err
		}
		d := len(cur.v) - 1
		for d >= 0 {
			cur.v[d]++
			if cur.v[d] < size.v[d] {
				break
			}
			cur.v[d] = 0
			d--
		}
		if d < 0 {
			return nil
		}
	}
}
