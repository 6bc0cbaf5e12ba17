// SPDX-License-Identifier: MIT
// Package indexed: sentinel error set.
// All methods return these sentinels (optionally wrapped with %w and a
// method/index context); callers match them with errors.Is.

package indexed

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNilValues indicates that a nil container (receiver or argument) was used.
	ErrNilValues = errors.New("indexed: nil container")

	// ErrBadShape is returned when a requested size has a negative extent.
	ErrBadShape = errors.New("indexed: invalid shape")

	// ErrOutOfRange indicates that an index is outside the container's shape.
	// Get/Set/Add/Scale/Clear MUST return this, never clip.
	ErrOutOfRange = errors.New("indexed: index out of range")

	// ErrShapeMismatch indicates that two containers do not conform.
	ErrShapeMismatch = errors.New("indexed: shape mismatch")

	// ErrNaNInf signals a NaN or ±Inf value rejected by the numeric policy.
	ErrNaNInf = errors.New("indexed: NaN or Inf encountered")

	// ErrTooLarge is returned when a shape has more than MaxCells cells.
	ErrTooLarge = errors.New("indexed: too many cells")

	// ErrNotResizable is returned by Overlay.SetSize when its base cannot be resized.
	ErrNotResizable = errors.New("indexed: base container is not resizable")
)

// MaxCells is the largest number of cells an Array or Overlay may hold,
// bounded by the 32-bit offsets of the validity bitmap.
const MaxCells = math.MaxUint32

// errStop ends a ForEach traversal early; never returned to callers.
var errStop = errors.New("indexed: stop")

// indexedErrorf wraps an error with the owning type, method and index.
func indexedErrorf(typ, method string, at fmt.Stringer, err error) error {
	return fmt.Errorf("%s.%s(%v): %w", typ, method, at, err)
}

// opErrorf wraps an error with a package-level operation tag.
func opErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
