// SPDX-License-Identifier: MIT

package indexed

import "github.com/katalvlaran/skydata/index"

// Entries describes the addressable shape of a container.
type Entries interface {
	// Size returns a copy of the container's shape.
	Size() *index.Index

	// Capacity returns the number of addressable cells (Size().Volume()).
	Capacity() int

	// ContainsIndex reports whether idx addresses a cell of this container.
	ContainsIndex(idx *index.Index) bool

	// ConformsTo reports whether the container has exactly the given shape.
	ConformsTo(size *index.Index) bool
}

// Values is a logical float64 array keyed by *index.Index.
// Every accessor returns ErrOutOfRange for indices outside the shape.
type Values interface {
	Entries

	// Get returns the value stored at idx.
	Get(idx *index.Index) (float64, error)

	// Set stores v at idx.
	Set(idx *index.Index, v float64) error

	// Add accumulates v into the cell at idx.
	Add(idx *index.Index, v float64) error

	// Scale multiplies the cell at idx by factor in place.
	Scale(idx *index.Index, factor float64) error

	// Clear resets the cell at idx to the container's zero/invalid state.
	Clear(idx *index.Index) error
}

// Validating overlays a per-cell validity flag. Readers must consult IsValid
// before trusting a value returned by Get.
type Validating interface {
	// IsValid reports whether the cell at idx holds trusted data.
	IsValid(idx *index.Index) (bool, error)

	// Discard marks the cell at idx invalid without necessarily zeroing it.
	Discard(idx *index.Index) error
}

// Resizable containers can be reallocated to a new shape. SetSize is
// destructive: previous content is dropped and every cell reads as zero.
type Resizable interface {
	SetSize(size *index.Index) error
}

// Overlayed is implemented by views that hold a non-owning reference to a base.
type Overlayed interface {
	Base() Values
}
