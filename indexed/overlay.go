// SPDX-License-Identifier: MIT

package indexed

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/katalvlaran/skydata/index"
)

const (
	typOverlay = "Overlay"

	ctxIsValid = "IsValid"
	ctxDiscard = "Discard"
)

// Overlay adds per-cell validity to a base container it does not own.
//   - base is the backing Values; Overlay never reallocates it except via SetSize.
//   - invalid holds the row-major offsets of discarded cells.
//
// A fresh overlay considers every cell valid.
type Overlay struct {
	base    Values
	size    *index.Index
	invalid *roaring.Bitmap
}

// Compile-time assertions.
var (
	_ Values     = (*Overlay)(nil)
	_ Validating = (*Overlay)(nil)
	_ Overlayed  = (*Overlay)(nil)
	_ Resizable  = (*Overlay)(nil)
)

// checkCapacity rejects shapes whose offsets do not fit a 32-bit bitmap.
func checkCapacity(e Entries) error {
	if uint64(e.Capacity()) > MaxCells {
		return ErrTooLarge
	}

	return nil
}

// NewOverlay wraps base with an all-valid validity overlay.
// Errors: ErrNilValues, ErrTooLarge.
func NewOverlay(base Values) (*Overlay, error) {
	if base == nil {
		return nil, opErrorf("NewOverlay", ErrNilValues)
	}
	if err := checkCapacity(base); err != nil {
		return nil, opErrorf("NewOverlay", err)
	}

	return &Overlay{
		base:    base,
		size:    base.Size(),
		invalid: roaring.New(),
	}, nil
}

// Base returns the overlaid container.
func (o *Overlay) Base() Values { return o.base }

// Size returns a copy of the base shape.
func (o *Overlay) Size() *index.Index { return o.size.Copy() }

// Capacity returns the number of cells of the base.
func (o *Overlay) Capacity() int { return o.size.Volume() }

// ContainsIndex reports whether idx lies inside the shape.
func (o *Overlay) ContainsIndex(idx *index.Index) bool { return index.Contains(o.size, idx) }

// ConformsTo reports whether size equals the base shape.
func (o *Overlay) ConformsTo(size *index.Index) bool { return o.size.Equal(size) }

// offsetOf maps idx to the bitmap key.
func (o *Overlay) offsetOf(idx *index.Index) (uint32, error) {
	off, err := index.Offset(o.size, idx)
	if err != nil {
		return 0, ErrOutOfRange
	}

	return uint32(off), nil
}

// Get returns the stored value regardless of validity.
func (o *Overlay) Get(idx *index.Index) (float64, error) {
	if _, err := o.offsetOf(idx); err != nil {
		return 0, indexedErrorf(typOverlay, ctxGet, idx, err)
	}

	return o.base.Get(idx)
}

// Set stores v and marks the cell valid.
func (o *Overlay) Set(idx *index.Index, v float64) error {
	off, err := o.offsetOf(idx)
	if err != nil {
		return indexedErrorf(typOverlay, ctxSet, idx, err)
	}
	if err = o.base.Set(idx, v); err != nil {
		return err
	}
	o.invalid.Remove(off)

	return nil
}

// ValidatesNaNInf reports whether the base rejects NaN/±Inf on Set.
func (o *Overlay) ValidatesNaNInf() bool { return validatesNaNInf(o.base) }

// Add accumulates v into a valid cell. On an invalid cell the stale content
// is ignored: the cell is set to v and becomes valid.
func (o *Overlay) Add(idx *index.Index, v float64) error {
	off, err := o.offsetOf(idx)
	if err != nil {
		return indexedErrorf(typOverlay, ctxAdd, idx, err)
	}
	if o.invalid.Contains(off) {
		if err = o.base.Set(idx, v); err != nil {
			return err
		}
		o.invalid.Remove(off)

		return nil
	}

	return o.base.Add(idx, v)
}

// Scale multiplies the stored value; validity is unchanged.
func (o *Overlay) Scale(idx *index.Index, factor float64) error {
	if _, err := o.offsetOf(idx); err != nil {
		return indexedErrorf(typOverlay, ctxScale, idx, err)
	}

	return o.base.Scale(idx, factor)
}

// Clear zeroes the base cell and marks it invalid.
func (o *Overlay) Clear(idx *index.Index) error {
	off, err := o.offsetOf(idx)
	if err != nil {
		return indexedErrorf(typOverlay, ctxClear, idx, err)
	}
	if err = o.base.Clear(idx); err != nil {
		return err
	}
	o.invalid.Add(off)

	return nil
}

// IsValid reports whether the cell at idx holds trusted data.
func (o *Overlay) IsValid(idx *index.Index) (bool, error) {
	off, err := o.offsetOf(idx)
	if err != nil {
		return false, indexedErrorf(typOverlay, ctxIsValid, idx, err)
	}

	return !o.invalid.Contains(off), nil
}

// Discard marks the cell invalid; the stored value is left as is.
func (o *Overlay) Discard(idx *index.Index) error {
	off, err := o.offsetOf(idx)
	if err != nil {
		return indexedErrorf(typOverlay, ctxDiscard, idx, err)
	}
	o.invalid.Add(off)

	return nil
}

// ValidAt reports validity by row-major offset. Offsets outside the shape
// are reported invalid.
func (o *Overlay) ValidAt(off int) bool {
	if off < 0 || off >= o.Capacity() {
		return false
	}

	return !o.invalid.Contains(uint32(off))
}

// SetValidAt flags the cell at a row-major offset without touching its value.
// Errors: ErrOutOfRange.
func (o *Overlay) SetValidAt(off int, valid bool) error {
	if off < 0 || off >= o.Capacity() {
		return opErrorf("Overlay.SetValidAt", ErrOutOfRange)
	}
	if valid {
		o.invalid.Remove(uint32(off))
	} else {
		o.invalid.Add(uint32(off))
	}

	return nil
}

// CopyValidity replaces the validity flags with those of src.
// Errors: ErrNilValues, ErrShapeMismatch.
func (o *Overlay) CopyValidity(src *Overlay) error {
	if src == nil {
		return opErrorf("Overlay.CopyValidity", ErrNilValues)
	}
	if err := ValidateConforms(o, src); err != nil {
		return opErrorf("Overlay.CopyValidity", err)
	}
	o.invalid = src.invalid.Clone()

	return nil
}

// DiscardAll marks every cell invalid.
func (o *Overlay) DiscardAll() {
	if n := o.Capacity(); n > 0 {
		o.invalid.AddRange(0, uint64(n))
	}
}

// ValidateAll marks every cell valid again.
func (o *Overlay) ValidateAll() { o.invalid.Clear() }

// ValidCount returns the number of valid cells.
func (o *Overlay) ValidCount() int {
	return o.Capacity() - int(o.invalid.GetCardinality())
}

// ForEachValid calls fn with every valid index and its value, in row-major
// order. The index is a reused cursor; Copy it to retain.
func (o *Overlay) ForEachValid(fn func(idx *index.Index, v float64) error) error {
	return index.ForEach(o.size, func(idx *index.Index) error {
		off, _ := index.Offset(o.size, idx) // in range by construction
		if o.invalid.Contains(uint32(off)) {
			return nil
		}
		v, err := o.base.Get(idx)
		if err != nil {
			return err
		}

		return fn(idx, v)
	})
}

// SetSize resizes the base (which must be Resizable) and resets validity so
// that every cell is valid and reads as zero.
// Errors: ErrNotResizable, ErrTooLarge, and any error from the base.
func (o *Overlay) SetSize(size *index.Index) error {
	r, ok := o.base.(Resizable)
	if !ok {
		return opErrorf("Overlay.SetSize", ErrNotResizable)
	}
	if err := index.ValidateShape(size); err != nil {
		return opErrorf("Overlay.SetSize", fmt.Errorf("%w: %w", ErrBadShape, err))
	}
	if uint64(size.Volume()) > MaxCells {
		return opErrorf("Overlay.SetSize", ErrTooLarge)
	}
	if err := r.SetSize(size); err != nil {
		return err
	}
	o.size = size.Copy()
	o.invalid.Clear()

	return nil
}
