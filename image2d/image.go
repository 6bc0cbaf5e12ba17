// SPDX-License-Identifier: MIT

package image2d

import (
	"fmt"
	"math"

	"github.com/katalvlaran/skydata/accum"
	"github.com/katalvlaran/skydata/index"
	"github.com/katalvlaran/skydata/indexed"
)

// Image is a 2D value plane with validity and optional parallel planes.
//   - values owns the data; valid overlays it with per-cell validity.
//   - weight, noise and time are nil when absent and otherwise share the shape.
//   - lo/hi bound the trusted value range used by RestrictRange.
//   - precision quantizes exported values (0 = full precision).
type Image struct {
	name string
	unit string

	cols, rows int
	values     *indexed.Array
	valid      *indexed.Overlay

	weight *indexed.Array
	noise  *indexed.Array
	time   *indexed.Array

	cycle     accum.Cycle
	lo, hi    float64
	precision float64
}

var _ accum.Accumulator[*Image] = (*Image)(nil)

// New returns a cols×rows image of zeros, all cells valid, with no optional planes.
// Errors: ErrBadSize, indexed.ErrTooLarge.
func New(cols, rows int) (*Image, error) {
	if cols < 0 || rows < 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", cols, rows, ErrBadSize)
	}
	values, err := indexed.NewArray(index.Of(rows, cols))
	if err != nil {
		return nil, fmt.Errorf("New(%d,%d): %w", cols, rows, err)
	}
	valid, err := indexed.NewOverlay(values)
	if err != nil {
		return nil, fmt.Errorf("New(%d,%d): %w", cols, rows, err)
	}

	return &Image{
		cols:   cols,
		rows:   rows,
		values: values,
		valid:  valid,
		lo:     math.Inf(-1),
		hi:     math.Inf(1),
	}, nil
}

// NewFrom builds an image from row-major data (x fastest). Non-finite
// entries become invalid cells holding zero.
// Errors: ErrBadSize, indexed.ErrShapeMismatch when len(data) != cols·rows.
func NewFrom(cols, rows int, data []float64) (*Image, error) {
	im, err := New(cols, rows)
	if err != nil {
		return nil, err
	}
	if len(data) != cols*rows {
		return nil, fmt.Errorf("NewFrom(%d,%d): %d values: %w", cols, rows, len(data), indexed.ErrShapeMismatch)
	}
	buf := im.values.Data()
	for off, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			_ = im.valid.SetValidAt(off, false)
			continue
		}
		buf[off] = v
	}

	return im, nil
}

// Cols returns the number of columns (x extent).
func (im *Image) Cols() int { return im.cols }

// Rows returns the number of rows (y extent).
func (im *Image) Rows() int { return im.rows }

// Size returns the storage shape (rows, cols).
func (im *Image) Size() *index.Index { return index.Of(im.rows, im.cols) }

// Name returns the image name (exported as EXTNAME).
func (im *Image) Name() string { return im.name }

// SetName sets the image name.
func (im *Image) SetName(name string) { im.name = name }

// Unit returns the physical unit of the values (exported as BUNIT).
func (im *Image) Unit() string { return im.unit }

// SetUnit sets the physical unit.
func (im *Image) SetUnit(unit string) { im.unit = unit }

// State returns the accumulation state.
func (im *Image) State() accum.State { return im.cycle.State() }

// Values returns the validating view of the value plane, for use with the
// generic indexed operations. Indices are (y, x).
func (im *Image) Values() *indexed.Overlay { return im.valid }

// offset maps (x, y) to the row-major offset.
func (im *Image) offset(method string, x, y int) (int, error) {
	if x < 0 || x >= im.cols || y < 0 || y >= im.rows {
		return 0, imageErrorf(method, x, y, indexed.ErrOutOfRange)
	}

	return y*im.cols + x, nil
}

// Get returns the stored value regardless of validity.
func (im *Image) Get(x, y int) (float64, error) {
	off, err := im.offset("Get", x, y)
	if err != nil {
		return 0, err
	}

	return im.values.Data()[off], nil
}

// IsValid reports whether the cell holds trusted data.
func (im *Image) IsValid(x, y int) (bool, error) {
	off, err := im.offset("IsValid", x, y)
	if err != nil {
		return false, err
	}

	return im.valid.ValidAt(off), nil
}

// Set stores v and marks the cell valid. A non-finite v discards the cell
// instead and leaves the stored value untouched.
func (im *Image) Set(x, y int, v float64) error {
	off, err := im.offset("Set", x, y)
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return im.valid.SetValidAt(off, false)
	}
	im.values.Data()[off] = v

	return im.valid.SetValidAt(off, true)
}

// Add accumulates v into the cell; an invalid cell is replaced by v.
func (im *Image) Add(x, y int, v float64) error {
	off, err := im.offset("Add", x, y)
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return imageErrorf("Add", x, y, indexed.ErrNaNInf)
	}
	buf := im.values.Data()
	if im.valid.ValidAt(off) {
		buf[off] += v
	} else {
		buf[off] = v
	}

	return im.valid.SetValidAt(off, true)
}

// Scale multiplies the cell in place; validity is unchanged.
func (im *Image) Scale(x, y int, factor float64) error {
	off, err := im.offset("Scale", x, y)
	if err != nil {
		return err
	}
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return imageErrorf("Scale", x, y, indexed.ErrNaNInf)
	}
	im.values.Data()[off] *= factor

	return nil
}

// Discard marks the cell invalid without zeroing it.
func (im *Image) Discard(x, y int) error {
	off, err := im.offset("Discard", x, y)
	if err != nil {
		return err
	}

	return im.valid.SetValidAt(off, false)
}

// Clear zeroes the cell in every plane and marks it invalid.
func (im *Image) Clear(x, y int) error {
	off, err := im.offset("Clear", x, y)
	if err != nil {
		return err
	}
	im.values.Data()[off] = 0
	for _, p := range im.planes() {
		p.Data()[off] = 0
	}

	return im.valid.SetValidAt(off, false)
}

// ValidCount returns the number of valid cells.
func (im *Image) ValidCount() int { return im.valid.ValidCount() }

// DiscardAll marks every cell invalid.
func (im *Image) DiscardAll() { im.valid.DiscardAll() }

// SetSize reallocates every plane to cols×rows. Content is dropped: all
// values read zero and are valid, weights read one, noise and time zero.
// The accumulation state returns to Idle.
// Errors: ErrBadSize, indexed.ErrTooLarge.
func (im *Image) SetSize(cols, rows int) error {
	if cols < 0 || rows < 0 {
		return imageErrorf("SetSize", cols, rows, ErrBadSize)
	}
	size := index.Of(rows, cols)
	if err := im.valid.SetSize(size); err != nil {
		return imageErrorf("SetSize", cols, rows, err)
	}
	im.cols, im.rows = cols, rows
	if im.weight != nil {
		im.weight = im.newPlane(1)
	}
	if im.noise != nil {
		im.noise = im.newPlane(0)
	}
	if im.time != nil {
		im.time = im.newPlane(0)
	}
	im.cycle = accum.Cycle{}

	return nil
}

// Clone returns a deep copy including planes, validity, range, precision
// and accumulation state.
func (im *Image) Clone() *Image {
	cp := *im
	cp.values = im.values.Clone()
	cp.valid, _ = indexed.NewOverlay(cp.values) // same capacity as im.valid
	_ = cp.valid.CopyValidity(im.valid)
	if im.weight != nil {
		cp.weight = im.weight.Clone()
	}
	if im.noise != nil {
		cp.noise = im.noise.Clone()
	}
	if im.time != nil {
		cp.time = im.time.Clone()
	}

	return &cp
}

// SetValidRange sets the trusted value interval [lo, hi]; infinite bounds
// are open. The range is applied by RestrictRange.
func (im *Image) SetValidRange(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return fmt.Errorf("Image.SetValidRange(%g,%g): %w", lo, hi, ErrBadRange)
	}
	im.lo, im.hi = lo, hi

	return nil
}

// ValidRange returns the trusted value interval.
func (im *Image) ValidRange() (lo, hi float64) { return im.lo, im.hi }

// RestrictRange discards valid cells outside the trusted interval and
// returns how many were discarded.
func (im *Image) RestrictRange() int {
	n := 0
	for off, v := range im.values.Data() {
		if im.valid.ValidAt(off) && (v < im.lo || v > im.hi) {
			_ = im.valid.SetValidAt(off, false)
			n++
		}
	}

	return n
}

// SetPrecision sets the export quantum: exported values are rounded to the
// nearest multiple of p. Zero restores full precision.
func (im *Image) SetPrecision(p float64) error {
	if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return fmt.Errorf("Image.SetPrecision(%g): %w", p, ErrBadPrecision)
	}
	im.precision = p

	return nil
}

// Precision returns the export quantum (0 = full precision).
func (im *Image) Precision() float64 { return im.precision }

func (im *Image) quantize(v float64) float64 {
	if im.precision == 0 {
		return v
	}

	return math.Round(v/im.precision) * im.precision
}

// String renders a short description.
func (im *Image) String() string {
	name := im.name
	if name == "" {
		name = "image"
	}

	return fmt.Sprintf("%s[%dx%d valid=%d %s]", name, im.cols, im.rows, im.ValidCount(), im.State())
}
