// SPDX-License-Identifier: MIT

package image2d

import (
	"fmt"
	"math"

	"github.com/katalvlaran/skydata/accum"
	"github.com/katalvlaran/skydata/indexed"
)

// StartAccumulation opens a coadd cycle. The current content re-enters the
// running sums with its weight (see weightAt), so a finalized image keeps
// its contribution. A weight plane is created if absent.
func (im *Image) StartAccumulation() error {
	if err := im.cycle.Start(); err != nil {
		return fmt.Errorf("Image.%w", err)
	}
	n := im.cols * im.rows
	w := make([]float64, n)
	for off := range w {
		w[off] = im.weightAt(off)
	}
	im.EnsureWeights()
	buf, wbuf := im.values.Data(), im.weight.Data()
	for off := range buf {
		if w[off] == 0 {
			buf[off] = 0
		} else {
			buf[off] *= w[off]
		}
		wbuf[off] = w[off]
	}

	return nil
}

// Accumulate is AccumulateGain(x, weight, 1).
func (im *Image) Accumulate(x *Image, weight float64) error {
	return im.AccumulateGain(x, weight, 1)
}

// AccumulateGain folds the valid cells of x into the running sums.
// MAIN DESCRIPTION:
//   - sum += weight·gain·xv·xw and w += weight·gain²·xw per cell, where xw is
//     x's cell weight; exposure times add up unscaled for contributing cells.
//
// Behavior highlights:
//   - Invalid cells of x contribute nothing; an Empty x contributes nothing.
//   - On error the receiver is unchanged.
//
// Errors:
//   - accum.ErrInvalidState when im is not accumulating or x is.
//   - accum.ErrBadWeight for a bad weight or gain.
//   - indexed.ErrShapeMismatch when x has a different shape.
//
// Complexity:
//   - Time O(cols·rows), Space O(1).
func (im *Image) AccumulateGain(x *Image, weight, gain float64) error {
	if err := im.cycle.Check(); err != nil {
		return fmt.Errorf("Image.%w", err)
	}
	if err := accum.ValidateWeight(weight, gain); err != nil {
		return fmt.Errorf("Image.Accumulate: %w", err)
	}
	if x == nil || x.State() == accum.Empty {
		return nil
	}
	if x.State() == accum.Accumulating {
		return fmt.Errorf("Image.Accumulate: operand is accumulating: %w", accum.ErrInvalidState)
	}
	if err := indexed.ValidateConforms(im.values, x.values); err != nil {
		return fmt.Errorf("Image.Accumulate: %w", err)
	}

	if x.time != nil {
		im.EnsureTime()
	}
	buf, wbuf := im.values.Data(), im.weight.Data()
	xbuf := x.values.Data()
	for off := range buf {
		xw := x.weightAt(off)
		if xw == 0 {
			continue
		}
		cw := weight * xw
		buf[off] += cw * gain * xbuf[off]
		wbuf[off] += cw * gain * gain
		if x.time != nil && cw > 0 {
			im.time.Data()[off] += x.time.Data()[off]
		}
	}

	return nil
}

// EndAccumulation closes the cycle: each cell becomes sum/w. Cells with zero
// weight become invalid zeros. A noise plane, when present, is set to 1/√w.
// The image ends Empty if no cell received weight.
func (im *Image) EndAccumulation() error {
	hasData := false
	if im.cycle.State() == accum.Accumulating {
		for _, w := range im.weight.Data() {
			if w > 0 {
				hasData = true

				break
			}
		}
	}
	if err := im.cycle.End(hasData); err != nil {
		return fmt.Errorf("Image.%w", err)
	}

	buf, wbuf := im.values.Data(), im.weight.Data()
	for off, w := range wbuf {
		if w > 0 {
			buf[off] /= w
			_ = im.valid.SetValidAt(off, true)
		} else {
			buf[off], wbuf[off] = 0, 0
			_ = im.valid.SetValidAt(off, false)
		}
		if im.noise != nil {
			if w > 0 {
				im.noise.Data()[off] = 1 / math.Sqrt(w)
			} else {
				im.noise.Data()[off] = 0
			}
		}
	}

	return nil
}

// NoData zeroes every plane, invalidates every cell and moves to Empty.
func (im *Image) NoData() {
	im.cycle.Reset()
	clear(im.values.Data())
	for _, p := range im.planes() {
		clear(p.Data())
	}
	im.valid.DiscardAll()
}

// NewEmpty returns a cols×rows image in the Empty state: every cell invalid
// and weightless, so it adds nothing when it opens a reduction.
func NewEmpty(cols, rows int) (*Image, error) {
	im, err := New(cols, rows)
	if err != nil {
		return nil, err
	}
	im.NoData()

	return im, nil
}

// Factory returns an accum.Factory of empty cols×rows images for use with
// accum.Sum, accum.Average and accum.ParallelAverage.
// Errors: those of New, checked once here.
func Factory(cols, rows int) (accum.Factory[*Image], error) {
	if _, err := New(cols, rows); err != nil {
		return nil, err
	}

	return func() *Image {
		im, _ := NewEmpty(cols, rows)

		return im
	}, nil
}
