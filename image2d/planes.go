// SPDX-License-Identifier: MIT

package image2d

import (
	"math"

	"github.com/katalvlaran/skydata/accum"
	"github.com/katalvlaran/skydata/indexed"
)

// Weighted2D is an image carrying a per-cell weight plane.
type Weighted2D interface {
	HasWeights() bool
	Weight(x, y int) (float64, error)
	SetWeight(x, y int, w float64) error
}

// Noise2D is an image carrying a per-cell rms noise plane.
type Noise2D interface {
	HasNoise() bool
	Noise(x, y int) (float64, error)
	SetNoise(x, y int, rms float64) error
}

// Timed2D is an image carrying a per-cell exposure-time plane.
type Timed2D interface {
	HasTime() bool
	Time(x, y int) (float64, error)
	SetTime(x, y int, t float64) error
}

var (
	_ Weighted2D = (*Image)(nil)
	_ Noise2D    = (*Image)(nil)
	_ Timed2D    = (*Image)(nil)
)

// newPlane allocates a plane of the image shape filled with v.
func (im *Image) newPlane(v float64) *indexed.Array {
	p, _ := indexed.NewArray(im.Size()) // shape already validated by the value plane
	if v != 0 {
		buf := p.Data()
		for i := range buf {
			buf[i] = v
		}
	}

	return p
}

// planes returns the optional planes that are present.
func (im *Image) planes() []*indexed.Array {
	out := make([]*indexed.Array, 0, 3)
	for _, p := range []*indexed.Array{im.weight, im.noise, im.time} {
		if p != nil {
			out = append(out, p)
		}
	}

	return out
}

func (im *Image) planeGet(method string, p *indexed.Array, x, y int) (float64, error) {
	off, err := im.offset(method, x, y)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, imageErrorf(method, x, y, ErrNoPlane)
	}

	return p.Data()[off], nil
}

func (im *Image) planeSet(method string, p *indexed.Array, x, y int, v float64) error {
	off, err := im.offset(method, x, y)
	if err != nil {
		return err
	}
	if p == nil {
		return imageErrorf(method, x, y, ErrNoPlane)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return imageErrorf(method, x, y, ErrBadValue)
	}
	p.Data()[off] = v

	return nil
}

// HasWeights reports whether a weight plane is present.
func (im *Image) HasWeights() bool { return im.weight != nil }

// EnsureWeights adds a weight plane of ones if none is present.
func (im *Image) EnsureWeights() {
	if im.weight == nil {
		im.weight = im.newPlane(1)
	}
}

// DropWeights removes the weight plane. It is a no-op during an open cycle,
// which needs the plane for its running weights.
func (im *Image) DropWeights() {
	if im.cycle.State() != accum.Accumulating {
		im.weight = nil
	}
}

// WeightPlane returns the live weight plane.
func (im *Image) WeightPlane() (*indexed.Array, error) {
	if im.weight == nil {
		return nil, ErrNoPlane
	}

	return im.weight, nil
}

// Weight returns the cell weight. Errors: ErrNoPlane, indexed.ErrOutOfRange.
func (im *Image) Weight(x, y int) (float64, error) {
	return im.planeGet("Weight", im.weight, x, y)
}

// SetWeight sets the cell weight (≥ 0, finite).
// Errors: ErrNoPlane, ErrBadValue, indexed.ErrOutOfRange.
func (im *Image) SetWeight(x, y int, w float64) error {
	return im.planeSet("SetWeight", im.weight, x, y, w)
}

// HasNoise reports whether a noise plane is present.
func (im *Image) HasNoise() bool { return im.noise != nil }

// EnsureNoise adds a zero noise plane if none is present.
func (im *Image) EnsureNoise() {
	if im.noise == nil {
		im.noise = im.newPlane(0)
	}
}

// DropNoise removes the noise plane.
func (im *Image) DropNoise() { im.noise = nil }

// NoisePlane returns the live noise plane.
func (im *Image) NoisePlane() (*indexed.Array, error) {
	if im.noise == nil {
		return nil, ErrNoPlane
	}

	return im.noise, nil
}

// Noise returns the cell rms noise.
func (im *Image) Noise(x, y int) (float64, error) {
	return im.planeGet("Noise", im.noise, x, y)
}

// SetNoise sets the cell rms noise (≥ 0, finite).
func (im *Image) SetNoise(x, y int, rms float64) error {
	return im.planeSet("SetNoise", im.noise, x, y, rms)
}

// HasTime reports whether an exposure-time plane is present.
func (im *Image) HasTime() bool { return im.time != nil }

// EnsureTime adds a zero exposure-time plane if none is present.
func (im *Image) EnsureTime() {
	if im.time == nil {
		im.time = im.newPlane(0)
	}
}

// DropTime removes the exposure-time plane.
func (im *Image) DropTime() { im.time = nil }

// TimePlane returns the live exposure-time plane.
func (im *Image) TimePlane() (*indexed.Array, error) {
	if im.time == nil {
		return nil, ErrNoPlane
	}

	return im.time, nil
}

// Time returns the cell exposure time.
func (im *Image) Time(x, y int) (float64, error) {
	return im.planeGet("Time", im.time, x, y)
}

// SetTime sets the cell exposure time (≥ 0, finite).
func (im *Image) SetTime(x, y int, t float64) error {
	return im.planeSet("SetTime", im.time, x, y, t)
}

// weightAt is the weight a valid cell carries into an accumulation: the
// weight plane if present, else 1/σ² from a positive noise, else 1.
// Invalid cells weigh nothing.
func (im *Image) weightAt(off int) float64 {
	if !im.valid.ValidAt(off) {
		return 0
	}
	if im.weight != nil {
		return im.weight.Data()[off]
	}
	if im.noise != nil {
		if s := im.noise.Data()[off]; s > 0 {
			return 1 / (s * s)
		}
	}

	return 1
}
