// SPDX-License-Identifier: MIT

package image2d

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/skydata/accum"
	"github.com/katalvlaran/skydata/component"
	"github.com/katalvlaran/skydata/fits"
	"github.com/katalvlaran/skydata/indexed"
)

// CreateHDU exports the value plane as a FITS image extension of type t.
// MAIN DESCRIPTION:
//   - Valid cells are quantized to the precision and written as is; invalid
//     cells become NaN (float types) or BLANK (integer types).
//   - EXTNAME and BUNIT carry the name and unit; DATAMIN/DATAMAX the range
//     of the exported valid values.
//
// Errors:
//   - ErrNotFinalized during an open accumulation cycle.
//   - fits.ErrBadDataType, fits.ErrBadAxes (empty image).
//   - *fits.ConversionError when a value does not fit t; Position is (x, y).
func (im *Image) CreateHDU(t fits.DataType) (*fits.HDU, error) {
	hdu, err := im.planeHDU(t, im.values, true)
	if err != nil {
		return nil, fmt.Errorf("Image.CreateHDU(%s): %w", t, err)
	}
	if im.name != "" {
		if err = hdu.Header.Set("EXTNAME", im.name, ""); err != nil {
			return nil, fmt.Errorf("Image.CreateHDU(%s): %w", t, err)
		}
	}
	if im.unit != "" {
		if err = hdu.Header.Set("BUNIT", im.unit, "physical unit"); err != nil {
			return nil, fmt.Errorf("Image.CreateHDU(%s): %w", t, err)
		}
	}

	return hdu, nil
}

// CreateHDUs exports the value plane followed by every present optional
// plane (weight, noise, exposure), each as its own extension named by its
// component type. Plane cells follow the value plane's validity.
func (im *Image) CreateHDUs(t fits.DataType) ([]*fits.HDU, error) {
	first, err := im.CreateHDU(t)
	if err != nil {
		return nil, err
	}
	out := []*fits.HDU{first}
	for _, p := range []struct {
		kind  component.Type
		plane *indexed.Array
	}{
		{component.Weight, im.weight},
		{component.Noise, im.noise},
		{component.Exposure, im.time},
	} {
		if p.plane == nil {
			continue
		}
		hdu, err := im.planeHDU(t, p.plane, false)
		if err != nil {
			return nil, fmt.Errorf("Image.CreateHDUs(%s) %s: %w", t, p.kind, err)
		}
		name := strings.ToUpper(p.kind.String())
		if im.name != "" {
			name = im.name + "-" + name
		}
		if err = hdu.Header.Set("EXTNAME", name, ""); err != nil {
			return nil, fmt.Errorf("Image.CreateHDUs(%s): %w", t, err)
		}
		out = append(out, hdu)
	}

	return out, nil
}

// WriteFITS writes CreateHDUs(t) to path (gzip when path ends in ".gz").
func (im *Image) WriteFITS(path string, t fits.DataType) error {
	hdus, err := im.CreateHDUs(t)
	if err != nil {
		return err
	}

	return fits.WriteFile(path, hdus...)
}

// planeHDU converts one plane; quantize applies the precision (value plane only).
func (im *Image) planeHDU(t fits.DataType, plane *indexed.Array, quantize bool) (*fits.HDU, error) {
	if im.cycle.State() == accum.Accumulating {
		return nil, ErrNotFinalized
	}
	src := plane.Data()
	data := make([]float64, len(src))
	lo, hi := math.Inf(1), math.Inf(-1)
	for off, v := range src {
		if !im.valid.ValidAt(off) {
			data[off] = math.NaN()
			continue
		}
		if quantize {
			v = im.quantize(v)
		}
		data[off] = v
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	hdu, err := fits.NewImageHDU(t, []int{im.cols, im.rows}, data)
	if err != nil {
		return nil, err
	}
	if lo <= hi {
		if err = hdu.Header.Set("DATAMIN", lo, ""); err != nil {
			return nil, err
		}
		if err = hdu.Header.Set("DATAMAX", hi, ""); err != nil {
			return nil, err
		}
	}

	return hdu, nil
}
