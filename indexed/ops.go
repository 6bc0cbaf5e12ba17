// SPDX-License-Identifier: MIT
// Package: indexed
//
// Purpose:
//   - Element-wise operations between conforming containers and whole-container
//     reductions, with a flat-buffer fast path for *Array operands.
//
// Design:
//   - Every binary operation runs ValidateConforms before touching data.
//   - Generic fallback walks index.ForEach, so each index of the shape is
//     visited exactly once in row-major order.
//   - The fast path produces identical results to the fallback.

package indexed

import (
	"math"

	"github.com/katalvlaran/skydata/index"
)

// CombineFunc merges a destination value with a source value.
type CombineFunc func(dst, src float64) float64

// asArrays returns both operands as *Array when possible.
func asArrays(dst, src Values) (*Array, *Array, bool) {
	da, ok := dst.(*Array)
	if !ok {
		return nil, nil, false
	}
	sa, ok := src.(*Array)
	if !ok {
		return nil, nil, false
	}

	return da, sa, true
}

// Combine sets dst[i] = fn(dst[i], src[i]) for every index i of the shared shape.
// MAIN DESCRIPTION:
//   - The general binary kernel behind AddValues/AddScaled/CopyValues.
//   - All-or-nothing: on error dst is left untouched. A generic dst that does
//     not report its numeric policy via ValidatesNaNInf may still reject a
//     write while results are committed.
//
// Implementation:
//   - Stage 1: ValidateConforms(dst, src).
//   - Stage 2: *Array fast path over the flat buffers (numeric policy of dst enforced).
//   - Stage 3: generic fallback via ForEach + Get, then a second ForEach + Set.
//   - Results are staged in a scratch buffer whenever a write could be rejected.
//
// Errors:
//   - ErrNilValues, ErrShapeMismatch, ErrNaNInf (dst policy), or any accessor error.
//
// Complexity:
//   - Time O(V), Space O(V) extra (O(1) for an *Array dst without numeric policy).
func Combine(dst, src Values, fn CombineFunc) error {
	if err := ValidateConforms(dst, src); err != nil {
		return opErrorf("Combine", err)
	}
	strict := validatesNaNInf(dst)

	if da, sa, ok := asArrays(dst, src); ok {
		if !strict {
			for i := range da.data {
				da.data[i] = fn(da.data[i], sa.data[i])
			}

			return nil
		}
		out := make([]float64, len(da.data))
		for i := range da.data {
			r := fn(da.data[i], sa.data[i])
			if isNonFinite(r) {
				return opErrorf("Combine", ErrNaNInf)
			}
			out[i] = r
		}
		copy(da.data, out)

		return nil
	}

	out := make([]float64, 0, dst.Capacity())
	err := index.ForEach(dst.Size(), func(idx *index.Index) error {
		a, err := dst.Get(idx)
		if err != nil {
			return err
		}
		b, err := src.Get(idx)
		if err != nil {
			return err
		}
		r := fn(a, b)
		if strict && isNonFinite(r) {
			return indexedErrorf("Values", "Set", idx, ErrNaNInf)
		}
		out = append(out, r)

		return nil
	})
	if err != nil {
		return opErrorf("Combine", err)
	}
	i := 0
	err = index.ForEach(dst.Size(), func(idx *index.Index) error {
		err := dst.Set(idx, out[i])
		i++

		return err
	})
	if err != nil {
		return opErrorf("Combine", err)
	}

	return nil
}

// validatesNaNInf reports whether v rejects non-finite writes.
func validatesNaNInf(v Values) bool {
	p, ok := v.(interface{ ValidatesNaNInf() bool })

	return ok && p.ValidatesNaNInf()
}

// AddValues sets dst[i] += src[i] for every index of the shared shape.
func AddValues(dst, src Values) error {
	return AddScaled(dst, src, 1)
}

// AddScaled sets dst[i] += factor*src[i] for every index of the shared shape.
func AddScaled(dst, src Values, factor float64) error {
	return Combine(dst, src, func(a, b float64) float64 { return a + factor*b })
}

// CopyValues sets dst[i] = src[i] for every index of the shared shape.
func CopyValues(dst, src Values) error {
	return Combine(dst, src, func(_, b float64) float64 { return b })
}

// Fill sets every cell of v to value.
func Fill(v Values, value float64) error {
	if err := ValidateNotNil(v); err != nil {
		return opErrorf("Fill", err)
	}
	if a, ok := v.(*Array); ok {
		if a.validateNaNInf && isNonFinite(value) {
			return opErrorf("Fill", ErrNaNInf)
		}
		for i := range a.data {
			a.data[i] = value
		}

		return nil
	}

	return index.ForEach(v.Size(), func(idx *index.Index) error { return v.Set(idx, value) })
}

// ScaleAll multiplies every cell of v by factor.
func ScaleAll(v Values, factor float64) error {
	if err := ValidateNotNil(v); err != nil {
		return opErrorf("ScaleAll", err)
	}

	return index.ForEach(v.Size(), func(idx *index.Index) error { return v.Scale(idx, factor) })
}

// Sum returns the sum of all cells of v. Invalid cells of a Validating
// container are skipped.
func Sum(v Values) (float64, error) {
	if err := ValidateNotNil(v); err != nil {
		return 0, opErrorf("Sum", err)
	}
	if a, ok := v.(*Array); ok {
		var s float64
		for _, x := range a.data {
			s += x
		}

		return s, nil
	}
	val, _ := v.(Validating)
	var s float64
	err := index.ForEach(v.Size(), func(idx *index.Index) error {
		if val != nil {
			ok, err := val.IsValid(idx)
			if err != nil || !ok {
				return err
			}
		}
		x, err := v.Get(idx)
		if err != nil {
			return err
		}
		s += x

		return nil
	})
	if err != nil {
		return 0, opErrorf("Sum", err)
	}

	return s, nil
}

// AllClose reports whether a and b conform and |a[i]-b[i]| ≤ eps everywhere.
// eps defaults to DefaultEpsilon; override with WithEpsilon. Two NaNs compare equal.
func AllClose(a, b Values, opts ...Option) (bool, error) {
	if err := ValidateConforms(a, b); err != nil {
		return false, opErrorf("AllClose", err)
	}
	eps := gatherOptions(opts...).eps
	same := true
	err := index.ForEach(a.Size(), func(idx *index.Index) error {
		x, err := a.Get(idx)
		if err != nil {
			return err
		}
		y, err := b.Get(idx)
		if err != nil {
			return err
		}
		if math.IsNaN(x) && math.IsNaN(y) {
			return nil
		}
		if !(math.Abs(x-y) <= eps) {
			same = false
			return errStop
		}

		return nil
	})
	if err != nil && err != errStop {
		return false, opErrorf("AllClose", err)
	}

	return same, nil
}
