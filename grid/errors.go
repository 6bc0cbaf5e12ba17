// SPDX-License-Identifier: MIT

package grid

import "errors"

var (
	// ErrDimensionMismatch indicates vectors or indices of differing dimensionality.
	ErrDimensionMismatch = errors.New("grid: dimension mismatch")

	// ErrBadResolution indicates a zero, NaN or infinite resolution component.
	ErrBadResolution = errors.New("grid: resolution must be finite and non-zero")

	// ErrNonFinite indicates a NaN or infinite reference or coordinate.
	ErrNonFinite = errors.New("grid: non-finite value")

	// ErrBadDimension indicates a grid requested with fewer than one axis.
	ErrBadDimension = errors.New("grid: dimension must be > 0")
)
