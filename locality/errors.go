// SPDX-License-Identifier: MIT

package locality

import "errors"

var (
	// ErrDimensionMismatch indicates points of differing dimensionality.
	ErrDimensionMismatch = errors.New("locality: dimension mismatch")

	// ErrNilRecord indicates a nil *Data argument.
	ErrNilRecord = errors.New("locality: nil record")

	// ErrNoBlender indicates a record built without a blend strategy.
	ErrNoBlender = errors.New("locality: nil blender")

	// ErrBadDistance indicates a negative or NaN match radius.
	ErrBadDistance = errors.New("locality: invalid distance")

	// ErrBadWeight indicates a negative or non-finite relative weight.
	ErrBadWeight = errors.New("locality: invalid relative weight")

	// ErrNoMatch is returned by Nearest when no record lies within the radius.
	ErrNoMatch = errors.New("locality: no match")
)
