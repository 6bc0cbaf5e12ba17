// SPDX-License-Identifier: MIT

package image2d

import (
	"errors"
	"fmt"
)

var (
	// ErrBadSize indicates a negative image extent.
	ErrBadSize = errors.New("image2d: invalid size")

	// ErrNoPlane indicates access to an optional plane the image does not carry.
	ErrNoPlane = errors.New("image2d: plane not present")

	// ErrBadRange indicates an invalid valid-range (lo > hi or NaN bound).
	ErrBadRange = errors.New("image2d: invalid range")

	// ErrBadPrecision indicates a negative or non-finite precision.
	ErrBadPrecision = errors.New("image2d: invalid precision")

	// ErrBadValue indicates a negative or non-finite plane value.
	ErrBadValue = errors.New("image2d: invalid plane value")

	// ErrNotFinalized indicates an export attempted during an open cycle.
	ErrNotFinalized = errors.New("image2d: accumulation in progress")
)

// imageErrorf wraps err with the method and cell position.
func imageErrorf(method string, x, y int, err error) error {
	return fmt.Errorf("Image.%s(%d,%d): %w", method, x, y, err)
}
