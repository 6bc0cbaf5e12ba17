// SPDX-License-Identifier: MIT

package index

import (
	"errors"
	"fmt"
)

var (
	// ErrBadDimension is returned when an index is requested with dimension < 1.
	ErrBadDimension = errors.New("index: dimension must be > 0")

	// ErrOutOfRange indicates a dimension (or offset) outside its valid range.
	ErrOutOfRange = errors.New("index: out of range")

	// ErrDimensionMismatch indicates operands of different dimensionality.
	ErrDimensionMismatch = errors.New("index: dimension mismatch")

	// ErrDivideByZero is returned by Ratio and Modulo on a zero divisor component.
	ErrDivideByZero = errors.New("index: division by zero")

	// ErrBadShape is returned when an index used as a size has a component < 0.
	ErrBadShape = errors.New("index: invalid shape")
)

// indexErrorf attaches the method tag and dimension to a sentinel.
func indexErrorf(method string, dim int, err error) error {
	return fmt.Errorf("Index.%s(%d): %w", method, dim, err)
}
