// SPDX-License-Identifier: MIT

package fits

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadDataType indicates an unsupported BITPIX storage class.
	ErrBadDataType = errors.New("fits: unsupported data type")

	// ErrBadAxes indicates missing or non-positive image axes.
	ErrBadAxes = errors.New("fits: invalid axes")

	// ErrDataLength indicates data whose length does not match the axes.
	ErrDataLength = errors.New("fits: data length does not match axes")

	// ErrNotRepresentable indicates a value outside the storage class range.
	ErrNotRepresentable = errors.New("fits: value not representable")

	// ErrBadKeyword indicates an invalid header keyword.
	ErrBadKeyword = errors.New("fits: invalid keyword")

	// ErrReservedKeyword indicates a structural keyword managed by the encoder.
	ErrReservedKeyword = errors.New("fits: reserved keyword")

	// ErrBadValue indicates a header value of an unsupported Go type.
	ErrBadValue = errors.New("fits: unsupported header value")

	// ErrCardTooLong indicates a card whose value does not fit 80 columns.
	ErrCardTooLong = errors.New("fits: card exceeds 80 columns")

	// ErrBadStructure indicates an invalid HDU sequence (e.g. a second primary).
	ErrBadStructure = errors.New("fits: invalid HDU sequence")
)

// ConversionError reports a cell that cannot be stored in the requested type.
type ConversionError struct {
	Type     DataType // requested storage class
	Position []int    // cell position in NAXIS order (x first)
	Value    float64  // offending value
}

// Error implements error.
func (e *ConversionError) Error() string {
	pos := make([]string, len(e.Position))
	for i, p := range e.Position {
		pos[i] = fmt.Sprint(p)
	}

	return fmt.Sprintf("fits: value %g at (%s) not representable as %s",
		e.Value, strings.Join(pos, ","), e.Type)
}

// Unwrap returns ErrNotRepresentable.
func (e *ConversionError) Unwrap() error { return ErrNotRepresentable }
