// SPDX-License-Identifier: MIT

package interp

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewSamples indicates fewer than two samples.
	ErrTooFewSamples = errors.New("interp: need at least two samples")

	// ErrDuplicateOrdinate indicates two samples sharing an ordinate.
	ErrDuplicateOrdinate = errors.New("interp: duplicate ordinate")

	// ErrNonFinite indicates a NaN or infinite ordinate or value.
	ErrNonFinite = errors.New("interp: non-finite number")

	// ErrOutOfRange indicates an ordinate outside the sample range.
	ErrOutOfRange = errors.New("interp: ordinate out of range")

	// ErrMalformedLine indicates a table line that does not hold a sample.
	ErrMalformedLine = errors.New("interp: malformed line")

	// ErrMissingColumn indicates a line with fewer tokens than the selected columns need.
	ErrMissingColumn = errors.New("interp: missing column")
)

// LineError reports a malformed table line. It matches both
// ErrMalformedLine and its cause under errors.Is.
type LineError struct {
	Line int    // 1-based line number
	Text string // raw line
	Err  error  // cause
}

// Error implements error.
func (e *LineError) Error() string {
	return fmt.Sprintf("interp: line %d %q: %v", e.Line, e.Text, e.Err)
}

// Unwrap exposes ErrMalformedLine and the cause.
func (e *LineError) Unwrap() []error { return []error{ErrMalformedLine, e.Err} }
