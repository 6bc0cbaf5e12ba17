// SPDX-License-Identifier: MIT

// Package interp provides a piecewise-linear interpolator over (ordinate,
// value) samples, with a reader for simple two-column text tables.
//
// Table format: one sample per line, tokens separated by whitespace or
// commas. Blank lines and lines starting with '#' or ';' are skipped; text
// after a '#' is an inline comment. A line that does not yield two finite
// numbers is malformed: by default it is logged and skipped, with
// WithStrict(true) it aborts the read with a *LineError.
//
// Interpolation never extrapolates: ordinates outside the sample range
// fail with ErrOutOfRange.
package interp
