// SPDX-License-Identifier: MIT

// Package grid maps integer container indices to physical coordinates.
//
// A Grid is defined by a reference coordinate, the (possibly fractional)
// reference index at which that coordinate is located, and a per-axis
// resolution:
//
//	value[i] = reference[i] + (index[i] - referenceIndex[i]) * resolution[i]
//
// IndexOf is the exact algebraic inverse of ValueAt, so
// IndexOf(ValueAt(i)) == i up to floating-point rounding.
package grid
