// SPDX-License-Identifier: MIT

// Package index provides Index, the N-dimensional integer coordinate used as
// the key of every indexed container in skydata.
//
// What & Why:
//
//	An Index has a fixed dimensionality chosen at construction. Components are
//	addressed per dimension with bounds-checked accessors, and the index
//	supports in-place element-wise arithmetic (Add, Subtract, Multiply, Ratio,
//	Modulo) against another index of the same dimension. Used as a size, an
//	Index describes a shape; Volume is then the number of addressable cells and
//	Offset/FromOffset map between indices and row-major storage offsets.
//
// Errors:
//
//	Accessors never clamp. A dimension outside [0, Dimension()) yields
//	ErrOutOfRange; operands of different dimensionality yield
//	ErrDimensionMismatch. All sentinels are matched with errors.Is.
//
// Complexity:
//
//	Per-component operations are O(1); whole-index operations are O(D) for
//	dimension D; ForEach is O(Volume·D).
package index
