// SPDX-License-Identifier: MIT

// Package indexed defines the container contracts of skydata and their dense
// N-dimensional implementation.
//
// The contracts:
//
//   - Entries:    shape, capacity and index membership of a container.
//   - Values:     float64 cells keyed by *index.Index (Get/Set/Add/Scale/Clear).
//   - Validating: per-cell validity flag (IsValid/Discard).
//   - Resizable:  destructive reallocation to a new shape (SetSize).
//   - Overlayed:  non-owning back-reference to a base container.
//
// The implementations:
//
//   - Array:   owning row-major float64 storage with an optional finite-only
//     numeric policy (NaN/±Inf rejected by Set, on by default).
//   - Overlay: validity flags over any Values, kept in a roaring bitmap of
//     invalid row-major offsets; the base storage is not owned.
//
// Cross-container operations (AddValues, AddScaled, Combine, CopyValues,
// AllClose) always run ValidateConforms first and visit every index of the
// shared shape exactly once. Mismatched shapes are reported as
// ErrShapeMismatch; out-of-range indices as ErrOutOfRange. Nothing clamps.
//
// Concurrency: no type in this package is safe for concurrent mutation.
package indexed
