// SPDX-License-Identifier: MIT
// Package: indexed
//
// Purpose:
//  - Provide a single, canonical source of truth for common container checks.
//  - Keep kernels minimal by delegating nil/shape checks here.
//  - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Note:
//  - Composite validators follow a fixed sequence (NotNil → Conforms).

package indexed

import (
	"fmt"

	"github.com/katalvlaran/skydata/index"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the container reference is non-nil.
// Returns ErrNilValues if e == nil. Complexity: O(1).
func ValidateNotNil(e Entries) error {
	if e == nil {
		return validatorErrorf("ValidateNotNil", ErrNilValues)
	}

	return nil
}

// ValidateConforms ensures a and b are non-nil and share the same shape.
// This is the mandatory guard of every binary container operation.
// Errors: ErrNilValues, ErrShapeMismatch. Complexity: O(D).
func ValidateConforms(a, b Entries) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateConforms", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateConforms", err)
	}
	if !a.ConformsTo(b.Size()) {
		return validatorErrorf(fmt.Sprintf("ValidateConforms %s vs %s", a.Size(), b.Size()), ErrShapeMismatch)
	}

	return nil
}

// ValidateIndex ensures idx addresses a cell of e.
// Errors: ErrNilValues, ErrOutOfRange. Complexity: O(D).
func ValidateIndex(e Entries, idx *index.Index) error {
	if err := ValidateNotNil(e); err != nil {
		return validatorErrorf("ValidateIndex", err)
	}
	if !e.ContainsIndex(idx) {
		return validatorErrorf(fmt.Sprintf("ValidateIndex %v", idx), ErrOutOfRange)
	}

	return nil
}

// Conforms reports whether a and b are non-nil and share the same shape.
func Conforms(a, b Entries) bool { return ValidateConforms(a, b) == nil }
