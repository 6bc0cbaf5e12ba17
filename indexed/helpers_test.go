// SPDX-License-Identifier: MIT
// Package indexed_test contains test helpers.
//
// Purpose:
//   • Provide small, deterministic fixtures for containers and kernels.
//   • Force the generic (non-*Array) code paths where a test needs them.

package indexed_test

import (
	"testing"

	"github.com/katalvlaran/skydata/index"
	"github.com/katalvlaran/skydata/indexed"
)

// hide wraps any Values to hide its concrete type from type assertions,
// forcing the generic fallback instead of the *Array fast path.
type hide struct{ indexed.Values }

// counting wraps Values and counts Get calls per index.
type counting struct {
	indexed.Values
	gets map[string]int
}

func newCounting(v indexed.Values) *counting {
	return &counting{Values: v, gets: make(map[string]int)}
}

func (c *counting) Get(idx *index.Index) (float64, error) {
	c.gets[idx.String()]++

	return c.Values.Get(idx)
}

// MustArray allocates a zero *Array of the given shape or fails the test.
func MustArray(t *testing.T, dims ...int) *indexed.Array {
	t.Helper()
	a, err := indexed.NewArray(index.Of(dims...))
	if err != nil {
		t.Fatalf("NewArray(%v): %v", dims, err)
	}

	return a
}

// NewFilledArray builds an *Array of the given shape from row-major values.
func NewFilledArray(t *testing.T, vals []float64, dims ...int) *indexed.Array {
	t.Helper()
	a, err := indexed.NewArrayFrom(index.Of(dims...), vals)
	if err != nil {
		t.Fatalf("NewArrayFrom(%v): %v", dims, err)
	}

	return a
}

// MustGet reads a cell or fails the test.
func MustGet(t *testing.T, v indexed.Values, at ...int) float64 {
	t.Helper()
	x, err := v.Get(index.Of(at...))
	if err != nil {
		t.Fatalf("Get(%v): %v", at, err)
	}

	return x
}
