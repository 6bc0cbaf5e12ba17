// SPDX-License-Identifier: MIT

package interp

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sort"
)

// Sample is one (ordinate, value) pair.
type Sample struct {
	X float64
	Y float64
}

// Simple interpolates linearly between samples sorted by ordinate.
// It is immutable after construction and safe for concurrent reads.
type Simple struct {
	samples []Sample
}

// New sorts a copy of samples by ordinate and validates it.
// Errors: ErrTooFewSamples, ErrNonFinite, ErrDuplicateOrdinate.
// Complexity: Time O(n log n), Space O(n).
func New(samples []Sample) (*Simple, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("New(%d samples): %w", len(samples), ErrTooFewSamples)
	}
	s := slices.Clone(samples)
	for i, p := range s {
		if !finite(p.X) || !finite(p.Y) {
			return nil, fmt.Errorf("New: sample %d (%g, %g): %w", i, p.X, p.Y, ErrNonFinite)
		}
	}
	slices.SortStableFunc(s, func(a, b Sample) int { return cmp.Compare(a.X, b.X) })
	for i := 1; i < len(s); i++ {
		if s[i].X == s[i-1].X {
			return nil, fmt.Errorf("New: x=%g: %w", s[i].X, ErrDuplicateOrdinate)
		}
	}

	return &Simple{samples: s}, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Len returns the number of samples.
func (s *Simple) Len() int { return len(s.samples) }

// Range returns the smallest and largest ordinate.
func (s *Simple) Range() (lo, hi float64) {
	return s.samples[0].X, s.samples[len(s.samples)-1].X
}

// Samples returns a copy of the sorted samples.
func (s *Simple) Samples() []Sample { return slices.Clone(s.samples) }

// Value interpolates at x. Sample ordinates return their value exactly.
// Errors: ErrOutOfRange outside [lo, hi] or for NaN.
// Complexity: Time O(log n).
func (s *Simple) Value(x float64) (float64, error) {
	lo, hi := s.Range()
	if !(x >= lo && x <= hi) {
		return 0, fmt.Errorf("Value(%g) outside [%g, %g]: %w", x, lo, hi, ErrOutOfRange)
	}
	i := sort.Search(len(s.samples), func(i int) bool { return s.samples[i].X >= x })
	b := s.samples[i]
	if b.X == x {
		return b.Y, nil
	}
	a := s.samples[i-1] // i > 0 since x > lo
	t := (x - a.X) / (b.X - a.X)

	return a.Y + t*(b.Y-a.Y), nil
}

// Values interpolates at every x; the first failure aborts.
func (s *Simple) Values(xs []float64) ([]float64, error) {
	out := make([]float64, len(xs))
	for i, x := range xs {
		v, err := s.Value(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}
