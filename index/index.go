// SPDX-License-Identifier: MIT

package index

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxValue     = "Value"
	ctxSetValue  = "SetValue"
	ctxIncrement = "Increment"
	ctxDecrement = "Decrement"
	ctxReverseTo = "ReverseTo"
	ctxAdd       = "Add"
	ctxSubtract  = "Subtract"
	ctxMultiply  = "Multiply"
	ctxRatio     = "Ratio"
	ctxModulo    = "Modulo"
	ctxDistance  = "Distance"
	ctxToVector  = "ToVector"
)

// Index is an N-dimensional integer coordinate.
//   - v holds one component per dimension; len(v) never changes after construction.
//
// The zero value is not usable; build indices with New or Of.
type Index struct {
	v []int // components, len == dimension
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Index)(nil)

// New creates a zero index with dim components.
// Returns ErrBadDimension when dim < 1.
// Complexity: O(dim).
func New(dim int) (*Index, error) {
	if dim < 1 {
		return nil, fmt.Errorf("index.New(%d): %w", dim, ErrBadDimension)
	}

	return &Index{v: make([]int, dim)}, nil
}

// Of builds an index from explicit components; the dimension is len(values).
// Of panics when called without values (programmer error).
func Of(values ...int) *Index {
	if len(values) == 0 {
		panic("index: Of requires at least one component")
	}
	v := make([]int, len(values))
	copy(v, values)

	return &Index{v: v}
}

// Dimension returns the number of components. Complexity: O(1).
func (x *Index) Dimension() int { return len(x.v) }

// checkDim validates 0 ≤ dim < Dimension().
func (x *Index) checkDim(dim int) error {
	if dim < 0 || dim >= len(x.v) {
		return ErrOutOfRange
	}

	return nil
}

// checkSame validates that o is non-nil and has the same dimension.
func (x *Index) checkSame(o *Index) error {
	if o == nil || len(o.v) != len(x.v) {
		return ErrDimensionMismatch
	}

	return nil
}

// Value returns the component for dim.
// MAIN DESCRIPTION:
//   - Bounds-checked component read.
//
// Errors:
//   - ErrOutOfRange when dim is outside [0, Dimension()).
//
// Complexity:
//   - Time O(1), Space O(1).
func (x *Index) Value(dim int) (int, error) {
	if err := x.checkDim(dim); err != nil {
		return 0, indexErrorf(ctxValue, dim, err)
	}

	return x.v[dim], nil
}

// SetValue assigns the component for dim.
// MAIN DESCRIPTION:
//   - Bounds-checked component write; never clamps.
//
// Errors:
//   - ErrOutOfRange when dim is outside [0, Dimension()).
//
// Complexity:
//   - Time O(1), Space O(1).
func (x *Index) SetValue(dim, value int) error {
	if err := x.checkDim(dim); err != nil {
		return indexErrorf(ctxSetValue, dim, err)
	}
	x.v[dim] = value

	return nil
}

// Fill sets every component to value.
func (x *Index) Fill(value int) {
	for i := range x.v {
		x.v[i] = value
	}
}

// Zero is Fill(0).
func (x *Index) Zero() { x.Fill(0) }

// Increment adds one to the component for dim and returns the new value.
func (x *Index) Increment(dim int) (int, error) {
	if err := x.checkDim(dim); err != nil {
		return 0, indexErrorf(ctxIncrement, dim, err)
	}
	x.v[dim]++

	return x.v[dim], nil
}

// Decrement subtracts one from the component for dim and returns the new value.
func (x *Index) Decrement(dim int) (int, error) {
	if err := x.checkDim(dim); err != nil {
		return 0, indexErrorf(ctxDecrement, dim, err)
	}
	x.v[dim]--

	return x.v[dim], nil
}

// ReverseTo writes the dimension-reversed copy of x into dst.
// MAIN DESCRIPTION:
//   - dst[i] = x[D-1-i] for i in [0, D).
//
// Implementation:
//   - Stage 1: check dst has the same dimension.
//   - Stage 2: read into a scratch copy first so ReverseTo(x) is safe.
//
// Errors:
//   - ErrDimensionMismatch when dst is nil or differently sized.
//
// Complexity:
//   - Time O(D), Space O(D).
func (x *Index) ReverseTo(dst *Index) error {
	if err := x.checkSame(dst); err != nil {
		return indexErrorf(ctxReverseTo, x.Dimension(), err)
	}
	src := x.Values()
	n := len(src)
	for i := 0; i < n; i++ {
		dst.v[i] = src[n-1-i]
	}

	return nil
}

// Reversed returns a new index holding the components of x in reverse order.
func (x *Index) Reversed() *Index {
	out := &Index{v: make([]int, len(x.v))}
	_ = x.ReverseTo(out) // same dimension by construction

	return out
}

// Copy returns an independent copy of x.
func (x *Index) Copy() *Index {
	return Of(x.v...)
}

// CopyFrom overwrites x with the components of o.
func (x *Index) CopyFrom(o *Index) error {
	if err := x.checkSame(o); err != nil {
		return fmt.Errorf("Index.CopyFrom: %w", err)
	}
	copy(x.v, o.v)

	return nil
}

// Values returns a copy of the components.
func (x *Index) Values() []int {
	out := make([]int, len(x.v))
	copy(out, x.v)

	return out
}

// Equal reports whether o has the same dimension and components.
func (x *Index) Equal(o *Index) bool {
	if o == nil || len(o.v) != len(x.v) {
		return false
	}
	for i := range x.v {
		if x.v[i] != o.v[i] {
			return false
		}
	}

	return true
}

// elementwise applies op to each pair of components in place.
// The first failing component aborts the operation with x unchanged.
func (x *Index) elementwise(method string, o *Index, op func(a, b int) (int, error)) error {
	if err := x.checkSame(o); err != nil {
		return indexErrorf(method, x.Dimension(), err)
	}
	out := make([]int, len(x.v))
	for i := range x.v {
		r, err := op(x.v[i], o.v[i])
		if err != nil {
			return indexErrorf(method, i, err)
		}
		out[i] = r
	}
	copy(x.v, out)

	return nil
}

// Add sets x[i] += o[i].
func (x *Index) Add(o *Index) error {
	return x.elementwise(ctxAdd, o, func(a, b int) (int, error) { return a + b, nil })
}

// Subtract sets x[i] -= o[i].
func (x *Index) Subtract(o *Index) error {
	return x.elementwise(ctxSubtract, o, func(a, b int) (int, error) { return a - b, nil })
}

// Multiply sets x[i] *= o[i].
func (x *Index) Multiply(o *Index) error {
	return x.elementwise(ctxMultiply, o, func(a, b int) (int, error) { return a * b, nil })
}

// Ratio sets x[i] /= o[i] using integer division (truncated toward zero).
// Returns ErrDivideByZero, leaving x untouched, if any o[i] == 0.
func (x *Index) Ratio(o *Index) error {
	return x.elementwise(ctxRatio, o, func(a, b int) (int, error) {
		if b == 0 {
			return 0, ErrDivideByZero
		}

		return a / b, nil
	})
}

// Modulo sets x[i] %= o[i].
// Returns ErrDivideByZero, leaving x untouched, if any o[i] == 0.
func (x *Index) Modulo(o *Index) error {
	return x.elementwise(ctxModulo, o, func(a, b int) (int, error) {
		if b == 0 {
			return 0, ErrDivideByZero
		}

		return a % b, nil
	})
}

// Distance returns the Euclidean distance between x and o.
// Complexity: O(D).
func (x *Index) Distance(o *Index) (float64, error) {
	if err := x.checkSame(o); err != nil {
		return 0, indexErrorf(ctxDistance, x.Dimension(), err)
	}
	var sum float64
	for i := range x.v {
		d := float64(x.v[i] - o.v[i])
		sum += d * d
	}

	return math.Sqrt(sum), nil
}

// Volume returns the product of all components, i.e. the number of cells
// addressed by x when x is used as a size. The product is not overflow
// checked; sizes that passed ValidateShape never wrap.
func (x *Index) Volume() int {
	vol := 1
	for _, c := range x.v {
		vol *= c
	}

	return vol
}

// ToVector projects x into dst as floating-point values.
// Returns ErrDimensionMismatch when len(dst) != Dimension().
func (x *Index) ToVector(dst []float64) error {
	if len(dst) != len(x.v) {
		return indexErrorf(ctxToVector, len(dst), ErrDimensionMismatch)
	}
	for i, c := range x.v {
		dst[i] = float64(c)
	}

	return nil
}

// String renders the index as "(a, b, c)".
func (x *Index) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, c := range x.v {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(c))
	}
	b.WriteByte(')')

	return b.String()
}
