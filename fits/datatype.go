// SPDX-License-Identifier: MIT

package fits

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DataType is a FITS storage class; its value is the BITPIX keyword.
type DataType int

const (
	Uint8   DataType = 8
	Int16   DataType = 16
	Int32   DataType = 32
	Int64   DataType = 64
	Float32 DataType = -32
	Float64 DataType = -64
)

// Bitpix returns the BITPIX keyword value.
func (t DataType) Bitpix() int { return int(t) }

// Valid reports whether t is one of the six FITS storage classes.
func (t DataType) Valid() bool {
	switch t {
	case Uint8, Int16, Int32, Int64, Float32, Float64:
		return true
	}

	return false
}

// IsFloat reports whether t is a floating-point class.
func (t DataType) IsFloat() bool { return t < 0 }

// Size returns the number of bytes per value.
func (t DataType) Size() int {
	if t < 0 {
		return int(-t) / 8
	}

	return int(t) / 8
}

// String returns the Go-style name of the class.
func (t DataType) String() string {
	switch t {
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}

	return fmt.Sprintf("DataType(%d)", int(t))
}

// ParseDataType accepts a Go-style name ("float32") or a BITPIX value ("-32").
func ParseDataType(s string) (DataType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range []DataType{Uint8, Int16, Int32, Int64, Float32, Float64} {
		if s == t.String() {
			return t, nil
		}
	}
	switch s {
	case "byte":
		return Uint8, nil
	case "float", "single":
		return Float32, nil
	case "double":
		return Float64, nil
	}
	if n, err := strconv.Atoi(s); err == nil && DataType(n).Valid() {
		return DataType(n), nil
	}

	return 0, fmt.Errorf("ParseDataType(%q): %w", s, ErrBadDataType)
}

// Blank returns the reserved BLANK value of an integer class. Valid data
// never takes this value. Floating-point classes use NaN instead.
func (t DataType) Blank() int64 {
	switch t {
	case Uint8:
		return math.MaxUint8
	case Int16:
		return math.MinInt16
	case Int32:
		return math.MinInt32
	case Int64:
		return math.MinInt64
	}

	return 0
}

// bounds returns the representable range for valid (non-blank) values.
func (t DataType) bounds() (lo, hi float64) {
	switch t {
	case Uint8:
		return 0, math.MaxUint8 - 1
	case Int16:
		return math.MinInt16 + 1, math.MaxInt16
	case Int32:
		return math.MinInt32 + 1, math.MaxInt32
	case Int64:
		// float64 cannot hold MaxInt64 exactly; stay inside the exact range.
		return -(1 << 63) + 1024, (1 << 63) - 1024
	case Float32:
		return -math.MaxFloat32, math.MaxFloat32
	}

	return -math.MaxFloat64, math.MaxFloat64
}

// convert maps v into the storage class. NaN becomes the blank marker and
// ±Inf passes through both float classes. Integer classes round half away
// from zero. ok is false when v is out of range.
func (t DataType) convert(v float64) (float64, bool) {
	if math.IsNaN(v) {
		if t.IsFloat() {
			return v, true
		}

		return float64(t.Blank()), true
	}
	if math.IsInf(v, 0) && t.IsFloat() {
		return v, true
	}
	if !t.IsFloat() {
		v = math.Round(v)
	}
	lo, hi := t.bounds()
	if v < lo || v > hi {
		return 0, false
	}

	return v, true
}
