// SPDX-License-Identifier: MIT

package fits

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

// HDU is an image header-data unit ready for encoding.
//   - Axes are in NAXIS order: Axes[0] is the fastest-varying (x) axis.
//   - data holds values already converted to Type (rounded, blanks applied).
type HDU struct {
	Header Header

	primary bool
	typ     DataType
	axes    []int
	data    []float64
}

// NewImageHDU converts row-major data (x fastest) into an image extension.
// MAIN DESCRIPTION:
//   - NaN cells become blanks; every other value must be representable in t.
//
// Errors:
//   - ErrBadDataType, ErrBadAxes, ErrDataLength.
//   - *ConversionError (unwraps to ErrNotRepresentable) for the first bad cell.
//
// Complexity:
//   - Time O(n), Space O(n).
func NewImageHDU(t DataType, axes []int, data []float64) (*HDU, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("NewImageHDU(%d): %w", int(t), ErrBadDataType)
	}
	if len(axes) == 0 {
		return nil, fmt.Errorf("NewImageHDU: %w", ErrBadAxes)
	}
	n := 1
	for i, a := range axes {
		if a <= 0 {
			return nil, fmt.Errorf("NewImageHDU: NAXIS%d=%d: %w", i+1, a, ErrBadAxes)
		}
		if n > math.MaxInt/a {
			return nil, fmt.Errorf("NewImageHDU: NAXIS%d=%d: too many cells: %w", i+1, a, ErrBadAxes)
		}
		n *= a
	}
	if len(data) != n {
		return nil, fmt.Errorf("NewImageHDU: have %d values, want %d: %w", len(data), n, ErrDataLength)
	}

	out := make([]float64, n)
	for off, v := range data {
		c, ok := t.convert(v)
		if !ok {
			return nil, &ConversionError{Type: t, Position: position(axes, off), Value: v}
		}
		out[off] = c
	}

	return &HDU{typ: t, axes: append([]int(nil), axes...), data: out}, nil
}

// EmptyPrimary returns a primary HDU with no data.
func EmptyPrimary() *HDU { return &HDU{primary: true, typ: Uint8} }

func position(axes []int, off int) []int {
	pos := make([]int, len(axes))
	for i, a := range axes {
		pos[i] = off % a
		off /= a
	}

	return pos
}

// Type returns the storage class.
func (h *HDU) Type() DataType { return h.typ }

// Axes returns a copy of the axis lengths in NAXIS order.
func (h *HDU) Axes() []int { return append([]int(nil), h.axes...) }

// IsPrimary reports whether the HDU is encoded as the primary HDU.
func (h *HDU) IsPrimary() bool { return h.primary }

// AsPrimary marks the HDU to be written as the primary HDU.
func (h *HDU) AsPrimary() *HDU {
	h.primary = true

	return h
}

// structural returns the encoder-owned cards in mandatory order.
func (h *HDU) structural() []Card {
	var cards []Card
	if h.primary {
		cards = append(cards, Card{Key: "SIMPLE", Value: true, Comment: "conforms to FITS standard"})
	} else {
		cards = append(cards, Card{Key: "XTENSION", Value: "IMAGE", Comment: "image extension"})
	}
	cards = append(cards,
		Card{Key: "BITPIX", Value: h.typ.Bitpix(), Comment: h.typ.String()},
		Card{Key: "NAXIS", Value: len(h.axes)},
	)
	for i, a := range h.axes {
		cards = append(cards, Card{Key: fmt.Sprintf("NAXIS%d", i+1), Value: a})
	}
	if h.primary {
		cards = append(cards, Card{Key: "EXTEND", Value: true})
	} else {
		cards = append(cards, Card{Key: "PCOUNT", Value: 0}, Card{Key: "GCOUNT", Value: 1})
	}
	if len(h.axes) > 0 && !h.typ.IsFloat() {
		cards = append(cards, Card{Key: "BLANK", Value: h.typ.Blank(), Comment: "invalid cell marker"})
	}

	return cards
}

// WriteTo encodes the header and data blocks.
func (h *HDU) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}
	if err := h.writeHeader(cw); err != nil {
		return cw.n, fmt.Errorf("HDU.WriteTo: %w", err)
	}
	if err := h.writeData(cw); err != nil {
		return cw.n, fmt.Errorf("HDU.WriteTo: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return cw.n, fmt.Errorf("HDU.WriteTo: %w", err)
	}

	return cw.n, nil
}

func (h *HDU) writeHeader(w io.Writer) error {
	cards := append(h.structural(), h.Header.cards...)
	var n int
	for _, c := range cards {
		s, err := c.Format()
		if err != nil {
			return err
		}
		if _, err = io.WriteString(w, s); err != nil {
			return err
		}
		n += cardLen
	}
	end := "END" + strings.Repeat(" ", cardLen-3)
	if _, err := io.WriteString(w, end); err != nil {
		return err
	}
	n += cardLen

	return pad(w, n, ' ')
}

func (h *HDU) writeData(w io.Writer) error {
	if len(h.data) == 0 {
		return nil
	}
	size := h.typ.Size()
	buf := make([]byte, 0, blockLen)
	for _, v := range h.data {
		switch h.typ {
		case Uint8:
			buf = append(buf, byte(v))
		case Int16:
			buf = binary.BigEndian.AppendUint16(buf, uint16(int16(v)))
		case Int32:
			buf = binary.BigEndian.AppendUint32(buf, uint32(int32(v)))
		case Int64:
			buf = binary.BigEndian.AppendUint64(buf, uint64(int64(v)))
		case Float32:
			buf = binary.BigEndian.AppendUint32(buf, math.Float32bits(float32(v)))
		case Float64:
			buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(v))
		}
		if len(buf)+size > cap(buf) {
			if _, err := w.Write(buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
	}
	if _, err := w.Write(buf); err != nil {
		return err
	}

	return pad(w, len(h.data)*size, 0)
}

// pad fills the last block of a section that is n bytes long.
func pad(w io.Writer, n int, fill byte) error {
	rem := n % blockLen
	if rem == 0 {
		return nil
	}
	b := make([]byte, blockLen-rem)
	for i := range b {
		b[i] = fill
	}
	_, err := w.Write(b)

	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}
