// SPDX-License-Identifier: MIT

package fits

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	cardLen   = 80
	blockLen  = 2880
	keyLen    = 8
	valueCols = 20 // fixed-format value field width (columns 11..30)
)

// reserved keywords are written by the encoder from the HDU structure.
var reserved = map[string]bool{
	"SIMPLE": true, "XTENSION": true, "BITPIX": true, "NAXIS": true,
	"EXTEND": true, "PCOUNT": true, "GCOUNT": true, "BLANK": true, "END": true,
}

// Card is one 80-column header record.
//   - Value is bool, an integer type, float32/float64, string, or nil.
//   - A nil Value on COMMENT/HISTORY renders Comment as commentary text.
type Card struct {
	Key     string
	Value   any
	Comment string
}

// Header is an ordered list of user cards. Structural keywords are owned by
// the HDU and cannot be set here.
type Header struct {
	cards []Card
}

func isCommentary(key string) bool {
	return key == "COMMENT" || key == "HISTORY" || key == ""
}

func validateKey(key string) error {
	if len(key) > keyLen {
		return fmt.Errorf("%q: %w", key, ErrBadKeyword)
	}
	for _, r := range key {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%q: %w", key, ErrBadKeyword)
		}
	}
	if reserved[key] || strings.HasPrefix(key, "NAXIS") {
		return fmt.Errorf("%q: %w", key, ErrReservedKeyword)
	}

	return nil
}

// Set stores a keyword, replacing an earlier card with the same key.
// COMMENT and HISTORY cards are always appended.
// Errors: ErrBadKeyword, ErrReservedKeyword, ErrBadValue, ErrCardTooLong.
func (h *Header) Set(key string, value any, comment string) error {
	key = strings.ToUpper(strings.TrimSpace(key))
	if err := validateKey(key); err != nil {
		return fmt.Errorf("Header.Set: %w", err)
	}
	c := Card{Key: key, Value: value, Comment: comment}
	if _, err := c.Format(); err != nil {
		return fmt.Errorf("Header.Set: %w", err)
	}
	if !isCommentary(key) {
		for i := range h.cards {
			if h.cards[i].Key == key {
				h.cards[i] = c

				return nil
			}
		}
	}
	h.cards = append(h.cards, c)

	return nil
}

// AddComment appends a COMMENT card.
func (h *Header) AddComment(text string) error { return h.Set("COMMENT", nil, text) }

// AddHistory appends a HISTORY card.
func (h *Header) AddHistory(text string) error { return h.Set("HISTORY", nil, text) }

// Get returns the value of the first card with key.
func (h *Header) Get(key string) (any, bool) {
	key = strings.ToUpper(key)
	for _, c := range h.cards {
		if c.Key == key {
			return c.Value, true
		}
	}

	return nil, false
}

// Len returns the number of user cards.
func (h *Header) Len() int { return len(h.cards) }

// Cards returns a copy of the user cards in order.
func (h *Header) Cards() []Card { return append([]Card(nil), h.cards...) }

// Clone returns an independent copy.
func (h *Header) Clone() Header { return Header{cards: h.Cards()} }

// formatValue renders the fixed-format value field. Strings are left
// justified; everything else is right justified to column 30.
func formatValue(v any) (string, error) {
	var s string
	switch x := v.(type) {
	case bool:
		s = "F"
		if x {
			s = "T"
		}
	case int:
		s = strconv.Itoa(x)
	case int16:
		s = strconv.FormatInt(int64(x), 10)
	case int32:
		s = strconv.FormatInt(int64(x), 10)
	case int64:
		s = strconv.FormatInt(x, 10)
	case uint8:
		s = strconv.FormatUint(uint64(x), 10)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case string:
		return formatString(x), nil
	default:
		return "", fmt.Errorf("%T: %w", v, ErrBadValue)
	}

	return fmt.Sprintf("%*s", valueCols, s), nil
}

func formatFloat(f float64, bits int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%g: %w", f, ErrBadValue)
	}
	s := strconv.FormatFloat(f, 'G', -1, bits)
	if !strings.ContainsAny(s, ".E") {
		s += ".0"
	}

	return fmt.Sprintf("%*s", valueCols, s), nil
}

func formatString(s string) string {
	s = strings.ReplaceAll(s, "'", "''")
	if len(s) < keyLen {
		s += strings.Repeat(" ", keyLen-len(s))
	}

	return "'" + s + "'"
}

// Format renders the card as exactly 80 ASCII columns.
// Errors: ErrBadValue for unsupported values, ErrCardTooLong when the
// keyword and value alone exceed 80 columns. Long comments are truncated.
func (c Card) Format() (string, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-*s", keyLen, c.Key))
	switch {
	case c.Value == nil && isCommentary(c.Key):
		b.WriteString("  ")
		b.WriteString(c.Comment)
	case c.Value == nil:
		b.WriteString("= ")
		if c.Comment != "" {
			b.WriteString(fmt.Sprintf("%*s / %s", valueCols, "", c.Comment))
		}
	default:
		v, err := formatValue(c.Value)
		if err != nil {
			return "", fmt.Errorf("card %s: %w", c.Key, err)
		}
		b.WriteString("= ")
		b.WriteString(v)
		if b.Len() > cardLen {
			return "", fmt.Errorf("card %s: %w", c.Key, ErrCardTooLong)
		}
		if c.Comment != "" {
			b.WriteString(" / ")
			b.WriteString(c.Comment)
		}
	}
	s := b.String()
	if len(s) > cardLen {
		return s[:cardLen], nil
	}

	return s + strings.Repeat(" ", cardLen-len(s)), nil
}
