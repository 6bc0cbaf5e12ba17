// SPDX-License-Identifier: MIT

package component

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned by ParseType for an unrecognised name.
var ErrUnknownType = errors.New("component: unknown type")

// Type is the role of a data component.
type Type int

const (
	Unknown Type = iota
	Signal
	Weight
	Exposure
	Noise
	Variance
	S2N
)

var typeNames = [...]string{
	Unknown:  "unknown",
	Signal:   "signal",
	Weight:   "weight",
	Exposure: "exposure",
	Noise:    "noise",
	Variance: "variance",
	S2N:      "s2n",
}

// String returns the canonical lower-case name.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}

	return typeNames[t]
}

// ParseType maps a canonical name (case-insensitive) back to its Type.
func ParseType(name string) (Type, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range typeNames {
		if s == n {
			return Type(i), nil
		}
	}

	return Unknown, fmt.Errorf("ParseType(%q): %w", name, ErrUnknownType)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	v, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = v

	return nil
}

// rule maps any of its substrings to a Type.
type rule struct {
	typ  Type
	keys []string
}

// rules are tried in order; the first rule with a matching substring wins.
// Signal-to-noise keys precede the noise keys, and noise/variance keys
// precede the generic signal keys.
var rules = []rule{
	{S2N, []string{"to-noise", "to noise", "/noise", "s2n", "snr", "s/n"}},
	{Weight, []string{"weight"}},
	{Exposure, []string{"coverage", "time", "exposure"}},
	{Noise, []string{"noise", "rms", "sigma", "error", "uncertainty", "dev"}},
	{Variance, []string{"var"}},
	{Signal, []string{"signal", "flux", "data", "value", "intensity", "brightness", "counts"}},
}

// GuessType classifies a free-text label by ordered, case-insensitive
// substring matching. Unmatched text yields Unknown.
//
//	GuessType("signal-to-noise ratio") == S2N
//	GuessType("RMS noise")             == Noise
//	GuessType("exposure time")         == Exposure
//	GuessType("flux")                  == Signal
func GuessType(text string) Type {
	s := strings.ToLower(text)
	for _, r := range rules {
		for _, k := range r.keys {
			if strings.Contains(s, k) {
				return r.typ
			}
		}
	}

	return Unknown
}
