// SPDX-License-Identifier: MIT

// Package indexed: functional configuration for container numeric policy.
// This file defines:
//   - Option / options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves the effective policy.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).

package indexed

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation in Set/Add/Scale.
	DefaultValidateNaNInf = true

	// DefaultEpsilon is the absolute tolerance used by AllClose when none is given.
	DefaultEpsilon = 1e-9
)

const panicEpsilonInvalid = "indexed: WithEpsilon: eps must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*options)

// options stores the effective configuration after applying Option setters.
type options struct {
	validateNaNInf bool    // DefaultValidateNaNInf
	eps            float64 // DefaultEpsilon
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-value validation. Use when NaN is a
// meaningful placeholder in ingested data (e.g. FITS blank floats).
func WithNoValidateNaNInf() Option {
	return func(o *options) { o.validateNaNInf = false }
}

// WithEpsilon sets the tolerance used by AllClose.
// Panics when eps is negative, NaN or infinite.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *options) { o.eps = eps }
}

// defaultOptions returns the documented defaults.
func defaultOptions() options {
	return options{
		validateNaNInf: DefaultValidateNaNInf,
		eps:            DefaultEpsilon,
	}
}

// gatherOptions applies opts over the defaults in order; nil options are skipped.
func gatherOptions(opts ...Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
