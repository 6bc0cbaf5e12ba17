// SPDX-License-Identifier: MIT

package accum

import "errors"

var (
	// ErrInvalidState is returned by a transition that is illegal in the current state.
	ErrInvalidState = errors.New("accum: invalid accumulation state")

	// ErrBadWeight is returned for negative, NaN or infinite weights or gains.
	ErrBadWeight = errors.New("accum: invalid weight")

	// ErrNoFactory is returned when a reduction is called with a nil Factory.
	ErrNoFactory = errors.New("accum: nil factory")

	// ErrBadPartitions is returned by ParallelAverage for a partition count < 1.
	ErrBadPartitions = errors.New("accum: partitions must be > 0")
)
