// SPDX-License-Identifier: MIT

package accum

import (
	"fmt"
	"math"
)

// State is the position of an object in its accumulation cycle.
type State int

const (
	// Idle holds a plain value that is not part of a cycle.
	Idle State = iota
	// Accumulating holds running sums; only Accumulate* and EndAccumulation are legal.
	Accumulating
	// Finalized holds a weighted mean produced by EndAccumulation.
	Finalized
	// Empty holds no valid data (NoData, or a cycle that received zero weight).
	Empty
)

var stateNames = [...]string{"idle", "accumulating", "finalized", "empty"}

// String returns the lower-case state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}

	return stateNames[s]
}

// Accumulator is implemented by types that can be coadded.
//
// A cycle is StartAccumulation, any number of Accumulate/AccumulateGain calls
// in any order, then exactly one EndAccumulation, which renormalises the
// running sums by the accumulated weight. StartAccumulation continues from the
// current content: a finalized value re-enters the sums with its weight.
type Accumulator[T any] interface {
	StartAccumulation() error
	Accumulate(x T, weight float64) error
	AccumulateGain(x T, weight, gain float64) error
	EndAccumulation() error
	NoData()
}

// Cycle is the reusable state machine behind Accumulator implementations.
// The zero value is Idle.
type Cycle struct {
	state State
}

// State returns the current state.
func (c *Cycle) State() State { return c.state }

// Start enters Accumulating. Illegal while already accumulating.
func (c *Cycle) Start() error {
	if c.state == Accumulating {
		return fmt.Errorf("StartAccumulation while %s: %w", c.state, ErrInvalidState)
	}
	c.state = Accumulating

	return nil
}

// Check returns ErrInvalidState unless the cycle is Accumulating.
func (c *Cycle) Check() error {
	if c.state != Accumulating {
		return fmt.Errorf("Accumulate while %s: %w", c.state, ErrInvalidState)
	}

	return nil
}

// End leaves Accumulating for Finalized, or for Empty when hasData is false.
// Calling End outside a cycle, including a second End, is ErrInvalidState.
func (c *Cycle) End(hasData bool) error {
	if c.state != Accumulating {
		return fmt.Errorf("EndAccumulation while %s: %w", c.state, ErrInvalidState)
	}
	if hasData {
		c.state = Finalized
	} else {
		c.state = Empty
	}

	return nil
}

// Reset moves to Empty from any state.
func (c *Cycle) Reset() { c.state = Empty }

// ValidateWeight checks weight ≥ 0 and finite, and gain finite.
func ValidateWeight(weight, gain float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return fmt.Errorf("weight %g: %w", weight, ErrBadWeight)
	}
	if math.IsNaN(gain) || math.IsInf(gain, 0) {
		return fmt.Errorf("gain %g: %w", gain, ErrBadWeight)
	}

	return nil
}
