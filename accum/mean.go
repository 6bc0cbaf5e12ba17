// SPDX-License-Identifier: MIT

package accum

import (
	"fmt"
	"math"
)

// Mean is a weighted scalar mean that keeps its accumulated weight, so
// finalized partial means merge into exactly the mean of the union.
//   - value is the mean (Idle/Finalized) or the running Σ(wGx) (Accumulating).
//   - weight is the (running) Σ(wG²).
//   - count is the number of raw samples represented.
type Mean struct {
	cycle  Cycle
	value  float64
	weight float64
	count  int
}

var _ Accumulator[*Mean] = (*Mean)(nil)

// NewMean returns an empty accumulator (the Factory for Mean reductions).
func NewMean() *Mean { return &Mean{} }

// Sample returns a single measurement of unit weight.
func Sample(v float64) *Mean { return &Mean{value: v, weight: 1, count: 1} }

// WeightedSample returns a single measurement with the given weight.
func WeightedSample(v, weight float64) (*Mean, error) {
	if err := ValidateWeight(weight, 1); err != nil {
		return nil, fmt.Errorf("WeightedSample: %w", err)
	}

	return &Mean{value: v, weight: weight, count: 1}, nil
}

// State returns the accumulation state.
func (m *Mean) State() State { return m.cycle.State() }

// Value returns the mean, or NaN when there is no data or a cycle is open.
func (m *Mean) Value() float64 {
	switch m.cycle.State() {
	case Accumulating, Empty:
		return math.NaN()
	}
	if m.weight == 0 {
		return math.NaN()
	}

	return m.value
}

// Weight returns the accumulated weight.
func (m *Mean) Weight() float64 { return m.weight }

// Count returns the number of raw samples represented.
func (m *Mean) Count() int { return m.count }

// StartAccumulation opens a cycle, turning the current mean into a running sum.
func (m *Mean) StartAccumulation() error {
	if err := m.cycle.Start(); err != nil {
		return fmt.Errorf("Mean.%w", err)
	}
	if m.weight == 0 {
		m.value = 0
	} else {
		m.value *= m.weight
	}

	return nil
}

// Accumulate is AccumulateGain(x, weight, 1).
func (m *Mean) Accumulate(x *Mean, weight float64) error {
	return m.AccumulateGain(x, weight, 1)
}

// AccumulateGain folds x into the running sums with the given weight and gain.
// MAIN DESCRIPTION:
//   - sum += weight·gain·x.value·x.weight; weight += weight·gain²·x.weight.
//
// Behavior highlights:
//   - x must not itself be in an open cycle; an Empty x contributes nothing.
//
// Errors:
//   - ErrInvalidState when m is not accumulating or x is.
//   - ErrBadWeight for negative/non-finite weight or non-finite gain.
func (m *Mean) AccumulateGain(x *Mean, weight, gain float64) error {
	if err := m.cycle.Check(); err != nil {
		return fmt.Errorf("Mean.%w", err)
	}
	if err := ValidateWeight(weight, gain); err != nil {
		return fmt.Errorf("Mean.Accumulate: %w", err)
	}
	if x == nil || x.State() == Empty {
		return nil
	}
	if x.State() == Accumulating {
		return fmt.Errorf("Mean.Accumulate: operand is accumulating: %w", ErrInvalidState)
	}
	w := weight * x.weight
	m.value += w * gain * x.value
	m.weight += w * gain * gain
	m.count += x.count

	return nil
}

// EndAccumulation closes the cycle, dividing the running sum by the weight.
// A cycle that received no weight ends Empty.
func (m *Mean) EndAccumulation() error {
	hasData := m.weight > 0
	if err := m.cycle.End(hasData); err != nil {
		return fmt.Errorf("Mean.%w", err)
	}
	if hasData {
		m.value /= m.weight
	} else {
		m.value, m.weight = 0, 0
	}

	return nil
}

// NoData discards everything and moves to Empty.
func (m *Mean) NoData() {
	m.cycle.Reset()
	m.value, m.weight, m.count = 0, 0, 0
}

// String renders "mean ± σ (n)" where σ = 1/√weight.
func (m *Mean) String() string {
	if m.weight <= 0 || m.State() != Finalized && m.State() != Idle {
		return fmt.Sprintf("Mean{%s}", m.State())
	}

	return fmt.Sprintf("%g ± %g (n=%d)", m.value, 1/math.Sqrt(m.weight), m.count)
}
