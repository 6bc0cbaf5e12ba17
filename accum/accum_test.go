// SPDX-License-Identifier: MIT

package accum_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/skydata/accum"
	"github.com/stretchr/testify/require"
)

func samples(vals ...float64) []*accum.Mean {
	out := make([]*accum.Mean, len(vals))
	for i, v := range vals {
		out[i] = accum.Sample(v)
	}

	return out
}

func TestMean_Cycle(t *testing.T) {
	t.Parallel()

	m := accum.NewMean()
	require.Equal(t, accum.Idle, m.State())
	require.True(t, math.IsNaN(m.Value()))

	require.NoError(t, m.StartAccumulation())
	require.Equal(t, accum.Accumulating, m.State())
	require.NoError(t, m.Accumulate(accum.Sample(2), 1))
	require.NoError(t, m.Accumulate(accum.Sample(5), 2))
	require.True(t, math.IsNaN(m.Value())) // open cycle
	require.NoError(t, m.EndAccumulation())

	require.Equal(t, accum.Finalized, m.State())
	require.InDelta(t, 4.0, m.Value(), 1e-12)
	require.Equal(t, 3.0, m.Weight())
	require.Equal(t, 2, m.Count())
	require.Contains(t, m.String(), "n=2")
}

// TestMean_Misuse checks that illegal transitions fail loudly and leave state intact.
func TestMean_Misuse(t *testing.T) {
	t.Parallel()

	m := accum.NewMean()
	require.ErrorIs(t, m.Accumulate(accum.Sample(1), 1), accum.ErrInvalidState)
	require.ErrorIs(t, m.EndAccumulation(), accum.ErrInvalidState)

	require.NoError(t, m.StartAccumulation())
	require.ErrorIs(t, m.StartAccumulation(), accum.ErrInvalidState)
	require.NoError(t, m.Accumulate(accum.Sample(3), 1))
	require.NoError(t, m.EndAccumulation())
	require.ErrorIs(t, m.EndAccumulation(), accum.ErrInvalidState)
	require.Equal(t, 3.0, m.Value()) // second End did not renormalise again

	require.NoError(t, m.StartAccumulation())
	open := accum.NewMean()
	require.NoError(t, open.StartAccumulation())
	require.ErrorIs(t, m.Accumulate(open, 1), accum.ErrInvalidState)
	require.ErrorIs(t, m.Accumulate(accum.Sample(1), -1), accum.ErrBadWeight)
	require.ErrorIs(t, m.AccumulateGain(accum.Sample(1), 1, math.NaN()), accum.ErrBadWeight)
}

func TestMean_StartContinuesFromFinalized(t *testing.T) {
	t.Parallel()

	m, err := accum.Average(accum.NewMean, samples(1, 3)...)
	require.NoError(t, err)
	require.Equal(t, 2.0, m.Value())

	require.NoError(t, m.StartAccumulation())
	require.NoError(t, m.Accumulate(accum.Sample(8), 1))
	require.NoError(t, m.EndAccumulation())
	require.InDelta(t, 4.0, m.Value(), 1e-12) // (1+3+8)/3
}

func TestMean_Gain(t *testing.T) {
	t.Parallel()

	// Two readings of signal s=5 taken through gains 2 and 0.5.
	m := accum.NewMean()
	require.NoError(t, m.StartAccumulation())
	require.NoError(t, m.AccumulateGain(accum.Sample(10), 1, 2))
	require.NoError(t, m.AccumulateGain(accum.Sample(2.5), 1, 0.5))
	require.NoError(t, m.EndAccumulation())
	require.InDelta(t, 5.0, m.Value(), 1e-12)
	require.InDelta(t, 4.25, m.Weight(), 1e-12)
}

func TestMean_NoData(t *testing.T) {
	t.Parallel()

	m := accum.Sample(7)
	m.NoData()
	require.Equal(t, accum.Empty, m.State())
	require.True(t, math.IsNaN(m.Value()))

	// Empty operands contribute nothing; an empty cycle ends Empty.
	out, err := accum.Average(accum.NewMean, m)
	require.NoError(t, err)
	require.Equal(t, accum.Empty, out.State())
	require.Zero(t, out.Count())
}

func TestSum_LeavesCycleOpen(t *testing.T) {
	t.Parallel()

	s, err := accum.Sum(accum.NewMean, samples(1, 2, 3)...)
	require.NoError(t, err)
	require.Equal(t, accum.Accumulating, s.State())
	require.NoError(t, s.EndAccumulation())
	require.Equal(t, 2.0, s.Value())

	_, err = accum.Sum[*accum.Mean](nil)
	require.ErrorIs(t, err, accum.ErrNoFactory)
}

// TestAverage_PartitionAssociativity checks that merging partial averages of
// any split equals the flat average.
func TestAverage_PartitionAssociativity(t *testing.T) {
	t.Parallel()

	vals := []float64{1.5, -2, 7, 3.25, 0, 11, -4.5, 6}
	flat, err := accum.Average(accum.NewMean, samples(vals...)...)
	require.NoError(t, err)

	for cut := 1; cut < len(vals); cut++ {
		left, err := accum.Average(accum.NewMean, samples(vals[:cut]...)...)
		require.NoError(t, err)
		right, err := accum.Average(accum.NewMean, samples(vals[cut:]...)...)
		require.NoError(t, err)

		for _, order := range [][]*accum.Mean{{left, right}, {right, left}} {
			merged, err := accum.Average(accum.NewMean, order...)
			require.NoError(t, err)
			require.InDelta(t, flat.Value(), merged.Value(), 1e-12, "cut=%d", cut)
			require.Equal(t, flat.Count(), merged.Count())
		}
	}
}

func TestParallelAverage(t *testing.T) {
	t.Parallel()

	vals := make([]float64, 101)
	for i := range vals {
		vals[i] = float64(i*i%17) - 3
	}
	items := samples(vals...)
	flat, err := accum.Average(accum.NewMean, items...)
	require.NoError(t, err)

	for _, p := range []int{1, 2, 3, 4, 7, 50, 500} {
		got, err := accum.ParallelAverage(context.Background(), accum.NewMean, items, p)
		require.NoError(t, err)
		require.InDelta(t, flat.Value(), got.Value(), 1e-9, "partitions=%d", p)
		require.Equal(t, len(vals), got.Count())
	}

	_, err = accum.ParallelAverage(context.Background(), accum.NewMean, items, 0)
	require.ErrorIs(t, err, accum.ErrBadPartitions)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = accum.ParallelAverage(ctx, accum.NewMean, items, 4)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStateString(t *testing.T) {
	t.Parallel()
	require.Equal(t, "finalized", accum.Finalized.String())
	require.Equal(t, "State(9)", accum.State(9).String())
}

func TestAccumulator_DrivesCycleState(t *testing.T) {
	t.Parallel()

	var a accum.Accumulator[*accum.Mean] = accum.NewMean()
	require.NoError(t, a.StartAccumulation())
	require.Equal(t, accum.Accumulating, a.(*accum.Mean).State())
	require.NoError(t, a.AccumulateGain(accum.Sample(3), 1, 2))
	require.NoError(t, a.EndAccumulation())
	require.Equal(t, accum.Finalized, a.(*accum.Mean).State())
	require.InDelta(t, 1.5, a.(*accum.Mean).Value(), 1e-12)
}
