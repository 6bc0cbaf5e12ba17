// SPDX-License-Identifier: MIT

package indexed_test

import (
	"testing"

	"github.com/katalvlaran/skydata/index"
	"github.com/katalvlaran/skydata/indexed"
	"github.com/stretchr/testify/require"
)

func newOverlay(t *testing.T, dims ...int) (*indexed.Overlay, *indexed.Array) {
	t.Helper()
	base := MustArray(t, dims...)
	o, err := indexed.NewOverlay(base)
	require.NoError(t, err)

	return o, base
}

func TestNewOverlay_Nil(t *testing.T) {
	t.Parallel()
	_, err := indexed.NewOverlay(nil)
	require.ErrorIs(t, err, indexed.ErrNilValues)
}

func TestOverlay_DiscardKeepsValue(t *testing.T) {
	t.Parallel()

	o, base := newOverlay(t, 2, 2)
	at := index.Of(0, 1)
	require.NoError(t, o.Set(at, 5))
	require.NoError(t, o.Discard(at))

	ok, err := o.IsValid(at)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 5.0, MustGet(t, base, 0, 1)) // not zeroed
	require.Equal(t, 3, o.ValidCount())
	require.Same(t, base, o.Base())

	// Set restores validity.
	require.NoError(t, o.Set(at, 6))
	ok, err = o.IsValid(at)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestOverlay_AddOnInvalidCellReplaces(t *testing.T) {
	t.Parallel()

	o, _ := newOverlay(t, 3)
	at := index.Of(1)
	require.NoError(t, o.Set(at, 100))
	require.NoError(t, o.Discard(at))
	require.NoError(t, o.Add(at, 2))
	require.Equal(t, 2.0, MustGet(t, o, 1))
	require.NoError(t, o.Add(at, 2))
	require.Equal(t, 4.0, MustGet(t, o, 1))
}

func TestOverlay_ClearZeroesAndInvalidates(t *testing.T) {
	t.Parallel()

	o, base := newOverlay(t, 2)
	require.NoError(t, o.Set(index.Of(0), 7))
	require.NoError(t, o.Clear(index.Of(0)))
	require.Zero(t, MustGet(t, base, 0))
	ok, err := o.IsValid(index.Of(0))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOverlay_OutOfRange(t *testing.T) {
	t.Parallel()

	o, _ := newOverlay(t, 2, 2)
	_, err := o.IsValid(index.Of(2, 2))
	require.ErrorIs(t, err, indexed.ErrOutOfRange)
	require.ErrorIs(t, o.Discard(index.Of(-1, 0)), indexed.ErrOutOfRange)
	_, err = o.Get(index.Of(0, 5))
	require.ErrorIs(t, err, indexed.ErrOutOfRange)
}

func TestOverlay_ForEachValidAndSum(t *testing.T) {
	t.Parallel()

	base := NewFilledArray(t, []float64{1, 2, 3, 4}, 2, 2)
	o, err := indexed.NewOverlay(base)
	require.NoError(t, err)
	require.NoError(t, o.Discard(index.Of(0, 1)))

	var got []float64
	require.NoError(t, o.ForEachValid(func(_ *index.Index, v float64) error {
		got = append(got, v)
		return nil
	}))
	require.Equal(t, []float64{1, 3, 4}, got)

	s, err := indexed.Sum(o)
	require.NoError(t, err)
	require.Equal(t, 8.0, s)

	o.DiscardAll()
	require.Zero(t, o.ValidCount())
	o.ValidateAll()
	require.Equal(t, 4, o.ValidCount())
}

func TestOverlay_SetSize(t *testing.T) {
	t.Parallel()

	o, base := newOverlay(t, 2)
	require.NoError(t, o.Set(index.Of(1), 3))
	require.NoError(t, o.Discard(index.Of(0)))
	require.NoError(t, o.SetSize(index.Of(3, 3)))
	require.True(t, base.ConformsTo(index.Of(3, 3)))
	require.Equal(t, 9, o.ValidCount())
	require.Zero(t, MustGet(t, o, 2, 2))

	ro, err := indexed.NewOverlay(hide{base})
	require.NoError(t, err)
	require.ErrorIs(t, ro.SetSize(index.Of(1)), indexed.ErrNotResizable)
}

func TestOverlay_OffsetFlags(t *testing.T) {
	t.Parallel()

	o, _ := newOverlay(t, 2, 3)
	require.True(t, o.ValidAt(4))
	require.NoError(t, o.SetValidAt(4, false))
	require.False(t, o.ValidAt(4))

	ok, err := o.IsValid(index.Of(1, 1)) // offset 4
	require.NoError(t, err)
	require.False(t, ok)

	require.False(t, o.ValidAt(-1))
	require.False(t, o.ValidAt(6))
	require.ErrorIs(t, o.SetValidAt(6, true), indexed.ErrOutOfRange)

	other, _ := newOverlay(t, 2, 3)
	require.NoError(t, other.CopyValidity(o))
	require.Equal(t, 5, other.ValidCount())
	require.NoError(t, o.SetValidAt(4, true))
	require.False(t, other.ValidAt(4)) // independent copy

	wrong, _ := newOverlay(t, 3, 2)
	require.ErrorIs(t, wrong.CopyValidity(o), indexed.ErrShapeMismatch)
	require.ErrorIs(t, wrong.CopyValidity(nil), indexed.ErrNilValues)
}
