// SPDX-License-Identifier: MIT

package locality_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/skydata/locality"
	"github.com/stretchr/testify/require"
)

func TestPoint(t *testing.T) {
	t.Parallel()

	a, b := locality.Point{0, 0}, locality.Point{3, 4}
	d, err := a.DistanceTo(b)
	require.NoError(t, err)
	require.InDelta(t, 5.0, d, 1e-12)
	s, err := a.SortingDistanceTo(b)
	require.NoError(t, err)
	require.InDelta(t, 25.0, s, 1e-12)

	_, err = a.DistanceTo(locality.Point{1})
	require.ErrorIs(t, err, locality.ErrDimensionMismatch)

	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
	require.Equal(t, 0, a.Compare(locality.Point{0, 0}))
	require.Equal(t, -1, locality.Point{0}.Compare(a))
}

func TestSkyPosition(t *testing.T) {
	t.Parallel()

	a := locality.SkyPositionDeg(10, 0)
	b := locality.SkyPositionDeg(11, 0)
	d, err := a.DistanceTo(b)
	require.NoError(t, err)
	require.InDelta(t, math.Pi/180, d, 1e-12)

	pole := locality.SkyPositionDeg(0, 90)
	other := locality.SkyPositionDeg(123, 90)
	d, err = pole.DistanceTo(other)
	require.NoError(t, err)
	require.InDelta(t, 0, d, 1e-7)

	// sorting distance is monotone in the true distance
	c := locality.SkyPositionDeg(15, 3)
	sb, _ := a.SortingDistanceTo(b)
	sc, _ := a.SortingDistanceTo(c)
	db, _ := a.DistanceTo(b)
	dc, _ := a.DistanceTo(c)
	require.Equal(t, sb < sc, db < dc)

	require.Equal(t, -1, a.Compare(c))
	require.Contains(t, b.String(), "11.000000°")
}

func TestData_Average(t *testing.T) {
	t.Parallel()

	a := locality.New(locality.Point{1, 1}, 10.0, locality.WeightedMean)
	b := locality.New(locality.Point{1.1, 1}, 20.0, locality.WeightedMean)
	require.NoError(t, a.Average(b, nil, 1))
	require.InDelta(t, 15.0, a.Value, 1e-12)
	require.Equal(t, 2, a.Measurements())
	require.Equal(t, locality.Point{1, 1}, a.Locality())

	require.ErrorIs(t, a.Average(nil, nil, 1), locality.ErrNilRecord)
	require.ErrorIs(t, a.Average(b, nil, -1), locality.ErrBadWeight)
	require.Equal(t, 2, a.Measurements()) // failed blend leaves the count

	noBlend := locality.New[locality.Point, float64](locality.Point{0, 0}, 1, nil)
	require.ErrorIs(t, noBlend.Average(b, nil, 1), locality.ErrNoBlender)
}

func TestData_EnvPassThrough(t *testing.T) {
	t.Parallel()

	type calib struct{ scale float64 }
	blend := locality.BlendFunc[float64](func(dst *float64, src float64, env any, _ float64) error {
		c, ok := env.(calib)
		if !ok {
			return errors.New("missing calibration")
		}
		*dst += c.scale * src
		return nil
	})
	a := locality.New(locality.Point{0}, 1.0, blend)
	require.NoError(t, a.Average(locality.New(locality.Point{0}, 2.0, blend), calib{scale: 3}, 1))
	require.Equal(t, 7.0, a.Value)
	require.Error(t, a.Average(locality.New(locality.Point{0}, 2.0, blend), nil, 1))
}

func TestNearest(t *testing.T) {
	t.Parallel()

	recs := []*locality.Data[locality.Point, float64]{
		locality.New(locality.Point{0, 0}, 1.0, locality.WeightedMean),
		nil,
		locality.New(locality.Point{5, 5}, 2.0, locality.WeightedMean),
		locality.New(locality.Point{1, 1}, 3.0, locality.WeightedMean),
	}
	r, at, d, err := locality.Nearest(recs, locality.Point{1.2, 1}, 1)
	require.NoError(t, err)
	require.Equal(t, 3, at)
	require.Equal(t, 3.0, r.Value)
	require.InDelta(t, 0.2, d, 1e-12)

	_, _, _, err = locality.Nearest(recs, locality.Point{3, 3}, 1)
	require.ErrorIs(t, err, locality.ErrNoMatch)
	_, _, _, err = locality.Nearest(recs, locality.Point{3}, 1)
	require.ErrorIs(t, err, locality.ErrDimensionMismatch)
	_, _, _, err = locality.Nearest(recs, locality.Point{3, 3}, -1)
	require.ErrorIs(t, err, locality.ErrBadDistance)
}

func TestCoaddAndSort(t *testing.T) {
	t.Parallel()

	mk := func(ra, dec, v float64) *locality.Data[locality.SkyPosition, float64] {
		return locality.New(locality.SkyPositionDeg(ra, dec), v, locality.WeightedMean)
	}
	arcsec := math.Pi / 180 / 3600

	cat := []*locality.Data[locality.SkyPosition, float64]{mk(10, 20, 1)}
	obs := []*locality.Data[locality.SkyPosition, float64]{
		mk(10, 20+0.5/3600, 4), // same source
		mk(30, -5, 7),          // new source
		mk(30+0.2/3600, -5, 9), // repeat of the new source
	}
	cat, err := locality.Coadd(cat, obs, 2*arcsec, nil)
	require.NoError(t, err)
	require.Len(t, cat, 2)
	require.InDelta(t, 2.5, cat[0].Value, 1e-12)
	require.Equal(t, 2, cat[0].Measurements())
	require.InDelta(t, 8.0, cat[1].Value, 1e-12)
	require.Equal(t, 2, cat[1].Measurements())

	// the source record was cloned, not aliased
	require.Equal(t, 7.0, obs[1].Value)

	locality.Sort(cat)
	require.Equal(t, -1, cat[0].CompareTo(cat[1]))
	require.InDelta(t, -5*math.Pi/180, cat[0].Locality().Dec, 1e-12)
}
