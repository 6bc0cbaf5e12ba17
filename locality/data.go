// SPDX-License-Identifier: MIT

package locality

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Blender merges src into dst. relativeWeight is the weight of src relative
// to dst (1 means equal weight). env carries caller context the blend may
// need (calibration, units); it is passed through untouched.
type Blender[V any] interface {
	Blend(dst *V, src V, env any, relativeWeight float64) error
}

// BlendFunc adapts a function to Blender.
type BlendFunc[V any] func(dst *V, src V, env any, relativeWeight float64) error

// Blend calls f.
func (f BlendFunc[V]) Blend(dst *V, src V, env any, relativeWeight float64) error {
	return f(dst, src, env, relativeWeight)
}

// WeightedMean blends scalars as (dst + w·src) / (1 + w).
var WeightedMean = BlendFunc[float64](func(dst *float64, src float64, _ any, w float64) error {
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("WeightedMean(w=%g): %w", w, ErrBadWeight)
	}
	*dst = (*dst + w*src) / (1 + w)

	return nil
})

// Data is a locality-keyed record of a repeated observation.
//   - locality is the matching key.
//   - measurements counts the observations folded into this record.
//   - Value holds the payload blended by the Blender.
type Data[L Locality[L], V any] struct {
	locality     L
	measurements int
	Value        V
	blender      Blender[V]
}

// New returns a record for a single measurement at loc.
func New[L Locality[L], V any](loc L, value V, blender Blender[V]) *Data[L, V] {
	return &Data[L, V]{locality: loc, measurements: 1, Value: value, blender: blender}
}

// Locality returns the matching key.
func (d *Data[L, V]) Locality() L { return d.locality }

// SetLocality replaces the matching key.
func (d *Data[L, V]) SetLocality(loc L) { d.locality = loc }

// Measurements returns the number of observations represented.
func (d *Data[L, V]) Measurements() int { return d.measurements }

// CompareTo orders records by locality.
func (d *Data[L, V]) CompareTo(o *Data[L, V]) int { return d.locality.Compare(o.locality) }

// DistanceTo returns the metric distance between the two localities.
func (d *Data[L, V]) DistanceTo(o *Data[L, V]) (float64, error) {
	if o == nil {
		return 0, ErrNilRecord
	}

	return d.locality.DistanceTo(o.locality)
}

// SortingDistanceTo returns the sorting distance between the two localities.
func (d *Data[L, V]) SortingDistanceTo(o *Data[L, V]) (float64, error) {
	if o == nil {
		return 0, ErrNilRecord
	}

	return d.locality.SortingDistanceTo(o.locality)
}

// Average merges o into d: the values are blended by d's Blender and the
// measurement count grows by o.Measurements(). The locality is unchanged.
// Errors: ErrNilRecord, ErrNoBlender, or the blender's error (d untouched).
func (d *Data[L, V]) Average(o *Data[L, V], env any, relativeWeight float64) error {
	if o == nil {
		return fmt.Errorf("Data.Average: %w", ErrNilRecord)
	}
	if d.blender == nil {
		return fmt.Errorf("Data.Average: %w", ErrNoBlender)
	}
	if err := d.blender.Blend(&d.Value, o.Value, env, relativeWeight); err != nil {
		return fmt.Errorf("Data.Average: %w", err)
	}
	d.measurements += o.measurements

	return nil
}

// Clone returns a copy of the record; Value is copied by assignment.
func (d *Data[L, V]) Clone() *Data[L, V] {
	c := *d

	return &c
}

// Sort orders records by locality (stable).
func Sort[L Locality[L], V any](records []*Data[L, V]) {
	slices.SortStableFunc(records, func(a, b *Data[L, V]) int { return a.CompareTo(b) })
}

// Nearest finds the record closest to target within maxDistance.
// MAIN DESCRIPTION:
//   - Linear scan ranking candidates by the sorting distance; the true metric
//     distance is computed once, for the winner.
//
// Returns:
//   - the record, its position in records, and its metric distance.
//
// Errors:
//   - ErrBadDistance for a negative/NaN radius; ErrNoMatch when nothing is in range;
//     a locality error (e.g. ErrDimensionMismatch) aborts the scan.
//
// Complexity:
//   - Time O(n), Space O(1).
func Nearest[L Locality[L], V any](records []*Data[L, V], target L, maxDistance float64) (*Data[L, V], int, float64, error) {
	if maxDistance < 0 || math.IsNaN(maxDistance) {
		return nil, -1, 0, fmt.Errorf("Nearest(%g): %w", maxDistance, ErrBadDistance)
	}
	best, bestAt, bestKey := (*Data[L, V])(nil), -1, math.Inf(1)
	for i, r := range records {
		if r == nil {
			continue
		}
		k, err := target.SortingDistanceTo(r.locality)
		if err != nil {
			return nil, -1, 0, fmt.Errorf("Nearest[%d]: %w", i, err)
		}
		if k < bestKey {
			best, bestAt, bestKey = r, i, k
		}
	}
	if best == nil {
		return nil, -1, 0, ErrNoMatch
	}
	dist, err := target.DistanceTo(best.locality)
	if err != nil {
		return nil, -1, 0, fmt.Errorf("Nearest[%d]: %w", bestAt, err)
	}
	if dist > maxDistance {
		return nil, -1, 0, ErrNoMatch
	}

	return best, bestAt, dist, nil
}

// Coadd folds src records into dst. Each source record is averaged into its
// nearest dst record within maxDistance, weighted by measurement counts
// (relativeWeight = src.Measurements / dst.Measurements); unmatched records are
// appended as clones. Matching is against dst as it grows, so repeated source
// observations of a new feature merge with each other too.
// Returns the (possibly grown) dst.
func Coadd[L Locality[L], V any](dst, src []*Data[L, V], maxDistance float64, env any) ([]*Data[L, V], error) {
	for i, s := range src {
		if s == nil {
			return dst, fmt.Errorf("Coadd[%d]: %w", i, ErrNilRecord)
		}
		match, _, _, err := Nearest(dst, s.locality, maxDistance)
		switch {
		case err == nil:
			rw := float64(s.measurements) / float64(max(match.measurements, 1))
			if err = match.Average(s, env, rw); err != nil {
				return dst, fmt.Errorf("Coadd[%d]: %w", i, err)
			}
		case errors.Is(err, ErrNoMatch):
			dst = append(dst, s.Clone())
		default:
			return dst, fmt.Errorf("Coadd[%d]: %w", i, err)
		}
	}

	return dst, nil
}
