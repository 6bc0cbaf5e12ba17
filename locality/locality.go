// SPDX-License-Identifier: MIT

package locality

import (
	"cmp"
	"fmt"
	"math"
)

// Locality is a point in a metric space, comparable to others of its kind.
//   - DistanceTo is the true metric distance.
//   - SortingDistanceTo is monotone in DistanceTo and may be cheaper.
//   - Compare gives a total order used for deterministic sorting.
type Locality[L any] interface {
	DistanceTo(other L) (float64, error)
	SortingDistanceTo(other L) (float64, error)
	Compare(other L) int
}

// Point is a Euclidean position of any dimension.
type Point []float64

var _ Locality[Point] = Point(nil)

func (p Point) check(o Point) error {
	if len(p) != len(o) {
		return fmt.Errorf("Point(%d) vs Point(%d): %w", len(p), len(o), ErrDimensionMismatch)
	}

	return nil
}

// SortingDistanceTo returns the squared Euclidean distance.
func (p Point) SortingDistanceTo(o Point) (float64, error) {
	if err := p.check(o); err != nil {
		return 0, err
	}
	var sum float64
	for i := range p {
		d := p[i] - o[i]
		sum += d * d
	}

	return sum, nil
}

// DistanceTo returns the Euclidean distance.
func (p Point) DistanceTo(o Point) (float64, error) {
	d2, err := p.SortingDistanceTo(o)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(d2), nil
}

// Compare orders points lexicographically, shorter points first on a tie.
func (p Point) Compare(o Point) int {
	for i := 0; i < min(len(p), len(o)); i++ {
		if c := cmp.Compare(p[i], o[i]); c != 0 {
			return c
		}
	}

	return cmp.Compare(len(p), len(o))
}

// SkyPosition is a direction on the celestial sphere, in radians.
type SkyPosition struct {
	RA  float64 // right ascension
	Dec float64 // declination
}

var _ Locality[SkyPosition] = SkyPosition{}

// SkyPositionDeg builds a SkyPosition from degrees.
func SkyPositionDeg(raDeg, decDeg float64) SkyPosition {
	return SkyPosition{RA: raDeg * math.Pi / 180, Dec: decDeg * math.Pi / 180}
}

// haversine returns hav(θ) for the angle θ between s and o.
func (s SkyPosition) haversine(o SkyPosition) float64 {
	sd := math.Sin((o.Dec - s.Dec) / 2)
	sr := math.Sin((o.RA - s.RA) / 2)

	return sd*sd + math.Cos(s.Dec)*math.Cos(o.Dec)*sr*sr
}

// SortingDistanceTo returns the squared chord length between the two unit
// vectors (4·hav θ); it never fails.
func (s SkyPosition) SortingDistanceTo(o SkyPosition) (float64, error) {
	return 4 * s.haversine(o), nil
}

// DistanceTo returns the great-circle angle in radians.
func (s SkyPosition) DistanceTo(o SkyPosition) (float64, error) {
	h := math.Min(1, math.Max(0, s.haversine(o)))

	return 2 * math.Asin(math.Sqrt(h)), nil
}

// Compare orders by declination, then right ascension.
func (s SkyPosition) Compare(o SkyPosition) int {
	if c := cmp.Compare(s.Dec, o.Dec); c != 0 {
		return c
	}

	return cmp.Compare(s.RA, o.RA)
}

// String renders the position in degrees.
func (s SkyPosition) String() string {
	return fmt.Sprintf("(%.6f°, %+.6f°)", s.RA*180/math.Pi, s.Dec*180/math.Pi)
}
