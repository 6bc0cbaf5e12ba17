// SPDX-License-Identifier: MIT

package grid

// Referenced is implemented by objects anchored at a reference coordinate
// located at a reference index.
type Referenced interface {
	Reference() []float64
	ReferenceIndex() []float64
}
