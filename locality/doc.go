// SPDX-License-Identifier: MIT

// Package locality matches and merges records that describe the same
// physical feature observed more than once.
//
// A Locality is a point in a metric space. Besides the true metric distance
// it exposes a cheaper sorting distance that orders pairs identically (for
// example the squared Euclidean distance, or the squared chord length on the
// sphere), so nearest-neighbour searches can avoid square roots and
// trigonometry until a final candidate is chosen.
//
// Data couples a locality with a measurement count and a value of any type.
// Averaging two records delegates the numeric blend of their values to a
// Blender strategy supplied at construction and adds the measurement counts;
// Coadd uses it to fold repeated observations into a catalogue.
package locality
