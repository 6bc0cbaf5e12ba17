// SPDX-License-Identifier: MIT

// Package component classifies the role of a data column or image plane
// (signal, weight, exposure, noise, variance, signal-to-noise) from its
// free-text label.
package component
