// SPDX-License-Identifier: MIT

// Package skydata is an in-memory toolkit for astronomical data models:
// multi-dimensional indices, value grids, weighted accumulation of images,
// positional matching of repeated observations and FITS image export.
//
// What is inside?
//
//	index/      n-dimensional integer index with per-axis arithmetic
//	indexed/    flat, shape-checked value arrays and validity overlays
//	grid/       mapping between grid indices and physical coordinates
//	accum/      Start/Accumulate/End protocol, weighted sums and averages
//	component/  data component types and label guessing (signal, noise, s2n…)
//	locality/   locality-keyed records, nearest-match and catalog coadding
//	image2d/    2D images with weight, noise and exposure planes
//	fits/       FITS header cards and image HDU encoding
//	interp/     two-column tables with linear interpolation
//
// A command line front end lives in cmd/skydata:
//
//	skydata classify "RMS noise" "exposure time"
//	skydata interpolate filter.dat --at 550,600
//	skydata resample filter.dat filter.fits.gz --points 256
//	skydata match night1.cat night2.cat --radius 1.5
//
// Averaging is associative: reductions over any partition of the inputs,
// merged with the same weights, agree with a flat reduction. accum.ParallelAverage
// relies on this.
//
//	go get github.com/katalvlaran/skydata
package skydata
