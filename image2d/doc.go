// SPDX-License-Identifier: MIT

// Package image2d provides a two-dimensional image built on the indexed
// containers: a value plane with a validity overlay plus optional weight,
// noise (rms) and exposure-time planes that always share its shape.
//
// Coordinates are (x, y) with x the column. Storage is row-major with y the
// slow axis, which is also the FITS axis order (NAXIS1 = columns).
//
// An Image is an accum.Accumulator[*Image]: images of the same shape can be
// coadded with weights and gains, cell by cell, skipping invalid cells. After
// EndAccumulation the weight plane holds the accumulated weight, cells that
// received none are invalid, and a noise plane (when present) is recomputed
// as 1/√w.
//
// CreateHDU exports the image as a FITS image extension in a chosen storage
// class; see package fits.
package image2d
