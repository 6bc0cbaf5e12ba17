// SPDX-License-Identifier: MIT

// Package fits writes image HDUs in the FITS (Flexible Image Transport System)
// format: 80-column ASCII header cards and big-endian binary data, each padded
// to 2880-byte blocks. Only encoding of images is supported.
//
// An HDU is built from row-major float64 data and a DataType (the BITPIX
// storage class). Construction converts every value into the storage class up
// front so that a value that cannot be represented (out of range for an
// integer class or for float32) fails with a *ConversionError before any byte
// is written. NaN marks a blank cell: it is kept as NaN for floating-point
// classes and mapped to the reserved BLANK value for integer classes.
//
// Write/WriteFile emit a file: when the first HDU is an image extension, an
// empty primary HDU is written first. Paths ending in ".gz" are gzip
// compressed.
package fits
