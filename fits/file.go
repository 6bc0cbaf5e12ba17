// SPDX-License-Identifier: MIT

package fits

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Write encodes hdus as one FITS stream. When the first HDU is an extension
// an empty primary HDU is written before it; only the first HDU may be primary.
// Errors: ErrBadStructure for an empty list, nil HDU or misplaced primary.
func Write(w io.Writer, hdus ...*HDU) (int64, error) {
	if len(hdus) == 0 {
		return 0, fmt.Errorf("Write: no HDUs: %w", ErrBadStructure)
	}
	for i, h := range hdus {
		if h == nil {
			return 0, fmt.Errorf("Write[%d]: nil HDU: %w", i, ErrBadStructure)
		}
		if i > 0 && h.primary {
			return 0, fmt.Errorf("Write[%d]: primary after first HDU: %w", i, ErrBadStructure)
		}
	}
	if !hdus[0].primary {
		hdus = append([]*HDU{EmptyPrimary()}, hdus...)
	}

	var total int64
	for i, h := range hdus {
		n, err := h.WriteTo(w)
		total += n
		if err != nil {
			return total, fmt.Errorf("Write[%d]: %w", i, err)
		}
	}

	return total, nil
}

// Encode returns the FITS stream for hdus as a byte slice.
func Encode(hdus ...*HDU) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Write(&buf, hdus...); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteFile writes hdus to path, gzip-compressing when path ends in ".gz".
// The file is removed again if encoding fails.
func WriteFile(path string, hdus ...*HDU) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("WriteFile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("WriteFile: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	var w io.Writer = f
	var zw *gzip.Writer
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		zw = gzip.NewWriter(f)
		w = zw
	}
	if _, err = Write(w, hdus...); err != nil {
		return fmt.Errorf("WriteFile(%s): %w", path, err)
	}
	if zw != nil {
		if err = zw.Close(); err != nil {
			return fmt.Errorf("WriteFile(%s): %w", path, err)
		}
	}

	return nil
}
