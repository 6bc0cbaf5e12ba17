// SPDX-License-Identifier: MIT

package interp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const maxLine = 1 << 20

var gzipMagic = []byte{0x1f, 0x8b}

// ParseSamples reads a table into samples in file order.
// MAIN DESCRIPTION:
//   - Comment and blank lines are skipped silently.
//   - Malformed lines are logged at Warn and skipped, or abort the read
//     when WithStrict(true) is set.
//
// Errors:
//   - *LineError (ErrMalformedLine) in strict mode; I/O errors from r.
func ParseSamples(r io.Reader, opts ...Option) ([]Sample, error) {
	o := gatherOptions(opts...)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLine)

	var out []Sample
	skipped, line := 0, 0
	for sc.Scan() {
		line++
		text := sc.Text()
		s, ok, err := parseLine(text, o.xCol, o.yCol)
		if err != nil {
			lerr := &LineError{Line: line, Text: text, Err: err}
			if o.strict {
				return nil, lerr
			}
			o.logger.Warn("skipping malformed line",
				zap.Int("line", line), zap.String("text", text), zap.Error(err))
			skipped++

			continue
		}
		if ok {
			out = append(out, s)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ParseSamples: line %d: %w", line+1, err)
	}
	o.logger.Debug("parsed samples", zap.Int("samples", len(out)), zap.Int("skipped", skipped))

	return out, nil
}

// parseLine returns ok=false for blank and comment lines.
func parseLine(text string, xCol, yCol int) (Sample, bool, error) {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, ";") {
		return Sample{}, false, nil
	}
	fields := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	if need := max(xCol, yCol) + 1; len(fields) < need {
		return Sample{}, false, fmt.Errorf("%d tokens, need %d: %w", len(fields), need, ErrMissingColumn)
	}
	x, err := cast.ToFloat64E(fields[xCol])
	if err != nil {
		return Sample{}, false, err
	}
	y, err := cast.ToFloat64E(fields[yCol])
	if err != nil {
		return Sample{}, false, err
	}
	if !finite(x) || !finite(y) {
		return Sample{}, false, ErrNonFinite
	}

	return Sample{X: x, Y: y}, true, nil
}

// Read parses a table and builds an interpolator from it. Gzip input is
// detected by its magic bytes and decompressed transparently.
func Read(r io.Reader, opts ...Option) (*Simple, error) {
	br := bufio.NewReader(r)
	var src io.Reader = br
	if head, err := br.Peek(len(gzipMagic)); err == nil && bytes.Equal(head, gzipMagic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("Read: %w", err)
		}
		defer zr.Close()
		src = zr
	}
	samples, err := ParseSamples(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("Read: %w", err)
	}

	return New(samples)
}

// Load reads the table at path; see Read.
func Load(path string, opts ...Option) (*Simple, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	defer f.Close()

	s, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("Load(%s): %w", path, err)
	}

	return s, nil
}
