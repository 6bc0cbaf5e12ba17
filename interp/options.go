// SPDX-License-Identifier: MIT

package interp

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	// DefaultStrict keeps reading past malformed lines.
	DefaultStrict = false
	// DefaultXColumn is the 0-based token holding the ordinate.
	DefaultXColumn = 0
	// DefaultYColumn is the 0-based token holding the value.
	DefaultYColumn = 1
)

// Option configures table reading.
type Option func(*options)

type options struct {
	strict bool
	xCol   int
	yCol   int
	logger *zap.Logger
}

// WithStrict makes the first malformed line abort the read.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithColumns selects the 0-based token columns for ordinate and value.
// Panics on negative or equal columns.
func WithColumns(x, y int) Option {
	if x < 0 || y < 0 || x == y {
		panic(fmt.Sprintf("interp: WithColumns(%d,%d): columns must be distinct and non-negative", x, y))
	}

	return func(o *options) { o.xCol, o.yCol = x, y }
}

// WithLogger sets the logger for skipped lines and read summaries.
// A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(opts ...Option) options {
	o := options{
		strict: DefaultStrict,
		xCol:   DefaultXColumn,
		yCol:   DefaultYColumn,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
