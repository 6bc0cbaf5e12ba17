// SPDX-License-Identifier: MIT

package accum

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Factory creates a fresh, empty accumulator.
type Factory[T any] func() T

// Sum merges parts into a new instance from newT using Accumulate(part, 1).
// The result is left in the Accumulating state; call EndAccumulation (or use
// Average) to turn it into a mean.
// Errors: ErrNoFactory, or the first error returned by an Accumulate call.
func Sum[T Accumulator[T]](newT Factory[T], parts ...T) (T, error) {
	var zero T
	if newT == nil {
		return zero, fmt.Errorf("Sum: %w", ErrNoFactory)
	}
	out := newT()
	if err := out.StartAccumulation(); err != nil {
		return zero, fmt.Errorf("Sum: %w", err)
	}
	for i, p := range parts {
		if err := out.Accumulate(p, 1); err != nil {
			return zero, fmt.Errorf("Sum[%d]: %w", i, err)
		}
	}

	return out, nil
}

// Average is Sum followed by a single EndAccumulation.
func Average[T Accumulator[T]](newT Factory[T], parts ...T) (T, error) {
	var zero T
	out, err := Sum(newT, parts...)
	if err != nil {
		return zero, err
	}
	if err = out.EndAccumulation(); err != nil {
		return zero, fmt.Errorf("Average: %w", err)
	}

	return out, nil
}

// ParallelAverage averages items split into at most partitions contiguous,
// disjoint chunks, each reduced on its own goroutine, then merges the partial
// averages once. It requires T to carry its weight through finalisation (as
// Mean and image2d.Image do) for the result to equal Average(newT, items...).
// MAIN DESCRIPTION:
//   - Fan-out/fan-in reduction over an errgroup; first error cancels the rest.
//
// Implementation:
//   - Stage 1: validate inputs; clamp partitions to len(items).
//   - Stage 2: each goroutine runs Average over its chunk into partials[i].
//   - Stage 3: Average(newT, partials...) on the caller goroutine.
//
// Errors:
//   - ErrNoFactory, ErrBadPartitions, ctx.Err(), or any Accumulate error.
//
// Concurrency:
//   - items are only read; distinct goroutines never share an accumulator.
//     newT must be safe to call concurrently.
func ParallelAverage[T Accumulator[T]](ctx context.Context, newT Factory[T], items []T, partitions int) (T, error) {
	var zero T
	if newT == nil {
		return zero, fmt.Errorf("ParallelAverage: %w", ErrNoFactory)
	}
	if partitions < 1 {
		return zero, fmt.Errorf("ParallelAverage(%d): %w", partitions, ErrBadPartitions)
	}
	if err := ctx.Err(); err != nil {
		return zero, fmt.Errorf("ParallelAverage: %w", err)
	}
	if partitions > len(items) {
		partitions = len(items)
	}
	if partitions <= 1 {
		return Average(newT, items...)
	}

	chunk := (len(items) + partitions - 1) / partitions
	partitions = (len(items) + chunk - 1) / chunk // drop trailing empty chunks
	partials := make([]T, partitions)
	g, gctx := errgroup.WithContext(ctx)
	for p := 0; p < partitions; p++ {
		lo := p * chunk
		hi := min(lo+chunk, len(items))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			part, err := Average(newT, items[lo:hi]...)
			if err != nil {
				return err
			}
			partials[p] = part

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return zero, fmt.Errorf("ParallelAverage: %w", err)
	}

	return Average(newT, partials...)
}
