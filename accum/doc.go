// SPDX-License-Identifier: MIT

// Package accum defines the accumulation protocol used to turn running
// weighted sums into weighted means, and the reductions built on it.
//
// State machine:
//
//	Idle ──StartAccumulation──▶ Accumulating ──EndAccumulation──▶ Finalized
//	  ▲                              │  ▲                              │
//	  │                              └──┘ Accumulate / AccumulateGain   │
//	  └──────────────── StartAccumulation (new cycle) ◀─────────────────┘
//
//	NoData (from any state) ──▶ Empty
//
// Every transition is checked: accumulating outside a cycle or ending a cycle
// twice returns ErrInvalidState and leaves the object untouched.
//
// Gain:
//
//	AccumulateGain(x, w, G) contributes w·G·x to the running sum and w·G² to
//	the weight sum. For samples x = G·s measured through a gain G the final
//	mean Σ(wGx)/Σ(wG²) estimates s. Accumulate(x, w) is AccumulateGain(x, w, 1).
//
// Reductions:
//
//	Sum merges independent values into a fresh instance from a Factory;
//	Average is Sum followed by one EndAccumulation. Both are commutative and
//	associative for accumulators that carry their weight (Mean does), which
//	is what ParallelAverage relies on to reduce disjoint partitions
//	concurrently and fold the partial results once.
package accum
