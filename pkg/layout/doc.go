// Package layout computes photo collage layouts for a fixed-size page.
//
// One designated "main" photo is placed centrally and the remaining "side"
// photos are tiled symmetrically around it on up to four edges (a row above,
// a row below, a column to the left and a column to the right), with a
// uniform gap between every adjacent pair of photos.
//
// # Architecture
//
// The solver is split into three pure stages:
//
//  1. [Distribute]: map a side-photo count to per-edge counts.
//  2. configuration search: find the square main size and square cell size
//     that best fill the page without overflowing it.
//  3. placement: convert the winning configuration into absolute, centered
//     rectangles in a stable assignment order.
//
// [ComputeGrid] runs all three and is the single entry point.
//
// # Determinism and concurrency
//
// Every function in this package is a deterministic, synchronous function of
// its inputs. No goroutines, no randomness, no I/O, no shared state; calls
// are safe from any number of goroutines.
//
// # Degraded layouts
//
// For structurally valid but difficult inputs (very high photo counts on a
// small page) the solver never fails: it relaxes its legibility floors,
// marks the result degraded and attaches a human-readable warning. The
// structural invariants (count, non-overlap, bounds, uniform side size)
// hold even then.
package layout
