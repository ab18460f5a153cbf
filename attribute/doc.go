// Package attribute implements grayscale attribute openings, closings and
// their top-hat residues on 2D rasters and 3D volumes.
//
// An attribute opening removes every bright structure (connected
// component of an upper threshold set) whose attribute stays below a
// threshold, flattening it to the level of the surrounding structure.
// Closings act on dark structures the same way.
//
// Measures:
//
//   - Area: number of samples of a 2D component (C4 or C8).
//   - Volume: number of samples of a 3D component (C6 or C26).
//   - BoxDiagonal: Euclidean diagonal of the component's bounding box,
//     side lengths counted in samples (a single 2D sample measures √2).
//
// Algorithm:
//
// Samples are flooded in priority order (highest first for the opening
// family, lowest first for the closing family; ties in scan order). A
// union-find forest with path compression is grown over processed
// samples. When sample p is processed, the root r of every processed
// neighbor is merged into p if r lies on the same level as p or its
// attribute has not reached the threshold; otherwise p is marked as
// having reached it. Output values are resolved in reverse processing
// order: roots keep their own level, every other sample inherits the
// value of its parent.
//
// Properties:
//
//   - Opening is anti-extensive (never increases a sample) and
//     idempotent; closing is extensive and idempotent.
//   - X = Opening(X) + TopHat(X) and Closing(X) = X + BottomHat(X).
//   - A larger threshold never yields a larger opening.
//
// Complexity:
//
//   - Integral formats: O(N·d·α(N)) with a bucket queue.
//   - Float32: O(N·(d·α(N) + log N)) with a binary heap.
//   - Memory: O(N).
//
// Errors:
//
//   - New: ErrInvalidThreshold, ErrInvalidKind, ErrInvalidMeasure,
//     ErrUnsupportedMeasure or a connectivity error, before any work.
//   - Apply: a raster whose dimensionality differs from the filter's
//     connectivity, or the context error on cancellation.
package attribute
