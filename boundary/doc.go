// Package boundary extracts the boundaries between regions of a label map
// and labels them as disjoint segments.
//
// What:
//
//   - Extract inspects the closed neighborhood of every sample and
//     collects the distinct region labels present. Samples seeing more
//     than one region form the boundary mask.
//   - The mask is labeled with labeling.Label under the same
//     connectivity, yielding disjoint boundary segments.
//   - For every segment, the sorted set of region labels it separates is
//     recorded.
//
// Placement:
//
//   - Both (default): samples on either side of a label change are marked,
//     giving two-sample-thick boundaries between touching regions.
//   - Thin: a labeled sample is marked only when it touches a smaller
//     region label, giving one-sample-thick boundaries. Background samples
//     between regions (watershed lines) are marked under both placements.
//
// Background 0 is not a region unless WithBackgroundRegion(true).
//
// Complexity: O(N·d) time, O(N) memory.
package boundary
