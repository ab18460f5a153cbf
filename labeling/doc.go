// Package labeling assigns connected-component labels to 2D rasters and
// 3D volumes by flood fill.
//
// What:
//
//   - Label: binary variant. Every sample different from the background
//     value is foreground; each connected foreground component receives
//     its own label.
//   - LabelRegions: region variant. The input is taken as pre-partitioned
//     into same-valued regions; each maximal connected same-valued region
//     receives its own label, background samples receive 0.
//   - Stats, Summarize, Count and Compact inspect or normalize label maps.
//
// Guarantees:
//
//   - Samples are scanned in row-major, then slice-major order; the first
//     component met receives label 1, the next label 2, and so on. Labels
//     are exactly {1..N} with no gaps.
//   - Background is 0 in the output regardless of its input value.
//   - Flood fills run on an explicit queue, never on the call stack.
//   - Cancellation (WithContext) is checked once per scanline between
//     components; a started component is always labeled completely.
//
// Complexity:
//
//   - Label, LabelRegions: O(N·d) time, O(N) memory (N samples, d neighbors).
//
// Errors:
//
//   - ErrLabelOverflow: more components than the output format can label
//     (255 for Gray8, 65535 for Gray16, 2^23 for Float32). No partial
//     label map is returned.
//   - ErrOptionViolation: invalid option value.
//   - connectivity / raster configuration errors for invalid or mismatched
//     connectivity.
package labeling
