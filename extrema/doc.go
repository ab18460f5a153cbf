// Package extrema detects regional maxima and minima of 2D rasters and 3D
// volumes by plateau flooding.
//
// What:
//
//   - Find / RegionalMaxima / RegionalMinima: binary mask, 255 on every
//     sample of an accepted plateau and 0 elsewhere.
//   - Detect: the mask together with accepted and rejected plateau counts.
//   - Label: accepted plateaus labeled as connected components, ready to
//     seed a marker-based segmentation.
//
// A plateau is a maximal connected set of equal-valued samples. It is a
// regional maximum when every sample adjacent to it (outside the plateau)
// is strictly lower; minima mirror the comparison.
//
// Guarantees:
//
//   - Samples are visited in priority order (decreasing for maxima,
//     increasing for minima), ties in scan order.
//   - Each plateau is explored completely before its verdict, and the
//     verdict is applied to all of its samples at once.
//   - The mask depends only on the order of sample values, so it is
//     unchanged by any strictly increasing remapping of values.
//   - A raster made of one single plateau has no outside neighbors and is
//     accepted as a whole.
//   - NaN samples never belong to an extremum, and a plateau with a NaN
//     neighbor is rejected.
//
// Complexity:
//
//   - O(N·d) time for integral formats (bucket queue), O(N·(d + log N))
//     for Float32; O(N) memory.
package extrema
