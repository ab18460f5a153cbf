// Package connectivity enumerates lattice neighborhoods for rasters and
// voxel volumes.
//
// What:
//
//   - Connectivity selects the neighbor topology: C4 or C8 in 2D, C6 or
//     C26 in 3D. Its numeric value is the neighbor count.
//   - Offsets returns the ordered relative neighbor offsets.
//
// Determinism:
//
//	The order is fixed and identical across runs, so every traversal that
//	walks neighbors in this order is reproducible:
//
//	  C4  = N, W, E, S
//	  C8  = C4 + NW, NE, SW, SE
//	  C6  = C4 + below (z-1), above (z+1)
//	  C26 = C6 + the 20 remaining offsets in (z, y, x) order
//
//	C8 and C26 start with C4 and C6 respectively, so the richer
//	neighborhood is always a superset of the poorer one.
//
// Errors:
//
//   - ErrInvalidConnectivity: value outside {4, 8, 6, 26}; wraps
//     voxlab.ErrConfiguration.
package connectivity
