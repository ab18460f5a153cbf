// Package voxlab is an in-memory toolkit of raster and voxel graph
// traversals for 2D and 3D image analysis: connected-component labeling,
// label boundaries, regional extrema and attribute openings.
//
// What is voxlab?
//
//	A pure-Go library that treats every pixel or voxel as a graph vertex
//	and every lattice neighbor as an edge:
//		• Connectivity models: 4/8 neighbors in 2D, 6/26 in 3D, fixed order
//		• Rasters: dense 2D/3D grids with an explicit 8/16/32-bit format
//		• Labeling: flood-fill connected components, binary or by region
//		• Boundaries: inter-region boundary segments and what they separate
//		• Extrema: regional maxima/minima by plateau flooding
//		• Attribute filters: area/volume/box-diagonal openings and top-hats
//
// Why voxlab?
//
//   - Deterministic – identical input always yields identical labels
//   - Bounded – label spaces are tied to the output bit depth
//   - Near-linear – union-find with path compression and bucket queues
//   - Safe – flood fills use explicit queues, never the call stack
//
// Under the hood, everything is organized under these subpackages:
//
//	connectivity/ — ordered neighbor offsets for 4/8/6/26 connectivity
//	raster/       — Raster, SampleFormat, crops, stacks, image conversion
//	labeling/     — connected-component labeling, stats, relabeling
//	boundary/     — boundary segments between labeled regions
//	extrema/      — regional maxima and minima masks
//	attribute/    — attribute openings, closings and top-hats
//	batch/        — concurrent execution of independent invocations
//	rasterio/     — PNG/TIFF/zstd boundary for files and stacks
//	logging/      — slog setup with rotating log files
//	cmd/voxlab/   — command-line front end and TOML batch jobs
//
// This root package holds the error taxonomy shared by every algorithm
// and the progress/cancellation pacing helper.
//
// Quick ASCII example (1 = foreground):
//
//	1 1 0 1
//	1 0 0 1
//	0 0 1 0
//
// has three 4-connected components and two 8-connected ones.
//
//	go get github.com/katalvlaran/voxlab
package voxlab
