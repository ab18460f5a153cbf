// Package rasterio moves rasters between files and memory.
//
// Supported containers:
//
//   - PNG and TIFF images for 2D rasters (8 or 16 bit grayscale; color
//     images are converted to 8-bit luminance on read).
//   - Image stacks: a directory of equally sized 2D images read in
//     lexical file order as the slices of a 3D raster.
//   - Raw: a zstd-compressed binary container that keeps the exact
//     shape, format and float32 samples of any raster, 2D or 3D.
//
// Raw layout (before compression, little-endian):
//
//	magic   [4]byte "VXLR"
//	version uint8   1
//	dims    uint8   2 or 3
//	format  uint8   8, 16 or 32
//	_       uint8   reserved
//	width   uint32
//	height  uint32
//	depth   uint32
//	samples [width*height*depth]float32
package rasterio
