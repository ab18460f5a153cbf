// Package raster provides the dense 2D/3D sample grid every algorithm in
// voxlab consumes and produces.
//
// What:
//
//   - Raster: width × height (× depth) samples in row-major, then
//     slice-major order, with an explicit SampleFormat.
//   - SampleFormat: Gray8, Gray16 or Float32. It is decided once at
//     construction and bounds both the value range and the largest label
//     a LabelMap of that format can hold (255, 65535, 2^23).
//   - Box, Crop, Slice and Stack for region extraction and assembly.
//   - Neighborhood: connectivity offsets resolved against a raster shape,
//     yielding in-bounds neighbor indices in the connectivity order.
//   - FromImage / Image: conversion at the image.Image boundary.
//
// Samples are stored as float32 regardless of format: every 8- and
// 16-bit value and every label up to 2^23 is represented exactly, so
// algorithms are written once over a single storage type.
//
// Errors:
//
//   - ErrInvalidFormat, ErrInvalidShape: wrap voxlab.ErrConfiguration.
//   - ErrOutOfBounds: wraps voxlab.ErrBounds.
//
// Addressing a sample outside the raster through At/Set is a programming
// error and panics like any out-of-range slice access.
package raster
