package voxlab

import "errors"

// Sentinel errors shared by every algorithm package. Package-level errors
// wrap one of these, so callers can branch with errors.Is regardless of
// which package raised them.
var (
	// ErrConfiguration indicates an invalid connectivity, sample format,
	// threshold or parameter combination. It is always raised before any
	// processing takes place.
	ErrConfiguration = errors.New("voxlab: invalid configuration")

	// ErrLabelOverflow indicates that more components were discovered than
	// the chosen label format can represent. It is terminal for the call.
	ErrLabelOverflow = errors.New("voxlab: label overflow")

	// ErrBounds indicates a requested region that falls outside the raster.
	ErrBounds = errors.New("voxlab: region out of bounds")
)
