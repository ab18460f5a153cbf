package raster

import (
	"fmt"

	"github.com/katalvlaran/voxlab"
)

// ErrOutOfBounds indicates a region that does not fit inside the raster.
var ErrOutOfBounds = fmt.Errorf("raster: %w", voxlab.ErrBounds)

// Point is an integer lattice position. Z is 0 for 2D rasters.
type Point struct {
	X, Y, Z int
}

// Box is the half-open region [Min, Max) along every axis.
type Box struct {
	Min, Max Point
}

// Rect returns the 2D box [x0,x1)×[y0,y1) on slice 0.
func Rect(x0, y0, x1, y1 int) Box {
	return Box{Min: Point{x0, y0, 0}, Max: Point{x1, y1, 1}}
}

// Empty reports whether b contains no positions.
func (b Box) Empty() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y || b.Max.Z <= b.Min.Z
}

// Size returns the extents of b.
func (b Box) Size() (w, h, d int) {
	return b.Max.X - b.Min.X, b.Max.Y - b.Min.Y, b.Max.Z - b.Min.Z
}

// Bounds returns the box covering the whole raster.
func (r *Raster) Bounds() Box {
	return Box{Max: Point{r.width, r.height, r.depth}}
}

// Contains reports whether b is non-empty and lies inside r.
func (r *Raster) Contains(b Box) bool {
	return !b.Empty() &&
		b.Min.X >= 0 && b.Min.Y >= 0 && b.Min.Z >= 0 &&
		b.Max.X <= r.width && b.Max.Y <= r.height && b.Max.Z <= r.depth
}

// Crop copies the samples inside b into a new raster of the same format
// and dimensionality. Returns ErrOutOfBounds when b leaves the extents;
// r is never modified.
func (r *Raster) Crop(b Box) (*Raster, error) {
	if !r.Contains(b) {
		return nil, fmt.Errorf("%w: crop %v of %v", ErrOutOfBounds, b, r.Bounds())
	}
	w, h, d := b.Size()
	out, err := newRaster(w, h, d, r.dims, r.format)
	if err != nil {
		return nil, err
	}
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			src := r.Index(b.Min.X, b.Min.Y+y, b.Min.Z+z)
			copy(out.data[out.Index(0, y, z):out.Index(0, y, z)+w], r.data[src:src+w])
		}
	}

	return out, nil
}

// Slice returns a 2D copy of slice z.
func (r *Raster) Slice(z int) (*Raster, error) {
	if z < 0 || z >= r.depth {
		return nil, fmt.Errorf("%w: slice %d of %d", ErrOutOfBounds, z, r.depth)
	}
	out, _ := newRaster(r.width, r.height, 1, 2, r.format)
	plane := r.width * r.height
	copy(out.data, r.data[z*plane:(z+1)*plane])

	return out, nil
}

// Stack assembles equally shaped 2D rasters into a 3D raster, slice i
// taken from slices[i]. The format of the first slice is used.
func Stack(slices []*Raster) (*Raster, error) {
	if len(slices) == 0 || slices[0] == nil {
		return nil, fmt.Errorf("%w: no slices", ErrInvalidShape)
	}
	first := slices[0]
	out, err := New3D(first.width, first.height, len(slices), first.format)
	if err != nil {
		return nil, err
	}
	plane := first.width * first.height
	for i, s := range slices {
		if s == nil || s.dims != 2 || s.width != first.width || s.height != first.height {
			return nil, fmt.Errorf("%w: slice %d does not match %dx%d", ErrInvalidShape, i, first.width, first.height)
		}
		copy(out.data[i*plane:(i+1)*plane], s.data)
	}

	return out, nil
}
