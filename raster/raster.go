package raster

import (
	"fmt"
	"math"

	"github.com/katalvlaran/voxlab"
)

// ErrInvalidShape indicates non-positive dimensions or a sample buffer
// whose length does not match the dimensions.
var ErrInvalidShape = fmt.Errorf("raster: %w: invalid raster shape", voxlab.ErrConfiguration)

// Number is the set of Go sample types accepted by FromSamples.
type Number interface {
	~uint8 | ~uint16 | ~uint32 | ~int8 | ~int16 | ~int32 | ~int | ~float32 | ~float64
}

// Raster is a dense grid of samples. 2D rasters have Depth 1 and Dims 2;
// a 3D raster may also have Depth 1 but keeps Dims 3, so the number of
// dimensions is never inferred from the extents.
type Raster struct {
	width, height, depth int
	dims                 int
	format               SampleFormat
	data                 []float32
}

// New2D allocates a zero-filled width×height raster.
// Returns ErrInvalidShape or ErrInvalidFormat on bad parameters.
func New2D(width, height int, format SampleFormat) (*Raster, error) {
	return newRaster(width, height, 1, 2, format)
}

// New3D allocates a zero-filled width×height×depth raster.
func New3D(width, height, depth int, format SampleFormat) (*Raster, error) {
	return newRaster(width, height, depth, 3, format)
}

func newRaster(w, h, d, dims int, f SampleFormat) (*Raster, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidFormat, int(f))
	}
	if w <= 0 || h <= 0 || d <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidShape, w, h, d)
	}
	n := w * h * d
	if n/w/h != d {
		return nil, fmt.Errorf("%w: %dx%dx%d overflows", ErrInvalidShape, w, h, d)
	}

	return &Raster{width: w, height: h, depth: d, dims: dims, format: f, data: make([]float32, n)}, nil
}

// FromSamples builds a raster from a typed buffer in row-major, then
// slice-major order. depth == 0 builds a 2D raster. Values are clamped
// into the format's range.
func FromSamples[T Number](width, height, depth int, format SampleFormat, samples []T) (*Raster, error) {
	var (
		r   *Raster
		err error
	)
	if depth == 0 {
		r, err = New2D(width, height, format)
	} else {
		r, err = New3D(width, height, depth, format)
	}
	if err != nil {
		return nil, err
	}
	if len(samples) != len(r.data) {
		return nil, fmt.Errorf("%w: %d samples for %d positions", ErrInvalidShape, len(samples), len(r.data))
	}
	for i, v := range samples {
		r.data[i] = format.Clamp(float64(v))
	}

	return r, nil
}

// FromRows builds a 2D raster from rows[y][x]. All rows must have the same
// non-zero length.
func FromRows[T Number](rows [][]T, format SampleFormat) (*Raster, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrInvalidShape)
	}
	w := len(rows[0])
	flat := make([]T, 0, w*len(rows))
	for _, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: rows must have the same length", ErrInvalidShape)
		}
		flat = append(flat, row...)
	}

	return FromSamples(w, len(rows), 0, format, flat)
}

// NewLike allocates a zero-filled raster with the shape of r and the
// given format.
func NewLike(r *Raster, format SampleFormat) (*Raster, error) {
	return newRaster(r.width, r.height, r.depth, r.dims, format)
}

// Width returns the number of columns.
func (r *Raster) Width() int { return r.width }

// Height returns the number of rows.
func (r *Raster) Height() int { return r.height }

// Depth returns the number of slices (1 for 2D rasters).
func (r *Raster) Depth() int { return r.depth }

// Dims returns 2 or 3.
func (r *Raster) Dims() int { return r.dims }

// Format returns the sample format.
func (r *Raster) Format() SampleFormat { return r.format }

// Len returns the total number of samples.
func (r *Raster) Len() int { return len(r.data) }

// Data exposes the backing slice. Writes through it are visible to r.
func (r *Raster) Data() []float32 { return r.data }

// Index maps (x,y,z) to a linear index.
// Complexity: O(1).
func (r *Raster) Index(x, y, z int) int {
	return (z*r.height+y)*r.width + x
}

// Coord converts a linear index back to (x,y,z).
// Complexity: O(1).
func (r *Raster) Coord(i int) (x, y, z int) {
	plane := r.width * r.height
	z = i / plane
	rem := i - z*plane

	return rem % r.width, rem / r.width, z
}

// InBounds reports whether (x,y,z) addresses a sample.
func (r *Raster) InBounds(x, y, z int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height && z >= 0 && z < r.depth
}

// At returns the sample at (x,y,z). It panics when out of bounds.
func (r *Raster) At(x, y, z int) float32 {
	r.mustContain(x, y, z)
	return r.data[r.Index(x, y, z)]
}

// Set stores v at (x,y,z) without clamping. It panics when out of bounds.
func (r *Raster) Set(x, y, z int, v float32) {
	r.mustContain(x, y, z)
	r.data[r.Index(x, y, z)] = v
}

// AtIndex returns the sample at linear index i.
func (r *Raster) AtIndex(i int) float32 { return r.data[i] }

// SetIndex stores v at linear index i without clamping.
func (r *Raster) SetIndex(i int, v float32) { r.data[i] = v }

func (r *Raster) mustContain(x, y, z int) {
	if !r.InBounds(x, y, z) {
		panic(fmt.Sprintf("raster: (%d,%d,%d) outside %dx%dx%d", x, y, z, r.width, r.height, r.depth))
	}
}

// Clone returns a deep copy of r.
func (r *Raster) Clone() *Raster {
	c := *r
	c.data = make([]float32, len(r.data))
	copy(c.data, r.data)

	return &c
}

// SameShape reports whether o has the same extents and dimensionality.
func (r *Raster) SameShape(o *Raster) bool {
	return o != nil && r.width == o.width && r.height == o.height && r.depth == o.depth && r.dims == o.dims
}

// Equal reports whether o has the same shape, format and samples.
func (r *Raster) Equal(o *Raster) bool {
	if !r.SameShape(o) || r.format != o.format {
		return false
	}
	for i, v := range r.data {
		if o.data[i] != v {
			return false
		}
	}

	return true
}

// MinMax returns the smallest and largest sample values.
func (r *Raster) MinMax() (lo, hi float32) {
	lo, hi = math.MaxFloat32, -math.MaxFloat32
	for _, v := range r.data {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	return lo, hi
}

// String implements fmt.Stringer with a short shape description.
func (r *Raster) String() string {
	if r.dims == 2 {
		return fmt.Sprintf("%dx%d %s", r.width, r.height, r.format)
	}
	return fmt.Sprintf("%dx%dx%d %s", r.width, r.height, r.depth, r.format)
}
