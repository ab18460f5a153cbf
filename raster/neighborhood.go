package raster

import (
	"fmt"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/connectivity"
)

// ErrDimensionMismatch indicates a connectivity whose dimensionality
// differs from the raster's (e.g. C26 on a 2D raster).
var ErrDimensionMismatch = fmt.Errorf("raster: %w: connectivity does not match raster dimensionality", voxlab.ErrConfiguration)

// Neighborhood resolves connectivity offsets against one raster shape.
// It is immutable and may be shared by concurrent readers.
type Neighborhood struct {
	conn    connectivity.Connectivity
	offsets []connectivity.Offset
	deltas  []int // linear index displacement per offset
	planar  bool  // no offset leaves the current slice
	w, h, d int
}

// NewNeighborhood validates conn against r and precomputes linear deltas.
func NewNeighborhood(r *Raster, conn connectivity.Connectivity) (*Neighborhood, error) {
	offsets, err := connectivity.Offsets(conn)
	if err != nil {
		return nil, err
	}
	if conn.Dims() != r.dims {
		return nil, fmt.Errorf("%w: %v on %dD raster", ErrDimensionMismatch, conn, r.dims)
	}
	deltas := make([]int, len(offsets))
	for k, o := range offsets {
		deltas[k] = (o.DZ*r.height+o.DY)*r.width + o.DX
	}

	return &Neighborhood{
		conn:    conn,
		offsets: offsets,
		deltas:  deltas,
		planar:  conn.Dims() == 2,
		w:       r.width,
		h:       r.height,
		d:       r.depth,
	}, nil
}

// Connectivity returns the model the neighborhood was built from.
func (n *Neighborhood) Connectivity() connectivity.Connectivity { return n.conn }

// Size returns the number of offsets.
func (n *Neighborhood) Size() int { return len(n.offsets) }

// Append appends the in-bounds neighbor indices of sample i to dst in
// connectivity order and returns the extended slice.
// Complexity: O(Size()).
func (n *Neighborhood) Append(dst []int, i int) []int {
	plane := n.w * n.h
	z := i / plane
	rem := i - z*plane
	y := rem / n.w
	x := rem - y*n.w

	interior := x > 0 && x < n.w-1 && y > 0 && y < n.h-1 &&
		(n.planar || (z > 0 && z < n.d-1))
	if interior {
		for _, dl := range n.deltas {
			dst = append(dst, i+dl)
		}
		return dst
	}
	for k, o := range n.offsets {
		nx, ny, nz := x+o.DX, y+o.DY, z+o.DZ
		if nx < 0 || nx >= n.w || ny < 0 || ny >= n.h || nz < 0 || nz >= n.d {
			continue
		}
		dst = append(dst, i+n.deltas[k])
	}

	return dst
}
