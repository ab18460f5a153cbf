package extrema

import (
	"fmt"
	"math"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/connectivity"
	"github.com/katalvlaran/voxlab/internal/pqueue"
	"github.com/katalvlaran/voxlab/labeling"
	"github.com/katalvlaran/voxlab/raster"
)

// maskOn marks accepted plateau samples.
const maskOn = 255

// detector holds the scratch state of one Detect call.
type detector struct {
	data    []float32
	nb      *raster.Neighborhood
	kind    Kind
	visited []bool
	queue   []int // plateau members in discovery order
	nbuf    []int
}

// Detect finds the regional extrema of r under conn and reports how many
// plateaus were accepted and rejected.
func Detect(r *raster.Raster, kind Kind, conn connectivity.Connectivity, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKind, kind)
	}
	nb, err := raster.NewNeighborhood(r, conn)
	if err != nil {
		return nil, err
	}
	mask, err := raster.NewLike(r, raster.Gray8)
	if err != nil {
		return nil, err
	}

	d := &detector{
		data:    r.Data(),
		nb:      nb,
		kind:    kind,
		visited: make([]bool, r.Len()),
		nbuf:    make([]int, 0, nb.Size()),
	}

	order := pqueue.Descending
	if kind == Minima {
		order = pqueue.Ascending
	}
	q := pqueue.ForRaster(r, order)
	for i, v := range d.data {
		q.Push(i, v)
	}

	tr := voxlab.NewTracker(o.Ctx, o.OnProgress, r.Len(), r.Width())
	if err := tr.Start(); err != nil {
		return nil, err
	}
	res := &Result{Mask: mask}
	m := mask.Data()
	for {
		i, ok := q.Pop()
		if !ok {
			break
		}
		if !d.visited[i] {
			if d.flood(i) {
				for _, j := range d.queue {
					m[j] = maskOn
				}
				res.Accepted++
			} else {
				res.Rejected++
			}
		}
		if err := tr.Advance(); err != nil {
			return nil, err
		}
	}
	tr.Finish()

	return res, nil
}

// Find returns the regional extrema mask of r under conn.
func Find(r *raster.Raster, kind Kind, conn connectivity.Connectivity, opts ...Option) (*raster.Raster, error) {
	res, err := Detect(r, kind, conn, opts...)
	if err != nil {
		return nil, err
	}

	return res.Mask, nil
}

// RegionalMaxima is Find(r, Maxima, conn, opts...).
func RegionalMaxima(r *raster.Raster, conn connectivity.Connectivity, opts ...Option) (*raster.Raster, error) {
	return Find(r, Maxima, conn, opts...)
}

// RegionalMinima is Find(r, Minima, conn, opts...).
func RegionalMinima(r *raster.Raster, conn connectivity.Connectivity, opts ...Option) (*raster.Raster, error) {
	return Find(r, Minima, conn, opts...)
}

// Label finds the regional extrema of r and labels each accepted plateau
// in scan order of its first sample. The label format is set with
// WithFormat; labeling.ErrLabelOverflow is returned when it is too narrow.
func Label(r *raster.Raster, kind Kind, conn connectivity.Connectivity, opts ...Option) (*raster.Raster, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	mask, err := Find(r, kind, conn, opts...)
	if err != nil {
		return nil, err
	}

	return labeling.Label(mask, conn, labeling.WithFormat(o.Format), labeling.WithContext(o.Ctx))
}

// flood explores the plateau of seed breadth-first and reports whether
// every outside neighbor lies strictly beyond the plateau value. The
// exploration always completes; d.queue holds the plateau afterwards.
func (d *detector) flood(seed int) bool {
	v := d.data[seed]
	accept := !math.IsNaN(float64(v))
	d.visited[seed] = true
	d.queue = append(d.queue[:0], seed)
	for head := 0; head < len(d.queue); head++ {
		d.nbuf = d.nb.Append(d.nbuf[:0], d.queue[head])
		for _, j := range d.nbuf {
			u := d.data[j]
			if u == v {
				if !d.visited[j] {
					d.visited[j] = true
					d.queue = append(d.queue, j)
				}
				continue
			}
			if !d.beyond(v, u) {
				accept = false
			}
		}
	}

	return accept
}

// beyond reports whether neighbor value u is strictly lower (Maxima) or
// strictly higher (Minima) than plateau value v. NaN compares false.
func (d *detector) beyond(v, u float32) bool {
	if d.kind == Maxima {
		return u < v
	}
	return u > v
}
