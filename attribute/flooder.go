package attribute

import (
	"math"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/internal/pqueue"
	"github.com/katalvlaran/voxlab/raster"
)

// unprocessed marks samples not yet dequeued.
const unprocessed = -1

// box is an inclusive bounding box.
type box struct {
	x0, y0, z0 int32
	x1, y1, z1 int32
}

func (b *box) extend(o box) {
	b.x0, b.y0, b.z0 = min(b.x0, o.x0), min(b.y0, o.y0), min(b.z0, o.z0)
	b.x1, b.y1, b.z1 = max(b.x1, o.x1), max(b.y1, o.y1), max(b.z1, o.z1)
}

// diagonal returns the box diagonal with sides counted in samples.
func (b box) diagonal(planar bool) float64 {
	dx := float64(b.x1 - b.x0 + 1)
	dy := float64(b.y1 - b.y0 + 1)
	if planar {
		return math.Hypot(dx, dy)
	}
	dz := float64(b.z1 - b.z0 + 1)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// flooder is the scratch state of one Apply call: a union-find forest
// over processed samples plus one attribute accumulator per root.
type flooder struct {
	r      *raster.Raster
	f      []float32
	nb     *raster.Neighborhood
	filter *Filter
	planar bool

	parent []int32
	done   []bool  // attribute reached the threshold
	order  []int32 // processing order
	area   []int32 // Area, Volume
	boxes  []box   // BoxDiagonal
	nbuf   []int
}

func newFlooder(r *raster.Raster, nb *raster.Neighborhood, f *Filter) *flooder {
	n := r.Len()
	fl := &flooder{
		r:      r,
		f:      r.Data(),
		nb:     nb,
		filter: f,
		planar: r.Dims() == 2,
		parent: make([]int32, n),
		done:   make([]bool, n),
		order:  make([]int32, 0, n),
		nbuf:   make([]int, 0, nb.Size()),
	}
	for i := range fl.parent {
		fl.parent[i] = unprocessed
	}
	if f.measure == BoxDiagonal {
		fl.boxes = make([]box, n)
	} else {
		fl.area = make([]int32, n)
	}

	return fl
}

// flood processes every sample in priority order. Cancellation is checked
// by tr between samples.
func (fl *flooder) flood(order pqueue.Order, tr *voxlab.Tracker) error {
	q := pqueue.ForRaster(fl.r, order)
	for i, v := range fl.f {
		q.Push(i, v)
	}
	if err := tr.Start(); err != nil {
		return err
	}
	for {
		p, ok := q.Pop()
		if !ok {
			break
		}
		fl.add(p)
		if err := tr.Advance(); err != nil {
			return err
		}
	}
	tr.Finish()

	return nil
}

// add makes p a singleton root and merges the components of its
// processed neighbors. NaN samples stay isolated singletons: they never
// absorb a neighbor nor get absorbed.
func (fl *flooder) add(p int) {
	fl.parent[p] = int32(p)
	fl.order = append(fl.order, int32(p))
	fl.init(p)
	if isNaN(fl.f[p]) {
		fl.done[p] = true
		return
	}

	fl.nbuf = fl.nb.Append(fl.nbuf[:0], p)
	for _, q := range fl.nbuf {
		if fl.parent[q] == unprocessed {
			continue
		}
		r := fl.find(q)
		if r == p || isNaN(fl.f[r]) {
			continue
		}
		if fl.f[r] == fl.f[p] || !fl.done[r] {
			fl.merge(p, r)
			fl.parent[r] = int32(p)
		} else {
			fl.done[p] = true
		}
	}
	if !fl.done[p] && fl.reached(p) {
		fl.done[p] = true
	}
}

func isNaN(v float32) bool { return v != v }

// find returns the root of i, halving the path on the way.
func (fl *flooder) find(i int) int {
	for int(fl.parent[i]) != i {
		fl.parent[i] = fl.parent[fl.parent[i]]
		i = int(fl.parent[i])
	}

	return i
}

func (fl *flooder) init(p int) {
	if fl.boxes == nil {
		fl.area[p] = 1
		return
	}
	x, y, z := fl.r.Coord(p)
	fl.boxes[p] = box{int32(x), int32(y), int32(z), int32(x), int32(y), int32(z)}
}

// merge accumulates the attribute of root r into root p.
func (fl *flooder) merge(p, r int) {
	if fl.boxes == nil {
		fl.area[p] += fl.area[r]
	} else {
		fl.boxes[p].extend(fl.boxes[r])
	}
	fl.done[p] = fl.done[p] || fl.done[r]
}

func (fl *flooder) reached(p int) bool {
	if fl.boxes == nil {
		return float64(fl.area[p]) >= fl.filter.threshold
	}
	return fl.boxes[p].diagonal(fl.planar) >= fl.filter.threshold
}

// resolve writes the filtered value of every sample into out. Parents are
// always processed after their children, so walking the processing order
// backwards resolves each parent before the samples pointing to it.
func (fl *flooder) resolve(out []float32) {
	for k := len(fl.order) - 1; k >= 0; k-- {
		p := fl.order[k]
		if fl.parent[p] == p {
			out[p] = fl.f[p]
		} else {
			out[p] = out[fl.parent[p]]
		}
	}
}
