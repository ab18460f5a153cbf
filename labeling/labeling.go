package labeling

import (
	"fmt"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/connectivity"
	"github.com/katalvlaran/voxlab/raster"
)

// labeler encapsulates the mutable state of one labeling call. The output
// buffer, queue and neighbor scratch are owned exclusively by it.
type labeler struct {
	src     []float32
	out     *raster.Raster
	labels  []float32
	nb      *raster.Neighborhood
	bg      float32
	regions bool
	queue   []int
	nbuf    []int
	next    int
	max     int
}

// Label labels the connected foreground components of r (samples whose
// value differs from the background, 0 by default) under conn.
// Returns a new label map owned by the caller, or ErrLabelOverflow when
// the output format runs out of labels.
func Label(r *raster.Raster, conn connectivity.Connectivity, opts ...Option) (*raster.Raster, error) {
	return run(r, conn, false, opts)
}

// LabelRegions labels every maximal connected region of equal value,
// except regions whose value is the background, which stay 0.
func LabelRegions(r *raster.Raster, conn connectivity.Connectivity, opts ...Option) (*raster.Raster, error) {
	return run(r, conn, true, opts)
}

func run(r *raster.Raster, conn connectivity.Connectivity, regions bool, opts []Option) (*raster.Raster, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	nb, err := raster.NewNeighborhood(r, conn)
	if err != nil {
		return nil, err
	}
	out, err := raster.NewLike(r, o.Format)
	if err != nil {
		return nil, err
	}

	l := &labeler{
		src:     r.Data(),
		out:     out,
		labels:  out.Data(),
		nb:      nb,
		bg:      o.Background,
		regions: regions,
		queue:   make([]int, 0, r.Width()),
		nbuf:    make([]int, 0, nb.Size()),
		max:     o.Format.MaxLabel(),
	}
	tr := voxlab.NewTracker(o.Ctx, o.OnProgress, r.Len(), r.Width())
	if err := tr.Start(); err != nil {
		return nil, err
	}
	if err := l.scan(tr); err != nil {
		return nil, err
	}
	tr.Finish()

	return out, nil
}

// scan walks samples in storage order and floods every unlabeled
// foreground seed.
func (l *labeler) scan(tr *voxlab.Tracker) error {
	for i, v := range l.src {
		if v != l.bg && l.labels[i] == 0 {
			if l.next == l.max {
				return fmt.Errorf("%w: component %d exceeds %s maximum label %d",
					ErrLabelOverflow, l.next+1, l.out.Format(), l.max)
			}
			l.next++
			l.flood(i, float32(l.next))
		}
		if err := tr.Advance(); err != nil {
			return err
		}
	}

	return nil
}

// flood assigns label to every sample reachable from seed that satisfies
// the seed's membership criterion. Samples are labeled on enqueue, so each
// is queued at most once.
func (l *labeler) flood(seed int, label float32) {
	sv := l.src[seed]
	l.labels[seed] = label
	l.queue = append(l.queue[:0], seed)
	for qi := 0; qi < len(l.queue); qi++ {
		u := l.queue[qi]
		l.nbuf = l.nb.Append(l.nbuf[:0], u)
		for _, v := range l.nbuf {
			if l.labels[v] != 0 || !l.member(sv, l.src[v]) {
				continue
			}
			l.labels[v] = label
			l.queue = append(l.queue, v)
		}
	}
}

// member reports whether value v joins a component seeded with value sv.
func (l *labeler) member(sv, v float32) bool {
	if l.regions {
		return v == sv
	}
	return v != l.bg
}
