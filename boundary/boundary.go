package boundary

import (
	"slices"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/connectivity"
	"github.com/katalvlaran/voxlab/labeling"
	"github.com/katalvlaran/voxlab/raster"
)

// maskOn is the boundary mask foreground value.
const maskOn = 255

// extractor holds the scratch state of one Extract call.
type extractor struct {
	labels []float32
	nb     *raster.Neighborhood
	opts   Options
	nbuf   []int
	set    []int
}

// Extract computes the boundary segments of a label map under conn.
// The label map must hold non-negative integer labels
// (labeling.ErrNotLabelMap otherwise). Segment labeling may fail with
// labeling.ErrLabelOverflow when the segment format is too narrow.
func Extract(labels *raster.Raster, conn connectivity.Connectivity, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	nb, err := raster.NewNeighborhood(labels, conn)
	if err != nil {
		return nil, err
	}
	if err := labeling.Validate(labels); err != nil {
		return nil, err
	}

	e := &extractor{
		labels: labels.Data(),
		nb:     nb,
		opts:   o,
		nbuf:   make([]int, 0, nb.Size()),
		set:    make([]int, 0, nb.Size()+1),
	}

	// 1) Boundary mask.
	mask, err := raster.NewLike(labels, raster.Gray8)
	if err != nil {
		return nil, err
	}
	tr := voxlab.NewTracker(o.Ctx, o.OnProgress, labels.Len(), labels.Width())
	if err := tr.Start(); err != nil {
		return nil, err
	}
	m := mask.Data()
	for i := range e.labels {
		if e.marked(i) {
			m[i] = maskOn
		}
		if err := tr.Advance(); err != nil {
			return nil, err
		}
	}

	// 2) Disjoint segments.
	segs, err := labeling.Label(mask, conn, labeling.WithFormat(o.Format), labeling.WithContext(o.Ctx))
	if err != nil {
		return nil, err
	}

	// 3) Regions separated by each segment.
	acc := make(map[int]map[int]struct{})
	for i, s := range segs.Data() {
		if s == 0 {
			continue
		}
		seg := int(s)
		regions, ok := acc[seg]
		if !ok {
			regions = make(map[int]struct{})
			acc[seg] = regions
		}
		for _, l := range e.regionSet(i) {
			regions[l] = struct{}{}
		}
	}
	res := &Result{Segments: segs, Regions: make(map[int][]int, len(acc))}
	for seg, regions := range acc {
		list := make([]int, 0, len(regions))
		for l := range regions {
			list = append(list, l)
		}
		slices.Sort(list)
		res.Regions[seg] = list
	}
	tr.Finish()

	return res, nil
}

// included reports whether label l counts as a region.
func (e *extractor) included(l int) bool {
	return l != 0 || e.opts.BackgroundRegion
}

// regionSet returns the distinct region labels in the closed neighborhood
// of sample i, in first-seen order. The slice is reused between calls.
func (e *extractor) regionSet(i int) []int {
	e.set = e.set[:0]
	e.add(int(e.labels[i]))
	e.nbuf = e.nb.Append(e.nbuf[:0], i)
	for _, j := range e.nbuf {
		e.add(int(e.labels[j]))
	}

	return e.set
}

func (e *extractor) add(l int) {
	if !e.included(l) || slices.Contains(e.set, l) {
		return
	}
	e.set = append(e.set, l)
}

// marked applies the placement rule to sample i.
func (e *extractor) marked(i int) bool {
	if len(e.regionSet(i)) < 2 {
		return false
	}
	own := int(e.labels[i])
	if e.opts.Placement == Both || !e.included(own) {
		return true
	}
	for _, l := range e.set {
		if l < own {
			return true
		}
	}

	return false
}
