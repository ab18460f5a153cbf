package labeling

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/voxlab/raster"
)

// labelAt validates and converts sample v into a label.
func labelAt(v float32, i int) (int, error) {
	if v < 0 || v != float32(math.Trunc(float64(v))) {
		return 0, fmt.Errorf("%w: value %v at index %d", ErrNotLabelMap, v, i)
	}
	return int(v), nil
}

// Validate returns ErrNotLabelMap if any sample of labels is negative or
// fractional.
func Validate(labels *raster.Raster) error {
	for i, v := range labels.Data() {
		if _, err := labelAt(v, i); err != nil {
			return err
		}
	}

	return nil
}

// Count returns the largest label of a label map produced by Label or
// LabelRegions, which equals its number of components.
func Count(labels *raster.Raster) int {
	_, hi := labels.MinMax()
	if hi < 0 {
		return 0
	}

	return int(hi)
}

// Stats measures every label present in labels, ordered by label.
// Labels absent from the map (gaps) are not reported.
// Returns ErrNotLabelMap for negative or fractional samples.
// Complexity: O(N + L) for N samples and largest label L.
func Stats(labels *raster.Raster) ([]Component, error) {
	byLabel := make(map[int]*Component)
	maxLabel := 0
	for i, v := range labels.Data() {
		lbl, err := labelAt(v, i)
		if err != nil {
			return nil, err
		}
		if lbl == 0 {
			continue
		}
		x, y, z := labels.Coord(i)
		c, ok := byLabel[lbl]
		if !ok {
			c = &Component{
				Label: lbl,
				Box:   raster.Box{Min: raster.Point{X: x, Y: y, Z: z}, Max: raster.Point{X: x + 1, Y: y + 1, Z: z + 1}},
			}
			byLabel[lbl] = c
			maxLabel = max(maxLabel, lbl)
		}
		c.Size++
		c.Box.Min.X = min(c.Box.Min.X, x)
		c.Box.Min.Y = min(c.Box.Min.Y, y)
		c.Box.Min.Z = min(c.Box.Min.Z, z)
		c.Box.Max.X = max(c.Box.Max.X, x+1)
		c.Box.Max.Y = max(c.Box.Max.Y, y+1)
		c.Box.Max.Z = max(c.Box.Max.Z, z+1)
	}

	out := make([]Component, 0, len(byLabel))
	for lbl := 1; lbl <= maxLabel; lbl++ {
		if c, ok := byLabel[lbl]; ok {
			out = append(out, *c)
		}
	}

	return out, nil
}

// Summarize aggregates component sizes. The standard deviation is the
// unbiased sample estimate (0 for fewer than two components).
func Summarize(comps []Component) Summary {
	if len(comps) == 0 {
		return Summary{}
	}
	sizes := make([]float64, len(comps))
	s := Summary{Count: len(comps), MinSize: comps[0].Size, MaxSize: comps[0].Size}
	for i, c := range comps {
		sizes[i] = float64(c.Size)
		s.Total += c.Size
		s.MinSize = min(s.MinSize, c.Size)
		s.MaxSize = max(s.MaxSize, c.Size)
	}
	if len(sizes) == 1 {
		s.Mean = sizes[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(sizes, nil)

	return s
}

// Compact relabels an arbitrary label map so that labels become the
// contiguous range {1..N}, numbered by first appearance in scan order.
// The output format defaults to the input format; WithFormat overrides it.
// Returns ErrLabelOverflow if N exceeds the output format.
func Compact(labels *raster.Raster, opts ...Option) (*raster.Raster, error) {
	o := DefaultOptions()
	o.Format = labels.Format()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	out, err := raster.NewLike(labels, o.Format)
	if err != nil {
		return nil, err
	}

	remap := make(map[int]float32)
	dst := out.Data()
	limit := o.Format.MaxLabel()
	for i, v := range labels.Data() {
		lbl, err := labelAt(v, i)
		if err != nil {
			return nil, err
		}
		if lbl == 0 {
			continue
		}
		nl, ok := remap[lbl]
		if !ok {
			if len(remap) == limit {
				return nil, fmt.Errorf("%w: label %d exceeds %s maximum label %d",
					ErrLabelOverflow, len(remap)+1, o.Format, limit)
			}
			nl = float32(len(remap) + 1)
			remap[lbl] = nl
		}
		dst[i] = nl
	}

	return out, nil
}
