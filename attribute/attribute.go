package attribute

import (
	"fmt"
	"math"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/connectivity"
	"github.com/katalvlaran/voxlab/internal/pqueue"
	"github.com/katalvlaran/voxlab/raster"
)

// Filter is a validated attribute filter. It holds no per-call state and
// may be applied to many rasters, concurrently if needed.
type Filter struct {
	kind      FilterKind
	measure   Measure
	threshold float64
	conn      connectivity.Connectivity
	opts      Options
}

// New validates the filter parameters. Every configuration error is
// reported here, before any raster is touched.
func New(kind FilterKind, measure Measure, threshold float64, conn connectivity.Connectivity, opts ...Option) (*Filter, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKind, kind)
	}
	if !measure.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMeasure, measure)
	}
	if threshold <= 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	if err := conn.Validate(); err != nil {
		return nil, err
	}
	if !measure.Supports(conn) {
		return nil, fmt.Errorf("%w: %v with %v", ErrUnsupportedMeasure, measure, conn)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Filter{kind: kind, measure: measure, threshold: threshold, conn: conn, opts: o}, nil
}

// Kind returns the filter kind.
func (f *Filter) Kind() FilterKind { return f.kind }

// Measure returns the attribute measure.
func (f *Filter) Measure() Measure { return f.measure }

// Threshold returns the attribute threshold.
func (f *Filter) Threshold() float64 { return f.threshold }

// Connectivity returns the flooding connectivity.
func (f *Filter) Connectivity() connectivity.Connectivity { return f.conn }

func (f *Filter) String() string {
	return fmt.Sprintf("%v(%v>=%g, %v)", f.kind, f.measure, f.threshold, f.conn)
}

// Apply filters r and returns a new raster of the same shape and format.
// r must have the dimensionality of the filter's connectivity.
func (f *Filter) Apply(r *raster.Raster) (*raster.Raster, error) {
	nb, err := raster.NewNeighborhood(r, f.conn)
	if err != nil {
		return nil, err
	}
	if r.Len() > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d samples exceed the filter's index range", raster.ErrInvalidShape, r.Len())
	}
	fl := newFlooder(r, nb, f)
	order := pqueue.Descending
	if f.kind.dual() {
		order = pqueue.Ascending
	}
	if err := fl.flood(order, voxlab.NewTracker(f.opts.Ctx, f.opts.OnProgress, r.Len(), r.Width())); err != nil {
		return nil, err
	}

	out := r.Clone()
	res := out.Data()
	fl.resolve(res)
	x := r.Data()
	switch f.kind {
	case TopHat:
		for i := range res {
			res[i] = x[i] - res[i]
		}
	case BottomHat:
		for i := range res {
			res[i] -= x[i]
		}
	}

	return out, nil
}

// AreaOpening removes bright 2D structures of fewer than threshold samples.
func AreaOpening(r *raster.Raster, threshold float64, conn connectivity.Connectivity, opts ...Option) (*raster.Raster, error) {
	return apply(r, Opening, Area, threshold, conn, opts)
}

// VolumeOpening removes bright 3D structures of fewer than threshold samples.
func VolumeOpening(r *raster.Raster, threshold float64, conn connectivity.Connectivity, opts ...Option) (*raster.Raster, error) {
	return apply(r, Opening, Volume, threshold, conn, opts)
}

// WhiteTopHat returns the bright structures removed by the attribute
// opening with the given measure and threshold.
func WhiteTopHat(r *raster.Raster, measure Measure, threshold float64, conn connectivity.Connectivity, opts ...Option) (*raster.Raster, error) {
	return apply(r, TopHat, measure, threshold, conn, opts)
}

func apply(r *raster.Raster, kind FilterKind, m Measure, threshold float64, conn connectivity.Connectivity, opts []Option) (*raster.Raster, error) {
	f, err := New(kind, m, threshold, conn, opts...)
	if err != nil {
		return nil, err
	}

	return f.Apply(r)
}
