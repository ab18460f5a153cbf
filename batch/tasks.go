package batch

import (
	"context"
	"slices"

	"github.com/katalvlaran/voxlab/attribute"
	"github.com/katalvlaran/voxlab/boundary"
	"github.com/katalvlaran/voxlab/connectivity"
	"github.com/katalvlaran/voxlab/extrema"
	"github.com/katalvlaran/voxlab/labeling"
	"github.com/katalvlaran/voxlab/raster"
)

// Operation names reported in metrics and spans.
const (
	OpLabel     = "label"
	OpRegions   = "regions"
	OpBoundary  = "boundary"
	OpExtrema   = "extrema"
	OpAttribute = "attribute"
)

// Task is one independent operation over its own raster. Run must honor
// ctx; the task constructors below pass it to the core as WithContext.
type Task struct {
	Name  string
	Op    string
	Input *raster.Raster
	Run   func(ctx context.Context, in *raster.Raster) (*raster.Raster, error)
}

// LabelTask labels the foreground components of in.
func LabelTask(name string, in *raster.Raster, conn connectivity.Connectivity, format raster.SampleFormat) Task {
	return Task{Name: name, Op: OpLabel, Input: in, Run: func(ctx context.Context, in *raster.Raster) (*raster.Raster, error) {
		return labeling.Label(in, conn, labeling.WithContext(ctx), labeling.WithFormat(format))
	}}
}

// RegionsTask labels the same-valued regions of in.
func RegionsTask(name string, in *raster.Raster, conn connectivity.Connectivity, format raster.SampleFormat, background float32) Task {
	return Task{Name: name, Op: OpRegions, Input: in, Run: func(ctx context.Context, in *raster.Raster) (*raster.Raster, error) {
		return labeling.LabelRegions(in, conn,
			labeling.WithContext(ctx), labeling.WithFormat(format), labeling.WithBackground(background))
	}}
}

// BoundaryTask extracts the boundary segments of the label map in.
func BoundaryTask(name string, in *raster.Raster, conn connectivity.Connectivity, opts ...boundary.Option) Task {
	return Task{Name: name, Op: OpBoundary, Input: in, Run: func(ctx context.Context, in *raster.Raster) (*raster.Raster, error) {
		res, err := boundary.Extract(in, conn, append(slices.Clip(opts), boundary.WithContext(ctx))...)
		if err != nil {
			return nil, err
		}
		return res.Segments, nil
	}}
}

// ExtremaTask computes the regional extrema mask of in.
func ExtremaTask(name string, in *raster.Raster, kind extrema.Kind, conn connectivity.Connectivity) Task {
	return Task{Name: name, Op: OpExtrema, Input: in, Run: func(ctx context.Context, in *raster.Raster) (*raster.Raster, error) {
		return extrema.Find(in, kind, conn, extrema.WithContext(ctx))
	}}
}

// AttributeTask applies an attribute filter to in. The filter is validated
// when the task runs.
func AttributeTask(name string, in *raster.Raster, kind attribute.FilterKind, m attribute.Measure, threshold float64, conn connectivity.Connectivity) Task {
	return Task{Name: name, Op: OpAttribute, Input: in, Run: func(ctx context.Context, in *raster.Raster) (*raster.Raster, error) {
		f, err := attribute.New(kind, m, threshold, conn, attribute.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		return f.Apply(in)
	}}
}
