// Package labeling defines options and sentinel errors for
// connected-component labeling.
package labeling

import (
	"context"
	"fmt"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/raster"
)

// Sentinel errors for labeling.
var (
	// ErrLabelOverflow is returned when the output format cannot hold the
	// next label.
	ErrLabelOverflow = fmt.Errorf("labeling: %w", voxlab.ErrLabelOverflow)

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = fmt.Errorf("labeling: %w: invalid option supplied", voxlab.ErrConfiguration)

	// ErrNotLabelMap is returned when a raster holds negative or
	// fractional values where labels are expected.
	ErrNotLabelMap = fmt.Errorf("labeling: %w: raster is not a label map", voxlab.ErrConfiguration)
)

// DefaultFormat is the label format used when WithFormat is not given.
const DefaultFormat = raster.Gray16

// Option configures labeling via functional arguments. Invalid values are
// recorded and surfaced as ErrOptionViolation before any processing.
type Option func(*Options)

// Options holds labeling parameters.
type Options struct {
	// Ctx allows cancellation between scanlines.
	Ctx context.Context

	// OnProgress, if set, is notified once per scanline.
	OnProgress voxlab.ProgressFunc

	// Format of the output label map; bounds the largest label.
	Format raster.SampleFormat

	// Background is the input value treated as background.
	Background float32

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with a background context, Gray16
// output, background value 0 and no progress listener.
func DefaultOptions() Options {
	return Options{
		Ctx:    context.Background(),
		Format: DefaultFormat,
	}
}

// WithContext sets a context for cooperative cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithProgress registers a per-scanline progress listener.
func WithProgress(fn voxlab.ProgressFunc) Option {
	return func(o *Options) {
		o.OnProgress = fn
	}
}

// WithFormat sets the output label format.
func WithFormat(f raster.SampleFormat) Option {
	return func(o *Options) {
		if !f.Valid() {
			o.err = fmt.Errorf("%w: format %v", ErrOptionViolation, f)
			return
		}
		o.Format = f
	}
}

// WithBackground sets the input value treated as background.
func WithBackground(v float32) Option {
	return func(o *Options) {
		o.Background = v
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// Component describes one label of a label map.
type Component struct {
	Label int
	Size  int        // number of samples
	Box   raster.Box // tight bounding box, half-open
}

// Summary aggregates component sizes.
type Summary struct {
	Count   int
	Total   int
	Mean    float64
	StdDev  float64
	MinSize int
	MaxSize int
}
