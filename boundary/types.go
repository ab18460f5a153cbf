package boundary

import (
	"context"
	"fmt"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/raster"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = fmt.Errorf("boundary: %w: invalid option supplied", voxlab.ErrConfiguration)

// Placement selects where boundary samples are placed.
type Placement int

const (
	// Both marks samples on both sides of a label change.
	Both Placement = iota
	// Thin marks only the side carrying the larger label.
	Thin
)

// String implements fmt.Stringer.
func (p Placement) String() string {
	switch p {
	case Both:
		return "both"
	case Thin:
		return "thin"
	default:
		return fmt.Sprintf("placement(%d)", int(p))
	}
}

// ParsePlacement maps "both" or "thin" to a Placement.
func ParsePlacement(s string) (Placement, error) {
	switch s {
	case "both", "":
		return Both, nil
	case "thin":
		return Thin, nil
	}

	return 0, fmt.Errorf("%w: placement %q", ErrOptionViolation, s)
}

// Options holds boundary extraction parameters.
type Options struct {
	Ctx              context.Context
	OnProgress       voxlab.ProgressFunc
	Format           raster.SampleFormat // segment label format
	Placement        Placement
	BackgroundRegion bool // treat label 0 as a region of its own

	err error
}

// Option configures Extract.
type Option func(*Options)

// DefaultOptions returns Both placement, Gray16 segment labels and
// background excluded from region sets.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Format:    raster.Gray16,
		Placement: Both,
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
	return func(o *Options) { o.OnProgress = fn }
}

// WithFormat sets the segment label format.
func WithFormat(f raster.SampleFormat) Option {
	return func(o *Options) {
		if !f.Valid() {
			o.err = fmt.Errorf("%w: format %v", ErrOptionViolation, f)
			return
		}
		o.Format = f
	}
}

// WithPlacement selects Both or Thin boundaries.
func WithPlacement(p Placement) Option {
	return func(o *Options) {
		if p != Both && p != Thin {
			o.err = fmt.Errorf("%w: %v", ErrOptionViolation, p)
			return
		}
		o.Placement = p
	}
}

// WithBackgroundRegion makes label 0 count as a region.
func WithBackgroundRegion(on bool) Option {
	return func(o *Options) { o.BackgroundRegion = on }
}

// Result holds labeled boundary segments and the regions each separates.
type Result struct {
	// Segments is the boundary label map: 0 off-boundary, {1..N} on it.
	Segments *raster.Raster
	// Regions maps each segment label to the sorted region labels it
	// separates.
	Regions map[int][]int
}

// Count returns the number of boundary segments.
func (r *Result) Count() int {
	return len(r.Regions)
}

// Separates returns the regions separated by segment seg, or nil.
func (r *Result) Separates(seg int) []int {
	return r.Regions[seg]
}
