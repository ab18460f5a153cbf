package extrema

import (
	"context"
	"fmt"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/labeling"
	"github.com/katalvlaran/voxlab/raster"
)

// Sentinel errors for extrema detection.
var (
	// ErrInvalidKind is returned for a Kind other than Maxima or Minima.
	ErrInvalidKind = fmt.Errorf("extrema: %w: invalid extremum kind", voxlab.ErrConfiguration)

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = fmt.Errorf("extrema: %w: invalid option supplied", voxlab.ErrConfiguration)
)

// Kind selects regional maxima or regional minima.
type Kind int

const (
	// Maxima accepts plateaus strictly higher than all their neighbors.
	Maxima Kind = iota
	// Minima accepts plateaus strictly lower than all their neighbors.
	Minima
)

// Valid reports whether k is Maxima or Minima.
func (k Kind) Valid() bool { return k == Maxima || k == Minima }

func (k Kind) String() string {
	switch k {
	case Maxima:
		return "maxima"
	case Minima:
		return "minima"
	default:
		return fmt.Sprintf("invalid(%d)", int(k))
	}
}

// ParseKind maps "maxima"/"max" and "minima"/"min" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "maxima", "max":
		return Maxima, nil
	case "minima", "min":
		return Minima, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Option configures detection via functional arguments.
type Option func(*Options)

// Options holds detection parameters.
type Options struct {
	// Ctx allows cancellation between plateaus.
	Ctx context.Context

	// OnProgress, if set, is notified once per scanline worth of visited
	// samples.
	OnProgress voxlab.ProgressFunc

	// Format of the label map produced by Label.
	Format raster.SampleFormat

	err error
}

// DefaultOptions returns Options with a background context and Gray16
// marker labels.
func DefaultOptions() Options {
	return Options{
		Ctx:    context.Background(),
		Format: labeling.DefaultFormat,
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

// WithProgress registers a progress listener.
func WithProgress(fn voxlab.ProgressFunc) Option {
	return func(o *Options) {
		o.OnProgress = fn
	}
}

// WithFormat sets the label format used by Label.
func WithFormat(f raster.SampleFormat) Option {
	return func(o *Options) {
		if !f.Valid() {
			o.err = fmt.Errorf("%w: format %v", ErrOptionViolation, f)
			return
		}
		o.Format = f
	}
}

// Result is the outcome of Detect.
type Result struct {
	Mask     *raster.Raster // Gray8, 255 on accepted plateaus
	Accepted int            // number of accepted plateaus
	Rejected int            // number of rejected plateaus
}

// Plateaus returns the total number of plateaus examined.
func (r *Result) Plateaus() int { return r.Accepted + r.Rejected }
