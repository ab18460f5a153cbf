package attribute

import (
	"context"
	"fmt"
	"strings"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/connectivity"
)

// Sentinel errors for attribute filters. All wrap voxlab.ErrConfiguration.
var (
	// ErrInvalidThreshold is returned for a zero, negative, NaN or
	// infinite threshold.
	ErrInvalidThreshold = fmt.Errorf("attribute: %w: threshold must be positive and finite", voxlab.ErrConfiguration)

	// ErrInvalidKind is returned for an unknown FilterKind.
	ErrInvalidKind = fmt.Errorf("attribute: %w: invalid filter kind", voxlab.ErrConfiguration)

	// ErrInvalidMeasure is returned for an unknown Measure.
	ErrInvalidMeasure = fmt.Errorf("attribute: %w: invalid measure", voxlab.ErrConfiguration)

	// ErrUnsupportedMeasure is returned when a measure does not apply to
	// the dimensionality of the connectivity (Area needs 2D, Volume 3D).
	ErrUnsupportedMeasure = fmt.Errorf("attribute: %w: measure not supported for connectivity", voxlab.ErrConfiguration)
)

// FilterKind selects the filter output.
type FilterKind int

const (
	// Opening removes small bright structures.
	Opening FilterKind = iota
	// TopHat is the residue X − Opening(X): the removed bright structures.
	TopHat
	// Closing removes small dark structures.
	Closing
	// BottomHat is the residue Closing(X) − X: the removed dark structures.
	BottomHat
)

var kindNames = [...]string{"opening", "tophat", "closing", "bottomhat"}

// Valid reports whether k is a known filter kind.
func (k FilterKind) Valid() bool { return k >= Opening && k <= BottomHat }

// dual reports whether k floods dark structures (ascending order).
func (k FilterKind) dual() bool { return k == Closing || k == BottomHat }

func (k FilterKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("invalid(%d)", int(k))
	}
	return kindNames[k]
}

// ParseFilterKind maps a case-insensitive name ("opening", "tophat",
// "closing", "bottomhat") to a FilterKind.
func ParseFilterKind(s string) (FilterKind, error) {
	s = strings.ToLower(strings.ReplaceAll(s, "-", ""))
	for k, name := range kindNames {
		if s == name {
			return FilterKind(k), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Measure is the component attribute compared against the threshold.
type Measure int

const (
	// Area counts samples of 2D components.
	Area Measure = iota
	// Volume counts samples of 3D components.
	Volume
	// BoxDiagonal is the bounding-box diagonal length.
	BoxDiagonal
)

var measureNames = [...]string{"area", "volume", "boxdiagonal"}

// Valid reports whether m is a known measure.
func (m Measure) Valid() bool { return m >= Area && m <= BoxDiagonal }

// Supports reports whether m can be evaluated under conn.
func (m Measure) Supports(conn connectivity.Connectivity) bool {
	switch m {
	case Area:
		return conn.Dims() == 2
	case Volume:
		return conn.Dims() == 3
	case BoxDiagonal:
		return conn.Validate() == nil
	}
	return false
}

func (m Measure) String() string {
	if !m.Valid() {
		return fmt.Sprintf("invalid(%d)", int(m))
	}
	return measureNames[m]
}

// ParseMeasure maps a case-insensitive name ("area", "volume",
// "boxdiagonal") to a Measure.
func ParseMeasure(s string) (Measure, error) {
	s = strings.ToLower(strings.ReplaceAll(s, "-", ""))
	for m, name := range measureNames {
		if s == name {
			return Measure(m), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidMeasure, s)
}

// Option configures a Filter via functional arguments.
type Option func(*Options)

// Options holds execution parameters of a Filter.
type Options struct {
	// Ctx allows cancellation between flooded samples.
	Ctx context.Context

	// OnProgress, if set, is notified once per scanline worth of
	// flooded samples.
	OnProgress voxlab.ProgressFunc
}

// DefaultOptions returns Options with a background context.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
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
