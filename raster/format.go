package raster

import (
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/voxlab"
)

// ErrInvalidFormat indicates a sample format other than 8, 16 or 32 bits.
var ErrInvalidFormat = fmt.Errorf("raster: %w: sample format must be 8, 16 or 32 bits", voxlab.ErrConfiguration)

// SampleFormat is the nominal bit depth of a raster's samples.
type SampleFormat int

const (
	// Gray8 holds unsigned 8-bit samples.
	Gray8 SampleFormat = 8
	// Gray16 holds unsigned 16-bit samples.
	Gray16 SampleFormat = 16
	// Float32 holds 32-bit floating-point samples.
	Float32 SampleFormat = 32
)

// maxFloatLabel is the largest integer such that every label up to it
// is exactly representable in a float32 raster.
const maxFloatLabel = 1 << 23

// ParseFormat converts a bit depth into a SampleFormat.
func ParseFormat(bits int) (SampleFormat, error) {
	f := SampleFormat(bits)
	if !f.Valid() {
		return 0, fmt.Errorf("%w (got %d)", ErrInvalidFormat, bits)
	}

	return f, nil
}

// Valid reports whether f is one of the supported formats.
func (f SampleFormat) Valid() bool {
	return f == Gray8 || f == Gray16 || f == Float32
}

// Integral reports whether samples of f are integers.
func (f SampleFormat) Integral() bool {
	return f == Gray8 || f == Gray16
}

// Levels returns the number of distinct integral values (256 or 65536),
// or 0 for Float32.
func (f SampleFormat) Levels() int {
	switch f {
	case Gray8:
		return 1 << 8
	case Gray16:
		return 1 << 16
	default:
		return 0
	}
}

// MaxLabel returns the largest label a LabelMap of format f can hold.
func (f SampleFormat) MaxLabel() int {
	switch f {
	case Gray8:
		return math.MaxUint8
	case Gray16:
		return math.MaxUint16
	case Float32:
		return maxFloatLabel
	default:
		return 0
	}
}

// MaxValue returns the largest representable sample value.
func (f SampleFormat) MaxValue() float32 {
	switch f {
	case Gray8:
		return math.MaxUint8
	case Gray16:
		return math.MaxUint16
	default:
		return math.MaxFloat32
	}
}

// Clamp saturates v into the value range of f and rounds it for
// integral formats.
func (f SampleFormat) Clamp(v float64) float32 {
	if !f.Integral() {
		if v > math.MaxFloat32 {
			return math.MaxFloat32
		}
		if v < -math.MaxFloat32 {
			return -math.MaxFloat32
		}
		return float32(v)
	}
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if hi := float64(f.MaxValue()); v >= hi {
		return float32(hi)
	}

	return float32(math.Round(v))
}

// String implements fmt.Stringer.
func (f SampleFormat) String() string {
	switch f {
	case Gray8:
		return "gray8"
	case Gray16:
		return "gray16"
	case Float32:
		return "float32"
	default:
		return "invalid(" + strconv.Itoa(int(f)) + ")"
	}
}
