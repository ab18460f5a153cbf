package connectivity

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/voxlab"
)

// ErrInvalidConnectivity indicates a connectivity outside {4, 8, 6, 26}.
var ErrInvalidConnectivity = fmt.Errorf("connectivity: %w: connectivity must be 4 or 8 (2D), 6 or 26 (3D)", voxlab.ErrConfiguration)

// Connectivity selects neighbor topology; its value is the neighbor count.
type Connectivity int

const (
	// C4 uses the 4 orthogonal neighbors of a pixel.
	C4 Connectivity = 4
	// C8 adds the 4 diagonal neighbors to C4.
	C8 Connectivity = 8
	// C6 uses the 6 face neighbors of a voxel.
	C6 Connectivity = 6
	// C26 uses every voxel of the 3×3×3 cube except the center.
	C26 Connectivity = 26
)

// Offset is a relative neighbor displacement. DZ is always 0 in 2D.
type Offset struct {
	DX, DY, DZ int
}

var (
	offsets4 = []Offset{{0, -1, 0}, {-1, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	offsets8 = append(append([]Offset{}, offsets4...),
		Offset{-1, -1, 0}, Offset{1, -1, 0}, Offset{-1, 1, 0}, Offset{1, 1, 0})
	offsets6  = append(append([]Offset{}, offsets4...), Offset{0, 0, -1}, Offset{0, 0, 1})
	offsets26 = build26()
)

// build26 appends the 20 non-face offsets to C6 in (z, y, x) order.
func build26() []Offset {
	out := append([]Offset{}, offsets6...)
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if abs(dx)+abs(dy)+abs(dz) < 2 {
					continue // center or face neighbor, already present
				}
				out = append(out, Offset{dx, dy, dz})
			}
		}
	}

	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Parse converts a neighbor count into a Connectivity.
func Parse(n int) (Connectivity, error) {
	c := Connectivity(n)
	if err := c.Validate(); err != nil {
		return 0, err
	}

	return c, nil
}

// Default returns the face connectivity for the given dimensionality:
// C4 for 2, C6 for 3.
func Default(dims int) (Connectivity, error) {
	switch dims {
	case 2:
		return C4, nil
	case 3:
		return C6, nil
	default:
		return 0, fmt.Errorf("connectivity: %w: unsupported dimensionality %d", voxlab.ErrConfiguration, dims)
	}
}

// Validate returns ErrInvalidConnectivity for unknown values.
func (c Connectivity) Validate() error {
	switch c {
	case C4, C8, C6, C26:
		return nil
	default:
		return fmt.Errorf("%w (got %d)", ErrInvalidConnectivity, int(c))
	}
}

// Dims returns 2 for C4/C8, 3 for C6/C26 and 0 for invalid values.
func (c Connectivity) Dims() int {
	switch c {
	case C4, C8:
		return 2
	case C6, C26:
		return 3
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (c Connectivity) String() string {
	if c.Validate() != nil {
		return "invalid(" + strconv.Itoa(int(c)) + ")"
	}
	return "C" + strconv.Itoa(int(c))
}

// Offsets returns a copy of the ordered neighbor offsets of c.
// Complexity: O(c).
func Offsets(c Connectivity) ([]Offset, error) {
	var src []Offset
	switch c {
	case C4:
		src = offsets4
	case C8:
		src = offsets8
	case C6:
		src = offsets6
	case C26:
		src = offsets26
	default:
		return nil, c.Validate()
	}
	out := make([]Offset, len(src))
	copy(out, src)

	return out, nil
}

// Offsets is the method form of the package-level Offsets.
func (c Connectivity) Offsets() ([]Offset, error) {
	return Offsets(c)
}
