package boundary_test

import (
	"fmt"

	"github.com/katalvlaran/voxlab/boundary"
	"github.com/katalvlaran/voxlab/connectivity"
	"github.com/katalvlaran/voxlab/raster"
)

// ExampleExtract finds the boundary segments of a label map with two
// regions separated by a background line and a third region touching
// the second one directly.
func ExampleExtract() {
	lm, _ := raster.FromRows([][]int{
		{1, 0, 2, 2},
		{1, 0, 2, 3},
		{1, 0, 2, 3},
	}, raster.Gray8)

	res, _ := boundary.Extract(lm, connectivity.C4, boundary.WithPlacement(boundary.Thin))
	for seg := 1; seg <= res.Count(); seg++ {
		fmt.Printf("segment %d separates %v\n", seg, res.Separates(seg))
	}

	// Output:
	// segment 1 separates [1 2]
	// segment 2 separates [2 3]
}
