package boundary_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/boundary"
	"github.com/katalvlaran/voxlab/connectivity"
	"github.com/katalvlaran/voxlab/labeling"
	"github.com/katalvlaran/voxlab/raster"
)

func labelMap(t *testing.T, rows [][]int) *raster.Raster {
	t.Helper()
	r, err := raster.FromRows(rows, raster.Gray16)
	require.NoError(t, err)
	return r
}

func TestExtract_TouchingRegions(t *testing.T) {
	lm := labelMap(t, [][]int{
		{1, 1, 2, 2},
		{1, 1, 2, 2},
	})

	res, err := boundary.Extract(lm, connectivity.C4)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, 1, 0, 0, 1, 1, 0}, res.Segments.Data())
	assert.Equal(t, 1, res.Count())
	assert.Equal(t, []int{1, 2}, res.Separates(1))

	thin, err := boundary.Extract(lm, connectivity.C4, boundary.WithPlacement(boundary.Thin))
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 1, 0, 0, 0, 1, 0}, thin.Segments.Data())
	assert.Equal(t, []int{1, 2}, thin.Separates(1))
}

func TestExtract_WatershedLines(t *testing.T) {
	lm := labelMap(t, [][]int{
		{1, 0, 2},
		{1, 0, 2},
	})

	res, err := boundary.Extract(lm, connectivity.C4)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, 0, 0, 1, 0}, res.Segments.Data())
	assert.Equal(t, map[int][]int{1: {1, 2}}, res.Regions)

	// Thin placement keeps background lines.
	thin, err := boundary.Extract(lm, connectivity.C4, boundary.WithPlacement(boundary.Thin))
	require.NoError(t, err)
	assert.Equal(t, res.Segments.Data(), thin.Segments.Data())

	// With background as a region every sample borders another region.
	withBg, err := boundary.Extract(lm, connectivity.C4, boundary.WithBackgroundRegion(true))
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1, 1, 1, 1, 1}, withBg.Segments.Data())
	assert.Equal(t, []int{0, 1, 2}, withBg.Separates(1))
}

func TestExtract_DisjointSegments(t *testing.T) {
	lm := labelMap(t, [][]int{
		{1, 1, 0, 0, 3, 3},
		{1, 1, 0, 0, 3, 3},
		{2, 2, 0, 0, 4, 4},
	})

	res, err := boundary.Extract(lm, connectivity.C4)
	require.NoError(t, err)
	assert.Equal(t, []float32{
		0, 0, 0, 0, 0, 0,
		1, 1, 0, 0, 2, 2,
		1, 1, 0, 0, 2, 2,
	}, res.Segments.Data())
	assert.Equal(t, map[int][]int{1: {1, 2}, 2: {3, 4}}, res.Regions)

	thin, err := boundary.Extract(lm, connectivity.C4, boundary.WithPlacement(boundary.Thin))
	require.NoError(t, err)
	assert.Equal(t, []float32{
		0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0,
		1, 1, 0, 0, 2, 2,
	}, thin.Segments.Data())
	assert.Equal(t, map[int][]int{1: {1, 2}, 2: {3, 4}}, thin.Regions)
}

func TestExtract_ComposesWithLabeling(t *testing.T) {
	// Label a partitioned image, then extract the boundaries between its regions.
	img, err := raster.FromRows([][]int{
		{10, 10, 20},
		{10, 30, 20},
		{30, 30, 20},
	}, raster.Gray8)
	require.NoError(t, err)
	lm, err := labeling.LabelRegions(img, connectivity.C4, labeling.WithBackground(-1))
	require.NoError(t, err)
	assert.Equal(t, 3, labeling.Count(lm))

	res, err := boundary.Extract(lm, connectivity.C8)
	require.NoError(t, err)
	// Every sample touches another region under C8, forming one segment.
	assert.Equal(t, 1, res.Count())
	assert.Equal(t, []int{1, 2, 3}, res.Separates(1))
}

func TestExtract_Volume(t *testing.T) {
	lm, err := raster.New3D(2, 1, 2, raster.Gray16)
	require.NoError(t, err)
	lm.Set(0, 0, 0, 1)
	lm.Set(1, 0, 0, 1)
	lm.Set(0, 0, 1, 2)
	lm.Set(1, 0, 1, 2)

	res, err := boundary.Extract(lm, connectivity.C6)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1, 1, 1}, res.Segments.Data())
	assert.Equal(t, []int{1, 2}, res.Separates(1))
}

func TestExtract_Errors(t *testing.T) {
	lm := labelMap(t, [][]int{{1, 2}})

	_, err := boundary.Extract(lm, connectivity.C26)
	assert.ErrorIs(t, err, voxlab.ErrConfiguration)

	_, err = boundary.Extract(lm, connectivity.C4, boundary.WithPlacement(boundary.Placement(9)))
	assert.ErrorIs(t, err, boundary.ErrOptionViolation)

	_, err = boundary.Extract(lm, connectivity.C4, boundary.WithFormat(raster.SampleFormat(1)))
	assert.ErrorIs(t, err, voxlab.ErrConfiguration)

	frac, _ := raster.FromSamples(2, 1, 0, raster.Float32, []float32{1, 2.5})
	_, err = boundary.Extract(frac, connectivity.C4)
	assert.ErrorIs(t, err, labeling.ErrNotLabelMap)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = boundary.Extract(lm, connectivity.C4, boundary.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtract_SegmentOverflow(t *testing.T) {
	// 256 region pairs, each pair touching along a vertical boundary and
	// isolated from the next pair by two background columns.
	const pairs = 256
	rows := make([][]int, 2)
	for y := range rows {
		for p := 0; p < pairs; p++ {
			rows[y] = append(rows[y], 2*p+1, 2*p+2, 0, 0)
		}
	}
	lm := labelMap(t, rows)

	_, err := boundary.Extract(lm, connectivity.C4, boundary.WithFormat(raster.Gray8))
	assert.ErrorIs(t, err, voxlab.ErrLabelOverflow)

	res, err := boundary.Extract(lm, connectivity.C4)
	require.NoError(t, err)
	assert.Equal(t, pairs, res.Count())
	assert.Equal(t, []int{255, 256}, res.Separates(128))
}

func TestParsePlacement(t *testing.T) {
	p, err := boundary.ParsePlacement("thin")
	require.NoError(t, err)
	assert.Equal(t, boundary.Thin, p)
	p, err = boundary.ParsePlacement("")
	require.NoError(t, err)
	assert.Equal(t, boundary.Both, p)
	_, err = boundary.ParsePlacement("outer")
	assert.ErrorIs(t, err, boundary.ErrOptionViolation)
}
