package attribute_test

import (
	"context"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/attribute"
	"github.com/katalvlaran/voxlab/connectivity"
	"github.com/katalvlaran/voxlab/raster"
)

// scenario builds a 14×10 image on a background of 10 holding a 4×4
// square (200) with an attached 6-sample arm (220), a detached 6-sample
// arm (100) and an isolated sample (150).
func scenario(t *testing.T) *raster.Raster {
	t.Helper()
	r, err := raster.New2D(14, 10, raster.Gray8)
	require.NoError(t, err)
	for i := range r.Data() {
		r.SetIndex(i, 10)
	}
	for y := 1; y <= 4; y++ {
		for x := 1; x <= 4; x++ {
			r.Set(x, y, 0, 200)
		}
	}
	for x := 5; x <= 10; x++ {
		r.Set(x, 2, 0, 220)
	}
	for x := 1; x <= 6; x++ {
		r.Set(x, 7, 0, 100)
	}
	r.Set(10, 7, 0, 150)

	return r
}

func TestAreaOpening_Scenario(t *testing.T) {
	r := scenario(t)

	for _, conn := range []connectivity.Connectivity{connectivity.C4, connectivity.C8} {
		open, err := attribute.AreaOpening(r, 7, conn)
		require.NoError(t, err)
		assert.Equal(t, raster.Gray8, open.Format())

		// The square survives; the attached arm is flattened onto it.
		assert.Equal(t, float32(200), open.At(1, 1, 0))
		assert.Equal(t, float32(200), open.At(4, 4, 0))
		for x := 5; x <= 10; x++ {
			assert.Equal(t, float32(200), open.At(x, 2, 0), "attached arm x=%d", x)
		}
		// The detached arm and the isolated sample fall to the background.
		for x := 1; x <= 6; x++ {
			assert.Equal(t, float32(10), open.At(x, 7, 0), "detached arm x=%d", x)
		}
		assert.Equal(t, float32(10), open.At(10, 7, 0))
		assert.Equal(t, float32(10), open.At(13, 9, 0))

		hat, err := attribute.WhiteTopHat(r, attribute.Area, 7, conn)
		require.NoError(t, err)
		assert.Equal(t, float32(20), hat.At(7, 2, 0))
		assert.Equal(t, float32(90), hat.At(3, 7, 0))
		assert.Equal(t, float32(140), hat.At(10, 7, 0))
		assert.Equal(t, float32(0), hat.At(2, 2, 0))
		assert.Equal(t, float32(0), hat.At(0, 0, 0))
	}

	// Below the arm size everything survives.
	open, err := attribute.AreaOpening(r, 6, connectivity.C4)
	require.NoError(t, err)
	assert.Equal(t, float32(220), open.At(7, 2, 0))
	assert.Equal(t, float32(100), open.At(3, 7, 0))
	assert.Equal(t, float32(10), open.At(10, 7, 0))
}

// reference computes an attribute opening by its definition: every
// sample receives the highest level t ≤ X(p) whose upper threshold
// component through p measures at least threshold.
func reference(t *testing.T, r *raster.Raster, conn connectivity.Connectivity, m attribute.Measure, threshold float64) []float32 {
	t.Helper()
	nb, err := raster.NewNeighborhood(r, conn)
	require.NoError(t, err)
	data := r.Data()

	levels := slices.Clone(data)
	slices.Sort(levels)
	levels = slices.Compact(levels)
	slices.Reverse(levels)

	out := make([]float32, len(data))
	seen := make([]int, len(data))
	stamp := 0
	var queue, buf []int
	for p := range data {
		out[p] = levels[len(levels)-1]
		for _, lv := range levels {
			if lv > data[p] {
				continue
			}
			stamp++
			seen[p] = stamp
			queue = append(queue[:0], p)
			for head := 0; head < len(queue); head++ {
				buf = nb.Append(buf[:0], queue[head])
				for _, q := range buf {
					if seen[q] != stamp && data[q] >= lv {
						seen[q] = stamp
						queue = append(queue, q)
					}
				}
			}
			if measure(r, m, queue) >= threshold {
				out[p] = lv
				break
			}
		}
	}

	return out
}

func measure(r *raster.Raster, m attribute.Measure, comp []int) float64 {
	if m != attribute.BoxDiagonal {
		return float64(len(comp))
	}
	lo := [3]int{math.MaxInt, math.MaxInt, math.MaxInt}
	hi := [3]int{-1, -1, -1}
	for _, i := range comp {
		x, y, z := r.Coord(i)
		for k, c := range [3]int{x, y, z} {
			lo[k], hi[k] = min(lo[k], c), max(hi[k], c)
		}
	}
	sum := 0.0
	for k := 0; k < r.Dims(); k++ {
		side := float64(hi[k] - lo[k] + 1)
		sum += side * side
	}

	return math.Sqrt(sum)
}

func random2D(t *testing.T, seed int64, w, h, levels int) *raster.Raster {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	r, err := raster.New2D(w, h, raster.Gray8)
	require.NoError(t, err)
	for i := range r.Data() {
		r.SetIndex(i, float32(rng.Intn(levels)))
	}
	return r
}

func random3D(t *testing.T, seed int64, n, levels int) *raster.Raster {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	r, err := raster.New3D(n, n, n, raster.Gray8)
	require.NoError(t, err)
	for i := range r.Data() {
		r.SetIndex(i, float32(rng.Intn(levels)))
	}
	return r
}

func TestOpening_MatchesReference(t *testing.T) {
	cases := []struct {
		name      string
		volume    bool
		conn      connectivity.Connectivity
		measure   attribute.Measure
		threshold float64
	}{
		{"area-c4", false, connectivity.C4, attribute.Area, 5},
		{"area-c8", false, connectivity.C8, attribute.Area, 9},
		{"area-c4-fractional", false, connectivity.C4, attribute.Area, 2.5},
		{"diag-c4", false, connectivity.C4, attribute.BoxDiagonal, 4},
		{"diag-c8", false, connectivity.C8, attribute.BoxDiagonal, 3.5},
		{"volume-c6", true, connectivity.C6, attribute.Volume, 6},
		{"volume-c26", true, connectivity.C26, attribute.Volume, 20},
		{"diag-c6", true, connectivity.C6, attribute.BoxDiagonal, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for seed := int64(1); seed <= 3; seed++ {
				var r *raster.Raster
				if tc.volume {
					r = random3D(t, seed, 6, 5)
				} else {
					r = random2D(t, seed, 16, 12, 6)
				}
				f, err := attribute.New(attribute.Opening, tc.measure, tc.threshold, tc.conn)
				require.NoError(t, err)
				got, err := f.Apply(r)
				require.NoError(t, err)
				assert.Equal(t, reference(t, r, tc.conn, tc.measure, tc.threshold), got.Data(), "seed %d", seed)
			}
		})
	}
}

func TestOpening_Properties(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		r := random2D(t, seed, 20, 20, 8)
		open, err := attribute.AreaOpening(r, 6, connectivity.C8)
		require.NoError(t, err)
		hat, err := attribute.WhiteTopHat(r, attribute.Area, 6, connectivity.C8)
		require.NoError(t, err)

		again, err := attribute.AreaOpening(open, 6, connectivity.C8)
		require.NoError(t, err)
		assert.Equal(t, open.Data(), again.Data(), "idempotent")

		larger, err := attribute.AreaOpening(r, 15, connectivity.C8)
		require.NoError(t, err)

		for i, x := range r.Data() {
			assert.LessOrEqual(t, open.AtIndex(i), x, "anti-extensive")
			assert.Equal(t, x, open.AtIndex(i)+hat.AtIndex(i), "opening plus top-hat")
			assert.LessOrEqual(t, larger.AtIndex(i), open.AtIndex(i), "monotone in threshold")
		}
	}
}

func TestClosing_Duality(t *testing.T) {
	for seed := int64(1); seed <= 3; seed++ {
		r := random2D(t, seed, 18, 14, 7)
		inv := r.Clone()
		for i, v := range r.Data() {
			inv.SetIndex(i, 255-v)
		}

		closing, err := attribute.New(attribute.Closing, attribute.Area, 5, connectivity.C4)
		require.NoError(t, err)
		closed, err := closing.Apply(r)
		require.NoError(t, err)
		open, err := attribute.AreaOpening(inv, 5, connectivity.C4)
		require.NoError(t, err)

		bottom, err := attribute.New(attribute.BottomHat, attribute.Area, 5, connectivity.C4)
		require.NoError(t, err)
		hat, err := bottom.Apply(r)
		require.NoError(t, err)

		for i, x := range r.Data() {
			assert.Equal(t, 255-open.AtIndex(i), closed.AtIndex(i), "dual of the opening")
			assert.GreaterOrEqual(t, closed.AtIndex(i), x, "extensive")
			assert.Equal(t, closed.AtIndex(i)-x, hat.AtIndex(i), "bottom-hat residue")
		}
	}
}

func TestApply_NaNStaysIsolated(t *testing.T) {
	nan := float32(math.NaN())
	row, err := raster.FromSamples(5, 1, 0, raster.Float32, []float32{5, nan, 1, 1, 1})
	require.NoError(t, err)
	open, err := attribute.AreaOpening(row, 3, connectivity.C4)
	require.NoError(t, err)
	assert.Equal(t, float32(5), open.AtIndex(0))
	assert.True(t, math.IsNaN(float64(open.AtIndex(1))))
	assert.Equal(t, []float32{1, 1, 1}, open.Data()[2:])

	r := random2D(t, 11, 16, 16, 9)
	fr, err := raster.NewLike(r, raster.Float32)
	require.NoError(t, err)
	for i, v := range r.Data() {
		fr.SetIndex(i, v)
		if i%7 == 3 {
			fr.SetIndex(i, nan)
		}
	}

	for _, kind := range []attribute.FilterKind{attribute.Opening, attribute.Closing} {
		filter, err := attribute.New(kind, attribute.Area, 5, connectivity.C8)
		require.NoError(t, err)
		out, err := filter.Apply(fr)
		require.NoError(t, err)

		residue := attribute.TopHat
		if kind == attribute.Closing {
			residue = attribute.BottomHat
		}
		hf, err := attribute.New(residue, attribute.Area, 5, connectivity.C8)
		require.NoError(t, err)
		hat, err := hf.Apply(fr)
		require.NoError(t, err)

		for i, x := range fr.Data() {
			got := out.AtIndex(i)
			if math.IsNaN(float64(x)) {
				assert.True(t, math.IsNaN(float64(got)), "%s keeps NaN at %d", kind, i)
				continue
			}
			require.False(t, math.IsNaN(float64(got)), "%s spread NaN to %d", kind, i)
			if kind == attribute.Opening {
				assert.LessOrEqual(t, got, x, "anti-extensive at %d", i)
				assert.Equal(t, x, got+hat.AtIndex(i), "opening plus top-hat at %d", i)
			} else {
				assert.GreaterOrEqual(t, got, x, "extensive at %d", i)
				assert.Equal(t, got-x, hat.AtIndex(i), "bottom-hat residue at %d", i)
			}
		}
	}
}

func TestApply_FloatMatchesIntegral(t *testing.T) {
	r := random2D(t, 9, 24, 24, 10)
	fr, err := raster.NewLike(r, raster.Float32)
	require.NoError(t, err)
	for i, v := range r.Data() {
		fr.SetIndex(i, v/4)
	}

	want, err := attribute.AreaOpening(r, 8, connectivity.C8)
	require.NoError(t, err)
	got, err := attribute.AreaOpening(fr, 8, connectivity.C8)
	require.NoError(t, err)
	assert.Equal(t, raster.Float32, got.Format())
	for i, v := range want.Data() {
		assert.Equal(t, v/4, got.AtIndex(i))
	}
}

func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name      string
		kind      attribute.FilterKind
		measure   attribute.Measure
		threshold float64
		conn      connectivity.Connectivity
		want      error
	}{
		{"zero", attribute.Opening, attribute.Area, 0, connectivity.C4, attribute.ErrInvalidThreshold},
		{"negative", attribute.Opening, attribute.Area, -3, connectivity.C4, attribute.ErrInvalidThreshold},
		{"nan", attribute.Opening, attribute.Area, math.NaN(), connectivity.C4, attribute.ErrInvalidThreshold},
		{"inf", attribute.Opening, attribute.Area, math.Inf(1), connectivity.C4, attribute.ErrInvalidThreshold},
		{"kind", attribute.FilterKind(9), attribute.Area, 1, connectivity.C4, attribute.ErrInvalidKind},
		{"measure", attribute.Opening, attribute.Measure(9), 1, connectivity.C4, attribute.ErrInvalidMeasure},
		{"area-3d", attribute.Opening, attribute.Area, 1, connectivity.C6, attribute.ErrUnsupportedMeasure},
		{"volume-2d", attribute.Opening, attribute.Volume, 1, connectivity.C8, attribute.ErrUnsupportedMeasure},
		{"connectivity", attribute.Opening, attribute.BoxDiagonal, 1, connectivity.Connectivity(5), connectivity.ErrInvalidConnectivity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := attribute.New(tc.kind, tc.measure, tc.threshold, tc.conn)
			assert.Nil(t, f)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, voxlab.ErrConfiguration)
		})
	}
}

func TestApply_Errors(t *testing.T) {
	vol, err := raster.New3D(2, 2, 2, raster.Gray8)
	require.NoError(t, err)
	f, err := attribute.New(attribute.Opening, attribute.Area, 3, connectivity.C4)
	require.NoError(t, err)
	_, err = f.Apply(vol)
	assert.ErrorIs(t, err, voxlab.ErrConfiguration)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = attribute.AreaOpening(random2D(t, 1, 4, 4, 3), 3, connectivity.C4, attribute.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApply_Progress(t *testing.T) {
	var calls [][2]int
	_, err := attribute.AreaOpening(random2D(t, 2, 5, 2, 4), 3, connectivity.C4,
		attribute.WithProgress(func(done, total int) { calls = append(calls, [2]int{done, total}) }))
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, calls)
}

func TestParse(t *testing.T) {
	k, err := attribute.ParseFilterKind("Top-Hat")
	require.NoError(t, err)
	assert.Equal(t, attribute.TopHat, k)
	_, err = attribute.ParseFilterKind("erosion")
	assert.ErrorIs(t, err, attribute.ErrInvalidKind)

	m, err := attribute.ParseMeasure("box-diagonal")
	require.NoError(t, err)
	assert.Equal(t, attribute.BoxDiagonal, m)
	_, err = attribute.ParseMeasure("perimeter")
	assert.ErrorIs(t, err, attribute.ErrInvalidMeasure)

	f, err := attribute.New(attribute.Closing, attribute.Volume, 12, connectivity.C26)
	require.NoError(t, err)
	assert.Equal(t, "closing(volume>=12, C26)", f.String())
	assert.True(t, attribute.BoxDiagonal.Supports(connectivity.C6))
	assert.False(t, attribute.Area.Supports(connectivity.C26))
}
