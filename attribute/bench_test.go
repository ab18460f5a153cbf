package attribute_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/voxlab/attribute"
	"github.com/katalvlaran/voxlab/connectivity"
	"github.com/katalvlaran/voxlab/raster"
)

// BenchmarkAreaOpening measures a 512×512 area opening through the bucket
// queue (Gray8) and the heap (Float32).
// Complexity: near-linear in the number of samples.
func BenchmarkAreaOpening(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	g8, _ := raster.New2D(512, 512, raster.Gray8)
	f32, _ := raster.New2D(512, 512, raster.Float32)
	for i := range g8.Data() {
		v := float32(rng.Intn(256))
		g8.SetIndex(i, v)
		f32.SetIndex(i, v/255)
	}
	f, err := attribute.New(attribute.Opening, attribute.Area, 64, connectivity.C8)
	if err != nil {
		b.Fatal(err)
	}

	for _, r := range []*raster.Raster{g8, f32} {
		b.Run(r.Format().String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := f.Apply(r); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkVolumeOpening measures a 64³ volume opening under C26.
func BenchmarkVolumeOpening(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	r, _ := raster.New3D(64, 64, 64, raster.Gray16)
	for i := range r.Data() {
		r.SetIndex(i, float32(rng.Intn(4096)))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := attribute.VolumeOpening(r, 100, connectivity.C26); err != nil {
			b.Fatal(err)
		}
	}
}
