package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/doismellburning/phasefield/internal/field"
	"github.com/doismellburning/phasefield/internal/geometry"
)

func TestLayoutValid(t *testing.T) {
	l := geometry.Layout{N: 64, SliceSizeM: 0.16, EmitterSizeM: 0.005}
	assert.True(t, l.Valid())
	assert.Equal(t, 32, l.NSide())
	assert.Equal(t, 1024, l.NEmitters())

	bad := geometry.Layout{N: 64, SliceSizeM: 0.01, EmitterSizeM: 0.02}
	assert.False(t, bad.Valid())
}

// Property 6 — applying the aperture mask twice equals applying it
// once.
func TestMaskIdempotent(t *testing.T) {
	l := geometry.Layout{N: 64, SliceSizeM: 0.16, EmitterSizeM: 0.005}
	mask := geometry.Mask(l)

	twice := mask.Mul(mask)
	for i := range mask.Data {
		assert.InDelta(t, mask.Data[i], twice.Data[i], 1e-12)
	}
}

func TestMaskOnlyZeroOrOne(t *testing.T) {
	l := geometry.Layout{N: 32, SliceSizeM: 0.16, EmitterSizeM: 0.01}
	mask := geometry.Mask(l)
	for _, v := range mask.Data {
		if v != 0 && v != 1 {
			t.Fatalf("mask value %v is neither 0 nor 1", v)
		}
	}
}

func TestDownsampleUpsamplePreservesSize(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.SampledFrom([]int{16, 32, 64}).Draw(t, "n")
		nSide := rapid.SampledFrom([]int{4, 8, 16}).Draw(t, "nSide")

		src := field.NewReal(n)
		for i := range src.Data {
			src.Data[i] = rapid.Float64Range(0, 1).Draw(t, "v")
		}

		down := geometry.Downsample(src, nSide)
		assert.Equal(t, nSide, down.N)

		up := geometry.Upsample(down, n)
		assert.Equal(t, n, up.N)
	})
}
