package geometry

import (
	"math"

	"github.com/doismellburning/phasefield/internal/field"
)

// Downsample resizes an N×N grid to an nSide×nSide grid using bilinear
// interpolation, averaging the pixels inside each emitter cell
// (spec.md §4.2).
func Downsample(src *field.Real, nSide int) *field.Real {
	n := src.N
	scale := float64(n) / float64(nSide)
	out := field.NewReal(nSide)

	for oy := 0; oy < nSide; oy++ {
		sy := (float64(oy)+0.5)*scale - 0.5
		for ox := 0; ox < nSide; ox++ {
			sx := (float64(ox)+0.5)*scale - 0.5
			out.Set(ox, oy, bilinear(src, sx, sy))
		}
	}
	return out
}

// Upsample resizes an nSide×nSide grid back up to N×N using
// nearest-neighbor replication, so every pixel of a given emitter cell
// shares the exact same value (spec.md §4.2).
func Upsample(src *field.Real, n int) *field.Real {
	nSide := src.N
	scale := float64(n) / float64(nSide)
	out := field.NewReal(n)

	for oy := 0; oy < n; oy++ {
		sy := int(float64(oy) / scale)
		sy = clamp(sy, 0, nSide-1)
		for ox := 0; ox < n; ox++ {
			sx := int(float64(ox) / scale)
			sx = clamp(sx, 0, nSide-1)
			out.Set(ox, oy, src.At(sx, sy))
		}
	}
	return out
}

func bilinear(src *field.Real, x, y float64) float64 {
	n := src.N
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := x0 + 1
	y1 := y0 + 1

	fx := x - float64(x0)
	fy := y - float64(y0)

	x0 = clamp(x0, 0, n-1)
	x1 = clamp(x1, 0, n-1)
	y0 = clamp(y0, 0, n-1)
	y1 = clamp(y1, 0, n-1)

	v00 := src.At(x0, y0)
	v10 := src.At(x1, y0)
	v01 := src.At(x0, y1)
	v11 := src.At(x1, y1)

	top := v00 + (v10-v00)*fx
	bottom := v01 + (v11-v01)*fx
	return top + (bottom-top)*fy
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
