package geometry

import (
	"math"

	"github.com/doismellburning/phasefield/internal/field"
)

// Mask builds the N×N aperture mask for layout l: pixel (ix, iy) is 1
// iff its distance from the center of its enclosing emitter cell is
// less than emitter_px/2, per spec.md §3.
func Mask(l Layout) *field.Real {
	n := l.N
	emitterPX := l.EmitterPX()
	half := emitterPX / 2
	halfSq := half * half

	out := field.NewReal(n)
	for ix := 0; ix < n; ix++ {
		cx := math.Floor(float64(ix) / emitterPX)
		cellCenterX := cx*emitterPX + half
		dx := float64(ix) - cellCenterX
		for iy := 0; iy < n; iy++ {
			cy := math.Floor(float64(iy) / emitterPX)
			cellCenterY := cy*emitterPX + half
			dy := float64(iy) - cellCenterY

			if dx*dx+dy*dy < halfSq {
				out.Set(ix, iy, 1)
			}
		}
	}
	return out
}
