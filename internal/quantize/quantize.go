// Package quantize discretizes emitter amplitude and phase to the
// configured resolutions, spec.md §4.3.
package quantize

import (
	"math"

	"github.com/doismellburning/phasefield/internal/field"
)

// Resolution carries the amp_res/phase_res pair. A zero value disables
// the corresponding control (spec.md §3).
type Resolution struct {
	Amp   int
	Phase int
}

// Amplitude quantizes a ∈ [0, ∞) into a new grid: if res == 0 every
// entry becomes 1 (no amplitude control); otherwise a <- floor(a*res)/res.
func Amplitude(a *field.Real, res int) *field.Real {
	out := field.NewReal(a.N)
	if res == 0 {
		for i := range out.Data {
			out.Data[i] = 1
		}
		return out
	}
	r := float64(res)
	for i, v := range a.Data {
		out.Data[i] = floorSnapped(v*r) / r
	}
	return out
}

// Phase quantizes phi in (-pi, pi]: if res == 0 every entry becomes 0
// (no phase control); otherwise it is binned to steps of pi/res, which
// is 2*res distinct values over the full circle (spec.md §4.3, §9).
// The wire encoding later maps phases onto only res byte values.
func Phase(phi *field.Real, res int) *field.Real {
	out := field.NewReal(phi.N)
	if res == 0 {
		return out
	}
	r := float64(res)
	for i, v := range phi.Data {
		out.Data[i] = floorSnapped(v/math.Pi*r) * math.Pi / r
	}
	return out
}

// floorSnapped is math.Floor, except that a value within 1e-9 of an
// integer counts as that integer, so that re-quantizing an already
// quantized value lands on the same bin despite rounding error.
func floorSnapped(x float64) float64 {
	if rx := math.Round(x); math.Abs(x-rx) < 1e-9 {
		return rx
	}
	return math.Floor(x)
}
