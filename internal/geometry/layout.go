// Package geometry derives the emitter-grid layout, aperture mask and
// pixel<->emitter resampling used by the solver, spec.md §4.2.
package geometry

import "math"

// Layout describes how a square N×N pixel grid maps onto a square grid
// of physical emitters.
type Layout struct {
	N            int
	SliceSizeM   float64
	EmitterSizeM float64
}

// NSide is floor(slice_size_m / emitter_size_m), the number of
// emitters per row/column.
func (l Layout) NSide() int {
	return int(math.Floor(l.SliceSizeM / l.EmitterSizeM))
}

// NEmitters is NSide^2.
func (l Layout) NEmitters() int {
	n := l.NSide()
	return n * n
}

// EmitterPX is the real-valued number of pixels spanned by one emitter
// cell; need not be an integer.
func (l Layout) EmitterPX() float64 {
	return float64(l.N) / float64(l.NSide())
}

// Valid reports whether the layout satisfies spec.md §3's invariants:
// slice_size_m > emitter_size_m > 0 and n_side >= 2.
func (l Layout) Valid() bool {
	if l.SliceSizeM <= l.EmitterSizeM || l.EmitterSizeM <= 0 {
		return false
	}
	return l.NSide() >= 2
}
