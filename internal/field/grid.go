// Package field holds the N×N complex and real grid types shared by the
// FFT kernel, propagator, geometry and solver packages.
package field

import "math"

// Complex is a row-major N×N grid of complex scalars. Index (row, col)
// lives at data[row*N+col], matching the layout convention fixed in
// the propagator.
type Complex struct {
	N    int
	Data []complex128
}

// NewComplex allocates a zeroed N×N complex grid.
func NewComplex(n int) *Complex {
	return &Complex{N: n, Data: make([]complex128, n*n)}
}

func (g *Complex) At(row, col int) complex128 {
	return g.Data[row*g.N+col]
}

func (g *Complex) Set(row, col int, v complex128) {
	g.Data[row*g.N+col] = v
}

// Magnitude returns the element-wise modulus as a Real grid.
func (g *Complex) Magnitude() *Real {
	out := NewReal(g.N)
	for i, v := range g.Data {
		out.Data[i] = cmplxAbs(v)
	}
	return out
}

// Phase returns the element-wise argument (radians, in (-pi, pi]) as a
// Real grid.
func (g *Complex) Phase() *Real {
	out := NewReal(g.N)
	for i, v := range g.Data {
		out.Data[i] = math.Atan2(imag(v), real(v))
	}
	return out
}

// Finite reports whether every element has finite real and imaginary
// parts; used by the solver to detect NumericInstability.
func (g *Complex) Finite() bool {
	for _, v := range g.Data {
		if math.IsNaN(real(v)) || math.IsInf(real(v), 0) ||
			math.IsNaN(imag(v)) || math.IsInf(imag(v), 0) {
			return false
		}
	}
	return true
}

func cmplxAbs(v complex128) float64 {
	return math.Hypot(real(v), imag(v))
}

// Real is a row-major N×N grid of real scalars.
type Real struct {
	N    int
	Data []float64
}

// NewReal allocates a zeroed N×N real grid.
func NewReal(n int) *Real {
	return &Real{N: n, Data: make([]float64, n*n)}
}

func (g *Real) At(row, col int) float64 {
	return g.Data[row*g.N+col]
}

func (g *Real) Set(row, col int, v float64) {
	g.Data[row*g.N+col] = v
}

func (g *Real) Clone() *Real {
	out := NewReal(g.N)
	copy(out.Data, g.Data)
	return out
}

// ToComplex builds a complex grid from amplitude and phase grids of the
// same size: out = amp * exp(i*phase).
func ToComplex(amp, phase *Real) *Complex {
	if amp.N != phase.N {
		panic("field: amp/phase size mismatch")
	}
	out := NewComplex(amp.N)
	for i := range out.Data {
		s, c := math.Sincos(phase.Data[i])
		out.Data[i] = complex(amp.Data[i]*c, amp.Data[i]*s)
	}
	return out
}

// Mul returns the element-wise (Hadamard) product of two real grids.
func (g *Real) Mul(other *Real) *Real {
	if g.N != other.N {
		panic("field: grid size mismatch")
	}
	out := NewReal(g.N)
	for i := range out.Data {
		out.Data[i] = g.Data[i] * other.Data[i]
	}
	return out
}
