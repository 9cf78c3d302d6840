// Package propagator implements one-shot angular-spectrum free-space
// propagation of a complex pressure field, spec.md §4.1.
package propagator

import (
	"math"

	"github.com/doismellburning/phasefield/internal/fft2"
	"github.com/doismellburning/phasefield/internal/field"
	"github.com/doismellburning/phasefield/internal/medium"
)

// Propagate computes p_z, the field p0 (defined on the z=0 plane)
// advanced (or, for negative z, retreated) by distance z meters, for
// the given medium, grid size and pixel pitch delta = sliceSizeM / N.
//
// The sign-convention branch below (H = conj(exp(i*z*kz)) for z > 0,
// H = exp(-i*z*kz) gated by the propagating-mode mask for z <= 0) is
// reproduced exactly from the reference fftasa implementation rather
// than collapsed into a single symmetric form, to stay bit-compatible.
func Propagate(p0 *field.Complex, z, deltaM float64, m medium.Medium) *field.Complex {
	n := p0.N

	// Zero distance is the identity: no mode is filtered.
	if z == 0 {
		out := field.NewComplex(n)
		copy(out.Data, p0.Data)
		return out
	}

	lambda := m.Wavelength()
	wavenum := m.Wavenumber()
	alpha := m.AttenuationNepersPerMeter()

	p0Spectrum := fft2.Forward(p0)

	q := angularSpectrumQ(n, lambda, deltaM)

	h := field.NewComplex(n)
	for i, qi := range q.Data {
		kz := complexSqrtOneMinus(qi) * complex(wavenum, 0)

		var hv complex128
		if z > 0 {
			hv = cmplxConj(cExp(imagUnit * complex(z, 0) * kz))
		} else {
			hv = cExp(-imagUnit * complex(z, 0) * kz)
			if qi > 1 {
				hv = 0
			}
		}

		if alpha > 0 && qi < 1 {
			theta := math.Asin(math.Sqrt(qi))
			hv *= complex(math.Exp(-alpha*z/math.Cos(theta)), 0)
		}

		h.Data[i] = hv
	}

	applyAngleLimit(h, q, n, deltaM, z)

	product := field.NewComplex(n)
	for i := range product.Data {
		product.Data[i] = p0Spectrum.Data[i] * h.Data[i]
	}

	return fft2.Inverse(product)
}

const imagUnit = complex(0, 1)

func cExp(z complex128) complex128 {
	e := math.Exp(real(z))
	s, c := math.Sincos(imag(z))
	return complex(e*c, e*s)
}

func cmplxConj(z complex128) complex128 {
	return complex(real(z), -imag(z))
}

// complexSqrtOneMinus returns sqrt(1-q) using complex arithmetic so
// that q > 1 (evanescent modes) yields a purely imaginary result
// instead of NaN, per spec.md §4.1 step 4.
func complexSqrtOneMinus(q float64) complex128 {
	return cmplxSqrt(complex(1-q, 0))
}

func cmplxSqrt(z complex128) complex128 {
	r := math.Hypot(real(z), imag(z))
	re := math.Sqrt((r + real(z)) / 2)
	im := math.Sqrt((r - real(z)) / 2)
	if imag(z) < 0 {
		im = -im
	}
	return complex(re, im)
}

// angularSpectrumQ builds (sin theta)^2 = kx^2+ky^2 over the spatial
// frequency grid and fftshifts it so its layout matches the unshifted
// output of fft2.Forward, per spec.md §4.1 step 3. The result is a
// real grid; Propagate lifts each entry into complex arithmetic itself.
func angularSpectrumQ(n int, lambda, deltaM float64) *field.Real {
	k := make([]float64, n)
	for i := 0; i < n; i++ {
		m := float64(i - n/2)
		if n%2 != 0 {
			m -= 0.5
		}
		k[i] = m * lambda / (float64(n) * deltaM)
	}

	centered := field.NewReal(n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			centered.Set(r, c, k[r]*k[r]+k[c]*k[c])
		}
	}

	return fftshift2D(centered)
}

// fftshift2D swaps quadrants so that the zero-frequency component
// moves from the center of a centered-order grid to index (0,0),
// matching numpy.fft.fftshift applied to a centered spatial-frequency
// grid (spec.md §4.1 step 3).
func fftshift2D(g *field.Real) *field.Real {
	n := g.N
	out := field.NewReal(n)
	half := n / 2
	for r := 0; r < n; r++ {
		sr := (r + half) % n
		for c := 0; c < n; c++ {
			sc := (c + half) % n
			out.Set(sr, sc, g.At(r, c))
		}
	}
	return out
}

// applyAngleLimit zeroes H where the propagation angle would exceed
// the threshold implied by the finite grid aperture D=(N-1)*delta, per
// spec.md §4.1 step 7. This suppresses aliasing from plane-wave
// components whose angle would wrap the periodic FFT grid.
func applyAngleLimit(h *field.Complex, q *field.Real, n int, deltaM, z float64) {
	d := float64(n-1) * deltaM
	threshold := math.Sqrt(0.5 * d * d / (0.5*d*d + z*z))

	for i, qi := range q.Data {
		if math.Sqrt(qi) > threshold {
			h.Data[i] = 0
		}
	}
}
