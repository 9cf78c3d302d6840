// Package fft2 provides a 2D complex forward/inverse discrete Fourier
// transform on N×N grids, built from gonum's 1D complex FFT applied by
// row-column decomposition.
//
// This is the FFT Kernel of spec.md §2 item 1: it carries none of the
// physics, only the numerical primitive the Propagator multiplies
// against a transfer function.
package fft2

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/doismellburning/phasefield/internal/field"
)

// Forward computes the unnormalized 2D DFT of g, matching numpy's
// fft.fft2 convention (no 1/N scaling, no shift).
func Forward(g *field.Complex) *field.Complex {
	return transform2D(g, true)
}

// Inverse computes the 2D inverse DFT of g, normalized so that
// Inverse(Forward(g)) == g up to floating point error, matching numpy's
// fft.ifft2 convention.
func Inverse(g *field.Complex) *field.Complex {
	out := transform2D(g, false)
	// gonum's Sequence is unnormalized; apply numpy's 1/N² scaling.
	scale := complex(1/float64(g.N*g.N), 0)
	for i := range out.Data {
		out.Data[i] *= scale
	}
	return out
}

func transform2D(g *field.Complex, forward bool) *field.Complex {
	n := g.N
	plan := fourier.NewCmplxFFT(n)

	out := field.NewComplex(n)
	copy(out.Data, g.Data)

	row := make([]complex128, n)

	// Transform each row in place.
	for r := 0; r < n; r++ {
		copy(row, out.Data[r*n:(r+1)*n])
		transform1D(plan, row, forward)
		copy(out.Data[r*n:(r+1)*n], row)
	}

	// Transform each column in place.
	col := make([]complex128, n)
	for c := 0; c < n; c++ {
		for r := 0; r < n; r++ {
			col[r] = out.At(r, c)
		}
		transform1D(plan, col, forward)
		for r := 0; r < n; r++ {
			out.Set(r, c, col[r])
		}
	}

	return out
}

func transform1D(plan *fourier.CmplxFFT, seq []complex128, forward bool) {
	if forward {
		plan.Coefficients(seq, seq)
		return
	}
	plan.Sequence(seq, seq)
}

// ValidateSize returns an error unless n is a positive power of two.
// Forward and Inverse do not call it themselves.
func ValidateSize(n int) error {
	if n <= 0 || n&(n-1) != 0 {
		return fmt.Errorf("fft2: size %d is not a positive power of two", n)
	}
	return nil
}
