package propagator_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/doismellburning/phasefield/internal/field"
	"github.com/doismellburning/phasefield/internal/medium"
	"github.com/doismellburning/phasefield/internal/propagator"
)

func testMedium() medium.Medium {
	return medium.Lossless(40000, 343)
}

// S1 — identity propagation: a single unit impulse at the origin,
// propagated zero distance, comes back unchanged to within FFT
// round-off.
func TestIdentityPropagation(t *testing.T) {
	const n = 32
	u := field.NewComplex(n)
	u.Set(16, 16, 1)

	out := propagator.Propagate(u, 0, 0.005, testMedium())

	require.True(t, out.Finite())
	assert.InDelta(t, 1.0, cmplx.Abs(out.At(16, 16)), 1e-9)

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if row == 16 && col == 16 {
				continue
			}
			assert.Less(t, cmplx.Abs(out.At(row, col)), 1e-9)
		}
	}
}

// Property 5 — zero distance is the identity up to FFT round-off.
func TestZeroDistanceIsIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		const n = 16
		u := field.NewComplex(n)
		for i := range u.Data {
			re := rapid.Float64Range(-1, 1).Draw(t, "re")
			im := rapid.Float64Range(-1, 1).Draw(t, "im")
			u.Data[i] = complex(re, im)
		}

		out := propagator.Propagate(u, 0, 0.005, testMedium())
		for i := range u.Data {
			assert.InDelta(t, real(u.Data[i]), real(out.Data[i]), 1e-8)
			assert.InDelta(t, imag(u.Data[i]), imag(out.Data[i]), 1e-8)
		}
	})
}

// Property 3 — the propagator is linear in its field argument.
func TestLinearity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		const n = 16
		m := testMedium()
		z := rapid.Float64Range(-0.1, 0.1).Draw(t, "z")
		delta := 0.005

		u := randomField(t, n)
		v := randomField(t, n)
		alpha := complex(rapid.Float64Range(-2, 2).Draw(t, "alpha"), 0)
		beta := complex(rapid.Float64Range(-2, 2).Draw(t, "beta"), 0)

		combo := field.NewComplex(n)
		for i := range combo.Data {
			combo.Data[i] = alpha*u.Data[i] + beta*v.Data[i]
		}

		lhs := propagator.Propagate(combo, z, delta, m)
		pu := propagator.Propagate(u, z, delta, m)
		pv := propagator.Propagate(v, z, delta, m)

		for i := range lhs.Data {
			rhs := alpha*pu.Data[i] + beta*pv.Data[i]
			assert.InDelta(t, real(rhs), real(lhs.Data[i]), 1e-6)
			assert.InDelta(t, imag(rhs), imag(lhs.Data[i]), 1e-6)
		}
	})
}

func randomField(t *rapid.T, n int) *field.Complex {
	g := field.NewComplex(n)
	for i := range g.Data {
		re := rapid.Float64Range(-1, 1).Draw(t, "re")
		im := rapid.Float64Range(-1, 1).Draw(t, "im")
		g.Data[i] = complex(re, im)
	}
	return g
}

func TestPropagateProducesFiniteOutput(t *testing.T) {
	const n = 8
	u := field.NewComplex(n)
	u.Set(4, 4, 1)
	out := propagator.Propagate(u, 0.05, 0.005, testMedium())
	assert.True(t, out.Finite())
	assert.False(t, math.IsNaN(real(out.At(0, 0))))
}
