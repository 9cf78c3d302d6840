package field_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doismellburning/phasefield/internal/field"
)

func TestToComplexAndBackRecoversAmpPhase(t *testing.T) {
	amp := field.NewReal(2)
	amp.Data = []float64{1, 2, 0.5, 3}
	phase := field.NewReal(2)
	phase.Data = []float64{0, math.Pi / 2, math.Pi, -math.Pi / 2}

	c := field.ToComplex(amp, phase)
	gotAmp := c.Magnitude()
	gotPhase := c.Phase()

	for i := range amp.Data {
		assert.InDelta(t, amp.Data[i], gotAmp.Data[i], 1e-9)
		assert.InDelta(t, phase.Data[i], gotPhase.Data[i], 1e-9)
	}
}

func TestFiniteDetectsNaNAndInf(t *testing.T) {
	g := field.NewComplex(2)
	assert.True(t, g.Finite())

	g.Set(0, 0, complex(math.NaN(), 0))
	assert.False(t, g.Finite())

	g2 := field.NewComplex(2)
	g2.Set(1, 1, complex(math.Inf(1), 0))
	assert.False(t, g2.Finite())
}

func TestCloneIsIndependent(t *testing.T) {
	g := field.NewReal(2)
	g.Data = []float64{1, 2, 3, 4}
	clone := g.Clone()
	clone.Set(0, 0, 99)
	assert.NotEqual(t, g.At(0, 0), clone.At(0, 0))
}

func TestMul(t *testing.T) {
	a := field.NewReal(2)
	a.Data = []float64{1, 2, 3, 4}
	b := field.NewReal(2)
	b.Data = []float64{2, 2, 2, 2}

	out := a.Mul(b)
	for i := range out.Data {
		assert.Equal(t, a.Data[i]*2, out.Data[i])
	}
}
