// Package solver implements the iterative angular-spectrum
// phase-retrieval loop, spec.md §4.4 — the computational core of this
// module.
package solver

import (
	"context"
	"math"

	"github.com/doismellburning/phasefield/internal/field"
	"github.com/doismellburning/phasefield/internal/geometry"
	"github.com/doismellburning/phasefield/internal/medium"
	"github.com/doismellburning/phasefield/internal/propagator"
	"github.com/doismellburning/phasefield/internal/quantize"
	"github.com/doismellburning/phasefield/internal/solvererr"
)

// Options carries every scalar parameter from spec.md §4.4's Solver
// contract.
type Options struct {
	DistanceM    float64
	Iters        int
	SliceSizeM   float64
	FrequencyHz  float64
	SoundSpeedMS float64
	EmitterSizeM float64
	AmpRes       int
	PhaseRes     int
}

// Result is the Solver's output: per-emitter amplitudes and phases in
// row-major emitter-grid order, plus the achieved amplitude field at
// the target plane after the final forward propagation.
type Result struct {
	Amps     []float64
	Phases   []float64
	AmpSlice *field.Real
	NSide    int
}

// Solve runs the iterative Gerchberg-Saxton-style loop of spec.md
// §4.4. ctx is checked once per iteration boundary only — the Solver
// has no suspension points within a single iteration (spec.md §5); an
// expired context simply stops the loop early and returns the result
// as it stands, which is always well-formed (convergence is a
// heuristic, not a postcondition).
func Solve(ctx context.Context, target *field.Real, opts Options) (*Result, error) {
	if err := validate(target, opts); err != nil {
		return nil, err
	}

	n := target.N
	layout := geometry.Layout{N: n, SliceSizeM: opts.SliceSizeM, EmitterSizeM: opts.EmitterSizeM}
	nSide := layout.NSide()
	mask := geometry.Mask(layout)
	deltaM := opts.SliceSizeM / float64(n)
	m := medium.Lossless(opts.FrequencyHz, opts.SoundSpeedMS)

	targetField := field.NewComplex(n)
	var emission *field.Complex

iterations:
	for iter := 0; iter < opts.Iters; iter++ {
		select {
		case <-ctx.Done():
			break iterations
		default:
		}

		// Step 1: target-plane amplitude constraint, preserving phase.
		targetField = field.ToComplex(target, targetField.Phase())

		// Step 2: back-propagate to the emission plane.
		emission = propagator.Propagate(targetField, -opts.DistanceM, deltaM, m)
		if !emission.Finite() {
			return nil, solvererr.New(solvererr.NumericInstability, "emission field diverged")
		}

		// Step 3/4: extract amplitude/phase, discretize to the emitter
		// grid, re-expand to N×N.
		amp := emission.Magnitude()
		phase := emission.Phase()

		ampDown := geometry.Downsample(amp, nSide)
		phaseDown := geometry.Downsample(phase, nSide)

		ampQ := quantize.Amplitude(ampDown, opts.AmpRes)
		phaseQ := quantize.Phase(phaseDown, opts.PhaseRes)

		ampUp := geometry.Upsample(ampQ, n)
		phaseUp := geometry.Upsample(phaseQ, n)

		// Step 5: aperture constraint.
		ampUp = ampUp.Mul(mask)

		// Step 6: reconstruct emission.
		emission = field.ToComplex(ampUp, phaseUp)

		// Step 7: forward-propagate to the target plane.
		targetField = propagator.Propagate(emission, opts.DistanceM, deltaM, m)
		if !targetField.Finite() {
			return nil, solvererr.New(solvererr.NumericInstability, "target field diverged")
		}
	}

	if emission == nil {
		emission = field.NewComplex(n)
	}
	amps, phases := extractPerEmitter(emission, layout)

	return &Result{
		Amps:     amps,
		Phases:   phases,
		AmpSlice: targetField.Magnitude(),
		NSide:    nSide,
	}, nil
}

// extractPerEmitter samples emission at the per-emitter cell offset
// spec.md §4.4/§9 specify exactly: (round(ix*emitter_px-emitter_px/2),
// round(iy*emitter_px-emitter_px/2)). This places the sample for
// emitter ix at the center of cell ix-1 rather than its own; when ix
// (or iy) is 0 the negative index wraps to the opposite edge (see
// wrapIndex). This is a documented source-of-truth idiosyncrasy, not a
// bug — implementers must reproduce it to match the reference's output.
func extractPerEmitter(emission *field.Complex, layout geometry.Layout) ([]float64, []float64) {
	nSide := layout.NSide()
	emitterPX := layout.EmitterPX()
	n := emission.N

	amps := make([]float64, nSide*nSide)
	phases := make([]float64, nSide*nSide)

	for ix := 0; ix < nSide; ix++ {
		cx := wrapIndex(int(math.Round(float64(ix)*emitterPX-emitterPX/2)), n)
		for iy := 0; iy < nSide; iy++ {
			cy := wrapIndex(int(math.Round(float64(iy)*emitterPX-emitterPX/2)), n)

			v := emission.At(cx, cy)
			k := ix*nSide + iy
			amps[k] = math.Hypot(real(v), imag(v))
			phases[k] = math.Atan2(imag(v), real(v))
		}
	}

	return amps, phases
}

// wrapIndex reproduces numpy's negative-index wraparound: arr[-k] is
// arr[n-k]. The per-emitter sampling offset (spec.md §4.4/§9) yields a
// negative argument whenever ix (or iy) is 0, and the reference's
// numpy indexing wraps it to the opposite edge rather than erroring —
// implementers must match that to stay bit-compatible.
func wrapIndex(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func validate(target *field.Real, opts Options) error {
	n := target.N
	if len(target.Data) != n*n || !isPowerOfTwo(n) {
		return solvererr.New(solvererr.InvalidShape, "target slice must be square with a power-of-two side")
	}
	if opts.SliceSizeM <= 0 || opts.EmitterSizeM <= 0 || opts.FrequencyHz <= 0 {
		return solvererr.New(solvererr.InvalidGeometry, "slice_size_m, emitter_size_m and frequency must be positive")
	}
	if opts.EmitterSizeM >= opts.SliceSizeM {
		return solvererr.New(solvererr.InvalidGeometry, "emitter_size_m must be smaller than slice_size_m")
	}
	layout := geometry.Layout{N: n, SliceSizeM: opts.SliceSizeM, EmitterSizeM: opts.EmitterSizeM}
	if layout.NSide() < 2 {
		return solvererr.New(solvererr.InvalidGeometry, "geometry yields fewer than 2 emitters per side")
	}
	if opts.AmpRes < 0 || opts.PhaseRes < 0 {
		return solvererr.New(solvererr.InvalidResolution, "amp_res and phase_res must be non-negative")
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
