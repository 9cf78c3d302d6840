// Package wire implements the Solver-output-to-byte encoding of
// spec.md §6: binning phases into [0, phase_res) and framing them for
// the serial protocol.
package wire

import (
	"math"

	"github.com/doismellburning/phasefield/internal/solvererr"
)

// Reserved protocol bytes, spec.md §6.
const (
	StartReceivingPhases byte = 0xFE
	SwapBuffer           byte = 0xFD
)

// EncodePhase bins a single Solver-output phase (radians, in (-pi,
// pi]) into [0, phaseRes) using the exact formula from spec.md §6:
// p = round(phi*phaseRes/2) mod phaseRes, with negative results
// wrapped into range.
func EncodePhase(phi float64, phaseRes int) int {
	p := int(math.Round(phi*float64(phaseRes)/2)) % phaseRes
	if p < 0 {
		p += phaseRes
	}
	return p
}

// maxWireValue is the highest byte value spec.md §6's table allows for
// an emitter phase/amplitude value: bytes 0x80 and above are reserved
// or control (0xFE, 0xFD, or otherwise reserved), so only [0, 0x80) is
// transmittable.
const maxWireValue = 0x80

// EncodePhases bins a full emitter-grid phase array and packs it into
// bytes, returning a ProtocolError if phaseRes is not positive or if
// any phase's bin index falls in the reserved/control byte range.
func EncodePhases(phases []float64, phaseRes int) ([]byte, error) {
	if phaseRes <= 0 {
		return nil, solvererr.New(solvererr.ProtocolError, "phase_res must be positive to encode onto the wire")
	}

	out := make([]byte, len(phases))
	for i, phi := range phases {
		p := EncodePhase(phi, phaseRes)
		if p >= maxWireValue {
			return nil, solvererr.New(solvererr.ProtocolError, "phase bin falls in the reserved/control byte range")
		}
		out[i] = byte(p)
	}
	return out, nil
}

// Frame wraps an encoded phase payload with the start/swap framing
// bytes of spec.md §6: 0xFE, then the payload, then 0xFD.
func Frame(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+2)
	out = append(out, StartReceivingPhases)
	out = append(out, payload...)
	out = append(out, SwapBuffer)
	return out
}
