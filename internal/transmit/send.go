package transmit

import "github.com/doismellburning/phasefield/internal/wire"

// SendPhases encodes a Solver's per-emitter phase output and sends one
// complete framed transmission over p: 0xFE, n_emitters phase bytes in
// emitter-grid row-major order, then 0xFD — spec.md §6's "complete
// frame transmission for one focal point", equivalent to the original
// PhaseTransmitter.send_phases.
func SendPhases(p *Port, phases []float64, phaseRes int) error {
	payload, err := wire.EncodePhases(phases, phaseRes)
	if err != nil {
		return err
	}
	return p.Send(wire.Frame(payload))
}
