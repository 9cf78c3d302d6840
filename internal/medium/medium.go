// Package medium describes the acoustic propagation medium a target
// slice is solved against.
package medium

import "math"

// Medium is the triple {sound speed, attenuation, frequency} that
// parameterizes a Propagator call. Frequency is carried here rather
// than threaded separately through every call, mirroring the
// reference algorithm's `medium` dict plus f0 argument collapsed into
// one record.
type Medium struct {
	SoundSpeedMPerS          float64
	AttenuationDBPerCMPerMHz float64
	FrequencyHz              float64
}

// Wavelength returns sound_speed / frequency, in meters.
func (m Medium) Wavelength() float64 {
	return m.SoundSpeedMPerS / m.FrequencyHz
}

// Wavenumber returns 2*pi/lambda.
func (m Medium) Wavenumber() float64 {
	return 2 * math.Pi / m.Wavelength()
}

// AttenuationNepersPerMeter converts the configured dB/cm/MHz figure
// into linear Nepers/meter at this medium's frequency, per spec.md
// §4.1 step 1: alpha = (dB_per_cm_per_MHz / (20*log10(e))) * 100 * f0/1e6.
func (m Medium) AttenuationNepersPerMeter() float64 {
	if m.AttenuationDBPerCMPerMHz <= 0 {
		return 0
	}
	dbPerNeper := 20 * math.Log10(math.E)
	return (m.AttenuationDBPerCMPerMHz / dbPerNeper) * 100 * m.FrequencyHz / 1e6
}

// Air is the typical Non-goal-adjacent default used by callers
// targeting airborne ultrasonic haptics; the Solver itself defaults
// attenuation to zero per spec.md §4.4.
func Air(frequencyHz, soundSpeedMPerS float64) Medium {
	return Medium{
		SoundSpeedMPerS:          soundSpeedMPerS,
		AttenuationDBPerCMPerMHz: 1.61,
		FrequencyHz:              frequencyHz,
	}
}

// Lossless is the Solver's internal default medium: zero attenuation.
func Lossless(frequencyHz, soundSpeedMPerS float64) Medium {
	return Medium{
		SoundSpeedMPerS:          soundSpeedMPerS,
		AttenuationDBPerCMPerMHz: 0,
		FrequencyHz:              frequencyHz,
	}
}
