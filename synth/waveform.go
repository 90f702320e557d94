package synth

import "math"

// WaveformKind tags the variant carried by a Waveform value.
type WaveformKind int

const (
	WaveSine WaveformKind = iota
	WaveSquare
	WaveSawtooth
	WaveTriangle
	WavePulse
	WaveNoise
	WaveSample
)

// Waveform is the tagged, value-typed oscillator source for a Voice. It is
// a struct rather than an interface so triggering a note never boxes a
// value on the audio path.
type Waveform struct {
	Kind WaveformKind

	// Duty is the pulse duty cycle in [0,1]; only meaningful for WavePulse.
	Duty float32

	// Sample is the shared, immutable buffer backing WaveSample voices.
	Sample *SampleData
}

// Sine constructs a sine Waveform.
func Sine() Waveform { return Waveform{Kind: WaveSine} }

// Square constructs a square Waveform.
func Square() Waveform { return Waveform{Kind: WaveSquare} }

// Sawtooth constructs a sawtooth Waveform.
func Sawtooth() Waveform { return Waveform{Kind: WaveSawtooth} }

// Triangle constructs a triangle Waveform.
func Triangle() Waveform { return Waveform{Kind: WaveTriangle} }

// Pulse constructs a pulse Waveform with the given duty cycle, clamped to
// [0,1].
func Pulse(duty float32) Waveform {
	return Waveform{Kind: WavePulse, Duty: Clamp32(duty, 0, 1)}
}

// Noise constructs a deterministic white-noise Waveform.
func Noise() Waveform { return Waveform{Kind: WaveNoise} }

// FromSample constructs a Waveform that plays back an immutable sample
// buffer. data must be non-nil and already validated by its loader.
func FromSample(data *SampleData) Waveform {
	return Waveform{Kind: WaveSample, Sample: data}
}

const twoPi = 2 * math.Pi

// generateOscillatorSample returns the raw, unit-amplitude sample for the
// given phase (radians, in [0, 2π)) of a phase-driven waveform. It does not
// handle WaveSample — pitched sample playback goes through
// sampleAtFrame (sample.go) instead, since it needs the voice's elapsed
// frame count rather than a wrapped phase.
func generateOscillatorSample(w Waveform, phase float64, lcg *uint32) float64 {
	switch w.Kind {
	case WaveSine:
		return math.Sin(phase)

	case WaveSquare:
		if phase < math.Pi {
			return 1.0
		}
		return -1.0

	case WaveSawtooth:
		// Monotone rising ramp from -1 at phase=0 to +1 as phase->2π.
		return 2.0*(phase/twoPi) - 1.0

	case WaveTriangle:
		if phase < math.Pi {
			// -1 -> +1 over [0, π)
			return 2.0*(phase/math.Pi) - 1.0
		}
		// +1 -> -1 over [π, 2π)
		return 1.0 - 2.0*((phase-math.Pi)/math.Pi)

	case WavePulse:
		if phase/twoPi < float64(w.Duty) {
			return 1.0
		}
		return -1.0

	case WaveNoise:
		return nextLCGSample(lcg)

	default:
		return 0.0
	}
}

// advancePhase advances a phase accumulator (radians) by one sample period
// at the given frequency and sample rate, wrapping into [0, 2π).
func advancePhase(phase, freqHz, sampleRate float64) float64 {
	phase += twoPi * freqHz / sampleRate
	if phase >= twoPi || phase < 0 {
		phase -= twoPi * math.Floor(phase/twoPi)
	}
	return phase
}

// lcgMultiplier and lcgIncrement are the classic ANSI C rand() LCG
// constants: deterministic, cheap, and sufficient for audio noise (no
// cryptographic requirement here).
const (
	lcgMultiplier uint32 = 1103515245
	lcgIncrement  uint32 = 12345
)

// nextLCGSample advances the per-voice LCG state and scales it into
// [-1, 1]. Each voice owns its own seed so two simultaneous noise voices
// don't correlate.
func nextLCGSample(state *uint32) float64 {
	*state = (*state)*lcgMultiplier + lcgIncrement
	return float64(*state)/float64(math.MaxUint32)*2.0 - 1.0
}

// Clamp32 restricts v to [lo, hi].
func Clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
