package synth

import "math"

// SampleData is an immutable, shared audio buffer loaded once (see the
// wavfile package) and referenced by any number of voices simultaneously.
// It is never mutated after construction — the zero synchronization
// needed to share it safely comes entirely from that invariant.
type SampleData struct {
	// Samples is mono, source-rate PCM in [-1, 1].
	Samples []float32

	// SourceRateHz is the rate Samples was recorded/decoded at. No
	// resampling happens at load time; pitch is resolved at render time
	// against SourceRateHz and BaseFrequencyHz instead.
	SourceRateHz float64

	// BaseFrequencyHz is the implicit pitch against which a target
	// trigger frequency is ratioed. Defaults to 440Hz unless the
	// loader supplies a better estimate from the recording's metadata.
	BaseFrequencyHz float64

	// Name is descriptive metadata only; never consulted for playback.
	Name string
}

// Duration returns the sample's length in seconds.
func (s *SampleData) Duration() float64 {
	if s == nil || s.SourceRateHz <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / s.SourceRateHz
}

// sampleAtFrame computes one output sample of pitched playback: the
// voice has played frameIndex frames (since trigger) at targetFreqHz
// against the sample's base frequency, rendered at hostSampleRate.
// Returns 0 once the source buffer is exhausted — the envelope, not
// this function, governs whether the voice is still "active".
func sampleAtFrame(data *SampleData, frameIndex uint64, targetFreqHz, hostSampleRate float64) float64 {
	if data == nil || len(data.Samples) == 0 || hostSampleRate <= 0 {
		return 0
	}

	base := data.BaseFrequencyHz
	if base <= 0 {
		base = DefaultBaseFrequencyHz
	}
	pitchRatio := targetFreqHz / base

	tSrc := float64(frameIndex) * pitchRatio / hostSampleRate
	x := tSrc * data.SourceRateHz

	i := int(math.Floor(x))
	if i < 0 {
		return 0
	}
	n := len(data.Samples)
	if i+1 >= n {
		// Only an index with a successor interpolates; the final
		// sample has none, so it renders silence rather than holding.
		return 0
	}

	alpha := x - float64(i)
	return (1-alpha)*float64(data.Samples[i]) + alpha*float64(data.Samples[i+1])
}
