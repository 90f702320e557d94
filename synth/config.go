package synth

import "time"

// MaxVoices is the fixed polyphony of an Engine's voice pool.
const MaxVoices = 32

// DefaultBaseFrequencyHz is the implicit pitch-ratio reference frequency
// for a Sample waveform whose SampleData does not declare one.
const DefaultBaseFrequencyHz = 440.0

// EngineConfig holds the defaults an external collaborator (front-end,
// config loader) supplies when constructing an Engine. synthcore owns no
// persisted state; this is a plain value, not a loader.
type EngineConfig struct {
	SampleRate    float64
	MasterVolume  float32
	InitialTempo  float64
	TimeSignature TimeSignature
}

// DefaultEngineConfig returns sensible defaults for interactive use.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SampleRate:   44100,
		MasterVolume: 0.8,
		InitialTempo: 120.0,
		TimeSignature: TimeSignature{
			BeatsPerMeasure: 4,
			BeatUnit:        4,
		},
	}
}

// SchedulerConfig holds the defaults for a DiscreteScheduler.
type SchedulerConfig struct {
	TempoBPM      float64
	TimeSignature TimeSignature
}

// DefaultSchedulerConfig mirrors DefaultEngineConfig's tempo/signature.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		TempoBPM: 120.0,
		TimeSignature: TimeSignature{
			BeatsPerMeasure: 4,
			BeatUnit:        4,
		},
	}
}

// minBeatPeriod guards against a pathological tempo (<=0 BPM) producing a
// zero or negative beat period that would spin check_triggers forever.
const minBeatPeriod = time.Microsecond
