package synth

// VoiceID opaquely identifies a single trigger, even after its pool seat
// has been reused (voice stealing). A setter called with a stale id is a
// silent no-op — the note the caller held is gone.
type VoiceID uint32

// voice is one seat in the fixed pool. Waveform, ADSR parameters and
// phase/envelope state are all owned by the seat for the duration of one
// note; nothing here is shared across voices except, through Waveform's
// Sample field, an immutable SampleData buffer.
type voice struct {
	id     VoiceID
	active bool

	waveform  Waveform
	frequency float64
	amplitude float32

	phase    float64 // radians, [0, 2π)
	lcgState uint32  // per-voice noise generator seed

	adsr EnvelopeState
	env  AdsrEnvelope

	// framesSinceTrigger drives SampleData pitch-resampling (sample.go);
	// meaningless for the other waveform kinds.
	framesSinceTrigger uint64

	// activatedAt orders voice stealing: the voice with the smallest
	// value is the oldest and is stolen first. A monotonically
	// increasing counter rather than a wall-clock timestamp, so
	// stealing order is exact even when two voices trigger within the
	// same nanosecond.
	activatedAt uint64
}

func (v *voice) free() {
	v.active = false
}

// initialize fully resets a seat for a new note, leaving no residual
// state (phase, envelope, frame counter) from whatever note previously
// occupied this seat.
func (v *voice) initialize(id VoiceID, w Waveform, freqHz float64, env AdsrEnvelope, activationOrder uint64) {
	v.id = id
	v.active = true
	v.waveform = w
	v.frequency = freqHz
	v.amplitude = 1.0
	v.phase = 0
	v.lcgState = uint32(id) ^ 0x9e3779b9 // distinct per voice, deterministic
	v.env = env
	v.adsr = EnvelopeState{}
	v.adsr.trigger()
	v.framesSinceTrigger = 0
	v.activatedAt = activationOrder
}
