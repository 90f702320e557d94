package synth

import (
	"sync"
	"sync/atomic"
)

// Engine owns a fixed pool of MaxVoices voices plus the atomic parameters
// that can be touched without the pool mutex. One Engine typically serves
// one audio device stream.
//
// Concurrency: trigger/release-family methods, the per-voice scalar
// setters (SetVoiceFrequency, SetVoiceAmplitude) and ProcessBuffer all
// take engineMu — a single coarse mutual-exclusion region. Critical
// sections are O(MaxVoices) and contain no I/O or allocation, so
// the audio callback never blocks for long even though it briefly shares
// the lock with the control thread. Only the master-volume accessors
// bypass the mutex and go straight to an AtomicF32; per-voice frequency
// and amplitude are plain fields, not atomic cells.
type Engine struct {
	engineMu sync.Mutex
	voices   [MaxVoices]voice

	sampleRate   float64
	masterVolume AtomicF32
	nextVoiceID  atomic.Uint32
	nextActivate atomic.Uint64

	activeCount atomic.Int32 // advisory; a concurrent reader may lag
}

// NewEngine constructs an Engine from cfg.
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{
		sampleRate: cfg.SampleRate,
	}
	e.masterVolume.Store(Clamp32(cfg.MasterVolume, 0, 1))
	return e
}

// TriggerNote allocates a seat and returns its id. Always succeeds — if
// the pool is full, the oldest active voice is stolen to make room
// rather than rejecting the new note.
func (e *Engine) TriggerNote(w Waveform, frequencyHz float64, env AdsrEnvelope) VoiceID {
	e.engineMu.Lock()
	defer e.engineMu.Unlock()

	seat := e.selectSeat()
	wasActive := seat.active

	id := VoiceID(e.nextVoiceID.Add(1))
	order := e.nextActivate.Add(1)
	seat.initialize(id, w, frequencyHz, env, order)

	if !wasActive {
		e.activeCount.Add(1)
	}
	return id
}

// TriggerChord triggers one voice per (waveform, frequency) pair, sharing
// the same envelope parameters, and returns their ids in order.
func (e *Engine) TriggerChord(notes []ChordNote, env AdsrEnvelope) []VoiceID {
	ids := make([]VoiceID, len(notes))
	for i, n := range notes {
		ids[i] = e.TriggerNote(n.Waveform, n.FrequencyHz, env)
	}
	return ids
}

// ChordNote is one note of a TriggerChord call.
type ChordNote struct {
	Waveform    Waveform
	FrequencyHz float64
}

// selectSeat picks the first free seat in pool order, falling back to
// the oldest active seat once the pool is full (ties broken by lower
// index, which falls out naturally from scanning in order with strict
// "<"). Must be called with engineMu held.
func (e *Engine) selectSeat() *voice {
	for i := range e.voices {
		if !e.voices[i].active {
			return &e.voices[i]
		}
	}

	oldest := &e.voices[0]
	for i := 1; i < len(e.voices); i++ {
		if e.voices[i].activatedAt < oldest.activatedAt {
			oldest = &e.voices[i]
		}
	}
	return oldest
}

// ReleaseNote transitions the voice matching id into Release, capturing
// its current level as the release ramp's start. No-op if id doesn't
// match any active seat, or the seat is already releasing/finished.
func (e *Engine) ReleaseNote(id VoiceID) {
	e.engineMu.Lock()
	defer e.engineMu.Unlock()

	v := e.findActive(id)
	if v == nil {
		return
	}
	v.adsr.release()
}

// ReleaseAllNotes applies ReleaseNote semantics to every active voice.
func (e *Engine) ReleaseAllNotes() {
	e.engineMu.Lock()
	defer e.engineMu.Unlock()

	for i := range e.voices {
		if e.voices[i].active {
			e.voices[i].adsr.release()
		}
	}
}

// StopAllNotes immediately silences every voice without running Release.
func (e *Engine) StopAllNotes() {
	e.engineMu.Lock()
	defer e.engineMu.Unlock()

	for i := range e.voices {
		e.voices[i].free()
	}
	e.activeCount.Store(0)
}

// findActive returns the voice seat matching id, or nil. Must be called
// with engineMu held.
func (e *Engine) findActive(id VoiceID) *voice {
	for i := range e.voices {
		if e.voices[i].active && e.voices[i].id == id {
			return &e.voices[i]
		}
	}
	return nil
}

// SetVoiceFrequency retargets an active voice's oscillator frequency. A
// stale or unmatched id (already released, stolen, or never issued) is a
// silent no-op. Safe against a concurrent ProcessBuffer: it takes the
// same pool mutex trigger/release use, so it never observes a
// half-initialized seat.
func (e *Engine) SetVoiceFrequency(id VoiceID, hz float64) {
	e.engineMu.Lock()
	defer e.engineMu.Unlock()

	if v := e.findActive(id); v != nil {
		v.frequency = hz
	}
}

// SetVoiceAmplitude retargets an active voice's amplitude (clamped to
// [0,1]). A stale or unmatched id is a silent no-op.
func (e *Engine) SetVoiceAmplitude(id VoiceID, amplitude float32) {
	e.engineMu.Lock()
	defer e.engineMu.Unlock()

	if v := e.findActive(id); v != nil {
		v.amplitude = Clamp32(amplitude, 0, 1)
	}
}

// SetMasterVolume atomically sets the master gain, clamped to [0,1].
// Does not take engineMu — callers (e.g. a UI fader) can adjust gain
// without contending with the audio callback's pool lock.
func (e *Engine) SetMasterVolume(v float32) {
	e.masterVolume.Store(Clamp32(v, 0, 1))
}

// GetMasterVolume atomically reads the master gain.
func (e *Engine) GetMasterVolume() float32 {
	return e.masterVolume.Load()
}

// GetActiveVoiceCount returns the number of voices whose active flag is
// set. Advisory: a concurrent ProcessBuffer may free voices after this
// read returns.
func (e *Engine) GetActiveVoiceCount() int {
	return int(e.activeCount.Load())
}

// ProcessBuffer fills out with out's length worth of mono frames,
// advancing every active voice by one sample period each. Performs no
// heap allocation. Never returns an error — malformed per-voice state
// degrades to silence for that voice only, rather than aborting the
// whole mixdown.
func (e *Engine) ProcessBuffer(out []float32) {
	e.engineMu.Lock()
	defer e.engineMu.Unlock()

	masterVolume := float64(e.masterVolume.Load())
	dt := 1.0 / e.sampleRate

	for i := range out {
		out[i] = e.mixFrameLocked(dt, masterVolume)
	}
}

// ProcessStereoBuffer fills out with out's length worth of interleaved
// L,R frames, each mono frame duplicated to both channels. out must have
// even length; if not, ErrInvalidBuffer is returned and out is left
// untouched. Like ProcessBuffer, performs no heap allocation.
func (e *Engine) ProcessStereoBuffer(out []float32) error {
	if len(out)%2 != 0 {
		return ErrInvalidBuffer
	}

	e.engineMu.Lock()
	defer e.engineMu.Unlock()

	masterVolume := float64(e.masterVolume.Load())
	dt := 1.0 / e.sampleRate

	for i := 0; i < len(out); i += 2 {
		s := e.mixFrameLocked(dt, masterVolume)
		out[i] = s
		out[i+1] = s
	}
	return nil
}

// mixFrameLocked advances every active voice by one sample period and
// returns the clamped, master-gained mixdown for that frame. Must be
// called with engineMu held.
func (e *Engine) mixFrameLocked(dt, masterVolume float64) float32 {
	var sum float64
	active := int32(0)

	for vi := range e.voices {
		v := &e.voices[vi]
		if !v.active {
			continue
		}

		var raw float64
		if v.waveform.Kind == WaveSample {
			raw = sampleAtFrame(v.waveform.Sample, v.framesSinceTrigger, v.frequency, e.sampleRate)
		} else {
			raw = generateOscillatorSample(v.waveform, v.phase, &v.lcgState)
			v.phase = advancePhase(v.phase, v.frequency, e.sampleRate)
		}
		v.framesSinceTrigger++

		envLevel := v.adsr.advance(v.env, dt)

		sum += raw * float64(v.amplitude) * envLevel

		if v.adsr.Phase == PhaseFinished {
			v.free()
		} else {
			active++
		}
	}

	e.activeCount.Store(active)
	return float32(Clamp(sum*masterVolume, -1, 1))
}
