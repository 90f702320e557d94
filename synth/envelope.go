package synth

// EnvelopePhase is the current stage of a voice's ADSR progression.
// Finished is terminal and signals the voice as free.
type EnvelopePhase int

const (
	PhaseAttack EnvelopePhase = iota
	PhaseDecay
	PhaseSustain
	PhaseRelease
	PhaseFinished
)

// AdsrEnvelope holds the four shaping parameters of a voice's amplitude
// contour, all in seconds except SustainLevel which is a level in [0,1].
type AdsrEnvelope struct {
	AttackSecs   float64
	DecaySecs    float64
	SustainLevel float64
	ReleaseSecs  float64
}

// EnvelopeState tracks one voice's live progression through an
// AdsrEnvelope.
type EnvelopeState struct {
	Phase        EnvelopePhase
	TimeInPhase  float64 // seconds
	CurrentLevel float64
	ReleaseLevel float64 // level captured at the moment release() was called
}

// trigger resets the envelope to the start of Attack.
func (e *EnvelopeState) trigger() {
	e.Phase = PhaseAttack
	e.TimeInPhase = 0
	e.CurrentLevel = 0
}

// release captures the current level as the release ramp's start and
// moves the envelope into Release. A no-op if already releasing or
// finished (spec: release_note called twice is idempotent).
func (e *EnvelopeState) release() {
	if e.Phase == PhaseRelease || e.Phase == PhaseFinished {
		return
	}
	e.ReleaseLevel = e.CurrentLevel
	e.Phase = PhaseRelease
	e.TimeInPhase = 0
}

// advance progresses the envelope by one sample period (dt = 1/sampleRate
// seconds) and returns the new current level. A zero-duration phase is
// passed through within the same sample — no discontinuity is introduced
// at the following phase boundary.
func (e *EnvelopeState) advance(params AdsrEnvelope, dt float64) float64 {
	switch e.Phase {
	case PhaseAttack:
		if params.AttackSecs <= 0 {
			e.CurrentLevel = 1.0
			e.Phase = PhaseDecay
			e.TimeInPhase = 0
			return e.advance(params, dt)
		}
		e.TimeInPhase += dt
		if e.TimeInPhase >= params.AttackSecs {
			e.CurrentLevel = 1.0
			e.Phase = PhaseDecay
			e.TimeInPhase = 0
			return e.advance(params, dt)
		}
		e.CurrentLevel = e.TimeInPhase / params.AttackSecs

	case PhaseDecay:
		if params.DecaySecs <= 0 {
			e.CurrentLevel = params.SustainLevel
			e.Phase = PhaseSustain
			e.TimeInPhase = 0
			return e.advance(params, dt)
		}
		e.TimeInPhase += dt
		if e.TimeInPhase >= params.DecaySecs {
			e.CurrentLevel = params.SustainLevel
			e.Phase = PhaseSustain
			e.TimeInPhase = 0
			return e.advance(params, dt)
		}
		t := e.TimeInPhase / params.DecaySecs
		e.CurrentLevel = 1.0 - t*(1.0-params.SustainLevel)

	case PhaseSustain:
		e.CurrentLevel = params.SustainLevel

	case PhaseRelease:
		if params.ReleaseSecs <= 0 {
			e.CurrentLevel = 0
			e.Phase = PhaseFinished
			e.TimeInPhase = 0
			return e.CurrentLevel
		}
		e.TimeInPhase += dt
		if e.TimeInPhase >= params.ReleaseSecs {
			e.CurrentLevel = 0
			e.Phase = PhaseFinished
			e.TimeInPhase = 0
			return e.CurrentLevel
		}
		t := e.TimeInPhase / params.ReleaseSecs
		e.CurrentLevel = e.ReleaseLevel * (1.0 - t)

	case PhaseFinished:
		e.CurrentLevel = 0
	}

	return e.CurrentLevel
}
