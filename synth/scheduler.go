package synth

import (
	"sync"
	"time"
)

// TimeSignature determines measure wrap-around and strong-beat position.
type TimeSignature struct {
	BeatsPerMeasure int // [1, 16]
	BeatUnit        int // one of {1,2,4,8,16}
}

// clamp repairs out-of-range fields rather than rejecting the whole
// value: BeatsPerMeasure is pulled to its nearest bound in [1, 16], and a
// BeatUnit outside {1,2,4,8,16} is replaced by 4.
func (ts TimeSignature) clamp() TimeSignature {
	if ts.BeatsPerMeasure < 1 {
		ts.BeatsPerMeasure = 1
	} else if ts.BeatsPerMeasure > 16 {
		ts.BeatsPerMeasure = 16
	}
	switch ts.BeatUnit {
	case 1, 2, 4, 8, 16:
	default:
		ts.BeatUnit = 4
	}
	return ts
}

// BeatEvent describes one musical beat that fell within an elapsed
// wall-clock interval.
type BeatEvent struct {
	BeatNumber    int // 1-indexed within the measure
	MeasureNumber int64
	IsStrong      bool // true for beat 1
	ScheduledAt   time.Time
	TempoBPM      float64
	TimeSignature TimeSignature
}

// DiscreteScheduler emits BeatEvents computed from an integer beat index
// times a period, never by accumulating a running clock — this is what
// guarantees zero cumulative drift regardless of polling cadence.
type DiscreteScheduler struct {
	mu sync.Mutex

	anchor        time.Time
	nextBeatIndex uint64
	tempoBPM      float64
	signature     TimeSignature

	running bool
	paused  bool
}

// NewDiscreteScheduler constructs a scheduler in the stopped state with
// the given initial tempo/signature. Call Start to begin emission.
func NewDiscreteScheduler(cfg SchedulerConfig) *DiscreteScheduler {
	return &DiscreteScheduler{
		tempoBPM:  cfg.TempoBPM,
		signature: cfg.TimeSignature.clamp(),
	}
}

// beatPeriod returns the current inter-beat duration, floored so a
// pathological tempo can't produce a zero or negative period.
func (s *DiscreteScheduler) beatPeriod() time.Duration {
	if s.tempoBPM <= 0 {
		return minBeatPeriod
	}
	period := time.Duration(float64(time.Minute) / s.tempoBPM)
	if period < minBeatPeriod {
		return minBeatPeriod
	}
	return period
}

// Start anchors beat 0 at now and resets the beat index; the next
// CheckTriggers(now) call immediately emits beat 1.
func (s *DiscreteScheduler) Start(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.anchor = now
	s.nextBeatIndex = 0
	s.running = true
	s.paused = false
}

// Stop resets the scheduler to its uninitialized state.
func (s *DiscreteScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.paused = false
	s.nextBeatIndex = 0
	s.anchor = time.Time{}
}

// Pause freezes emission without touching the beat index.
func (s *DiscreteScheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
}

// Resume re-anchors so the next beat emerges exactly one beat period
// after now, continuing from the current beat index.
func (s *DiscreteScheduler) Resume(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.paused = false
	s.anchor = now.Add(-time.Duration(s.nextBeatIndex) * s.beatPeriod()).Add(s.beatPeriod())
}

// SetTempo changes the tempo while rebasing the anchor so the current
// beat-fractional-position stays continuous across the change:
// anchor := now - elapsed_from_old_anchor * new_period/old_period,
// so (now - anchor)/new_period equals the old elapsed/old_period.
func (s *DiscreteScheduler) SetTempo(bpm float64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bpm <= 0 {
		return
	}
	if !s.running {
		s.tempoBPM = bpm
		return
	}

	oldPeriod := s.beatPeriod()
	elapsed := now.Sub(s.anchor)

	s.tempoBPM = bpm
	newPeriod := s.beatPeriod()

	rebased := time.Duration(float64(elapsed) * float64(newPeriod) / float64(oldPeriod))
	s.anchor = now.Add(-rebased)
}

// SetTimeSignature changes measure indexing only; anchor and
// nextBeatIndex are preserved.
func (s *DiscreteScheduler) SetTimeSignature(ts TimeSignature) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signature = ts.clamp()
}

// TempoBPM returns the current tempo.
func (s *DiscreteScheduler) TempoBPM() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tempoBPM
}

// CheckTriggers computes every BeatEvent whose scheduled instant is at or
// before now and have not yet been emitted, advancing nextBeatIndex past
// each. Typically returns 0 or 1 events; more only if the caller was late
// to poll.
func (s *DiscreteScheduler) CheckTriggers(now time.Time) []BeatEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.paused {
		return nil
	}

	period := s.beatPeriod()
	var events []BeatEvent

	for {
		scheduledAt := s.anchor.Add(time.Duration(s.nextBeatIndex) * period)
		if scheduledAt.After(now) {
			break
		}

		measure := int64(s.nextBeatIndex) / int64(s.signature.BeatsPerMeasure)
		beatInMeasure := int(int64(s.nextBeatIndex)%int64(s.signature.BeatsPerMeasure)) + 1

		events = append(events, BeatEvent{
			BeatNumber:    beatInMeasure,
			MeasureNumber: measure,
			IsStrong:      beatInMeasure == 1,
			ScheduledAt:   scheduledAt,
			TempoBPM:      s.tempoBPM,
			TimeSignature: s.signature,
		})

		s.nextBeatIndex++
	}

	return events
}
