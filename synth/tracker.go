package synth

import (
	"sync"
	"weak"
)

// BeatObserver receives each BeatEvent a BeatTracker dispatches —
// typically something that updates visual state or turns beats into
// voice triggers, e.g. picking a waveform/ADSR for strong vs. weak
// beats and calling Engine.TriggerNote.
type BeatObserver interface {
	OnBeat(BeatEvent)
}

// BeatTracker is a synchronous fanout of BeatEvents to registered
// observers. It holds only weak references: a dropped observer doesn't
// prevent the tracker from operating, and stops receiving events once
// garbage collected without needing an explicit Unregister call.
type BeatTracker struct {
	mu        sync.Mutex
	observers []weak.Pointer[BeatObserver]
}

// NewBeatTracker returns an empty tracker.
func NewBeatTracker() *BeatTracker {
	return &BeatTracker{}
}

// Register adds an observer, weakly. obs must point at memory the
// caller already owns and keeps alive elsewhere — the tracker takes a
// weak.Pointer to *obs itself, not a copy, so a local like
//
//	var held BeatObserver = myObserver
//	tracker.Register(&held)
//
// only keeps receiving events for as long as held (not the tracker) is
// reachable from the caller's own graph.
func (t *BeatTracker) Register(obs *BeatObserver) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, weak.Make(obs))
}

// Dispatch delivers each event in evs, in order, to every still-live
// observer, in registration order. Called synchronously — observers must
// not block.
func (t *BeatTracker) Dispatch(evs []BeatEvent) {
	if len(evs) == 0 {
		return
	}

	t.mu.Lock()
	live := t.observers[:0]
	for _, wp := range t.observers {
		if obs := wp.Value(); obs != nil {
			live = append(live, wp)
		}
	}
	t.observers = live
	snapshot := make([]weak.Pointer[BeatObserver], len(live))
	copy(snapshot, live)
	t.mu.Unlock()

	for _, ev := range evs {
		for _, wp := range snapshot {
			if obs := wp.Value(); obs != nil {
				(*obs).OnBeat(ev)
			}
		}
	}
}

// ObserverCount returns the number of currently-live registered
// observers. Advisory — a concurrent GC pass may reduce this before the
// caller acts on it.
func (t *BeatTracker) ObserverCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, wp := range t.observers {
		if wp.Value() != nil {
			n++
		}
	}
	return n
}
