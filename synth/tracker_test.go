package synth

import (
	"runtime"
	"testing"
	"time"
)

type countingObserver struct {
	count int
}

func (c *countingObserver) OnBeat(ev BeatEvent) { c.count++ }

// TestBeatTrackerDispatchesToLiveObservers verifies every registered,
// still-referenced observer receives every dispatched event.
func TestBeatTrackerDispatchesToLiveObservers(t *testing.T) {
	tr := NewBeatTracker()

	var obsA BeatObserver = &countingObserver{}
	var obsB BeatObserver = &countingObserver{}
	tr.Register(&obsA)
	tr.Register(&obsB)

	evs := []BeatEvent{
		{BeatNumber: 1, IsStrong: true, ScheduledAt: time.Now()},
		{BeatNumber: 2, ScheduledAt: time.Now()},
	}
	tr.Dispatch(evs)

	if got := obsA.(*countingObserver).count; got != 2 {
		t.Errorf("obsA received %d events, want 2", got)
	}
	if got := obsB.(*countingObserver).count; got != 2 {
		t.Errorf("obsB received %d events, want 2", got)
	}
}

// TestBeatTrackerEmptyDispatchIsNoOp verifies dispatching a nil/empty
// slice touches no observer and doesn't panic on an empty tracker.
func TestBeatTrackerEmptyDispatchIsNoOp(t *testing.T) {
	tr := NewBeatTracker()
	tr.Dispatch(nil)
	tr.Dispatch([]BeatEvent{})

	var obs BeatObserver = &countingObserver{}
	tr.Register(&obs)
	tr.Dispatch(nil)
	if got := obs.(*countingObserver).count; got != 0 {
		t.Errorf("expected 0 events delivered for empty dispatch, got %d", got)
	}
}

// TestBeatTrackerDroppedObserverDoesNotBlockOperation verifies that once
// the caller stops holding a registered observer reachable and a GC runs,
// the tracker keeps dispatching to the remaining live observers without
// error.
func TestBeatTrackerDroppedObserverDoesNotBlockOperation(t *testing.T) {
	tr := NewBeatTracker()

	func() {
		var dropped BeatObserver = &countingObserver{}
		tr.Register(&dropped)
	}() // dropped goes out of scope with no other references

	var kept BeatObserver = &countingObserver{}
	tr.Register(&kept)

	runtime.GC()
	runtime.GC()

	// Must not panic even though one weak pointer may now be dead.
	tr.Dispatch([]BeatEvent{{BeatNumber: 1, ScheduledAt: time.Now()}})

	if got := kept.(*countingObserver).count; got != 1 {
		t.Errorf("surviving observer received %d events, want 1", got)
	}
}

// TestBeatTrackerObserverCountIsAdvisory verifies ObserverCount reflects
// registrations made so far (a loose sanity check given GC timing is not
// guaranteed within a single test run).
func TestBeatTrackerObserverCountIsAdvisory(t *testing.T) {
	tr := NewBeatTracker()
	if got := tr.ObserverCount(); got != 0 {
		t.Errorf("ObserverCount() on empty tracker = %d, want 0", got)
	}

	var obs BeatObserver = &countingObserver{}
	tr.Register(&obs)
	if got := tr.ObserverCount(); got != 1 {
		t.Errorf("ObserverCount() after one registration = %d, want 1", got)
	}
}
