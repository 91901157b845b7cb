package core

import "testing"

func TestDebouncerShortPressIgnored(t *testing.T) {
	var d Debouncer

	for i := 0; i < DebounceWait-1; i++ {
		if ev, ok := d.Sample(true); ok {
			t.Fatalf("sample %d: unexpected event %s", i+1, ev)
		}
	}
	if d.State() != ButtonDebouncing {
		t.Errorf("Expected debouncing, got %s", d.State())
	}

	if ev, ok := d.Sample(false); ok {
		t.Fatalf("unexpected event %s on release", ev)
	}
	if d.Count() != 0 {
		t.Errorf("Expected count reset to 0, got %d", d.Count())
	}
	if d.State() != ButtonInactive {
		t.Errorf("Expected inactive, got %s", d.State())
	}
}

func TestDebouncerSixteenthSampleActivates(t *testing.T) {
	var d Debouncer
	events := 0

	for i := 1; i <= DebounceWait; i++ {
		ev, ok := d.Sample(true)
		if !ok {
			continue
		}
		events++
		if i != DebounceWait {
			t.Errorf("Expected activation on sample %d, got it on %d", DebounceWait, i)
		}
		if ev != BecameActive {
			t.Errorf("Expected BecameActive, got %s", ev)
		}
	}
	if events != 1 {
		t.Errorf("Expected exactly 1 event, got %d", events)
	}

	// Holding the button produces nothing more
	for i := 0; i < 1000; i++ {
		if ev, ok := d.Sample(true); ok {
			t.Fatalf("unexpected event %s while held", ev)
		}
	}
	if !d.Active() {
		t.Error("Expected button to stay active while held")
	}
}

func TestDebouncerReleaseIsImmediate(t *testing.T) {
	var d Debouncer
	for i := 0; i < DebounceWait; i++ {
		d.Sample(true)
	}

	ev, ok := d.Sample(false)
	if !ok || ev != BecameInactive {
		t.Fatalf("Expected BecameInactive on first open sample, got %s (ok=%v)", ev, ok)
	}
	if d.Active() {
		t.Error("Expected inactive after release")
	}

	if ev, ok := d.Sample(false); ok {
		t.Errorf("unexpected second event %s", ev)
	}
}

func TestDebouncerRepress(t *testing.T) {
	var d Debouncer
	for i := 0; i < DebounceWait; i++ {
		d.Sample(true)
	}
	d.Sample(false)

	// A bounce right after release needs a full debounce again
	for i := 1; i <= DebounceWait; i++ {
		ev, ok := d.Sample(true)
		if ok != (i == DebounceWait) {
			t.Fatalf("sample %d: ok=%v", i, ok)
		}
		if ok && ev != BecameActive {
			t.Fatalf("Expected BecameActive, got %s", ev)
		}
	}
}
