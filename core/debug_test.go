package core

import (
	"strings"
	"testing"
	"time"
)

func TestEventRingWraps(t *testing.T) {
	var r EventRing
	for i := 0; i < TraceRingSize+5; i++ {
		r.Record(EvtButton, 0, uint8(BecameActive), uint32(i))
	}

	if r.Len() != TraceRingSize {
		t.Fatalf("Expected %d events, got %d", TraceRingSize, r.Len())
	}
	events := r.Events()
	if events[0].Uptime != 5 {
		t.Errorf("Expected oldest uptime 5, got %d", events[0].Uptime)
	}
	if events[len(events)-1].Uptime != TraceRingSize+4 {
		t.Errorf("Expected newest uptime %d, got %d", TraceRingSize+4, events[len(events)-1].Uptime)
	}

	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Expected empty ring after Clear, got %d", r.Len())
	}
}

func TestDumpTrace(t *testing.T) {
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(func(string) {})

	s := NewClockState()
	s.setMode(ModeCalibrateZero)
	DumpTrace(&s.Trace)

	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[1], "show_time -> calibrate_zero") {
		t.Errorf("unexpected trace line %q", lines[1])
	}
}

func TestFormatButtonEvent(t *testing.T) {
	line := FormatTraceEvent(TraceEvent{EventType: EvtButton, Value1: uint8(ButtonS2), Value2: uint8(BecameInactive), Uptime: 42})
	if line != "[TRACE] t=42 S2 released" {
		t.Errorf("unexpected line %q", line)
	}
}

func TestDebugAsync(t *testing.T) {
	got := make(chan string, 4)
	SetDebugWriter(func(s string) { got <- s })
	defer SetDebugWriter(func(string) {})
	defer SetDebugEnabled(false)

	// Dropped while disabled
	SetDebugEnabled(false)
	InitAsyncDebug()
	DebugAsync("[CLOCK] hidden")

	SetDebugEnabled(true)
	DebugAsync("[CLOCK] mode calibrate_zero at 06:30:00")

	select {
	case line := <-got:
		if line != "[CLOCK] mode calibrate_zero at 06:30:00" {
			t.Errorf("unexpected line %q", line)
		}
	case <-time.After(time.Second):
		t.Fatal("async debug line never written")
	}
}
