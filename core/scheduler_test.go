package core

import "testing"

// regWrite is one call on the meter hardware
type regWrite struct {
	force bool
	ch    MeterChannel
	value uint8
}

// fakeHardware records register writes and serves scripted button levels
type fakeHardware struct {
	pressed [2]bool
	writes  []regWrite
}

func (f *fakeHardware) ForceOutputsLow() {
	f.writes = append(f.writes, regWrite{force: true})
}

func (f *fakeHardware) SetCompare(ch MeterChannel, offTicks uint8) {
	f.writes = append(f.writes, regWrite{ch: ch, value: offTicks})
}

func (f *fakeHardware) Pressed(b Button) bool {
	return f.pressed[b]
}

// lastCycle returns the writes of the most recent hardware phase
func (f *fakeHardware) lastCycle() []regWrite {
	if len(f.writes) < 3 {
		return nil
	}
	return f.writes[len(f.writes)-3:]
}

func tickN(hw *fakeHardware, s *ClockState, n int) {
	for i := 0; i < n; i++ {
		OnTick(hw, s)
	}
}

func TestHardwarePhaseOrder(t *testing.T) {
	hw := &fakeHardware{}
	HardwarePhase(hw, MeterOutputs{HourDuty: 9, MinuteDuty: 5})

	expected := []regWrite{
		{force: true},
		{ch: MinuteChannel, value: 5},
		{ch: HourChannel, value: 9},
	}
	if len(hw.writes) != len(expected) {
		t.Fatalf("Expected %d writes, got %d", len(expected), len(hw.writes))
	}
	for i := range expected {
		if hw.writes[i] != expected[i] {
			t.Errorf("write %d: expected %+v, got %+v", i, expected[i], hw.writes[i])
		}
	}
}

func TestHardwarePhaseIdempotent(t *testing.T) {
	hw := &fakeHardware{}
	s := NewClockState()

	// Stay clear of the second boundary so the outputs cannot change
	OnTick(hw, s)
	first := append([]regWrite(nil), hw.lastCycle()...)
	for i := 0; i < 100; i++ {
		OnTick(hw, s)
		cycle := hw.lastCycle()
		for j := range first {
			if cycle[j] != first[j] {
				t.Fatalf("tick %d write %d: expected %+v, got %+v", i+2, j, first[j], cycle[j])
			}
		}
	}
}

func TestSecondDivider(t *testing.T) {
	hw := &fakeHardware{}
	s := NewClockState()

	tickN(hw, s, TicksPerSecond-1)
	if s.Time.Second != 0 {
		t.Fatalf("Expected second 0 after %d ticks, got %d", TicksPerSecond-1, s.Time.Second)
	}

	OnTick(hw, s)
	if s.Time.Second != 1 {
		t.Fatalf("Expected second 1 after %d ticks, got %d", TicksPerSecond, s.Time.Second)
	}
	if s.Uptime() != 1 {
		t.Errorf("Expected uptime 1, got %d", s.Uptime())
	}

	tickN(hw, s, TicksPerSecond*59)
	if s.Time != (TimeOfDay{Hour: 6, Minute: 31, Second: 0}) {
		t.Errorf("Expected 06:31:00 after one minute, got %s", s.Time)
	}
	if s.Outputs() != ComputeForTime(s.Time) {
		t.Errorf("Expected outputs to follow the clock, got %+v", s.Outputs())
	}
	if s.Ticks() != TicksPerSecond*60 {
		t.Errorf("Expected %d ticks, got %d", TicksPerSecond*60, s.Ticks())
	}
}

func TestOutputsArePipelined(t *testing.T) {
	hw := &fakeHardware{}
	s := NewClockState()
	s.SetTime(TimeOfDay{Hour: 6, Minute: 30, Second: 59})

	// The minute rolls over on this tick, but the registers were
	// programmed before the logic phase ran.
	tickN(hw, s, TicksPerSecond)
	if got := hw.lastCycle()[1]; got.value != 34 {
		t.Errorf("Expected old minute duty 34 this tick, got %d", got.value)
	}

	OnTick(hw, s)
	if got := hw.lastCycle()[1]; got.value != 33 {
		t.Errorf("Expected new minute duty 33 next tick, got %d", got.value)
	}
}

func TestClockRunsDuringCalibration(t *testing.T) {
	hw := &fakeHardware{}
	s := NewClockState()
	s.setMode(ModeCalibrateFull)

	tickN(hw, s, TicksPerSecond*60)
	if s.Time.Minute != 31 {
		t.Errorf("Expected clock to keep running, got %s", s.Time)
	}
	if s.Outputs() != ComputeForCalibration(CalibrateFullScale) {
		t.Errorf("Expected calibration outputs to hold, got %+v", s.Outputs())
	}
}

func TestButtonsSampledInOrder(t *testing.T) {
	hw := &fakeHardware{pressed: [2]bool{true, true}}
	s := NewClockState()

	tickN(hw, s, DebounceWait)

	events := s.Trace.Events()
	if len(events) < 2 {
		t.Fatalf("Expected at least 2 trace events, got %d", len(events))
	}
	if events[0].EventType != EvtButton || Button(events[0].Value1) != ButtonS1 {
		t.Errorf("Expected S1 first, got %+v", events[0])
	}
	if events[1].EventType != EvtButton || Button(events[1].Value1) != ButtonS2 {
		t.Errorf("Expected S2 second, got %+v", events[1])
	}
}

func TestSnapshot(t *testing.T) {
	hw := &fakeHardware{pressed: [2]bool{true, false}}
	s := NewClockState()
	tickN(hw, s, 3)

	snap := s.Snapshot()
	if snap.Time != s.Time || snap.Mode != ModeShowTime || snap.Outputs != s.Outputs() {
		t.Errorf("Snapshot mismatch: %+v", snap)
	}
	if snap.S1 != ButtonDebouncing || snap.S2 != ButtonInactive {
		t.Errorf("Expected S1 debouncing and S2 inactive, got %s/%s", snap.S1, snap.S2)
	}
	if snap.Ticks != 3 {
		t.Errorf("Expected 3 ticks, got %d", snap.Ticks)
	}
}

func TestSetTimeWraps(t *testing.T) {
	s := NewClockState()
	s.SetTime(TimeOfDay{Hour: 13, Minute: 61, Second: 60})

	if s.Time != (TimeOfDay{Hour: 1, Minute: 1, Second: 0}) {
		t.Errorf("Expected 01:01:00, got %s", s.Time)
	}
	if s.Outputs() != ComputeForTime(s.Time) {
		t.Errorf("Expected outputs for new time, got %+v", s.Outputs())
	}
}
