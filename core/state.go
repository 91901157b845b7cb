package core

// ClockState is all mutable state of the meter clock. It is owned by the tick
// context; anything else reads it through Snapshot.
type ClockState struct {
	Time TimeOfDay

	mode    Mode
	outputs MeterOutputs
	buttons [2]Debouncer

	divider uint16 // ticks left until the next second boundary
	ticks   uint32 // tick interrupts since reset, wraps
	uptime  uint32 // seconds since reset

	// Trace records button and mode transitions for post-mortem dumps.
	Trace EventRing
}

// NewClockState returns the power-up state: 06:30:00 in ShowTime mode with
// the meters already positioned for that time.
func NewClockState() *ClockState {
	s := &ClockState{}
	s.Reset()
	return s
}

// Reset returns the clock to its power-up state.
func (s *ClockState) Reset() {
	*s = ClockState{
		Time:    DefaultTimeOfDay(),
		mode:    ModeShowTime,
		divider: TicksPerSecond,
	}
	s.showTime()
}

// Mode returns the current display mode
func (s *ClockState) Mode() Mode {
	return s.mode
}

// Outputs returns the meter off-times the next hardware phase will program
func (s *ClockState) Outputs() MeterOutputs {
	return s.outputs
}

// ButtonState returns the debounced state of a switch
func (s *ClockState) ButtonState(b Button) ButtonState {
	return s.buttons[b].State()
}

// Uptime returns whole seconds since reset
func (s *ClockState) Uptime() uint32 {
	return s.uptime
}

// Ticks returns tick interrupts since reset
func (s *ClockState) Ticks() uint32 {
	return s.ticks
}

// SetTime replaces the clock value and, in ShowTime mode, moves the needles.
// Out of range fields are wrapped onto the clock face.
func (s *ClockState) SetTime(t TimeOfDay) {
	s.Time = TimeOfDay{
		Hour:   t.Hour % HoursPerFace,
		Minute: t.Minute % MinutesPerHour,
		Second: t.Second % SecondsPerMinute,
	}
	if s.mode == ModeShowTime {
		s.showTime()
	}
}

// Snapshot is a copy of the clock state for readers outside the tick context.
type Snapshot struct {
	Time    TimeOfDay
	Mode    Mode
	Outputs MeterOutputs
	S1      ButtonState
	S2      ButtonState
	Uptime  uint32
	Ticks   uint32
}

// Snapshot copies the observable state. On TinyGo the copy is taken with
// interrupts disabled so a tick cannot land halfway through it.
func (s *ClockState) Snapshot() Snapshot {
	state := disableInterrupts()
	snap := Snapshot{
		Time:    s.Time,
		Mode:    s.mode,
		Outputs: s.outputs,
		S1:      s.buttons[ButtonS1].State(),
		S2:      s.buttons[ButtonS2].State(),
		Uptime:  s.uptime,
		Ticks:   s.ticks,
	}
	restoreInterrupts(state)
	return snap
}
