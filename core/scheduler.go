package core

// OnTick is the tick interrupt handler. The caller invokes it once per PWM
// cycle (TicksPerSecond times a second) from a single context.
//
// The handler runs in the meters' off-time. It first reprograms the compare
// outputs from the decision made on an earlier tick, which must take the same
// number of cycles every time or the needles jitter, and only then does the
// variable-length housekeeping that may change the outputs for the next tick.
func OnTick(hw Hardware, s *ClockState) {
	HardwarePhase(hw, s.outputs)
	LogicPhase(hw, s)
}

// HardwarePhase forces both meters off and arms them to switch on after their
// off-time. It is a pure function of out: same outputs, same register writes.
func HardwarePhase(hw MeterHardware, out MeterOutputs) {
	hw.ForceOutputsLow()
	hw.SetCompare(MinuteChannel, out.MinuteDuty)
	hw.SetCompare(HourChannel, out.HourDuty)
}

// LogicPhase advances the clock and samples the buttons. Any output change it
// makes takes effect at the next HardwarePhase.
func LogicPhase(in ButtonInputs, s *ClockState) {
	s.ticks++

	s.divider--
	if s.divider == 0 {
		s.divider = TicksPerSecond
		s.uptime++
		s.Time.TickSecond()
		if s.mode == ModeShowTime {
			s.showTime()
		}
	}

	s.sample(in, ButtonS1)
	s.sample(in, ButtonS2)
}

// sample debounces one switch and dispatches its transition, if any, before
// the next switch is read.
func (s *ClockState) sample(in ButtonInputs, b Button) {
	ev, ok := s.buttons[b].Sample(in.Pressed(b))
	if !ok {
		return
	}
	s.Trace.Record(EvtButton, uint8(b), uint8(ev), s.uptime)
	s.HandleEvent(b, ev)
}
