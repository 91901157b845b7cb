package core

// Mode is what the meters are showing.
type Mode uint8

const (
	ModeShowTime Mode = iota
	ModeCalibrateZero
	ModeCalibrateFull
)

// String names the mode for logs and telemetry
func (m Mode) String() string {
	switch m {
	case ModeShowTime:
		return "show_time"
	case ModeCalibrateZero:
		return "calibrate_zero"
	case ModeCalibrateFull:
		return "calibrate_full"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the defined modes
func (m Mode) Valid() bool {
	return m <= ModeCalibrateFull
}

// HandleEvent runs the mode state machine for one debounced transition.
//
// Single presses set the time in ShowTime mode: S1 adds an hour, S2 adds a
// minute. Holding one button and pressing the other walks through
// ShowTime -> CalibrateZero -> CalibrateFull -> ShowTime. Presses are
// debounced independently, so the first button of a combo has already
// stepped the clock by the time the second one is seen; entering
// CalibrateZero from ShowTime takes that step back.
func (s *ClockState) HandleEvent(b Button, ev Event) {
	if ev != BecameActive {
		// Releases carry no meaning.
		return
	}

	otherActive := s.buttons[b.Other()].Active()

	switch s.mode {
	case ModeShowTime:
		if otherActive {
			if b == ButtonS1 {
				s.Time.SubtractMinute()
			} else {
				s.Time.SubtractHour()
			}
			s.setMode(ModeCalibrateZero)
			return
		}
		if b == ButtonS1 {
			s.Time.AddHour()
		} else {
			s.Time.AddMinute()
		}
		s.showTime()

	case ModeCalibrateZero:
		if otherActive {
			s.setMode(ModeCalibrateFull)
		}

	case ModeCalibrateFull:
		if otherActive {
			s.setMode(ModeShowTime)
		}
	}
}

// setMode switches mode and immediately recomputes the meter outputs for it.
func (s *ClockState) setMode(m Mode) {
	from := s.mode
	s.mode = m
	switch m {
	case ModeCalibrateZero:
		s.outputs = ComputeForCalibration(CalibrateZeroScale)
	case ModeCalibrateFull:
		s.outputs = ComputeForCalibration(CalibrateFullScale)
	default:
		s.showTime()
	}
	s.Trace.Record(EvtModeChange, uint8(from), uint8(m), s.uptime)
}

func (s *ClockState) showTime() {
	s.outputs = ComputeForTime(s.Time)
}
