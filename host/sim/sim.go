package sim

import (
	"chronulator/core"
)

// Simulator steps the tick handler against simulated hardware
type Simulator struct {
	HW     *Hardware
	State  *core.ClockState
	Script Script

	tick uint32
}

// New creates a simulator at the power-up state
func New(script Script) *Simulator {
	return &Simulator{
		HW:     NewHardware(),
		State:  core.NewClockState(),
		Script: script,
	}
}

// Step runs one tick: apply the scripted switch levels, then call the
// handler the way the timer interrupt would
func (s *Simulator) Step() {
	s.HW.SetPressed(core.ButtonS1, s.Script.Pressed(core.ButtonS1, s.tick))
	s.HW.SetPressed(core.ButtonS2, s.Script.Pressed(core.ButtonS2, s.tick))
	core.OnTick(s.HW, s.State)
	s.tick++
}

// Run steps n ticks. onSecond, if set, is called after each tick that
// completed a second of uptime.
func (s *Simulator) Run(n uint32, onSecond func(core.Snapshot)) {
	for i := uint32(0); i < n; i++ {
		before := s.State.Uptime()
		s.Step()
		if onSecond != nil && s.State.Uptime() != before {
			onSecond(s.State.Snapshot())
		}
	}
}

// RunSeconds steps whole seconds of simulated time
func (s *Simulator) RunSeconds(seconds uint32, onSecond func(core.Snapshot)) {
	s.Run(seconds*core.TicksPerSecond, onSecond)
}

// Tick returns the number of ticks run so far
func (s *Simulator) Tick() uint32 {
	return s.tick
}
