// Package sim runs the clock firmware logic against simulated meters and
// buttons, one tick at a time, without real time passing.
package sim

import "chronulator/core"

// Meter models a needle meter driven by the PWM output: its position is the
// on-time of the last programmed cycle, 0 to core.CycleTicks.
type Meter struct {
	off   uint8
	armed bool
}

// Position returns the needle deflection in PWM ticks
func (m Meter) Position() uint8 {
	if !m.armed || m.off >= core.CycleTicks {
		return 0
	}
	return core.CycleTicks - m.off
}

// Hardware implements core.Hardware in memory
type Hardware struct {
	meters  [2]Meter
	pressed [2]bool

	// Cycles counts ForceOutputsLow calls
	Cycles uint32
}

// NewHardware returns hardware with both meters at rest and no buttons held
func NewHardware() *Hardware {
	return &Hardware{}
}

// ForceOutputsLow starts a new PWM cycle with both outputs off
func (h *Hardware) ForceOutputsLow() {
	h.Cycles++
	h.meters[core.HourChannel].armed = false
	h.meters[core.MinuteChannel].armed = false
}

// SetCompare arms a meter for the current cycle
func (h *Hardware) SetCompare(ch core.MeterChannel, offTicks uint8) {
	h.meters[ch] = Meter{off: offTicks, armed: true}
}

// Pressed reports the simulated switch level
func (h *Hardware) Pressed(b core.Button) bool {
	return h.pressed[b]
}

// SetPressed holds or releases a simulated switch
func (h *Hardware) SetPressed(b core.Button, pressed bool) {
	h.pressed[b] = pressed
}

// Meter returns the simulated meter on a channel
func (h *Hardware) Meter(ch core.MeterChannel) Meter {
	return h.meters[ch]
}

// ReadClock converts the needle positions back to the hour and minute they
// show, the way a person reads the dial
func (h *Hardware) ReadClock() (hour, minute uint8) {
	return h.meters[core.HourChannel].Position() / core.HourStep, h.meters[core.MinuteChannel].Position()
}
