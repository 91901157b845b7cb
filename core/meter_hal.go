package core

// MeterChannel identifies one of the two compare outputs.
type MeterChannel uint8

const (
	HourChannel   MeterChannel = 0 // CCR0 on the reference board
	MinuteChannel MeterChannel = 1 // CCR1
)

// MeterHardware is the abstract PWM interface that the tick scheduler uses.
// Platform-specific implementations handle actual hardware control.
//
// Every tick the scheduler forces both outputs off and then arms each channel
// to switch on a number of counter ticks into the new cycle. Implementations
// must do constant work per call; the time between the tick interrupt and the
// last SetCompare decides where the next cycle's edge lands.
type MeterHardware interface {
	// ForceOutputsLow drives both meter outputs to the off level and
	// restarts the cycle counter.
	ForceOutputsLow()

	// SetCompare arms a channel to switch on after offTicks counter ticks.
	// offTicks >= CycleTicks leaves the output off for the whole cycle.
	SetCompare(ch MeterChannel, offTicks uint8)
}
