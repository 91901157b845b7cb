package core

// Timebase for the meter clock. The crystal clocks the PWM counter; the tick
// interrupt fires once per PWM cycle.
const (
	TimerFreq      = 32768 // 32.768kHz crystal
	CycleTicks     = 64    // PWM counter ticks per tick interrupt
	TicksPerSecond = TimerFreq / CycleTicks
)

// TickPeriodNS is the nominal tick interrupt period in nanoseconds.
// 1e9/512 is exactly 1953125.
const TickPeriodNS = 1000000000 / TicksPerSecond

// TimerToNS converts PWM counter ticks to nanoseconds. Software PWM
// implementations use this to place the compare edge inside a cycle.
func TimerToNS(ticks uint32) uint64 {
	return (uint64(ticks) * 1000000000) / TimerFreq
}
