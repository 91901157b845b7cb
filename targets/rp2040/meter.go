//go:build rp2040

package main

import (
	"machine"

	"chronulator/core"
)

// pwmPeripheral abstracts over TinyGo's unexported *pwmGroup type
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// meterPWM drives both meters from one PWM slice. The slice period is one
// tick, so each counter wrap is one PWM cycle. The RP2040 double-buffers the
// compare level and latches it at wrap, so the level written during a tick
// shapes the following cycle.
type meterPWM struct {
	pwm      pwmPeripheral
	channels [2]uint8
	top      uint32
}

// newMeterPWM configures the hour and minute pins, which must be the A and B
// outputs of the same slice
func newMeterPWM(pwm pwmPeripheral, hourPin, minutePin machine.Pin) (*meterPWM, error) {
	err := pwm.Configure(machine.PWMConfig{
		Period: core.TickPeriodNS,
	})
	if err != nil {
		return nil, err
	}

	m := &meterPWM{pwm: pwm, top: pwm.Top()}
	if m.channels[core.HourChannel], err = pwm.Channel(hourPin); err != nil {
		return nil, err
	}
	if m.channels[core.MinuteChannel], err = pwm.Channel(minutePin); err != nil {
		return nil, err
	}
	m.ForceOutputsLow()
	return m, nil
}

// ForceOutputsLow drops both compare levels to zero
func (m *meterPWM) ForceOutputsLow() {
	m.pwm.Set(m.channels[core.HourChannel], 0)
	m.pwm.Set(m.channels[core.MinuteChannel], 0)
}

// SetCompare converts an off-time into the slice's on-level. The slice
// counts up from zero with the output high below the level, so the pulse is
// the cycle's on-time shifted to its start; the meter only sees the average.
func (m *meterPWM) SetCompare(ch core.MeterChannel, offTicks uint8) {
	if offTicks >= core.CycleTicks {
		m.pwm.Set(m.channels[ch], 0)
		return
	}
	on := uint32(core.CycleTicks - offTicks)
	m.pwm.Set(m.channels[ch], on*m.top/core.CycleTicks)
}
