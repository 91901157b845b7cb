// Package gpiohw drives the meters and reads the switches through GPIO lines.
// The meter outputs are pulsed in software: every tick both lines go low and
// a timer raises each one again after its off-time.
package gpiohw

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"chronulator/core"
)

// OutputLine is a GPIO line that can be driven
type OutputLine interface {
	SetValue(value int) error
}

// InputLine is a GPIO line that can be read. Lines are requested active-low,
// so 1 means the switch is closed.
type InputLine interface {
	Value() (int, error)
}

// Hardware implements core.Hardware on GPIO lines
type Hardware struct {
	mu      sync.Mutex
	meters  [2]OutputLine
	buttons [2]InputLine

	// gen is bumped by each ForceOutputsLow; a timer armed in an earlier
	// cycle finds it changed and leaves its line alone
	gen    uint32
	timers [2]*time.Timer
	after  func(d time.Duration, fn func()) *time.Timer

	errors uint32
	closer func() error
}

// New builds the hardware from already requested lines. closer, if not nil,
// releases them.
func New(hour, minute OutputLine, s1, s2 InputLine, closer func() error) *Hardware {
	h := &Hardware{after: time.AfterFunc, closer: closer}
	h.meters[core.HourChannel] = hour
	h.meters[core.MinuteChannel] = minute
	h.buttons[core.ButtonS1] = s1
	h.buttons[core.ButtonS2] = s2
	return h
}

// ForceOutputsLow starts a new cycle with both meters off
func (h *Hardware) ForceOutputsLow() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.gen++
	for ch := range h.timers {
		if h.timers[ch] != nil {
			h.timers[ch].Stop()
			h.timers[ch] = nil
		}
		h.set(core.MeterChannel(ch), 0)
	}
}

// SetCompare raises the meter line after offTicks PWM ticks. An off-time of a
// whole cycle or more leaves it low.
func (h *Hardware) SetCompare(ch core.MeterChannel, offTicks uint8) {
	if offTicks >= core.CycleTicks {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if offTicks == 0 {
		h.set(ch, 1)
		return
	}
	gen := h.gen
	h.timers[ch] = h.after(time.Duration(core.TimerToNS(uint32(offTicks))), func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.gen == gen {
			h.set(ch, 1)
		}
	})
}

// Pressed reads a switch; a read error counts as released
func (h *Hardware) Pressed(b core.Button) bool {
	v, err := h.buttons[b].Value()
	if err != nil {
		h.mu.Lock()
		h.fail(err, "failed to read switch")
		h.mu.Unlock()
		return false
	}
	return v == 1
}

// Errors returns how many line operations have failed
func (h *Hardware) Errors() uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errors
}

// Close stops pending pulses, drives the meters low and releases the lines
func (h *Hardware) Close() error {
	h.ForceOutputsLow()
	if h.closer == nil {
		return nil
	}
	return h.closer()
}

// set must be called with mu held
func (h *Hardware) set(ch core.MeterChannel, value int) {
	if err := h.meters[ch].SetValue(value); err != nil {
		h.fail(err, "failed to drive meter")
	}
}

// fail must be called with mu held. Only the first failure is logged, the
// tick rate would flood the log otherwise.
func (h *Hardware) fail(err error, msg string) {
	h.errors++
	if h.errors == 1 {
		logrus.WithError(err).Error(msg)
	}
}
