//go:build rp2040

package main

import (
	"machine"

	"chronulator/core"
)

// switches reads the two front panel push buttons. They short the pin to
// ground, so a low level means pressed.
type switches struct {
	pins [2]machine.Pin
}

func newSwitches(s1, s2 machine.Pin) *switches {
	sw := &switches{}
	sw.pins[core.ButtonS1] = s1
	sw.pins[core.ButtonS2] = s2
	for _, p := range sw.pins {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	return sw
}

func (sw *switches) Pressed(b core.Button) bool {
	return !sw.pins[b].Get()
}

// board combines the meter outputs and switches into core.Hardware
type board struct {
	*meterPWM
	*switches
}
