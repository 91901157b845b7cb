//go:build rp2040

package main

import (
	"machine"
	"time"

	"chronulator/core"
)

// Board wiring
const (
	hourMeterPin   = machine.GPIO16 // PWM0 A
	minuteMeterPin = machine.GPIO17 // PWM0 B
	s1Pin          = machine.GPIO14
	s2Pin          = machine.GPIO15
	debugTXPin     = machine.GPIO0
	debugRXPin     = machine.GPIO1
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	InitUSB()
	InitDebugUART()
	core.SetDebugWriter(DebugPrintln)
	core.SetDebugEnabled(debugEnabled)
	core.InitAsyncDebug()

	meters, err := newMeterPWM(machine.PWM0, hourMeterPin, minuteMeterPin)
	if err != nil {
		blinkForever()
	}
	hw := board{meterPWM: meters, switches: newSwitches(s1Pin, s2Pin)}

	state := core.NewClockState()
	tel := newTelemetry()
	go tel.run()

	core.DebugPrintln("[CLOCK] start " + state.Time.String())

	clock := newTickClock()
	lastUptime := state.Uptime()
	lastMode := state.Mode()
	for {
		clock.wait()
		core.OnTick(hw, state)

		// Once a second, after the tick so reporting never delays the outputs
		if state.Uptime() != lastUptime {
			lastUptime = state.Uptime()
			tel.post(statusReport(state))
		}

		if mode := state.Mode(); mode != lastMode {
			core.DebugAsync("[CLOCK] mode " + mode.String() + " at " + state.Time.String())
			// Returning to ShowTime ends a calibration cycle; dump what led there
			if mode == core.ModeShowTime && core.IsDebugEnabled() {
				ring := state.Trace
				tel.post(report{trace: &ring})
			}
			lastMode = mode
		}
	}
}

// blinkForever signals a fatal setup error on the LED
func blinkForever() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}
}
