//go:build rp2040

package main

import (
	"machine"
)

// InitUSB initializes USB serial communication
// machine.Serial is USB CDC on the RP2040; TinyGo's runtime sets up the
// descriptors
func InitUSB() {
	err := machine.Serial.Configure(machine.UARTConfig{})
	if err != nil {
		return
	}
}

// USBWriteBytes writes multiple bytes to USB
func USBWriteBytes(data []byte) (int, error) {
	return machine.Serial.Write(data)
}
