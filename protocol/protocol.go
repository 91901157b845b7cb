// Package protocol implements the telemetry link between the meter clock
// firmware and the host. Frames use the Klipper block layout:
//
//	len | seq | payload... | crc_hi | crc_lo | 0x7E
//
// and the payload is a message ID followed by VLQ encoded fields.
package protocol

// Version represents the firmware version reported at boot
const Version = "0.3.0"

// Protocol constants
const (
	MessageMax = 512 // Scratch buffer size, room for several frames

	// Message sequence masks
	MessageSeqMask = 0x0F
)

// Message IDs
const (
	MsgIdentify = 0 // version string, sent once at boot
	MsgStatus   = 1 // clock status, sent once a second
)
