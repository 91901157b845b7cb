package core

// Button identifies one of the two front panel switches.
type Button uint8

const (
	ButtonS1 Button = 0 // hour set
	ButtonS2 Button = 1 // minute set
)

// String returns the silkscreen name of the button
func (b Button) String() string {
	if b == ButtonS1 {
		return "S1"
	}
	return "S2"
}

// Other returns the opposite button of the pair
func (b Button) Other() Button {
	if b == ButtonS1 {
		return ButtonS2
	}
	return ButtonS1
}

// ButtonInputs is the abstract input interface that the tick scheduler samples.
// The switches are wired active-low with pull-ups; implementations hide the
// polarity and report true while the switch is closed.
type ButtonInputs interface {
	// Pressed reads the raw, undebounced switch level
	Pressed(b Button) bool
}

// Hardware is everything OnTick touches.
type Hardware interface {
	MeterHardware
	ButtonInputs
}
