package core

// DebounceWait is the number of consecutive closed samples (one per tick)
// before a press is accepted. At 512 ticks per second that is about 31ms.
const DebounceWait = 16

// ButtonState is the debouncer's view of a switch.
type ButtonState uint8

const (
	ButtonInactive ButtonState = iota
	ButtonDebouncing
	ButtonActive
)

// String names the state for logs
func (s ButtonState) String() string {
	switch s {
	case ButtonInactive:
		return "inactive"
	case ButtonDebouncing:
		return "debouncing"
	case ButtonActive:
		return "active"
	default:
		return "unknown"
	}
}

// Event is a debounced switch transition.
type Event uint8

const (
	BecameActive Event = iota + 1
	BecameInactive
)

// String names the event for logs
func (e Event) String() string {
	switch e {
	case BecameActive:
		return "pressed"
	case BecameInactive:
		return "released"
	default:
		return "none"
	}
}

// Debouncer filters one switch line sampled once per tick.
//
// Presses must be held for DebounceWait samples to count. Releases are taken
// on the first open sample: a bouncing release can only produce extra
// release events, and releases change no state, so they are not filtered.
type Debouncer struct {
	count  uint8
	active bool
}

// Sample feeds one raw reading. ok is false when the reading caused no
// transition.
func (d *Debouncer) Sample(pressed bool) (ev Event, ok bool) {
	if d.active {
		if !pressed {
			d.active = false
			return BecameInactive, true
		}
		return 0, false
	}

	if !pressed {
		d.count = 0
		return 0, false
	}

	d.count++
	if d.count == DebounceWait {
		// Cleared so every press needs DebounceWait fresh samples, even one
		// right after a release
		d.count = 0
		d.active = true
		return BecameActive, true
	}
	return 0, false
}

// Active reports whether the switch is currently considered pressed.
func (d *Debouncer) Active() bool {
	return d.active
}

// Count returns the number of consecutive closed samples seen while waiting
// for a press to be accepted.
func (d *Debouncer) Count() uint8 {
	return d.count
}

// State reports the debouncer state.
func (d *Debouncer) State() ButtonState {
	switch {
	case d.active:
		return ButtonActive
	case d.count > 0:
		return ButtonDebouncing
	default:
		return ButtonInactive
	}
}
