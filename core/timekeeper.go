package core

// Ranges for the 12-hour clock face.
const (
	HoursPerFace     = 12
	MinutesPerHour   = 60
	SecondsPerMinute = 60
)

// Power-up time shown before the user sets the clock.
const (
	DefaultHour   = 6
	DefaultMinute = 30
	DefaultSecond = 0
)

// TimeOfDay is the software clock. There is no RTC; the value is only as good
// as the tick source and is lost on power down.
type TimeOfDay struct {
	Hour   uint8 // 0-11
	Minute uint8 // 0-59
	Second uint8 // 0-59
}

// DefaultTimeOfDay returns the power-up time, 06:30:00.
func DefaultTimeOfDay() TimeOfDay {
	return TimeOfDay{Hour: DefaultHour, Minute: DefaultMinute, Second: DefaultSecond}
}

// TickSecond advances one elapsed second, carrying into the minute.
func (t *TimeOfDay) TickSecond() {
	if t.Second < SecondsPerMinute-1 {
		t.Second++
		return
	}
	t.Second = 0
	t.TickMinute()
}

// TickMinute advances one elapsed minute, carrying into the hour.
func (t *TimeOfDay) TickMinute() {
	if t.Minute < MinutesPerHour-1 {
		t.Minute++
		return
	}
	t.Minute = 0
	t.TickHour()
}

// TickHour advances one elapsed hour, wrapping at 12.
func (t *TimeOfDay) TickHour() {
	if t.Hour < HoursPerFace-1 {
		t.Hour++
		return
	}
	t.Hour = 0
}

// AddHour is the manual hour set step.
func (t *TimeOfDay) AddHour() {
	if t.Hour < HoursPerFace-1 {
		t.Hour++
	} else {
		t.Hour = 0
	}
}

// SubtractHour undoes AddHour.
func (t *TimeOfDay) SubtractHour() {
	if t.Hour > 0 {
		t.Hour--
	} else {
		t.Hour = HoursPerFace - 1
	}
}

// AddMinute is the manual minute set step. It wraps within the hour and
// never carries, so setting minutes does not disturb the hour needle.
func (t *TimeOfDay) AddMinute() {
	if t.Minute < MinutesPerHour-1 {
		t.Minute++
	} else {
		t.Minute = 0
	}
}

// SubtractMinute undoes AddMinute.
func (t *TimeOfDay) SubtractMinute() {
	if t.Minute > 0 {
		t.Minute--
	} else {
		t.Minute = MinutesPerHour - 1
	}
}

// String formats the time as HH:MM:SS without using fmt.
func (t TimeOfDay) String() string {
	buf := [8]byte{}
	putTwoDigits(buf[0:2], t.Hour)
	buf[2] = ':'
	putTwoDigits(buf[3:5], t.Minute)
	buf[5] = ':'
	putTwoDigits(buf[6:8], t.Second)
	return string(buf[:])
}
