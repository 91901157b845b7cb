package core

// Meter positions are expressed as PWM off-time in counter ticks. The tick
// interrupt forces both outputs low and the compare unit turns them back on
// after the off-time, so a smaller value means a longer on-time and a larger
// needle deflection.

// HourStep is the number of counter ticks between adjacent hour marks.
const HourStep = 5

// FullScale is the on-time that drives a meter to its top mark.
const FullScale = 60

// MeterOutputs holds the off-time for each meter, in [0, CycleTicks].
type MeterOutputs struct {
	HourDuty   uint8
	MinuteDuty uint8
}

// CalibrationTarget selects which end of the scale a calibration mode drives.
type CalibrationTarget uint8

const (
	CalibrateZeroScale CalibrationTarget = iota
	CalibrateFullScale
)

// ComputeForTime maps the clock onto the meters: 60 minute marks and 12 hour
// marks spaced HourStep apart.
func ComputeForTime(t TimeOfDay) MeterOutputs {
	return MeterOutputs{
		HourDuty:   CycleTicks - t.Hour*HourStep,
		MinuteDuty: CycleTicks - t.Minute,
	}
}

// ComputeForCalibration drives both meters to the same end of the scale so
// the trim pots can be adjusted by hand.
func ComputeForCalibration(target CalibrationTarget) MeterOutputs {
	if target == CalibrateFullScale {
		return MeterOutputs{HourDuty: CycleTicks - FullScale, MinuteDuty: CycleTicks - FullScale}
	}
	return MeterOutputs{HourDuty: CycleTicks, MinuteDuty: CycleTicks}
}

// OnTicks returns the on-time for a meter channel, the complement of its duty.
func (o MeterOutputs) OnTicks(ch MeterChannel) uint8 {
	if ch == HourChannel {
		return CycleTicks - o.HourDuty
	}
	return CycleTicks - o.MinuteDuty
}
