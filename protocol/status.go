package protocol

import (
	"errors"

	"chronulator/core"
)

var (
	ErrUnknownMessage = errors.New("unknown message id")
	ErrFieldRange     = errors.New("status field out of range")
)

// Status is the once-a-second report of the clock state
type Status struct {
	Time    core.TimeOfDay
	Mode    core.Mode
	Outputs core.MeterOutputs
	Uptime  uint32 // seconds since reset
}

// StatusFromSnapshot builds a report from the tick context's state
func StatusFromSnapshot(snap core.Snapshot) Status {
	return Status{
		Time:    snap.Time,
		Mode:    snap.Mode,
		Outputs: snap.Outputs,
		Uptime:  snap.Uptime,
	}
}

// EncodeStatus writes a status payload
// Format: status hour=%c minute=%c second=%c mode=%c hour_duty=%c minute_duty=%c uptime=%u
func EncodeStatus(output OutputBuffer, st Status) {
	EncodeVLQUint(output, MsgStatus)
	EncodeVLQUint(output, uint32(st.Time.Hour))
	EncodeVLQUint(output, uint32(st.Time.Minute))
	EncodeVLQUint(output, uint32(st.Time.Second))
	EncodeVLQUint(output, uint32(st.Mode))
	EncodeVLQUint(output, uint32(st.Outputs.HourDuty))
	EncodeVLQUint(output, uint32(st.Outputs.MinuteDuty))
	EncodeVLQUint(output, st.Uptime)
}

// EncodeIdentify writes an identify payload
// Format: identify version=%s
func EncodeIdentify(output OutputBuffer, version string) {
	EncodeVLQUint(output, MsgIdentify)
	EncodeVLQString(output, version)
}

// Message is a decoded payload. Only the field matching ID is set.
type Message struct {
	ID      uint32
	Version string
	Status  Status
}

// DecodeMessage parses one frame payload
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message

	id, err := DecodeVLQUint(&payload)
	if err != nil {
		return msg, err
	}
	msg.ID = id

	switch id {
	case MsgIdentify:
		msg.Version, err = DecodeVLQString(&payload)
		return msg, err

	case MsgStatus:
		var fields [6]uint32
		for i := range fields {
			if fields[i], err = DecodeVLQUint(&payload); err != nil {
				return msg, err
			}
		}
		uptime, err := DecodeVLQUint(&payload)
		if err != nil {
			return msg, err
		}

		hour, minute, second, mode, hourDuty, minuteDuty := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]
		if hour >= core.HoursPerFace || minute >= core.MinutesPerHour || second >= core.SecondsPerMinute ||
			mode > uint32(core.ModeCalibrateFull) || hourDuty > core.CycleTicks || minuteDuty > core.CycleTicks {
			return msg, ErrFieldRange
		}

		msg.Status = Status{
			Time:    core.TimeOfDay{Hour: uint8(hour), Minute: uint8(minute), Second: uint8(second)},
			Mode:    core.Mode(mode),
			Outputs: core.MeterOutputs{HourDuty: uint8(hourDuty), MinuteDuty: uint8(minuteDuty)},
			Uptime:  uptime,
		}
		return msg, nil

	default:
		return msg, ErrUnknownMessage
	}
}
