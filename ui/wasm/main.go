//go:build js && wasm

package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"syscall/js"

	"chronulator/core"
	"chronulator/host/dial"
	"chronulator/host/sim"
	"chronulator/protocol"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("chronulatorWasm", js.ValueOf(map[string]interface{}{
		"crc16":        js.FuncOf(crc16Wrapper),
		"decodeFrames": js.FuncOf(decodeFramesWrapper),
		"encodeStatus": js.FuncOf(encodeStatusWrapper),
		"simulate":     js.FuncOf(simulateWrapper),
		"dialSVG":      js.FuncOf(dialSVGWrapper),
		"version":      protocol.Version,
	}))

	// Keep the program running
	select {}
}

// crc16Wrapper calculates CRC16 checksum
// Args: hexString (string)
// Returns: number (uint16)
func crc16Wrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(0)
	}

	data, err := hex.DecodeString(args[0].String())
	if err != nil {
		return js.ValueOf(0)
	}
	return js.ValueOf(int(protocol.CRC16(data)))
}

// decodeFramesWrapper splits a captured byte stream into messages
// Args: hexString (string)
// Returns: {messages: [...], frames: number, errors: number, error: string}
func decodeFramesWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("missing hex string argument")
	}
	data, err := hex.DecodeString(args[0].String())
	if err != nil {
		return makeError("invalid hex string: " + err.Error())
	}

	messages := []interface{}{}
	decoder := protocol.NewFrameDecoder(func(seq uint8, payload []byte) {
		msg, err := protocol.DecodeMessage(payload)
		if err != nil {
			messages = append(messages, map[string]interface{}{
				"sequence": int(seq),
				"error":    err.Error(),
			})
			return
		}
		messages = append(messages, messageObject(seq, msg))
	})
	decoder.Receive(protocol.NewSliceInputBuffer(data))

	return js.ValueOf(map[string]interface{}{
		"messages": messages,
		"frames":   int(decoder.Frames),
		"errors":   int(decoder.Errors),
	})
}

// encodeStatusWrapper frames a status report
// Args: hour, minute, second, mode, uptime (numbers)
// Returns: hex string
func encodeStatusWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 5 {
		return js.ValueOf("error: missing arguments")
	}

	t := core.TimeOfDay{
		Hour:   uint8(args[0].Int() % core.HoursPerFace),
		Minute: uint8(args[1].Int() % core.MinutesPerHour),
		Second: uint8(args[2].Int() % core.SecondsPerMinute),
	}
	mode := core.Mode(args[3].Int())
	if !mode.Valid() {
		return js.ValueOf("error: bad mode")
	}

	st := protocol.Status{Time: t, Mode: mode, Uptime: uint32(args[4].Int())}
	switch mode {
	case core.ModeCalibrateZero:
		st.Outputs = core.ComputeForCalibration(core.CalibrateZeroScale)
	case core.ModeCalibrateFull:
		st.Outputs = core.ComputeForCalibration(core.CalibrateFullScale)
	default:
		st.Outputs = core.ComputeForTime(t)
	}

	output := protocol.NewScratchOutput()
	var enc protocol.FrameEncoder
	enc.EncodeFrame(output, func(out protocol.OutputBuffer) {
		protocol.EncodeStatus(out, st)
	})
	return js.ValueOf(hex.EncodeToString(output.Result()))
}

// simulateWrapper runs the clock logic for a number of seconds
// Args: seconds (number), presses (string, "s1:3,s2:5:0.5")
// Returns: {seconds: [{time, mode, hourDuty, minuteDuty}], error: string}
func simulateWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("missing seconds argument")
	}

	var presses []string
	if len(args) > 1 && args[1].String() != "" {
		presses = strings.Split(args[1].String(), ",")
	}
	script, err := sim.ParseScript(presses)
	if err != nil {
		return makeError(err.Error())
	}

	seconds := []interface{}{}
	s := sim.New(script)
	s.RunSeconds(uint32(args[0].Int()), func(snap core.Snapshot) {
		seconds = append(seconds, map[string]interface{}{
			"uptime":     int(snap.Uptime),
			"time":       snap.Time.String(),
			"mode":       snap.Mode.String(),
			"hourDuty":   int(snap.Outputs.HourDuty),
			"minuteDuty": int(snap.Outputs.MinuteDuty),
		})
	})

	return js.ValueOf(map[string]interface{}{"seconds": seconds})
}

// dialSVGWrapper draws the meter faces
// Args: hourDuty, minuteDuty (numbers, off-time in PWM ticks)
// Returns: SVG document string
func dialSVGWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}

	var b bytes.Buffer
	out := core.MeterOutputs{HourDuty: uint8(args[0].Int()), MinuteDuty: uint8(args[1].Int())}
	if err := dial.SVG(&b, out); err != nil {
		return js.ValueOf("")
	}
	return js.ValueOf(b.String())
}

func messageObject(seq uint8, msg protocol.Message) map[string]interface{} {
	result := map[string]interface{}{
		"sequence": int(seq),
		"id":       int(msg.ID),
	}
	switch msg.ID {
	case protocol.MsgIdentify:
		result["version"] = msg.Version
	case protocol.MsgStatus:
		st := msg.Status
		result["time"] = st.Time.String()
		result["mode"] = st.Mode.String()
		result["hourDuty"] = int(st.Outputs.HourDuty)
		result["minuteDuty"] = int(st.Outputs.MinuteDuty)
		result["uptime"] = int(st.Uptime)
	}
	return result
}

func makeError(errMsg string) js.Value {
	return js.ValueOf(map[string]interface{}{"error": errMsg})
}
