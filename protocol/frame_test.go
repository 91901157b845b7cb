package protocol

import (
	"testing"

	"chronulator/core"
)

func encodeStatusFrames(enc *FrameEncoder, out *ScratchOutput, statuses ...Status) []byte {
	for _, st := range statuses {
		st := st
		enc.EncodeFrame(out, func(o OutputBuffer) { EncodeStatus(o, st) })
	}
	return append([]byte(nil), out.Result()...)
}

func TestFrameLayout(t *testing.T) {
	var enc FrameEncoder
	out := NewScratchOutput()
	enc.EncodeFrame(out, func(o OutputBuffer) { o.Output([]byte{0x01, 0x02}) })

	frame := out.Result()
	if len(frame) != 7 {
		t.Fatalf("Expected 7 byte frame, got %d: %v", len(frame), frame)
	}
	if frame[MessagePositionLen] != 7 {
		t.Errorf("Expected length byte 7, got %d", frame[0])
	}
	if frame[MessagePositionSeq] != MessageDest {
		t.Errorf("Expected seq 0x10, got 0x%02X", frame[1])
	}
	if frame[6] != MessageValueSync {
		t.Errorf("Expected trailing sync, got 0x%02X", frame[6])
	}
	crc := CRC16(frame[:4])
	if frame[4] != uint8(crc>>8) || frame[5] != uint8(crc) {
		t.Errorf("CRC mismatch: frame %v, crc 0x%04X", frame, crc)
	}
}

func TestFrameSequenceWraps(t *testing.T) {
	var enc FrameEncoder
	out := NewScratchOutput()

	var seqs []uint8
	dec := NewFrameDecoder(func(seq uint8, payload []byte) { seqs = append(seqs, seq) })
	for i := 0; i < 18; i++ {
		out.Reset()
		enc.EncodeFrame(out, func(o OutputBuffer) { EncodeVLQUint(o, MsgStatus) })
		dec.Receive(NewSliceInputBuffer(out.Result()))
	}

	if len(seqs) != 18 {
		t.Fatalf("Expected 18 frames, got %d", len(seqs))
	}
	if seqs[15] != 15 || seqs[16] != 0 || seqs[17] != 1 {
		t.Errorf("Expected sequence to wrap after 15, got %v", seqs)
	}
}

func TestFrameDecoderStatusRoundTrip(t *testing.T) {
	var enc FrameEncoder
	out := NewScratchOutput()
	want := Status{
		Time:    core.TimeOfDay{Hour: 11, Minute: 59, Second: 42},
		Mode:    core.ModeShowTime,
		Outputs: core.ComputeForTime(core.TimeOfDay{Hour: 11, Minute: 59}),
		Uptime:  100000,
	}
	stream := encodeStatusFrames(&enc, out, want)

	var got []Message
	dec := NewFrameDecoder(func(seq uint8, payload []byte) {
		msg, err := DecodeMessage(payload)
		if err != nil {
			t.Fatalf("DecodeMessage: %v", err)
		}
		got = append(got, msg)
	})
	dec.Receive(NewSliceInputBuffer(stream))

	if len(got) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(got))
	}
	if got[0].ID != MsgStatus || got[0].Status != want {
		t.Errorf("Expected %+v, got %+v", want, got[0].Status)
	}
}

func TestFrameDecoderPartialFrame(t *testing.T) {
	var enc FrameEncoder
	out := NewScratchOutput()
	stream := encodeStatusFrames(&enc, out, Status{Mode: core.ModeCalibrateZero}, Status{Mode: core.ModeCalibrateFull})

	frames := 0
	dec := NewFrameDecoder(func(seq uint8, payload []byte) { frames++ })
	fifo := NewFifoBuffer(128)

	// Feed one byte at a time, as a slow serial port would
	for _, b := range stream {
		fifo.Write([]byte{b})
		dec.Receive(fifo)
	}

	if frames != 2 {
		t.Errorf("Expected 2 frames, got %d", frames)
	}
	if fifo.Available() != 0 {
		t.Errorf("Expected all input consumed, %d bytes left", fifo.Available())
	}
	if dec.Errors != 0 {
		t.Errorf("Expected no errors, got %d", dec.Errors)
	}
}

func TestFrameDecoderResync(t *testing.T) {
	var enc FrameEncoder
	out := NewScratchOutput()
	stream := encodeStatusFrames(&enc, out, Status{Uptime: 1}, Status{Uptime: 2}, Status{Uptime: 3})

	// Corrupt a payload byte of the first frame
	stream[3] ^= 0x01

	var uptimes []uint32
	dec := NewFrameDecoder(func(seq uint8, payload []byte) {
		msg, err := DecodeMessage(payload)
		if err == nil {
			uptimes = append(uptimes, msg.Status.Uptime)
		}
	})
	dec.Receive(NewSliceInputBuffer(stream))

	if len(uptimes) != 2 || uptimes[0] != 2 || uptimes[1] != 3 {
		t.Errorf("Expected frames 2 and 3 after resync, got %v", uptimes)
	}
	if dec.Errors != 1 {
		t.Errorf("Expected 1 error, got %d", dec.Errors)
	}
}

func TestFrameDecoderLeadingGarbage(t *testing.T) {
	var enc FrameEncoder
	out := NewScratchOutput()
	stream := append([]byte{0x33, 0x44, 0x55}, encodeStatusFrames(&enc, out, Status{Uptime: 9})...)

	frames := 0
	dec := NewFrameDecoder(func(seq uint8, payload []byte) { frames++ })
	dec.Receive(NewSliceInputBuffer(stream))

	// The garbage swallows the first frame up to its trailing sync byte
	if frames != 0 {
		t.Errorf("Expected the damaged frame to be dropped, got %d frames", frames)
	}

	out.Reset()
	dec.Receive(NewSliceInputBuffer(encodeStatusFrames(&enc, out, Status{Uptime: 10})))
	if frames != 1 {
		t.Errorf("Expected decoder to recover on the next frame, got %d frames", frames)
	}
}
