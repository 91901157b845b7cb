package protocol

import (
	"testing"

	"chronulator/core"
)

func TestIdentifyMessage(t *testing.T) {
	out := NewScratchOutput()
	EncodeIdentify(out, Version)

	msg, err := DecodeMessage(out.Result())
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	if msg.ID != MsgIdentify || msg.Version != Version {
		t.Errorf("Expected identify %q, got %+v", Version, msg)
	}
}

func TestStatusFromSnapshot(t *testing.T) {
	s := core.NewClockState()
	st := StatusFromSnapshot(s.Snapshot())

	if st.Time != core.DefaultTimeOfDay() || st.Mode != core.ModeShowTime {
		t.Errorf("unexpected status %+v", st)
	}
	if st.Outputs != core.ComputeForTime(st.Time) {
		t.Errorf("unexpected outputs %+v", st.Outputs)
	}
}

func TestDecodeStatusRejectsBadFields(t *testing.T) {
	testCases := []struct {
		name   string
		fields []uint32
	}{
		{"hour", []uint32{12, 0, 0, 0, 64, 64, 0}},
		{"minute", []uint32{0, 60, 0, 0, 64, 64, 0}},
		{"mode", []uint32{0, 0, 0, 3, 64, 64, 0}},
		{"duty", []uint32{0, 0, 0, 0, 65, 64, 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := NewScratchOutput()
			EncodeVLQUint(out, MsgStatus)
			for _, f := range tc.fields {
				EncodeVLQUint(out, f)
			}
			if _, err := DecodeMessage(out.Result()); err != ErrFieldRange {
				t.Errorf("Expected ErrFieldRange, got %v", err)
			}
		})
	}
}

func TestDecodeTruncatedStatus(t *testing.T) {
	out := NewScratchOutput()
	EncodeVLQUint(out, MsgStatus)
	EncodeVLQUint(out, 6)

	if _, err := DecodeMessage(out.Result()); err != ErrBufferTooSmall {
		t.Errorf("Expected ErrBufferTooSmall, got %v", err)
	}
}

func TestDecodeUnknownMessage(t *testing.T) {
	out := NewScratchOutput()
	EncodeVLQUint(out, 42)

	if _, err := DecodeMessage(out.Result()); err != ErrUnknownMessage {
		t.Errorf("Expected ErrUnknownMessage, got %v", err)
	}
}
