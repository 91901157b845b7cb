package protocol

import (
	"bytes"
	"testing"
)

func TestVLQKnownEncodings(t *testing.T) {
	testCases := []struct {
		value    int32
		expected []byte
	}{
		{0, []byte{0x00}},
		{-1, []byte{0x7F}},
		{95, []byte{0x5F}},
		{96, []byte{0x80, 0x60}},
		{128, []byte{0x81, 0x00}},
	}

	for _, tc := range testCases {
		output := NewScratchOutput()
		EncodeVLQInt(output, tc.value)
		if !bytes.Equal(output.Result(), tc.expected) {
			t.Errorf("EncodeVLQInt(%d): expected %v, got %v", tc.value, tc.expected, output.Result())
		}

		data := output.Result()
		decoded, err := DecodeVLQInt(&data)
		if err != nil {
			t.Errorf("DecodeVLQInt(%v): %v", tc.expected, err)
			continue
		}
		if decoded != tc.value {
			t.Errorf("DecodeVLQInt(%v): expected %d, got %d", tc.expected, tc.value, decoded)
		}
		if len(data) != 0 {
			t.Errorf("DecodeVLQInt(%v): %d bytes left over", tc.expected, len(data))
		}
	}
}

func TestVLQUptime(t *testing.T) {
	// Roughly 136 years of seconds, the full uint32 range
	for _, v := range []uint32{0, 59, 86400, 1 << 31, 0xFFFFFFFF} {
		output := NewScratchOutput()
		EncodeVLQUint(output, v)

		data := output.Result()
		decoded, err := DecodeVLQUint(&data)
		if err != nil {
			t.Fatalf("Failed to decode %d: %v", v, err)
		}
		if decoded != v {
			t.Errorf("Expected %d, got %d", v, decoded)
		}
	}
}

func TestVLQString(t *testing.T) {
	output := NewScratchOutput()
	EncodeVLQString(output, Version)
	EncodeVLQUint(output, 7)

	data := output.Result()
	decoded, err := DecodeVLQString(&data)
	if err != nil {
		t.Fatalf("Failed to decode string: %v", err)
	}
	if decoded != Version {
		t.Errorf("Expected %q, got %q", Version, decoded)
	}

	next, err := DecodeVLQUint(&data)
	if err != nil || next != 7 {
		t.Errorf("Expected trailing 7, got %d (%v)", next, err)
	}
}

func TestVLQBufferTooSmall(t *testing.T) {
	// Continuation byte but no following byte
	data := []byte{0x80}
	if _, err := DecodeVLQInt(&data); err != ErrBufferTooSmall {
		t.Errorf("Expected ErrBufferTooSmall, got %v", err)
	}

	// String length longer than the data
	data = []byte{0x05, 'a', 'b'}
	if _, err := DecodeVLQString(&data); err != ErrBufferTooSmall {
		t.Errorf("Expected ErrBufferTooSmall, got %v", err)
	}
}
