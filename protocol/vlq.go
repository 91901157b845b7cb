package protocol

import "errors"

var (
	ErrBufferTooSmall = errors.New("buffer too small for VLQ")
)

// EncodeVLQInt encodes a signed integer in Klipper's VLQ format: 7 bits per
// byte, most significant group first, continuation flagged by bit 7. Values
// in [-32, 96) fit in a single byte.
func EncodeVLQInt(output OutputBuffer, v int32) {
	var buf [5]byte
	n := 0
	if !(-(1<<26) <= v && v < (3<<26)) {
		buf[n] = byte((v>>28)&0x7F) | 0x80
		n++
	}
	if !(-(1<<19) <= v && v < (3<<19)) {
		buf[n] = byte((v>>21)&0x7F) | 0x80
		n++
	}
	if !(-(1<<12) <= v && v < (3<<12)) {
		buf[n] = byte((v>>14)&0x7F) | 0x80
		n++
	}
	if !(-(1<<5) <= v && v < (3<<5)) {
		buf[n] = byte((v>>7)&0x7F) | 0x80
		n++
	}
	buf[n] = byte(v & 0x7F)
	output.Output(buf[:n+1])
}

// EncodeVLQUint encodes an unsigned integer to VLQ format
func EncodeVLQUint(output OutputBuffer, v uint32) {
	EncodeVLQInt(output, int32(v))
}

// DecodeVLQInt decodes a VLQ signed integer and advances data past it
func DecodeVLQInt(data *[]byte) (int32, error) {
	if len(*data) == 0 {
		return 0, ErrBufferTooSmall
	}

	c := uint32((*data)[0])
	*data = (*data)[1:]

	v := c & 0x7F
	if (c & 0x60) == 0x60 {
		// Leading group is negative, sign extend
		v |= ^uint32(0x1F)
	}

	for c&0x80 != 0 {
		if len(*data) == 0 {
			return 0, ErrBufferTooSmall
		}
		c = uint32((*data)[0])
		*data = (*data)[1:]
		v = (v << 7) | (c & 0x7F)
	}

	return int32(v), nil
}

// DecodeVLQUint decodes a VLQ unsigned integer from the data slice
func DecodeVLQUint(data *[]byte) (uint32, error) {
	val, err := DecodeVLQInt(data)
	return uint32(val), err
}

// EncodeVLQString encodes a string with length prefix
func EncodeVLQString(output OutputBuffer, s string) {
	EncodeVLQUint(output, uint32(len(s)))
	output.Output([]byte(s))
}

// DecodeVLQString decodes a length-prefixed string
func DecodeVLQString(data *[]byte) (string, error) {
	length, err := DecodeVLQUint(data)
	if err != nil {
		return "", err
	}
	if uint32(len(*data)) < length {
		return "", ErrBufferTooSmall
	}
	s := string((*data)[:length])
	*data = (*data)[length:]
	return s, nil
}
