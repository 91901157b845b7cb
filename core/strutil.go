package core

// String helpers for debug output on TinyGo builds that avoid the fmt package.

// utoa converts an unsigned integer to a string
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// putTwoDigits writes v as two zero-padded decimal digits into dst.
// Values above 99 are truncated to their last two digits.
func putTwoDigits(dst []byte, v uint8) {
	dst[0] = byte('0' + (v/10)%10)
	dst[1] = byte('0' + v%10)
}
