package serial

import "errors"

// ErrNoDevice is returned when no device path was configured
var ErrNoDevice = errors.New("no serial device configured")
