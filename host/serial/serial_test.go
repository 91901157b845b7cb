package serial

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")

	assert.Equal(t, "/dev/ttyACM0", cfg.Device)
	assert.Equal(t, 115200, cfg.Baud)
	assert.Equal(t, 100, cfg.ReadTimeout)
}

func TestOpenRejectsEmptyDevice(t *testing.T) {
	_, err := Open(DefaultConfig(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoDevice))
}

func TestOpenRejectsNilConfig(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)
}

func TestOpenMissingDevice(t *testing.T) {
	_, err := Open(DefaultConfig("/dev/chronulator-does-not-exist"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/dev/chronulator-does-not-exist")
}
