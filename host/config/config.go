// Package config loads the host tool's JSON configuration
package config

import (
	"encoding/json"
	"os"

	pkgerrors "github.com/pkg/errors"

	"chronulator/host/serial"
)

// GPIOConfig maps the clock's signals onto a Linux GPIO character device
type GPIOConfig struct {
	Chip string `json:"chip"` // e.g. "gpiochip0"

	S1Line int `json:"s1_line"`
	S2Line int `json:"s2_line"`

	HourLine   int `json:"hour_line"`
	MinuteLine int `json:"minute_line"`
}

// Config is the host tool configuration
type Config struct {
	Serial serial.Config `json:"serial"`
	GPIO   GPIOConfig    `json:"gpio"`
}

// Default returns the configuration used when no file is given. Line
// offsets follow the Raspberry Pi header pins used for the bench rig.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a JSON configuration file. Missing fields take defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to read config %s", path)
	}
	return Parse(data)
}

// Parse decodes a JSON configuration and applies defaults
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to parse config")
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that no two signals share a GPIO line
func (c *Config) Validate() error {
	lines := map[int]string{}
	for name, line := range map[string]int{
		"s1_line":     c.GPIO.S1Line,
		"s2_line":     c.GPIO.S2Line,
		"hour_line":   c.GPIO.HourLine,
		"minute_line": c.GPIO.MinuteLine,
	} {
		if line < 0 {
			return pkgerrors.Errorf("%s: negative line offset %d", name, line)
		}
		if other, ok := lines[line]; ok {
			return pkgerrors.Errorf("%s and %s both use line %d", name, other, line)
		}
		lines[line] = name
	}
	return nil
}

// applyDefaults fills in missing configuration values with sensible defaults
func applyDefaults(cfg *Config) {
	if cfg.Serial.Device == "" {
		cfg.Serial.Device = "/dev/ttyACM0"
	}
	if cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = 115200
	}
	if cfg.Serial.ReadTimeout == 0 {
		cfg.Serial.ReadTimeout = 100
	}

	if cfg.GPIO.Chip == "" {
		cfg.GPIO.Chip = "gpiochip0"
	}
	// Zero is a valid offset but never one of ours; treat it as unset
	if cfg.GPIO.S1Line == 0 {
		cfg.GPIO.S1Line = 17
	}
	if cfg.GPIO.S2Line == 0 {
		cfg.GPIO.S2Line = 27
	}
	if cfg.GPIO.HourLine == 0 {
		cfg.GPIO.HourLine = 12
	}
	if cfg.GPIO.MinuteLine == 0 {
		cfg.GPIO.MinuteLine = 13
	}
}
