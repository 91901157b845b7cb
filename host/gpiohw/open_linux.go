//go:build linux

package gpiohw

import (
	pkgerrors "github.com/pkg/errors"
	"github.com/warthog618/go-gpiocdev"

	"chronulator/host/config"
)

const consumer = "chronulator"

// Open requests the lines named in cfg from the GPIO character device. The
// switches get pull-ups and are read active-low; the meters start low.
func Open(cfg *config.GPIOConfig) (*Hardware, error) {
	var lines []*gpiocdev.Line
	release := func() error {
		var first error
		for _, l := range lines {
			if err := l.Close(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}

	request := func(offset int, opts ...gpiocdev.LineReqOption) (*gpiocdev.Line, error) {
		opts = append(opts, gpiocdev.WithConsumer(consumer))
		l, err := gpiocdev.RequestLine(cfg.Chip, offset, opts...)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to request %s line %d", cfg.Chip, offset)
		}
		lines = append(lines, l)
		return l, nil
	}

	hour, err := request(cfg.HourLine, gpiocdev.AsOutput(0))
	if err != nil {
		release()
		return nil, err
	}
	minute, err := request(cfg.MinuteLine, gpiocdev.AsOutput(0))
	if err != nil {
		release()
		return nil, err
	}
	s1, err := request(cfg.S1Line, gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.AsActiveLow)
	if err != nil {
		release()
		return nil, err
	}
	s2, err := request(cfg.S2Line, gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.AsActiveLow)
	if err != nil {
		release()
		return nil, err
	}

	return New(hour, minute, s1, s2, release), nil
}
