//go:build !linux

package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var errNoGPIO = errors.New("run needs the Linux GPIO character device")

func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Drive a clock wired to this machine's GPIO lines (Linux only)",
		RunE: func(_ *cobra.Command, _ []string) error {
			return errNoGPIO
		},
	}
}
