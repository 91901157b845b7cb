//go:build linux

package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"chronulator/core"
	"chronulator/host/gpiohw"
	"chronulator/host/runner"
)

func NewRunCommand() *cobra.Command {
	var (
		start string
		trace bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive a clock wired to this machine's GPIO lines",
		Long: `Drive the two meters and read the two switches through the Linux GPIO
character device, with the meter PWM timed in software. Line offsets come
from the config file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hw, err := gpiohw.Open(&cfg.GPIO)
			if err != nil {
				return err
			}
			defer hw.Close()

			r := runner.New(hw)
			if start != "" {
				t, err := parseClockTime(start)
				if err != nil {
					return err
				}
				r.SetTime(t)
			} else {
				now := time.Now()
				r.SetTime(core.TimeOfDay{
					Hour:   uint8(now.Hour() % core.HoursPerFace),
					Minute: uint8(now.Minute()),
					Second: uint8(now.Second()),
				})
			}

			lastMode := r.Snapshot().Mode
			r.OnSecond(func(snap core.Snapshot) {
				if snap.Mode != lastMode {
					logrus.WithFields(logrus.Fields{
						"from": lastMode.String(),
						"to":   snap.Mode.String(),
					}).Info("mode changed")
					lastMode = snap.Mode
				}
				logrus.WithFields(logrus.Fields{
					"time":       snap.Time.String(),
					"hour_off":   snap.Outputs.HourDuty,
					"minute_off": snap.Outputs.MinuteDuty,
				}).Debug("tick")
			})

			logrus.WithFields(logrus.Fields{
				"chip":   cfg.GPIO.Chip,
				"hour":   cfg.GPIO.HourLine,
				"minute": cfg.GPIO.MinuteLine,
				"s1":     cfg.GPIO.S1Line,
				"s2":     cfg.GPIO.S2Line,
			}).Info("driving clock")

			ctx, cancel := signalContext()
			defer cancel()
			err = r.Run(ctx)

			logrus.WithFields(logrus.Fields{
				"late_ticks":  r.Late(),
				"line_errors": hw.Errors(),
			}).Info("clock stopped")

			if trace {
				core.SetDebugWriter(func(msg string) { logrus.Info(msg) })
				r.DumpTrace()
			}
			return err
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "starting time HH:MM[:SS] (default: system time)")
	cmd.Flags().BoolVar(&trace, "trace", false, "log the button and mode trace on exit")

	return cmd
}
