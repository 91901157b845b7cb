package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"chronulator/host/mcu"
	"chronulator/protocol"
)

func NewMonitorCommand() *cobra.Command {
	var (
		device string
		baud   int
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Print the status reports of a clock on a serial port",
		RunE: func(cmd *cobra.Command, _ []string) error {
			serialCfg := cfg.Serial
			if device != "" {
				serialCfg.Device = device
			}
			if baud != 0 {
				serialCfg.Baud = baud
			}

			m, err := mcu.Connect(&serialCfg)
			if err != nil {
				return err
			}
			defer m.Close()

			logrus.WithField("device", serialCfg.Device).Info("monitoring clock")

			out := cmd.OutOrStdout()
			m.OnStatus(func(st protocol.Status) {
				fmt.Fprintln(out, formatStatus(st))
			})

			ctx, cancel := signalContext()
			defer cancel()
			err = m.Run(ctx)

			frames, bad, lost := m.Stats()
			logrus.WithFields(logrus.Fields{
				"frames": frames,
				"bad":    bad,
				"lost":   lost,
			}).Info("monitor stopped")
			return err
		},
	}

	cmd.Flags().StringVarP(&device, "device", "d", "", "serial device (overrides config)")
	cmd.Flags().IntVarP(&baud, "baud", "b", 0, "baud rate (overrides config, ignored by USB CDC)")

	return cmd
}

func formatStatus(st protocol.Status) string {
	return fmt.Sprintf("%s %s hour_off=%d minute_off=%d uptime=%ds",
		st.Time, colorMode(st.Mode), st.Outputs.HourDuty, st.Outputs.MinuteDuty, st.Uptime)
}
