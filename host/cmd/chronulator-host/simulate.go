package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"chronulator/core"
	"chronulator/host/sim"
)

func NewSimulateCommand() *cobra.Command {
	var (
		presses []string
		seconds uint32
		start   string
		trace   bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the clock logic against simulated meters and buttons",
		Long: `Run the clock logic tick by tick without real time passing. Button presses
are scripted as button:start[:hold] in seconds, e.g. --press s1:3 --press s2:5:0.5.
One line is printed for every simulated second.`,
		Example: `  chronulator-host simulate --seconds 20 --press s2:2 --press s1:2.1:1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			script, err := sim.ParseScript(presses)
			if err != nil {
				return err
			}

			s := sim.New(script)
			if start != "" {
				t, err := parseClockTime(start)
				if err != nil {
					return err
				}
				s.State.SetTime(t)
			}

			logrus.WithFields(logrus.Fields{
				"seconds": seconds,
				"presses": len(script),
			}).Debug("starting simulation")

			out := cmd.OutOrStdout()
			s.RunSeconds(seconds, func(snap core.Snapshot) {
				printSimSecond(out, s.HW, snap)
			})

			if trace {
				core.SetDebugWriter(func(msg string) { fmt.Fprintln(out, msg) })
				core.DumpTrace(&s.State.Trace)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&presses, "press", "p", nil, "scripted press button:start[:hold] (repeatable)")
	cmd.Flags().Uint32VarP(&seconds, "seconds", "s", 10, "simulated seconds to run")
	cmd.Flags().StringVar(&start, "start", "", "starting time HH:MM[:SS] (default 06:30:00)")
	cmd.Flags().BoolVar(&trace, "trace", false, "dump the button and mode trace at the end")

	return cmd
}

func printSimSecond(w io.Writer, hw *sim.Hardware, snap core.Snapshot) {
	hour, minute := hw.ReadClock()
	fmt.Fprintf(w, "t=%-4d %s needles=%02d:%02d\n", snap.Uptime, formatSnapshot(snap), hour, minute)
}
