package main

import (
	"io"
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"chronulator/core"
	"chronulator/host/dial"
)

func NewRenderCommand() *cobra.Command {
	var (
		at    string
		mode  string
		out   string
		width int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the meter faces for a time or a calibration mode",
		Long: `Draw both meters with the needles where the firmware would put them. The
format follows the output file extension: .svg writes the vector source,
anything else a PNG.`,
		Example: `  chronulator-host render --time 11:59 --out clock.png
  chronulator-host render --mode calibrate_full --out full.svg`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputs, err := renderOutputs(at, mode)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return pkgerrors.Wrapf(err, "failed to create %s", out)
				}
				defer f.Close()
				w = f
			}

			if strings.HasSuffix(out, ".svg") {
				err = dial.SVG(w, outputs)
			} else {
				err = dial.PNG(w, outputs, width)
			}
			if err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"hour_off":   outputs.HourDuty,
				"minute_off": outputs.MinuteDuty,
				"out":        out,
			}).Debug("rendered dial")
			return nil
		},
	}

	cmd.Flags().StringVarP(&at, "time", "t", "", "time to show HH:MM[:SS] (default 06:30)")
	cmd.Flags().StringVarP(&mode, "mode", "m", core.ModeShowTime.String(), "show_time, calibrate_zero or calibrate_full")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().IntVarP(&width, "width", "w", dial.Width, "PNG width in pixels")

	return cmd
}

// renderOutputs picks the meter outputs the firmware would program
func renderOutputs(at, mode string) (core.MeterOutputs, error) {
	switch mode {
	case core.ModeCalibrateZero.String():
		return core.ComputeForCalibration(core.CalibrateZeroScale), nil
	case core.ModeCalibrateFull.String():
		return core.ComputeForCalibration(core.CalibrateFullScale), nil
	case core.ModeShowTime.String():
	default:
		return core.MeterOutputs{}, pkgerrors.Errorf("unknown mode %q", mode)
	}

	t := core.DefaultTimeOfDay()
	if at != "" {
		var err error
		if t, err = parseClockTime(at); err != nil {
			return core.MeterOutputs{}, err
		}
	}
	return core.ComputeForTime(t), nil
}
