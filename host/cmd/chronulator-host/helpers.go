package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"

	"chronulator/core"
)

// parseClockTime parses "HH:MM" or "HH:MM:SS". Hours 12 to 23 fold onto the
// twelve hour face.
func parseClockTime(s string) (core.TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return core.TimeOfDay{}, pkgerrors.Errorf("bad time %q, want HH:MM[:SS]", s)
	}

	limits := []int{24, core.MinutesPerHour, core.SecondsPerMinute}
	var fields [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v >= limits[i] {
			return core.TimeOfDay{}, pkgerrors.Errorf("bad time %q: field %q out of range", s, p)
		}
		fields[i] = uint8(v)
	}

	return core.TimeOfDay{
		Hour:   fields[0] % core.HoursPerFace,
		Minute: fields[1],
		Second: fields[2],
	}, nil
}

var (
	modeColors = map[core.Mode]*color.Color{
		core.ModeShowTime:      color.New(color.FgGreen),
		core.ModeCalibrateZero: color.New(color.FgYellow),
		core.ModeCalibrateFull: color.New(color.FgMagenta),
	}
	stateColor = color.New(color.FgCyan)
)

func colorMode(m core.Mode) string {
	if c, ok := modeColors[m]; ok {
		return c.Sprint(m.String())
	}
	return m.String()
}

func colorButton(st core.ButtonState) string {
	if st == core.ButtonInactive {
		return st.String()
	}
	return stateColor.Sprint(st.String())
}

// formatSnapshot renders one line of clock state
func formatSnapshot(snap core.Snapshot) string {
	return snap.Time.String() +
		" " + colorMode(snap.Mode) +
		" hour_off=" + strconv.Itoa(int(snap.Outputs.HourDuty)) +
		" minute_off=" + strconv.Itoa(int(snap.Outputs.MinuteDuty)) +
		" S1=" + colorButton(snap.S1) +
		" S2=" + colorButton(snap.S2)
}

// signalContext is cancelled by SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
