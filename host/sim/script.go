package sim

import (
	"math"
	"sort"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"chronulator/core"
)

// Press holds a button down for a span of ticks
type Press struct {
	Button core.Button
	Start  uint32 // first tick the switch reads closed
	Ticks  uint32 // how long it stays closed
}

// MaxPressSeconds bounds press start and end times so they fit in a
// uint32 tick count
const MaxPressSeconds = math.MaxUint32 / core.TicksPerSecond

// Script is a set of presses applied while the simulation runs
type Script []Press

// ParsePress parses "s1:2.5:0.25", which holds S1 from 2.5s for 0.25s.
// The hold time is optional and defaults to a quarter second.
func ParsePress(arg string) (Press, error) {
	parts := strings.Split(strings.TrimSpace(arg), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Press{}, pkgerrors.Errorf("bad press %q, want button:start[:hold]", arg)
	}

	var p Press
	switch strings.ToLower(parts[0]) {
	case "s1", "hour":
		p.Button = core.ButtonS1
	case "s2", "minute":
		p.Button = core.ButtonS2
	default:
		return Press{}, pkgerrors.Errorf("bad press %q: unknown button %q", arg, parts[0])
	}

	start, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || !(start >= 0 && start <= MaxPressSeconds) {
		return Press{}, pkgerrors.Errorf("bad press %q: start %q", arg, parts[1])
	}
	hold := 0.25
	if len(parts) == 3 {
		hold, err = strconv.ParseFloat(parts[2], 64)
		if err != nil || !(hold > 0 && hold <= MaxPressSeconds) {
			return Press{}, pkgerrors.Errorf("bad press %q: hold %q", arg, parts[2])
		}
	}
	if start+hold > MaxPressSeconds {
		return Press{}, pkgerrors.Errorf("bad press %q: ends after %ds", arg, MaxPressSeconds)
	}

	p.Start = secondsToTicks(start)
	p.Ticks = secondsToTicks(hold)
	if p.Ticks == 0 {
		p.Ticks = 1
	}
	return p, nil
}

// ParseScript parses a list of presses, ordered by start time
func ParseScript(args []string) (Script, error) {
	script := make(Script, 0, len(args))
	for _, arg := range args {
		if arg == "" {
			continue
		}
		p, err := ParsePress(arg)
		if err != nil {
			return nil, err
		}
		script = append(script, p)
	}
	sort.SliceStable(script, func(i, j int) bool { return script[i].Start < script[j].Start })
	return script, nil
}

// Pressed reports whether the script holds b closed at tick
func (s Script) Pressed(b core.Button, tick uint32) bool {
	for _, p := range s {
		if p.Button == b && tick >= p.Start && tick < p.Start+p.Ticks {
			return true
		}
	}
	return false
}

func secondsToTicks(s float64) uint32 {
	return uint32(s*core.TicksPerSecond + 0.5)
}
