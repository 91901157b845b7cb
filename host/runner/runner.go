// Package runner drives the tick handler in real time on a host OS
package runner

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"chronulator/core"
)

// Runner calls core.OnTick from a single goroutine at the firmware tick rate
// and lets other goroutines read the state through Snapshot.
type Runner struct {
	hw    core.Hardware
	mu    sync.Mutex
	state *core.ClockState

	onSecond func(core.Snapshot)
	late     uint32
}

// New creates a runner at the power-up state
func New(hw core.Hardware) *Runner {
	return &Runner{
		hw:    hw,
		state: core.NewClockState(),
	}
}

// OnSecond sets a callback run after each tick that completed a second.
// It runs on the tick goroutine and should return quickly.
func (r *Runner) OnSecond(fn func(core.Snapshot)) {
	r.onSecond = fn
}

// Snapshot returns a consistent copy of the clock state
func (r *Runner) Snapshot() core.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Snapshot()
}

// SetTime sets the clock, as if the buttons had been used
func (r *Runner) SetTime(t core.TimeOfDay) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.SetTime(t)
}

// DumpTrace writes the transition ring through the core debug writer
func (r *Runner) DumpTrace() {
	r.mu.Lock()
	ring := r.state.Trace
	r.mu.Unlock()
	core.DumpTrace(&ring)
}

// Late returns how many ticks were delivered more than a full period late
func (r *Runner) Late() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.late
}

// Run ticks until ctx is cancelled
func (r *Runner) Run(ctx context.Context) error {
	period := time.Duration(core.TickPeriodNS) * time.Nanosecond
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	logrus.WithFields(logrus.Fields{
		"period": period,
		"time":   r.Snapshot().Time.String(),
	}).Info("clock running")

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			r.tick(now.Sub(last) > 2*period)
			last = now
		}
	}
}

func (r *Runner) tick(late bool) {
	r.mu.Lock()
	before := r.state.Uptime()
	core.OnTick(r.hw, r.state)
	if late {
		r.late++
	}
	var snap core.Snapshot
	second := r.state.Uptime() != before
	if second {
		snap = r.state.Snapshot()
	}
	r.mu.Unlock()

	if second && r.onSecond != nil {
		r.onSecond(snap)
	}
}
