//go:build rp2040

package main

import (
	"runtime/volatile"
	"time"
	"unsafe"

	"chronulator/core"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x08 // Raw timer high word
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// The tick period is 1953.125us. Deadlines are kept in eighths of a
// microsecond so the fraction never accumulates into drift.
const tickEighthsUS = core.TickPeriodNS * 8 / 1000

// spinUS is how close to a deadline the wait stops sleeping and polls
const spinUS = 200

// GetHardwareUptime reads the full 64-bit microsecond timer
func GetHardwareUptime() uint64 {
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()

		// A changed high word means the low word rolled over mid-read
		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// tickClock paces the tick loop off the hardware timer
type tickClock struct {
	deadline uint64 // eighths of a microsecond
	late     uint32
}

func newTickClock() *tickClock {
	return &tickClock{deadline: GetHardwareUptime() * 8}
}

// wait blocks until the next tick is due. Other goroutines run while it
// sleeps. A missed deadline is counted and not made up twice.
func (c *tickClock) wait() {
	c.deadline += tickEighthsUS
	due := c.deadline / 8

	now := GetHardwareUptime()
	if now > due+tickEighthsUS/8 {
		c.late++
		c.deadline = now * 8
		return
	}
	if now+spinUS < due {
		time.Sleep(time.Duration(due-now-spinUS) * time.Microsecond)
	}
	for GetHardwareUptime() < due {
	}
}
