//go:build rp2040

package main

import (
	"chronulator/core"
	"chronulator/protocol"
)

// report is handed from the tick loop to the telemetry goroutine. A report
// carrying a trace is dumped to the debug UART instead of framed.
type report struct {
	status protocol.Status
	trace  *core.EventRing
}

func statusReport(state *core.ClockState) report {
	return report{status: protocol.StatusFromSnapshot(state.Snapshot())}
}

// telemetry frames status reports onto the USB serial port. The tick loop
// never blocks on it: when the queue is full the report is dropped.
type telemetry struct {
	output  *protocol.ScratchOutput
	encoder protocol.FrameEncoder
	queue   chan report

	dropped                  uint32
	consecutiveWriteFailures uint32
}

func newTelemetry() *telemetry {
	return &telemetry{
		output: protocol.NewScratchOutput(),
		queue:  make(chan report, 4),
	}
}

// post queues a report without blocking
func (t *telemetry) post(r report) {
	select {
	case t.queue <- r:
	default:
		t.dropped++
	}
}

// run sends an identify frame and then each queued report
func (t *telemetry) run() {
	t.encoder.EncodeFrame(t.output, func(out protocol.OutputBuffer) {
		protocol.EncodeIdentify(out, protocol.Version)
	})
	t.flush()

	for r := range t.queue {
		if r.trace != nil {
			core.DumpTrace(r.trace)
			continue
		}
		t.encoder.EncodeFrame(t.output, func(out protocol.OutputBuffer) {
			protocol.EncodeStatus(out, r.status)
		})
		t.flush()
	}
}

// flush writes the pending frames. With no host attached the writes fail;
// after a few failures the backlog is discarded so stale reports never pile up.
func (t *telemetry) flush() {
	result := t.output.Result()
	written := 0
	for written < len(result) {
		n, err := USBWriteBytes(result[written:])
		if err != nil || n == 0 {
			t.consecutiveWriteFailures++
			if t.consecutiveWriteFailures > 10 {
				t.consecutiveWriteFailures = 0
				t.output.Reset()
			}
			return
		}
		written += n
	}
	t.consecutiveWriteFailures = 0
	t.output.Reset()
}
