package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TraceEvent captures a button or mode transition for post-mortem analysis
type TraceEvent struct {
	EventType uint8  // Event type code
	Value1    uint8  // Context-dependent value
	Value2    uint8  // Context-dependent value
	Uptime    uint32 // Seconds since reset at the time of the event
}

// Event type codes
const (
	EvtButton     = 1 // Value1=button, Value2=Event
	EvtModeChange = 2 // Value1=old mode, Value2=new mode
)

const (
	TraceRingSize = 32 // Keep last 32 events for post-mortem
)

// EventRing is a fixed-size ring of recent trace events. Recording never
// allocates, so it is safe from the tick handler.
type EventRing struct {
	events [TraceRingSize]TraceEvent
	head   uint8 // Next write position
	count  uint8
}

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16) // Buffer 16 messages
	go debugOutputWorker()
}

// debugOutputWorker runs in background, drains debug channel
func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Returns immediately even if channel is full (drops message)
func DebugAsync(msg string) {
	if !debugEnabled || debugChan == nil {
		return
	}
	select {
	case debugChan <- msg:
	default:
		// Channel full, drop message
	}
}

// Record captures a trace event, overwriting the oldest when full
func (r *EventRing) Record(eventType, value1, value2 uint8, uptime uint32) {
	r.events[r.head] = TraceEvent{
		EventType: eventType,
		Value1:    value1,
		Value2:    value2,
		Uptime:    uptime,
	}
	r.head = (r.head + 1) % TraceRingSize
	if r.count < TraceRingSize {
		r.count++
	}
}

// Len returns the number of events held
func (r *EventRing) Len() int {
	return int(r.count)
}

// Events returns the held events, oldest first
func (r *EventRing) Events() []TraceEvent {
	out := make([]TraceEvent, 0, r.count)
	start := (r.head + TraceRingSize - r.count) % TraceRingSize
	for i := uint8(0); i < r.count; i++ {
		out = append(out, r.events[(start+i)%TraceRingSize])
	}
	return out
}

// Clear empties the ring
func (r *EventRing) Clear() {
	*r = EventRing{}
}

// FormatTraceEvent renders one event as a single log line
func FormatTraceEvent(evt TraceEvent) string {
	switch evt.EventType {
	case EvtButton:
		return "[TRACE] t=" + utoa(evt.Uptime) + " " + Button(evt.Value1).String() + " " + Event(evt.Value2).String()
	case EvtModeChange:
		return "[TRACE] t=" + utoa(evt.Uptime) + " mode " + Mode(evt.Value1).String() + " -> " + Mode(evt.Value2).String()
	default:
		return "[TRACE] t=" + utoa(evt.Uptime) + " unknown"
	}
}

// DumpTrace outputs the ring through the debug writer
// Call this outside the tick context; it allocates
func DumpTrace(r *EventRing) {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[TRACE] === Trace Dump ===")
	for _, evt := range r.Events() {
		debugPrintln(FormatTraceEvent(evt))
	}
	debugPrintln("[TRACE] === End Dump ===")
}
