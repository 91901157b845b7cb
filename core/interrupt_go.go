//go:build !tinygo

package core

// State is a placeholder for interrupt state on regular Go
type State uintptr

// disableInterrupts is a no-op on regular Go. Host drivers call OnTick from a
// single goroutine and serialise snapshot readers themselves.
func disableInterrupts() State {
	return 0
}

// restoreInterrupts is a no-op on regular Go
func restoreInterrupts(state State) {
}
