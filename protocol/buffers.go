package protocol

// InputBuffer provides an abstraction for reading received link data
type InputBuffer interface {
	// Data returns the available data slice
	Data() []byte

	// Available returns the number of bytes available
	Available() int

	// Pop removes n bytes from the front of the buffer
	Pop(n int)
}

// OutputBuffer provides an abstraction for writing frames
type OutputBuffer interface {
	// Output writes data to the buffer
	Output(data []byte)

	// CurPosition returns the current write position
	CurPosition() int

	// Update modifies a byte at a specific position
	Update(pos int, val byte)

	// DataSince returns data from a specific position to current
	DataSince(pos int) []byte
}

// SliceInputBuffer implements InputBuffer over a byte slice
type SliceInputBuffer struct {
	data []byte
}

// NewSliceInputBuffer creates a new SliceInputBuffer
func NewSliceInputBuffer(data []byte) *SliceInputBuffer {
	return &SliceInputBuffer{data: data}
}

func (s *SliceInputBuffer) Data() []byte {
	return s.data
}

func (s *SliceInputBuffer) Available() int {
	return len(s.data)
}

func (s *SliceInputBuffer) Pop(n int) {
	if n > len(s.data) {
		n = len(s.data)
	}
	s.data = s.data[n:]
}

// ScratchOutput implements OutputBuffer over a fixed array so the firmware
// can build frames without allocating
type ScratchOutput struct {
	buf [MessageMax]byte
	pos int
}

// NewScratchOutput creates a new ScratchOutput
func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

// Output appends data; anything past the end of the buffer is dropped
func (s *ScratchOutput) Output(data []byte) {
	n := copy(s.buf[s.pos:], data)
	s.pos += n
}

func (s *ScratchOutput) CurPosition() int {
	return s.pos
}

func (s *ScratchOutput) Update(pos int, val byte) {
	if pos < s.pos {
		s.buf[pos] = val
	}
}

func (s *ScratchOutput) DataSince(pos int) []byte {
	if pos > s.pos {
		return nil
	}
	return s.buf[pos:s.pos]
}

// Result returns the accumulated output data
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// Reset clears the buffer
func (s *ScratchOutput) Reset() {
	s.pos = 0
}

// FifoBuffer is a byte queue for partially received frames. Reads from a
// serial port rarely line up with frame boundaries.
type FifoBuffer struct {
	buf  []byte
	size int
}

// NewFifoBuffer creates a FifoBuffer that holds at most capacity bytes
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{
		buf:  make([]byte, 0, capacity),
		size: capacity,
	}
}

// Write appends as much of data as fits and returns the count written
func (f *FifoBuffer) Write(data []byte) int {
	n := f.Free()
	if n > len(data) {
		n = len(data)
	}
	f.buf = append(f.buf, data[:n]...)
	return n
}

// Available returns the number of bytes queued
func (f *FifoBuffer) Available() int {
	return len(f.buf)
}

// Free returns the number of bytes that can still be written
func (f *FifoBuffer) Free() int {
	return f.size - len(f.buf)
}

// Data returns the queued bytes without consuming them
func (f *FifoBuffer) Data() []byte {
	return f.buf
}

// Pop removes n bytes from the front
func (f *FifoBuffer) Pop(n int) {
	if n >= len(f.buf) {
		f.buf = f.buf[:0]
		return
	}
	remaining := copy(f.buf, f.buf[n:])
	f.buf = f.buf[:remaining]
}

// Reset clears the buffer
func (f *FifoBuffer) Reset() {
	f.buf = f.buf[:0]
}
