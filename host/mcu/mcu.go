// Package mcu reads the clock firmware's telemetry link
package mcu

import (
	"context"
	"io"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"chronulator/host/serial"
	"chronulator/protocol"
)

// MCU represents a connection to the clock firmware
type MCU struct {
	port    io.ReadCloser
	fifo    *protocol.FifoBuffer
	decoder *protocol.FrameDecoder

	// Version is set once the identify message has been seen
	Version string

	// Last is the most recent status report
	Last protocol.Status

	onStatus func(protocol.Status)
	lastSeq  int
	lost     uint32

	// tarm/serial reports a read timeout as io.EOF
	eofIsTimeout bool
}

// New wraps an already open port
func New(port io.ReadCloser) *MCU {
	m := &MCU{
		port:    port,
		fifo:    protocol.NewFifoBuffer(protocol.MessageMax),
		lastSeq: -1,
	}
	m.decoder = protocol.NewFrameDecoder(m.handleFrame)
	return m
}

// Connect opens the serial port described by cfg
func Connect(cfg *serial.Config) (*MCU, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := port.Flush(); err != nil {
		logrus.WithError(err).Debug("failed to flush serial input")
	}
	m := New(port)
	m.eofIsTimeout = cfg.ReadTimeout > 0
	return m, nil
}

// OnStatus sets the callback for status reports
func (m *MCU) OnStatus(fn func(protocol.Status)) {
	m.onStatus = fn
}

// Close closes the connection to the MCU
func (m *MCU) Close() error {
	return m.port.Close()
}

// Run reads the link until ctx is cancelled or the port fails. A closed
// port after cancellation is not an error.
func (m *MCU) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			// Unblocks the pending Read
			m.port.Close()
		case <-done:
		}
	}()

	buf := make([]byte, 64)
	for {
		n, err := m.port.Read(buf)
		if n > 0 {
			m.Feed(buf[:n])
		}
		if ctx.Err() != nil {
			return nil
		}
		if err == io.EOF {
			if m.eofIsTimeout {
				continue
			}
			return nil
		}
		if err != nil {
			return pkgerrors.Wrap(err, "failed to read telemetry")
		}
	}
}

// Feed pushes received bytes through the frame decoder
func (m *MCU) Feed(data []byte) {
	for len(data) > 0 {
		n := m.fifo.Write(data)
		data = data[n:]
		m.decoder.Receive(m.fifo)
		if n == 0 && m.fifo.Free() == 0 {
			// A full buffer that decodes to nothing is noise
			m.fifo.Reset()
		}
	}
}

// Stats returns frame counters: good frames, corrupt frames, and frames
// missing from the sequence
func (m *MCU) Stats() (frames, errors, lost uint32) {
	return m.decoder.Frames, m.decoder.Errors, m.lost
}

func (m *MCU) handleFrame(seq uint8, payload []byte) {
	msg, err := protocol.DecodeMessage(payload)
	if err != nil {
		m.countGap(seq)
		logrus.WithError(err).WithField("seq", seq).Warn("dropping bad message")
		return
	}

	switch msg.ID {
	case protocol.MsgIdentify:
		// Firmware restarted, the sequence starts over
		m.lastSeq = int(seq)
		m.Version = msg.Version
		logrus.WithField("version", msg.Version).Info("clock firmware identified")
	case protocol.MsgStatus:
		m.countGap(seq)
		m.Last = msg.Status
		if m.onStatus != nil {
			m.onStatus(msg.Status)
		}
	}
}

// countGap adds the frames missing between the last sequence number and seq
func (m *MCU) countGap(seq uint8) {
	if m.lastSeq >= 0 {
		expected := uint8(m.lastSeq+1) & protocol.MessageSeqMask
		if seq != expected {
			m.lost += uint32((seq - expected) & protocol.MessageSeqMask)
		}
	}
	m.lastSeq = int(seq)
}
