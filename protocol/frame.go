package protocol

const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10
)

// FrameEncoder writes framed messages with a rolling sequence number
type FrameEncoder struct {
	seq uint8
}

// EncodeFrame writes one frame whose payload is produced by body. The
// payload must fit in MessageLengthMax-MessageLengthMin bytes.
func (e *FrameEncoder) EncodeFrame(output OutputBuffer, body func(output OutputBuffer)) {
	cursor := output.CurPosition()

	// Length is patched once the payload size is known
	output.Output([]byte{0, MessageDest | (e.seq & MessageSeqMask)})
	e.seq = (e.seq + 1) & MessageSeqMask

	body(output)

	length := len(output.DataSince(cursor)) + MessageTrailerSize
	output.Update(cursor+MessagePositionLen, uint8(length))

	crc := CRC16(output.DataSince(cursor))
	output.Output([]byte{
		uint8(crc >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})
}

// FrameHandler receives the sequence number and payload of each good frame.
// The payload slice is only valid during the call.
type FrameHandler func(seq uint8, payload []byte)

// FrameDecoder splits a byte stream into frames. After a corrupt frame it
// discards input up to the next sync byte, the same recovery Klipper uses.
type FrameDecoder struct {
	synchronized bool
	handler      FrameHandler

	// Frames counts frames delivered to the handler
	Frames uint32
	// Errors counts corrupt frames and resyncs
	Errors uint32
}

// NewFrameDecoder creates a decoder. It starts synchronized; a partial frame
// at the start of a capture fails its checks and triggers a resync.
func NewFrameDecoder(handler FrameHandler) *FrameDecoder {
	return &FrameDecoder{synchronized: true, handler: handler}
}

// Receive consumes as many complete frames from input as possible and
// leaves any trailing partial frame in place.
func (d *FrameDecoder) Receive(input InputBuffer) {
	data := input.Data()
	total := len(data)

	for len(data) > 0 {
		if !d.synchronized {
			syncPos := -1
			for i, b := range data {
				if b == MessageValueSync {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				data = nil
				break
			}
			data = data[syncPos+1:]
			d.synchronized = true
			continue
		}

		// Skip leading sync bytes
		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desync()
			continue
		}

		seq := data[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			d.desync()
			continue
		}

		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.desync()
			continue
		}

		payload := data[MessageHeaderSize : msgLen-MessageTrailerSize]
		data = data[msgLen:]
		d.Frames++
		if d.handler != nil {
			d.handler(seq&MessageSeqMask, payload)
		}
	}

	if consumed := total - len(data); consumed > 0 {
		input.Pop(consumed)
	}
}

func (d *FrameDecoder) desync() {
	d.synchronized = false
	d.Errors++
}
