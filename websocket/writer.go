package websocket

import (
	"io"
	"unicode/utf8"
)

// runWriter owns the write half of the stream for the lifetime of a
// Session (spec.md §4.3, §4.4). It drains in, serializing each Message
// to exactly one frame — this module never fragments or compresses
// outbound frames (spec.md Non-goals) — until a Close message is
// written or in is closed, at which point it writes Close(0) and exits.
//
// maskOutbound is true in the client role: RFC 6455 Section 5.1 requires
// client-to-server frames be masked.
func runWriter(w io.Writer, maskOutbound bool, in <-chan Message, logger Logger) {
	for msg := range in {
		f, err := frameFromMessage(msg, maskOutbound)
		if err != nil {
			logger.Errorf("dropping outbound message: %v", err)
			continue
		}

		if err := writeFrame(w, f); err != nil {
			logger.Errorf("write failed: %v", err)
			return
		}

		if msg.Kind == KindClose {
			return
		}
	}

	// in closed: the application dropped its sender. Emit a bodiless
	// close and exit.
	f, _ := frameFromMessage(CloseMessage(0), maskOutbound)
	if err := writeFrame(w, f); err != nil {
		logger.Errorf("write failed on shutdown close: %v", err)
	}
}

// frameFromMessage serializes a Message into one unfragmented frame
// (spec.md §4.3). Control frame payloads over 125 bytes are rejected
// before ever reaching writeFrame.
func frameFromMessage(msg Message, maskOutbound bool) (*frame, error) {
	f := &frame{fin: true, masked: maskOutbound}

	switch msg.Kind {
	case KindText:
		if !utf8.ValidString(msg.Text) {
			return nil, ErrTextPayloadNotValidUTF8
		}
		f.opcode = opcodeText
		f.payload = []byte(msg.Text)
	case KindBinary:
		f.opcode = opcodeBinary
		f.payload = msg.Data
	case KindPing:
		f.opcode = opcodePing
		f.payload = msg.Data
	case KindPong:
		f.opcode = opcodePong
		f.payload = msg.Data
	case KindClose:
		f.opcode = opcodeClose
		f.payload = encodeCloseStatus(msg.CloseStatus)
	default:
		return nil, ErrInvalidMessageKind
	}

	if isControlFrame(f.opcode) && len(f.payload) > maxControlPayload {
		return nil, ErrControlTooLarge
	}

	if maskOutbound {
		key, err := newMaskingKey()
		if err != nil {
			return nil, err
		}
		f.maskingKey = key
	}

	return f, nil
}
