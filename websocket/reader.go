package websocket

import (
	"context"
	"errors"
	"io"
	"unicode/utf8"
)

// runReader owns the read half of the stream for the lifetime of a
// Session (spec.md §4.2, §4.4). It parses frames, enforces protocol
// rules, reassembles fragmented messages, applies permessage-deflate
// inflate, validates UTF-8 on reassembled text, and delivers completed
// Message values to out.
//
// expectMask is true in the server role: RFC 6455 Section 5.1 requires
// client-to-server frames be masked, so a server reader rejects unmasked
// data and a client reader rejects masked data.
//
// runReader always terminates by sending exactly one KindClose Message
// and then closing out, whether termination was a clean EOF at a frame
// boundary, a protocol violation, or a peer-initiated Close.
func runReader(ctx context.Context, r io.Reader, expectMask, deflateSupported bool, out chan<- Message, logger Logger) {
	var (
		inFragment     bool
		fragmentOpcode byte
		fragmentRsv1   bool
		fragmentBuf    []byte
	)

	for {
		f, err := readFrame(r)
		if err != nil {
			if err == io.EOF {
				logger.Tracef("clean EOF at frame boundary")
				finalClose(ctx, out, 0, logger)
				return
			}
			logger.Errorf("frame read failed: %v", err)
			finalClose(ctx, out, closeStatusForError(err), logger)
			return
		}

		if f.masked != expectMask {
			logger.Errorf("mask direction violation: masked=%v expected=%v", f.masked, expectMask)
			finalClose(ctx, out, uint16(CloseProtocolError), logger)
			return
		}

		if f.rsv2 || f.rsv3 {
			logger.Errorf("reserved bits rsv2/rsv3 set")
			finalClose(ctx, out, uint16(CloseProtocolError), logger)
			return
		}
		if f.rsv1 && !(deflateSupported && !inFragment && isDataOpcode(f.opcode)) {
			logger.Errorf("rsv1 set without permessage-deflate on frame start")
			finalClose(ctx, out, uint16(CloseProtocolError), logger)
			return
		}

		if f.opcode == opcodeContinuation {
			if !inFragment {
				logger.Errorf("unexpected continuation frame")
				finalClose(ctx, out, uint16(CloseProtocolError), logger)
				return
			}
		} else if isDataOpcode(f.opcode) && inFragment {
			logger.Errorf("new data frame while reassembling a fragmented message")
			finalClose(ctx, out, uint16(CloseProtocolError), logger)
			return
		}

		switch {
		case isControlFrame(f.opcode):
			switch f.opcode {
			case opcodePing:
				out <- PingMessage(f.payload)
			case opcodePong:
				out <- PongMessage(f.payload)
			case opcodeClose:
				status := deriveCloseStatus(f.payload)
				logger.Tracef("peer close, status=%d", status)
				finalClose(ctx, out, status, logger)
				return
			}

		case isDataOpcode(f.opcode) && !f.fin:
			// Start of a fragmented message.
			inFragment = true
			fragmentOpcode = f.opcode
			fragmentRsv1 = f.rsv1
			fragmentBuf = append([]byte(nil), f.payload...)

		case f.opcode == opcodeContinuation && !f.fin:
			// Middle fragment.
			fragmentBuf = append(fragmentBuf, f.payload...)

		case f.opcode == opcodeContinuation && f.fin:
			// End fragment: assemble and clear.
			fragmentBuf = append(fragmentBuf, f.payload...)
			payload := fragmentBuf
			opcode := fragmentOpcode
			rsv1 := fragmentRsv1
			inFragment, fragmentBuf = false, nil

			msg, err := completeMessage(opcode, rsv1, payload)
			if err != nil {
				logger.Errorf("message assembly failed: %v", err)
				finalClose(ctx, out, closeStatusForError(err), logger)
				return
			}
			out <- msg

		default:
			// Unfragmented data frame (isDataOpcode(f.opcode) && f.fin).
			msg, err := completeMessage(f.opcode, f.rsv1, f.payload)
			if err != nil {
				logger.Errorf("message assembly failed: %v", err)
				finalClose(ctx, out, closeStatusForError(err), logger)
				return
			}
			out <- msg
		}
	}
}

// completeMessage turns a reassembled (or unfragmented) data frame's
// payload into an application Message, applying inflate and UTF-8
// validation per spec.md §4.2 "Post-reassembly payload processing".
func completeMessage(opcode byte, rsv1 bool, payload []byte) (Message, error) {
	if rsv1 {
		inflated, err := inflate(payload)
		if err != nil {
			return Message{}, err
		}
		payload = inflated
	}

	if opcode == opcodeText {
		if !utf8.Valid(payload) {
			return Message{}, ErrTextPayloadNotValidUTF8
		}
		return TextMessage(string(payload)), nil
	}
	return BinaryMessage(payload), nil
}

// closeStatusForError maps a termination error to the status code the
// reader reports to the application (spec.md §4.2 "Validation failures").
func closeStatusForError(err error) uint16 {
	var wh *WrongHeaderError
	switch {
	case errors.Is(err, ErrTextPayloadNotValidUTF8):
		return uint16(CloseInvalidFramePayloadData)
	case errors.Is(err, ErrInflateFailed):
		return uint16(CloseProtocolError)
	case errors.As(err, &wh):
		return uint16(CloseProtocolError)
	case errors.Is(err, ErrIO):
		return uint16(CloseAbnormalClosure)
	default:
		return uint16(CloseProtocolError)
	}
}

// finalClose delivers the terminal Close message and closes out. The
// send races ctx.Done() so an application that stopped reading (signaled
// by canceling the session's context) cannot leak this goroutine; on
// that race the message is silently dropped, matching the default
// behavior spec.md §9 describes.
func finalClose(ctx context.Context, out chan<- Message, status uint16, logger Logger) {
	select {
	case out <- CloseMessage(status):
	case <-ctx.Done():
		logger.Errorf("%v: terminal close dropped, context canceled before delivery", ErrChannelClosed)
	}
	close(out)
}
