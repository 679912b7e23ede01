package websocket

import (
	"errors"
	"fmt"
)

// Error kinds (spec.md §7). Most are sentinel values suitable for
// errors.Is; WrongHeaderError is a concrete type carrying detail for
// errors.As.

var (
	// ErrInvalidUpgradeRequest indicates the handshake headers were
	// missing or inconsistent with RFC 6455 Section 4.2.1.
	ErrInvalidUpgradeRequest = errors.New("websocket: invalid upgrade request")

	// ErrIO indicates the underlying stream read or write failed for a
	// reason other than a clean EOF at a frame boundary.
	ErrIO = errors.New("websocket: i/o error")

	// ErrTextPayloadNotValidUTF8 indicates a reassembled Text message
	// failed UTF-8 validation. Closes with status 1007.
	ErrTextPayloadNotValidUTF8 = errors.New("websocket: text payload is not valid UTF-8")

	// ErrInflateFailed indicates permessage-deflate decompression failed.
	// Closes with status 1002.
	ErrInflateFailed = errors.New("websocket: inflate failed")

	// ErrChannelClosed indicates the reader's terminal Close message could
	// not be delivered to Incoming because the session's context was
	// canceled first (an application that stopped draining Incoming).
	ErrChannelClosed = errors.New("websocket: channel closed")

	// ErrControlTooLarge indicates a control frame payload exceeding 125
	// bytes, rejected at write time before ever reaching the wire.
	ErrControlTooLarge = errors.New("websocket: control frame payload exceeds 125 bytes")

	// ErrInvalidMessageKind indicates a Message with a Kind the writer
	// does not know how to serialize.
	ErrInvalidMessageKind = errors.New("websocket: invalid message kind")
)

// WrongHeaderError reports a frame whose header readFrame rejects on its
// own: a bad opcode, an over-long or fragmented control frame, a 64-bit
// length with the high bit set, or a payload over the implementation
// limit. Out-of-order continuations, disallowed reserved bits and a
// wrong masking direction are detected by the reader task, which closes
// with 1002 without building a WrongHeaderError. Carries enough detail
// for logging; callers that only need to branch on protocol errors
// declare var wh *WrongHeaderError and use errors.As(err, &wh).
type WrongHeaderError struct {
	Detail string
}

func (e *WrongHeaderError) Error() string {
	return fmt.Sprintf("websocket: wrong header: %s", e.Detail)
}

func wrongHeader(format string, args ...any) error {
	return &WrongHeaderError{Detail: fmt.Sprintf(format, args...)}
}
