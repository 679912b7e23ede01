package websocket

import "encoding/binary"

// CloseCode represents a WebSocket close status code (RFC 6455 Section 7.4).
type CloseCode uint16

const (
	// CloseNormalClosure indicates normal closure (1000).
	CloseNormalClosure CloseCode = 1000
	// CloseGoingAway indicates an endpoint going away (1001).
	CloseGoingAway CloseCode = 1001
	// CloseProtocolError indicates a protocol violation (1002).
	CloseProtocolError CloseCode = 1002
	// CloseUnsupportedData indicates an unacceptable data type (1003).
	CloseUnsupportedData CloseCode = 1003
	// CloseNoStatusReceived is reserved; never sent on the wire (1005).
	CloseNoStatusReceived CloseCode = 1005
	// CloseAbnormalClosure is reserved; never sent on the wire (1006).
	// Used internally to denote a hard I/O failure rather than a clean
	// EOF or a peer-initiated close.
	CloseAbnormalClosure CloseCode = 1006
	// CloseInvalidFramePayloadData indicates invalid payload data, e.g.
	// non-UTF-8 text (1007).
	CloseInvalidFramePayloadData CloseCode = 1007
	// ClosePolicyViolation is a generic policy-violation code (1008).
	ClosePolicyViolation CloseCode = 1008
	// CloseMessageTooBig indicates a message too large to process (1009).
	CloseMessageTooBig CloseCode = 1009
	// CloseMandatoryExtension indicates a client-required extension the
	// server did not negotiate (1010).
	CloseMandatoryExtension CloseCode = 1010
	// CloseInternalServerErr indicates an unexpected server condition (1011).
	CloseInternalServerErr CloseCode = 1011
	// CloseServiceRestart indicates the server is restarting (1012).
	CloseServiceRestart CloseCode = 1012
	// CloseTryAgainLater indicates temporary overload (1013).
	CloseTryAgainLater CloseCode = 1013
	// CloseTLSHandshake is reserved; never sent on the wire (1015).
	CloseTLSHandshake CloseCode = 1015
)

// recognizedCloseCodes is the IANA-allowed set a peer may legally send in
// a Close frame's 2-byte status field.
var recognizedCloseCodes = map[CloseCode]bool{
	CloseNormalClosure:           true,
	CloseGoingAway:               true,
	CloseProtocolError:           true,
	CloseUnsupportedData:         true,
	CloseInvalidFramePayloadData: true,
	ClosePolicyViolation:         true,
	CloseMessageTooBig:           true,
	CloseMandatoryExtension:      true,
	CloseInternalServerErr:       true,
}

// String returns a human-readable label for the close code.
//
//nolint:cyclop // one case per RFC-defined code, an exhaustive switch is the clearest shape
func (cc CloseCode) String() string {
	switch cc {
	case CloseNormalClosure:
		return "Normal Closure"
	case CloseGoingAway:
		return "Going Away"
	case CloseProtocolError:
		return "Protocol Error"
	case CloseUnsupportedData:
		return "Unsupported Data"
	case CloseNoStatusReceived:
		return "No Status Received"
	case CloseAbnormalClosure:
		return "Abnormal Closure"
	case CloseInvalidFramePayloadData:
		return "Invalid Frame Payload Data"
	case ClosePolicyViolation:
		return "Policy Violation"
	case CloseMessageTooBig:
		return "Message Too Big"
	case CloseMandatoryExtension:
		return "Mandatory Extension"
	case CloseInternalServerErr:
		return "Internal Server Error"
	case CloseServiceRestart:
		return "Service Restart"
	case CloseTryAgainLater:
		return "Try Again Later"
	case CloseTLSHandshake:
		return "TLS Handshake"
	default:
		return "Unknown"
	}
}

// deriveCloseStatus extracts the close status from a Close frame payload.
//
// A status of 0 means "no body" or "unrecognized code": if the payload is
// not exactly 2 bytes, or decodes to a value outside the IANA-allowed
// set, the derived status is 0. Otherwise it is the big-endian uint16.
func deriveCloseStatus(payload []byte) uint16 {
	if len(payload) != 2 {
		return 0
	}
	code := CloseCode(binary.BigEndian.Uint16(payload))
	if !recognizedCloseCodes[code] {
		return 0
	}
	return uint16(code)
}

// encodeCloseStatus renders a non-zero close status as a 2-byte
// big-endian payload. A zero status renders to an empty payload (spec.md
// §4.3: "Close frames with status == 0 have an empty payload").
func encodeCloseStatus(status uint16) []byte {
	if status == 0 {
		return nil
	}
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, status)
	return buf
}
