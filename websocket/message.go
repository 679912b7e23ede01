package websocket

// Kind identifies which variant of Message a value holds.
type Kind int

const (
	// KindText carries a UTF-8 validated string in Message.Text.
	KindText Kind = iota
	// KindBinary carries arbitrary bytes in Message.Data.
	KindBinary
	// KindClose carries a status code in Message.CloseStatus. A status
	// of 0 means "no body" or "unrecognized code".
	KindClose
	// KindPing carries optional application data in Message.Data.
	KindPing
	// KindPong carries optional application data in Message.Data,
	// normally echoing a prior Ping's data.
	KindPong
)

// String returns a human-readable label for the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindBinary:
		return "Binary"
	case KindClose:
		return "Close"
	case KindPing:
		return "Ping"
	case KindPong:
		return "Pong"
	default:
		return "Unknown"
	}
}

// Message is the tagged union of application-level values exchanged over
// a Session's Incoming/Outgoing channels (spec.md §3). Only the field
// matching Kind is meaningful.
type Message struct {
	Kind        Kind
	Text        string
	Data        []byte
	CloseStatus uint16
}

// TextMessage builds a KindText Message. Callers writing to
// Session.Outgoing must supply valid UTF-8; the writer rejects anything
// else.
func TextMessage(s string) Message {
	return Message{Kind: KindText, Text: s}
}

// BinaryMessage builds a KindBinary Message.
func BinaryMessage(data []byte) Message {
	return Message{Kind: KindBinary, Data: data}
}

// CloseMessage builds a KindClose Message with the given status. Pass 0
// for a bodiless close frame.
func CloseMessage(status uint16) Message {
	return Message{Kind: KindClose, CloseStatus: status}
}

// PingMessage builds a KindPing Message. data must be 125 bytes or
// fewer; the writer rejects longer control frame payloads.
func PingMessage(data []byte) Message {
	return Message{Kind: KindPing, Data: data}
}

// PongMessage builds a KindPong Message, normally echoing the data of
// the Ping being answered.
func PongMessage(data []byte) Message {
	return Message{Kind: KindPong, Data: data}
}
