package websocket

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReadFrame_TextUnmasked(t *testing.T) {
	data := []byte{0x81, 0x05, 'H', 'e', 'l', 'l', 'o'}

	f, err := readFrame(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("readFrame failed: %v", err)
	}
	if !f.fin {
		t.Error("expected fin=true")
	}
	if f.opcode != opcodeText {
		t.Errorf("expected opcode text, got 0x%x", f.opcode)
	}
	if f.masked {
		t.Error("expected masked=false")
	}
	if string(f.payload) != "Hello" {
		t.Errorf("expected payload %q, got %q", "Hello", f.payload)
	}
}

func TestReadFrame_TextMasked(t *testing.T) {
	payload := []byte("Hello")
	key := [4]byte{0x12, 0x34, 0x56, 0x78}
	masked := append([]byte(nil), payload...)
	applyMask(masked, key)

	data := []byte{0x81, 0x85, key[0], key[1], key[2], key[3]}
	data = append(data, masked...)

	f, err := readFrame(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("readFrame failed: %v", err)
	}
	if !f.masked {
		t.Error("expected masked=true")
	}
	if f.maskingKey != key {
		t.Errorf("expected key %v, got %v", key, f.maskingKey)
	}
	if string(f.payload) != "Hello" {
		t.Errorf("expected unmasked payload %q, got %q", "Hello", f.payload)
	}
}

func TestReadFrame_EOFAtBoundary(t *testing.T) {
	_, err := readFrame(bytes.NewReader(nil))
	if err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReadFrame_EOFMidFrame(t *testing.T) {
	// Header claims a 5-byte payload but only 2 bytes follow.
	data := []byte{0x81, 0x05, 'H', 'e'}
	_, err := readFrame(bytes.NewReader(data))
	if err == nil || err == io.EOF {
		t.Fatalf("expected wrapped I/O error, got %v", err)
	}
}

func TestReadFrame_InvalidOpcode(t *testing.T) {
	data := []byte{0x83, 0x00} // opcode 0x3 is reserved
	_, err := readFrame(bytes.NewReader(data))
	var wh *WrongHeaderError
	if !errors.As(err, &wh) {
		t.Fatalf("expected WrongHeaderError, got %v", err)
	}
}

func TestReadFrame_FragmentedControlFrameRejected(t *testing.T) {
	data := []byte{0x09, 0x00} // fin=0, opcode=ping
	_, err := readFrame(bytes.NewReader(data))
	var wh *WrongHeaderError
	if !errors.As(err, &wh) {
		t.Fatalf("expected WrongHeaderError, got %v", err)
	}
}

func TestReadFrame_ControlFrameTooLarge(t *testing.T) {
	data := []byte{0x89, 126, 0x00, 0x7e} // ping, 16-bit length 126 exceeds 125-byte control limit
	_, err := readFrame(bytes.NewReader(data))
	var wh *WrongHeaderError
	if !errors.As(err, &wh) {
		t.Fatalf("expected WrongHeaderError, got %v", err)
	}
}

// TestReadFrame_16BitLengthBoundary pins the exact header bytes spec.md
// §8 scenario 2 describes for a 126-byte text message.
func TestReadFrame_16BitLengthBoundary(t *testing.T) {
	payload := strings.Repeat("a", 126)
	f := &frame{fin: true, opcode: opcodeText, payload: []byte(payload)}

	var buf bytes.Buffer
	if err := writeFrame(&buf, f); err != nil {
		t.Fatalf("writeFrame failed: %v", err)
	}

	header := buf.Bytes()[:4]
	want := []byte{0x81, 0x7e, 0x00, 0x7e}
	if !bytes.Equal(header, want) {
		t.Errorf("expected header % x, got % x", want, header)
	}

	got, err := readFrame(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("readFrame failed: %v", err)
	}
	if string(got.payload) != payload {
		t.Error("round-tripped payload mismatch")
	}
}

// TestWriteFrame_64BitLengthBoundary pins the exact header bytes spec.md
// §8 scenario 3 describes for a 65536-byte binary message.
func TestWriteFrame_64BitLengthBoundary(t *testing.T) {
	payload := make([]byte, 65536)
	f := &frame{fin: true, opcode: opcodeBinary, payload: payload}

	var buf bytes.Buffer
	if err := writeFrame(&buf, f); err != nil {
		t.Fatalf("writeFrame failed: %v", err)
	}

	header := buf.Bytes()[:10]
	want := []byte{0x82, 0x7f, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00}
	if !bytes.Equal(header, want) {
		t.Errorf("expected header % x, got % x", want, header)
	}
}

func TestFrameRoundTrip_VariousLengths(t *testing.T) {
	lengths := []int{0, 1, 125, 126, 65535, 65536, 1024 * 1024}

	for _, n := range lengths {
		payload := make([]byte, n)
		for i := range payload {
			payload[i] = byte(i)
		}

		for _, masked := range []bool{false, true} {
			f := &frame{fin: true, opcode: opcodeBinary, masked: masked, payload: payload}
			if masked {
				key, err := newMaskingKey()
				if err != nil {
					t.Fatalf("newMaskingKey failed: %v", err)
				}
				f.maskingKey = key
			}

			var buf bytes.Buffer
			if err := writeFrame(&buf, f); err != nil {
				t.Fatalf("len=%d masked=%v: writeFrame failed: %v", n, masked, err)
			}

			got, err := readFrame(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("len=%d masked=%v: readFrame failed: %v", n, masked, err)
			}
			if !bytes.Equal(got.payload, payload) {
				t.Errorf("len=%d masked=%v: payload mismatch after round trip", n, masked)
			}
		}
	}
}

func TestWriteFrame_NeverMutatesCallerPayload(t *testing.T) {
	payload := []byte("don't touch me")
	original := append([]byte(nil), payload...)

	key, err := newMaskingKey()
	if err != nil {
		t.Fatalf("newMaskingKey failed: %v", err)
	}
	f := &frame{fin: true, opcode: opcodeText, masked: true, maskingKey: key, payload: payload}

	var buf bytes.Buffer
	if err := writeFrame(&buf, f); err != nil {
		t.Fatalf("writeFrame failed: %v", err)
	}

	if !bytes.Equal(payload, original) {
		t.Error("writeFrame mutated the caller's payload slice")
	}
}
