package websocket

import "crypto/rand"

// applyMask XORs data in place with the 4-byte masking key, cycling
// through the key every 4 bytes (RFC 6455 Section 5.3).
//
//	transformed-octet-i = original-octet-i XOR masking-key-octet-(i mod 4)
//
// The operation is its own inverse: applying it twice with the same key
// restores the original bytes, so the same function masks outbound
// payloads and unmasks inbound ones.
func applyMask(data []byte, key [4]byte) {
	for i := range data {
		data[i] ^= key[i%4]
	}
}

// newMaskingKey draws a fresh 4-byte masking key from a CSPRNG.
//
// RFC 6455 Section 5.3 requires the key be "derived from a strong source
// of entropy" — a predictable mask lets an attacker forge frames that
// survive a masking intermediary.
func newMaskingKey() ([4]byte, error) {
	var key [4]byte
	if _, err := rand.Read(key[:]); err != nil {
		return key, err
	}
	return key, nil
}
