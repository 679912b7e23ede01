package websocket

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"sync"
)

// deflateTrailer is appended to a permessage-deflate payload before
// feeding it to flate.Reader. RFC 7692 Section 7.2.2: a compliant sender
// strips the trailing 0x00 0x00 0xff 0xff "sync flush" marker before
// putting the payload on the wire; the receiver must add it back (plus
// one empty stored block) so compress/flate's reader sees a properly
// terminated DEFLATE stream instead of reporting an unexpected EOF.
var deflateTrailer = []byte{0x00, 0x00, 0xff, 0xff, 0x01, 0x00, 0x00, 0xff, 0xff}

// decompressorPool recycles flate.Reader instances across messages. This
// module only supports the no-context-takeover variant of
// permessage-deflate (spec.md Non-goals), so every message compresses
// and decompresses against a fresh LZ77 window — there is nothing to
// retain between Reset calls beyond the allocation itself.
var decompressorPool = sync.Pool{}

// inflate decompresses a single permessage-deflate message payload.
func inflate(payload []byte) ([]byte, error) {
	buf := make([]byte, 0, len(payload)+len(deflateTrailer))
	buf = append(buf, payload...)
	buf = append(buf, deflateTrailer...)

	br := bytes.NewReader(buf)

	d, _ := decompressorPool.Get().(io.ReadCloser)
	if d == nil {
		d = flate.NewReader(br)
	} else {
		if err := d.(flate.Resetter).Reset(br, nil); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInflateFailed, err)
		}
	}
	defer decompressorPool.Put(d)

	out, err := io.ReadAll(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInflateFailed, err)
	}
	return out, nil
}
