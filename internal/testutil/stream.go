// Package testutil provides deterministic capture streams for tests.
package testutil

import (
	"fmt"

	"github.com/hanneswan/pcapedit/internal/capture"
)

// BaseSec is the epoch second every synthetic stream starts at. A fixed
// base keeps golden files and assertions stable across runs.
const BaseSec uint32 = 1_700_000_000

// MakeStream builds a stream with one record per offset, where each
// offset is the record's distance from the base timestamp. Payloads are
// distinct ("pkt-0", "pkt-1", ...) so every record has a unique
// fingerprint.
func MakeStream(offsets ...capture.Nanos) capture.Stream {
	s := make(capture.Stream, 0, len(offsets))
	for i, off := range offsets {
		s = append(s, MakeRecord(off, fmt.Sprintf("pkt-%d", i)))
	}
	return s
}

// MakeRecord builds a single record at base+offset carrying tag as its
// payload. Both length fields are set to the payload length.
func MakeRecord(offset capture.Nanos, tag string) capture.Record {
	var r capture.Record
	r.SetTime(capture.Nanos(BaseSec)*capture.Second + offset)
	r.Payload = []byte(tag)
	r.CapturedLen = uint32(len(r.Payload))
	r.OriginalLen = uint32(len(r.Payload))
	return r
}

// EvenStream builds n records spaced gap apart, starting at the base
// timestamp.
func EvenStream(n int, gap capture.Nanos) capture.Stream {
	offsets := make([]capture.Nanos, n)
	for i := range offsets {
		offsets[i] = gap * capture.Nanos(i)
	}
	return MakeStream(offsets...)
}
