package compare

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/hanneswan/pcapedit/internal/capture"
)

// Fingerprint summarizes a record's content as a 64-bit hash for
// equality comparison.
//
// ignoreTimestamp selects what participates in the hash:
//   - true:  big-endian captured length ++ big-endian original length
//     ++ payload bytes
//   - false: payload bytes only
//
// QUIRK: timestamp bytes are never hashed in either mode; the only
// behavioral difference between the modes is whether the two length
// fields participate. A reader would expect the non-ignoring mode to
// hash timestamps, but this matches the tool's long-standing observable
// behavior, and callers rely on compare being insensitive to timestamp
// rewrites. Pinned by TestFingerprintIgnoresTimestampInBothModes.
func Fingerprint(rec *capture.Record, ignoreTimestamp bool) uint64 {
	d := xxhash.New()

	if ignoreTimestamp {
		var lens [8]byte
		binary.BigEndian.PutUint32(lens[0:4], rec.CapturedLen)
		binary.BigEndian.PutUint32(lens[4:8], rec.OriginalLen)
		_, _ = d.Write(lens[:])
	}
	_, _ = d.Write(rec.Payload)

	return d.Sum64()
}

// fingerprintStream computes the fingerprint of every record, in
// stream order.
func fingerprintStream(stream capture.Stream, ignoreTimestamp bool) []uint64 {
	sums := make([]uint64, len(stream))
	for i := range stream {
		sums[i] = Fingerprint(&stream[i], ignoreTimestamp)
	}
	return sums
}

// fingerprintBoth computes both streams' fingerprints concurrently.
// Order within each stream is preserved; the two streams share nothing,
// so no further coordination is needed.
func fingerprintBoth(ref, cmp capture.Stream, ignoreTimestamp bool) (refSums, cmpSums []uint64) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		cmpSums = fingerprintStream(cmp, ignoreTimestamp)
	}()
	refSums = fingerprintStream(ref, ignoreTimestamp)
	wg.Wait()
	return refSums, cmpSums
}
