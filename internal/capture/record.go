package capture

import "fmt"

// Nanos is an instant or duration on the single integer time axis used
// for all timestamp arithmetic. One unit is one nanosecond.
type Nanos int64

// Microsecond spans expressed in Nanos.
const (
	Microsecond Nanos = 1_000
	Second      Nanos = 1_000_000_000
)

// Abs returns the absolute value of n.
func (n Nanos) Abs() Nanos {
	if n < 0 {
		return -n
	}
	return n
}

// Seconds renders n as fractional seconds, for human-readable reports.
func (n Nanos) Seconds() float64 {
	return float64(n) / float64(Second)
}

// Record is one captured unit: a timestamp, the two declared length
// fields from the record header, and the captured payload bytes.
type Record struct {
	// TsSec and TsUsec form the at-rest timestamp. The pair is kept
	// normalized: 0 <= TsUsec < 1_000_000.
	TsSec  uint32
	TsUsec uint32

	// CapturedLen is the number of payload bytes present in the file.
	// OriginalLen is the length of the packet on the wire, which may
	// be larger when the capture was truncated by a snap length.
	CapturedLen uint32
	OriginalLen uint32

	Payload []byte
}

// Time returns the record's timestamp on the nanosecond axis.
func (r *Record) Time() Nanos {
	return Nanos(r.TsSec)*Second + Nanos(r.TsUsec)*Microsecond
}

// SetTime writes ts back into the (seconds, microseconds) pair,
// normalizing the carry. Sub-microsecond remainders are truncated;
// transforms round to whole microseconds before calling SetTime, so in
// practice nothing is lost on the way back to the at-rest precision.
func (r *Record) SetTime(ts Nanos) {
	if ts < 0 {
		ts = 0
	}
	r.TsSec = uint32(ts / Second)
	r.TsUsec = uint32((ts % Second) / Microsecond)
}

// Clone returns a deep copy of the record. Payload bytes are copied so
// the clone shares no memory with the original.
func (r *Record) Clone() Record {
	c := *r
	c.Payload = append([]byte(nil), r.Payload...)
	return c
}

// String renders the record header for diagnostics.
func (r *Record) String() string {
	return fmt.Sprintf("record ts=%d.%06d caplen=%d origlen=%d", r.TsSec, r.TsUsec, r.CapturedLen, r.OriginalLen)
}

// Stream is an ordered sequence of records in capture order.
type Stream []Record

// First returns a pointer to the first record. The stream must be
// non-empty.
func (s Stream) First() *Record {
	return &s[0]
}

// Last returns a pointer to the last record. The stream must be
// non-empty.
func (s Stream) Last() *Record {
	return &s[len(s)-1]
}

// Span returns the duration between the first and last record. An
// empty or single-record stream has zero span.
func (s Stream) Span() Nanos {
	if len(s) < 2 {
		return 0
	}
	return s.Last().Time() - s.First().Time()
}

// Clone deep-copies the stream, including payload bytes.
func (s Stream) Clone() Stream {
	out := make(Stream, len(s))
	for i := range s {
		out[i] = s[i].Clone()
	}
	return out
}
