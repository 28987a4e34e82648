// Package disorder checks a capture stream for timestamp-ordering
// violations.
//
// The check is a single forward pass: a record whose timestamp is
// earlier than its predecessor's is a violation. Violations are
// results, not errors; they never halt the pass, and a report with zero
// violations is a successful, clean run.
//
// Truncated input is a separate, also non-fatal condition: the codec
// reports how many bytes of the file it actually consumed, and a
// shortfall means the record count in the report covers only part of
// the file.
package disorder

import (
	"github.com/hanneswan/pcapedit/internal/capture"
)

// Violation is one out-of-order record.
type Violation struct {
	// Index is the position of the offending record in the stream.
	Index int

	// Previous and Current are the timestamps either side of the
	// violation; Current < Previous.
	Previous capture.Nanos
	Current  capture.Nanos
}

// Delta returns how far backwards the timestamp jumped.
func (v Violation) Delta() capture.Nanos {
	return v.Previous - v.Current
}

// Report is the terminal output of a detection pass.
type Report struct {
	// RecordCount is the number of records examined.
	RecordCount int

	// Violations lists every backwards timestamp jump, in stream order.
	Violations []Violation

	// Truncated is set when the codec could not consume the whole
	// file; TrailingBytes is how much was left unread. Distinct from
	// ordering violations.
	Truncated     bool
	TrailingBytes int64
}

// Clean reports whether the pass found nothing to complain about.
func (r *Report) Clean() bool {
	return len(r.Violations) == 0 && !r.Truncated
}

// Detect runs the single-pass monotonicity check over stream.
// Truncation fields are left for the caller to fill in from the codec,
// since only the codec knows the file position.
func Detect(stream capture.Stream) *Report {
	rep := &Report{RecordCount: len(stream)}

	for i := 1; i < len(stream); i++ {
		prev := stream[i-1].Time()
		cur := stream[i].Time()
		if cur < prev {
			rep.Violations = append(rep.Violations, Violation{
				Index:    i,
				Previous: prev,
				Current:  cur,
			})
		}
	}

	return rep
}
