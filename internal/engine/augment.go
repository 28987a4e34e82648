package engine

import (
	"github.com/hanneswan/pcapedit/internal/capture"
)

// Augment raises the record count to n*m while preserving the original
// first-to-last span. Output record i carries the content of input
// record i mod n, with a freshly computed timestamp: the n*m outputs
// are evenly spaced across the span at the fixed interval
// span / (n*m - 1). Original timestamps are discarded.
//
// m must be at least 2; the input must be non-empty.
func Augment(stream capture.Stream, m int) (capture.Stream, error) {
	if m < 2 {
		return nil, invalidParameter("augment", "multiplier must be greater than 1, got %d", m)
	}
	if len(stream) == 0 {
		return nil, emptyStream("augment")
	}

	first := stream.First().Time()
	span := stream.Span()

	targetCount := len(stream) * m
	var interval capture.Nanos
	if targetCount > 1 {
		interval = span / capture.Nanos(targetCount-1)
	}

	out := make(capture.Stream, 0, targetCount)
	for i := 0; i < targetCount; i++ {
		rec := stream[i%len(stream)].Clone()
		rec.SetTime(first + interval*capture.Nanos(i))
		out = append(out, rec)
	}

	return out, nil
}
