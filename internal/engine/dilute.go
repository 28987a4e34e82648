package engine

import (
	"fmt"

	"github.com/hanneswan/pcapedit/internal/capture"
)

// Dilute reduces the record count to floor(n/k) while preserving the
// original first-to-last span. For each of the target_count ideal
// evenly spaced instants across the span (the first ideal instant is
// the first record's timestamp), the nearest not-yet-selected record is
// kept. Kept records retain their original timestamps and their
// relative order.
//
// k must be at least 2, and the stream must contain at least k records.
func Dilute(stream capture.Stream, k int) (capture.Stream, error) {
	if k < 2 {
		return nil, invalidParameter("dilute", "dilution factor must be greater than 1, got %d", k)
	}
	if len(stream) == 0 {
		return nil, emptyStream("dilute")
	}
	if len(stream) < k {
		return nil, &OpError{
			Code:    ErrCodeInsufficientPackets,
			Op:      "dilute",
			Message: fmt.Sprintf("stream has %d records, fewer than dilution factor %d", len(stream), k),
		}
	}

	first := stream.First().Time()
	span := stream.Span()

	targetCount := len(stream) / k
	interval := span / capture.Nanos(targetCount)

	out := make(capture.Stream, 0, targetCount)
	target := first
	cursor := 0

	for i := 0; i < targetCount; i++ {
		if i > 0 {
			target += interval
		}
		if cursor >= len(stream) {
			// Disordered input can exhaust the scan early; reuse the
			// tail rather than run off the end.
			cursor = len(stream) - 1
		}

		// Forward scan from the cursor for the record closest to the
		// target. Timestamps ahead of the cursor are assumed
		// monotonic, so once the distance starts growing the best
		// candidate is behind us and the scan can stop.
		best := cursor
		bestDist := capture.Nanos(1<<63 - 1)
		for j := cursor; j < len(stream); j++ {
			dist := (stream[j].Time() - target).Abs()
			if dist < bestDist {
				bestDist = dist
				best = j
			} else if dist > bestDist {
				break
			}
		}

		cursor = best + 1
		out = append(out, stream[best].Clone())
	}

	return out, nil
}
