package engine

import (
	"math"

	"github.com/hanneswan/pcapedit/internal/capture"
)

// Compress divides every record's offset from the anchor timestamp by
// factor, shrinking the stream's span. The anchor (first record) keeps
// its timestamp. Record count, payloads, and length fields are
// untouched.
//
// factor must be greater than 1.0; the input must be non-empty.
func Compress(stream capture.Stream, factor float64) (capture.Stream, error) {
	if factor <= 1.0 {
		return nil, invalidParameter("time-compress", "compression factor must be greater than 1.0, got %v", factor)
	}
	return rescale(stream, 1.0/factor)
}

// Stretch multiplies every record's offset from the anchor timestamp
// by factor, widening (factor > 1) or shrinking (factor < 1) the
// stream's span. The anchor keeps its timestamp.
//
// factor must be greater than 0.0; the input must be non-empty.
func Stretch(stream capture.Stream, factor float64) (capture.Stream, error) {
	if factor <= 0.0 {
		return nil, invalidParameter("time-stretch", "stretch factor must be greater than 0.0, got %v", factor)
	}
	return rescale(stream, factor)
}

// rescale applies the shared anchor-relative skeleton. The scale is
// applied to each record's cumulative offset from the anchor, never to
// the gap from the previous record, so rounding error stays bounded by
// one unit instead of accumulating.
func rescale(stream capture.Stream, scale float64) (capture.Stream, error) {
	if len(stream) == 0 {
		return nil, emptyStream("rescale")
	}

	anchor := stream.First().Time()

	out := make(capture.Stream, 0, len(stream))
	out = append(out, stream[0].Clone())

	for i := 1; i < len(stream); i++ {
		rec := stream[i].Clone()
		delta := rec.Time() - anchor
		rec.SetTime(anchor + scaleToMicros(delta, scale))
		out = append(out, rec)
	}

	return out, nil
}

// scaleToMicros scales a nanosecond offset and rounds the result half
// away from zero to a whole microsecond, the at-rest precision. Inputs
// are whole microseconds already, so float64 represents delta/1000 *
// scale exactly enough for spans far beyond any realistic capture.
func scaleToMicros(delta capture.Nanos, scale float64) capture.Nanos {
	us := math.Round(float64(delta) / float64(capture.Microsecond) * scale)
	return capture.Nanos(us) * capture.Microsecond
}
