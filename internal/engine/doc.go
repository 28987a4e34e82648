// Package engine implements the timestamp transforms: Compress,
// Stretch, Dilute, and Augment.
//
// All four operate on a fully materialized capture.Stream and produce a
// new, independently owned stream; the input is never written to an
// output file, so a validation failure can never leave a partial file
// behind.
//
// Compress and Stretch share one skeleton: the first record's timestamp
// is the anchor and is written back unchanged, and every later record
// is moved to anchor + scale(cumulative offset from anchor). The scale
// is always applied to the cumulative offset, never to the gap from the
// previous record, so rounding error cannot accumulate across the
// stream. Rounding is half away from zero at whole-microsecond
// granularity, which keeps the at-rest microsecond precision exact.
//
// Dilute and Augment change record density while preserving the
// stream's span. Dilute keeps floor(n/k) records, picking for each
// ideal evenly spaced target the nearest not-yet-selected record;
// selected records keep their original timestamps. Augment emits n*m
// records cycled from the input, discarding original timestamps in
// favor of uniform spacing across the span.
//
// Everything here is single-threaded and deterministic: same input,
// same parameters, same output.
package engine
