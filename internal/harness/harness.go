// Package harness runs YAML-defined conformance scenarios against the
// transform engine, the disorder detector, and the comparator.
//
// A scenario materializes a synthetic capture stream from relative
// offsets, runs exactly one operation on it, and checks the outcome
// against the scenario's expectations. The rendered outcome report is
// additionally compared against a golden file, so any behavioral drift
// shows up as a readable diff. To regenerate golden files:
//
//	go test ./internal/harness -update
package harness

import (
	"errors"
	"fmt"

	"github.com/hanneswan/pcapedit/internal/capture"
	"github.com/hanneswan/pcapedit/internal/compare"
	"github.com/hanneswan/pcapedit/internal/disorder"
	"github.com/hanneswan/pcapedit/internal/engine"
)

// base is the fixed anchor timestamp for every synthetic stream. A
// constant base keeps golden files stable.
const base = capture.Nanos(1_700_000_000) * capture.Second

// Outcome is what running a scenario produced.
type Outcome struct {
	// ErrCode is the failure code, or "none" on success.
	ErrCode string

	// Output is the transform result, nil for detect/compare and on
	// failure.
	Output capture.Stream

	// Report is the disorder-detect result.
	Report *disorder.Report

	// Diff is the compare result.
	Diff *compare.Result
}

// Run executes the scenario's operation on its materialized streams.
func Run(sc *Scenario) (*Outcome, error) {
	stream, err := buildStream(sc.Stream)
	if err != nil {
		return nil, err
	}

	out := &Outcome{ErrCode: "none"}

	switch sc.Operation {
	case "time-compress":
		out.Output, err = engine.Compress(stream, sc.Factor)
	case "time-stretch":
		out.Output, err = engine.Stretch(stream, sc.Factor)
	case "dilute":
		out.Output, err = engine.Dilute(stream, int(sc.Factor))
	case "augment":
		out.Output, err = engine.Augment(stream, int(sc.Factor))
	case "disorder-detect":
		out.Report = disorder.Detect(stream)
	case "compare":
		against, aerr := buildStream(sc.Against)
		if aerr != nil {
			return nil, aerr
		}
		out.Diff = compare.Streams(stream, against, compare.Options{IgnoreTimestamp: sc.IgnoreTimestamp})
	default:
		return nil, fmt.Errorf("unknown operation %q", sc.Operation)
	}

	if err != nil {
		out.Output = nil
		var oe *engine.OpError
		if errors.As(err, &oe) {
			out.ErrCode = string(oe.Code)
		} else {
			return nil, err
		}
	}

	return out, nil
}

// Check evaluates the scenario's expectations against the outcome and
// returns one message per failed expectation.
func Check(sc *Scenario, out *Outcome) []string {
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	wantErr := sc.Expect.Error
	if wantErr == "" {
		wantErr = "none"
	}
	if out.ErrCode != wantErr {
		fail("error: want %s, got %s", wantErr, out.ErrCode)
	}

	if sc.Expect.Count != nil && len(out.Output) != *sc.Expect.Count {
		fail("count: want %d, got %d", *sc.Expect.Count, len(out.Output))
	}

	if len(sc.Expect.Offsets) > 0 {
		if len(sc.Expect.Offsets) != len(out.Output) {
			fail("offsets: want %d records, got %d", len(sc.Expect.Offsets), len(out.Output))
		} else {
			for i, want := range sc.Expect.Offsets {
				if got := renderOffset(out.Output[i].Time() - base); got != want {
					fail("offset %d: want %s, got %s", i, want, got)
				}
			}
		}
	}

	if len(sc.Expect.Violations) > 0 || out.Report != nil {
		var got []int
		if out.Report != nil {
			for _, v := range out.Report.Violations {
				got = append(got, v.Index)
			}
		}
		if !equalInts(sc.Expect.Violations, got) {
			fail("violations: want %v, got %v", sc.Expect.Violations, got)
		}
	}

	if out.Diff != nil {
		var missing, extra []int
		for _, e := range out.Diff.Missing {
			missing = append(missing, e.Index)
		}
		for _, e := range out.Diff.Extra {
			extra = append(extra, e.Index)
		}
		if !equalInts(sc.Expect.Missing, missing) {
			fail("missing: want %v, got %v", sc.Expect.Missing, missing)
		}
		if !equalInts(sc.Expect.Extra, extra) {
			fail("extra: want %v, got %v", sc.Expect.Extra, extra)
		}
	}

	return failures
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
