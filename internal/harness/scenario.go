package harness

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hanneswan/pcapedit/internal/capture"
)

// Scenario defines one conformance scenario: a synthetic input stream,
// an operation with its parameters, and the expected outcome.
type Scenario struct {
	// Name uniquely identifies the scenario; it is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what the scenario pins down.
	Description string `yaml:"description,omitempty"`

	// Stream describes the input records as offsets from a fixed base
	// timestamp, each carrying a distinct payload tag.
	Stream []StreamStep `yaml:"stream"`

	// Operation is one of time-compress, time-stretch, dilute,
	// augment, disorder-detect, compare.
	Operation string `yaml:"operation"`

	// Factor parameterizes the four transforms. Integer-factor
	// operations truncate it.
	Factor float64 `yaml:"factor,omitempty"`

	// Against is the comparison stream for the compare operation.
	Against []StreamStep `yaml:"against,omitempty"`

	// IgnoreTimestamp selects the compare fingerprint mode.
	IgnoreTimestamp bool `yaml:"ignore_timestamp,omitempty"`

	Expect Expect `yaml:"expect"`
}

// StreamStep is one synthetic record.
type StreamStep struct {
	// At is the record's offset from the base timestamp, in
	// time.ParseDuration syntax ("150us", "2ms", "1s").
	At string `yaml:"at"`

	// Tag becomes the record's payload, so every distinct tag has a
	// distinct fingerprint.
	Tag string `yaml:"tag"`
}

// Expect lists the assertions evaluated against the outcome. Absent
// fields are not checked.
type Expect struct {
	// Error is the expected failure code ("INVALID_PARAMETER", ...).
	// Empty means the operation must succeed.
	Error string `yaml:"error,omitempty"`

	// Count is the expected output record count (transforms only).
	Count *int `yaml:"count,omitempty"`

	// Offsets are the expected output record offsets from base.
	Offsets []string `yaml:"offsets,omitempty"`

	// Violations are the expected out-of-order indices.
	Violations []int `yaml:"violations,omitempty"`

	// Missing and Extra are the expected diff indices.
	Missing []int `yaml:"missing,omitempty"`
	Extra   []int `yaml:"extra,omitempty"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if !knownOperation(sc.Operation) {
		return nil, fmt.Errorf("scenario %s: unknown operation %q", path, sc.Operation)
	}
	if _, err := buildStream(sc.Stream); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if _, err := buildStream(sc.Against); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

func knownOperation(op string) bool {
	switch op {
	case "time-compress", "time-stretch", "dilute", "augment", "disorder-detect", "compare":
		return true
	}
	return false
}

// buildStream materializes scenario steps into records anchored at the
// fixed base timestamp.
func buildStream(steps []StreamStep) (capture.Stream, error) {
	s := make(capture.Stream, 0, len(steps))
	for i, step := range steps {
		off, err := time.ParseDuration(step.At)
		if err != nil {
			return nil, fmt.Errorf("step %d: bad offset %q: %w", i, step.At, err)
		}
		var rec capture.Record
		rec.SetTime(base + capture.Nanos(off.Nanoseconds()))
		rec.Payload = []byte(step.Tag)
		rec.CapturedLen = uint32(len(rec.Payload))
		rec.OriginalLen = uint32(len(rec.Payload))
		s = append(s, rec)
	}
	return s, nil
}
