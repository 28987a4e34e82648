package engine

import (
	"errors"
	"fmt"
)

// OpError represents a validation failure detected before a transform
// touches any output.
//
// Validation failures include:
//   - Invalid parameter: factor outside the operation's valid range
//   - Empty stream: zero input records where at least one is required
//   - Insufficient packets: dilution factor exceeds the record count
//
// OpError carries structured fields so the CLI can render a precise
// message and pick an exit code without string matching.
type OpError struct {
	// Code identifies the error category.
	Code OpErrorCode

	// Op names the transform that rejected its input.
	Op string

	// Message is a human-readable description.
	Message string
}

// OpErrorCode categorizes validation failures.
type OpErrorCode string

const (
	// ErrCodeInvalidParameter indicates a factor outside the valid range.
	ErrCodeInvalidParameter OpErrorCode = "INVALID_PARAMETER"

	// ErrCodeEmptyStream indicates an input with zero records.
	ErrCodeEmptyStream OpErrorCode = "EMPTY_STREAM"

	// ErrCodeInsufficientPackets indicates fewer records than the
	// dilution factor requires.
	ErrCodeInsufficientPackets OpErrorCode = "INSUFFICIENT_PACKETS"
)

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidParameter reports whether err is an invalid-parameter
// failure. Uses errors.As to handle wrapped errors.
func IsInvalidParameter(err error) bool {
	return hasCode(err, ErrCodeInvalidParameter)
}

// IsEmptyStream reports whether err is an empty-stream failure.
func IsEmptyStream(err error) bool {
	return hasCode(err, ErrCodeEmptyStream)
}

// IsInsufficientPackets reports whether err is an insufficient-packets
// failure.
func IsInsufficientPackets(err error) bool {
	return hasCode(err, ErrCodeInsufficientPackets)
}

func hasCode(err error, code OpErrorCode) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == code
	}
	return false
}

func invalidParameter(op, format string, args ...any) *OpError {
	return &OpError{Code: ErrCodeInvalidParameter, Op: op, Message: fmt.Sprintf(format, args...)}
}

func emptyStream(op string) *OpError {
	return &OpError{Code: ErrCodeEmptyStream, Op: op, Message: "input contains no records"}
}
