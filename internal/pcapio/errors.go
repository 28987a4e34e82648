package pcapio

import (
	"errors"
	"fmt"
)

// Kind categorizes codec failures at the file boundary.
type Kind string

const (
	// KindUnreadableFile indicates the file could not be opened or read.
	KindUnreadableFile Kind = "UNREADABLE_FILE"

	// KindMalformedHeader indicates the file header was not a valid
	// pcap header.
	KindMalformedHeader Kind = "MALFORMED_HEADER"

	// KindWriteFailure indicates the output file could not be created
	// or written.
	KindWriteFailure Kind = "WRITE_FAILURE"
)

// FileError is a codec failure tied to the originating path.
type FileError struct {
	Kind Kind
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap exposes the underlying error for errors.Is/As chains.
func (e *FileError) Unwrap() error {
	return e.Err
}

// IsMalformedHeader reports whether err is a malformed-header failure.
func IsMalformedHeader(err error) bool {
	return hasKind(err, KindMalformedHeader)
}

// IsUnreadableFile reports whether err is an unreadable-file failure.
func IsUnreadableFile(err error) bool {
	return hasKind(err, KindUnreadableFile)
}

// IsWriteFailure reports whether err is a write failure.
func IsWriteFailure(err error) bool {
	return hasKind(err, KindWriteFailure)
}

func hasKind(err error, kind Kind) bool {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}
