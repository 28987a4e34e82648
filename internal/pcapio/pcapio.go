// Package pcapio is the capture-file codec: it loads a pcap file into
// a capture.Stream and writes a stream back out.
//
// The on-disk format is the classical pcap layout, a fixed file header
// followed by per-record headers and payload bytes, in the byte order
// declared by the header's magic number. Parsing is delegated to
// gopacket's pcapgo; this package adds the stream materialization, the
// consumed-byte accounting that the disorder detector needs to flag
// truncated input, and typed errors carrying the originating path.
//
// Timestamps are microseconds at rest. Nanosecond-resolution files
// load fine; the sub-microsecond digits are dropped, and output is
// always written with the microsecond magic.
package pcapio

import (
	"io"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/hanneswan/pcapedit/internal/capture"
)

// DefaultSnaplen is used when writing a stream that did not come from
// a file, so no snap length was ever declared.
const DefaultSnaplen uint32 = 65536

// Header is the file-level metadata a load carries alongside the
// stream, so a transform's output can be written with the same link
// type and snap length as its input.
type Header struct {
	LinkType layers.LinkType
	Snaplen  uint32
}

// LoadResult is a materialized stream plus the byte accounting for
// truncation detection.
type LoadResult struct {
	Stream capture.Stream
	Header Header

	// FileSize and BytesRead let the disorder detector tell "file ended"
	// from "parser gave up mid-record".
	FileSize  int64
	BytesRead int64

	// DecodeErr is the record-level error that stopped reading, nil on
	// a clean EOF. Records read before the error are kept.
	DecodeErr error
}

// Truncated reports whether the codec stopped before consuming the
// whole file.
func (r *LoadResult) Truncated() bool {
	return r.BytesRead < r.FileSize
}

// TrailingBytes returns how many bytes were left unread.
func (r *LoadResult) TrailingBytes() int64 {
	return r.FileSize - r.BytesRead
}

// countingReader tracks how many bytes the pcap parser has consumed.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Load reads the whole capture file at path into memory.
//
// A file that cannot be opened fails with UNREADABLE_FILE; a bad file
// header fails with MALFORMED_HEADER. A record-level decode error does
// not fail the load: everything read so far is returned and the error
// is surfaced through DecodeErr and the truncation accounting, matching
// how the detector reports partially readable files.
func Load(path string) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Kind: KindUnreadableFile, Path: path, Err: err}
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, &FileError{Kind: KindUnreadableFile, Path: path, Err: err}
	}

	cr := &countingReader{r: f}
	pr, err := pcapgo.NewReader(cr)
	if err != nil {
		return nil, &FileError{Kind: KindMalformedHeader, Path: path, Err: err}
	}

	res := &LoadResult{
		Header:   Header{LinkType: pr.LinkType(), Snaplen: pr.Snaplen()},
		FileSize: st.Size(),
	}

	for {
		data, ci, err := pr.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.DecodeErr = err
			break
		}

		rec := capture.Record{
			TsSec:       uint32(ci.Timestamp.Unix()),
			TsUsec:      uint32(ci.Timestamp.Nanosecond() / 1000),
			CapturedLen: uint32(ci.CaptureLength),
			OriginalLen: uint32(ci.Length),
			Payload:     append([]byte(nil), data...),
		}
		res.Stream = append(res.Stream, rec)

		// Snapshot after each whole record so a failed read does not
		// count its partial bytes as consumed.
		res.BytesRead = cr.n
	}
	if res.DecodeErr == nil {
		res.BytesRead = cr.n
	}

	return res, nil
}

// Save writes stream to path with hdr's link type and snap length.
// Callers validate parameters and emptiness before calling Save, so a
// rejected operation never leaves a partial output file behind.
func Save(path string, hdr Header, stream capture.Stream) error {
	snaplen := hdr.Snaplen
	if snaplen == 0 {
		snaplen = DefaultSnaplen
	}

	f, err := os.Create(path)
	if err != nil {
		return &FileError{Kind: KindWriteFailure, Path: path, Err: err}
	}

	pw := pcapgo.NewWriter(f)
	if err := pw.WriteFileHeader(snaplen, hdr.LinkType); err != nil {
		f.Close()
		return &FileError{Kind: KindWriteFailure, Path: path, Err: err}
	}

	for i := range stream {
		rec := &stream[i]
		ci := gopacket.CaptureInfo{
			Timestamp:     time.Unix(int64(rec.TsSec), int64(rec.TsUsec)*1000).UTC(),
			CaptureLength: len(rec.Payload),
			Length:        int(rec.OriginalLen),
		}
		if err := pw.WritePacket(ci, rec.Payload); err != nil {
			f.Close()
			return &FileError{Kind: KindWriteFailure, Path: path, Err: err}
		}
	}

	if err := f.Close(); err != nil {
		return &FileError{Kind: KindWriteFailure, Path: path, Err: err}
	}
	return nil
}
