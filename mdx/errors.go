package mdx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// Indicates that a buffer does not begin with the MDX magic. Decode
	// reports it as a warning, not as an error.
	ErrNotRecognized = errors.New("not an MDX buffer")
	// Indicates that a read or skip would pass the end of the buffer.
	ErrUnexpectedEnd = errors.New("unexpected end of buffer")
	// Indicates that the records of a chunk do not add up to its size.
	ErrChunkSizeMismatch = errors.New("chunk size mismatch")
	// Indicates bytes at the end of the buffer too few to hold a chunk header.
	ErrTrailingBytes = errors.New("trailing bytes shorter than a chunk header")
	// Indicates a chunk tag not known by the decoder. The chunk is skipped.
	ErrUnknownChunk = errors.New("unknown chunk tag")
	// Indicates a chunk that appears more than once. The last one is kept.
	ErrDuplicateChunk = errors.New("duplicate chunk")
	// Indicates that the buffer has no version chunk.
	ErrMissingVersion = errors.New("missing version chunk")
	// Indicates a track set whose frames are not in ascending order.
	ErrUnsortedTrack = errors.New("track frames are not in ascending order")
	// Indicates a record that declares more bytes than were decoded. The
	// remaining bytes are skipped.
	ErrRecordPadding = errors.New("record has unread bytes")
	// Indicates an lz4-packed buffer whose content could not be unpacked.
	ErrCorruptPacked = errors.New("corrupt packed buffer")
)

// ChunkSizeError indicates that a declared size was not matched by the
// decoded content. It matches ErrChunkSizeMismatch.
type ChunkSizeError struct {
	// Declared is the size declared by the chunk or record.
	Declared int64
	// Consumed is the number of bytes accounted for when the mismatch was
	// detected.
	Consumed int64
}

func (err ChunkSizeError) Error() string {
	return fmt.Sprintf("%s: declared %d bytes, consumed %d", ErrChunkSizeMismatch, err.Declared, err.Consumed)
}

func (err ChunkSizeError) Is(target error) bool {
	return target == ErrChunkSizeMismatch
}

// PackedError indicates a packed buffer that could not be unpacked. Decode
// reports it as a warning in place of ErrNotRecognized, which it matches.
type PackedError struct {
	Cause error
}

func (err PackedError) Error() string {
	return "packed buffer not recognized: " + err.Cause.Error()
}

func (err PackedError) Is(target error) bool {
	return target == ErrNotRecognized
}

func (err PackedError) Unwrap() error {
	return err.Cause
}

// DataError wraps an error that occurred while decoding byte data.
type DataError struct {
	// Offset is the byte offset where the error occurred.
	Offset int64

	Cause error
}

func (err DataError) Error() string {
	var s strings.Builder
	s.WriteString("data error")
	if err.Offset >= 0 {
		s.WriteString(" at ")
		s.Write(strconv.AppendInt(nil, err.Offset, 10))
	}
	if err.Cause != nil {
		s.WriteString(": ")
		s.WriteString(err.Cause.Error())
	}
	return s.String()
}

func (err DataError) Unwrap() error {
	return err.Cause
}

// ChunkError indicates an error that occurred within a chunk.
type ChunkError struct {
	// Index is the position of the chunk within the buffer.
	Index int
	// Tag is the tag of the chunk.
	Tag Tag

	Cause error
}

func (err ChunkError) Error() string {
	if err.Index < 0 {
		return fmt.Sprintf("%q chunk: %s", err.Tag.String(), err.Cause.Error())
	}
	return fmt.Sprintf("#%d %q chunk: %s", err.Index, err.Tag.String(), err.Cause.Error())
}

func (err ChunkError) Unwrap() error {
	return err.Cause
}

// indexError wraps an error that occurred within a record.
type indexError struct {
	Index int
	Cause error
}

func (err indexError) Error() string {
	return fmt.Sprintf("record #%d: %s", err.Index, err.Cause)
}

func (err indexError) Unwrap() error {
	return err.Cause
}

// TrackError indicates a problem with a track set.
type TrackError struct {
	Tag   Tag
	Cause error
}

func (err TrackError) Error() string {
	return fmt.Sprintf("%q tracks: %s", err.Tag.String(), err.Cause)
}

func (err TrackError) Unwrap() error {
	return err.Cause
}
