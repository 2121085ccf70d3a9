package mdx

import (
	"bytes"

	"github.com/mdlxkit/mdlx"
	"github.com/mdlxkit/mdlx/errors"
	"golang.org/x/text/encoding/charmap"
)

// Decoder decodes a buffer of bytes into an mdlx.Model. The zero value is
// ready to use.
type Decoder struct {
	// Charmap decodes the bytes of fixed-length names that fall outside of
	// ASCII. If nil, Windows-1252 is used.
	Charmap *charmap.Charmap

	// KeepRawNames, if true, leaves names as raw bytes, ignoring Charmap.
	KeepRawNames bool

	// Stats, if not nil, is filled in with statistics about the decoded
	// buffer.
	Stats *DecoderStats
}

// DecoderStats contains statistics generated while decoding a buffer.
type DecoderStats struct {
	// Packed is whether the buffer was lz4-packed.
	Packed bool

	// Size is the size of the unpacked buffer.
	Size int

	// Chunks lists each chunk in the order it appears.
	Chunks []ChunkStat

	// Warnings is the number of warnings produced.
	Warnings int
}

// ChunkStat describes one chunk of a buffer.
type ChunkStat struct {
	Tag Tag
	// Offset is the position of the payload within the buffer.
	Offset int64
	Size   uint32
	// Known is whether the decoder recognized the tag.
	Known bool
	// Records is the number of records decoded from the chunk.
	Records int
}

// Recognize returns whether buf begins with the magic of an MDX buffer, or
// of an lz4-packed MDX buffer. The content of a packed buffer is not checked.
func Recognize(buf []byte) bool {
	if IsPacked(buf) {
		return true
	}
	return bytes.HasPrefix(buf, []byte(Magic))
}

// Decode decodes buf with the default Decoder, discarding warnings.
func Decode(buf []byte) (model *mdlx.Model, err error) {
	model, _, err = Decoder{}.Decode(buf)
	return model, err
}

// Decode decodes buf into a Model.
//
// If buf does not begin with the MDX magic, then model and err are nil, and
// warn reports ErrNotRecognized. A packed buffer that cannot be unpacked is
// reported the same way, with a PackedError holding the cause. Any other problem that prevents decoding
// the whole buffer is returned as err, and no model is returned. Conditions
// that do not prevent decoding, such as unknown chunks, are returned as
// warn.
func (d Decoder) Decode(buf []byte) (model *mdlx.Model, warn, err error) {
	if d.Stats != nil {
		*d.Stats = DecoderStats{}
	}

	if IsPacked(buf) {
		unpacked, err := Unpack(buf)
		if err != nil {
			return nil, PackedError{Cause: err}, nil
		}
		buf = unpacked
		if d.Stats != nil {
			d.Stats.Packed = true
		}
	}

	if !bytes.HasPrefix(buf, []byte(Magic)) {
		return nil, ErrNotRecognized, nil
	}

	names := d.Charmap
	if names == nil {
		names = charmap.Windows1252
	}
	if d.KeepRawNames {
		names = nil
	}

	state := &decodeState{
		model: &mdlx.Model{},
		stats: d.Stats,
	}
	r := newReader(buf, 0, names)
	r.Skip(len(Magic))
	err = state.decodeChunks(r)
	if d.Stats != nil {
		d.Stats.Size = len(buf)
		d.Stats.Warnings = len(state.warns)
	}
	if err != nil {
		return nil, state.warns.Return(), err
	}
	return state.model, state.warns.Return(), nil
}

// decodeState holds the state of a single decode.
type decodeState struct {
	model *mdlx.Model
	warns errors.Errors
	stats *DecoderStats

	// Index of the current chunk, and its tag.
	chunk    int
	chunkTag Tag
	seen     [chunkCount]bool
}

func (d *decodeState) warn(err error) {
	d.warns = append(d.warns, ChunkError{Index: d.chunk, Tag: d.chunkTag, Cause: err})
}

// records notes the number of records decoded from the current chunk.
func (d *decodeState) records(n int) {
	if d.stats != nil && len(d.stats.Chunks) > 0 {
		d.stats.Chunks[len(d.stats.Chunks)-1].Records = n
	}
}

func decodeError(r *reader, err error) error {
	if err == nil {
		err = r.Err()
	}
	if err == nil {
		return nil
	}
	return DataError{Offset: r.Offset(), Cause: err}
}

// decodeChunks reads chunks until r is exhausted.
func (d *decodeState) decodeChunks(r *reader) error {
	for i := 0; r.Remaining() > 0; i++ {
		if r.Remaining() < chunkHeaderSize {
			return decodeError(r, ErrTrailingBytes)
		}

		var tag Tag
		var size uint32
		if r.Bytes(tag[:]) || r.Number(&size) {
			return decodeError(r, nil)
		}
		d.chunk, d.chunkTag = i, tag

		offset := r.Offset()
		id, known := lookupChunk(tag)
		if d.stats != nil {
			d.stats.Chunks = append(d.stats.Chunks, ChunkStat{
				Tag:    tag,
				Offset: offset,
				Size:   size,
				Known:  known,
			})
		}

		payload, failed := r.Sub(int(size))
		if failed {
			return ChunkError{Index: i, Tag: tag, Cause: decodeError(r, nil)}
		}
		if !known {
			d.warn(ErrUnknownChunk)
			continue
		}
		if d.seen[id] {
			d.warn(ErrDuplicateChunk)
		}
		d.seen[id] = true

		if err := chunkTable[id].decode(d, payload); err != nil {
			return ChunkError{Index: i, Tag: tag, Cause: chunkFailure(payload, err)}
		}
		if n := payload.Remaining(); n != 0 {
			err := ChunkSizeError{Declared: int64(size), Consumed: int64(size) - int64(n)}
			return ChunkError{Index: i, Tag: tag, Cause: DataError{Offset: payload.Offset(), Cause: err}}
		}
	}

	if !d.seen[chunkVersion] {
		d.chunk, d.chunkTag = -1, chunkTable[chunkVersion].tag
		d.warn(ErrMissingVersion)
	}
	return nil
}

// chunkFailure converts an error from a chunk decoder. Running out of bytes
// within a chunk means the records of the chunk do not fit its size.
func chunkFailure(payload *reader, err error) error {
	var data DataError
	if errors.As(err, &data) {
		return err
	}
	if errors.Is(err, ErrUnexpectedEnd) && !errors.Is(err, ErrChunkSizeMismatch) {
		size := int64(len(payload.buf))
		err = ChunkSizeError{Declared: size, Consumed: payload.Offset() - payload.base}
	}
	return DataError{Offset: payload.Offset(), Cause: err}
}
