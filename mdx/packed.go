package mdx

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/bkaradzic/go-lz4"
	"golang.org/x/crypto/blake2b"
)

// PackedMagic is the signature of an lz4-packed MDX buffer.
//
// A packed buffer is the magic, the u32 length of an lz4 block, the block,
// and the BLAKE2b-256 digest of the unpacked buffer. The block begins with
// the u32 length of the unpacked buffer.
const PackedMagic = "MDLZ"

const packedHeaderSize = len(PackedMagic) + 4

// maxUnpackedSize limits the unpacked length declared by a packed buffer.
const maxUnpackedSize = 1 << 30

// IsPacked returns whether buf begins with the packed magic.
func IsPacked(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte(PackedMagic))
}

func corruptPacked(offset int, format string, a ...interface{}) error {
	return DataError{Offset: int64(offset), Cause: fmt.Errorf("%w: "+format, append([]interface{}{ErrCorruptPacked}, a...)...)}
}

// Unpack returns the MDX buffer held by a packed buffer. A block that is
// truncated, or that does not unpack to content matching the digest, fails
// with ErrCorruptPacked.
func Unpack(buf []byte) ([]byte, error) {
	if !IsPacked(buf) {
		return nil, ErrNotRecognized
	}
	if len(buf) < packedHeaderSize {
		return nil, DataError{Offset: int64(len(buf)), Cause: ErrUnexpectedEnd}
	}
	blockLen := int64(binary.LittleEndian.Uint32(buf[len(PackedMagic):]))
	rest := buf[packedHeaderSize:]
	if want := blockLen + blake2b.Size; int64(len(rest)) != want {
		return nil, corruptPacked(len(PackedMagic), "expected %d bytes after header, got %d", want, len(rest))
	}
	block, sum := rest[:blockLen], rest[blockLen:]
	if len(block) < 4 {
		return nil, corruptPacked(packedHeaderSize, "block of %d bytes has no length", len(block))
	}
	size := binary.LittleEndian.Uint32(block)
	if size > maxUnpackedSize {
		return nil, corruptPacked(packedHeaderSize, "unpacked length %d too large", size)
	}
	out, err := lz4.Decode(make([]byte, size), block)
	if err != nil {
		return nil, corruptPacked(packedHeaderSize, "lz4: %s", err)
	}
	if len(out) != int(size) {
		return nil, corruptPacked(packedHeaderSize, "unpacked %d of %d bytes", len(out), size)
	}
	if digest := blake2b.Sum256(out); !bytes.Equal(digest[:], sum) {
		return nil, corruptPacked(packedHeaderSize+int(blockLen), "digest mismatch")
	}
	return out, nil
}

// Pack returns buf as a packed buffer.
func Pack(buf []byte) ([]byte, error) {
	block, err := lz4.Encode(nil, buf)
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	digest := blake2b.Sum256(buf)
	out := make([]byte, packedHeaderSize, packedHeaderSize+len(block)+len(digest))
	copy(out, PackedMagic)
	binary.LittleEndian.PutUint32(out[len(PackedMagic):], uint32(len(block)))
	out = append(out, block...)
	out = append(out, digest[:]...)
	return out, nil
}
