// Package mdx implements a decoder for the binary MDX model format.
//
// The easiest way to decode a model is through the Decode function, which
// transforms a byte buffer into an mdlx.Model. A Decoder can be configured
// to decode names with a different character map, or to record statistics
// about the chunks of the buffer.
//
// # Format
//
// A buffer begins with the magic "MDLX", followed by a sequence of chunks.
// Each chunk is a four byte tag, a little-endian u32 payload size, and the
// payload. Chunks with a tag not known to the decoder are skipped by their
// declared size, so that buffers produced by newer revisions of the format
// can still be read.
//
// Most chunks hold a list of records, each reporting its own inclusive byte
// size. The sum of these sizes must land exactly on the size of the chunk.
// Records may be followed by a run of track sets, each tagged with the
// animated property, such as "KGTR" for the translation of a node.
package mdx

import (
	"strconv"
	"unicode"
)

// Magic is the signature at the start of every MDX buffer.
const Magic = "MDLX"

// chunkHeaderSize is the size of a tag followed by a u32 size.
const chunkHeaderSize = 8

// Tag is a four byte identifier of a chunk or a track set.
type Tag [4]byte

// MakeTag returns the Tag of a four byte string.
func MakeTag(s string) (t Tag) {
	copy(t[:], s)
	return t
}

// String returns the tag as text, replacing unprintable bytes with '.'.
func (t Tag) String() string {
	b := make([]byte, 0, len(t))
	for _, c := range t {
		if c < 0x80 && unicode.IsPrint(rune(c)) {
			b = append(b, c)
		} else {
			b = append(b, '.')
		}
	}
	return string(b)
}

// GoString returns the tag as a quoted string.
func (t Tag) GoString() string {
	return strconv.Quote(string(t[:]))
}

// chunkID enumerates the chunks known to the decoder.
type chunkID int

const (
	chunkVersion chunkID = iota
	chunkModel
	chunkSequences
	chunkGlobalSequences
	chunkTextures
	chunkMaterials
	chunkTextureAnimations
	chunkGeosets
	chunkGeosetAnimations
	chunkBones
	chunkLights
	chunkHelpers
	chunkAttachments
	chunkPivotPoints
	chunkParticleEmitters
	chunkParticleEmitters2
	chunkRibbonEmitters
	chunkEventObjects
	chunkCameras
	chunkCollisionShapes
	chunkCount
)

// chunkDecoder decodes the payload of a chunk from r, which is bounded to
// the payload.
type chunkDecoder func(d *decodeState, r *reader) error

type chunkEntry struct {
	tag    Tag
	decode chunkDecoder
}

var chunkTable = [chunkCount]chunkEntry{
	chunkVersion:           {MakeTag("VERS"), decodeVersion},
	chunkModel:             {MakeTag("MODL"), decodeModelInfo},
	chunkSequences:         {MakeTag("SEQS"), decodeSequences},
	chunkGlobalSequences:   {MakeTag("GLBS"), decodeGlobalSequences},
	chunkTextures:          {MakeTag("TEXS"), decodeTextures},
	chunkMaterials:         {MakeTag("MTLS"), decodeMaterials},
	chunkTextureAnimations: {MakeTag("TXAN"), decodeTextureAnimations},
	chunkGeosets:           {MakeTag("GEOS"), decodeGeosets},
	chunkGeosetAnimations:  {MakeTag("GEOA"), decodeGeosetAnimations},
	chunkBones:             {MakeTag("BONE"), decodeBones},
	chunkLights:            {MakeTag("LITE"), decodeLights},
	chunkHelpers:           {MakeTag("HELP"), decodeHelpers},
	chunkAttachments:       {MakeTag("ATCH"), decodeAttachments},
	chunkPivotPoints:       {MakeTag("PIVT"), decodePivotPoints},
	chunkParticleEmitters:  {MakeTag("PREM"), decodeParticleEmitters},
	chunkParticleEmitters2: {MakeTag("PRE2"), decodeParticleEmitters2},
	chunkRibbonEmitters:    {MakeTag("RIBB"), decodeRibbonEmitters},
	chunkEventObjects:      {MakeTag("EVTS"), decodeEventObjects},
	chunkCameras:           {MakeTag("CAMS"), decodeCameras},
	chunkCollisionShapes:   {MakeTag("CLID"), decodeCollisionShapes},
}

// lookupChunk returns the chunk identified by a tag.
func lookupChunk(tag Tag) (id chunkID, ok bool) {
	for id := chunkID(0); id < chunkCount; id++ {
		if chunkTable[id].tag == tag {
			return id, true
		}
	}
	return -1, false
}

// KnownChunk returns whether the decoder recognizes a chunk tag.
func KnownChunk(tag Tag) bool {
	_, ok := lookupChunk(tag)
	return ok
}

// MarshalText returns the tag as text.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
