package mdx

import (
	"bytes"
	"encoding/binary"
)

// builder assembles little-endian byte fixtures.
type builder struct {
	buf bytes.Buffer
}

func (b *builder) bytes() []byte {
	return b.buf.Bytes()
}

func (b *builder) tag(s string) *builder {
	b.buf.WriteString(s)
	return b
}

func (b *builder) raw(p ...byte) *builder {
	b.buf.Write(p)
	return b
}

func (b *builder) num(v ...interface{}) *builder {
	for _, v := range v {
		binary.Write(&b.buf, binary.LittleEndian, v)
	}
	return b
}

func (b *builder) u32(v ...uint32) *builder {
	for _, v := range v {
		b.num(v)
	}
	return b
}

func (b *builder) i32(v ...int32) *builder {
	for _, v := range v {
		b.num(v)
	}
	return b
}

func (b *builder) f32(v ...float32) *builder {
	for _, v := range v {
		b.num(v)
	}
	return b
}

// name writes s null-padded to n bytes.
func (b *builder) name(s string, n int) *builder {
	p := make([]byte, n)
	copy(p, s)
	b.buf.Write(p)
	return b
}

// model returns the magic followed by each chunk.
func model(chunks ...[]byte) []byte {
	b := &builder{}
	b.tag(Magic)
	for _, c := range chunks {
		b.raw(c...)
	}
	return b.bytes()
}

// chunk returns a chunk with a header declaring the size of payload.
func chunk(tag string, payload ...[]byte) []byte {
	var p []byte
	for _, q := range payload {
		p = append(p, q...)
	}
	return chunkSized(tag, uint32(len(p)), p)
}

// chunkSized returns a chunk with a header declaring size, regardless of the
// length of payload.
func chunkSized(tag string, size uint32, payload []byte) []byte {
	b := &builder{}
	b.tag(tag).u32(size).raw(payload...)
	return b.bytes()
}

func versionChunk(v uint32) []byte {
	return chunk("VERS", (&builder{}).u32(v).bytes())
}

// key is one keyframe of a track set fixture. in and out are written only
// for interpolations with tangents.
type key struct {
	frame      int32
	v, in, out []float32
}

func trackSet(tag string, interp uint32, globalSequenceID int32, keys ...key) []byte {
	b := &builder{}
	b.tag(tag).u32(uint32(len(keys)), interp).i32(globalSequenceID)
	for _, k := range keys {
		b.i32(k.frame).f32(k.v...)
		if interp > 1 {
			b.f32(k.in...).f32(k.out...)
		}
	}
	return b.bytes()
}

// nodeSize is the size of a node without tracks.
const nodeSize = 96

func node(name string, objectID, parentID int32, flags uint32, tracks ...[]byte) []byte {
	var t []byte
	for _, q := range tracks {
		t = append(t, q...)
	}
	b := &builder{}
	b.u32(uint32(nodeSize + len(t))).name(name, 80).i32(objectID, parentID).u32(flags).raw(t...)
	return b.bytes()
}

func bone(n []byte, geosetID, geosetAnimationID int32) []byte {
	b := &builder{}
	b.raw(n...).i32(geosetID, geosetAnimationID)
	return b.bytes()
}

func sequence(name string, start, end uint32, flags uint32) []byte {
	b := &builder{}
	b.name(name, 80).u32(start, end).f32(0).u32(flags).f32(0).u32(0)
	b.f32(0, 0, 0, 0, 0, 0, 0)
	return b.bytes()
}

// sizedRecord prefixes body with its inclusive size.
func sizedRecord(body ...[]byte) []byte {
	var p []byte
	for _, q := range body {
		p = append(p, q...)
	}
	b := &builder{}
	b.u32(uint32(4 + len(p))).raw(p...)
	return b.bytes()
}
