package mdx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/anaminus/parse"
	"golang.org/x/text/encoding/charmap"
)

// reader is a cursor over a byte buffer. Like parse.BinaryReader, which it
// wraps, each method returns whether the reader has failed, and the first
// error sticks.
type reader struct {
	buf []byte
	fr  *parse.BinaryReader

	// base is the offset of buf within the whole model buffer.
	base int64

	// names decodes bytes of fixed-length strings outside of ASCII. If nil,
	// bytes are kept as is.
	names *charmap.Charmap
}

func newReader(buf []byte, base int64, names *charmap.Charmap) *reader {
	return &reader{
		buf:   buf,
		fr:    parse.NewBinaryReader(bytes.NewReader(buf)),
		base:  base,
		names: names,
	}
}

// Err returns the first error that occurred.
func (r *reader) Err() error {
	return r.fr.Err()
}

func (r *reader) pos() int {
	return int(r.fr.N())
}

// Offset returns the position of the cursor within the model buffer.
func (r *reader) Offset() int64 {
	return r.base + r.fr.N()
}

// Remaining returns the number of unread bytes.
func (r *reader) Remaining() int {
	return len(r.buf) - r.pos()
}

// need fails with ErrUnexpectedEnd if fewer than n bytes remain.
func (r *reader) need(n int) (failed bool) {
	if r.fr.Err() != nil {
		return true
	}
	if n < 0 || r.Remaining() < n {
		r.fr.Add(0, ErrUnexpectedEnd)
		return true
	}
	return false
}

// Number reads a little-endian fixed-size value, or a slice of fixed-size
// values, into data. Pointers to basic numbers are read directly; arrays,
// structs, slices and named numbers are read through encoding/binary.
func (r *reader) Number(data interface{}) (failed bool) {
	switch data.(type) {
	case *int8, *uint8, *int16, *uint16, *int32, *uint32, *int64, *uint64, *float32, *float64:
		if r.need(binary.Size(data)) {
			return true
		}
		return r.fr.Number(data)
	}
	n := binary.Size(data)
	if n < 0 {
		return r.fr.Add(0, fmt.Errorf("cannot decode %T", data))
	}
	if r.need(n) {
		return true
	}
	if n == 0 {
		return false
	}
	b := make([]byte, n)
	if r.fr.Bytes(b) {
		return true
	}
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, data); err != nil {
		return r.fr.Add(0, err)
	}
	return false
}

// Bytes reads len(p) bytes into p.
func (r *reader) Bytes(p []byte) (failed bool) {
	if r.need(len(p)) {
		return true
	}
	if len(p) == 0 {
		return false
	}
	return r.fr.Bytes(p)
}

// Peek returns the next n bytes without advancing. The returned slice must
// not be modified.
func (r *reader) Peek(n int) (p []byte, ok bool) {
	if r.fr.Err() != nil || n < 0 || r.Remaining() < n {
		return nil, false
	}
	i := r.pos()
	return r.buf[i : i+n], true
}

// Skip advances the cursor by n bytes.
func (r *reader) Skip(n int) (failed bool) {
	if r.need(n) {
		return true
	}
	if n == 0 {
		return false
	}
	return r.fr.Bytes(make([]byte, n))
}

// Sub returns a reader over the next n bytes, and advances past them.
func (r *reader) Sub(n int) (sub *reader, failed bool) {
	if r.need(n) {
		return nil, true
	}
	i := r.pos()
	sub = newReader(r.buf[i:i+n:i+n], r.base+int64(i), r.names)
	if r.Skip(n) {
		return nil, true
	}
	return sub, false
}

// String reads n bytes as a string that ends at the first null byte.
func (r *reader) String(n int, s *string) (failed bool) {
	b := make([]byte, n)
	if r.Bytes(b) {
		return true
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	*s = decodeName(b, r.names)
	return false
}

func decodeName(b []byte, cm *charmap.Charmap) string {
	if cm == nil || isASCII(b) {
		return string(b)
	}
	var s strings.Builder
	s.Grow(len(b) + len(b)/2)
	for _, c := range b {
		if c < utf8.RuneSelf {
			s.WriteByte(c)
			continue
		}
		s.WriteRune(cm.DecodeByte(c))
	}
	return s.String()
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Uint32s reads n u32 values.
func (r *reader) Uint32s(n uint32, v *[]uint32) (failed bool) {
	if r.need(int(n) * 4) {
		return true
	}
	*v = make([]uint32, n)
	return r.Number(*v)
}

// Uint16s reads n u16 values.
func (r *reader) Uint16s(n uint32, v *[]uint16) (failed bool) {
	if r.need(int(n) * 2) {
		return true
	}
	*v = make([]uint16, n)
	return r.Number(*v)
}

// Uint8s reads n u8 values.
func (r *reader) Uint8s(n uint32, v *[]uint8) (failed bool) {
	if r.need(int(n)) {
		return true
	}
	*v = make([]uint8, n)
	return r.Bytes(*v)
}

// Vectors3 reads a matrix of n rows of three floats.
func (r *reader) Vectors3(n uint32, v *[][3]float32) (failed bool) {
	if r.need(int(n) * 12) {
		return true
	}
	*v = make([][3]float32, n)
	return r.Number(*v)
}

// Vectors2 reads a matrix of n rows of two floats.
func (r *reader) Vectors2(n uint32, v *[][2]float32) (failed bool) {
	if r.need(int(n) * 8) {
		return true
	}
	*v = make([][2]float32, n)
	return r.Number(*v)
}

// Matrix reads rows of cols floats each.
func (r *reader) Matrix(rows, cols uint32, v *[][]float32) (failed bool) {
	if r.need(int(rows) * int(cols) * 4) {
		return true
	}
	flat := make([]float32, int(rows)*int(cols))
	if r.Number(flat) {
		return true
	}
	*v = make([][]float32, rows)
	for i := range *v {
		(*v)[i] = flat[i*int(cols) : (i+1)*int(cols) : (i+1)*int(cols)]
	}
	return false
}

// Expect reads a tag and fails if it does not match. Used for the fixed inner
// tags of geosets and materials.
func (r *reader) Expect(tag Tag) (failed bool) {
	var got Tag
	if r.Bytes(got[:]) {
		return true
	}
	if got != tag {
		r.fr.Add(0, errUnexpectedTag{Want: tag, Got: got})
		return true
	}
	return false
}

type errUnexpectedTag struct {
	Want, Got Tag
}

func (err errUnexpectedTag) Error() string {
	return "expected tag " + err.Want.GoString() + ", got " + err.Got.GoString()
}

// fail records err unless an error already occurred.
func (r *reader) fail(err error) error {
	r.fr.Add(0, err)
	return r.fr.Err()
}
