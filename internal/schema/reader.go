// Package schema implements the declarative binary layout primitives
// shared by every typed object format: fixed-width integers and floats in
// either byte order, fixed-count vectors, length-prefixed ("Pascal")
// arrays, conditional fields, alignment padding, and exact-consumption
// checking. It plays the role the teacher's manual binary.Unmarshal
// methods play for squashfs, generalized with Go generics so each object
// format in internal/fuelfmt only has to state its field list once.
package schema

import (
	"encoding/binary"
	"math"

	"golang.org/x/xerrors"

	"github.com/widberg/godpc/internal/dpcerr"
)

// Reader walks a byte slice front to back, the way nom's parser
// combinators do in the original source, but as an explicit cursor rather
// than combinator chaining. Every method advances the cursor and records
// the first error seen, so callers can chain several reads and check err
// once (the same "sticky error" shape as bufio.Scanner/bytes.Reader
// call sites elsewhere in this codebase).
type Reader struct {
	buf []byte
	pos int
	err error
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) Err() error { return r.err }

// Remaining reports how many unread bytes are left, used by conditional
// fields that key off "is there anything left to parse" (e.g.
// ResourceObjectZ's optional trailing crc32 list).
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// Fail records a semantic parse error (one the cursor position can't
// detect by itself, e.g. a tag value outside its known set) as if a read
// had gone wrong at the current position. Subsequent reads keep returning
// zero values, same as after a short read.
func (r *Reader) Fail(err error) { r.fail(err) }

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.pos+n > len(r.buf) {
		r.fail(xerrors.Errorf("schema: short read: need %d bytes at offset %d, have %d: %w", n, r.pos, len(r.buf)-r.pos, dpcerr.ErrMalformedObject))
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *Reader) U8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) U16LE() uint16 { return readU16(r, binary.LittleEndian.Uint16) }
func (r *Reader) U16BE() uint16 { return readU16(r, binary.BigEndian.Uint16) }

func readU16(r *Reader, dec func([]byte) uint16) uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return dec(b)
}

func (r *Reader) U32LE() uint32 { return readU32(r, binary.LittleEndian.Uint32) }
func (r *Reader) U32BE() uint32 { return readU32(r, binary.BigEndian.Uint32) }

func readU32(r *Reader, dec func([]byte) uint32) uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return dec(b)
}

func (r *Reader) I32LE() int32 { return int32(r.U32LE()) }
func (r *Reader) I32BE() int32 { return int32(r.U32BE()) }

func (r *Reader) F32LE() float32 { return math.Float32frombits(r.U32LE()) }
func (r *Reader) F32BE() float32 { return math.Float32frombits(r.U32BE()) }

// Bytes consumes and returns n raw bytes, used for class blobs and opaque
// fallbacks.
func (r *Reader) Bytes(n int) []byte {
	b := r.take(n)
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Rest consumes and returns every remaining byte, for schemas whose last
// field is trailing slack.
func (r *Reader) Rest() []byte {
	return r.Bytes(r.Remaining())
}

// Align advances the cursor to the next multiple of k bytes relative to
// the start of the buffer, failing if the skipped bytes run past the end.
func (r *Reader) Align(k int) {
	if r.err != nil || k <= 0 {
		return
	}
	pad := (k - r.pos%k) % k
	if pad > 0 {
		r.take(pad)
	}
}

// Exact fails the reader if any bytes remain unconsumed, matching the
// #[nom(Exact)] schemas in the original source.
func (r *Reader) Exact() {
	if r.err != nil {
		return
	}
	if r.pos != len(r.buf) {
		r.fail(xerrors.Errorf("schema: %d trailing bytes after exact parse: %w", len(r.buf)-r.pos, dpcerr.ErrMalformedObject))
	}
}

// PascalArray reads a u32 count (in the given byte order) followed by that
// many elements read by elem.
func PascalArray[T any](r *Reader, countLE bool, elem func(r *Reader) T) []T {
	if r.err != nil {
		return nil
	}
	var n uint32
	if countLE {
		n = r.U32LE()
	} else {
		n = r.U32BE()
	}
	if r.err != nil {
		return nil
	}
	out := make([]T, 0, n)
	for i := uint32(0); i < n; i++ {
		if r.err != nil {
			return out
		}
		out = append(out, elem(r))
	}
	return out
}

// FixedVec reads exactly n elements with no count prefix.
func FixedVec[T any](r *Reader, n int, elem func(r *Reader) T) []T {
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		if r.err != nil {
			return out
		}
		out = append(out, elem(r))
	}
	return out
}
