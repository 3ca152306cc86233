package schema

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Writer mirrors Reader: every typed format writes its fields back in the
// same order it reads them, so pack(unpack(x)) reproduces x byte for byte
// (the "schema exactness" testable property).
type Writer struct {
	buf bytes.Buffer
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Bytes() []byte { return w.buf.Bytes() }
func (w *Writer) Len() int      { return w.buf.Len() }

func (w *Writer) U8(v uint8) { w.buf.WriteByte(v) }

func (w *Writer) U16LE(v uint16) { var b [2]byte; binary.LittleEndian.PutUint16(b[:], v); w.buf.Write(b[:]) }
func (w *Writer) U16BE(v uint16) { var b [2]byte; binary.BigEndian.PutUint16(b[:], v); w.buf.Write(b[:]) }

func (w *Writer) U32LE(v uint32) { var b [4]byte; binary.LittleEndian.PutUint32(b[:], v); w.buf.Write(b[:]) }
func (w *Writer) U32BE(v uint32) { var b [4]byte; binary.BigEndian.PutUint32(b[:], v); w.buf.Write(b[:]) }

func (w *Writer) I32LE(v int32) { w.U32LE(uint32(v)) }
func (w *Writer) I32BE(v int32) { w.U32BE(uint32(v)) }

func (w *Writer) F32LE(v float32) { w.U32LE(math.Float32bits(v)) }
func (w *Writer) F32BE(v float32) { w.U32BE(math.Float32bits(v)) }

func (w *Writer) Raw(b []byte) { w.buf.Write(b) }

// Align pads with zero bytes until the writer's length is a multiple of k.
func (w *Writer) Align(k int) {
	if k <= 0 {
		return
	}
	pad := (k - w.buf.Len()%k) % k
	if pad > 0 {
		w.buf.Write(make([]byte, pad))
	}
}

// WritePascalArray writes a u32 count (in the given byte order) followed by
// each element via elem.
func WritePascalArray[T any](w *Writer, countLE bool, items []T, elem func(w *Writer, v T)) {
	if countLE {
		w.U32LE(uint32(len(items)))
	} else {
		w.U32BE(uint32(len(items)))
	}
	for _, v := range items {
		elem(w, v)
	}
}

// WriteFixedVec writes exactly len(items) elements with no count prefix;
// callers are responsible for having exactly N items where the schema
// calls for FixedVec<T, N>.
func WriteFixedVec[T any](w *Writer, items []T, elem func(w *Writer, v T)) {
	for _, v := range items {
		elem(w, v)
	}
}
