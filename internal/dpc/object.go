package dpc

import (
	"golang.org/x/xerrors"

	"github.com/widberg/godpc/internal/dpcerr"
	"github.com/widberg/godpc/internal/lz"
	"github.com/widberg/godpc/internal/schema"
)

const objectHeaderSize = 24

// ObjectHeader is the fixed 24-byte header preceding every object's payload,
// big-endian on the wire. Grounded on fuel_dpc.rs's ObjectHeader.
type ObjectHeader struct {
	DataSize          uint32
	ClassObjectSize   uint32
	DecompressedSize  uint32
	CompressedSize    uint32
	ClassCRC32        uint32
	CRC32             uint32
}

func ReadObjectHeader(r *schema.Reader) ObjectHeader {
	return ObjectHeader{
		DataSize:         r.U32BE(),
		ClassObjectSize:  r.U32BE(),
		DecompressedSize: r.U32BE(),
		CompressedSize:   r.U32BE(),
		ClassCRC32:       r.U32BE(),
		CRC32:            r.U32BE(),
	}
}

func WriteObjectHeader(w *schema.Writer, h ObjectHeader) {
	w.U32BE(h.DataSize)
	w.U32BE(h.ClassObjectSize)
	w.U32BE(h.DecompressedSize)
	w.U32BE(h.CompressedSize)
	w.U32BE(h.ClassCRC32)
	w.U32BE(h.CRC32)
}

// CheckSizeInvariant implements spec.md §8's "Object-size invariants"
// testable property.
func (h ObjectHeader) CheckSizeInvariant() error {
	payload := h.DecompressedSize
	if h.CompressedSize != 0 {
		payload = h.CompressedSize
	}
	want := h.ClassObjectSize + payload
	if h.DataSize != want {
		return xerrors.Errorf("object %08x: data_size %d != class_object_size+payload %d: %w", h.CRC32, h.DataSize, want, dpcerr.ErrMalformedContainer)
	}
	return nil
}

// DecompressBody decompresses an object's raw payload body (the bytes after
// class_object_size) when h.CompressedSize != 0. Per spec.md §3.2, the
// compressed payload begins with an 8-byte {decompressed_size, compressed_size}
// big-endian prefix, followed by compressed_size-8 bytes of LZ stream.
func (h ObjectHeader) DecompressBody(body []byte) ([]byte, error) {
	if h.CompressedSize == 0 {
		return body, nil
	}
	if len(body) < 8 {
		return nil, xerrors.Errorf("object %08x: compressed body shorter than 8-byte prefix: %w", h.CRC32, dpcerr.ErrMalformedContainer)
	}
	r := schema.NewReader(body[:8])
	decompressedSize := r.U32BE()
	compressedSize := r.U32BE()
	if compressedSize != h.CompressedSize {
		return nil, xerrors.Errorf("object %08x: embedded compressed_size %d != header %d: %w", h.CRC32, compressedSize, h.CompressedSize, dpcerr.ErrMalformedContainer)
	}
	if decompressedSize != h.DecompressedSize {
		return nil, xerrors.Errorf("object %08x: embedded decompressed_size %d != header %d: %w", h.CRC32, decompressedSize, h.DecompressedSize, dpcerr.ErrMalformedContainer)
	}
	compressed := body[8:]
	if uint32(len(compressed)) != compressedSize-8 {
		return nil, xerrors.Errorf("object %08x: compressed stream length %d != compressed_size-8 %d: %w", h.CRC32, len(compressed), compressedSize-8, dpcerr.ErrMalformedContainer)
	}
	out := make([]byte, decompressedSize)
	if err := lz.Decompress(compressed, out, false); err != nil {
		return nil, xerrors.Errorf("object %08x: %w", h.CRC32, err)
	}
	return out, nil
}

// CompressBody produces the 8-byte-prefixed compressed body for a
// decompressed payload, using either the fast or optimized encoder.
func CompressBody(decompressed []byte, optimized bool) []byte {
	var compressed []byte
	if optimized {
		compressed = lz.CompressOptimized(decompressed)
	} else {
		compressed = lz.CompressFast(decompressed)
	}
	w := schema.NewWriter()
	w.U32BE(uint32(len(decompressed)))
	w.U32BE(uint32(len(compressed) + 8))
	w.Raw(compressed)
	return w.Bytes()
}
