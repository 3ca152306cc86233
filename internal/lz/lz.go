// Package lz implements the Asobo LZ codec: a windowed LZSS-family
// compressor/decompressor used to pack individual DPC object bodies.
//
// The wire format is a stream of 30-decision groups: a big-endian uint32
// flags word, whose low two bits pick the window shift/mask for the group,
// followed by up to 30 literal bytes or back-references (also read
// big-endian), one per bit of flags from the top down.
package lz

import (
	"encoding/binary"

	"golang.org/x/xerrors"

	"github.com/widberg/godpc/internal/dpcerr"
)

const (
	windowLog  = 0xe
	windowMask = 0x3fff
)

// Decompress decodes a compressed buffer into dst, which must already be
// sized to the expected decompressed length. When inPlace is true, src and
// the tail of dst alias the same underlying buffer (the compressed bytes sit
// ahead of the write cursor) and decoding stops as soon as the write cursor
// would overtake the read cursor, matching the original decompressor's
// in-place mode used while rewriting compressed objects during extraction.
func Decompress(src []byte, dst []byte, inPlace bool) error {
	var srcPos, dstPos int

	for dstPos < len(dst) {
		if srcPos+4 > len(src) {
			return xerrors.Errorf("lz: flags word truncated at src offset %d: %w", srcPos, dpcerr.ErrMalformedStream)
		}
		flags := binary.BigEndian.Uint32(src[srcPos:])
		srcPos += 4

		length := flags & 0x3
		tempShift := uint(windowLog - length)
		tempMask := uint32(windowMask) >> length

		for i := 0; i < 30; i++ {
			if flags&0x80000000 != 0 {
				if srcPos+2 > len(src) {
					return xerrors.Errorf("lz: back-reference truncated at src offset %d: %w", srcPos, dpcerr.ErrMalformedStream)
				}
				t := uint32(binary.BigEndian.Uint16(src[srcPos:]))
				srcPos += 2

				dist := int(t&tempMask) + 1
				matchLen := int(t>>tempShift) + 3

				start := dstPos - dist
				if start < 0 {
					return xerrors.Errorf("lz: back-reference before output start (dst offset %d, dist %d): %w", dstPos, dist, dpcerr.ErrMalformedStream)
				}
				end := start + matchLen

				for j := start; j < end; j++ {
					if dstPos >= len(dst) {
						return nil
					}
					dst[dstPos] = dst[j]
					dstPos++
				}
			} else {
				if srcPos >= len(src) {
					return xerrors.Errorf("lz: literal truncated at src offset %d: %w", srcPos, dpcerr.ErrMalformedStream)
				}
				if dstPos >= len(dst) {
					return nil
				}
				dst[dstPos] = src[srcPos]
				srcPos++
				dstPos++
			}

			if dstPos == len(dst) || (inPlace && dstPos > srcPos) {
				return nil
			}

			flags <<= 1
		}
	}

	return nil
}
