package dpc

import (
	"strings"

	"golang.org/x/xerrors"

	"github.com/widberg/godpc/internal/dpcerr"
	"github.com/widberg/godpc/internal/schema"
)

const (
	sectorSize = 2048

	headerSize           = 2048
	headerTailOffset     = 0x720
	builderStringLen     = 128
	builderStringEnd     = headerTailOffset + 4*8 + builderStringLen // 0x7c0
	maxBlockCount        = 64
	versionStringLen     = 256
	noBuilderStringValue = 0xFFFFFFFF
)

func calculatePaddedSize(unpaddedSize uint32) uint32 {
	return (unpaddedSize + 0x7ff) &^ 0x7ff
}

func calculatePaddingSize(unpaddedSize uint32) uint32 {
	return calculatePaddedSize(unpaddedSize) - unpaddedSize
}

// BlockDescription is one of up to 64 fixed-size (24-byte) records
// following the primary header, big-endian on the wire. Grounded on
// fuel_dpc.rs's BlockDescription.
type BlockDescription struct {
	BlockType           uint32
	ObjectCount         uint32
	PaddedSize          uint32
	DataSize            uint32
	WorkingBufferOffset uint32
	CRC32OfFirstObject  uint32
}

func readBlockDescription(r *schema.Reader) BlockDescription {
	return BlockDescription{
		BlockType:           r.U32BE(),
		ObjectCount:         r.U32BE(),
		PaddedSize:          r.U32BE(),
		DataSize:            r.U32BE(),
		WorkingBufferOffset: r.U32BE(),
		CRC32OfFirstObject:  r.U32BE(),
	}
}

func writeBlockDescription(w *schema.Writer, b BlockDescription) {
	w.U32BE(b.BlockType)
	w.U32BE(b.ObjectCount)
	w.U32BE(b.PaddedSize)
	w.U32BE(b.DataSize)
	w.U32BE(b.WorkingBufferOffset)
	w.U32BE(b.CRC32OfFirstObject)
}

// PrimaryHeader is the fixed 2048-byte header beginning every DPC file.
// Grounded on fuel_dpc.rs's PrimaryHeader, translated field-for-field; all
// integers big-endian per spec.md §3.1 / §9 endian discipline.
type PrimaryHeader struct {
	VersionString     string
	IsNotRTC          uint32
	BlockCount        uint32
	BlockDescriptions []BlockDescription

	BlockWorkingBufferCapacityEven uint32
	BlockWorkingBufferCapacityOdd  uint32
	BlocksPaddedSize               uint32
	VersionPatch                   uint32
	VersionMinor                   uint32

	PoolManifestPaddedSize                 uint32 // bytes; 0 means "none"
	PoolManifestOffset                     uint32 // bytes
	PoolManifestUnused0                    uint32
	PoolManifestUnused1                    uint32
	PoolObjectDecompressionBufferCapacity  uint32 // sectors
	BlockSectorPaddingSize                 uint32
	PoolSectorPaddingSize                  uint32
	FileSize                               uint32
	BuilderString                          string // empty when FileSize == 0xFFFFFFFF
}

func readCString(b []byte) string {
	if i := strings.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

// ReadPrimaryHeader parses the fixed 2048-byte primary header.
func ReadPrimaryHeader(buf []byte) (PrimaryHeader, error) {
	if len(buf) != headerSize {
		return PrimaryHeader{}, xerrors.Errorf("primary header: want %d bytes, got %d: %w", headerSize, len(buf), dpcerr.ErrMalformedContainer)
	}
	r := schema.NewReader(buf)

	var h PrimaryHeader
	h.VersionString = readCString(r.Bytes(versionStringLen))
	h.IsNotRTC = r.U32BE()
	h.BlockCount = r.U32BE()
	if h.BlockCount > maxBlockCount {
		return PrimaryHeader{}, xerrors.Errorf("primary header: block_count %d exceeds %d: %w", h.BlockCount, maxBlockCount, dpcerr.ErrMalformedContainer)
	}
	h.BlockWorkingBufferCapacityEven = r.U32BE()
	h.BlockWorkingBufferCapacityOdd = r.U32BE()
	h.BlocksPaddedSize = r.U32BE()
	h.VersionPatch = r.U32BE()
	h.VersionMinor = r.U32BE()

	h.BlockDescriptions = make([]BlockDescription, h.BlockCount)
	for i := range h.BlockDescriptions {
		h.BlockDescriptions[i] = readBlockDescription(r)
	}
	if r.Err() != nil {
		return PrimaryHeader{}, r.Err()
	}

	tail := schema.NewReader(buf[headerTailOffset:])
	rawPoolManifestPaddedSize := tail.I32BE()
	rawPoolManifestOffset := tail.I32BE()
	if rawPoolManifestPaddedSize != -1 {
		h.PoolManifestPaddedSize = uint32(rawPoolManifestPaddedSize) * sectorSize
	}
	if rawPoolManifestOffset != -1 {
		h.PoolManifestOffset = uint32(rawPoolManifestOffset) * sectorSize
	}
	h.PoolManifestUnused0 = tail.U32BE()
	h.PoolManifestUnused1 = tail.U32BE()
	h.PoolObjectDecompressionBufferCapacity = tail.U32BE()
	h.BlockSectorPaddingSize = tail.U32BE()
	h.PoolSectorPaddingSize = tail.U32BE()
	h.FileSize = tail.U32BE()
	if h.FileSize != noBuilderStringValue {
		h.BuilderString = readCString(tail.Bytes(builderStringLen))
	}
	if tail.Err() != nil {
		return PrimaryHeader{}, tail.Err()
	}

	return h, nil
}

// WritePrimaryHeader serializes h to exactly 2048 bytes. When
// h.BuilderString is empty (the original's sentinel for "no builder
// string"), the builder-string region and the tail up to 0x800 are filled
// with 0xFF, matching spec.md scenario 6.
func WritePrimaryHeader(h PrimaryHeader) []byte {
	buf := make([]byte, headerSize)
	for i := range buf {
		buf[i] = 0xFF
	}

	w := schema.NewWriter()
	versionBytes := make([]byte, versionStringLen)
	copy(versionBytes, h.VersionString)
	w.Raw(versionBytes)
	w.U32BE(h.IsNotRTC)
	w.U32BE(h.BlockCount)
	w.U32BE(h.BlockWorkingBufferCapacityEven)
	w.U32BE(h.BlockWorkingBufferCapacityOdd)
	w.U32BE(h.BlocksPaddedSize)
	w.U32BE(h.VersionPatch)
	w.U32BE(h.VersionMinor)
	for _, b := range h.BlockDescriptions {
		writeBlockDescription(w, b)
	}
	copy(buf, w.Bytes())

	tail := schema.NewWriter()
	if h.PoolManifestPaddedSize == 0 {
		tail.I32BE(-1)
	} else {
		tail.I32BE(int32(h.PoolManifestPaddedSize / sectorSize))
	}
	if h.PoolManifestOffset == 0 {
		tail.I32BE(-1)
	} else {
		tail.I32BE(int32(h.PoolManifestOffset / sectorSize))
	}
	tail.U32BE(h.PoolManifestUnused0)
	tail.U32BE(h.PoolManifestUnused1)
	tail.U32BE(h.PoolObjectDecompressionBufferCapacity)

	if h.BuilderString == "" {
		tail.U32BE(noBuilderStringValue)
		tail.U32BE(noBuilderStringValue)
		tail.U32BE(noBuilderStringValue)
		copy(buf[headerTailOffset:], tail.Bytes())
		// [0x740, 0x800) already 0xFF from the initial fill.
		return buf
	}

	tail.U32BE(h.BlockSectorPaddingSize)
	tail.U32BE(h.PoolSectorPaddingSize)
	tail.U32BE(h.FileSize)
	builderBytes := make([]byte, builderStringLen)
	copy(builderBytes, h.BuilderString)
	tail.Raw(builderBytes)
	copy(buf[headerTailOffset:], tail.Bytes())
	return buf
}
