package dpc

import (
	"golang.org/x/xerrors"

	"github.com/widberg/godpc/internal/dpcerr"
	"github.com/widberg/godpc/internal/schema"
)

const (
	poolManifestHeaderMagic0 = 0x80000
	poolManifestHeaderMagic1 = 0x800
	placeholderU32           = 0xFFFFFFFF
)

// ReferenceRecord is one [start_chunk_index, end_chunk_index) span within
// the pool selecting a run of object entries. Grounded verbatim on
// fuel_dpc.rs's ReferenceRecord: big-endian on the wire even though the
// surrounding pool manifest's length-prefixed arrays are little-endian
// (spec.md §9 endian discipline).
type ReferenceRecord struct {
	StartChunkIndex                  uint32
	EndChunkIndex                    uint32
	ObjectsCRC32StartingIndex        uint32
	PlaceholderDPCIndex               uint16
	ObjectsCRC32Count                 uint16
	PlaceholderTimesReferenced         uint32
	PlaceholderCurrentReferencesShared uint32
	PlaceholderCurrentReferencesWeak   uint32
}

func readReferenceRecord(r *schema.Reader) ReferenceRecord {
	return ReferenceRecord{
		StartChunkIndex:                    r.U32BE(),
		EndChunkIndex:                      r.U32BE(),
		ObjectsCRC32StartingIndex:          r.U32BE(),
		PlaceholderDPCIndex:                r.U16BE(),
		ObjectsCRC32Count:                  r.U16BE(),
		PlaceholderTimesReferenced:         r.U32BE(),
		PlaceholderCurrentReferencesShared: r.U32BE(),
		PlaceholderCurrentReferencesWeak:   r.U32BE(),
	}
}

func writeReferenceRecord(w *schema.Writer, rr ReferenceRecord) {
	w.U32BE(rr.StartChunkIndex)
	w.U32BE(rr.EndChunkIndex)
	w.U32BE(rr.ObjectsCRC32StartingIndex)
	w.U16BE(rr.PlaceholderDPCIndex)
	w.U16BE(rr.ObjectsCRC32Count)
	w.U32BE(rr.PlaceholderTimesReferenced)
	w.U32BE(rr.PlaceholderCurrentReferencesShared)
	w.U32BE(rr.PlaceholderCurrentReferencesWeak)
}

// terminatorReferenceRecord is appended after the real records on write,
// matching the original's trailing sentinel entry.
func terminatorReferenceRecord() ReferenceRecord {
	return ReferenceRecord{
		PlaceholderDPCIndex:               0,
		PlaceholderTimesReferenced:         placeholderU32,
		PlaceholderCurrentReferencesShared: placeholderU32,
		PlaceholderCurrentReferencesWeak:   placeholderU32,
	}
}

// PoolManifest is the region immediately following pool_manifest_offset,
// describing how pool object bodies are deduplicated and referenced from
// blocks. Integers in the header and reference records are big-endian; the
// six length-prefixed arrays use little-endian counts and elements — the
// mixed-endianness detail confirmed in fuel_dpc.rs's PoolManifest (NomBE
// struct, but `length_count!(i, le_u32, le_u32)` array fields).
type PoolManifest struct {
	ObjectsCRC32CountSum uint32

	ObjectEntryIndices     []uint32 // permutation controlling pool body write order
	CRC32s                 []uint32
	ReferenceCounts        []uint32
	ObjectPaddedSizes      []uint32
	ReferenceRecordIndices []uint32
	ReferenceRecords       []ReferenceRecord
}

// ObjectEntry recovers the (crc32, reference_record_index) pairs described
// in spec.md §3.4 by zipping CRC32s and ReferenceRecordIndices.
type ObjectEntry struct {
	CRC32                uint32
	ReferenceRecordIndex uint32
}

func (m PoolManifest) ObjectEntries() []ObjectEntry {
	n := len(m.CRC32s)
	entries := make([]ObjectEntry, n)
	for i := 0; i < n; i++ {
		entries[i] = ObjectEntry{CRC32: m.CRC32s[i], ReferenceRecordIndex: m.ReferenceRecordIndices[i]}
	}
	return entries
}

func readLEU32Array(r *schema.Reader) []uint32 {
	return schema.PascalArray(r, true, func(r *schema.Reader) uint32 { return r.U32LE() })
}

func writeLEU32Array(w *schema.Writer, v []uint32) {
	schema.WritePascalArray(w, true, v, func(w *schema.Writer, x uint32) { w.U32LE(x) })
}

// ReadPoolManifest parses a pool manifest buffer (the full
// pool_manifest_padded_size region; trailing padding bytes beyond the
// final reference record are ignored, not asserted exact, since the region
// is sector-padded with 0xFF after the terminator record).
func ReadPoolManifest(buf []byte) (PoolManifest, error) {
	r := schema.NewReader(buf)

	magic0 := r.U32BE()
	magic1 := r.U32BE()
	if magic0 != poolManifestHeaderMagic0 || magic1 != poolManifestHeaderMagic1 {
		return PoolManifest{}, xerrors.Errorf("pool manifest: header magic %#x/%#x unexpected: %w", magic0, magic1, dpcerr.ErrMalformedContainer)
	}
	var m PoolManifest
	m.ObjectsCRC32CountSum = r.U32BE()

	m.ObjectEntryIndices = readLEU32Array(r)
	m.CRC32s = readLEU32Array(r)
	m.ReferenceCounts = readLEU32Array(r)
	m.ObjectPaddedSizes = readLEU32Array(r)
	m.ReferenceRecordIndices = readLEU32Array(r)

	count := r.U32LE()
	m.ReferenceRecords = make([]ReferenceRecord, 0, count)
	for i := uint32(0); i < count; i++ {
		m.ReferenceRecords = append(m.ReferenceRecords, readReferenceRecord(r))
	}
	if r.Err() != nil {
		return PoolManifest{}, r.Err()
	}

	if uint32(len(m.CRC32s)) != m.ObjectsCRC32CountSum {
		return PoolManifest{}, xerrors.Errorf("pool manifest: objects_crc32_count_sum %d != len(object_entries) %d: %w", m.ObjectsCRC32CountSum, len(m.CRC32s), dpcerr.ErrInconsistentManifest)
	}

	return m, nil
}

// WritePoolManifest serializes a pool manifest, appending the terminator
// reference record, per spec.md §4.4.2 step 4. The caller sector-pads the
// result with 0xFF.
func WritePoolManifest(m PoolManifest) []byte {
	w := schema.NewWriter()
	w.U32BE(poolManifestHeaderMagic0)
	w.U32BE(poolManifestHeaderMagic1)
	w.U32BE(m.ObjectsCRC32CountSum)

	writeLEU32Array(w, m.ObjectEntryIndices)
	writeLEU32Array(w, m.CRC32s)
	writeLEU32Array(w, m.ReferenceCounts)
	writeLEU32Array(w, m.ObjectPaddedSizes)
	writeLEU32Array(w, m.ReferenceRecordIndices)

	records := append(append([]ReferenceRecord{}, m.ReferenceRecords...), terminatorReferenceRecord())
	w.U32LE(uint32(len(records)))
	for _, rr := range records {
		writeReferenceRecord(w, rr)
	}
	return w.Bytes()
}

// OptimizePool deduplicates identical reference records by
// {ObjectsCRC32StartingIndex, ObjectsCRC32Count}, rewriting each object
// entry's ReferenceRecordIndex to the surviving deduped index. Spec.md
// §4.4.3 / §8 "Pool dedup idempotence": running this twice must be a no-op
// on the second pass, which holds here because the dedup key is structural
// (re-running against already-deduped records finds no further duplicates).
func OptimizePool(m PoolManifest) PoolManifest {
	type key struct{ start, count uint32 }

	survivorOf := make(map[key]int) // key -> surviving index in deduped slice
	oldToNew := make([]int, len(m.ReferenceRecords))
	deduped := make([]ReferenceRecord, 0, len(m.ReferenceRecords))

	for i, rr := range m.ReferenceRecords {
		k := key{rr.ObjectsCRC32StartingIndex, uint32(rr.ObjectsCRC32Count)}
		if j, ok := survivorOf[k]; ok {
			oldToNew[i] = j
			continue
		}
		survivorOf[k] = len(deduped)
		oldToNew[i] = len(deduped)
		deduped = append(deduped, rr)
	}

	out := m
	out.ReferenceRecords = deduped
	out.ReferenceRecordIndices = make([]uint32, len(m.ReferenceRecordIndices))
	for i, idx := range m.ReferenceRecordIndices {
		out.ReferenceRecordIndices[i] = uint32(oldToNew[idx])
	}
	return out
}
