package dpc

// Manifest is the on-disk extracted form (manifest.json), per spec.md §3.5.
// Every entity here is written once by Extract and consumed once by
// Create; nothing is mutated in place.
type Manifest struct {
	VersionString string `json:"version_string"`
	VersionMinor  uint32 `json:"version_minor"`
	VersionPatch  uint32 `json:"version_patch"`
	IsNotRTC      uint32 `json:"is_not_rtc"`

	PoolManifestUnused0 uint32 `json:"pool_manifest_unused0"`
	PoolManifestUnused1 uint32 `json:"pool_manifest_unused1"`
	BuilderString       string `json:"builder_string,omitempty"`

	Blocks []ManifestBlock `json:"blocks"`
	Pool   *ManifestPool   `json:"pool,omitempty"`
}

// ManifestBlock records one block's layout: its working-buffer offset and
// the ordered {crc32, compress} list of objects inside it.
type ManifestBlock struct {
	BlockType uint32                 `json:"block_type"`
	Offset    uint32                 `json:"offset"`
	Objects   []ManifestBlockObject  `json:"objects"`
}

type ManifestBlockObject struct {
	CRC32      uint32 `json:"crc32"`
	ClassCRC32 uint32 `json:"class_crc32"`
	ClassName  string `json:"class_name"`
	Compress   bool   `json:"compress"`
}

// ManifestPool records the pool section: entry order, entries, and
// reference records, in the shapes spec.md §3.5 names.
type ManifestPool struct {
	ObjectEntryIndices []uint32                `json:"object_entry_indices"`
	ObjectEntries      []ManifestPoolEntry     `json:"object_entries"`
	ReferenceRecords   []ManifestReferenceRecord `json:"reference_records"`
}

type ManifestPoolEntry struct {
	CRC32                uint32 `json:"crc32"`
	ReferenceRecordIndex uint32 `json:"reference_record_index"`
}

type ManifestReferenceRecord struct {
	StartChunkIndex                   uint32 `json:"start_chunk_index"`
	EndChunkIndex                     uint32 `json:"end_chunk_index"`
	ObjectsCRC32StartingIndex         uint32 `json:"objects_crc32_starting_index"`
	PlaceholderDPCIndex                uint16 `json:"placeholder_dpc_index"`
	ObjectsCRC32Count                  uint16 `json:"objects_crc32_count"`
	PlaceholderTimesReferenced          uint32 `json:"placeholder_times_referenced"`
	PlaceholderCurrentReferencesShared  uint32 `json:"placeholder_current_references_shared"`
	PlaceholderCurrentReferencesWeak    uint32 `json:"placeholder_current_references_weak"`
}

func manifestReferenceRecordFrom(rr ReferenceRecord) ManifestReferenceRecord {
	return ManifestReferenceRecord{
		StartChunkIndex:                    rr.StartChunkIndex,
		EndChunkIndex:                      rr.EndChunkIndex,
		ObjectsCRC32StartingIndex:          rr.ObjectsCRC32StartingIndex,
		PlaceholderDPCIndex:                rr.PlaceholderDPCIndex,
		ObjectsCRC32Count:                  rr.ObjectsCRC32Count,
		PlaceholderTimesReferenced:         rr.PlaceholderTimesReferenced,
		PlaceholderCurrentReferencesShared: rr.PlaceholderCurrentReferencesShared,
		PlaceholderCurrentReferencesWeak:   rr.PlaceholderCurrentReferencesWeak,
	}
}

func referenceRecordFromManifest(rr ManifestReferenceRecord) ReferenceRecord {
	return ReferenceRecord{
		StartChunkIndex:                    rr.StartChunkIndex,
		EndChunkIndex:                      rr.EndChunkIndex,
		ObjectsCRC32StartingIndex:          rr.ObjectsCRC32StartingIndex,
		PlaceholderDPCIndex:                rr.PlaceholderDPCIndex,
		ObjectsCRC32Count:                  rr.ObjectsCRC32Count,
		PlaceholderTimesReferenced:         rr.PlaceholderTimesReferenced,
		PlaceholderCurrentReferencesShared: rr.PlaceholderCurrentReferencesShared,
		PlaceholderCurrentReferencesWeak:   rr.PlaceholderCurrentReferencesWeak,
	}
}
