package dpc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrimaryHeaderRoundTrip(t *testing.T) {
	h := PrimaryHeader{
		VersionString: DefaultVersion,
		IsNotRTC:      1,
		BlockCount:    1,
		BlockDescriptions: []BlockDescription{
			{BlockType: 1, ObjectCount: 1, PaddedSize: 2048, DataSize: 29, WorkingBufferOffset: 0, CRC32OfFirstObject: 42},
		},
		BlockWorkingBufferCapacityEven: 2048,
		VersionPatch:                   272,
		VersionMinor:                   380,
		FileSize:                       headerSize + 2048,
		BuilderString:                  "test-builder",
	}

	buf := WritePrimaryHeader(h)
	if len(buf) != headerSize {
		t.Fatalf("header length = %d, want %d", len(buf), headerSize)
	}

	got, err := ReadPrimaryHeader(buf)
	if err != nil {
		t.Fatalf("ReadPrimaryHeader: %v", err)
	}
	if diff := cmp.Diff(h, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPrimaryHeaderBuilderStringAbsentSentinel(t *testing.T) {
	h := PrimaryHeader{VersionString: DefaultVersion, BlockCount: 0}
	buf := WritePrimaryHeader(h)

	for i := builderStringEnd - builderStringLen; i < headerSize; i++ {
		if buf[i] != 0xFF {
			t.Fatalf("byte %#x = %#x, want 0xFF when builder string absent", i, buf[i])
		}
	}

	got, err := ReadPrimaryHeader(buf)
	if err != nil {
		t.Fatalf("ReadPrimaryHeader: %v", err)
	}
	if got.FileSize != noBuilderStringValue {
		t.Errorf("FileSize = %#x, want sentinel %#x", got.FileSize, noBuilderStringValue)
	}
	if got.BuilderString != "" {
		t.Errorf("BuilderString = %q, want empty", got.BuilderString)
	}
}

func TestObjectHeaderSizeInvariant(t *testing.T) {
	oh := ObjectHeader{DataSize: 29, ClassObjectSize: 0, DecompressedSize: 29, CompressedSize: 0}
	if err := oh.CheckSizeInvariant(); err != nil {
		t.Fatalf("valid header rejected: %v", err)
	}

	bad := oh
	bad.DataSize = 30
	if err := bad.CheckSizeInvariant(); err == nil {
		t.Fatal("invalid header accepted")
	}
}

func TestPoolManifestRoundTrip(t *testing.T) {
	m := PoolManifest{
		ObjectsCRC32CountSum: 2,
		ObjectEntryIndices:   []uint32{0, 1},
		CRC32s:               []uint32{111, 222},
		ReferenceCounts:      []uint32{1, 1},
		ObjectPaddedSizes:    []uint32{2048, 2048},
		ReferenceRecordIndices: []uint32{0, 0},
		ReferenceRecords: []ReferenceRecord{
			{StartChunkIndex: 1, EndChunkIndex: 3, ObjectsCRC32StartingIndex: 0, ObjectsCRC32Count: 2,
				PlaceholderTimesReferenced: placeholderU32, PlaceholderCurrentReferencesShared: placeholderU32, PlaceholderCurrentReferencesWeak: placeholderU32},
		},
	}

	buf := WritePoolManifest(m)
	got, err := ReadPoolManifest(buf)
	if err != nil {
		t.Fatalf("ReadPoolManifest: %v", err)
	}

	// The terminator record appended on write is not part of the logical
	// manifest; strip it before comparing.
	got.ReferenceRecords = got.ReferenceRecords[:len(got.ReferenceRecords)-1]

	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestOptimizePoolDedupIdempotent(t *testing.T) {
	m := PoolManifest{
		CRC32s:                 []uint32{1, 2, 3},
		ReferenceRecordIndices: []uint32{0, 1, 2},
		ReferenceRecords: []ReferenceRecord{
			{ObjectsCRC32StartingIndex: 0, ObjectsCRC32Count: 1},
			{ObjectsCRC32StartingIndex: 0, ObjectsCRC32Count: 1}, // duplicate of record 0
			{ObjectsCRC32StartingIndex: 1, ObjectsCRC32Count: 2},
		},
	}

	once := OptimizePool(m)
	if len(once.ReferenceRecords) != 2 {
		t.Fatalf("len(ReferenceRecords) = %d, want 2 after dedup", len(once.ReferenceRecords))
	}

	twice := OptimizePool(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("dedup not idempotent (-once +twice):\n%s", diff)
	}
}

func TestCalculatePaddedSize(t *testing.T) {
	cases := map[uint32]uint32{
		0:    0,
		1:    2048,
		2048: 2048,
		2049: 4096,
	}
	for in, want := range cases {
		if got := calculatePaddedSize(in); got != want {
			t.Errorf("calculatePaddedSize(%d) = %d, want %d", in, got, want)
		}
	}
}
