package dpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/orcaman/writerseeker"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/widberg/godpc/internal/dpcerr"
	"github.com/widberg/godpc/internal/schema"
)

// preparedObject is the per-object result of reading, decompressing and
// (re)compressing a single object file — independent of every other
// object, which is what lets prepareObjects run them concurrently while
// the byte-layout pass afterwards stays strictly sequential and ordered.
type preparedObject struct {
	header      ObjectHeader
	classObject []byte
	body        []byte
}

// prepareObjects reads and (de/re)compresses every object named by objs,
// in parallel. Spec.md §5 permits parallelizing per-object compression as
// long as the emitted bytes are identical to a single-threaded run; since
// each result lands in its own slot this holds regardless of completion
// order. ctx is checked between objects so a SIGINT during a large create
// stops launching new work instead of grinding through the whole block.
func prepareObjects(ctx context.Context, inputDir string, objs []ManifestBlockObject, optimized bool) ([]preparedObject, error) {
	out := make([]preparedObject, len(objs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, o := range objs {
		i, o := i, o
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := findObjectFile(inputDir, o.CRC32, o.ClassName)
			if err != nil {
				return xerrors.Errorf("object %08x: %w", o.CRC32, err)
			}
			r := schema.NewReader(raw[:objectHeaderSize])
			oh := ReadObjectHeader(r)
			classObject := raw[objectHeaderSize : objectHeaderSize+oh.ClassObjectSize]
			body := raw[objectHeaderSize+oh.ClassObjectSize:]

			if oh.CompressedSize != 0 {
				decompressed, err := oh.DecompressBody(body)
				if err != nil {
					return err
				}
				body = decompressed
				oh.CompressedSize = 0
			}
			if o.Compress {
				compressed := CompressBody(body, optimized)
				oh.CompressedSize = uint32(len(compressed))
				body = compressed
			}

			out[i] = preparedObject{header: oh, classObject: classObject, body: body}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// poolStage records where a pooled object's body landed in the staging
// writer, so the final assembly pass can seek back and copy it out. The
// original stages pool bodies to a temp file (base_dpc's shared staging
// directory); a seekable in-memory writer plays the same role here without
// needing real disk I/O for the common case.
type poolStage struct {
	offset int64
	length int64
}

// Create reads an extracted tree (manifest.json + objects/) and reassembles
// a byte-identical (when options.LZ is false on both extract and create)
// DPC file. Grounded on fuel_dpc.rs's `create`, §4.4.2. ctx cancels the
// per-object preparation fan-out early; it is not consulted once the
// single-threaded byte-layout pass starts, since that part is already fast
// relative to LZ compression.
func Create(ctx context.Context, opts Options, inputDir string) ([]byte, error) {
	manifestBuf, err := os.ReadFile(filepath.Join(inputDir, "manifest.json"))
	if err != nil {
		return nil, xerrors.Errorf("dpc: reading manifest.json: %w: %v", dpcerr.ErrIOFailure, err)
	}
	var manifest Manifest
	if err := json.Unmarshal(manifestBuf, &manifest); err != nil {
		return nil, xerrors.Errorf("dpc: parsing manifest.json: %w: %v", dpcerr.ErrMalformedContainer, err)
	}

	pooled := make(map[uint32]bool)
	if manifest.Pool != nil && !opts.NoPool {
		for _, e := range manifest.Pool.ObjectEntries {
			pooled[e.CRC32] = true
		}
	}

	if err := checkCompressConsistency(manifest.Blocks, pooled); err != nil {
		return nil, err
	}

	var out []byte
	out = append(out, make([]byte, headerSize)...) // primary header slot, backfilled at the end

	var blockDescriptions []BlockDescription
	var poolStaging writerseeker.WriterSeeker
	stagedByCRC32 := make(map[uint32]poolStage)

	for bi, mb := range manifest.Blocks {
		prepared, err := prepareObjects(ctx, inputDir, mb.Objects, opts.Optimization)
		if err != nil {
			return nil, xerrors.Errorf("dpc: block %d: %w", bi, err)
		}

		blockStart := len(out)
		for i, o := range mb.Objects {
			p := prepared[i]
			oh := p.header

			blockBody := p.body
			if pooled[o.CRC32] {
				if _, staged := stagedByCRC32[o.CRC32]; !staged {
					n, err := poolStaging.Write(p.body)
					if err != nil {
						return nil, xerrors.Errorf("dpc: staging pool object %08x: %w: %v", o.CRC32, dpcerr.ErrIOFailure, err)
					}
					offset, err := poolStaging.Seek(0, io.SeekCurrent)
					if err != nil {
						return nil, xerrors.Errorf("dpc: staging pool object %08x: %w: %v", o.CRC32, dpcerr.ErrIOFailure, err)
					}
					stagedByCRC32[o.CRC32] = poolStage{offset: offset - int64(n), length: int64(n)}
				}
				blockBody = nil
			}

			oh.DataSize = oh.ClassObjectSize + uint32(len(blockBody))
			hw := schema.NewWriter()
			WriteObjectHeader(hw, oh)
			out = append(out, hw.Bytes()...)
			out = append(out, p.classObject...)
			out = append(out, blockBody...)
		}

		unpaddedSize := uint32(len(out) - blockStart)
		padding := calculatePaddingSize(unpaddedSize)
		out = append(out, make([]byte, padding)...)

		firstCRC32 := uint32(0)
		if len(mb.Objects) > 0 {
			firstCRC32 = mb.Objects[0].CRC32
		}
		blockDescriptions = append(blockDescriptions, BlockDescription{
			BlockType:           mb.BlockType,
			ObjectCount:         uint32(len(mb.Objects)),
			PaddedSize:          unpaddedSize + padding,
			DataSize:            unpaddedSize,
			WorkingBufferOffset: mb.Offset,
			CRC32OfFirstObject:  firstCRC32,
		})
	}

	blocksPaddedSize := uint32(len(out) - headerSize)

	var poolManifestOffset, poolManifestPaddedSize, poolObjectDecompressionBufferCapacity uint32
	if manifest.Pool != nil && !opts.NoPool {
		pm := PoolManifest{
			ObjectEntryIndices: manifest.Pool.ObjectEntryIndices,
		}
		for _, e := range manifest.Pool.ObjectEntries {
			pm.CRC32s = append(pm.CRC32s, e.CRC32)
			pm.ReferenceRecordIndices = append(pm.ReferenceRecordIndices, e.ReferenceRecordIndex)
			pm.ReferenceCounts = append(pm.ReferenceCounts, 1)
		}
		pm.ObjectsCRC32CountSum = uint32(len(pm.CRC32s))
		for _, rr := range manifest.Pool.ReferenceRecords {
			pm.ReferenceRecords = append(pm.ReferenceRecords, referenceRecordFromManifest(rr))
		}
		if opts.Optimization && !opts.UnoptimizedPool {
			pm = OptimizePool(pm)
		}

		for _, idx := range pm.ObjectEntryIndices {
			if int(idx) >= len(pm.CRC32s) {
				return nil, xerrors.Errorf("dpc: pool object_entry_indices out of range: %w", dpcerr.ErrInconsistentManifest)
			}
			crc32 := pm.CRC32s[idx]
			staged, ok := stagedByCRC32[crc32]
			if !ok {
				return nil, xerrors.Errorf("dpc: pool entry %08x has no staged body: %w", crc32, dpcerr.ErrInconsistentManifest)
			}
			pm.ObjectPaddedSizes = append(pm.ObjectPaddedSizes, calculatePaddedSize(uint32(staged.length)))
		}

		poolManifestOffset = uint32(len(out))
		manifestBytes := WritePoolManifest(pm)
		unpaddedManifest := uint32(len(manifestBytes))
		manifestPadding := calculatePaddingSize(unpaddedManifest)
		out = append(out, manifestBytes...)
		out = append(out, fill(manifestPadding, 0xFF)...)
		poolManifestPaddedSize = unpaddedManifest + manifestPadding

		stagedBytes, err := io.ReadAll(poolStaging.Reader())
		if err != nil {
			return nil, xerrors.Errorf("dpc: reading pool staging buffer: %w: %v", dpcerr.ErrIOFailure, err)
		}
		stagedAt := bytesReaderAt(stagedBytes)

		var maxDecompressedSectors uint32
		for _, idx := range pm.ObjectEntryIndices {
			crc32 := pm.CRC32s[idx]
			staged := stagedByCRC32[crc32]

			body := make([]byte, staged.length)
			if _, err := io.ReadFull(io.NewSectionReader(stagedAt, staged.offset, staged.length), body); err != nil {
				return nil, xerrors.Errorf("dpc: reading staged pool object %08x: %w: %v", crc32, dpcerr.ErrIOFailure, err)
			}
			out = append(out, body...)
			padded := calculatePaddedSize(uint32(len(body)))
			out = append(out, fill(padded-uint32(len(body)), 0xFF)...)

			sectors := (uint32(len(body)) + sectorSize - 1) / sectorSize
			if sectors > maxDecompressedSectors {
				maxDecompressedSectors = sectors
			}
		}
		poolObjectDecompressionBufferCapacity = maxDecompressedSectors
	}

	fileSize := uint32(len(out))

	var evenCap, oddCap uint32
	for i, bd := range blockDescriptions {
		capacity := bd.PaddedSize + bd.WorkingBufferOffset
		if i%2 == 0 {
			if capacity > evenCap {
				evenCap = capacity
			}
		} else if capacity > oddCap {
			oddCap = capacity
		}
	}

	header := PrimaryHeader{
		VersionString:                         manifest.VersionString,
		IsNotRTC:                              manifest.IsNotRTC,
		BlockCount:                             uint32(len(blockDescriptions)),
		BlockDescriptions:                      blockDescriptions,
		BlockWorkingBufferCapacityEven:         evenCap,
		BlockWorkingBufferCapacityOdd:          oddCap,
		BlocksPaddedSize:                       blocksPaddedSize,
		VersionPatch:                           manifest.VersionPatch,
		VersionMinor:                           manifest.VersionMinor,
		PoolManifestPaddedSize:                 poolManifestPaddedSize,
		PoolManifestOffset:                     poolManifestOffset,
		PoolManifestUnused0:                    manifest.PoolManifestUnused0,
		PoolManifestUnused1:                    manifest.PoolManifestUnused1,
		PoolObjectDecompressionBufferCapacity:  poolObjectDecompressionBufferCapacity,
		BlockSectorPaddingSize:                 calculatePaddingSize(blocksPaddedSize) / sectorSize,
		PoolSectorPaddingSize:                  poolManifestPaddedSize / sectorSize,
		FileSize:                               fileSize,
		BuilderString:                          manifest.BuilderString,
	}
	copy(out[:headerSize], WritePrimaryHeader(header))

	return out, nil
}

func fill(n uint32, b byte) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b
	}
	return buf
}

// bytesReaderAt adapts a byte slice to io.ReaderAt so io.NewSectionReader
// can slice into the pool staging buffer; writerseeker's Reader() only
// implements io.Reader.
type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// checkCompressConsistency rejects a manifest where the same pool object's
// crc32 appears in more than one block with a different compress flag — the
// object has exactly one staged body, so the flag can't mean two things at
// once. Per spec.md §7, InconsistentManifest.
func checkCompressConsistency(blocks []ManifestBlock, pooled map[uint32]bool) error {
	seen := make(map[uint32]bool)
	for _, mb := range blocks {
		for _, o := range mb.Objects {
			if !pooled[o.CRC32] {
				continue
			}
			compress, ok := seen[o.CRC32]
			if ok && compress != o.Compress {
				return xerrors.Errorf("dpc: object %08x has divergent compress flags across blocks: %w", o.CRC32, dpcerr.ErrInconsistentManifest)
			}
			seen[o.CRC32] = o.Compress
		}
	}
	return nil
}

func findObjectFile(inputDir string, crc32 uint32, className string) ([]byte, error) {
	path := objectFilePath(inputDir, className, crc32)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, xerrors.Errorf("object file %s not found: %w", path, dpcerr.ErrInconsistentManifest)
	}
	if err != nil {
		return nil, xerrors.Errorf("reading %s: %w: %v", path, dpcerr.ErrIOFailure, err)
	}
	return raw, nil
}
