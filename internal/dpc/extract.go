package dpc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio"
	"golang.org/x/xerrors"

	"github.com/widberg/godpc/internal/dpcerr"
	"github.com/widberg/godpc/internal/fuelfmt"
	"github.com/widberg/godpc/internal/schema"
)

// Extract reads a DPC file and writes its extracted tree (manifest.json,
// objects/, optionally references.txt and per-object object.json/side
// files) to outputDir. Grounded on fuel_dpc.rs's `extract`, §4.4.1.
func Extract(opts Options, input []byte, outputDir string) error {
	if len(input) < headerSize {
		return xerrors.Errorf("dpc: file shorter than primary header: %w", dpcerr.ErrMalformedContainer)
	}
	header, err := ReadPrimaryHeader(input[:headerSize])
	if err != nil {
		return err
	}

	if _, known := LookupVersion(header.VersionString); !known && !opts.Unsafe {
		return xerrors.Errorf("dpc: unknown version_string %q: %w", header.VersionString, dpcerr.ErrUnknownVersion)
	}

	if err := os.MkdirAll(filepath.Join(outputDir, "objects"), 0o777); err != nil {
		return xerrors.Errorf("dpc: %w: %v", dpcerr.ErrIOFailure, err)
	}

	manifest := Manifest{
		VersionString:       header.VersionString,
		VersionMinor:        header.VersionMinor,
		VersionPatch:        header.VersionPatch,
		IsNotRTC:            header.IsNotRTC,
		PoolManifestUnused0: header.PoolManifestUnused0,
		PoolManifestUnused1: header.PoolManifestUnused1,
		BuilderString:       header.BuilderString,
	}

	seen := make(map[uint32]bool)
	pos := uint32(headerSize)

	for bi, bd := range header.BlockDescriptions {
		if pos+bd.PaddedSize > uint32(len(input)) {
			return xerrors.Errorf("dpc: block %d extends past end of file: %w", bi, dpcerr.ErrMalformedContainer)
		}
		blockBuf := input[pos : pos+bd.PaddedSize]
		pos += bd.PaddedSize

		mb := ManifestBlock{BlockType: bd.BlockType, Offset: bd.WorkingBufferOffset}

		off := uint32(0)
		for oi := uint32(0); oi < bd.ObjectCount; oi++ {
			if off+objectHeaderSize > uint32(len(blockBuf)) {
				return xerrors.Errorf("dpc: block %d object %d: header runs past block: %w", bi, oi, dpcerr.ErrMalformedContainer)
			}
			r := schema.NewReader(blockBuf[off : off+objectHeaderSize])
			oh := ReadObjectHeader(r)
			if err := oh.CheckSizeInvariant(); err != nil {
				return xerrors.Errorf("dpc: block %d object %d: %w", bi, oi, err)
			}

			bodyStart := off + objectHeaderSize
			bodyEnd := bodyStart + oh.DataSize
			if bodyEnd > uint32(len(blockBuf)) {
				return xerrors.Errorf("dpc: block %d object %d: body runs past block: %w", bi, oi, dpcerr.ErrMalformedContainer)
			}
			body := blockBuf[bodyStart:bodyEnd]
			off = bodyEnd

			className, _ := classNameFor(oh.ClassCRC32)
			compress := oh.CompressedSize != 0
			mb.Objects = append(mb.Objects, ManifestBlockObject{
				CRC32: oh.CRC32, ClassCRC32: oh.ClassCRC32, ClassName: className, Compress: compress,
			})

			if seen[oh.CRC32] {
				continue
			}
			seen[oh.CRC32] = true

			writeHeader := oh
			writeBody := body
			if opts.LZ && compress {
				classObject := body[:oh.ClassObjectSize]
				decompressed, err := oh.DecompressBody(body[oh.ClassObjectSize:])
				if err != nil {
					return err
				}
				writeHeader.CompressedSize = 0
				writeHeader.DataSize = oh.ClassObjectSize + uint32(len(decompressed))
				writeBody = append(append([]byte{}, classObject...), decompressed...)
			}

			if err := writeObjectFile(outputDir, className, writeHeader, writeBody); err != nil {
				return err
			}
		}

		manifest.Blocks = append(manifest.Blocks, mb)
	}

	if header.PoolManifestOffset != 0 {
		if err := extractPool(input, header, outputDir, &manifest); err != nil {
			return err
		}
	}

	if opts.Recursive {
		if err := extractRecursive(outputDir, &manifest); err != nil {
			return err
		}
	}

	return writeManifestJSON(outputDir, manifest)
}

func classNameFor(classCRC32 uint32) (string, bool) {
	if e, ok := fuelfmt.Lookup(classCRC32); ok {
		return e.Name, true
	}
	return fmt.Sprintf("%d", classCRC32), false
}

func objectFilePath(outputDir, className string, crc32 uint32) string {
	return filepath.Join(outputDir, "objects", fmt.Sprintf("%d.%s", crc32, className))
}

func writeObjectFile(outputDir, className string, h ObjectHeader, body []byte) error {
	path := objectFilePath(outputDir, className, h.CRC32)
	w := schema.NewWriter()
	WriteObjectHeader(w, h)
	buf := append(w.Bytes(), body...)
	if err := renameio.WriteFile(path, buf, 0o666); err != nil {
		return xerrors.Errorf("dpc: writing %s: %w: %v", path, dpcerr.ErrIOFailure, err)
	}
	return nil
}

// extractPool parses the pool manifest and pool object region, appending
// each pool object's payload onto the already-written block-copy file at
// offset class_object_size+24, per spec.md §4.4.1 step 5.
func extractPool(input []byte, header PrimaryHeader, outputDir string, manifest *Manifest) error {
	start := header.PoolManifestOffset
	end := start + header.PoolManifestPaddedSize
	if end > uint32(len(input)) {
		return xerrors.Errorf("dpc: pool manifest extends past end of file: %w", dpcerr.ErrMalformedContainer)
	}
	pm, err := ReadPoolManifest(input[start:end])
	if err != nil {
		return err
	}

	entries := pm.ObjectEntries()
	classByCRC32 := make(map[uint32]string, len(manifest.Blocks))
	sizeByCRC32 := make(map[uint32]uint32, len(entries))
	for _, mb := range manifest.Blocks {
		for _, o := range mb.Objects {
			classByCRC32[o.CRC32] = o.ClassName
		}
	}
	for i, e := range entries {
		if i < len(pm.ObjectPaddedSizes) {
			sizeByCRC32[e.CRC32] = pm.ObjectPaddedSizes[i]
		}
	}

	pos := end
	for _, idx := range pm.ObjectEntryIndices {
		if int(idx) >= len(entries) {
			return xerrors.Errorf("dpc: pool object_entry_indices out of range: %w", dpcerr.ErrInconsistentManifest)
		}
		entry := entries[idx]
		paddedSize := sizeByCRC32[entry.CRC32]
		if pos+paddedSize > uint32(len(input)) {
			return xerrors.Errorf("dpc: pool object %08x extends past end of file: %w", entry.CRC32, dpcerr.ErrMalformedContainer)
		}
		poolBuf := input[pos : pos+paddedSize]
		pos += paddedSize

		className, ok := classByCRC32[entry.CRC32]
		if !ok {
			className, _ = classNameFor(0)
		}
		path := objectFilePath(outputDir, className, entry.CRC32)
		existing, err := os.ReadFile(path)
		if err != nil {
			return xerrors.Errorf("dpc: pool object %08x: reading existing block copy: %w: %v", entry.CRC32, dpcerr.ErrIOFailure, err)
		}
		r := schema.NewReader(existing[:objectHeaderSize])
		oh := ReadObjectHeader(r)

		rebuilt := append([]byte{}, existing[:objectHeaderSize+oh.ClassObjectSize]...)
		rebuilt = append(rebuilt, poolBuf[:oh.DataSize-oh.ClassObjectSize]...)
		if err := renameio.WriteFile(path, rebuilt, 0o666); err != nil {
			return xerrors.Errorf("dpc: writing %s: %w: %v", path, dpcerr.ErrIOFailure, err)
		}
	}

	manifest.Pool = &ManifestPool{ObjectEntryIndices: pm.ObjectEntryIndices}
	for _, e := range entries {
		manifest.Pool.ObjectEntries = append(manifest.Pool.ObjectEntries, ManifestPoolEntry{
			CRC32: e.CRC32, ReferenceRecordIndex: e.ReferenceRecordIndex,
		})
	}
	for _, rr := range pm.ReferenceRecords {
		manifest.Pool.ReferenceRecords = append(manifest.Pool.ReferenceRecords, manifestReferenceRecordFrom(rr))
	}
	return nil
}

func writeManifestJSON(outputDir string, m Manifest) error {
	buf, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(outputDir, "manifest.json")
	if err := renameio.WriteFile(path, buf, 0o666); err != nil {
		return xerrors.Errorf("dpc: writing manifest.json: %w: %v", dpcerr.ErrIOFailure, err)
	}
	return nil
}
