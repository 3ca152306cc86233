package dpc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/renameio"
	"golang.org/x/xerrors"

	"github.com/widberg/godpc/internal/dpcerr"
	"github.com/widberg/godpc/internal/fuelfmt"
	"github.com/widberg/godpc/internal/schema"
)

// extractRecursive runs every distinct object in the manifest through the
// format registry, producing `objects/<crc>.<class>.json` beside each
// `objects/<crc>.<class>` file and accumulating references.txt, per
// spec.md §4.3 / §6.2. Objects whose class has no registry entry are left
// as opaque raw files only. An Unpack error from a registry entry is
// returned and ends the extraction; it is not skipped, whatever the
// Options.Unsafe setting.
func extractRecursive(outputDir string, manifest *Manifest) error {
	seen := make(map[uint32]bool)
	var allRefs []fuelfmt.Reference

	for _, mb := range manifest.Blocks {
		for _, o := range mb.Objects {
			if seen[o.CRC32] {
				continue
			}
			seen[o.CRC32] = true

			entry, ok := fuelfmt.Lookup(o.ClassCRC32)
			if !ok {
				continue
			}

			path := objectFilePath(outputDir, o.ClassName, o.CRC32)
			raw, err := os.ReadFile(path)
			if err != nil {
				return xerrors.Errorf("dpc: %w: %v", dpcerr.ErrIOFailure, err)
			}
			r := schema.NewReader(raw[:objectHeaderSize])
			oh := ReadObjectHeader(r)
			header := raw[objectHeaderSize : objectHeaderSize+oh.ClassObjectSize]
			body := raw[objectHeaderSize+oh.ClassObjectSize:]

			ctx := fuelfmt.NewParseContext()
			value, err := entry.Unpack(ctx, header, body)
			if err != nil {
				return xerrors.Errorf("dpc: object %08x (%s): %w", o.CRC32, entry.Name, err)
			}

			buf, err := json.MarshalIndent(value, "", "  ")
			if err != nil {
				return err
			}
			jsonPath := filepath.Join(filepath.Dir(path), fmt.Sprintf("%d.%s.json", o.CRC32, entry.Name))
			if err := renameio.WriteFile(jsonPath, buf, 0o666); err != nil {
				return xerrors.Errorf("dpc: writing %s: %w: %v", jsonPath, dpcerr.ErrIOFailure, err)
			}

			allRefs = append(allRefs, fuelfmt.CollectReferences(o.CRC32, value)...)
		}
	}

	if len(allRefs) == 0 {
		return nil
	}
	sort.Slice(allRefs, func(i, j int) bool {
		if allRefs[i].From != allRefs[j].From {
			return allRefs[i].From < allRefs[j].From
		}
		return allRefs[i].To < allRefs[j].To
	})

	var out []byte
	for _, ref := range allRefs {
		kind := "soft"
		if ref.Hard {
			kind = "hard"
		}
		out = append(out, []byte(fmt.Sprintf("%d -> %d (%s)\n", ref.From, ref.To, kind))...)
	}
	path := filepath.Join(outputDir, "references.txt")
	if err := renameio.WriteFile(path, out, 0o666); err != nil {
		return xerrors.Errorf("dpc: writing references.txt: %w: %v", dpcerr.ErrIOFailure, err)
	}
	return nil
}
