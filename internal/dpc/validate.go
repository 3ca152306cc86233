package dpc

import (
	"encoding/json"

	"golang.org/x/xerrors"

	"github.com/widberg/godpc/internal/dpcerr"
	"github.com/widberg/godpc/internal/schema"
)

// ValidationReport is the structure Validate dumps to JSON for diffing
// against a second parse, per spec.md §4.4.4.
type ValidationReport struct {
	Header  PrimaryHeader          `json:"header"`
	Objects []ValidationObject     `json:"objects"`
	Pool    *ValidationPoolSummary `json:"pool,omitempty"`
}

type ValidationObject struct {
	BlockIndex int          `json:"block_index"`
	Header     ObjectHeader `json:"header"`
}

type ValidationPoolSummary struct {
	ObjectsCRC32CountSum uint32 `json:"objects_crc32_count_sum"`
	ReferenceRecordCount int    `json:"reference_record_count"`
}

// Validate strictly parses a DPC buffer, checking every per-object size
// invariant and that the file is consumed exactly (no trailing bytes
// outside sector padding), then returns the parsed structure for
// JSON-diffing against another run.
func Validate(input []byte) (ValidationReport, error) {
	if len(input) < headerSize {
		return ValidationReport{}, xerrors.Errorf("dpc: file shorter than primary header: %w", dpcerr.ErrMalformedContainer)
	}
	header, err := ReadPrimaryHeader(input[:headerSize])
	if err != nil {
		return ValidationReport{}, err
	}

	report := ValidationReport{Header: header}
	pos := uint32(headerSize)

	for bi, bd := range header.BlockDescriptions {
		if pos+bd.PaddedSize > uint32(len(input)) {
			return ValidationReport{}, xerrors.Errorf("dpc: block %d extends past end of file: %w", bi, dpcerr.ErrMalformedContainer)
		}
		blockBuf := input[pos : pos+bd.PaddedSize]
		pos += bd.PaddedSize

		off := uint32(0)
		for oi := uint32(0); oi < bd.ObjectCount; oi++ {
			if off+objectHeaderSize > uint32(len(blockBuf)) {
				return ValidationReport{}, xerrors.Errorf("dpc: block %d object %d: header runs past block: %w", bi, oi, dpcerr.ErrMalformedContainer)
			}
			r := schema.NewReader(blockBuf[off : off+objectHeaderSize])
			oh := ReadObjectHeader(r)
			if err := oh.CheckSizeInvariant(); err != nil {
				return ValidationReport{}, xerrors.Errorf("dpc: block %d object %d: %w", bi, oi, err)
			}
			report.Objects = append(report.Objects, ValidationObject{BlockIndex: bi, Header: oh})

			off += objectHeaderSize + oh.DataSize
			if off > uint32(len(blockBuf)) {
				return ValidationReport{}, xerrors.Errorf("dpc: block %d object %d: body runs past block: %w", bi, oi, dpcerr.ErrMalformedContainer)
			}
		}
		if off != bd.DataSize {
			return ValidationReport{}, xerrors.Errorf("dpc: block %d: object walk length %d != data_size %d: %w", bi, off, bd.DataSize, dpcerr.ErrMalformedContainer)
		}
	}

	fileEnd := pos
	if header.PoolManifestOffset != 0 {
		start := header.PoolManifestOffset
		end := start + header.PoolManifestPaddedSize
		if end > uint32(len(input)) {
			return ValidationReport{}, xerrors.Errorf("dpc: pool manifest extends past end of file: %w", dpcerr.ErrMalformedContainer)
		}
		pm, err := ReadPoolManifest(input[start:end])
		if err != nil {
			return ValidationReport{}, err
		}
		report.Pool = &ValidationPoolSummary{
			ObjectsCRC32CountSum: pm.ObjectsCRC32CountSum,
			ReferenceRecordCount: len(pm.ReferenceRecords),
		}
		fileEnd = end
		for _, s := range pm.ObjectPaddedSizes {
			fileEnd += s
		}
	}
	if fileEnd != uint32(len(input)) {
		return ValidationReport{}, xerrors.Errorf("dpc: parsed layout ends at %d but file is %d bytes: %w", fileEnd, len(input), dpcerr.ErrMalformedContainer)
	}

	return report, nil
}

// ValidateJSON implements the "Validate = JSON" testable property: it
// succeeds (returning the marshaled report) iff Validate succeeds.
func ValidateJSON(input []byte) ([]byte, error) {
	report, err := Validate(input)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(report, "", "  ")
}
