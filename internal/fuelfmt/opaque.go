package fuelfmt

import (
	"encoding/json"

	"github.com/widberg/godpc/internal/schema"
)

// OpaqueObject is the JSON shape used for classes whose body the original
// toolchain never gave a typed schema either: a ResourceObjectZ header
// (parsed, since that much is common to nearly every class) plus the body
// carried as an opaque byte blob. Several real classes never progressed
// past this in the original (AnimFrame_Z, CameraZone_Z, Occluder_Z,
// Graph_Z, Light_Z, HFogData_Z, HFog_Z, Flare_Z, FlareData_Z, GwRoad_Z) —
// modeling them as opaque here matches the original's actual behavior
// rather than inventing a schema with no ground truth.
type OpaqueObject struct {
	Header ResourceObjectZ `json:"header"`
	Body   []byte          `json:"body"`
}

// HardLinks is empty: an opaque object's body is never parsed, so this
// codec can't tell which of the header's crc32s (if any) are load-bearing
// vs. merely advisory. They're all reported as soft.
func (o OpaqueObject) HardLinks() []uint32 { return nil }

func (o OpaqueObject) SoftLinks() []uint32 { return o.Header.CRC32s }

func UnpackOpaqueResource(_ *ParseContext, header, body []byte) (any, error) {
	h := ReadResourceObjectZ(schema.NewReader(header))
	return OpaqueObject{Header: h, Body: append([]byte(nil), body...)}, nil
}

func PackOpaqueResource(_ *ParseContext, raw json.RawMessage) ([]byte, []byte, error) {
	var obj OpaqueObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, nil, err
	}
	w := schema.NewWriter()
	WriteResourceObjectZ(w, obj.Header)
	return w.Bytes(), obj.Body, nil
}
