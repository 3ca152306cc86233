package fuelfmt

import (
	"encoding/json"

	"github.com/widberg/godpc/internal/schema"
)

// SkinZSkinSubsection's data field is read_count elements long, where
// read_count comes from the enclosing SkinZ's data_count field — the
// original keeps this in a mutable static (SKIN_DATA_COUNT); here it's
// threaded through ctx.SkinDataCount instead, per context.go's doc comment.
type SkinZSkinSubsection struct {
	VertexGroupCRC32 uint32   `json:"vertex_group_crc32"`
	UnknownCRC320    uint32   `json:"unknown_crc32_0"`
	UnknownCRC321    uint32   `json:"unknown_crc32_1"`
	UnknownCRC322    uint32   `json:"unknown_crc32_2"`
	Data             []uint32 `json:"data"`
}

func readSkinZSkinSubsection(ctx *ParseContext, r *schema.Reader) SkinZSkinSubsection {
	s := SkinZSkinSubsection{
		VertexGroupCRC32: r.U32LE(),
		UnknownCRC320:    r.U32LE(),
		UnknownCRC321:    r.U32LE(),
		UnknownCRC322:    r.U32LE(),
	}
	s.Data = schema.FixedVec(r, int(ctx.SkinDataCount), func(r *schema.Reader) uint32 { return r.U32LE() })
	return s
}

func writeSkinZSkinSubsection(w *schema.Writer, v SkinZSkinSubsection) {
	w.U32LE(v.VertexGroupCRC32)
	w.U32LE(v.UnknownCRC320)
	w.U32LE(v.UnknownCRC321)
	w.U32LE(v.UnknownCRC322)
	schema.WriteFixedVec(w, v.Data, func(w *schema.Writer, v uint32) { w.U32LE(v) })
}

type SkinZSkinSection struct {
	SkinSubsections []SkinZSkinSubsection `json:"skin_subsections"`
}

func readSkinZSkinSection(ctx *ParseContext, r *schema.Reader) SkinZSkinSection {
	return SkinZSkinSection{
		SkinSubsections: schema.PascalArray(r, true, func(r *schema.Reader) SkinZSkinSubsection {
			return readSkinZSkinSubsection(ctx, r)
		}),
	}
}

func writeSkinZSkinSection(w *schema.Writer, v SkinZSkinSection) {
	schema.WritePascalArray(w, true, v.SkinSubsections, writeSkinZSkinSubsection)
}

// SkinZ is the strict body layout, grounded on fuel_fmt/skin.rs. SkinZAlt
// is the opaque fallback, per spec.md §9.
type SkinZ struct {
	MeshCRC32s    []uint32           `json:"mesh_crc32s"`
	U0            uint32             `json:"u0"`
	U1            uint32             `json:"u1"`
	U2            uint32             `json:"u2"`
	U3            uint32             `json:"u3"`
	OneAndAHalf   float32            `json:"one_and_a_half"`
	DataCount     uint32             `json:"data_count"`
	SkinSections  []SkinZSkinSection `json:"skin_sections"`
}

func readSkinZ(ctx *ParseContext, r *schema.Reader) SkinZ {
	s := SkinZ{
		MeshCRC32s:  readU32Array(r),
		U0:          r.U32LE(),
		U1:          r.U32LE(),
		U2:          r.U32LE(),
		U3:          r.U32LE(),
		OneAndAHalf: r.F32LE(),
	}
	s.DataCount = r.U32LE()
	ctx.SkinDataCount = s.DataCount
	s.SkinSections = schema.PascalArray(r, true, func(r *schema.Reader) SkinZSkinSection {
		return readSkinZSkinSection(ctx, r)
	})
	r.Exact()
	return s
}

func writeSkinZ(w *schema.Writer, s SkinZ) {
	writeU32Array(w, s.MeshCRC32s)
	w.U32LE(s.U0)
	w.U32LE(s.U1)
	w.U32LE(s.U2)
	w.U32LE(s.U3)
	w.F32LE(s.OneAndAHalf)
	w.U32LE(s.DataCount)
	schema.WritePascalArray(w, true, s.SkinSections, writeSkinZSkinSection)
}

type SkinObject struct {
	Object ObjectZ `json:"object"`
	Skin   SkinZ   `json:"skin"`
}

func (o SkinObject) HardLinks() []uint32 { return nil }
func (o SkinObject) SoftLinks() []uint32 { return o.Object.CRC32s }

type SkinObjectAlt struct {
	Object ObjectZ `json:"object"`
	Skin   []byte  `json:"skin"`
}

func (o SkinObjectAlt) HardLinks() []uint32 { return nil }
func (o SkinObjectAlt) SoftLinks() []uint32 { return o.Object.CRC32s }

func UnpackSkinZ(ctx *ParseContext, header, body []byte) (any, error) {
	object := ReadObjectZ(schema.NewReader(header))

	r := schema.NewReader(body)
	skin := readSkinZ(ctx, r)
	if r.Err() == nil {
		return SkinObject{Object: object, Skin: skin}, nil
	}
	return SkinObjectAlt{Object: object, Skin: append([]byte(nil), body...)}, nil
}

func PackSkinZ(_ *ParseContext, raw json.RawMessage) ([]byte, []byte, error) {
	var probe struct {
		Skin json.RawMessage `json:"skin"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, nil, err
	}

	hw := schema.NewWriter()
	bw := schema.NewWriter()

	if len(probe.Skin) > 0 && probe.Skin[0] == '"' {
		var obj SkinObjectAlt
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, nil, err
		}
		WriteObjectZ(hw, obj.Object)
		bw.Raw(obj.Skin)
		return hw.Bytes(), bw.Bytes(), nil
	}

	var obj SkinObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, nil, err
	}
	WriteObjectZ(hw, obj.Object)
	writeSkinZ(bw, obj.Skin)
	return hw.Bytes(), bw.Bytes(), nil
}
