package fuelfmt

import (
	"encoding/json"
	"fmt"

	"golang.org/x/xerrors"

	"github.com/widberg/godpc/internal/dpcerr"
	"github.com/widberg/godpc/internal/schema"
)

// MaterialZ has three body layouts selected purely by exact byte length —
// 172, 177 or 181 — never by a declared discriminator field, matching
// fuel_fmt/material.rs. All three share the same Vec4f color / Vec3f
// emission / i32 unknown0 head.
const (
	materialZLen     = 172
	materialZAltLen  = 177
	materialZAltAlt  = 181
	materialZFloats0 = 26
	materialZFloats1 = 28
	materialZFloats2 = 31
)

type materialZHead struct {
	Color    Vec4f   `json:"color"`
	Emission Vec3f   `json:"emission"`
	Unknown0 int32   `json:"unknown0"`
}

func readMaterialZHead(r *schema.Reader) materialZHead {
	return materialZHead{Color: readVec4f(r), Emission: readVec3f(r), Unknown0: r.I32LE()}
}

func writeMaterialZHead(w *schema.Writer, h materialZHead) {
	writeVec4f(w, h.Color)
	writeVec3f(w, h.Emission)
	w.I32LE(h.Unknown0)
}

// MaterialZBody is the 172-byte variant: fixed float constants plus nine
// named bitmap crc32s.
type MaterialZBody struct {
	materialZHead
	VertexShaderConstantFS []float32 `json:"vertex_shader_constant_fs"`
	DiffuseBitmapCRC32     uint32    `json:"diffuse_bitmap_crc32"`
	UnknownBitmapCRC320    uint32    `json:"unknown_bitmap_crc32_0"`
	MetalBitmapCRC32       uint32    `json:"metal_bitmap_crc32"`
	UnknownBitmapCRC321    uint32    `json:"unknown_bitmap_crc32_1"`
	GreyBitmapCRC32        uint32    `json:"grey_bitmap_crc32"`
	NormalBitmapCRC32      uint32    `json:"normal_bitmap_crc32"`
	DirtBitmapCRC32        uint32    `json:"dirt_bitmap_crc32"`
	UnknownBitmapCRC322    uint32    `json:"unknown_bitmap_crc32_2"`
	UnknownBitmapCRC323    uint32    `json:"unknown_bitmap_crc32_3"`
}

// MaterialZAltBody is the 177-byte variant.
type MaterialZAltBody struct {
	materialZHead
	VertexShaderConstantFS []float32 `json:"vertex_shader_constant_fs"`
	Opt                    uint8     `json:"-"`
	UnknownCRC320          *uint32   `json:"unknown_crc32_0,omitempty"`
	UnknownCRC321          *uint32   `json:"unknown_crc32_1,omitempty"`
	BitmapCRC32s           []uint32  `json:"bitmap_crc32s"`
}

// MaterialZAltAltBody is the 181-byte variant.
type MaterialZAltAltBody struct {
	materialZHead
	VertexShaderConstantFS []float32 `json:"vertex_shader_constant_fs"`
	Opt                    uint8     `json:"opt"`
	BitmapCRC32s           []uint32  `json:"bitmap_crc32s"`
}

type MaterialObject struct {
	ResourceObject ResourceObjectZ `json:"resource_object"`
	Material       any             `json:"material"`
	variant        int             // not serialized; tracks which body shape populated Material
}

// HardLinks reports the bitmap crc32s a material body needs to render: a
// material is incomplete without them, unlike a header's advisory crc32s
// list.
func (o MaterialObject) HardLinks() []uint32 {
	switch m := o.Material.(type) {
	case MaterialZBody:
		return []uint32{m.DiffuseBitmapCRC32, m.UnknownBitmapCRC320, m.MetalBitmapCRC32, m.UnknownBitmapCRC321,
			m.GreyBitmapCRC32, m.NormalBitmapCRC32, m.DirtBitmapCRC32, m.UnknownBitmapCRC322, m.UnknownBitmapCRC323}
	case MaterialZAltBody:
		return append([]uint32(nil), m.BitmapCRC32s...)
	case MaterialZAltAltBody:
		return append([]uint32(nil), m.BitmapCRC32s...)
	default:
		return nil
	}
}

func (o MaterialObject) SoftLinks() []uint32 { return o.ResourceObject.CRC32s }

func readFloatsLE(r *schema.Reader, n int) []float32 {
	return schema.FixedVec(r, n, func(r *schema.Reader) float32 { return r.F32LE() })
}

func writeFloatsLE(w *schema.Writer, v []float32) {
	schema.WriteFixedVec(w, v, func(w *schema.Writer, f float32) { w.F32LE(f) })
}

func UnpackMaterialZ(_ *ParseContext, header, body []byte) (any, error) {
	resourceObject := ReadResourceObjectZ(schema.NewReader(header))

	r := schema.NewReader(body)
	switch len(body) {
	case materialZLen:
		m := MaterialZBody{materialZHead: readMaterialZHead(r)}
		m.VertexShaderConstantFS = readFloatsLE(r, materialZFloats0)
		m.DiffuseBitmapCRC32 = r.U32LE()
		m.UnknownBitmapCRC320 = r.U32LE()
		m.MetalBitmapCRC32 = r.U32LE()
		m.UnknownBitmapCRC321 = r.U32LE()
		m.GreyBitmapCRC32 = r.U32LE()
		m.NormalBitmapCRC32 = r.U32LE()
		m.DirtBitmapCRC32 = r.U32LE()
		m.UnknownBitmapCRC322 = r.U32LE()
		m.UnknownBitmapCRC323 = r.U32LE()
		r.Exact()
		if r.Err() != nil {
			return nil, r.Err()
		}
		return MaterialObject{ResourceObject: resourceObject, Material: m, variant: 0}, nil

	case materialZAltLen:
		m := MaterialZAltBody{materialZHead: readMaterialZHead(r)}
		m.VertexShaderConstantFS = readFloatsLE(r, materialZFloats1)
		m.Opt = r.U8()
		if m.Opt != 0 {
			v0 := r.U32LE()
			v1 := r.U32LE()
			m.UnknownCRC320, m.UnknownCRC321 = &v0, &v1
		}
		m.BitmapCRC32s = schema.FixedVec(r, 6, func(r *schema.Reader) uint32 { return r.U32LE() })
		r.Exact()
		if r.Err() != nil {
			return nil, r.Err()
		}
		return MaterialObject{ResourceObject: resourceObject, Material: m, variant: 1}, nil

	case materialZAltAlt:
		m := MaterialZAltAltBody{materialZHead: readMaterialZHead(r)}
		m.VertexShaderConstantFS = readFloatsLE(r, materialZFloats2)
		m.Opt = r.U8()
		m.BitmapCRC32s = schema.FixedVec(r, 6, func(r *schema.Reader) uint32 { return r.U32LE() })
		r.Exact()
		if r.Err() != nil {
			return nil, r.Err()
		}
		return MaterialObject{ResourceObject: resourceObject, Material: m, variant: 2}, nil

	default:
		return nil, xerrors.Errorf("material_z: body length %d matches none of {172,177,181}: %w", len(body), dpcerr.ErrMalformedObject)
	}
}

func PackMaterialZ(_ *ParseContext, raw json.RawMessage) ([]byte, []byte, error) {
	var shape struct {
		ResourceObject ResourceObjectZ `json:"resource_object"`
		Material       json.RawMessage `json:"material"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, nil, err
	}

	hw := schema.NewWriter()
	WriteResourceObjectZ(hw, shape.ResourceObject)

	bw := schema.NewWriter()

	var probe struct {
		Opt          *uint8   `json:"opt"`
		BitmapCRC32s []uint32 `json:"bitmap_crc32s"`
	}
	if err := json.Unmarshal(shape.Material, &probe); err != nil {
		return nil, nil, err
	}

	switch {
	case probe.Opt == nil && probe.BitmapCRC32s == nil:
		var m MaterialZBody
		if err := json.Unmarshal(shape.Material, &m); err != nil {
			return nil, nil, err
		}
		writeMaterialZHead(bw, m.materialZHead)
		writeFloatsLE(bw, m.VertexShaderConstantFS)
		bw.U32LE(m.DiffuseBitmapCRC32)
		bw.U32LE(m.UnknownBitmapCRC320)
		bw.U32LE(m.MetalBitmapCRC32)
		bw.U32LE(m.UnknownBitmapCRC321)
		bw.U32LE(m.GreyBitmapCRC32)
		bw.U32LE(m.NormalBitmapCRC32)
		bw.U32LE(m.DirtBitmapCRC32)
		bw.U32LE(m.UnknownBitmapCRC322)
		bw.U32LE(m.UnknownBitmapCRC323)

	case len(m181Floats(shape.Material)) == materialZFloats2:
		var m MaterialZAltAltBody
		if err := json.Unmarshal(shape.Material, &m); err != nil {
			return nil, nil, err
		}
		writeMaterialZHead(bw, m.materialZHead)
		writeFloatsLE(bw, m.VertexShaderConstantFS)
		bw.U8(m.Opt)
		schema.WriteFixedVec(bw, m.BitmapCRC32s, func(w *schema.Writer, v uint32) { w.U32LE(v) })

	default:
		var m MaterialZAltBody
		if err := json.Unmarshal(shape.Material, &m); err != nil {
			return nil, nil, err
		}
		writeMaterialZHead(bw, m.materialZHead)
		writeFloatsLE(bw, m.VertexShaderConstantFS)
		opt := uint8(0)
		if m.UnknownCRC320 != nil {
			opt = 1
		}
		bw.U8(opt)
		if opt != 0 {
			bw.U32LE(*m.UnknownCRC320)
			bw.U32LE(*m.UnknownCRC321)
		}
		schema.WriteFixedVec(bw, m.BitmapCRC32s, func(w *schema.Writer, v uint32) { w.U32LE(v) })
	}

	if bw.Len() != materialZLen && bw.Len() != materialZAltLen && bw.Len() != materialZAltAlt {
		return nil, nil, fmt.Errorf("material_z: re-encoded body length %d matches none of {172,177,181}", bw.Len())
	}

	return hw.Bytes(), bw.Bytes(), nil
}

// m181Floats is a small helper used only to disambiguate MaterialZAltAltBody
// from MaterialZAltBody when re-packing: the AltAlt variant's
// vertex_shader_constant_fs carries 31 floats against AltBody's 28.
func m181Floats(raw json.RawMessage) []float32 {
	var probe struct {
		VertexShaderConstantFS []float32 `json:"vertex_shader_constant_fs"`
	}
	_ = json.Unmarshal(raw, &probe)
	return probe.VertexShaderConstantFS
}
