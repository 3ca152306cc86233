package fuelfmt

import (
	"encoding/json"

	"github.com/widberg/godpc/internal/schema"
)

// The four small element structs of LodZ's tables, grounded on
// fuel_fmt/lod.rs.
type LodZUnknown0 struct {
	A float32 `json:"a"`
	B float32 `json:"b"`
	C float32 `json:"c"`
	D float32 `json:"d"`
	E uint32  `json:"e"`
	F float32 `json:"f"`
}

func readLodZUnknown0(r *schema.Reader) LodZUnknown0 {
	return LodZUnknown0{A: r.F32LE(), B: r.F32LE(), C: r.F32LE(), D: r.F32LE(), E: r.U32LE(), F: r.F32LE()}
}

func writeLodZUnknown0(w *schema.Writer, v LodZUnknown0) {
	w.F32LE(v.A)
	w.F32LE(v.B)
	w.F32LE(v.C)
	w.F32LE(v.D)
	w.U32LE(v.E)
	w.F32LE(v.F)
}

type LodZUnknown1 struct {
	Transformation Mat4f   `json:"transformation"`
	Q              uint32  `json:"q"`
	R              float32 `json:"r"`
}

func readLodZUnknown1(r *schema.Reader) LodZUnknown1 {
	return LodZUnknown1{Transformation: readMat4f(r), Q: r.U32LE(), R: r.F32LE()}
}

func writeLodZUnknown1(w *schema.Writer, v LodZUnknown1) {
	writeMat4f(w, v.Transformation)
	w.U32LE(v.Q)
	w.F32LE(v.R)
}

type LodZSoundEntry struct {
	ID         uint32 `json:"id"`
	SoundCRC32 uint32 `json:"sound_crc32"`
}

func readLodZSoundEntry(r *schema.Reader) LodZSoundEntry {
	return LodZSoundEntry{ID: r.U32LE(), SoundCRC32: r.U32LE()}
}

func writeLodZSoundEntry(w *schema.Writer, v LodZSoundEntry) {
	w.U32LE(v.ID)
	w.U32LE(v.SoundCRC32)
}

type LodZUnknown4 struct {
	A uint32 `json:"a"`
	B uint32 `json:"b"`
}

func readLodZUnknown4(r *schema.Reader) LodZUnknown4 {
	return LodZUnknown4{A: r.U32LE(), B: r.U32LE()}
}

func writeLodZUnknown4(w *schema.Writer, v LodZUnknown4) {
	w.U32LE(v.A)
	w.U32LE(v.B)
}

// LodZ is the strict body layout. LodZAlt is the opaque fallback used when
// the body doesn't parse exactly, per spec.md §9.
type LodZ struct {
	Unknown0s     []LodZUnknown0   `json:"unknown0s"`
	Unknown1s     []LodZUnknown1   `json:"unknown1s"`
	Unknown2      uint32           `json:"unknown2"`
	Unknown3      uint32           `json:"unknown3"`
	U0            float32          `json:"u0"`
	SkinCRC32s    []uint32         `json:"skin_crc32s"`
	U1            uint32           `json:"u1"`
	SoundEntries  []LodZSoundEntry `json:"sound_entries,omitempty"`
	Unknown4s     []LodZUnknown4   `json:"unknown4s,omitempty"`
	Unknown5      uint32           `json:"unknown5"`
}

func readLodZ(r *schema.Reader) LodZ {
	lod := LodZ{
		Unknown0s: schema.PascalArray(r, true, readLodZUnknown0),
		Unknown1s: schema.PascalArray(r, true, readLodZUnknown1),
		Unknown2:  r.U32LE(),
		Unknown3:  r.U32LE(),
		U0:        r.F32LE(),
	}
	lod.SkinCRC32s = readU32Array(r)
	lod.U1 = r.U32LE()
	if soundEntriesOption := r.U32LE(); soundEntriesOption != 0 {
		lod.SoundEntries = schema.PascalArray(r, true, readLodZSoundEntry)
	}
	if unknown4Option := r.U32LE(); unknown4Option != 0 {
		lod.Unknown4s = schema.PascalArray(r, true, readLodZUnknown4)
	}
	lod.Unknown5 = r.U32LE()
	r.Exact()
	return lod
}

func writeLodZ(w *schema.Writer, lod LodZ) {
	schema.WritePascalArray(w, true, lod.Unknown0s, writeLodZUnknown0)
	schema.WritePascalArray(w, true, lod.Unknown1s, writeLodZUnknown1)
	w.U32LE(lod.Unknown2)
	w.U32LE(lod.Unknown3)
	w.F32LE(lod.U0)
	writeU32Array(w, lod.SkinCRC32s)
	w.U32LE(lod.U1)
	if lod.SoundEntries != nil {
		w.U32LE(1)
		schema.WritePascalArray(w, true, lod.SoundEntries, writeLodZSoundEntry)
	} else {
		w.U32LE(0)
	}
	if lod.Unknown4s != nil {
		w.U32LE(1)
		schema.WritePascalArray(w, true, lod.Unknown4s, writeLodZUnknown4)
	} else {
		w.U32LE(0)
	}
	w.U32LE(lod.Unknown5)
}

type LodObject struct {
	Object ObjectZ `json:"object"`
	Lod    LodZ    `json:"lod"`
}

func (o LodObject) HardLinks() []uint32 { return nil }
func (o LodObject) SoftLinks() []uint32 { return o.Object.CRC32s }

type LodObjectAlt struct {
	Object ObjectZ `json:"object"`
	Lod    []byte  `json:"lod"`
}

func (o LodObjectAlt) HardLinks() []uint32 { return nil }
func (o LodObjectAlt) SoftLinks() []uint32 { return o.Object.CRC32s }

func UnpackLodZ(_ *ParseContext, header, body []byte) (any, error) {
	object := ReadObjectZ(schema.NewReader(header))

	r := schema.NewReader(body)
	lod := readLodZ(r)
	if r.Err() == nil {
		return LodObject{Object: object, Lod: lod}, nil
	}
	return LodObjectAlt{Object: object, Lod: append([]byte(nil), body...)}, nil
}

func PackLodZ(_ *ParseContext, raw json.RawMessage) ([]byte, []byte, error) {
	var probe struct {
		Lod json.RawMessage `json:"lod"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, nil, err
	}

	hw := schema.NewWriter()
	bw := schema.NewWriter()

	if len(probe.Lod) > 0 && probe.Lod[0] == '"' {
		var obj LodObjectAlt
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, nil, err
		}
		WriteObjectZ(hw, obj.Object)
		bw.Raw(obj.Lod)
		return hw.Bytes(), bw.Bytes(), nil
	}

	var obj LodObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, nil, err
	}
	WriteObjectZ(hw, obj.Object)
	writeLodZ(bw, obj.Lod)
	return hw.Bytes(), bw.Bytes(), nil
}
