package fuelfmt

import (
	"encoding/json"

	"github.com/widberg/godpc/internal/schema"
)

type ParticlesZUnknown1 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
	Unknown2 uint32 `json:"unknown2"`
}

func readParticlesZUnknown1(r *schema.Reader) ParticlesZUnknown1 {
	return ParticlesZUnknown1{Unknown0: r.U32LE(), Unknown1: r.U32LE(), Unknown2: r.U32LE()}
}

func writeParticlesZUnknown1(w *schema.Writer, v ParticlesZUnknown1) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
	w.U32LE(v.Unknown2)
}

type ParticlesZUnknown2 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
	Unknown2 uint32 `json:"unknown2"`
	Unknown3 uint32 `json:"unknown3"`
	Unknown4 uint32 `json:"unknown4"`
}

func readParticlesZUnknown2(r *schema.Reader) ParticlesZUnknown2 {
	return ParticlesZUnknown2{Unknown0: r.U32LE(), Unknown1: r.U32LE(), Unknown2: r.U32LE(), Unknown3: r.U32LE(), Unknown4: r.U32LE()}
}

func writeParticlesZUnknown2(w *schema.Writer, v ParticlesZUnknown2) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
	w.U32LE(v.Unknown2)
	w.U32LE(v.Unknown3)
	w.U32LE(v.Unknown4)
}

type ParticlesZUnknown4 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
}

func readParticlesZUnknown4(r *schema.Reader) ParticlesZUnknown4 {
	return ParticlesZUnknown4{Unknown0: r.U32LE(), Unknown1: r.U32LE()}
}

func writeParticlesZUnknown4(w *schema.Writer, v ParticlesZUnknown4) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
}

type ParticlesZUnknown5 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
	Unknown2 uint32 `json:"unknown2"`
	Unknown3 uint32 `json:"unknown3"`
}

func readParticlesZUnknown5(r *schema.Reader) ParticlesZUnknown5 {
	return ParticlesZUnknown5{Unknown0: r.U32LE(), Unknown1: r.U32LE(), Unknown2: r.U32LE(), Unknown3: r.U32LE()}
}

func writeParticlesZUnknown5(w *schema.Writer, v ParticlesZUnknown5) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
	w.U32LE(v.Unknown2)
	w.U32LE(v.Unknown3)
}

// ParticlesZUnknown0 packs a 19-word fixed header plus seven
// flag-then-length-counted tables, grounded on fuel_fmt/particles.rs. Each
// "flagN" is a u16 kept purely because the original keeps it (it isn't a
// conditional like LodZ's options, just an always-present tag word ahead
// of the table).
type ParticlesZUnknown0 struct {
	Data          [19]uint32           `json:"data"`
	Unknown1Flag  uint16                `json:"unknown1flag"`
	Unknown1s     []ParticlesZUnknown1  `json:"unknown1s"`
	Unknown2Flag  uint16                `json:"unknown2flag"`
	Unknown2s     []ParticlesZUnknown2  `json:"unknown2s"`
	Unknown3Flag  uint16                `json:"unknown3flag"`
	Unknown3s     []ParticlesZUnknown2  `json:"unknown3s"`
	Unknown4Flag  uint16                `json:"unknown4flag"`
	Unknown4s     []ParticlesZUnknown4  `json:"unknown4s"`
	Unknown5Flag  uint16                `json:"unknown5flag"`
	Unknown5s     []ParticlesZUnknown5  `json:"unknown5s"`
	Unknown6Flag  uint16                `json:"unknown6flag"`
	Unknown6s     []ParticlesZUnknown5  `json:"unknown6s"`
	Unknown7Flag  uint16                `json:"unknown7flag"`
	Unknown7s     []ParticlesZUnknown4  `json:"unknown7s"`
	Unknown8       uint32               `json:"unknown8"`
}

func readParticlesZUnknown0(r *schema.Reader) ParticlesZUnknown0 {
	var p ParticlesZUnknown0
	for i := range p.Data {
		p.Data[i] = r.U32LE()
	}
	p.Unknown1Flag = r.U16LE()
	p.Unknown1s = schema.PascalArray(r, true, readParticlesZUnknown1)
	p.Unknown2Flag = r.U16LE()
	p.Unknown2s = schema.PascalArray(r, true, readParticlesZUnknown2)
	p.Unknown3Flag = r.U16LE()
	p.Unknown3s = schema.PascalArray(r, true, readParticlesZUnknown2)
	p.Unknown4Flag = r.U16LE()
	p.Unknown4s = schema.PascalArray(r, true, readParticlesZUnknown4)
	p.Unknown5Flag = r.U16LE()
	p.Unknown5s = schema.PascalArray(r, true, readParticlesZUnknown5)
	p.Unknown6Flag = r.U16LE()
	p.Unknown6s = schema.PascalArray(r, true, readParticlesZUnknown5)
	p.Unknown7Flag = r.U16LE()
	p.Unknown7s = schema.PascalArray(r, true, readParticlesZUnknown4)
	p.Unknown8 = r.U32LE()
	return p
}

func writeParticlesZUnknown0(w *schema.Writer, p ParticlesZUnknown0) {
	for _, v := range p.Data {
		w.U32LE(v)
	}
	w.U16LE(p.Unknown1Flag)
	schema.WritePascalArray(w, true, p.Unknown1s, writeParticlesZUnknown1)
	w.U16LE(p.Unknown2Flag)
	schema.WritePascalArray(w, true, p.Unknown2s, writeParticlesZUnknown2)
	w.U16LE(p.Unknown3Flag)
	schema.WritePascalArray(w, true, p.Unknown3s, writeParticlesZUnknown2)
	w.U16LE(p.Unknown4Flag)
	schema.WritePascalArray(w, true, p.Unknown4s, writeParticlesZUnknown4)
	w.U16LE(p.Unknown5Flag)
	schema.WritePascalArray(w, true, p.Unknown5s, writeParticlesZUnknown5)
	w.U16LE(p.Unknown6Flag)
	schema.WritePascalArray(w, true, p.Unknown6s, writeParticlesZUnknown5)
	w.U16LE(p.Unknown7Flag)
	schema.WritePascalArray(w, true, p.Unknown7s, writeParticlesZUnknown4)
	w.U32LE(p.Unknown8)
}

// ParticlesZ is the strict body layout; ParticlesZAlt is the opaque
// fallback, per spec.md §9.
type ParticlesZ struct {
	Unknown0s []ParticlesZUnknown0 `json:"unknown0s"`
	Mats      []Mat4f              `json:"mats"`
	Unknown2  uint32               `json:"unknown2"`
	Unknown3  uint16               `json:"unknown3"`
}

func readParticlesZ(r *schema.Reader) ParticlesZ {
	p := ParticlesZ{
		Unknown0s: schema.PascalArray(r, true, readParticlesZUnknown0),
		Mats:      schema.PascalArray(r, true, readMat4f),
	}
	p.Unknown2 = r.U32LE()
	p.Unknown3 = r.U16LE()
	r.Exact()
	return p
}

func writeParticlesZ(w *schema.Writer, p ParticlesZ) {
	schema.WritePascalArray(w, true, p.Unknown0s, writeParticlesZUnknown0)
	schema.WritePascalArray(w, true, p.Mats, writeMat4f)
	w.U32LE(p.Unknown2)
	w.U16LE(p.Unknown3)
}

type ParticlesObject struct {
	Object    ObjectZ    `json:"object"`
	Particles ParticlesZ `json:"particles"`
}

func (o ParticlesObject) HardLinks() []uint32 { return nil }
func (o ParticlesObject) SoftLinks() []uint32 { return o.Object.CRC32s }

type ParticlesObjectAlt struct {
	Object    ObjectZ `json:"object"`
	Particles []byte  `json:"particles"`
}

func (o ParticlesObjectAlt) HardLinks() []uint32 { return nil }
func (o ParticlesObjectAlt) SoftLinks() []uint32 { return o.Object.CRC32s }

func UnpackParticlesZ(_ *ParseContext, header, body []byte) (any, error) {
	object := ReadObjectZ(schema.NewReader(header))

	r := schema.NewReader(body)
	particles := readParticlesZ(r)
	if r.Err() == nil {
		return ParticlesObject{Object: object, Particles: particles}, nil
	}
	return ParticlesObjectAlt{Object: object, Particles: append([]byte(nil), body...)}, nil
}

func PackParticlesZ(_ *ParseContext, raw json.RawMessage) ([]byte, []byte, error) {
	var probe struct {
		Particles json.RawMessage `json:"particles"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, nil, err
	}

	hw := schema.NewWriter()
	bw := schema.NewWriter()

	if len(probe.Particles) > 0 && probe.Particles[0] == '"' {
		var obj ParticlesObjectAlt
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, nil, err
		}
		WriteObjectZ(hw, obj.Object)
		bw.Raw(obj.Particles)
		return hw.Bytes(), bw.Bytes(), nil
	}

	var obj ParticlesObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, nil, err
	}
	WriteObjectZ(hw, obj.Object)
	writeParticlesZ(bw, obj.Particles)
	return hw.Bytes(), bw.Bytes(), nil
}
