package fuelfmt

import (
	"encoding/json"

	"github.com/widberg/godpc/internal/schema"
)

// Rtc_Z's nested element structs, grounded on fuel_fmt/rtc.rs. The names
// mirror the original's unknownN identifiers verbatim; none of these
// fields have ever been given semantic names in the source itself.
type RtcZUnknown1Unknown2 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
	Unknown2 uint32 `json:"unknown2"`
}

func readRtcZUnknown1Unknown2(r *schema.Reader) RtcZUnknown1Unknown2 {
	return RtcZUnknown1Unknown2{r.U32LE(), r.U32LE(), r.U32LE()}
}
func writeRtcZUnknown1Unknown2(w *schema.Writer, v RtcZUnknown1Unknown2) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
	w.U32LE(v.Unknown2)
}

type RtcZUnknown1Unknown3Unknown struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
}

func readRtcZUnknown1Unknown3Unknown(r *schema.Reader) RtcZUnknown1Unknown3Unknown {
	return RtcZUnknown1Unknown3Unknown{r.U32LE(), r.U32LE()}
}
func writeRtcZUnknown1Unknown3Unknown(w *schema.Writer, v RtcZUnknown1Unknown3Unknown) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
}

type RtcZUnknown1Unknown3 struct {
	Unknowns [5]RtcZUnknown1Unknown3Unknown `json:"unknowns"`
}

func readRtcZUnknown1Unknown3(r *schema.Reader) RtcZUnknown1Unknown3 {
	var v RtcZUnknown1Unknown3
	for i := range v.Unknowns {
		v.Unknowns[i] = readRtcZUnknown1Unknown3Unknown(r)
	}
	return v
}
func writeRtcZUnknown1Unknown3(w *schema.Writer, v RtcZUnknown1Unknown3) {
	for _, u := range v.Unknowns {
		writeRtcZUnknown1Unknown3Unknown(w, u)
	}
}

type RtcZUnknown1Unknown5Unknown1 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
	Unknown2 uint32 `json:"unknown2"`
	Unknown3 uint32 `json:"unknown3"`
	Unknown4 uint32 `json:"unknown4"`
}

func readRtcZUnknown1Unknown5Unknown1(r *schema.Reader) RtcZUnknown1Unknown5Unknown1 {
	return RtcZUnknown1Unknown5Unknown1{r.U32LE(), r.U32LE(), r.U32LE(), r.U32LE(), r.U32LE()}
}
func writeRtcZUnknown1Unknown5Unknown1(w *schema.Writer, v RtcZUnknown1Unknown5Unknown1) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
	w.U32LE(v.Unknown2)
	w.U32LE(v.Unknown3)
	w.U32LE(v.Unknown4)
}

type RtcZUnknown1Unknown5 struct {
	Unknown0  uint32                         `json:"unknown0"`
	Unknown1s []RtcZUnknown1Unknown5Unknown1 `json:"unknown1s"`
}

func readRtcZUnknown1Unknown5(r *schema.Reader) RtcZUnknown1Unknown5 {
	return RtcZUnknown1Unknown5{r.U32LE(), schema.PascalArray(r, true, readRtcZUnknown1Unknown5Unknown1)}
}
func writeRtcZUnknown1Unknown5(w *schema.Writer, v RtcZUnknown1Unknown5) {
	w.U32LE(v.Unknown0)
	schema.WritePascalArray(w, true, v.Unknown1s, writeRtcZUnknown1Unknown5Unknown1)
}

type RtcZUnknown1 struct {
	UnknownNodeCRC32 uint32                  `json:"unknown_node_crc32"`
	Unknown1         uint16                  `json:"unknown1"`
	Unknown2s        []RtcZUnknown1Unknown2  `json:"unknown2s"`
	Unknown3Flag     uint16                  `json:"unknown3flag"`
	Unknown3s        []RtcZUnknown1Unknown3  `json:"unknown3s"`
	Unknown4Flag     uint16                  `json:"unknown4flag"`
	Unknown4s        []RtcZUnknown1Unknown3  `json:"unknown4s"`
	Unknown5s        []RtcZUnknown1Unknown5  `json:"unknown5s"`
}

func readRtcZUnknown1(r *schema.Reader) RtcZUnknown1 {
	return RtcZUnknown1{
		UnknownNodeCRC32: r.U32LE(),
		Unknown1:         r.U16LE(),
		Unknown2s:        schema.PascalArray(r, true, readRtcZUnknown1Unknown2),
		Unknown3Flag:     r.U16LE(),
		Unknown3s:        schema.PascalArray(r, true, readRtcZUnknown1Unknown3),
		Unknown4Flag:     r.U16LE(),
		Unknown4s:        schema.PascalArray(r, true, readRtcZUnknown1Unknown3),
		Unknown5s:        schema.PascalArray(r, true, readRtcZUnknown1Unknown5),
	}
}
func writeRtcZUnknown1(w *schema.Writer, v RtcZUnknown1) {
	w.U32LE(v.UnknownNodeCRC32)
	w.U16LE(v.Unknown1)
	schema.WritePascalArray(w, true, v.Unknown2s, writeRtcZUnknown1Unknown2)
	w.U16LE(v.Unknown3Flag)
	schema.WritePascalArray(w, true, v.Unknown3s, writeRtcZUnknown1Unknown3)
	w.U16LE(v.Unknown4Flag)
	schema.WritePascalArray(w, true, v.Unknown4s, writeRtcZUnknown1Unknown3)
	schema.WritePascalArray(w, true, v.Unknown5s, writeRtcZUnknown1Unknown5)
}

type RtcZUnknown2Unknown2 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
	Unknown2 uint32 `json:"unknown2"`
}

func readRtcZUnknown2Unknown2(r *schema.Reader) RtcZUnknown2Unknown2 {
	return RtcZUnknown2Unknown2{r.U32LE(), r.U32LE(), r.U32LE()}
}
func writeRtcZUnknown2Unknown2(w *schema.Writer, v RtcZUnknown2Unknown2) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
	w.U32LE(v.Unknown2)
}

type RtcZUnknown2Unknown4 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
	Unknown2 uint32 `json:"unknown2"`
	Unknown3 uint32 `json:"unknown3"`
}

func readRtcZUnknown2Unknown4(r *schema.Reader) RtcZUnknown2Unknown4 {
	return RtcZUnknown2Unknown4{r.U32LE(), r.U32LE(), r.U32LE(), r.U32LE()}
}
func writeRtcZUnknown2Unknown4(w *schema.Writer, v RtcZUnknown2Unknown4) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
	w.U32LE(v.Unknown2)
	w.U32LE(v.Unknown3)
}

type RtcZUnknown2 struct {
	Unknown0     uint32                  `json:"unknown0"`
	Unknown1     uint16                  `json:"unknown1"`
	Unknown2Flag uint16                  `json:"unknown2flag"`
	Unknown2s    []RtcZUnknown2Unknown2  `json:"unknown2s"`
	Unknown3Flag uint16                  `json:"unknown3flag"`
	Unknown3s    []RtcZUnknown2Unknown2  `json:"unknown3s"`
	Unknown4Flag uint16                  `json:"unknown4flag"`
	Unknown4s    []RtcZUnknown2Unknown4  `json:"unknown4s"`
	Unknown5Flag uint16                  `json:"unknown5flag"`
	Unknown5s    []RtcZUnknown2Unknown2  `json:"unknown5s"`
}

func readRtcZUnknown2(r *schema.Reader) RtcZUnknown2 {
	return RtcZUnknown2{
		Unknown0:     r.U32LE(),
		Unknown1:     r.U16LE(),
		Unknown2Flag: r.U16LE(),
		Unknown2s:    schema.PascalArray(r, true, readRtcZUnknown2Unknown2),
		Unknown3Flag: r.U16LE(),
		Unknown3s:    schema.PascalArray(r, true, readRtcZUnknown2Unknown2),
		Unknown4Flag: r.U16LE(),
		Unknown4s:    schema.PascalArray(r, true, readRtcZUnknown2Unknown4),
		Unknown5Flag: r.U16LE(),
		Unknown5s:    schema.PascalArray(r, true, readRtcZUnknown2Unknown2),
	}
}
func writeRtcZUnknown2(w *schema.Writer, v RtcZUnknown2) {
	w.U32LE(v.Unknown0)
	w.U16LE(v.Unknown1)
	w.U16LE(v.Unknown2Flag)
	schema.WritePascalArray(w, true, v.Unknown2s, writeRtcZUnknown2Unknown2)
	w.U16LE(v.Unknown3Flag)
	schema.WritePascalArray(w, true, v.Unknown3s, writeRtcZUnknown2Unknown2)
	w.U16LE(v.Unknown4Flag)
	schema.WritePascalArray(w, true, v.Unknown4s, writeRtcZUnknown2Unknown4)
	w.U16LE(v.Unknown5Flag)
	schema.WritePascalArray(w, true, v.Unknown5s, writeRtcZUnknown2Unknown2)
}

type RtcZUnknown4RtcZUnknown5Unknown struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
}

func readRtcZUnknown4RtcZUnknown5Unknown(r *schema.Reader) RtcZUnknown4RtcZUnknown5Unknown {
	return RtcZUnknown4RtcZUnknown5Unknown{r.U32LE(), r.U32LE()}
}
func writeRtcZUnknown4RtcZUnknown5Unknown(w *schema.Writer, v RtcZUnknown4RtcZUnknown5Unknown) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
}

type RtcZUnknown4RtcZUnknown5 struct {
	Unknowns [3]RtcZUnknown4RtcZUnknown5Unknown `json:"unknowns"`
}

func readRtcZUnknown4RtcZUnknown5(r *schema.Reader) RtcZUnknown4RtcZUnknown5 {
	var v RtcZUnknown4RtcZUnknown5
	for i := range v.Unknowns {
		v.Unknowns[i] = readRtcZUnknown4RtcZUnknown5Unknown(r)
	}
	return v
}
func writeRtcZUnknown4RtcZUnknown5(w *schema.Writer, v RtcZUnknown4RtcZUnknown5) {
	for _, u := range v.Unknowns {
		writeRtcZUnknown4RtcZUnknown5Unknown(w, u)
	}
}

type RtcZUnknown4RtcZUnknown6 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
	Unknown2 uint32 `json:"unknown2"`
}

func readRtcZUnknown4RtcZUnknown6(r *schema.Reader) RtcZUnknown4RtcZUnknown6 {
	return RtcZUnknown4RtcZUnknown6{r.U32LE(), r.U32LE(), r.U32LE()}
}
func writeRtcZUnknown4RtcZUnknown6(w *schema.Writer, v RtcZUnknown4RtcZUnknown6) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
	w.U32LE(v.Unknown2)
}

type RtcZUnknown4 struct {
	Unknown0     uint32                      `json:"unknown0"`
	Unknown1     uint16                      `json:"unknown1"`
	Unknown5Flag uint16                      `json:"unknown5flag"`
	Unknown5s    []RtcZUnknown4RtcZUnknown5  `json:"unknown5s"`
	Unknown6Flag uint16                      `json:"unknown6flag"`
	Unknown6s    []RtcZUnknown4RtcZUnknown6  `json:"unknown6s"`
	Unknown7Flag uint16                      `json:"unknown7flag"`
	Unknown7s    []RtcZUnknown4RtcZUnknown6  `json:"unknown7s"`
}

func readRtcZUnknown4(r *schema.Reader) RtcZUnknown4 {
	return RtcZUnknown4{
		Unknown0:     r.U32LE(),
		Unknown1:     r.U16LE(),
		Unknown5Flag: r.U16LE(),
		Unknown5s:    schema.PascalArray(r, true, readRtcZUnknown4RtcZUnknown5),
		Unknown6Flag: r.U16LE(),
		Unknown6s:    schema.PascalArray(r, true, readRtcZUnknown4RtcZUnknown6),
		Unknown7Flag: r.U16LE(),
		Unknown7s:    schema.PascalArray(r, true, readRtcZUnknown4RtcZUnknown6),
	}
}
func writeRtcZUnknown4(w *schema.Writer, v RtcZUnknown4) {
	w.U32LE(v.Unknown0)
	w.U16LE(v.Unknown1)
	w.U16LE(v.Unknown5Flag)
	schema.WritePascalArray(w, true, v.Unknown5s, writeRtcZUnknown4RtcZUnknown5)
	w.U16LE(v.Unknown6Flag)
	schema.WritePascalArray(w, true, v.Unknown6s, writeRtcZUnknown4RtcZUnknown6)
	w.U16LE(v.Unknown7Flag)
	schema.WritePascalArray(w, true, v.Unknown7s, writeRtcZUnknown4RtcZUnknown6)
}

type RtcZUnknown8 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
	Unknown2 uint32 `json:"unknown2"`
	Unknown3 uint32 `json:"unknown3"`
	Unknown4 uint8  `json:"unknown4"`
	Unknown5 uint32 `json:"unknown5"`
	Unknown6 uint32 `json:"unknown6"`
}

func readRtcZUnknown8(r *schema.Reader) RtcZUnknown8 {
	return RtcZUnknown8{r.U32LE(), r.U32LE(), r.U32LE(), r.U32LE(), r.U8(), r.U32LE(), r.U32LE()}
}
func writeRtcZUnknown8(w *schema.Writer, v RtcZUnknown8) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
	w.U32LE(v.Unknown2)
	w.U32LE(v.Unknown3)
	w.U8(v.Unknown4)
	w.U32LE(v.Unknown5)
	w.U32LE(v.Unknown6)
}

type RtcZUnknown9 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
	Unknown2 uint32 `json:"unknown2"`
	Unknown3 uint32 `json:"unknown3"`
	Unknown4 uint32 `json:"unknown4"`
	Unknown5 uint32 `json:"unknown5"`
}

func readRtcZUnknown9(r *schema.Reader) RtcZUnknown9 {
	return RtcZUnknown9{r.U32LE(), r.U32LE(), r.U32LE(), r.U32LE(), r.U32LE(), r.U32LE()}
}
func writeRtcZUnknown9(w *schema.Writer, v RtcZUnknown9) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
	w.U32LE(v.Unknown2)
	w.U32LE(v.Unknown3)
	w.U32LE(v.Unknown4)
	w.U32LE(v.Unknown5)
}

type RtcZUnknown12Unknown1 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
	Unknown2 uint32 `json:"unknown2"`
	Unknown3 uint32 `json:"unknown3"`
	Unknown4 uint32 `json:"unknown4"`
}

func readRtcZUnknown12Unknown1(r *schema.Reader) RtcZUnknown12Unknown1 {
	return RtcZUnknown12Unknown1{r.U32LE(), r.U32LE(), r.U32LE(), r.U32LE(), r.U32LE()}
}
func writeRtcZUnknown12Unknown1(w *schema.Writer, v RtcZUnknown12Unknown1) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
	w.U32LE(v.Unknown2)
	w.U32LE(v.Unknown3)
	w.U32LE(v.Unknown4)
}

type RtcZUnknown12 struct {
	Unknown0  uint32                    `json:"unknown0"`
	Unknown1s []RtcZUnknown12Unknown1  `json:"unknown1s"`
}

func readRtcZUnknown12(r *schema.Reader) RtcZUnknown12 {
	return RtcZUnknown12{r.U32LE(), schema.PascalArray(r, true, readRtcZUnknown12Unknown1)}
}
func writeRtcZUnknown12(w *schema.Writer, v RtcZUnknown12) {
	w.U32LE(v.Unknown0)
	schema.WritePascalArray(w, true, v.Unknown1s, writeRtcZUnknown12Unknown1)
}

// RtcZ is Rtc_Z's always-strict body (no Alt fallback in the original):
// an f32 lead-in followed by nine Pascal-counted tables.
type RtcZ struct {
	Unknown0   float32         `json:"unknown0"`
	Unknown1s  []RtcZUnknown1  `json:"unknown1s"`
	Unknown2s  []RtcZUnknown2  `json:"unknown2s"`
	Unknown3s  []uint32        `json:"unknown3s"`
	Unknown4s  []RtcZUnknown4  `json:"unknown4s"`
	Unknown8s  []RtcZUnknown8  `json:"unknown8s"`
	Unknown9s  []RtcZUnknown9  `json:"unknown9s"`
	Unknown10s []uint32        `json:"unknown10s"`
	Unknown11s []uint32        `json:"unknown11s"`
	Unknown12s []RtcZUnknown12 `json:"unknown12s"`
}

func readRtcZ(r *schema.Reader) RtcZ {
	rtc := RtcZ{
		Unknown0:  r.F32LE(),
		Unknown1s: schema.PascalArray(r, true, readRtcZUnknown1),
		Unknown2s: schema.PascalArray(r, true, readRtcZUnknown2),
	}
	rtc.Unknown3s = readU32Array(r)
	rtc.Unknown4s = schema.PascalArray(r, true, readRtcZUnknown4)
	rtc.Unknown8s = schema.PascalArray(r, true, readRtcZUnknown8)
	rtc.Unknown9s = schema.PascalArray(r, true, readRtcZUnknown9)
	rtc.Unknown10s = readU32Array(r)
	rtc.Unknown11s = readU32Array(r)
	rtc.Unknown12s = schema.PascalArray(r, true, readRtcZUnknown12)
	r.Exact()
	return rtc
}

func writeRtcZ(w *schema.Writer, rtc RtcZ) {
	w.F32LE(rtc.Unknown0)
	schema.WritePascalArray(w, true, rtc.Unknown1s, writeRtcZUnknown1)
	schema.WritePascalArray(w, true, rtc.Unknown2s, writeRtcZUnknown2)
	writeU32Array(w, rtc.Unknown3s)
	schema.WritePascalArray(w, true, rtc.Unknown4s, writeRtcZUnknown4)
	schema.WritePascalArray(w, true, rtc.Unknown8s, writeRtcZUnknown8)
	schema.WritePascalArray(w, true, rtc.Unknown9s, writeRtcZUnknown9)
	writeU32Array(w, rtc.Unknown10s)
	writeU32Array(w, rtc.Unknown11s)
	schema.WritePascalArray(w, true, rtc.Unknown12s, writeRtcZUnknown12)
}

type RtcObject struct {
	ResourceObject ResourceObjectZ `json:"resource_object"`
	Rtc            RtcZ            `json:"rtc"`
}

func (o RtcObject) HardLinks() []uint32 { return nil }
func (o RtcObject) SoftLinks() []uint32 { return o.ResourceObject.CRC32s }

func UnpackRtcZ(_ *ParseContext, header, body []byte) (any, error) {
	resourceObject := ReadResourceObjectZ(schema.NewReader(header))
	r := schema.NewReader(body)
	rtc := readRtcZ(r)
	if r.Err() != nil {
		return nil, r.Err()
	}
	return RtcObject{ResourceObject: resourceObject, Rtc: rtc}, nil
}

func PackRtcZ(_ *ParseContext, raw json.RawMessage) ([]byte, []byte, error) {
	var obj RtcObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, nil, err
	}
	hw := schema.NewWriter()
	WriteResourceObjectZ(hw, obj.ResourceObject)
	bw := schema.NewWriter()
	writeRtcZ(bw, obj.Rtc)
	return hw.Bytes(), bw.Bytes(), nil
}
