package fuelfmt

import (
	"encoding/json"

	"github.com/widberg/godpc/internal/schema"
)

// ParticlesDataZ is always strict in the original (no Alt fallback exists
// in fuel_fmt/particlesdata.rs): a sentinel, a position/velocity pair and
// a trailing u16 table.
type ParticlesDataZ struct {
	Equals257 uint32   `json:"equals257"`
	PositionX float32  `json:"position_x"`
	PositionY float32  `json:"position_y"`
	PositionZ float32  `json:"position_z"`
	VelocityX float32  `json:"velocity_x"`
	VelocityY float32  `json:"velocity_y"`
	VelocityZ float32  `json:"velocity_z"`
	Shorts    []uint16 `json:"shorts"`
	Zero      uint32   `json:"zero"`
}

func readParticlesDataZ(r *schema.Reader) ParticlesDataZ {
	p := ParticlesDataZ{
		Equals257: r.U32LE(),
		PositionX: r.F32LE(),
		PositionY: r.F32LE(),
		PositionZ: r.F32LE(),
		VelocityX: r.F32LE(),
		VelocityY: r.F32LE(),
		VelocityZ: r.F32LE(),
	}
	p.Shorts = schema.PascalArray(r, true, func(r *schema.Reader) uint16 { return r.U16LE() })
	p.Zero = r.U32LE()
	r.Exact()
	return p
}

func writeParticlesDataZ(w *schema.Writer, p ParticlesDataZ) {
	w.U32LE(p.Equals257)
	w.F32LE(p.PositionX)
	w.F32LE(p.PositionY)
	w.F32LE(p.PositionZ)
	w.F32LE(p.VelocityX)
	w.F32LE(p.VelocityY)
	w.F32LE(p.VelocityZ)
	schema.WritePascalArray(w, true, p.Shorts, func(w *schema.Writer, v uint16) { w.U16LE(v) })
	w.U32LE(p.Zero)
}

type ParticlesDataObject struct {
	ResourceObject ResourceObjectZ `json:"resource_object"`
	ParticlesData  ParticlesDataZ  `json:"particles_data"`
}

func (o ParticlesDataObject) HardLinks() []uint32 { return nil }
func (o ParticlesDataObject) SoftLinks() []uint32 { return o.ResourceObject.CRC32s }

func UnpackParticlesDataZ(_ *ParseContext, header, body []byte) (any, error) {
	resourceObject := ReadResourceObjectZ(schema.NewReader(header))
	r := schema.NewReader(body)
	particlesData := readParticlesDataZ(r)
	if r.Err() != nil {
		return nil, r.Err()
	}
	return ParticlesDataObject{ResourceObject: resourceObject, ParticlesData: particlesData}, nil
}

func PackParticlesDataZ(_ *ParseContext, raw json.RawMessage) ([]byte, []byte, error) {
	var obj ParticlesDataObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, nil, err
	}
	hw := schema.NewWriter()
	WriteResourceObjectZ(hw, obj.ResourceObject)
	bw := schema.NewWriter()
	writeParticlesDataZ(bw, obj.ParticlesData)
	return hw.Bytes(), bw.Bytes(), nil
}
