package fuelfmt

import (
	"encoding/json"

	"golang.org/x/xerrors"

	"github.com/widberg/godpc/internal/dpcerr"
	"github.com/widberg/godpc/internal/schema"
)

// Mesh_Z is the largest and most structurally varied schema in the object
// registry, grounded on fuel_fmt/mesh.rs: three header shapes and four
// body shapes, paired the way the original's FUELObjectFormat type aliases
// pair them (MeshZHeader/MeshZ, MeshZHeaderAlt/MeshZAlt,
// MeshZHeaderAltAlt/{MeshZAltAlt,MeshZAltAltAlt}). The original never wired
// a dispatcher to pick among them (its extract path is `todo!()`), so
// which pairing applies to a given object isn't recorded anywhere; this
// unpacker tries each header shape strictly, then each body shape strict
// for that header, falling back to an opaque blob at either level — the
// same "try strict, else opaque" shape spec.md §9 requires for the other
// legacy-tail classes.

type Unused0 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
	Unknown2 uint32 `json:"unknown2"`
	Unknown3 uint32 `json:"unknown3"`
}

func readUnused0(r *schema.Reader) Unused0 {
	return Unused0{r.U32LE(), r.U32LE(), r.U32LE(), r.U32LE()}
}
func writeUnused0(w *schema.Writer, v Unused0) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
	w.U32LE(v.Unknown2)
	w.U32LE(v.Unknown3)
}

type MeshZUnknown1 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
}

func readMeshZUnknown1(r *schema.Reader) MeshZUnknown1 { return MeshZUnknown1{r.U32LE(), r.U32LE()} }
func writeMeshZUnknown1(w *schema.Writer, v MeshZUnknown1) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
}

type Strip struct {
	StripVerticesIndices []uint16 `json:"strip_vertices_indices"`
	MaterialName         uint32   `json:"material_name"`
	TriOrder             uint32   `json:"tri_order"`
}

func readStrip(r *schema.Reader) Strip {
	return Strip{
		StripVerticesIndices: schema.PascalArray(r, true, func(r *schema.Reader) uint16 { return r.U16LE() }),
		MaterialName:         r.U32LE(),
		TriOrder:             r.U32LE(),
	}
}
func writeStrip(w *schema.Writer, v Strip) {
	schema.WritePascalArray(w, true, v.StripVerticesIndices, func(w *schema.Writer, v uint16) { w.U16LE(v) })
	w.U32LE(v.MaterialName)
	w.U32LE(v.TriOrder)
}

type Unused4 struct {
	Unknown0s []MeshZUnknown1 `json:"unknown0s"`
}

func readUnused4(r *schema.Reader) Unused4 {
	return Unused4{schema.PascalArray(r, true, readMeshZUnknown1)}
}
func writeUnused4(w *schema.Writer, v Unused4) {
	schema.WritePascalArray(w, true, v.Unknown0s, writeMeshZUnknown1)
}

type CollisionAABB struct {
	Min                 Vec3f          `json:"min"`
	CollisionAABBRange  RangeBeginEnd  `json:"collision_aabb_range"`
	Max                 Vec3f          `json:"max"`
	CollisionFacesRange RangeBeginSize `json:"collision_faces_range"`
}

func readCollisionAABB(r *schema.Reader) CollisionAABB {
	return CollisionAABB{
		Min:                 readVec3f(r),
		CollisionAABBRange:  readRangeBeginEnd(r),
		Max:                 readVec3f(r),
		CollisionFacesRange: readRangeBeginSize(r),
	}
}
func writeCollisionAABB(w *schema.Writer, v CollisionAABB) {
	writeVec3f(w, v.Min)
	writeRangeBeginEnd(w, v.CollisionAABBRange)
	writeVec3f(w, v.Max)
	writeRangeBeginSize(w, v.CollisionFacesRange)
}

type CollisionFace struct {
	ShortVecWeirdsIndices [3]uint16 `json:"short_vec_weirds_indices"`
	SurfaceType           uint16    `json:"surface_type"`
}

func readCollisionFace(r *schema.Reader) CollisionFace {
	var f CollisionFace
	for i := range f.ShortVecWeirdsIndices {
		f.ShortVecWeirdsIndices[i] = r.U16LE()
	}
	f.SurfaceType = r.U16LE()
	return f
}
func writeCollisionFace(w *schema.Writer, v CollisionFace) {
	for _, idx := range v.ShortVecWeirdsIndices {
		w.U16LE(idx)
	}
	w.U16LE(v.SurfaceType)
}

type VertexLayoutPosition struct {
	Position Vec3f `json:"position"`
}

func readVertexLayoutPosition(r *schema.Reader) VertexLayoutPosition {
	return VertexLayoutPosition{readVec3f(r)}
}
func writeVertexLayoutPosition(w *schema.Writer, v VertexLayoutPosition) { writeVec3f(w, v.Position) }

type VertexLayoutNoBlend struct {
	Position Vec3f           `json:"position"`
	Tangent  VertexVector3u8 `json:"tangent"`
	Pad0     uint8           `json:"pad0"`
	Normal   VertexVector3u8 `json:"normal"`
	Pad1     uint8           `json:"pad1"`
	UV       Vec2f           `json:"uv"`
	LUV      Vec2f           `json:"luv"`
}

func readVertexLayoutNoBlend(r *schema.Reader) VertexLayoutNoBlend {
	return VertexLayoutNoBlend{
		Position: readVec3f(r),
		Tangent:  readVertexVector3u8(r),
		Pad0:     r.U8(),
		Normal:   readVertexVector3u8(r),
		Pad1:     r.U8(),
		UV:       readVec2f(r),
		LUV:      readVec2f(r),
	}
}
func writeVertexLayoutNoBlend(w *schema.Writer, v VertexLayoutNoBlend) {
	writeVec3f(w, v.Position)
	writeVertexVector3u8(w, v.Tangent)
	w.U8(v.Pad0)
	writeVertexVector3u8(w, v.Normal)
	w.U8(v.Pad1)
	writeVec2f(w, v.UV)
	writeVec2f(w, v.LUV)
}

type VertexBlendIndex struct {
	Index float32 `json:"index"`
}

func readVertexBlendIndex(r *schema.Reader) VertexBlendIndex { return VertexBlendIndex{r.F32LE()} }
func writeVertexBlendIndex(w *schema.Writer, v VertexBlendIndex) { w.F32LE(v.Index) }

type VertexLayout1Blend struct {
	Position    Vec3f           `json:"position"`
	Tangent     VertexVector3u8 `json:"tangent"`
	Pad0        uint8           `json:"pad0"`
	Normal      VertexVector3u8 `json:"normal"`
	Pad1        uint8           `json:"pad1"`
	UV          Vec2f           `json:"uv"`
	BlendIndex  VertexBlendIndex `json:"blend_index"`
	Pad2        [3]int32        `json:"pad2"`
	BlendWeight float32         `json:"blend_weight"`
}

func readVertexLayout1Blend(r *schema.Reader) VertexLayout1Blend {
	v := VertexLayout1Blend{
		Position:   readVec3f(r),
		Tangent:    readVertexVector3u8(r),
		Pad0:       r.U8(),
		Normal:     readVertexVector3u8(r),
		Pad1:       r.U8(),
		UV:         readVec2f(r),
		BlendIndex: readVertexBlendIndex(r),
	}
	for i := range v.Pad2 {
		v.Pad2[i] = r.I32LE()
	}
	v.BlendWeight = r.F32LE()
	return v
}
func writeVertexLayout1Blend(w *schema.Writer, v VertexLayout1Blend) {
	writeVec3f(w, v.Position)
	writeVertexVector3u8(w, v.Tangent)
	w.U8(v.Pad0)
	writeVertexVector3u8(w, v.Normal)
	w.U8(v.Pad1)
	writeVec2f(w, v.UV)
	writeVertexBlendIndex(w, v.BlendIndex)
	for _, p := range v.Pad2 {
		w.I32LE(p)
	}
	w.F32LE(v.BlendWeight)
}

type VertexLayout4Blend struct {
	Position     Vec3f               `json:"position"`
	Tangent      VertexVector3u8     `json:"tangent"`
	Pad0         uint8               `json:"pad0"`
	Normal       VertexVector3u8     `json:"normal"`
	Pad1         uint8               `json:"pad1"`
	UV           Vec2f               `json:"uv"`
	BlendIndies  [4]VertexBlendIndex `json:"blend_indies"`
	BlendWeights [4]float32          `json:"blend_weights"`
}

func readVertexLayout4Blend(r *schema.Reader) VertexLayout4Blend {
	v := VertexLayout4Blend{
		Position: readVec3f(r),
		Tangent:  readVertexVector3u8(r),
		Pad0:     r.U8(),
		Normal:   readVertexVector3u8(r),
		Pad1:     r.U8(),
		UV:       readVec2f(r),
	}
	for i := range v.BlendIndies {
		v.BlendIndies[i] = readVertexBlendIndex(r)
	}
	for i := range v.BlendWeights {
		v.BlendWeights[i] = r.F32LE()
	}
	return v
}
func writeVertexLayout4Blend(w *schema.Writer, v VertexLayout4Blend) {
	writeVec3f(w, v.Position)
	writeVertexVector3u8(w, v.Tangent)
	w.U8(v.Pad0)
	writeVertexVector3u8(w, v.Normal)
	w.U8(v.Pad1)
	writeVec2f(w, v.UV)
	for _, b := range v.BlendIndies {
		writeVertexBlendIndex(w, b)
	}
	for _, f := range v.BlendWeights {
		w.F32LE(f)
	}
}

// vertexLayoutSize4Blend etc. name the vertex_size tag that selects a
// vertex buffer's element layout, per mesh.rs's VertexBufferData::parse.
const (
	vertexLayoutSize4Blend  = 60
	vertexLayoutSize1Blend  = 48
	vertexLayoutSizeNoBlend = 36
	vertexLayoutSizePosition = 12
)

// VertexBufferExt is one vertex buffer: a self-describing (count, size,
// id) triple followed by that many vertices in the layout vertex_size
// selects. Vertices holds one of []VertexLayout4Blend,
// []VertexLayout1Blend, []VertexLayoutNoBlend or []VertexLayoutPosition.
type VertexBufferExt struct {
	VertexBufferID uint32 `json:"vertex_buffer_id"`
	Vertices       any    `json:"vertices"`
}

func readVertexBufferExt(r *schema.Reader) VertexBufferExt {
	vertexCount := r.U32LE()
	vertexSize := r.U32LE()
	id := r.U32LE()
	var vertices any
	switch vertexSize {
	case vertexLayoutSize4Blend:
		vertices = schema.FixedVec(r, int(vertexCount), readVertexLayout4Blend)
	case vertexLayoutSize1Blend:
		vertices = schema.FixedVec(r, int(vertexCount), readVertexLayout1Blend)
	case vertexLayoutSizeNoBlend:
		vertices = schema.FixedVec(r, int(vertexCount), readVertexLayoutNoBlend)
	case vertexLayoutSizePosition:
		vertices = schema.FixedVec(r, int(vertexCount), readVertexLayoutPosition)
	default:
		r.Fail(xerrors.Errorf("mesh_z: vertex_size %d matches none of {12,36,48,60}: %w", vertexSize, dpcerr.ErrMalformedObject))
	}
	return VertexBufferExt{VertexBufferID: id, Vertices: vertices}
}

func writeVertexBufferExt(w *schema.Writer, v VertexBufferExt) error {
	switch vs := v.Vertices.(type) {
	case []VertexLayout4Blend:
		w.U32LE(uint32(len(vs)))
		w.U32LE(vertexLayoutSize4Blend)
		w.U32LE(v.VertexBufferID)
		for _, e := range vs {
			writeVertexLayout4Blend(w, e)
		}
	case []VertexLayout1Blend:
		w.U32LE(uint32(len(vs)))
		w.U32LE(vertexLayoutSize1Blend)
		w.U32LE(v.VertexBufferID)
		for _, e := range vs {
			writeVertexLayout1Blend(w, e)
		}
	case []VertexLayoutNoBlend:
		w.U32LE(uint32(len(vs)))
		w.U32LE(vertexLayoutSizeNoBlend)
		w.U32LE(v.VertexBufferID)
		for _, e := range vs {
			writeVertexLayoutNoBlend(w, e)
		}
	case []VertexLayoutPosition:
		w.U32LE(uint32(len(vs)))
		w.U32LE(vertexLayoutSizePosition)
		w.U32LE(v.VertexBufferID)
		for _, e := range vs {
			writeVertexLayoutPosition(w, e)
		}
	default:
		return xerrors.Errorf("mesh_z: vertex buffer %d has no recognized vertex layout: %w", v.VertexBufferID, dpcerr.ErrMalformedObject)
	}
	return nil
}

// UnmarshalJSON recovers Vertices' concrete slice type from its element
// shape, since the default `any` unmarshal would otherwise leave
// []map[string]any rather than the typed slices writeVertexBufferExt
// switches on. Defined directly on VertexBufferExt (rather than only at the
// MeshBuffers/meshZAltCommon level) so every []VertexBufferExt field —
// MeshBuffers.VertexBuffers and meshZAltCommon.SubMeshes alike — recovers
// correctly via the standard slice-unmarshal path.
func (v *VertexBufferExt) UnmarshalJSON(data []byte) error {
	parsed, err := vertexBufferExtFromJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func vertexBufferExtFromJSON(raw json.RawMessage) (VertexBufferExt, error) {
	var shape struct {
		VertexBufferID uint32          `json:"vertex_buffer_id"`
		Vertices       json.RawMessage `json:"vertices"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return VertexBufferExt{}, err
	}
	var probe []map[string]json.RawMessage
	if err := json.Unmarshal(shape.Vertices, &probe); err != nil {
		return VertexBufferExt{}, err
	}
	v := VertexBufferExt{VertexBufferID: shape.VertexBufferID}
	if len(probe) == 0 {
		v.Vertices = []VertexLayoutPosition{}
		return v, nil
	}
	elem := probe[0]
	switch {
	case elem["blend_indies"] != nil:
		var vs []VertexLayout4Blend
		if err := json.Unmarshal(shape.Vertices, &vs); err != nil {
			return VertexBufferExt{}, err
		}
		v.Vertices = vs
	case elem["blend_index"] != nil:
		var vs []VertexLayout1Blend
		if err := json.Unmarshal(shape.Vertices, &vs); err != nil {
			return VertexBufferExt{}, err
		}
		v.Vertices = vs
	case elem["tangent"] != nil:
		var vs []VertexLayoutNoBlend
		if err := json.Unmarshal(shape.Vertices, &vs); err != nil {
			return VertexBufferExt{}, err
		}
		v.Vertices = vs
	default:
		var vs []VertexLayoutPosition
		if err := json.Unmarshal(shape.Vertices, &vs); err != nil {
			return VertexBufferExt{}, err
		}
		v.Vertices = vs
	}
	return v, nil
}

// IndexBufferExt mirrors VertexBufferExt: a self-describing count then
// that many u16 indices.
type IndexBufferExt struct {
	IndexBufferID uint32   `json:"index_buffer_id"`
	Indices       []uint16 `json:"indices"`
}

func readIndexBufferExt(r *schema.Reader) IndexBufferExt {
	indexCount := r.U32LE()
	id := r.U32LE()
	return IndexBufferExt{
		IndexBufferID: id,
		Indices:       schema.FixedVec(r, int(indexCount), func(r *schema.Reader) uint16 { return r.U16LE() }),
	}
}
func writeIndexBufferExt(w *schema.Writer, v IndexBufferExt) {
	w.U32LE(uint32(len(v.Indices)))
	w.U32LE(v.IndexBufferID)
	schema.WriteFixedVec(w, v.Indices, func(w *schema.Writer, v uint16) { w.U16LE(v) })
}

type Quad struct {
	Vertices [4]Vec3f `json:"vertices"`
	Normal   Vec3f    `json:"normal"`
}

func readQuad(r *schema.Reader) Quad {
	var q Quad
	for i := range q.Vertices {
		q.Vertices[i] = readVec3f(r)
	}
	q.Normal = readVec3f(r)
	return q
}
func writeQuad(w *schema.Writer, v Quad) {
	for _, p := range v.Vertices {
		writeVec3f(w, p)
	}
	writeVec3f(w, v.Normal)
}

type MeshZVertexGroupUnused1 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint32 `json:"unknown1"`
	Unknown2 uint32 `json:"unknown2"`
	Unknown3 uint32 `json:"unknown3"`
	Unknown4 uint32 `json:"unknown4"`
	Unknown5 uint32 `json:"unknown5"`
	Unknown6 uint32 `json:"unknown6"`
}

func readMeshZVertexGroupUnused1(r *schema.Reader) MeshZVertexGroupUnused1 {
	return MeshZVertexGroupUnused1{r.U32LE(), r.U32LE(), r.U32LE(), r.U32LE(), r.U32LE(), r.U32LE(), r.U32LE()}
}
func writeMeshZVertexGroupUnused1(w *schema.Writer, v MeshZVertexGroupUnused1) {
	w.U32LE(v.Unknown0)
	w.U32LE(v.Unknown1)
	w.U32LE(v.Unknown2)
	w.U32LE(v.Unknown3)
	w.U32LE(v.Unknown4)
	w.U32LE(v.Unknown5)
	w.U32LE(v.Unknown6)
}

type VertexGroup struct {
	VertexBufferIndex            uint32                     `json:"vertex_buffer_index"`
	IndexBufferIndex             uint32                     `json:"index_buffer_index"`
	QuadRange                    RangeBeginSize             `json:"quad_range"`
	Flags                        uint32                     `json:"flags"`
	VertexBufferRange            RangeBeginEnd              `json:"vertex_buffer_range"`
	VertexCount                  uint32                     `json:"vertex_count"`
	IndexBufferIndexBegin        uint32                     `json:"index_buffer_index_begin"`
	FaceCount                    uint32                     `json:"face_count"`
	Zero                         uint32                     `json:"zero"`
	VertexBufferRangeBeginOrZero uint32                     `json:"vertex_buffer_range_begin_or_zero"`
	VertexSize                   uint16                     `json:"vertex_size"`
	MaterialIndex                int16                      `json:"material_index"`
	Unuseds1                     []MeshZVertexGroupUnused1  `json:"unuseds1"`
}

func readVertexGroup(r *schema.Reader) VertexGroup {
	return VertexGroup{
		VertexBufferIndex:            r.U32LE(),
		IndexBufferIndex:             r.U32LE(),
		QuadRange:                    readRangeBeginSize(r),
		Flags:                        r.U32LE(),
		VertexBufferRange:            readRangeBeginEnd(r),
		VertexCount:                  r.U32LE(),
		IndexBufferIndexBegin:        r.U32LE(),
		FaceCount:                    r.U32LE(),
		Zero:                         r.U32LE(),
		VertexBufferRangeBeginOrZero: r.U32LE(),
		VertexSize:                   r.U16LE(),
		MaterialIndex:                int16(r.U16LE()),
		Unuseds1:                     schema.PascalArray(r, true, readMeshZVertexGroupUnused1),
	}
}
func writeVertexGroup(w *schema.Writer, v VertexGroup) {
	w.U32LE(v.VertexBufferIndex)
	w.U32LE(v.IndexBufferIndex)
	writeRangeBeginSize(w, v.QuadRange)
	w.U32LE(v.Flags)
	writeRangeBeginEnd(w, v.VertexBufferRange)
	w.U32LE(v.VertexCount)
	w.U32LE(v.IndexBufferIndexBegin)
	w.U32LE(v.FaceCount)
	w.U32LE(v.Zero)
	w.U32LE(v.VertexBufferRangeBeginOrZero)
	w.U16LE(v.VertexSize)
	w.U16LE(uint16(v.MaterialIndex))
	schema.WritePascalArray(w, true, v.Unuseds1, writeMeshZVertexGroupUnused1)
}

type AABBMorphTrigger struct {
	Min                    Vec3f          `json:"min"`
	AABBMorphTriggersRange RangeBeginEnd  `json:"aabb_morph_triggers_range"`
	Max                    Vec3f          `json:"max"`
	MapIndexRange          RangeBeginSize `json:"map_index_range"`
}

func readAABBMorphTrigger(r *schema.Reader) AABBMorphTrigger {
	return AABBMorphTrigger{
		Min:                    readVec3f(r),
		AABBMorphTriggersRange: readRangeBeginEnd(r),
		Max:                    readVec3f(r),
		MapIndexRange:          readRangeBeginSize(r),
	}
}
func writeAABBMorphTrigger(w *schema.Writer, v AABBMorphTrigger) {
	writeVec3f(w, v.Min)
	writeRangeBeginEnd(w, v.AABBMorphTriggersRange)
	writeVec3f(w, v.Max)
	writeRangeBeginSize(w, v.MapIndexRange)
}

type MeshZPair struct {
	First  uint16 `json:"first"`
	Second uint16 `json:"second"`
}

func readMeshZPair(r *schema.Reader) MeshZPair { return MeshZPair{r.U16LE(), r.U16LE()} }
func writeMeshZPair(w *schema.Writer, v MeshZPair) {
	w.U16LE(v.First)
	w.U16LE(v.Second)
}

type DisplacementVector struct {
	Displacement                 ShortVecWeird `json:"displacement"`
	DisplacementVectorsSelfIndex uint16        `json:"displacement_vectors_self_index"`
}

func readDisplacementVector(r *schema.Reader) DisplacementVector {
	return DisplacementVector{Displacement: readShortVecWeird(r), DisplacementVectorsSelfIndex: r.U16LE()}
}
func writeDisplacementVector(w *schema.Writer, v DisplacementVector) {
	writeShortVecWeird(w, v.Displacement)
	w.U16LE(v.DisplacementVectorsSelfIndex)
}

type MorphTargetDesc struct {
	Name                           string               `json:"name"`
	BaseVertexBufferID             uint32               `json:"base_vertex_buffer_id"`
	DisplacementVertexBufferIndex  uint16               `json:"displacement_vertex_buffer_index"`
	DisplacementVectorsIndicies    []uint16             `json:"displacement_vectors_indicies"`
	DisplacementVectors            []DisplacementVector `json:"displacement_vectors"`
}

func readMorphTargetDesc(r *schema.Reader) MorphTargetDesc {
	return MorphTargetDesc{
		Name:                          readPascalString(r),
		BaseVertexBufferID:            r.U32LE(),
		DisplacementVertexBufferIndex: r.U16LE(),
		DisplacementVectorsIndicies:   schema.PascalArray(r, true, func(r *schema.Reader) uint16 { return r.U16LE() }),
		DisplacementVectors:           schema.PascalArray(r, true, readDisplacementVector),
	}
}
func writeMorphTargetDesc(w *schema.Writer, v MorphTargetDesc) {
	writePascalString(w, v.Name)
	w.U32LE(v.BaseVertexBufferID)
	w.U16LE(v.DisplacementVertexBufferIndex)
	schema.WritePascalArray(w, true, v.DisplacementVectorsIndicies, func(w *schema.Writer, v uint16) { w.U16LE(v) })
	schema.WritePascalArray(w, true, v.DisplacementVectors, writeDisplacementVector)
}

type Morpher struct {
	AABBMorphTriggers            []AABBMorphTrigger `json:"aabb_morph_triggers"`
	Map                          []MeshZPair        `json:"map"`
	DisplacementVectorsIndices   []uint16           `json:"displacement_vectors_indices"`
	Morphs                       []MorphTargetDesc  `json:"morphs"`
}

func readMorpher(r *schema.Reader) Morpher {
	return Morpher{
		AABBMorphTriggers:          schema.PascalArray(r, true, readAABBMorphTrigger),
		Map:                        schema.PascalArray(r, true, readMeshZPair),
		DisplacementVectorsIndices: schema.PascalArray(r, true, func(r *schema.Reader) uint16 { return r.U16LE() }),
		Morphs:                     schema.PascalArray(r, true, readMorphTargetDesc),
	}
}
func writeMorpher(w *schema.Writer, v Morpher) {
	schema.WritePascalArray(w, true, v.AABBMorphTriggers, writeAABBMorphTrigger)
	schema.WritePascalArray(w, true, v.Map, writeMeshZPair)
	schema.WritePascalArray(w, true, v.DisplacementVectorsIndices, func(w *schema.Writer, v uint16) { w.U16LE(v) })
	schema.WritePascalArray(w, true, v.Morphs, writeMorphTargetDesc)
}

// MeshBuffers is Mesh_Z's GPU-facing payload: vertex/index buffers, the
// quad table, vertex groups and the morph target system.
type MeshBuffers struct {
	VertexBuffers []VertexBufferExt `json:"vertex_buffers"`
	IndexBuffers  []IndexBufferExt  `json:"index_buffers"`
	Quads         []Quad            `json:"quads"`
	VertexGroups  []VertexGroup     `json:"vertex_groups"`
	Morpher       Morpher           `json:"morpher"`
}

func readMeshBuffers(r *schema.Reader) MeshBuffers {
	return MeshBuffers{
		VertexBuffers: schema.PascalArray(r, true, readVertexBufferExt),
		IndexBuffers:  schema.PascalArray(r, true, readIndexBufferExt),
		Quads:         schema.PascalArray(r, true, readQuad),
		VertexGroups:  schema.PascalArray(r, true, readVertexGroup),
		Morpher:       readMorpher(r),
	}
}
func writeMeshBuffers(w *schema.Writer, v MeshBuffers) error {
	w.U32LE(uint32(len(v.VertexBuffers)))
	for _, vb := range v.VertexBuffers {
		if err := writeVertexBufferExt(w, vb); err != nil {
			return err
		}
	}
	schema.WritePascalArray(w, true, v.IndexBuffers, writeIndexBufferExt)
	schema.WritePascalArray(w, true, v.Quads, writeQuad)
	schema.WritePascalArray(w, true, v.VertexGroups, writeVertexGroup)
	writeMorpher(w, v.Morpher)
	return nil
}

type MeshZ struct {
	StripVertices  []Vec3f          `json:"strip_vertices"`
	Unused0s       []Unused0        `json:"unused0s"`
	Texcoords      []Vec2f          `json:"texcoords"`
	Normals        []Vec3f          `json:"normals"`
	Strips         []Strip          `json:"strips"`
	Unused4s       []Unused4        `json:"unused4s"`
	MaterialCRC32s []uint32         `json:"material_crc32s"`
	CollisionAABBs []CollisionAABB  `json:"collision_aabbs"`
	CollisionFaces []CollisionFace  `json:"collision_faces"`
	Unused8s       []CollisionAABB  `json:"unused8s"`
	MeshBuffers    MeshBuffers      `json:"mesh_buffers"`
	ShortVecWeirds []ShortVecWeird  `json:"short_vec_weirds"`
}

func (m MeshZ) HardLinks() []uint32 { return append([]uint32(nil), m.MaterialCRC32s...) }
func (m MeshZ) SoftLinks() []uint32 { return nil }

func readMeshZ(r *schema.Reader) MeshZ {
	m := MeshZ{
		StripVertices: schema.PascalArray(r, true, readVec3f),
		Unused0s:      schema.PascalArray(r, true, readUnused0),
		Texcoords:     schema.PascalArray(r, true, readVec2f),
		Normals:       schema.PascalArray(r, true, readVec3f),
		Strips:        schema.PascalArray(r, true, readStrip),
		Unused4s:      schema.PascalArray(r, true, readUnused4),
	}
	m.MaterialCRC32s = readU32Array(r)
	m.CollisionAABBs = schema.PascalArray(r, true, readCollisionAABB)
	m.CollisionFaces = schema.PascalArray(r, true, readCollisionFace)
	m.Unused8s = schema.PascalArray(r, true, readCollisionAABB)
	m.MeshBuffers = readMeshBuffers(r)
	m.ShortVecWeirds = schema.PascalArray(r, true, readShortVecWeird)
	r.Exact()
	return m
}

func writeMeshZ(w *schema.Writer, m MeshZ) error {
	schema.WritePascalArray(w, true, m.StripVertices, writeVec3f)
	schema.WritePascalArray(w, true, m.Unused0s, writeUnused0)
	schema.WritePascalArray(w, true, m.Texcoords, writeVec2f)
	schema.WritePascalArray(w, true, m.Normals, writeVec3f)
	schema.WritePascalArray(w, true, m.Strips, writeStrip)
	schema.WritePascalArray(w, true, m.Unused4s, writeUnused4)
	writeU32Array(w, m.MaterialCRC32s)
	schema.WritePascalArray(w, true, m.CollisionAABBs, writeCollisionAABB)
	schema.WritePascalArray(w, true, m.CollisionFaces, writeCollisionFace)
	schema.WritePascalArray(w, true, m.Unused8s, writeCollisionAABB)
	if err := writeMeshBuffers(w, m.MeshBuffers); err != nil {
		return err
	}
	schema.WritePascalArray(w, true, m.ShortVecWeirds, writeShortVecWeird)
	return nil
}

type MeshZUnknown12 struct {
	U0 uint16 `json:"u0"`
	U1 uint16 `json:"u1"`
	U2 uint16 `json:"u2"`
}

func readMeshZUnknown12(r *schema.Reader) MeshZUnknown12 {
	return MeshZUnknown12{r.U16LE(), r.U16LE(), r.U16LE()}
}
func writeMeshZUnknown12(w *schema.Writer, v MeshZUnknown12) {
	w.U16LE(v.U0)
	w.U16LE(v.U1)
	w.U16LE(v.U2)
}

// meshZAltCommon is the field run every Alt/AltAlt body shares up to
// sub_meshes/indices/unknown11s, factored out to avoid repeating it three
// times; it isn't part of the wire format's own naming, just this file's.
type meshZAltCommon struct {
	Vecs           []Vec3f         `json:"vecs"`
	Unknown0s      []Unused0       `json:"unknown0s"`
	Unknown1s      []MeshZUnknown1 `json:"unknown1s"`
	Vertices1      []Vec3f         `json:"vertices1"`
	Unknown2s      []Strip         `json:"unknown2s"`
	Unknown4s      []Unused4       `json:"unknown4s"`
	MaterialCRC32s []uint32        `json:"material_crc32s"`
	Unknown6s      []CollisionAABB `json:"unknown6s"`
	Unknown7s      []CollisionFace `json:"unknown7s"`
	Unknown8s      []CollisionAABB `json:"unknown8s"`
	SubMeshes      []VertexBufferExt `json:"sub_meshes"`
	Indices        []IndexBufferExt  `json:"indices"`
}

func readMeshZAltCommon(r *schema.Reader) meshZAltCommon {
	c := meshZAltCommon{
		Vecs:      schema.PascalArray(r, true, readVec3f),
		Unknown0s: schema.PascalArray(r, true, readUnused0),
		Unknown1s: schema.PascalArray(r, true, readMeshZUnknown1),
		Vertices1: schema.PascalArray(r, true, readVec3f),
		Unknown2s: schema.PascalArray(r, true, readStrip),
		Unknown4s: schema.PascalArray(r, true, readUnused4),
	}
	c.MaterialCRC32s = readU32Array(r)
	c.Unknown6s = schema.PascalArray(r, true, readCollisionAABB)
	c.Unknown7s = schema.PascalArray(r, true, readCollisionFace)
	c.Unknown8s = schema.PascalArray(r, true, readCollisionAABB)
	c.SubMeshes = schema.PascalArray(r, true, readVertexBufferExt)
	c.Indices = schema.PascalArray(r, true, readIndexBufferExt)
	return c
}

func writeMeshZAltCommon(w *schema.Writer, c meshZAltCommon) error {
	schema.WritePascalArray(w, true, c.Vecs, writeVec3f)
	schema.WritePascalArray(w, true, c.Unknown0s, writeUnused0)
	schema.WritePascalArray(w, true, c.Unknown1s, writeMeshZUnknown1)
	schema.WritePascalArray(w, true, c.Vertices1, writeVec3f)
	schema.WritePascalArray(w, true, c.Unknown2s, writeStrip)
	schema.WritePascalArray(w, true, c.Unknown4s, writeUnused4)
	writeU32Array(w, c.MaterialCRC32s)
	schema.WritePascalArray(w, true, c.Unknown6s, writeCollisionAABB)
	schema.WritePascalArray(w, true, c.Unknown7s, writeCollisionFace)
	schema.WritePascalArray(w, true, c.Unknown8s, writeCollisionAABB)
	w.U32LE(uint32(len(c.SubMeshes)))
	for _, sm := range c.SubMeshes {
		if err := writeVertexBufferExt(w, sm); err != nil {
			return err
		}
	}
	schema.WritePascalArray(w, true, c.Indices, writeIndexBufferExt)
	return nil
}

type MeshZAlt struct {
	meshZAltCommon
	Unknown11s []Quad            `json:"unknown11s"`
	Unknown13s []VertexGroup     `json:"unknown13s"`
	Unknown12s []MeshZUnknown12  `json:"unknown12s"`
}

func (m MeshZAlt) HardLinks() []uint32 { return append([]uint32(nil), m.MaterialCRC32s...) }
func (m MeshZAlt) SoftLinks() []uint32 { return nil }

func readMeshZAlt(r *schema.Reader) MeshZAlt {
	c := readMeshZAltCommon(r)
	return MeshZAlt{
		meshZAltCommon: c,
		Unknown11s:     schema.PascalArray(r, true, readQuad),
		Unknown13s:     schema.PascalArray(r, true, readVertexGroup),
		Unknown12s:     schema.PascalArray(r, true, readMeshZUnknown12),
	}
}
func writeMeshZAlt(w *schema.Writer, m MeshZAlt) error {
	if err := writeMeshZAltCommon(w, m.meshZAltCommon); err != nil {
		return err
	}
	schema.WritePascalArray(w, true, m.Unknown11s, writeQuad)
	schema.WritePascalArray(w, true, m.Unknown13s, writeVertexGroup)
	schema.WritePascalArray(w, true, m.Unknown12s, writeMeshZUnknown12)
	return nil
}

type MeshZAltAlt struct {
	meshZAltCommon
	Unknown11s []Quad        `json:"unknown11s"`
	Unknown13s []VertexGroup `json:"unknown13s"`
}

func (m MeshZAltAlt) HardLinks() []uint32 { return append([]uint32(nil), m.MaterialCRC32s...) }
func (m MeshZAltAlt) SoftLinks() []uint32 { return nil }

func readMeshZAltAlt(r *schema.Reader) MeshZAltAlt {
	c := readMeshZAltCommon(r)
	return MeshZAltAlt{
		meshZAltCommon: c,
		Unknown11s:     schema.PascalArray(r, true, readQuad),
		Unknown13s:     schema.PascalArray(r, true, readVertexGroup),
	}
}
func writeMeshZAltAlt(w *schema.Writer, m MeshZAltAlt) error {
	if err := writeMeshZAltCommon(w, m.meshZAltCommon); err != nil {
		return err
	}
	schema.WritePascalArray(w, true, m.Unknown11s, writeQuad)
	schema.WritePascalArray(w, true, m.Unknown13s, writeVertexGroup)
	return nil
}

type MeshZAltAltAltUnknown11 [24]uint32

func readMeshZAltAltAltUnknown11(r *schema.Reader) MeshZAltAltAltUnknown11 {
	var v MeshZAltAltAltUnknown11
	for i := range v {
		v[i] = r.U32LE()
	}
	return v
}
func writeMeshZAltAltAltUnknown11(w *schema.Writer, v MeshZAltAltAltUnknown11) {
	for _, u := range v {
		w.U32LE(u)
	}
}

// MeshZAltAltAlt splits material_crc32s into two lists (material_crc32s0
// ahead of unknown1s, material_crc32s1 where the other variants keep their
// single material_crc32s), so it doesn't reuse meshZAltCommon.
type MeshZAltAltAlt struct {
	Vecs            []Vec3f                   `json:"vecs"`
	Unknown0s       []Unused0                  `json:"unknown0s"`
	MaterialCRC32s0 []uint32                   `json:"material_crc32s0"`
	Unknown1s       []MeshZUnknown1            `json:"unknown1s"`
	Vertices1       []Vec3f                    `json:"vertices1"`
	Unknown2s       []Strip                    `json:"unknown2s"`
	Unknown4s       []Unused4                  `json:"unknown4s"`
	MaterialCRC32s1 []uint32                   `json:"material_crc32s1"`
	Unknown6s       []CollisionAABB            `json:"unknown6s"`
	Unknown7s       []CollisionFace            `json:"unknown7s"`
	Unknown8s       []CollisionAABB            `json:"unknown8s"`
	SubMeshes       []VertexBufferExt          `json:"sub_meshes"`
	Indices         []IndexBufferExt           `json:"indices"`
	Unknown11s      []MeshZAltAltAltUnknown11  `json:"unknown11s"`
}

func (m MeshZAltAltAlt) HardLinks() []uint32 {
	return append(append([]uint32(nil), m.MaterialCRC32s0...), m.MaterialCRC32s1...)
}
func (m MeshZAltAltAlt) SoftLinks() []uint32 { return nil }

func readMeshZAltAltAlt(r *schema.Reader) MeshZAltAltAlt {
	m := MeshZAltAltAlt{
		Vecs:      schema.PascalArray(r, true, readVec3f),
		Unknown0s: schema.PascalArray(r, true, readUnused0),
	}
	m.MaterialCRC32s0 = readU32Array(r)
	m.Unknown1s = schema.PascalArray(r, true, readMeshZUnknown1)
	m.Vertices1 = schema.PascalArray(r, true, readVec3f)
	m.Unknown2s = schema.PascalArray(r, true, readStrip)
	m.Unknown4s = schema.PascalArray(r, true, readUnused4)
	m.MaterialCRC32s1 = readU32Array(r)
	m.Unknown6s = schema.PascalArray(r, true, readCollisionAABB)
	m.Unknown7s = schema.PascalArray(r, true, readCollisionFace)
	m.Unknown8s = schema.PascalArray(r, true, readCollisionAABB)
	m.SubMeshes = schema.PascalArray(r, true, readVertexBufferExt)
	m.Indices = schema.PascalArray(r, true, readIndexBufferExt)
	m.Unknown11s = schema.PascalArray(r, true, readMeshZAltAltAltUnknown11)
	r.Exact()
	return m
}
func writeMeshZAltAltAlt(w *schema.Writer, m MeshZAltAltAlt) error {
	schema.WritePascalArray(w, true, m.Vecs, writeVec3f)
	schema.WritePascalArray(w, true, m.Unknown0s, writeUnused0)
	writeU32Array(w, m.MaterialCRC32s0)
	schema.WritePascalArray(w, true, m.Unknown1s, writeMeshZUnknown1)
	schema.WritePascalArray(w, true, m.Vertices1, writeVec3f)
	schema.WritePascalArray(w, true, m.Unknown2s, writeStrip)
	schema.WritePascalArray(w, true, m.Unknown4s, writeUnused4)
	writeU32Array(w, m.MaterialCRC32s1)
	schema.WritePascalArray(w, true, m.Unknown6s, writeCollisionAABB)
	schema.WritePascalArray(w, true, m.Unknown7s, writeCollisionFace)
	schema.WritePascalArray(w, true, m.Unknown8s, writeCollisionAABB)
	w.U32LE(uint32(len(m.SubMeshes)))
	for _, sm := range m.SubMeshes {
		if err := writeVertexBufferExt(w, sm); err != nil {
			return err
		}
	}
	schema.WritePascalArray(w, true, m.Indices, writeIndexBufferExt)
	schema.WritePascalArray(w, true, m.Unknown11s, writeMeshZAltAltAltUnknown11)
	return nil
}

// MeshZHeader is the primary header shape, paired with MeshZ.
type MeshZHeader struct {
	LinkName  uint32       `json:"link_name"`
	DataName  uint32       `json:"data_name"`
	Rot       Quat         `json:"rot"`
	Transform Mat4f        `json:"transform"`
	Radius    float32      `json:"radius"`
	Flags     uint32       `json:"flags"`
	Typ       uint16       `json:"typ"`
	CRC32s    []uint32     `json:"crc32s"`
	Fade      FadeDistances `json:"fade"`
	DynSpheres []DynSphere `json:"dyn_spheres"`
	DynBoxes   []DynBox    `json:"dyn_boxes"`
}

func (h MeshZHeader) HardLinks() []uint32 { return nil }
func (h MeshZHeader) SoftLinks() []uint32 {
	return append(append([]uint32(nil), h.CRC32s...), h.DataName)
}

func readMeshZHeader(r *schema.Reader) MeshZHeader {
	h := MeshZHeader{
		LinkName:  r.U32LE(),
		DataName:  r.U32LE(),
		Rot:       readQuat(r),
		Transform: readMat4f(r),
		Radius:    r.F32LE(),
		Flags:     r.U32LE(),
		Typ:       r.U16LE(),
	}
	h.CRC32s = readU32Array(r)
	h.Fade = readFadeDistances(r)
	h.DynSpheres = schema.PascalArray(r, true, readDynSphere)
	h.DynBoxes = schema.PascalArray(r, true, readDynBox)
	r.Exact()
	return h
}
func writeMeshZHeader(w *schema.Writer, h MeshZHeader) {
	w.U32LE(h.LinkName)
	w.U32LE(h.DataName)
	writeQuat(w, h.Rot)
	writeMat4f(w, h.Transform)
	w.F32LE(h.Radius)
	w.U32LE(h.Flags)
	w.U16LE(h.Typ)
	writeU32Array(w, h.CRC32s)
	writeFadeDistances(w, h.Fade)
	schema.WritePascalArray(w, true, h.DynSpheres, writeDynSphere)
	schema.WritePascalArray(w, true, h.DynBoxes, writeDynBox)
}

// MeshZHeaderAlt is paired with MeshZAlt.
type MeshZHeaderAlt struct {
	FriendlyNameCRC32 uint32      `json:"friendly_name_crc32"`
	CRC32OrZero       uint32      `json:"crc32_or_zero"`
	Rot               Quat        `json:"rot"`
	Transform         Mat4f       `json:"transform"`
	Unknown3          float32     `json:"unknown3"`
	Unknown4          float32     `json:"unknown4"`
	Unknown5          uint16      `json:"unknown5"`
	CRC32s            []uint32    `json:"crc32s"`
	Unknown0          uint32      `json:"unknown0"`
	Unknown1          uint32      `json:"unknown1"`
	Unknown2          uint32      `json:"unknown2"`
	Unknown3s         []DynSphere `json:"unknown3s"`
	Unknown4s         []DynBox    `json:"unknown4s"`
	Zeros             [4]uint32   `json:"zeros"`
}

func (h MeshZHeaderAlt) HardLinks() []uint32 { return nil }
func (h MeshZHeaderAlt) SoftLinks() []uint32 {
	return append(append([]uint32(nil), h.CRC32s...), h.CRC32OrZero)
}

func readMeshZHeaderAlt(r *schema.Reader) MeshZHeaderAlt {
	h := MeshZHeaderAlt{
		FriendlyNameCRC32: r.U32LE(),
		CRC32OrZero:       r.U32LE(),
		Rot:               readQuat(r),
		Transform:         readMat4f(r),
		Unknown3:          r.F32LE(),
		Unknown4:          r.F32LE(),
		Unknown5:          r.U16LE(),
	}
	h.CRC32s = readU32Array(r)
	h.Unknown0 = r.U32LE()
	h.Unknown1 = r.U32LE()
	h.Unknown2 = r.U32LE()
	h.Unknown3s = schema.PascalArray(r, true, readDynSphere)
	h.Unknown4s = schema.PascalArray(r, true, readDynBox)
	for i := range h.Zeros {
		h.Zeros[i] = r.U32LE()
	}
	r.Exact()
	return h
}
func writeMeshZHeaderAlt(w *schema.Writer, h MeshZHeaderAlt) {
	w.U32LE(h.FriendlyNameCRC32)
	w.U32LE(h.CRC32OrZero)
	writeQuat(w, h.Rot)
	writeMat4f(w, h.Transform)
	w.F32LE(h.Unknown3)
	w.F32LE(h.Unknown4)
	w.U16LE(h.Unknown5)
	writeU32Array(w, h.CRC32s)
	w.U32LE(h.Unknown0)
	w.U32LE(h.Unknown1)
	w.U32LE(h.Unknown2)
	schema.WritePascalArray(w, true, h.Unknown3s, writeDynSphere)
	schema.WritePascalArray(w, true, h.Unknown4s, writeDynBox)
	for _, z := range h.Zeros {
		w.U32LE(z)
	}
}

type MeshZHeaderAltAltUnknown10 struct {
	Unknown0  uint32 `json:"unknown0"`
	Unknown1s Vec3f  `json:"unknown1s"`
	Unknown2  uint32 `json:"unknown2"`
	Unknown3  uint32 `json:"unknown3"`
}

func readMeshZHeaderAltAltUnknown10(r *schema.Reader) MeshZHeaderAltAltUnknown10 {
	return MeshZHeaderAltAltUnknown10{Unknown0: r.U32LE(), Unknown1s: readVec3f(r), Unknown2: r.U32LE(), Unknown3: r.U32LE()}
}
func writeMeshZHeaderAltAltUnknown10(w *schema.Writer, v MeshZHeaderAltAltUnknown10) {
	w.U32LE(v.Unknown0)
	writeVec3f(w, v.Unknown1s)
	w.U32LE(v.Unknown2)
	w.U32LE(v.Unknown3)
}

type MeshZHeaderAltAltUnknown4 struct {
	Unknown0 uint32 `json:"unknown0"`
	Unknown1 uint16 `json:"unknown1"`
}

func readMeshZHeaderAltAltUnknown4(r *schema.Reader) MeshZHeaderAltAltUnknown4 {
	return MeshZHeaderAltAltUnknown4{r.U32LE(), r.U16LE()}
}
func writeMeshZHeaderAltAltUnknown4(w *schema.Writer, v MeshZHeaderAltAltUnknown4) {
	w.U32LE(v.Unknown0)
	w.U16LE(v.Unknown1)
}

type MeshZHeaderAltAltUnknown5 [8]uint32

func readMeshZHeaderAltAltUnknown5(r *schema.Reader) MeshZHeaderAltAltUnknown5 {
	var v MeshZHeaderAltAltUnknown5
	for i := range v {
		v[i] = r.U32LE()
	}
	return v
}
func writeMeshZHeaderAltAltUnknown5(w *schema.Writer, v MeshZHeaderAltAltUnknown5) {
	for _, u := range v {
		w.U32LE(u)
	}
}

type MeshZHeaderAltAltUnknown8 struct {
	Name         string   `json:"name"`
	Unknown0     uint32   `json:"unknown0"`
	Unknown1Flag uint16   `json:"unknown1flag"`
	Unknown1s    []uint16 `json:"unknown1s"`
	Unknown2s    []Vec4f  `json:"unknown2s"`
}

func readMeshZHeaderAltAltUnknown8(r *schema.Reader) MeshZHeaderAltAltUnknown8 {
	return MeshZHeaderAltAltUnknown8{
		Name:         readPascalString(r),
		Unknown0:     r.U32LE(),
		Unknown1Flag: r.U16LE(),
		Unknown1s:    schema.PascalArray(r, true, func(r *schema.Reader) uint16 { return r.U16LE() }),
		Unknown2s:    schema.PascalArray(r, true, readVec4f),
	}
}
func writeMeshZHeaderAltAltUnknown8(w *schema.Writer, v MeshZHeaderAltAltUnknown8) {
	writePascalString(w, v.Name)
	w.U32LE(v.Unknown0)
	w.U16LE(v.Unknown1Flag)
	schema.WritePascalArray(w, true, v.Unknown1s, func(w *schema.Writer, v uint16) { w.U16LE(v) })
	schema.WritePascalArray(w, true, v.Unknown2s, writeVec4f)
}

// MeshZHeaderAltAlt is paired with both MeshZAltAlt and MeshZAltAltAlt.
type MeshZHeaderAltAlt struct {
	FriendlyNameCRC32 uint32                        `json:"friendly_name_crc32"`
	CRC32s            []uint32                      `json:"crc32s"`
	Rot               Quat                          `json:"rot"`
	Transform         Mat4f                         `json:"transform"`
	Unknown2          float32                       `json:"unknown2"`
	Unknown0          float32                       `json:"unknown0"`
	Unknown1          uint16                        `json:"unknown1"`
	Unknown3          Vec4f                         `json:"unknown3"`
	Unknown4          uint32                        `json:"unknown4"`
	Unknown5          uint32                        `json:"unknown5"`
	Unknown6          uint32                        `json:"unknown6"`
	Unknown7          uint32                        `json:"unknown7"`
	Unknown10s        []MeshZHeaderAltAltUnknown10  `json:"unknown10s"`
	Unknown8          uint32                        `json:"unknown8"`
	Unknown9          uint32                        `json:"unknown9"`
	Unknown4s         []MeshZHeaderAltAltUnknown4   `json:"unknown4s"`
	Unknown5s         []MeshZHeaderAltAltUnknown5   `json:"unknown5s"`
	Unknown6s         []uint32                      `json:"unknown6s"`
	Unknown7s         []uint16                      `json:"unknown7s"`
	Unknown8s         []MeshZHeaderAltAltUnknown8   `json:"unknown8s"`
}

func (h MeshZHeaderAltAlt) HardLinks() []uint32 { return nil }
func (h MeshZHeaderAltAlt) SoftLinks() []uint32 { return append([]uint32(nil), h.CRC32s...) }

func readMeshZHeaderAltAlt(r *schema.Reader) MeshZHeaderAltAlt {
	h := MeshZHeaderAltAlt{FriendlyNameCRC32: r.U32LE()}
	h.CRC32s = readU32Array(r)
	h.Rot = readQuat(r)
	h.Transform = readMat4f(r)
	h.Unknown2 = r.F32LE()
	h.Unknown0 = r.F32LE()
	h.Unknown1 = r.U16LE()
	h.Unknown3 = readVec4f(r)
	h.Unknown4 = r.U32LE()
	h.Unknown5 = r.U32LE()
	h.Unknown6 = r.U32LE()
	h.Unknown7 = r.U32LE()
	h.Unknown10s = schema.PascalArray(r, true, readMeshZHeaderAltAltUnknown10)
	h.Unknown8 = r.U32LE()
	h.Unknown9 = r.U32LE()
	h.Unknown4s = schema.PascalArray(r, true, readMeshZHeaderAltAltUnknown4)
	h.Unknown5s = schema.PascalArray(r, true, readMeshZHeaderAltAltUnknown5)
	h.Unknown6s = readU32Array(r)
	h.Unknown7s = schema.PascalArray(r, true, func(r *schema.Reader) uint16 { return r.U16LE() })
	h.Unknown8s = schema.PascalArray(r, true, readMeshZHeaderAltAltUnknown8)
	r.Exact()
	return h
}
func writeMeshZHeaderAltAlt(w *schema.Writer, h MeshZHeaderAltAlt) {
	w.U32LE(h.FriendlyNameCRC32)
	writeU32Array(w, h.CRC32s)
	writeQuat(w, h.Rot)
	writeMat4f(w, h.Transform)
	w.F32LE(h.Unknown2)
	w.F32LE(h.Unknown0)
	w.U16LE(h.Unknown1)
	writeVec4f(w, h.Unknown3)
	w.U32LE(h.Unknown4)
	w.U32LE(h.Unknown5)
	w.U32LE(h.Unknown6)
	w.U32LE(h.Unknown7)
	schema.WritePascalArray(w, true, h.Unknown10s, writeMeshZHeaderAltAltUnknown10)
	w.U32LE(h.Unknown8)
	w.U32LE(h.Unknown9)
	schema.WritePascalArray(w, true, h.Unknown4s, writeMeshZHeaderAltAltUnknown4)
	schema.WritePascalArray(w, true, h.Unknown5s, writeMeshZHeaderAltAltUnknown5)
	writeU32Array(w, h.Unknown6s)
	schema.WritePascalArray(w, true, h.Unknown7s, func(w *schema.Writer, v uint16) { w.U16LE(v) })
	schema.WritePascalArray(w, true, h.Unknown8s, writeMeshZHeaderAltAltUnknown8)
}

// MeshObject is the JSON shape for a decoded Mesh_Z object: header_variant
// and body_variant record which of the schema's three header shapes and
// four body shapes (or "opaque" for either) this particular object used,
// since nothing in the wire format records that choice explicitly — see
// the package doc comment above.
type MeshObject struct {
	HeaderVariant string `json:"header_variant"`
	BodyVariant   string `json:"body_variant"`
	Header        any    `json:"header"`
	Mesh          any    `json:"mesh"`
}

func (o MeshObject) HardLinks() []uint32 {
	if refs, ok := o.Mesh.(References); ok {
		return refs.HardLinks()
	}
	return nil
}

func (o MeshObject) SoftLinks() []uint32 {
	if refs, ok := o.Header.(References); ok {
		return refs.SoftLinks()
	}
	return nil
}

func UnpackMeshZ(_ *ParseContext, header, body []byte) (any, error) {
	hr := schema.NewReader(header)
	primaryHeader := readMeshZHeader(hr)
	if hr.Err() == nil {
		br := schema.NewReader(body)
		mesh := readMeshZ(br)
		if br.Err() == nil {
			return MeshObject{HeaderVariant: "primary", BodyVariant: "mesh", Header: primaryHeader, Mesh: mesh}, nil
		}
		return MeshObject{HeaderVariant: "primary", BodyVariant: "opaque", Header: primaryHeader, Mesh: append([]byte(nil), body...)}, nil
	}

	hr = schema.NewReader(header)
	altHeader := readMeshZHeaderAlt(hr)
	if hr.Err() == nil {
		br := schema.NewReader(body)
		mesh := readMeshZAlt(br)
		if br.Err() == nil {
			return MeshObject{HeaderVariant: "alt", BodyVariant: "alt", Header: altHeader, Mesh: mesh}, nil
		}
		return MeshObject{HeaderVariant: "alt", BodyVariant: "opaque", Header: altHeader, Mesh: append([]byte(nil), body...)}, nil
	}

	hr = schema.NewReader(header)
	altAltHeader := readMeshZHeaderAltAlt(hr)
	if hr.Err() == nil {
		br := schema.NewReader(body)
		mesh := readMeshZAltAlt(br)
		if br.Err() == nil {
			return MeshObject{HeaderVariant: "alt_alt", BodyVariant: "alt_alt", Header: altAltHeader, Mesh: mesh}, nil
		}
		br = schema.NewReader(body)
		meshAltAltAlt := readMeshZAltAltAlt(br)
		if br.Err() == nil {
			return MeshObject{HeaderVariant: "alt_alt", BodyVariant: "alt_alt_alt", Header: altAltHeader, Mesh: meshAltAltAlt}, nil
		}
		return MeshObject{HeaderVariant: "alt_alt", BodyVariant: "opaque", Header: altAltHeader, Mesh: append([]byte(nil), body...)}, nil
	}

	return MeshObject{HeaderVariant: "opaque", BodyVariant: "opaque", Header: append([]byte(nil), header...), Mesh: append([]byte(nil), body...)}, nil
}

func PackMeshZ(_ *ParseContext, raw json.RawMessage) ([]byte, []byte, error) {
	var shape struct {
		HeaderVariant string          `json:"header_variant"`
		BodyVariant   string          `json:"body_variant"`
		Header        json.RawMessage `json:"header"`
		Mesh          json.RawMessage `json:"mesh"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, nil, err
	}

	hw := schema.NewWriter()
	switch shape.HeaderVariant {
	case "primary":
		var h MeshZHeader
		if err := json.Unmarshal(shape.Header, &h); err != nil {
			return nil, nil, err
		}
		writeMeshZHeader(hw, h)
	case "alt":
		var h MeshZHeaderAlt
		if err := json.Unmarshal(shape.Header, &h); err != nil {
			return nil, nil, err
		}
		writeMeshZHeaderAlt(hw, h)
	case "alt_alt":
		var h MeshZHeaderAltAlt
		if err := json.Unmarshal(shape.Header, &h); err != nil {
			return nil, nil, err
		}
		writeMeshZHeaderAlt_altAlt(hw, h)
	case "opaque":
		var raw []byte
		if err := json.Unmarshal(shape.Header, &raw); err != nil {
			return nil, nil, err
		}
		hw.Raw(raw)
	default:
		return nil, nil, xerrors.Errorf("mesh_z: unknown header_variant %q: %w", shape.HeaderVariant, dpcerr.ErrMalformedObject)
	}

	bw := schema.NewWriter()
	switch shape.BodyVariant {
	case "mesh":
		var m MeshZ
		if err := json.Unmarshal(shape.Mesh, &m); err != nil {
			return nil, nil, err
		}
		if err := writeMeshZ(bw, m); err != nil {
			return nil, nil, err
		}
	case "alt":
		var m MeshZAlt
		if err := json.Unmarshal(shape.Mesh, &m); err != nil {
			return nil, nil, err
		}
		if err := writeMeshZAlt(bw, m); err != nil {
			return nil, nil, err
		}
	case "alt_alt":
		var m MeshZAltAlt
		if err := json.Unmarshal(shape.Mesh, &m); err != nil {
			return nil, nil, err
		}
		if err := writeMeshZAltAlt(bw, m); err != nil {
			return nil, nil, err
		}
	case "alt_alt_alt":
		var m MeshZAltAltAlt
		if err := json.Unmarshal(shape.Mesh, &m); err != nil {
			return nil, nil, err
		}
		if err := writeMeshZAltAltAlt(bw, m); err != nil {
			return nil, nil, err
		}
	case "opaque":
		var raw []byte
		if err := json.Unmarshal(shape.Mesh, &raw); err != nil {
			return nil, nil, err
		}
		bw.Raw(raw)
	default:
		return nil, nil, xerrors.Errorf("mesh_z: unknown body_variant %q: %w", shape.BodyVariant, dpcerr.ErrMalformedObject)
	}

	return hw.Bytes(), bw.Bytes(), nil
}

// writeMeshZHeaderAlt_altAlt exists only to give the alt_alt case above a
// distinctly-named call site from writeMeshZHeaderAlt; it's a thin alias.
func writeMeshZHeaderAlt_altAlt(w *schema.Writer, h MeshZHeaderAltAlt) {
	writeMeshZHeaderAltAlt(w, h)
}
