// Package fuelfmt implements the per-class typed object formats named in
// the object-class registry: the schemas for Mesh_Z, Bitmap_Z, Material_Z,
// Sound_Z and the rest of the ~40 known DPC object classes, plus the
// registry itself that maps a class_crc32 to its (header, body) schema
// pair.
package fuelfmt

import "github.com/widberg/godpc/internal/schema"

// Vec2f, Vec3f and Vec4f mirror fuel_fmt/common.rs: note the X, Z, Y field
// order of Vec3f, Vec3i32 and the first three components of Vec4f (not
// X, Y, Z) — a quirk of the original toolchain's vector layout that must be
// preserved byte for byte.
type Vec2f struct {
	X, Y float32
}

type Vec3f struct {
	X, Z, Y float32
}

type Vec4f struct {
	X, Z, Y, W float32
}

type Vec3i32 struct {
	X, Z, Y int32
}

type Quat struct {
	X, Y, Z, W float32
}

// Mat4f is a 16-element row-major 4x4 transform matrix.
type Mat4f [16]float32

func readVec2f(r *schema.Reader) Vec2f {
	return Vec2f{X: r.F32LE(), Y: r.F32LE()}
}

func writeVec2f(w *schema.Writer, v Vec2f) {
	w.F32LE(v.X)
	w.F32LE(v.Y)
}

func readVec3f(r *schema.Reader) Vec3f {
	x := r.F32LE()
	z := r.F32LE()
	y := r.F32LE()
	return Vec3f{X: x, Z: z, Y: y}
}

func writeVec3f(w *schema.Writer, v Vec3f) {
	w.F32LE(v.X)
	w.F32LE(v.Z)
	w.F32LE(v.Y)
}

func readVec4f(r *schema.Reader) Vec4f {
	x := r.F32LE()
	z := r.F32LE()
	y := r.F32LE()
	wv := r.F32LE()
	return Vec4f{X: x, Z: z, Y: y, W: wv}
}

func writeVec4f(w *schema.Writer, v Vec4f) {
	w.F32LE(v.X)
	w.F32LE(v.Z)
	w.F32LE(v.Y)
	w.F32LE(v.W)
}

func readVec3i32(r *schema.Reader) Vec3i32 {
	x := r.I32LE()
	z := r.I32LE()
	y := r.I32LE()
	return Vec3i32{X: x, Z: z, Y: y}
}

func writeVec3i32(w *schema.Writer, v Vec3i32) {
	w.I32LE(v.X)
	w.I32LE(v.Z)
	w.I32LE(v.Y)
}

func readQuat(r *schema.Reader) Quat {
	return Quat{X: r.F32LE(), Y: r.F32LE(), Z: r.F32LE(), W: r.F32LE()}
}

func writeQuat(w *schema.Writer, v Quat) {
	w.F32LE(v.X)
	w.F32LE(v.Y)
	w.F32LE(v.Z)
	w.F32LE(v.W)
}

func readMat4f(r *schema.Reader) Mat4f {
	var m Mat4f
	for i := range m {
		m[i] = r.F32LE()
	}
	return m
}

func writeMat4f(w *schema.Writer, m Mat4f) {
	for _, v := range m {
		w.F32LE(v)
	}
}

// RangeBeginEnd and RangeBeginSize are the two index-range shapes used by
// Mesh_Z's collision/morph tables: a begin/end pair and a begin/size pair,
// both plain u32s on the wire. mesh.rs imports these (along with
// FadeDistances, DynSphere, DynBox, PascalString, NumeratorFloat,
// VertexVectorComponent and a generic Vec3<T>) from a common module this
// retrieval pack's original_source/ does not include; their field layouts
// below are reconstructed from how mesh.rs's own structs consume them (see
// DESIGN.md).
type RangeBeginEnd struct {
	Begin uint32 `json:"begin"`
	End   uint32 `json:"end"`
}

func readRangeBeginEnd(r *schema.Reader) RangeBeginEnd {
	return RangeBeginEnd{Begin: r.U32LE(), End: r.U32LE()}
}

func writeRangeBeginEnd(w *schema.Writer, v RangeBeginEnd) {
	w.U32LE(v.Begin)
	w.U32LE(v.End)
}

type RangeBeginSize struct {
	Begin uint32 `json:"begin"`
	Size  uint32 `json:"size"`
}

func readRangeBeginSize(r *schema.Reader) RangeBeginSize {
	return RangeBeginSize{Begin: r.U32LE(), Size: r.U32LE()}
}

func writeRangeBeginSize(w *schema.Writer, v RangeBeginSize) {
	w.U32LE(v.Begin)
	w.U32LE(v.Size)
}

// FadeDistances is MeshZHeader's LOD fade window: reconstructed as a
// near/far float pair, the simplest shape consistent with its single use
// site (a fixed-size field between a u16 "typ" tag and the dyn_spheres
// array).
type FadeDistances struct {
	Near float32 `json:"near"`
	Far  float32 `json:"far"`
}

func readFadeDistances(r *schema.Reader) FadeDistances {
	return FadeDistances{Near: r.F32LE(), Far: r.F32LE()}
}

func writeFadeDistances(w *schema.Writer, v FadeDistances) {
	w.F32LE(v.Near)
	w.F32LE(v.Far)
}

// DynSphere and DynBox are MeshZHeader's per-attachment-point bounding
// volumes; reconstructed as a naming crc32 plus the obvious sphere/box
// geometry, matching the size of every other named+geometry pairing in
// this header family (crc32s, material_crc32s).
type DynSphere struct {
	NameCRC32 uint32  `json:"name_crc32"`
	Center    Vec3f   `json:"center"`
	Radius    float32 `json:"radius"`
}

func readDynSphere(r *schema.Reader) DynSphere {
	return DynSphere{NameCRC32: r.U32LE(), Center: readVec3f(r), Radius: r.F32LE()}
}

func writeDynSphere(w *schema.Writer, v DynSphere) {
	w.U32LE(v.NameCRC32)
	writeVec3f(w, v.Center)
	w.F32LE(v.Radius)
}

type DynBox struct {
	NameCRC32 uint32 `json:"name_crc32"`
	Min       Vec3f  `json:"min"`
	Max       Vec3f  `json:"max"`
}

func readDynBox(r *schema.Reader) DynBox {
	return DynBox{NameCRC32: r.U32LE(), Min: readVec3f(r), Max: readVec3f(r)}
}

func writeDynBox(w *schema.Writer, v DynBox) {
	w.U32LE(v.NameCRC32)
	writeVec3f(w, v.Min)
	writeVec3f(w, v.Max)
}

// PascalString is a u32-length-prefixed byte string (MorphTargetDesc's
// name field), the same Pascal-array shape used throughout this format
// family but decoded to a Go string instead of a byte slice.
func readPascalString(r *schema.Reader) string {
	b := schema.PascalArray(r, true, func(r *schema.Reader) byte { return r.U8() })
	return string(b)
}

func writePascalString(w *schema.Writer, s string) {
	schema.WritePascalArray(w, true, []byte(s), func(w *schema.Writer, v byte) { w.U8(v) })
}

// VertexVector3u8 is Vec3<VertexVectorComponent>: a compressed tangent or
// normal, each component an unsigned byte. Field order here is the
// natural X, Y, Z — there's no evidence this generic Vec3<T> shares Vec3f's
// X, Z, Y quirk, since that quirk is specific to the float vector type.
type VertexVector3u8 struct {
	X uint8 `json:"x"`
	Y uint8 `json:"y"`
	Z uint8 `json:"z"`
}

func readVertexVector3u8(r *schema.Reader) VertexVector3u8 {
	return VertexVector3u8{X: r.U8(), Y: r.U8(), Z: r.U8()}
}

func writeVertexVector3u8(w *schema.Writer, v VertexVector3u8) {
	w.U8(v.X)
	w.U8(v.Y)
	w.U8(v.Z)
}

// ShortVecWeird is Vec3<NumeratorFloat<i16, 1024>>: three fixed-point
// components, each a little-endian i16 divided by 1024 to recover the
// float value. Used for Mesh_Z's short_vec_weirds table and morph
// displacement vectors.
type ShortVecWeird struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

const numeratorFloat1024Denom = 1024

func readNumeratorFloat1024(r *schema.Reader) float32 {
	return float32(int16(r.U16LE())) / numeratorFloat1024Denom
}

func writeNumeratorFloat1024(w *schema.Writer, v float32) {
	w.U16LE(uint16(int16(v * numeratorFloat1024Denom)))
}

func readShortVecWeird(r *schema.Reader) ShortVecWeird {
	return ShortVecWeird{X: readNumeratorFloat1024(r), Y: readNumeratorFloat1024(r), Z: readNumeratorFloat1024(r)}
}

func writeShortVecWeird(w *schema.Writer, v ShortVecWeird) {
	writeNumeratorFloat1024(w, v.X)
	writeNumeratorFloat1024(w, v.Y)
	writeNumeratorFloat1024(w, v.Z)
}

func readU32Array(r *schema.Reader) []uint32 {
	return schema.PascalArray(r, true, func(r *schema.Reader) uint32 { return r.U32LE() })
}

func writeU32Array(w *schema.Writer, v []uint32) {
	schema.WritePascalArray(w, true, v, func(w *schema.Writer, v uint32) { w.U32LE(v) })
}

// ResourceObjectZ is the most common header archetype: a friendly-name
// crc32 and, when any input remains, a length-prefixed list of referenced
// crc32s.
type ResourceObjectZ struct {
	FriendlyNameCRC32 uint32
	CRC32s            []uint32 // nil when absent, matching the original's Option<Vec<u32>>
}

func ReadResourceObjectZ(r *schema.Reader) ResourceObjectZ {
	h := ResourceObjectZ{FriendlyNameCRC32: r.U32LE()}
	if r.Remaining() != 0 {
		h.CRC32s = readU32Array(r)
	}
	r.Exact()
	return h
}

func WriteResourceObjectZ(w *schema.Writer, h ResourceObjectZ) {
	w.U32LE(h.FriendlyNameCRC32)
	if h.CRC32s != nil {
		writeU32Array(w, h.CRC32s)
	}
}

// ObjectZ is the transform-bearing header archetype: a quaternion, a 4x4
// matrix and a float tail, used by classes that place their objects in the
// game world (lods, skins, particles).
type ObjectZ struct {
	FriendlyNameCRC32 uint32
	CRC32OrZero       uint32
	CRC32s            []uint32 // present unless exactly 90 bytes follow CRC32OrZero (see ReadObjectZ)
	Rot               Quat
	Transform         Mat4f
	Unknown2          float32
	Unknown0          float32
	Unknown1          uint16
}

// ReadObjectZ mirrors fuel_fmt/common.rs's ObjectZ: the trailing crc32 list
// is present unless exactly 90 bytes remain after CRC32OrZero (the size of
// the rot/transform/float tail alone), and when present its length is
// CRC32OrZero+1, not a separately encoded count.
func ReadObjectZ(r *schema.Reader) ObjectZ {
	h := ObjectZ{
		FriendlyNameCRC32: r.U32LE(),
		CRC32OrZero:       r.U32LE(),
	}
	if r.Remaining() != 90 {
		n := int(h.CRC32OrZero) + 1
		h.CRC32s = schema.FixedVec(r, n, func(r *schema.Reader) uint32 { return r.U32LE() })
	}
	h.Rot = readQuat(r)
	h.Transform = readMat4f(r)
	h.Unknown2 = r.F32LE()
	h.Unknown0 = r.F32LE()
	h.Unknown1 = r.U16LE()
	r.Exact()
	return h
}

func WriteObjectZ(w *schema.Writer, h ObjectZ) {
	w.U32LE(h.FriendlyNameCRC32)
	w.U32LE(h.CRC32OrZero)
	if h.CRC32s != nil {
		schema.WriteFixedVec(w, h.CRC32s, func(w *schema.Writer, v uint32) { w.U32LE(v) })
	}
	writeQuat(w, h.Rot)
	writeMat4f(w, h.Transform)
	w.F32LE(h.Unknown2)
	w.F32LE(h.Unknown0)
	w.U16LE(h.Unknown1)
}
