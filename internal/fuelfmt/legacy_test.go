package fuelfmt

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/widberg/godpc/internal/schema"
)

func TestNodeZStrictRoundTrip(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	WriteResourceObjectZ(hw, ResourceObjectZ{FriendlyNameCRC32: 42, CRC32s: []uint32{1, 2}})

	bw := schema.NewWriter()
	writeNodeZ(bw, NodeZ{ParentCRC32: 7, Unknown9: 1.5, Mat0: Mat4f{}, Mat1: Mat4f{}})

	v, err := UnpackNodeZ(ctx, hw.Bytes(), bw.Bytes())
	if err != nil {
		t.Fatalf("UnpackNodeZ: %v", err)
	}
	if _, ok := v.(NodeObject); !ok {
		t.Fatalf("UnpackNodeZ returned %T, want NodeObject", v)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, body, err := PackNodeZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackNodeZ: %v", err)
	}
	if diff := cmp.Diff(hw.Bytes(), header); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(bw.Bytes(), body); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNodeZFallsBackToOpaque(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	WriteResourceObjectZ(hw, ResourceObjectZ{FriendlyNameCRC32: 42})
	body := []byte{1, 2, 3}

	v, err := UnpackNodeZ(ctx, hw.Bytes(), body)
	if err != nil {
		t.Fatalf("UnpackNodeZ: %v", err)
	}
	alt, ok := v.(NodeObjectAlt)
	if !ok {
		t.Fatalf("UnpackNodeZ returned %T, want NodeObjectAlt", v)
	}
	if diff := cmp.Diff(body, alt.Node); diff != "" {
		t.Errorf("opaque body mismatch (-want +got):\n%s", diff)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, packedBody, err := PackNodeZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackNodeZ: %v", err)
	}
	if diff := cmp.Diff(hw.Bytes(), header); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(body, packedBody); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLodZStrictRoundTrip(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	WriteObjectZ(hw, ObjectZ{CRC32OrZero: 0, CRC32s: []uint32{99}})

	bw := schema.NewWriter()
	writeLodZ(bw, LodZ{
		Unknown0s:    []LodZUnknown0{{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}},
		SkinCRC32s:   []uint32{9, 10},
		SoundEntries: []LodZSoundEntry{{ID: 1, SoundCRC32: 2}},
	})

	v, err := UnpackLodZ(ctx, hw.Bytes(), bw.Bytes())
	if err != nil {
		t.Fatalf("UnpackLodZ: %v", err)
	}
	obj, ok := v.(LodObject)
	if !ok {
		t.Fatalf("UnpackLodZ returned %T, want LodObject", v)
	}
	if len(obj.Lod.SoundEntries) != 1 || obj.Lod.Unknown4s != nil {
		t.Fatalf("LodZ optional fields mismatch: %+v", obj.Lod)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, body, err := PackLodZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackLodZ: %v", err)
	}
	if diff := cmp.Diff(hw.Bytes(), header); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(bw.Bytes(), body); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLodZFallsBackToOpaque(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	WriteObjectZ(hw, ObjectZ{CRC32OrZero: 0, CRC32s: []uint32{99}})
	body := []byte{1, 2, 3, 4, 5}

	v, err := UnpackLodZ(ctx, hw.Bytes(), body)
	if err != nil {
		t.Fatalf("UnpackLodZ: %v", err)
	}
	if _, ok := v.(LodObjectAlt); !ok {
		t.Fatalf("UnpackLodZ returned %T, want LodObjectAlt", v)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, packedBody, err := PackLodZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackLodZ: %v", err)
	}
	if diff := cmp.Diff(hw.Bytes(), header); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(body, packedBody); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSkinZThreadsDataCountThroughContext(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	WriteObjectZ(hw, ObjectZ{CRC32OrZero: 0, CRC32s: []uint32{99}})

	bw := schema.NewWriter()
	writeSkinZ(bw, SkinZ{
		DataCount: 2,
		SkinSections: []SkinZSkinSection{{
			SkinSubsections: []SkinZSkinSubsection{{
				VertexGroupCRC32: 1,
				Data:             []uint32{10, 20},
			}},
		}},
	})

	v, err := UnpackSkinZ(ctx, hw.Bytes(), bw.Bytes())
	if err != nil {
		t.Fatalf("UnpackSkinZ: %v", err)
	}
	obj, ok := v.(SkinObject)
	if !ok {
		t.Fatalf("UnpackSkinZ returned %T, want SkinObject", v)
	}
	got := obj.Skin.SkinSections[0].SkinSubsections[0].Data
	if diff := cmp.Diff([]uint32{10, 20}, got); diff != "" {
		t.Errorf("Data mismatch (-want +got):\n%s", diff)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, body, err := PackSkinZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackSkinZ: %v", err)
	}
	if diff := cmp.Diff(hw.Bytes(), header); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(bw.Bytes(), body); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParticlesZFallsBackToOpaque(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	WriteObjectZ(hw, ObjectZ{CRC32OrZero: 0, CRC32s: []uint32{99}})
	body := []byte{1, 2, 3}

	v, err := UnpackParticlesZ(ctx, hw.Bytes(), body)
	if err != nil {
		t.Fatalf("UnpackParticlesZ: %v", err)
	}
	if _, ok := v.(ParticlesObjectAlt); !ok {
		t.Fatalf("UnpackParticlesZ returned %T, want ParticlesObjectAlt", v)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, packedBody, err := PackParticlesZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackParticlesZ: %v", err)
	}
	if diff := cmp.Diff(hw.Bytes(), header); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(body, packedBody); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParticlesDataZRoundTrip(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	WriteResourceObjectZ(hw, ResourceObjectZ{FriendlyNameCRC32: 5})

	bw := schema.NewWriter()
	writeParticlesDataZ(bw, ParticlesDataZ{
		Equals257: 257,
		PositionX: 1, PositionY: 2, PositionZ: 3,
		VelocityX: 4, VelocityY: 5, VelocityZ: 6,
		Shorts: []uint16{1, 2, 3},
	})

	v, err := UnpackParticlesDataZ(ctx, hw.Bytes(), bw.Bytes())
	if err != nil {
		t.Fatalf("UnpackParticlesDataZ: %v", err)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, body, err := PackParticlesDataZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackParticlesDataZ: %v", err)
	}
	if diff := cmp.Diff(hw.Bytes(), header); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(bw.Bytes(), body); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParticlesDataZRejectsShortBody(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	WriteResourceObjectZ(hw, ResourceObjectZ{})
	if _, err := UnpackParticlesDataZ(ctx, hw.Bytes(), []byte{1, 2, 3}); err == nil {
		t.Fatal("UnpackParticlesDataZ: want error on short body, got nil")
	}
}

func TestRtcZRoundTrip(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	WriteResourceObjectZ(hw, ResourceObjectZ{FriendlyNameCRC32: 1})

	bw := schema.NewWriter()
	writeRtcZ(bw, RtcZ{
		Unknown0:  1.5,
		Unknown3s: []uint32{1, 2, 3},
		Unknown1s: []RtcZUnknown1{{
			UnknownNodeCRC32: 99,
			Unknown5s:        []RtcZUnknown1Unknown5{{Unknown0: 1}},
		}},
	})

	v, err := UnpackRtcZ(ctx, hw.Bytes(), bw.Bytes())
	if err != nil {
		t.Fatalf("UnpackRtcZ: %v", err)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, body, err := PackRtcZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackRtcZ: %v", err)
	}
	if diff := cmp.Diff(hw.Bytes(), header); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(bw.Bytes(), body); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRtcZRejectsShortBody(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	WriteResourceObjectZ(hw, ResourceObjectZ{})
	if _, err := UnpackRtcZ(ctx, hw.Bytes(), []byte{1, 2}); err == nil {
		t.Fatal("UnpackRtcZ: want error on short body, got nil")
	}
}

func TestMeshZPrimaryRoundTrip(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	writeMeshZHeader(hw, MeshZHeader{LinkName: 1, DataName: 2, Radius: 3.5})

	bw := schema.NewWriter()
	if err := writeMeshZ(bw, MeshZ{
		MaterialCRC32s: []uint32{11, 22},
		ShortVecWeirds: []ShortVecWeird{{X: 1, Y: 2, Z: 3}},
		MeshBuffers: MeshBuffers{
			VertexBuffers: []VertexBufferExt{{
				VertexBufferID: 5,
				Vertices:       []VertexLayoutPosition{{Position: Vec3f{X: 1, Y: 2, Z: 3}}},
			}},
		},
	}); err != nil {
		t.Fatalf("writeMeshZ: %v", err)
	}

	v, err := UnpackMeshZ(ctx, hw.Bytes(), bw.Bytes())
	if err != nil {
		t.Fatalf("UnpackMeshZ: %v", err)
	}
	obj, ok := v.(MeshObject)
	if !ok {
		t.Fatalf("UnpackMeshZ returned %T, want MeshObject", v)
	}
	if obj.HeaderVariant != "primary" || obj.BodyVariant != "mesh" {
		t.Fatalf("variants = %q/%q, want primary/mesh", obj.HeaderVariant, obj.BodyVariant)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, body, err := PackMeshZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackMeshZ: %v", err)
	}
	if diff := cmp.Diff(hw.Bytes(), header); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(bw.Bytes(), body); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMeshZFallsBackToFullyOpaque(t *testing.T) {
	ctx := NewParseContext()
	header := []byte{1, 2, 3}
	body := []byte{4, 5, 6}

	v, err := UnpackMeshZ(ctx, header, body)
	if err != nil {
		t.Fatalf("UnpackMeshZ: %v", err)
	}
	obj, ok := v.(MeshObject)
	if !ok {
		t.Fatalf("UnpackMeshZ returned %T, want MeshObject", v)
	}
	if obj.HeaderVariant != "opaque" || obj.BodyVariant != "opaque" {
		t.Fatalf("variants = %q/%q, want opaque/opaque", obj.HeaderVariant, obj.BodyVariant)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	gotHeader, gotBody, err := PackMeshZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackMeshZ: %v", err)
	}
	if diff := cmp.Diff(header, gotHeader); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(body, gotBody); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMeshZRejectsUnknownVertexSize(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	writeMeshZHeader(hw, MeshZHeader{})

	bw := schema.NewWriter()
	// Empty top-level PascalArrays up through material_crc32s so the
	// vertex-buffer table is reached, then one vertex buffer advertising
	// an invalid vertex_size.
	for i := 0; i < 6; i++ {
		bw.U32LE(0)
	}
	bw.U32LE(0) // material_crc32s len
	for i := 0; i < 3; i++ {
		bw.U32LE(0)
	}
	bw.U32LE(1) // mesh_buffers.vertex_buffers len
	bw.U32LE(1) // vertex_count
	bw.U32LE(999) // vertex_size: not one of {12,36,48,60}
	bw.U32LE(0)   // vertex_buffer_id

	v, err := UnpackMeshZ(ctx, hw.Bytes(), bw.Bytes())
	if err != nil {
		t.Fatalf("UnpackMeshZ: %v", err)
	}
	obj, ok := v.(MeshObject)
	if !ok {
		t.Fatalf("UnpackMeshZ returned %T, want MeshObject", v)
	}
	if obj.HeaderVariant != "primary" || obj.BodyVariant != "opaque" {
		t.Fatalf("variants = %q/%q, want primary/opaque", obj.HeaderVariant, obj.BodyVariant)
	}
}
