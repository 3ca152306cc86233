package fuelfmt

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/widberg/godpc/internal/schema"
)

func TestRegistryHasAllKnownClasses(t *testing.T) {
	if len(Registry) != 44 {
		t.Fatalf("len(Registry) = %d, want 44", len(Registry))
	}
	for crc32, e := range Registry {
		if e.CRC32 != crc32 {
			t.Errorf("entry %q keyed under %d but carries CRC32 %d", e.Name, crc32, e.CRC32)
		}
		if e.Unpack == nil || e.Pack == nil {
			t.Errorf("entry %q missing Unpack/Pack", e.Name)
		}
	}
}

func TestLookupMissingClass(t *testing.T) {
	if _, ok := Lookup(0); ok {
		t.Fatal("Lookup(0) unexpectedly found an entry")
	}
}

func TestBinaryZRoundTrip(t *testing.T) {
	ctx := NewParseContext()
	body := []byte{1, 2, 3, 4}
	v, err := UnpackBinaryZ(ctx, nil, body)
	if err != nil {
		t.Fatalf("UnpackBinaryZ: %v", err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, packedBody, err := PackBinaryZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackBinaryZ: %v", err)
	}
	if len(header) != 0 {
		t.Errorf("header = %v, want empty", header)
	}
	if diff := cmp.Diff(body, packedBody); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUserDefineZRoundTrip(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	WriteResourceObjectZ(hw, ResourceObjectZ{FriendlyNameCRC32: 0xdeadbeef})

	bw := schema.NewWriter()
	schema.WritePascalArray(bw, true, []byte("hello world"), func(w *schema.Writer, b byte) { w.U8(b) })

	v, err := UnpackUserDefineZ(ctx, hw.Bytes(), bw.Bytes())
	if err != nil {
		t.Fatalf("UnpackUserDefineZ: %v", err)
	}
	obj := v.(UserDefineObject)
	if obj.UserDefine != "hello world" {
		t.Fatalf("UserDefine = %q, want %q", obj.UserDefine, "hello world")
	}

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, body, err := PackUserDefineZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackUserDefineZ: %v", err)
	}
	if diff := cmp.Diff(hw.Bytes(), header); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(bw.Bytes(), body); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSoundZRoundTrip(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	hw.U32LE(0x1234)
	hw.U32LE(44100)
	hw.U32LE(8820)
	hw.U16LE(1)
	hw.U16LE(0)
	pcm := []byte{0, 1, 2, 3, 4, 5}

	v, err := UnpackSoundZ(ctx, hw.Bytes(), pcm)
	if err != nil {
		t.Fatalf("UnpackSoundZ: %v", err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, body, err := PackSoundZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackSoundZ: %v", err)
	}
	if diff := cmp.Diff(hw.Bytes(), header); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(pcm, body); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBitmapZPrimaryRoundTrip(t *testing.T) {
	ctx := NewParseContext()
	h := BitmapZHeader{
		FriendlyNameCRC32: 111, DwCaps2: 2, Width: 256, Height: 128, DataSize: 4096,
		U1: 1, BitmapType: 7, Zero: 0, U7: 1.5, DxtVersion0: 3,
		MipMapCount: 4, U2: 0, U3: 0, DxtVersion1: 3, U4: 0,
	}
	hw := schema.NewWriter()
	writeBitmapZHeader(hw, h)

	v, err := UnpackBitmapZ(ctx, hw.Bytes(), nil)
	if err != nil {
		t.Fatalf("UnpackBitmapZ: %v", err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, _, err := PackBitmapZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackBitmapZ: %v", err)
	}
	if diff := cmp.Diff(hw.Bytes(), header); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBitmapZAlternateRoundTrip(t *testing.T) {
	ctx := NewParseContext()
	hh := BitmapZHeaderAlternate{FriendlyNameCRC32: 9, Zero0: 0, Unknown0: 1, DxtVersion0: 2, Unknown1: 3, Zero1: 0}
	hw := schema.NewWriter()
	writeBitmapZHeaderAlternate(hw, hh)

	bw := schema.NewWriter()
	bw.U32LE(64)
	bw.U32LE(64)
	bw.U32LE(0)
	bw.U32LE(5)
	bw.U16LE(6)
	bw.U8(7)
	bw.Raw([]byte{9, 9, 9})

	v, err := UnpackBitmapZ(ctx, hw.Bytes(), bw.Bytes())
	if err != nil {
		t.Fatalf("UnpackBitmapZ: %v", err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, body, err := PackBitmapZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackBitmapZ: %v", err)
	}
	if diff := cmp.Diff(hw.Bytes(), header); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(bw.Bytes(), body); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMaterialZPrimaryRoundTrip(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	WriteResourceObjectZ(hw, ResourceObjectZ{FriendlyNameCRC32: 7})

	bw := schema.NewWriter()
	writeMaterialZHead(bw, materialZHead{Color: Vec4f{X: 1, Z: 2, Y: 3, W: 4}, Emission: Vec3f{X: 5, Z: 6, Y: 7}, Unknown0: -1})
	writeFloatsLE(bw, make([]float32, materialZFloats0))
	for i := 0; i < 9; i++ {
		bw.U32LE(uint32(i + 1))
	}

	v, err := UnpackMaterialZ(ctx, hw.Bytes(), bw.Bytes())
	if err != nil {
		t.Fatalf("UnpackMaterialZ: %v", err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, body, err := PackMaterialZ(ctx, raw)
	if err != nil {
		t.Fatalf("PackMaterialZ: %v", err)
	}
	if diff := cmp.Diff(hw.Bytes(), header); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(bw.Bytes(), body); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestOpaqueResourceRoundTrip(t *testing.T) {
	ctx := NewParseContext()
	hw := schema.NewWriter()
	WriteResourceObjectZ(hw, ResourceObjectZ{FriendlyNameCRC32: 321, CRC32s: []uint32{1, 2, 3}})
	body := []byte{9, 8, 7, 6}

	v, err := UnpackOpaqueResource(ctx, hw.Bytes(), body)
	if err != nil {
		t.Fatalf("UnpackOpaqueResource: %v", err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header, packedBody, err := PackOpaqueResource(ctx, raw)
	if err != nil {
		t.Fatalf("PackOpaqueResource: %v", err)
	}
	if diff := cmp.Diff(hw.Bytes(), header); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(body, packedBody); diff != "" {
		t.Errorf("body round trip mismatch (-want +got):\n%s", diff)
	}
}
