package fuelfmt

import (
	"encoding/json"

	"github.com/widberg/godpc/internal/schema"
)

// BitmapZ has two header shapes, distinguished by the class_object
// (header) buffer's exact length: 13 bytes selects BitmapZHeaderAlternate
// (width/height inlined into the body), anything else is the primary
// 32-byte BitmapZHeader. Despite spec.md's "23-byte" shorthand, the
// original's BitmapZHeader is 32 bytes on the wire; see DESIGN.md.
const bitmapZAltHeaderLen = 13

// BitmapZHeader is the primary header: width/height/data_size plus a DXT
// tag pair (dxt_version0/1) and assorted unknown fields the original never
// named.
type BitmapZHeader struct {
	FriendlyNameCRC32 uint32  `json:"friendly_name_crc32"`
	DwCaps2           uint16  `json:"dw_caps2"`
	Width             uint32  `json:"width"`
	Height            uint32  `json:"height"`
	DataSize          uint32  `json:"data_size"`
	U1                uint8   `json:"u1"`
	BitmapType        uint8   `json:"bitmap_type"`
	Zero              uint16  `json:"zero"`
	U7                float32 `json:"u7"`
	DxtVersion0       uint8   `json:"dxt_version0"`
	MipMapCount       uint8   `json:"mip_map_count"`
	U2                uint8   `json:"u2"`
	U3                uint8   `json:"u3"`
	DxtVersion1       uint8   `json:"dxt_version1"`
	U4                uint8   `json:"u4"`
}

func readBitmapZHeader(r *schema.Reader) BitmapZHeader {
	h := BitmapZHeader{
		FriendlyNameCRC32: r.U32LE(),
		DwCaps2:           r.U16LE(),
		Width:             r.U32LE(),
		Height:            r.U32LE(),
		DataSize:          r.U32LE(),
		U1:                r.U8(),
		BitmapType:        r.U8(),
		Zero:              r.U16LE(),
		U7:                r.F32LE(),
		DxtVersion0:       r.U8(),
	}
	h.MipMapCount = r.U8()
	h.U2 = r.U8()
	h.U3 = r.U8()
	h.DxtVersion1 = r.U8()
	h.U4 = r.U8()
	r.Exact()
	return h
}

func writeBitmapZHeader(w *schema.Writer, h BitmapZHeader) {
	w.U32LE(h.FriendlyNameCRC32)
	w.U16LE(h.DwCaps2)
	w.U32LE(h.Width)
	w.U32LE(h.Height)
	w.U32LE(h.DataSize)
	w.U8(h.U1)
	w.U8(h.BitmapType)
	w.U16LE(h.Zero)
	w.F32LE(h.U7)
	w.U8(h.DxtVersion0)
	w.U8(h.MipMapCount)
	w.U8(h.U2)
	w.U8(h.U3)
	w.U8(h.DxtVersion1)
	w.U8(h.U4)
}

// BitmapZHeaderAlternate is the 13-byte variant, used when the class_object
// region is exactly that size.
type BitmapZHeaderAlternate struct {
	FriendlyNameCRC32 uint32 `json:"friendly_name_crc32"`
	Zero0             uint32 `json:"zero0"`
	Unknown0          uint8  `json:"unknown0"`
	DxtVersion0       uint8  `json:"dxt_version0"`
	Unknown1          uint8  `json:"unknown1"`
	Zero1             uint16 `json:"zero1"`
}

func readBitmapZHeaderAlternate(r *schema.Reader) BitmapZHeaderAlternate {
	h := BitmapZHeaderAlternate{
		FriendlyNameCRC32: r.U32LE(),
		Zero0:             r.U32LE(),
		Unknown0:          r.U8(),
		DxtVersion0:       r.U8(),
		Unknown1:          r.U8(),
		Zero1:             r.U16LE(),
	}
	r.Exact()
	return h
}

func writeBitmapZHeaderAlternate(w *schema.Writer, h BitmapZHeaderAlternate) {
	w.U32LE(h.FriendlyNameCRC32)
	w.U32LE(h.Zero0)
	w.U8(h.Unknown0)
	w.U8(h.DxtVersion0)
	w.U8(h.Unknown1)
	w.U16LE(h.Zero1)
}

// BitmapZAlternate is the body that accompanies BitmapZHeaderAlternate:
// width/height inlined, then an optional all-zero u32 probe, then raw pixel
// data filling the rest of the buffer.
type BitmapZAlternate struct {
	Width    uint32  `json:"width"`
	Height   uint32  `json:"height"`
	Zero0    uint32  `json:"zero0"`
	Unknown0 uint32  `json:"unknown0"`
	Zero1    *uint32 `json:"zero1,omitempty"`
	Unknown1 uint16  `json:"unknown1"`
	Unknown2 uint8   `json:"unknown2"`
	Data     []byte  `json:"data"`
}

type BitmapObject struct {
	BitmapHeader BitmapZHeader `json:"bitmap_header"`
	Data         []byte        `json:"data"`
}

type BitmapObjectAlternate struct {
	BitmapHeader BitmapZHeaderAlternate `json:"bitmap_header"`
	Bitmap       BitmapZAlternate       `json:"bitmap"`
}

func UnpackBitmapZ(_ *ParseContext, header, body []byte) (any, error) {
	if len(header) == bitmapZAltHeaderLen {
		h := readBitmapZHeaderAlternate(schema.NewReader(header))

		r := schema.NewReader(body)
		b := BitmapZAlternate{
			Width:    r.U32LE(),
			Height:   r.U32LE(),
			Zero0:    r.U32LE(),
			Unknown0: r.U32LE(),
		}
		if r.Remaining() >= 4 {
			peek := schema.NewReader(body[len(body)-r.Remaining():])
			if peek.U32LE() == 0 {
				z := r.U32LE()
				b.Zero1 = &z
			}
		}
		b.Unknown1 = r.U16LE()
		b.Unknown2 = r.U8()
		b.Data = r.Rest()
		if r.Err() != nil {
			return nil, r.Err()
		}
		return BitmapObjectAlternate{BitmapHeader: h, Bitmap: b}, nil
	}

	h := readBitmapZHeader(schema.NewReader(header))
	return BitmapObject{BitmapHeader: h, Data: append([]byte(nil), body...)}, nil
}

func PackBitmapZ(_ *ParseContext, raw json.RawMessage) ([]byte, []byte, error) {
	var probe struct {
		Bitmap *BitmapZAlternate `json:"bitmap"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, nil, err
	}

	if probe.Bitmap != nil {
		var obj BitmapObjectAlternate
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, nil, err
		}
		hw := schema.NewWriter()
		writeBitmapZHeaderAlternate(hw, obj.BitmapHeader)

		bw := schema.NewWriter()
		bw.U32LE(obj.Bitmap.Width)
		bw.U32LE(obj.Bitmap.Height)
		bw.U32LE(obj.Bitmap.Zero0)
		bw.U32LE(obj.Bitmap.Unknown0)
		if obj.Bitmap.Zero1 != nil {
			bw.U32LE(*obj.Bitmap.Zero1)
		}
		bw.U16LE(obj.Bitmap.Unknown1)
		bw.U8(obj.Bitmap.Unknown2)
		bw.Raw(obj.Bitmap.Data)
		return hw.Bytes(), bw.Bytes(), nil
	}

	var obj BitmapObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, nil, err
	}
	hw := schema.NewWriter()
	writeBitmapZHeader(hw, obj.BitmapHeader)
	return hw.Bytes(), obj.Data, nil
}
