package fuelfmt

import (
	"encoding/json"

	"github.com/widberg/godpc/internal/schema"
)

// NodeZ is the strict body layout, grounded on fuel_fmt/node.rs: a handful
// of named and unknown crc32/float/u32 fields, a 32-byte unknown blob and
// two 4x4 transforms. NodeZAlt is the fallback when the body doesn't parse
// exactly as NodeZ: the whole body kept as an opaque blob, per spec.md §9's
// "try strict, else opaque" requirement.
type NodeZ struct {
	ParentCRC32     uint32     `json:"parent_crc32"`
	SomeNodeCRC320  uint32     `json:"some_node_crc32_0"`
	SomeNodeCRC321  uint32     `json:"some_node_crc32_1"`
	SomeNodeCRC322  uint32     `json:"some_node_crc32_2"`
	SomeCRC320      uint32     `json:"some_crc32_0"`
	SomeCRC321      uint32     `json:"some_crc32_1"`
	Unknown6        uint32     `json:"unknown6"`
	Unknown7        uint32     `json:"unknown7"`
	Unknown8        uint32     `json:"unknown8"`
	Unknown9        float32    `json:"unknown9"`
	Unknown10s      [32]byte   `json:"unknown10s"`
	Mat0            Mat4f      `json:"mat0"`
	Unknown11s      [17]uint16 `json:"unknown11s"`
	Mat1            Mat4f      `json:"mat1"`
}

func readNodeZ(r *schema.Reader) NodeZ {
	n := NodeZ{
		ParentCRC32:    r.U32LE(),
		SomeNodeCRC320: r.U32LE(),
		SomeNodeCRC321: r.U32LE(),
		SomeNodeCRC322: r.U32LE(),
		SomeCRC320:     r.U32LE(),
		SomeCRC321:     r.U32LE(),
		Unknown6:       r.U32LE(),
		Unknown7:       r.U32LE(),
		Unknown8:       r.U32LE(),
		Unknown9:       r.F32LE(),
	}
	for i := range n.Unknown10s {
		n.Unknown10s[i] = r.U8()
	}
	n.Mat0 = readMat4f(r)
	for i := range n.Unknown11s {
		n.Unknown11s[i] = r.U16LE()
	}
	n.Mat1 = readMat4f(r)
	r.Exact()
	return n
}

func writeNodeZ(w *schema.Writer, n NodeZ) {
	w.U32LE(n.ParentCRC32)
	w.U32LE(n.SomeNodeCRC320)
	w.U32LE(n.SomeNodeCRC321)
	w.U32LE(n.SomeNodeCRC322)
	w.U32LE(n.SomeCRC320)
	w.U32LE(n.SomeCRC321)
	w.U32LE(n.Unknown6)
	w.U32LE(n.Unknown7)
	w.U32LE(n.Unknown8)
	w.F32LE(n.Unknown9)
	for _, b := range n.Unknown10s {
		w.U8(b)
	}
	writeMat4f(w, n.Mat0)
	for _, v := range n.Unknown11s {
		w.U16LE(v)
	}
	writeMat4f(w, n.Mat1)
}

type NodeObject struct {
	ResourceObject ResourceObjectZ `json:"resource_object"`
	Node           NodeZ           `json:"node"`
}

func (o NodeObject) HardLinks() []uint32 { return nil }
func (o NodeObject) SoftLinks() []uint32 { return o.ResourceObject.CRC32s }

type NodeObjectAlt struct {
	ResourceObject ResourceObjectZ `json:"resource_object"`
	Node           []byte          `json:"node"`
}

func (o NodeObjectAlt) HardLinks() []uint32 { return nil }
func (o NodeObjectAlt) SoftLinks() []uint32 { return o.ResourceObject.CRC32s }

func UnpackNodeZ(_ *ParseContext, header, body []byte) (any, error) {
	resourceObject := ReadResourceObjectZ(schema.NewReader(header))

	r := schema.NewReader(body)
	node := readNodeZ(r)
	if r.Err() == nil {
		return NodeObject{ResourceObject: resourceObject, Node: node}, nil
	}
	return NodeObjectAlt{ResourceObject: resourceObject, Node: append([]byte(nil), body...)}, nil
}

func PackNodeZ(_ *ParseContext, raw json.RawMessage) ([]byte, []byte, error) {
	var probe struct {
		Node json.RawMessage `json:"node"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, nil, err
	}

	hw := schema.NewWriter()
	bw := schema.NewWriter()

	if len(probe.Node) > 0 && probe.Node[0] == '"' {
		var obj NodeObjectAlt
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, nil, err
		}
		WriteResourceObjectZ(hw, obj.ResourceObject)
		bw.Raw(obj.Node)
		return hw.Bytes(), bw.Bytes(), nil
	}

	var obj NodeObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, nil, err
	}
	WriteResourceObjectZ(hw, obj.ResourceObject)
	writeNodeZ(bw, obj.Node)
	return hw.Bytes(), bw.Bytes(), nil
}
