package fuelfmt

import (
	"encoding/json"

	"github.com/widberg/godpc/internal/schema"
)

// UserDefineZ is a single pascal-prefixed (u32 length, u8 elements) string,
// decoded lossily as UTF-8. Grounded on fuel_fmt/userdefine.rs.
type UserDefineObject struct {
	ResourceObject ResourceObjectZ `json:"resource_object"`
	UserDefine     string          `json:"user_define"`
}

func (o UserDefineObject) HardLinks() []uint32 { return nil }

func (o UserDefineObject) SoftLinks() []uint32 { return o.ResourceObject.CRC32s }

func UnpackUserDefineZ(_ *ParseContext, header, body []byte) (any, error) {
	resourceObject := ReadResourceObjectZ(schema.NewReader(header))

	r := schema.NewReader(body)
	bytes := schema.PascalArray(r, true, func(r *schema.Reader) byte { return r.U8() })
	r.Exact()
	if r.Err() != nil {
		return nil, r.Err()
	}
	return UserDefineObject{ResourceObject: resourceObject, UserDefine: string(bytes)}, nil
}

func PackUserDefineZ(_ *ParseContext, raw json.RawMessage) ([]byte, []byte, error) {
	var obj UserDefineObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, nil, err
	}
	hw := schema.NewWriter()
	WriteResourceObjectZ(hw, obj.ResourceObject)

	bw := schema.NewWriter()
	schema.WritePascalArray(bw, true, []byte(obj.UserDefine), func(w *schema.Writer, b byte) { w.U8(b) })
	return hw.Bytes(), bw.Bytes(), nil
}
