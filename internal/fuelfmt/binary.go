package fuelfmt

import "encoding/json"

// BinaryZObject is the trivial class used by the spec's first seed-corpus
// scenario: no header beyond the generic object header, body is an opaque
// byte blob copied verbatim.
type BinaryZObject struct {
	Body []byte `json:"body"`
}

func UnpackBinaryZ(_ *ParseContext, _, body []byte) (any, error) {
	return BinaryZObject{Body: append([]byte(nil), body...)}, nil
}

func PackBinaryZ(_ *ParseContext, raw json.RawMessage) ([]byte, []byte, error) {
	var obj BinaryZObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, nil, err
	}
	return nil, obj.Body, nil
}
