package fuelfmt

import (
	"encoding/json"

	"github.com/widberg/godpc/internal/schema"
)

// SoundZHeader carries a friendly-name crc32 plus optional PCM framing
// fields gated on sample_rate being nonzero — and a further zero field
// gated on exactly two trailing bytes remaining. Grounded on
// fuel_fmt/sound.rs's SoundZHeader.
type SoundZHeader struct {
	FriendlyNameCRC32 uint32  `json:"friendly_name_crc32"`
	SampleRate        uint32  `json:"sample_rate,omitempty"`
	DataSize          *uint32 `json:"data_size,omitempty"`
	SoundType         *uint16 `json:"sound_type,omitempty"`
	Zero              *uint16 `json:"zero,omitempty"`
}

type SoundObject struct {
	SoundHeader SoundZHeader `json:"sound_header"`
}

// Sound bodies are raw little-endian i16 PCM samples; the original emits a
// WAV file via hound. This codec keeps the samples as an opaque byte blob
// (the PCM payload round-trips unchanged regardless of container framing)
// rather than depending on a WAV-writing library, since spec.md's Non-goals
// exclude building an audio-container encoder.
func UnpackSoundZ(_ *ParseContext, header, body []byte) (any, error) {
	r := schema.NewReader(header)
	h := SoundZHeader{FriendlyNameCRC32: r.U32LE()}
	if r.Remaining() >= 4 {
		h.SampleRate = r.U32LE()
	}
	if h.SampleRate != 0 {
		if r.Remaining() >= 4 {
			v := r.U32LE()
			h.DataSize = &v
		}
		if r.Remaining() >= 2 {
			v := r.U16LE()
			h.SoundType = &v
		}
		if r.Remaining() == 2 {
			v := r.U16LE()
			h.Zero = &v
		}
	}
	r.Exact()
	if r.Err() != nil {
		return nil, r.Err()
	}
	return struct {
		SoundObject
		PCM []byte `json:"pcm"`
	}{SoundObject{h}, append([]byte(nil), body...)}, nil
}

func PackSoundZ(_ *ParseContext, raw json.RawMessage) ([]byte, []byte, error) {
	var obj struct {
		SoundHeader SoundZHeader `json:"sound_header"`
		PCM         []byte       `json:"pcm"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, nil, err
	}
	w := schema.NewWriter()
	w.U32LE(obj.SoundHeader.FriendlyNameCRC32)
	if obj.SoundHeader.SampleRate != 0 || obj.SoundHeader.DataSize != nil || obj.SoundHeader.SoundType != nil {
		w.U32LE(obj.SoundHeader.SampleRate)
		if obj.SoundHeader.DataSize != nil {
			w.U32LE(*obj.SoundHeader.DataSize)
		}
		if obj.SoundHeader.SoundType != nil {
			w.U16LE(*obj.SoundHeader.SoundType)
		}
		if obj.SoundHeader.Zero != nil {
			w.U16LE(*obj.SoundHeader.Zero)
		}
	}
	return w.Bytes(), obj.PCM, nil
}
