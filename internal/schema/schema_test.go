package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPascalArrayRoundTrip(t *testing.T) {
	want := []uint32{1, 2, 3, 4}

	w := NewWriter()
	WritePascalArray(w, true, want, func(w *Writer, v uint32) { w.U32LE(v) })

	r := NewReader(w.Bytes())
	got := PascalArray(r, true, func(r *Reader) uint32 { return r.U32LE() })
	if r.Err() != nil {
		t.Fatalf("unexpected error: %v", r.Err())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFixedVecRoundTrip(t *testing.T) {
	want := [3]uint16{10, 20, 30}

	w := NewWriter()
	WriteFixedVec(w, want[:], func(w *Writer, v uint16) { w.U16BE(v) })

	r := NewReader(w.Bytes())
	got := FixedVec(r, 3, func(r *Reader) uint16 { return r.U16BE() })
	if r.Err() != nil {
		t.Fatalf("unexpected error: %v", r.Err())
	}
	if diff := cmp.Diff(want[:], got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExactRejectsTrailingBytes(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	_ = r.U16LE()
	r.Exact()
	if r.Err() == nil {
		t.Fatal("expected error for trailing bytes")
	}
}

func TestExactAcceptsFullConsumption(t *testing.T) {
	r := NewReader([]byte{1, 2})
	_ = r.U16LE()
	r.Exact()
	if r.Err() != nil {
		t.Fatalf("unexpected error: %v", r.Err())
	}
}

func TestAlignRoundTrip(t *testing.T) {
	w := NewWriter()
	w.U8(1)
	w.Align(4)
	if w.Len() != 4 {
		t.Fatalf("expected length 4 after align, got %d", w.Len())
	}

	r := NewReader(w.Bytes())
	_ = r.U8()
	r.Align(4)
	r.Exact()
	if r.Err() != nil {
		t.Fatalf("unexpected error: %v", r.Err())
	}
}

func TestShortReadFails(t *testing.T) {
	r := NewReader([]byte{1, 2})
	_ = r.U32LE()
	if r.Err() == nil {
		t.Fatal("expected short read error")
	}
}
