package lz

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestDecompressLiteralRun(t *testing.T) {
	// A single flags word of zero means 30 literal decisions, but the
	// decode loop stops as soon as dst is full, so a short dst works with a
	// flags word and exactly len(dst) literal bytes.
	want := []byte("hello")
	var src []byte
	src = append(src, 0x00, 0x00, 0x00, 0x00) // flags: all literals, length selector 0
	src = append(src, want...)

	got := make([]byte, len(want))
	if err := Decompress(src, got, false); err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecompressAllLiteralFlagsWord(t *testing.T) {
	// Scenario 4 from the spec's seed corpus: a compressed object with
	// compressed_size=24, decompressed_size=16 whose body is a single
	// flags word of all-literal decisions.
	want := bytes.Repeat([]byte{0}, 16)
	var src []byte
	src = append(src, 0x00, 0x00, 0x00, 0x18)
	src = append(src, want...)

	got := make([]byte, 16)
	if err := Decompress(src, got, false); err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestRoundTripFast(t *testing.T) {
	cases := [][]byte{
		[]byte("the quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte("abcabcabcabc"), 100),
		make([]byte, 0),
	}
	for _, want := range cases {
		compressed := CompressFast(want)
		got := make([]byte, len(want))
		if err := Decompress(compressed, got, false); err != nil {
			t.Fatalf("Decompress(CompressFast(...)): %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("round trip mismatch: got %x want %x", got, want)
		}
	}
}

func TestRoundTripOptimized(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	buf := make([]byte, 1<<16)
	// Biased toward a small alphabet so there are plenty of matches to find.
	for i := range buf {
		buf[i] = byte(r.Intn(6))
	}

	compressed := CompressOptimized(buf)
	got := make([]byte, len(buf))
	if err := Decompress(compressed, got, false); err != nil {
		t.Fatalf("Decompress(CompressOptimized(...)): %v", err)
	}
	if !bytes.Equal(got, buf) {
		t.Fatal("round trip mismatch for optimized compressor")
	}
	if len(compressed) >= len(buf) {
		t.Fatalf("optimized compressor did not shrink a repetitive buffer: %d >= %d", len(compressed), len(buf))
	}
}

func TestDecompressErrorsOnTruncatedFlags(t *testing.T) {
	got := make([]byte, 4)
	err := Decompress([]byte{0x00, 0x00}, got, false)
	if err == nil {
		t.Fatal("expected error on truncated flags word")
	}
}

func TestDecompressErrorsOnBackReferenceBeforeStart(t *testing.T) {
	// flags with the first decision bit set (back-reference) but no output
	// has been produced yet, so any distance underflows.
	src := []byte{0x80, 0x00, 0x00, 0x00, 0x00, 0x00}
	got := make([]byte, 4)
	err := Decompress(src, got, false)
	if err == nil {
		t.Fatal("expected error on back-reference before output start")
	}
}
