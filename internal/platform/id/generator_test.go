package id

import (
	"bytes"
	"testing"
)

func TestRandomGeneratorHexEncodes(t *testing.T) {
	t.Parallel()

	gen := &RandomGenerator{source: bytes.NewReader(make([]byte, 16))}

	got, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID: %v", err)
	}
	if want := "00000000000000000000000000000000"; got != want {
		t.Fatalf("NewID = %q, want %q", got, want)
	}
}

func TestRandomGeneratorExhaustedSource(t *testing.T) {
	t.Parallel()

	gen := &RandomGenerator{source: bytes.NewReader(nil)}

	if _, err := gen.NewID(); err == nil {
		t.Fatal("expected error from exhausted source")
	}
}
