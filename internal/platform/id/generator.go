package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// Generator produces opaque identifiers for persisted records such as
// roster slots, move grants, and audit entries.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator draws IDs from a cryptographic randomness source and
// renders them as lowercase hex. The source is a field so tests can
// substitute a deterministic reader.
type RandomGenerator struct {
	source io.Reader
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{source: rand.Reader}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := io.ReadFull(g.source, buf); err != nil {
		return "", fmt.Errorf("draw id bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
