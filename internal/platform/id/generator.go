package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator mints opaque entity ids. Implementations must be safe for
// concurrent use.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator produces 32-character hex ids from 16 random bytes.
type RandomGenerator struct{}

var _ Generator = (*RandomGenerator)(nil)

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
