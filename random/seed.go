package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// NewSeed reads a 64-bit seed from the entropy source r.
func NewSeed(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// NewFromEntropy returns a Rand seeded from r, or from crypto/rand when r is
// nil. It is meant for convenience call sites that do not need to replay a
// sequence.
func NewFromEntropy(r io.Reader) (*Rand, error) {
	if r == nil {
		r = crand.Reader
	}
	seed, err := NewSeed(r)
	if err != nil {
		return nil, err
	}
	return New(seed)
}
