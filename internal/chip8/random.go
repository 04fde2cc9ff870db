package chip8

import "math/rand/v2"

// Random is the source of bytes consumed by the random number instruction.
// Supplying a deterministic implementation makes program runs reproducible.
type Random interface {
	// Byte returns the next random byte.
	Byte() byte
}

// mathRandom is the default randomness source, backed by math/rand.
type mathRandom struct{}

func (mathRandom) Byte() byte {
	return byte(rand.IntN(256))
}
