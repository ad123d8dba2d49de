// Package rng provides the reseedable pseudo-random stream used for field placement.
//
// Every placement decision reseeds the stream from a value derived from the
// distance traveled, so the same distance always yields the same field.
package rng

import "math/rand/v2"

// seedSalt is the second PCG state word. Only the first word varies with the seed.
const seedSalt = 0x9e3779b97f4a7c15

// Stream is a deterministic random stream. Not safe for concurrent use.
type Stream struct {
	src *rand.PCG
	r   *rand.Rand
}

// New creates a stream seeded with seed.
func New(seed uint64) *Stream {
	src := rand.NewPCG(seed, seedSalt)
	return &Stream{
		src: src,
		r:   rand.New(src),
	}
}

// Seed resets the stream to the state derived from seed.
// Draws made after Seed depend only on seed and the number of prior draws.
func (s *Stream) Seed(seed uint64) {
	s.src.Seed(seed, seedSalt)
}

// Float32 returns a value in [0, 1).
func (s *Stream) Float32() float32 {
	return s.r.Float32()
}

// Uint32Range returns a value in [lo, hi). Returns lo when the range is empty.
func (s *Stream) Uint32Range(lo, hi uint32) uint32 {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Uint32N(hi-lo)
}

// Int32Range returns a value in [lo, hi). Returns lo when the range is empty.
func (s *Stream) Int32Range(lo, hi int32) int32 {
	if hi <= lo {
		return lo
	}
	return lo + int32(s.r.Uint32N(uint32(int64(hi)-int64(lo))))
}

// Float32Range returns a value in [lo, hi).
func (s *Stream) Float32Range(lo, hi float32) float32 {
	return lo + s.r.Float32()*(hi-lo)
}
