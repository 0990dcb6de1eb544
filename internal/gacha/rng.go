package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	legacyrand "math/rand"
	"math/rand/v2"
)

// RandomSource is the single random stream threaded through a draw.
// Uint64 makes it usable as a math/rand/v2 Source (gonum distributions).
type RandomSource interface {
	Float64() float64 // [0, 1)
	Uint64() uint64
}

// crypto random : default generation method
type cryptoRNG struct{}

func (cryptoRNG) Uint64() uint64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// back to math/rand/v2
		return rand.Uint64()
	}
	return binary.BigEndian.Uint64(buf[:])
}

func (c cryptoRNG) Float64() float64 {
	// 53 bits => [0, 1)
	u := c.Uint64() >> 11
	return float64(u) / (1 << 53)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG (tests, simulations, -seed)
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }
func (s *seededRNG) Uint64() uint64   { return s.r.Uint64() }

// legacySource exposes a RandomSource as a math/rand Source for libraries
// that still take a *math/rand.Rand.
type legacySource struct{ src RandomSource }

func (l legacySource) Int63() int64   { return int64(l.src.Uint64() >> 1) }
func (l legacySource) Uint64() uint64 { return l.src.Uint64() }
func (legacySource) Seed(int64)       {}

func legacyRand(src RandomSource) *legacyrand.Rand {
	return legacyrand.New(legacySource{src: src})
}

