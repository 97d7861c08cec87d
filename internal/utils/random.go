package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// RandomSource yields uniform floats in [0, 1).
// Implementations must be safe for concurrent use.
type RandomSource interface {
	Float64() float64
}

type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return rand.Float64() //nolint:gosec // fallback only when the OS source fails
	}
	// 53 random bits, the float64 mantissa width
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// NewCryptoSource returns the default source backed by crypto/rand
func NewCryptoSource() RandomSource { return cryptoSource{} }

type seededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// NewSeededSource returns a reproducible PCG source, for replays and simulations
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))} //nolint:gosec // reproducibility is the point
}

// RandomIndex returns a uniform index in [0, n). n must be positive.
func RandomIndex(src RandomSource, n int) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		// Guards a source that returns exactly 1.0
		i = n - 1
	}
	return i
}

// Shuffle permutes n elements in place with Fisher-Yates, walking from the
// last index down and swapping with a uniform index in [0, i]
func Shuffle(src RandomSource, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, RandomIndex(src, i+1))
	}
}
