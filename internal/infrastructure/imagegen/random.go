package imagegen

import (
	"math/rand/v2"
	"sync"
)

// RandomSource supplies the numeric suffix of stock photo fallback URLs.
type RandomSource interface {
	IntN(n int) int
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandomSource returns a seeded source safe for concurrent use.
func NewRandomSource(seed int64) RandomSource {
	return &lockedSource{r: rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))}
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}
