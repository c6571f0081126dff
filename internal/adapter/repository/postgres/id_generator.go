package postgres

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator issues lexicographically sortable operation ids. IDs
// generated within the same millisecond stay ordered.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewULIDGenerator seeds a generator with monotonic entropy.
func NewULIDGenerator() *ULIDGenerator {
	source := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &ULIDGenerator{
		entropy: ulid.Monotonic(source, 0),
	}
}

// Generate returns a fresh ULID string.
func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}
