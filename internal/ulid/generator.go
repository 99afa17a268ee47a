// Package ulid generates the identifiers attached to document changes.
package ulid

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     io.Reader
	entropyOnce sync.Once

	mu       sync.RWMutex
	generate = defaultGenerate
)

func defaultEntropy() io.Reader {
	entropyOnce.Do(func() {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rng, 0),
		}
	})
	return entropy
}

func defaultGenerate() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), defaultEntropy()).String()
}

// New returns a new identifier. Identifiers created by one process
// sort in creation order.
func New() string {
	mu.RLock()
	defer mu.RUnlock()
	return generate()
}

// Valid reports whether id is a canonical ULID string.
func Valid(id string) bool {
	parsed, err := ulid.ParseStrict(id)
	return err == nil && parsed.String() == id
}

// Mock makes New return value until the returned function is called.
func Mock(value string) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	generate = func() string { return value }
	return func() {
		mu.Lock()
		defer mu.Unlock()
		generate = defaultGenerate
	}
}
