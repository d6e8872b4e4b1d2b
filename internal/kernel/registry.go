package kernel

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/kerntune/internal/autotune"
)

// Creator builds a kernel that computes with the given worker count.
type Creator func(workers int) autotune.Kernel

var (
	_ autotune.Kernel = (*SHA256)(nil)
	_ autotune.Kernel = (*BLAKE3)(nil)
)

// Registry is a thread-safe table of kernel constructors.
type Registry struct {
	mu       sync.RWMutex
	creators map[string]Creator
}

// NewRegistry returns a registry with the built-in kernels:
//   - "sha256": salted SHA-256 (crypto/sha256)
//   - "blake3": keyed BLAKE3 (github.com/zeebo/blake3)
func NewRegistry() *Registry {
	r := &Registry{creators: make(map[string]Creator)}
	r.Register("sha256", func(workers int) autotune.Kernel { return NewSHA256(workers) })
	r.Register("blake3", func(workers int) autotune.Kernel { return NewBLAKE3(workers) })
	return r
}

// Register adds or replaces a kernel constructor.
func (r *Registry) Register(name string, c Creator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creators[name] = c
}

// Create builds a fresh kernel by name.
func (r *Registry) Create(name string, workers int) (autotune.Kernel, error) {
	r.mu.RLock()
	c, ok := r.creators[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown kernel: %s", name)
	}
	return c(workers), nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.creators[name]
	return ok
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.creators))
	for name := range r.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
