package kernel

import (
	"errors"
	"fmt"

	"github.com/agbru/kerntune/internal/parallel"
	"github.com/agbru/kerntune/internal/workload"
)

// DigestSize is the output size of every kernel.
const DigestSize = 32

// maxSlots caps the buffers a kernel will allocate.
const maxSlots = 1 << 24

var (
	// ErrNotReady is returned by ComputeBulk before Setup or after Teardown.
	ErrNotReady = errors.New("kernel buffers not allocated")
	// ErrNoSalt is returned by ComputeBulk when no salt has been bound.
	ErrNoSalt = errors.New("no salt bound")
)

// hashFunc hashes one item into out using the bound salt.
type hashFunc func(out *[DigestSize]byte, item []byte)

// base holds the batch bounds and buffers shared by every kernel.
type base struct {
	label    string
	minBatch int
	maxBatch int
	workers  int

	inputs  [][]byte
	outputs [][DigestSize]byte
	loaded  int
	salt    workload.Salt
	bound   bool
}

func newBase(label string, workers int) base {
	if workers < 1 {
		workers = 1
	}
	return base{label: label, minBatch: 1, maxBatch: 1, workers: workers}
}

func (b *base) Label() string { return b.label }
func (b *base) MinBatch() int { return b.minBatch }
func (b *base) MaxBatch() int { return b.maxBatch }

func (b *base) SetBatchBounds(minBatch, maxBatch int) {
	b.minBatch, b.maxBatch = minBatch, maxBatch
}

// Setup allocates input and output slots for MaxBatch items.
func (b *base) Setup() error {
	if b.maxBatch < 1 || b.maxBatch > maxSlots {
		return fmt.Errorf("batch size %d outside [1, %d]", b.maxBatch, maxSlots)
	}
	b.inputs = make([][]byte, b.maxBatch)
	b.outputs = make([][DigestSize]byte, b.maxBatch)
	b.loaded = 0
	return nil
}

// Teardown drops all buffers. It is a no-op when nothing is allocated.
func (b *base) Teardown() {
	b.inputs = nil
	b.outputs = nil
	b.loaded = 0
}

// ClearInputs forgets the loaded items but keeps the slots.
func (b *base) ClearInputs() {
	for i := 0; i < b.loaded; i++ {
		b.inputs[i] = b.inputs[i][:0]
	}
	b.loaded = 0
}

// AddInput copies item into slot index. Items beyond the allocated slots are
// dropped.
func (b *base) AddInput(item []byte, index int) {
	if index < 0 || index >= len(b.inputs) {
		return
	}
	b.inputs[index] = append(b.inputs[index][:0], item...)
	if index >= b.loaded {
		b.loaded = index + 1
	}
}

// BindContext binds the salt for subsequent computes.
func (b *base) BindContext(salt workload.Salt) {
	b.salt = salt
	b.bound = true
}

// Digest returns the last output for slot index.
func (b *base) Digest(index int) ([DigestSize]byte, bool) {
	if index < 0 || index >= b.loaded {
		return [DigestSize]byte{}, false
	}
	return b.outputs[index], true
}

// computeBulk runs hash over min(count, loaded) items split across workers.
// newHash is called once per worker chunk.
func (b *base) computeBulk(count int, newHash func() (hashFunc, error)) (int, error) {
	if b.inputs == nil {
		return 0, ErrNotReady
	}
	if !b.bound {
		return 0, ErrNoSalt
	}
	n := count
	if n > b.loaded {
		n = b.loaded
	}
	if n <= 0 {
		return 0, nil
	}
	err := parallel.ForChunks(n, b.workers, func(lo, hi int) error {
		hash, err := newHash()
		if err != nil {
			return err
		}
		for i := lo; i < hi; i++ {
			hash(&b.outputs[i], b.inputs[i])
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// rounds returns how many times an item is hashed for the bound salt.
func (b *base) rounds() int {
	if b.salt.Cost < 1 {
		return 1
	}
	return b.salt.Cost
}
