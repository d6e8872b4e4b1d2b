package kernel

import (
	"github.com/zeebo/blake3"
)

// BLAKE3 hashes each key with BLAKE3 keyed by a digest of the salt, then
// rehashes the digest Cost-1 times under the same key.
type BLAKE3 struct {
	base
}

// NewBLAKE3 returns a keyed BLAKE3 kernel computing with the given worker count.
func NewBLAKE3(workers int) *BLAKE3 {
	return &BLAKE3{base: newBase("blake3", workers)}
}

// ComputeBulk hashes up to count loaded items.
func (k *BLAKE3) ComputeBulk(count int) (int, error) {
	key := blake3.Sum256(k.salt.Value)
	rounds := k.rounds()
	return k.computeBulk(count, func() (hashFunc, error) {
		h, err := blake3.NewKeyed(key[:])
		if err != nil {
			return nil, err
		}
		return func(out *[DigestSize]byte, item []byte) {
			h.Reset()
			_, _ = h.Write(item)
			h.Sum(out[:0])
			for r := 1; r < rounds; r++ {
				h.Reset()
				_, _ = h.Write(out[:])
				h.Sum(out[:0])
			}
		}, nil
	})
}
