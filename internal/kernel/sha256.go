package kernel

import (
	"crypto/sha256"
	"hash"
)

// SHA256 hashes salt||key with SHA-256, then rehashes the digest Cost-1 times.
type SHA256 struct {
	base
}

// NewSHA256 returns a SHA-256 kernel computing with the given worker count.
func NewSHA256(workers int) *SHA256 {
	return &SHA256{base: newBase("sha256", workers)}
}

// ComputeBulk hashes up to count loaded items.
func (k *SHA256) ComputeBulk(count int) (int, error) {
	salt := k.salt.Value
	rounds := k.rounds()
	return k.computeBulk(count, func() (hashFunc, error) {
		h := sha256.New()
		return func(out *[DigestSize]byte, item []byte) {
			sha256Rounds(h, out, salt, item, rounds)
		}, nil
	})
}

func sha256Rounds(h hash.Hash, out *[DigestSize]byte, salt, item []byte, rounds int) {
	h.Reset()
	h.Write(salt)
	h.Write(item)
	h.Sum(out[:0])
	for r := 1; r < rounds; r++ {
		h.Reset()
		h.Write(out[:])
		h.Sum(out[:0])
	}
}
