// Package workload models the representative input a kernel is tuned against:
// a collection of salts, each carrying a relative cost, optionally backed by
// a "real" collection that takes precedence over the built-in test one.
package workload

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Salt is one workload sample: the context bound into a kernel before
// computing (e.g. a cryptographic salt) and its relative per-item cost.
type Salt struct {
	// ID identifies the salt in reports.
	ID string
	// Value is the raw salt bytes handed to the kernel.
	Value []byte
	// Cost is the relative per-item cost, e.g. an iteration count.
	Cost int
}

// DB is an ordered collection of salts.
type DB struct {
	// Name labels the collection ("test", "real", or a file name).
	Name string
	// Salts are kept in load order; sample selection scans them in this order.
	Salts []Salt
	// MaxCost is the largest Cost in Salts.
	MaxCost int
	// Real, when set and non-empty, is preferred over this collection.
	Real *DB
}

// New builds a collection and computes its MaxCost.
func New(name string, salts []Salt) *DB {
	db := &DB{Name: name, Salts: salts}
	for _, s := range salts {
		if s.Cost > db.MaxCost {
			db.MaxCost = s.Cost
		}
	}
	return db
}

// WithReal attaches a real collection and returns db for chaining.
func (db *DB) WithReal(r *DB) *DB {
	db.Real = r
	return db
}

// TuneSource returns the collection tuning should draw from and whether it
// is the real one.
func (db *DB) TuneSource() (*DB, bool) {
	if db.Real != nil && len(db.Real.Salts) > 0 {
		return db.Real, true
	}
	return db, false
}

// Len returns the number of salts in the collection itself.
func (db *DB) Len() int {
	if db == nil {
		return 0
	}
	return len(db.Salts)
}

// Synthetic builds a deterministic collection of n salts. Salt bytes are
// derived from the collection name and index so repeated runs see the same
// input. Costs cycle through baseCost, 2*baseCost, 3*baseCost, 4*baseCost.
func Synthetic(name string, n, baseCost int) *DB {
	if baseCost < 1 {
		baseCost = 1
	}
	salts := make([]Salt, n)
	var idx [8]byte
	for i := range salts {
		binary.LittleEndian.PutUint64(idx[:], uint64(i))
		sum := sha256.Sum256(append([]byte(name), idx[:]...))
		salts[i] = Salt{
			ID:    fmt.Sprintf("%s-%03d", name, i),
			Value: sum[:],
			Cost:  baseCost * (1 + i%4),
		}
	}
	return New(name, salts)
}
