package workload

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/kerntune/internal/errors"
)

// fileSalt is the on-disk form of a Salt. Value is hex encoded.
type fileSalt struct {
	ID   string `yaml:"id"`
	Salt string `yaml:"salt"`
	Cost int    `yaml:"cost"`
}

// file is the on-disk workload document.
//
//	test:
//	  - {id: t0, salt: "00ff...", cost: 16}
//	real:
//	  - {id: r0, salt: "a1b2...", cost: 64}
type file struct {
	Test []fileSalt `yaml:"test"`
	Real []fileSalt `yaml:"real"`
}

// Load reads a YAML workload file. The test collection is required; the
// real collection is optional and, when present, preferred for tuning.
func Load(path string) (*DB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.WrapError(err, "reading workload %s", path)
	}
	return Parse(filepath.Base(path), data)
}

// Parse decodes a YAML workload document. name labels the test collection.
func Parse(name string, data []byte) (*DB, error) {
	var doc file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, apperrors.NewConfigError("invalid workload %s: %v", name, err)
	}
	if len(doc.Test) == 0 {
		return nil, apperrors.NewConfigError("workload %s: test collection is empty", name)
	}

	test, err := convert(name, doc.Test)
	if err != nil {
		return nil, err
	}
	db := New(name, test)
	if len(doc.Real) > 0 {
		realSalts, err := convert(name, doc.Real)
		if err != nil {
			return nil, err
		}
		db.WithReal(New("real", realSalts))
	}
	return db, nil
}

func convert(name string, in []fileSalt) ([]Salt, error) {
	out := make([]Salt, len(in))
	for i, fs := range in {
		value, err := hex.DecodeString(fs.Salt)
		if err != nil {
			return nil, apperrors.NewConfigError("workload %s: salt %d (%s): %v", name, i, fs.ID, err)
		}
		if fs.Cost < 1 {
			return nil, apperrors.NewConfigError("workload %s: salt %d (%s): cost must be positive", name, i, fs.ID)
		}
		id := fs.ID
		if id == "" {
			id = hex.EncodeToString(value[:min(4, len(value))])
		}
		out[i] = Salt{ID: id, Value: value, Cost: fs.Cost}
	}
	return out, nil
}
