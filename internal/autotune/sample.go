package autotune

import (
	"errors"

	"github.com/agbru/kerntune/internal/workload"
)

// ErrEmptyWorkload is returned when there is no salt to tune against.
var ErrEmptyWorkload = errors.New("workload has no salts")

// Selection is the salt chosen for a search and where it came from.
type Selection struct {
	Salt workload.Salt
	// Source is the name of the collection the salt was drawn from.
	Source string
	// Real reports whether Source is the real collection.
	Real bool
	// Ceiling is min(collection max cost, cost cap).
	Ceiling int
}

// SelectSample picks the salt every trial of a search is run against: the
// first salt, in collection order, whose cost reaches the ceiling
// min(collection max cost, costCap), or the last salt if none does. The real
// collection is preferred over the test one when it has salts. costCap <= 0
// means no cap.
func SelectSample(db *workload.DB, costCap int) (Selection, error) {
	if db == nil {
		return Selection{}, ErrEmptyWorkload
	}
	src, isReal := db.TuneSource()
	if len(src.Salts) == 0 {
		return Selection{}, ErrEmptyWorkload
	}

	ceiling := src.MaxCost
	if costCap > 0 && costCap < ceiling {
		ceiling = costCap
	}

	i := 0
	for i < len(src.Salts)-1 && src.Salts[i].Cost < ceiling {
		i++
	}
	return Selection{Salt: src.Salts[i], Source: src.Name, Real: isReal, Ceiling: ceiling}, nil
}
