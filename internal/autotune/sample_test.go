package autotune

import (
	"errors"
	"testing"

	"github.com/agbru/kerntune/internal/workload"
)

func TestSelectSample(t *testing.T) {
	t.Parallel()
	salts := func(costs ...int) []workload.Salt {
		out := make([]workload.Salt, len(costs))
		for i, c := range costs {
			out[i] = workload.Salt{ID: string(rune('a' + i)), Cost: c}
		}
		return out
	}

	tests := []struct {
		name     string
		db       *workload.DB
		costCap  int
		wantID   string
		wantReal bool
		wantCeil int
	}{
		{
			name:     "first salt at max cost",
			db:       workload.New("test", salts(1, 8, 3, 8)),
			wantID:   "b",
			wantCeil: 8,
		},
		{
			name:     "cap lowers the ceiling",
			db:       workload.New("test", salts(1, 8, 3, 4)),
			costCap:  3,
			wantID:   "b",
			wantCeil: 3,
		},
		{
			name:     "cap above max is ignored",
			db:       workload.New("test", salts(2, 5)),
			costCap:  100,
			wantID:   "b",
			wantCeil: 5,
		},
		{
			name:     "negative cap means none",
			db:       workload.New("test", salts(2, 5, 1)),
			costCap:  -1,
			wantID:   "b",
			wantCeil: 5,
		},
		{
			name:     "single salt",
			db:       workload.New("test", salts(7)),
			costCap:  2,
			wantID:   "a",
			wantCeil: 2,
		},
		{
			name:     "real collection preferred",
			db:       workload.New("test", salts(9)).WithReal(workload.New("real", salts(1, 2))),
			wantID:   "b",
			wantReal: true,
			wantCeil: 2,
		},
		{
			name:     "empty real falls back",
			db:       workload.New("test", salts(1, 4)).WithReal(workload.New("real", nil)),
			wantID:   "b",
			wantCeil: 4,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sel, err := SelectSample(tt.db, tt.costCap)
			if err != nil {
				t.Fatalf("SelectSample: %v", err)
			}
			if sel.Salt.ID != tt.wantID {
				t.Errorf("salt = %q, want %q", sel.Salt.ID, tt.wantID)
			}
			if sel.Real != tt.wantReal {
				t.Errorf("Real = %v, want %v", sel.Real, tt.wantReal)
			}
			if sel.Ceiling != tt.wantCeil {
				t.Errorf("Ceiling = %d, want %d", sel.Ceiling, tt.wantCeil)
			}
		})
	}
}

func TestSelectSampleEmpty(t *testing.T) {
	t.Parallel()
	for _, db := range []*workload.DB{nil, workload.New("empty", nil)} {
		if _, err := SelectSample(db, 0); !errors.Is(err, ErrEmptyWorkload) {
			t.Errorf("SelectSample(%v) err = %v, want ErrEmptyWorkload", db, err)
		}
	}
}
