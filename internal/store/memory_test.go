package store

import (
	"testing"
)

// TestMemoryStore runs all store tests against the in-memory implementation
func TestMemoryStore(t *testing.T) {
	RunStoreTests(t,
		func(t *testing.T) Store { return NewMemoryStore() },
		func(t *testing.T) {},
	)
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name          string
		n, limit      int
		offset        uint64
		expectedStart int
		expectedEnd   int
	}{
		{name: "no limit", n: 5, limit: 0, offset: 0, expectedStart: 0, expectedEnd: 5},
		{name: "first page", n: 5, limit: 2, offset: 0, expectedStart: 0, expectedEnd: 2},
		{name: "last partial page", n: 5, limit: 2, offset: 4, expectedStart: 4, expectedEnd: 5},
		{name: "offset past end", n: 5, limit: 2, offset: 10, expectedStart: 5, expectedEnd: 5},
		{name: "empty", n: 0, limit: 2, offset: 0, expectedStart: 0, expectedEnd: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := paginate(tt.n, tt.limit, tt.offset)
			if start != tt.expectedStart || end != tt.expectedEnd {
				t.Errorf("paginate(%d, %d, %d) = (%d, %d), want (%d, %d)", tt.n, tt.limit, tt.offset, start, end, tt.expectedStart, tt.expectedEnd)
			}
		})
	}
}
