package rebalance

import (
	"testing"

	"github.com/dailai/kudu/pkg/cluster"
)

func TestFilterMoves(t *testing.T) {
	mv := func(tablet, from, to string) ReplicaMove {
		return ReplicaMove{TabletID: tablet, From: from, To: to, Check: cluster.NoVersionCheck{}}
	}

	tests := []struct {
		name       string
		inProgress MovesInProgress
		moves      []ReplicaMove
		expected   []ReplicaMove
	}{
		{
			name:     "Nothing to filter",
			moves:    []ReplicaMove{mv("x", "a", "b"), mv("y", "b", "c")},
			expected: []ReplicaMove{mv("x", "a", "b"), mv("y", "b", "c")},
		},
		{
			name:       "In-flight collision dropped",
			inProgress: MovesInProgress{"x": mv("x", "a", "b")},
			moves:      []ReplicaMove{mv("x", "c", "d"), mv("y", "b", "c")},
			expected:   []ReplicaMove{mv("y", "b", "c")},
		},
		{
			name:     "Duplicate tablet keeps the first",
			moves:    []ReplicaMove{mv("x", "a", "b"), mv("x", "b", "c"), mv("y", "a", "c")},
			expected: []ReplicaMove{mv("x", "a", "b"), mv("y", "a", "c")},
		},
		{
			name:       "Everything filtered",
			inProgress: MovesInProgress{"x": mv("x", "a", "b")},
			moves:      []ReplicaMove{mv("x", "c", "d")},
			expected:   []ReplicaMove{},
		},
		{
			name:     "Empty batch",
			moves:    nil,
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := FilterMoves(test.inProgress, test.moves)
			if len(got) != len(test.expected) {
				t.Fatalf("Expected %v, got %v", test.expected, got)
			}
			for i := range got {
				if got[i] != test.expected[i] {
					t.Errorf("Expected move %d to be %v, got %v", i, test.expected[i], got[i])
				}
			}

			// Filtering an already filtered batch must change nothing.
			again := FilterMoves(test.inProgress, got)
			if len(again) != len(got) {
				t.Errorf("Expected filtering to be idempotent, got %v then %v", got, again)
			}
		})
	}
}
