package balance

import (
	"math/rand"
	"testing"
)

func TestTableSkew(t *testing.T) {
	tests := []struct {
		name     string
		table    TableInfo
		servers  []string
		expected int
	}{
		{
			name:     "Even spread",
			table:    TableInfo{ID: "t", ReplicasByServer: map[string]int{"a": 2, "b": 2, "c": 2}},
			servers:  []string{"a", "b", "c"},
			expected: 0,
		},
		{
			name:     "Server hosting nothing counts as zero",
			table:    TableInfo{ID: "t", ReplicasByServer: map[string]int{"a": 3, "b": 1}},
			servers:  []string{"a", "b", "c"},
			expected: 3,
		},
		{
			name:     "Single server",
			table:    TableInfo{ID: "t", ReplicasByServer: map[string]int{"a": 5}},
			servers:  []string{"a"},
			expected: 0,
		},
		{
			name:     "No servers",
			table:    TableInfo{ID: "t"},
			servers:  nil,
			expected: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := TableSkew(test.table, test.servers); got != test.expected {
				t.Errorf("Expected skew %d, got %d", test.expected, got)
			}
		})
	}
}

func TestTotalSkew(t *testing.T) {
	tests := []struct {
		name     string
		info     ClusterInfo
		expected int
	}{
		{
			name: "Totals summed across tables",
			info: ClusterInfo{
				Servers: []string{"a", "b"},
				Tables: []TableInfo{
					{ID: "t1", ReplicasByServer: map[string]int{"a": 2, "b": 1}},
					{ID: "t2", ReplicasByServer: map[string]int{"a": 3}},
				},
			},
			expected: 4, // a=5, b=1
		},
		{
			name: "Idle server included",
			info: ClusterInfo{
				Servers: []string{"a", "b", "c"},
				Tables: []TableInfo{
					{ID: "t1", ReplicasByServer: map[string]int{"a": 1, "b": 1}},
				},
			},
			expected: 1,
		},
		{
			name:     "Empty cluster",
			info:     ClusterInfo{},
			expected: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := TotalSkew(test.info); got != test.expected {
				t.Errorf("Expected total skew %d, got %d", test.expected, got)
			}
		})
	}
}

func TestIsBalanced(t *testing.T) {
	tests := []struct {
		name     string
		info     ClusterInfo
		expected bool
	}{
		{
			name: "Flat cluster",
			info: ClusterInfo{
				Servers: []string{"a", "b", "c"},
				Tables: []TableInfo{
					{ID: "t1", ReplicasByServer: map[string]int{"a": 1, "b": 1, "c": 1}},
				},
			},
			expected: true,
		},
		{
			name: "Skew of one is still balanced",
			info: ClusterInfo{
				Servers: []string{"a", "b"},
				Tables: []TableInfo{
					{ID: "t1", ReplicasByServer: map[string]int{"a": 2, "b": 1}},
				},
			},
			expected: true,
		},
		{
			name: "Table dimension violated",
			info: ClusterInfo{
				Servers: []string{"a", "b"},
				Tables: []TableInfo{
					{ID: "t1", ReplicasByServer: map[string]int{"a": 3, "b": 1}},
				},
			},
			expected: false,
		},
		{
			name: "Total dimension violated with flat tables",
			info: ClusterInfo{
				Servers: []string{"a", "b"},
				Tables: []TableInfo{
					{ID: "t1", ReplicasByServer: map[string]int{"a": 1}},
					{ID: "t2", ReplicasByServer: map[string]int{"a": 1}},
				},
			},
			expected: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := NewTwoDimensionalGreedy(WithRand(rand.New(rand.NewSource(1))))
			g.Refresh(test.info)
			if got := g.IsBalanced(); got != test.expected {
				t.Errorf("Expected IsBalanced=%v, got %v", test.expected, got)
			}
		})
	}
}

func TestIsBalancedBeforeRefresh(t *testing.T) {
	g := NewTwoDimensionalGreedy()
	if g.IsBalanced() {
		t.Errorf("Expected an algorithm without a model to report unbalanced")
	}
	if moves := g.NextMoves(); moves != nil {
		t.Errorf("Expected no moves without a model, got %v", moves)
	}
}

func TestNextMovesTableDimension(t *testing.T) {
	g := NewTwoDimensionalGreedy(WithRand(rand.New(rand.NewSource(1))))
	g.Refresh(ClusterInfo{
		Servers: []string{"a", "b"},
		Tables: []TableInfo{
			{ID: "t1", ReplicasByServer: map[string]int{"a": 3, "b": 1}},
		},
	})

	moves := g.NextMoves()
	if len(moves) != 1 {
		t.Fatalf("Expected exactly one move, got %v", moves)
	}
	expected := TableReplicaMove{TableID: "t1", From: "a", To: "b"}
	if moves[0] != expected {
		t.Errorf("Expected %v, got %v", expected, moves[0])
	}
}

func TestNextMovesTotalDimension(t *testing.T) {
	// Both tables are flat within skew one, but server a carries two replicas
	// while b carries none. The tie between the equally eligible tables
	// breaks toward the first table ID.
	g := NewTwoDimensionalGreedy(WithRand(rand.New(rand.NewSource(1))))
	g.Refresh(ClusterInfo{
		Servers: []string{"a", "b"},
		Tables: []TableInfo{
			{ID: "t1", ReplicasByServer: map[string]int{"a": 1}},
			{ID: "t2", ReplicasByServer: map[string]int{"a": 1}},
		},
	})

	moves := g.NextMoves()
	if len(moves) != 1 {
		t.Fatalf("Expected exactly one move, got %v", moves)
	}
	expected := TableReplicaMove{TableID: "t1", From: "a", To: "b"}
	if moves[0] != expected {
		t.Errorf("Expected %v, got %v", expected, moves[0])
	}
}

func TestNextMovesPrefersTableDimension(t *testing.T) {
	// t1 has table skew 2 and must be fixed first even though t2 alone would
	// satisfy the total dimension.
	g := NewTwoDimensionalGreedy(WithRand(rand.New(rand.NewSource(1))))
	g.Refresh(ClusterInfo{
		Servers: []string{"a", "b"},
		Tables: []TableInfo{
			{ID: "t1", ReplicasByServer: map[string]int{"a": 2}},
			{ID: "t2", ReplicasByServer: map[string]int{"b": 2, "a": 1}},
		},
	})

	moves := g.NextMoves()
	if len(moves) == 0 {
		t.Fatalf("Expected at least one move")
	}
	expected := TableReplicaMove{TableID: "t1", From: "a", To: "b"}
	if moves[0] != expected {
		t.Errorf("Expected first move %v, got %v", expected, moves[0])
	}
}

func TestNextMovesMoveLimit(t *testing.T) {
	g := NewTwoDimensionalGreedy(
		WithRand(rand.New(rand.NewSource(1))),
		WithMoveLimit(2),
	)
	g.Refresh(ClusterInfo{
		Servers: []string{"a", "b"},
		Tables: []TableInfo{
			{ID: "t1", ReplicasByServer: map[string]int{"a": 8}},
		},
	})

	if moves := g.NextMoves(); len(moves) != 2 {
		t.Errorf("Expected the batch capped at 2 moves, got %d", len(moves))
	}
}

func TestNextMovesLeavesModelUntouched(t *testing.T) {
	info := ClusterInfo{
		Servers: []string{"a", "b"},
		Tables: []TableInfo{
			{ID: "t1", ReplicasByServer: map[string]int{"a": 4}},
		},
	}
	g := NewTwoDimensionalGreedy(WithRand(rand.New(rand.NewSource(1))))
	g.Refresh(info)

	first := g.NextMoves()
	second := g.NextMoves()
	if len(first) != len(second) {
		t.Fatalf("Expected repeated planning to agree, got %v then %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Expected repeated planning to agree at %d: %v vs %v", i, first[i], second[i])
		}
	}
	if info.Tables[0].ReplicasByServer["a"] != 4 {
		t.Errorf("Expected planning to leave the model untouched, got %v", info.Tables[0].ReplicasByServer)
	}
}

func TestNextMovesConvergence(t *testing.T) {
	info := ClusterInfo{
		Servers: []string{"a", "b", "c", "d", "e"},
		Tables: []TableInfo{
			{ID: "t1", ReplicasByServer: map[string]int{"a": 7, "b": 1}},
			{ID: "t2", ReplicasByServer: map[string]int{"a": 3, "c": 6}},
			{ID: "t3", ReplicasByServer: map[string]int{"d": 2, "b": 2, "a": 5}},
		},
	}
	g := NewTwoDimensionalGreedy(WithRand(rand.New(rand.NewSource(42))))
	g.Refresh(info)

	moves := g.NextMoves()
	for _, mv := range moves {
		if mv.From == mv.To {
			t.Fatalf("Move with identical endpoints: %v", mv)
		}
		var table *TableInfo
		for i := range info.Tables {
			if info.Tables[i].ID == mv.TableID {
				table = &info.Tables[i]
			}
		}
		if table == nil {
			t.Fatalf("Move of unknown table: %v", mv)
		}
		if table.ReplicasByServer[mv.From] < 1 {
			t.Fatalf("Move from a server without a replica: %v", mv)
		}
		table.ReplicasByServer[mv.From]--
		table.ReplicasByServer[mv.To]++
	}

	g.Refresh(info)
	if !g.IsBalanced() {
		t.Errorf("Expected the cluster to be balanced after applying the full plan")
	}
	if extra := g.NextMoves(); len(extra) != 0 {
		t.Errorf("Expected no further moves once balanced, got %v", extra)
	}
}

func TestNextMovesDeterministicPerSeed(t *testing.T) {
	build := func() ClusterInfo {
		return ClusterInfo{
			Servers: []string{"a", "b", "c"},
			Tables: []TableInfo{
				{ID: "t1", ReplicasByServer: map[string]int{"a": 4, "b": 4}},
				{ID: "t2", ReplicasByServer: map[string]int{"c": 4, "a": 4}},
			},
		}
	}

	g1 := NewTwoDimensionalGreedy(WithRand(rand.New(rand.NewSource(7))))
	g1.Refresh(build())
	g2 := NewTwoDimensionalGreedy(WithRand(rand.New(rand.NewSource(7))))
	g2.Refresh(build())

	m1, m2 := g1.NextMoves(), g2.NextMoves()
	if len(m1) != len(m2) {
		t.Fatalf("Expected identical plans for identical seeds, got %v and %v", m1, m2)
	}
	for i := range m1 {
		if m1[i] != m2[i] {
			t.Errorf("Plans diverged at move %d: %v vs %v", i, m1[i], m2[i])
		}
	}
}
