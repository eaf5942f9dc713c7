package rebalance

import (
	"math/rand"
	"testing"

	"github.com/dailai/kudu/pkg/balance"
	"github.com/dailai/kudu/pkg/cluster"
	"github.com/dailai/kudu/pkg/utils"
)

// testRebalancer builds a Rebalancer with a seeded random source and silent
// logging, filling in a dummy endpoint when the config has none.
func testRebalancer(t *testing.T, cfg Config, connector cluster.Connector) *Rebalancer {
	t.Helper()
	if cfg.MasterAddresses == nil {
		cfg.MasterAddresses = []string{"master-1:7051"}
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	if cfg.Logger == nil {
		cfg.Logger = utils.DiscardLogger()
	}
	reb, err := New(cfg, connector)
	if err != nil {
		t.Fatalf("Failed to build rebalancer: %v", err)
	}
	return reb
}

// scanSnapshot is a small fixed snapshot: three servers, a two-replica table
// with two tablets, and a replication-factor-one table with one tablet.
func scanSnapshot() *cluster.RawInfo {
	return &cluster.RawInfo{
		Servers: []cluster.ServerSummary{
			{ID: "a", Address: "a:7050", Health: cluster.ServerHealthy},
			{ID: "b", Address: "b:7050", Health: cluster.ServerHealthy},
			{ID: "c", Address: "c:7050", Health: cluster.ServerHealthy},
		},
		Tables: []cluster.TableSummary{
			{ID: "t1", Name: "orders", ReplicationFactor: 2},
			{ID: "t2", Name: "logs", ReplicationFactor: 1},
		},
		Tablets: []cluster.TabletSummary{
			{
				ID: "x", TableID: "t1", TableName: "orders", State: cluster.TabletHealthy,
				Replicas: []cluster.ReplicaSummary{
					{ServerID: "a", Role: cluster.RoleLeader},
					{ServerID: "b", Role: cluster.RoleFollower},
				},
				ConfigIndex: 7,
			},
			{
				ID: "y", TableID: "t1", TableName: "orders", State: cluster.TabletHealthy,
				Replicas: []cluster.ReplicaSummary{
					{ServerID: "a", Role: cluster.RoleLeader},
					{ServerID: "c", Role: cluster.RoleFollower},
				},
				ConfigIndex: cluster.UnknownConfigIndex,
			},
			{
				ID: "z", TableID: "t2", TableName: "logs", State: cluster.TabletHealthy,
				Replicas: []cluster.ReplicaSummary{
					{ServerID: "b", Role: cluster.RoleLeader},
				},
				ConfigIndex: 3,
			},
		},
	}
}

func tableByID(info balance.ClusterInfo, id string) (balance.TableInfo, bool) {
	for _, t := range info.Tables {
		if t.ID == id {
			return t, true
		}
	}
	return balance.TableInfo{}, false
}

func TestBuildClusterInfo(t *testing.T) {
	reb := testRebalancer(t, Config{}, nil)
	info, err := reb.BuildClusterInfo(scanSnapshot(), nil)
	if err != nil {
		t.Fatalf("Failed to build cluster info: %v", err)
	}

	if len(info.Servers) != 3 {
		t.Errorf("Expected all three servers in the model, got %v", info.Servers)
	}
	t1, ok := tableByID(info, "t1")
	if !ok {
		t.Fatalf("Expected table t1 in the model, got %+v", info.Tables)
	}
	if t1.ReplicasByServer["a"] != 2 || t1.ReplicasByServer["b"] != 1 || t1.ReplicasByServer["c"] != 1 {
		t.Errorf("Expected t1 counts a=2 b=1 c=1, got %v", t1.ReplicasByServer)
	}
	if _, ok := tableByID(info, "t2"); ok {
		t.Errorf("Expected the replication-factor-one table to be skipped by default")
	}
}

func TestBuildClusterInfoMoveRF1(t *testing.T) {
	reb := testRebalancer(t, Config{MoveRF1Replicas: true}, nil)
	info, err := reb.BuildClusterInfo(scanSnapshot(), nil)
	if err != nil {
		t.Fatalf("Failed to build cluster info: %v", err)
	}
	t2, ok := tableByID(info, "t2")
	if !ok {
		t.Fatalf("Expected table t2 in the model with MoveRF1Replicas set")
	}
	if t2.ReplicasByServer["b"] != 1 {
		t.Errorf("Expected t2 counts b=1, got %v", t2.ReplicasByServer)
	}
}

func TestBuildClusterInfoAppliesInProgress(t *testing.T) {
	reb := testRebalancer(t, Config{}, nil)
	inProgress := MovesInProgress{
		"x": {TabletID: "x", From: "b", To: "c", Check: cluster.NoVersionCheck{}},
	}
	info, err := reb.BuildClusterInfo(scanSnapshot(), inProgress)
	if err != nil {
		t.Fatalf("Failed to build cluster info: %v", err)
	}
	t1, _ := tableByID(info, "t1")
	if t1.ReplicasByServer["a"] != 2 || t1.ReplicasByServer["b"] != 0 || t1.ReplicasByServer["c"] != 2 {
		t.Errorf("Expected the in-flight move projected as completed (a=2 b=0 c=2), got %v",
			t1.ReplicasByServer)
	}
}

func TestBuildClusterInfoTableFilter(t *testing.T) {
	reb := testRebalancer(t, Config{TableFilters: []string{"logs"}, MoveRF1Replicas: true}, nil)
	info, err := reb.BuildClusterInfo(scanSnapshot(), nil)
	if err != nil {
		t.Fatalf("Failed to build cluster info: %v", err)
	}
	if len(info.Tables) != 1 || info.Tables[0].ID != "t2" {
		t.Errorf("Expected only the filtered table t2, got %+v", info.Tables)
	}

	reb = testRebalancer(t, Config{TableFilters: []string{"no-such-table"}}, nil)
	info, err = reb.BuildClusterInfo(scanSnapshot(), nil)
	if err != nil {
		t.Fatalf("Failed to build cluster info: %v", err)
	}
	if len(info.Tables) != 0 {
		t.Errorf("Expected no tables for a non-matching filter, got %+v", info.Tables)
	}
}

func TestBuildClusterInfoRejectsInconsistentSnapshot(t *testing.T) {
	reb := testRebalancer(t, Config{}, nil)
	raw := scanSnapshot()
	raw.Tablets[0].Replicas[0].ServerID = "nowhere"
	if _, err := reb.BuildClusterInfo(raw, nil); err == nil {
		t.Errorf("Expected an error for a snapshot referencing an unknown server")
	}
}

func TestFindReplicas(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*cluster.RawInfo)
		intent   balance.TableReplicaMove
		moveRF1  bool
		expected []string
	}{
		{
			name:     "Tablet hosted on source and not on destination",
			mutate:   func(*cluster.RawInfo) {},
			intent:   balance.TableReplicaMove{TableID: "t1", From: "a", To: "c"},
			expected: []string{"x"},
		},
		{
			name:     "Both tablets eligible",
			mutate:   func(*cluster.RawInfo) {},
			intent:   balance.TableReplicaMove{TableID: "t1", From: "a", To: "d"},
			expected: []string{"x", "y"},
		},
		{
			name: "Unhealthy tablet excluded",
			mutate: func(r *cluster.RawInfo) {
				r.Tablets[0].State = cluster.TabletRecovering
			},
			intent:   balance.TableReplicaMove{TableID: "t1", From: "a", To: "c"},
			expected: nil,
		},
		{
			name:     "Only one tablet on the source",
			mutate:   func(*cluster.RawInfo) {},
			intent:   balance.TableReplicaMove{TableID: "t1", From: "c", To: "b"},
			expected: []string{"y"},
		},
		{
			name:     "RF1 table blocked by default",
			mutate:   func(*cluster.RawInfo) {},
			intent:   balance.TableReplicaMove{TableID: "t2", From: "b", To: "a"},
			expected: nil,
		},
		{
			name:     "RF1 table allowed when enabled",
			mutate:   func(*cluster.RawInfo) {},
			intent:   balance.TableReplicaMove{TableID: "t2", From: "b", To: "a"},
			moveRF1:  true,
			expected: []string{"z"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			raw := scanSnapshot()
			test.mutate(raw)
			got := FindReplicas(test.intent, raw, test.moveRF1)
			if len(got) != len(test.expected) {
				t.Fatalf("Expected %v, got %v", test.expected, got)
			}
			for i := range got {
				if got[i] != test.expected[i] {
					t.Errorf("Expected candidate %d to be %s, got %s", i, test.expected[i], got[i])
				}
			}
		})
	}
}

func TestComposeMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("Intent bound with its version check", func(t *testing.T) {
		moves := composeMoves(
			[]balance.TableReplicaMove{{TableID: "t1", From: "a", To: "c"}},
			scanSnapshot(), nil, false, rng)
		if len(moves) != 1 {
			t.Fatalf("Expected one move, got %v", moves)
		}
		expected := ReplicaMove{TabletID: "x", From: "a", To: "c", Check: cluster.ExpectedVersion{Index: 7}}
		if moves[0] != expected {
			t.Errorf("Expected %+v, got %+v", expected, moves[0])
		}
	})

	t.Run("Unknown config index yields no version check", func(t *testing.T) {
		moves := composeMoves(
			[]balance.TableReplicaMove{{TableID: "t1", From: "c", To: "b"}},
			scanSnapshot(), nil, false, rng)
		if len(moves) != 1 || moves[0].TabletID != "y" {
			t.Fatalf("Expected the move bound to tablet y, got %v", moves)
		}
		if moves[0].Check != (cluster.NoVersionCheck{}) {
			t.Errorf("Expected no version check, got %v", moves[0].Check)
		}
	})

	t.Run("Busy tablet skipped", func(t *testing.T) {
		inProgress := MovesInProgress{"x": {TabletID: "x", From: "a", To: "c"}}
		moves := composeMoves(
			[]balance.TableReplicaMove{{TableID: "t1", From: "a", To: "c"}},
			scanSnapshot(), inProgress, false, rng)
		if len(moves) != 0 {
			t.Errorf("Expected the intent dropped with its only tablet busy, got %v", moves)
		}
	})

	t.Run("One tablet never bound twice", func(t *testing.T) {
		intents := []balance.TableReplicaMove{
			{TableID: "t1", From: "a", To: "c"},
			{TableID: "t1", From: "a", To: "c"},
		}
		moves := composeMoves(intents, scanSnapshot(), nil, false, rng)
		if len(moves) != 1 {
			t.Errorf("Expected only one intent realized for a single eligible tablet, got %v", moves)
		}
	})
}
