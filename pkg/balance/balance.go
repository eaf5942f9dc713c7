// Package balance holds the placement model a rebalancing run feeds to its
// balancing algorithm, and the algorithms themselves. The model is
// deliberately small: replica counts per table per server, nothing more.
package balance

import "fmt"

// TableInfo carries the replica distribution of a single table.
type TableInfo struct {
	ID   string
	Name string
	// ReplicasByServer maps tablet server ID to the number of replicas of
	// this table it hosts. Servers hosting none are omitted.
	ReplicasByServer map[string]int
}

// ClusterInfo is the input model of a balancing algorithm. Servers lists
// every tablet server eligible to host replicas, including ones currently
// hosting nothing; leaving those out would hide the best move destinations.
type ClusterInfo struct {
	Servers []string
	Tables  []TableInfo
}

// TableReplicaMove is an algorithm's intent to move one replica of a table
// between two servers. Which tablet actually moves is decided later, when the
// intent is bound to the live snapshot.
type TableReplicaMove struct {
	TableID string
	From    string
	To      string
}

func (m TableReplicaMove) String() string {
	return fmt.Sprintf("table %s: %s -> %s", m.TableID, m.From, m.To)
}

// Algorithm is a pluggable balancing strategy. Implementations are fed a
// fresh model via Refresh and asked for the next batch of intents; an empty
// batch means the algorithm considers the cluster balanced.
type Algorithm interface {
	Refresh(info ClusterInfo)
	NextMoves() []TableReplicaMove
	IsBalanced() bool
}

// TableSkew is the spread of one table's replica counts across the given
// servers: max per-server count minus min per-server count, counting servers
// that host no replicas of the table as zero.
func TableSkew(t TableInfo, servers []string) int {
	if len(servers) == 0 {
		return 0
	}
	lo, hi := t.ReplicasByServer[servers[0]], t.ReplicasByServer[servers[0]]
	for _, s := range servers[1:] {
		n := t.ReplicasByServer[s]
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return hi - lo
}

// TotalSkew is the spread of the per-server totals across all tables.
func TotalSkew(info ClusterInfo) int {
	if len(info.Servers) == 0 {
		return 0
	}
	totals := totalsByServer(info)
	lo, hi := totals[info.Servers[0]], totals[info.Servers[0]]
	for _, s := range info.Servers[1:] {
		n := totals[s]
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return hi - lo
}

func totalsByServer(info ClusterInfo) map[string]int {
	totals := make(map[string]int, len(info.Servers))
	for _, s := range info.Servers {
		totals[s] = 0
	}
	for _, t := range info.Tables {
		for s, n := range t.ReplicasByServer {
			totals[s] += n
		}
	}
	return totals
}
