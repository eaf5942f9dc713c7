// Package cluster defines the health-scan snapshot model of a tablet cluster
// and the client interfaces the rebalancing machinery talks to.
package cluster

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ServerHealth describes the reachability of a tablet server as seen by the
// most recent health scan.
type ServerHealth int

const (
	ServerHealthUnknown ServerHealth = iota
	ServerHealthy
	ServerUnavailable
	ServerWrongID
)

func (h ServerHealth) String() string {
	switch h {
	case ServerHealthy:
		return "HEALTHY"
	case ServerUnavailable:
		return "UNAVAILABLE"
	case ServerWrongID:
		return "WRONG_SERVER_ID"
	default:
		return "UNKNOWN"
	}
}

// TabletState describes the consensus-level condition of a single tablet.
// Only healthy tablets are candidates for replica movement.
type TabletState int

const (
	TabletStateUnknown TabletState = iota
	TabletHealthy
	TabletRecovering
	TabletUnderReplicated
	TabletUnavailable
	TabletConsensusMismatch
)

func (s TabletState) String() string {
	switch s {
	case TabletHealthy:
		return "HEALTHY"
	case TabletRecovering:
		return "RECOVERING"
	case TabletUnderReplicated:
		return "UNDER_REPLICATED"
	case TabletUnavailable:
		return "UNAVAILABLE"
	case TabletConsensusMismatch:
		return "CONSENSUS_MISMATCH"
	default:
		return "UNKNOWN"
	}
}

// ReplicaRole is the consensus role of one replica inside its tablet.
type ReplicaRole int

const (
	RoleUnknown ReplicaRole = iota
	RoleLeader
	RoleFollower
	RoleLearner
)

func (r ReplicaRole) String() string {
	switch r {
	case RoleLeader:
		return "LEADER"
	case RoleFollower:
		return "FOLLOWER"
	case RoleLearner:
		return "LEARNER"
	default:
		return "UNKNOWN"
	}
}

// UnknownConfigIndex marks a tablet whose consensus configuration index was
// not reported by the scan. Moves composed for such tablets are submitted
// without a version check.
const UnknownConfigIndex int64 = -1

// ServerSummary is one tablet server as reported by a health scan.
type ServerSummary struct {
	ID      string
	Address string
	Health  ServerHealth
}

// TableSummary is one table as reported by a health scan.
type TableSummary struct {
	ID                string
	Name              string
	ReplicationFactor int
}

// ReplicaSummary is one replica of a tablet.
type ReplicaSummary struct {
	ServerID string
	Role     ReplicaRole
}

// TabletSummary is one tablet as reported by a health scan, together with the
// placement of its replicas.
type TabletSummary struct {
	ID        string
	TableID   string
	TableName string
	State     TabletState
	Replicas  []ReplicaSummary
	// ConfigIndex is the index of the last committed consensus configuration
	// change, or UnknownConfigIndex when the scan could not determine it.
	ConfigIndex int64
	SizeBytes   int64
}

// HostedOn reports whether one of the tablet's replicas lives on the given
// server.
func (t *TabletSummary) HostedOn(serverID string) bool {
	for _, r := range t.Replicas {
		if r.ServerID == serverID {
			return true
		}
	}
	return false
}

// RawInfo is a point-in-time snapshot of cluster state: every tablet server,
// table and tablet the scan could see. It is the sole input of the
// rebalancing model; nothing else about the cluster is consulted.
type RawInfo struct {
	Servers []ServerSummary
	Tables  []TableSummary
	Tablets []TabletSummary
}

// Server returns the summary of the given tablet server, if present.
func (r *RawInfo) Server(id string) (*ServerSummary, bool) {
	for i := range r.Servers {
		if r.Servers[i].ID == id {
			return &r.Servers[i], true
		}
	}
	return nil, false
}

// Table returns the summary of the given table, if present.
func (r *RawInfo) Table(id string) (*TableSummary, bool) {
	for i := range r.Tables {
		if r.Tables[i].ID == id {
			return &r.Tables[i], true
		}
	}
	return nil, false
}

// Tablet returns the summary of the given tablet, if present.
func (r *RawInfo) Tablet(id string) (*TabletSummary, bool) {
	for i := range r.Tablets {
		if r.Tablets[i].ID == id {
			return &r.Tablets[i], true
		}
	}
	return nil, false
}

// Validate checks the structural consistency of the snapshot: every replica
// must live on a known server and every tablet must belong to a known table.
// A snapshot that fails validation cannot be turned into a balancing model.
func (r *RawInfo) Validate() error {
	servers := make(map[string]struct{}, len(r.Servers))
	for _, s := range r.Servers {
		if s.ID == "" {
			return errors.New("tablet server with empty ID in snapshot")
		}
		if _, ok := servers[s.ID]; ok {
			return errors.Newf("duplicate tablet server %s in snapshot", s.ID)
		}
		servers[s.ID] = struct{}{}
	}
	tables := make(map[string]struct{}, len(r.Tables))
	for _, t := range r.Tables {
		if _, ok := tables[t.ID]; ok {
			return errors.Newf("duplicate table %s in snapshot", t.ID)
		}
		tables[t.ID] = struct{}{}
	}
	for i := range r.Tablets {
		t := &r.Tablets[i]
		if _, ok := tables[t.TableID]; !ok {
			return errors.Newf("tablet %s references unknown table %s", t.ID, t.TableID)
		}
		seen := make(map[string]struct{}, len(t.Replicas))
		for _, rep := range t.Replicas {
			if _, ok := servers[rep.ServerID]; !ok {
				return errors.Newf("tablet %s has a replica on unknown tablet server %s",
					t.ID, rep.ServerID)
			}
			if _, ok := seen[rep.ServerID]; ok {
				return errors.Newf("tablet %s has more than one replica on tablet server %s",
					t.ID, rep.ServerID)
			}
			seen[rep.ServerID] = struct{}{}
		}
	}
	return nil
}

// String gives a one-line shape summary, handy in logs.
func (r *RawInfo) String() string {
	replicas := 0
	for i := range r.Tablets {
		replicas += len(r.Tablets[i].Replicas)
	}
	return fmt.Sprintf("%d tablet server(s), %d table(s), %d tablet(s), %d replica(s)",
		len(r.Servers), len(r.Tables), len(r.Tablets), replicas)
}
