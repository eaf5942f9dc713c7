// Package rebalance implements the move-scheduling engine of the cluster
// rebalancer: it turns health-scan snapshots into concrete replica moves,
// schedules them against per-server concurrency caps and tracks them to
// completion.
package rebalance

import (
	"fmt"

	"github.com/dailai/kudu/pkg/cluster"
)

// RunStatus is the terminal state of a rebalancing run.
type RunStatus int

const (
	// RunStatusUnknown means the run ended without reaching a verdict,
	// typically because of an error.
	RunStatusUnknown RunStatus = iota
	// RunStatusBalanced means the cluster needs no further moves.
	RunStatusBalanced
	// RunStatusTimedOut means the run hit its maximum run time with work
	// still outstanding.
	RunStatusTimedOut
)

func (s RunStatus) String() string {
	switch s {
	case RunStatusBalanced:
		return "cluster is balanced"
	case RunStatusTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// ReplicaMove is one concrete move of a tablet replica between two tablet
// servers, ready to submit to the cluster.
type ReplicaMove struct {
	TabletID string
	From     string
	To       string
	// Check pins the move to the consensus configuration it was computed
	// against, when the snapshot reported one.
	Check cluster.VersionCheck
}

func (m ReplicaMove) String() string {
	return fmt.Sprintf("tablet %s: %s -> %s", m.TabletID, m.From, m.To)
}

// MovesInProgress tracks in-flight moves by tablet ID. The cluster runs at
// most one move per tablet, so the key is unique.
type MovesInProgress map[string]ReplicaMove

// FilterMoves drops candidate moves that collide with moves already in
// flight or with earlier candidates on the same tablet. The relative order
// of the surviving moves is preserved, and filtering an already filtered
// batch changes nothing.
func FilterMoves(inProgress MovesInProgress, moves []ReplicaMove) []ReplicaMove {
	out := moves[:0]
	seen := make(map[string]struct{}, len(moves))
	for _, mv := range moves {
		if _, busy := inProgress[mv.TabletID]; busy {
			continue
		}
		if _, dup := seen[mv.TabletID]; dup {
			continue
		}
		seen[mv.TabletID] = struct{}{}
		out = append(out, mv)
	}
	return out
}
