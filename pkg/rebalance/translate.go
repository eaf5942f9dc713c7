package rebalance

import (
	"math/rand"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dailai/kudu/pkg/balance"
	"github.com/dailai/kudu/pkg/cluster"
)

// BuildClusterInfo projects a health-scan snapshot into the balancing model.
// Moves already in flight are applied to the projection as if they had
// completed, so the algorithm plans on top of them instead of proposing them
// again. Tables excluded by the configured filters are left out entirely,
// and so are replication-factor-one tables unless MoveRF1Replicas is set.
func (r *Rebalancer) BuildClusterInfo(raw *cluster.RawInfo, inProgress MovesInProgress) (balance.ClusterInfo, error) {
	if err := raw.Validate(); err != nil {
		return balance.ClusterInfo{}, errors.Wrap(err, "inconsistent cluster snapshot")
	}

	var filter map[string]struct{}
	if len(r.cfg.TableFilters) > 0 {
		filter = make(map[string]struct{}, len(r.cfg.TableFilters))
		for _, name := range r.cfg.TableFilters {
			filter[name] = struct{}{}
		}
	}

	info := balance.ClusterInfo{
		Servers: make([]string, 0, len(raw.Servers)),
	}
	for _, s := range raw.Servers {
		info.Servers = append(info.Servers, s.ID)
	}

	counts := make(map[string]map[string]int, len(raw.Tables))
	var rf1Skipped []string
	for _, t := range raw.Tables {
		if filter != nil {
			if _, ok := filter[t.Name]; !ok {
				continue
			}
		}
		if t.ReplicationFactor == 1 && !r.cfg.MoveRF1Replicas {
			rf1Skipped = append(rf1Skipped, t.Name)
			continue
		}
		counts[t.ID] = make(map[string]int)
	}
	if len(rf1Skipped) > 0 {
		r.lg.Printf("skipping tables with replication factor 1: %s "+
			"(enable moveRF1Replicas to include them)", strings.Join(rf1Skipped, ", "))
	}

	for i := range raw.Tablets {
		t := &raw.Tablets[i]
		cnt, ok := counts[t.TableID]
		if !ok {
			continue
		}
		hosts := make(map[string]struct{}, len(t.Replicas))
		for _, rep := range t.Replicas {
			hosts[rep.ServerID] = struct{}{}
		}
		if mv, ok := inProgress[t.ID]; ok {
			delete(hosts, mv.From)
			hosts[mv.To] = struct{}{}
		}
		for s := range hosts {
			cnt[s]++
		}
	}

	for _, t := range raw.Tables {
		cnt, ok := counts[t.ID]
		if !ok {
			continue
		}
		info.Tables = append(info.Tables, balance.TableInfo{
			ID:               t.ID,
			Name:             t.Name,
			ReplicasByServer: cnt,
		})
	}
	return info, nil
}

// FindReplicas lists the tablets that could realize a table replica move
// intent: healthy tablets of the intent's table hosting a replica on the
// source server and none on the destination. An empty result just means the
// intent cannot be realized against this snapshot.
func FindReplicas(mv balance.TableReplicaMove, raw *cluster.RawInfo, moveRF1Replicas bool) []string {
	if tbl, ok := raw.Table(mv.TableID); ok && tbl.ReplicationFactor == 1 && !moveRF1Replicas {
		return nil
	}
	var ids []string
	for i := range raw.Tablets {
		t := &raw.Tablets[i]
		if t.TableID != mv.TableID || t.State != cluster.TabletHealthy {
			continue
		}
		if !t.HostedOn(mv.From) || t.HostedOn(mv.To) {
			continue
		}
		ids = append(ids, t.ID)
	}
	return ids
}

// composeMoves binds algorithm intents to concrete tablets. Candidates are
// shuffled so repeated batches do not hammer the same tablets, then one
// tablet is drawn per intent, skipping tablets already moving or already
// drawn for this batch. Intents with no usable tablet are dropped; the next
// snapshot refresh recomputes them if they still matter.
func composeMoves(intents []balance.TableReplicaMove, raw *cluster.RawInfo,
	inProgress MovesInProgress, moveRF1Replicas bool, rng *rand.Rand) []ReplicaMove {
	var out []ReplicaMove
	used := make(map[string]struct{})
	for _, intent := range intents {
		cands := FindReplicas(intent, raw, moveRF1Replicas)
		rng.Shuffle(len(cands), func(i, j int) {
			cands[i], cands[j] = cands[j], cands[i]
		})
		picked := ""
		for _, id := range cands {
			if _, busy := inProgress[id]; busy {
				continue
			}
			if _, dup := used[id]; dup {
				continue
			}
			picked = id
			break
		}
		if picked == "" {
			continue
		}
		used[picked] = struct{}{}
		t, _ := raw.Tablet(picked)
		out = append(out, ReplicaMove{
			TabletID: picked,
			From:     intent.From,
			To:       intent.To,
			Check:    cluster.VersionCheckFor(t.ConfigIndex),
		})
	}
	return out
}
