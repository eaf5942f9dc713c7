package clusterpb

import "github.com/dailai/kudu/pkg/cluster"

// Converters between the wire messages and the domain snapshot model. Both
// the gRPC client and servers use these, so the mapping lives in one place.

func ServerHealthToProto(h cluster.ServerHealth) ServerHealthPB {
	switch h {
	case cluster.ServerHealthy:
		return ServerHealthPB_SERVER_HEALTHY
	case cluster.ServerUnavailable:
		return ServerHealthPB_SERVER_UNAVAILABLE
	case cluster.ServerWrongID:
		return ServerHealthPB_SERVER_WRONG_ID
	default:
		return ServerHealthPB_SERVER_HEALTH_UNKNOWN
	}
}

func ServerHealthFromProto(h ServerHealthPB) cluster.ServerHealth {
	switch h {
	case ServerHealthPB_SERVER_HEALTHY:
		return cluster.ServerHealthy
	case ServerHealthPB_SERVER_UNAVAILABLE:
		return cluster.ServerUnavailable
	case ServerHealthPB_SERVER_WRONG_ID:
		return cluster.ServerWrongID
	default:
		return cluster.ServerHealthUnknown
	}
}

func TabletStateToProto(s cluster.TabletState) TabletStatePB {
	switch s {
	case cluster.TabletHealthy:
		return TabletStatePB_TABLET_HEALTHY
	case cluster.TabletRecovering:
		return TabletStatePB_TABLET_RECOVERING
	case cluster.TabletUnderReplicated:
		return TabletStatePB_TABLET_UNDER_REPLICATED
	case cluster.TabletUnavailable:
		return TabletStatePB_TABLET_UNAVAILABLE
	case cluster.TabletConsensusMismatch:
		return TabletStatePB_TABLET_CONSENSUS_MISMATCH
	default:
		return TabletStatePB_TABLET_STATE_UNKNOWN
	}
}

func TabletStateFromProto(s TabletStatePB) cluster.TabletState {
	switch s {
	case TabletStatePB_TABLET_HEALTHY:
		return cluster.TabletHealthy
	case TabletStatePB_TABLET_RECOVERING:
		return cluster.TabletRecovering
	case TabletStatePB_TABLET_UNDER_REPLICATED:
		return cluster.TabletUnderReplicated
	case TabletStatePB_TABLET_UNAVAILABLE:
		return cluster.TabletUnavailable
	case TabletStatePB_TABLET_CONSENSUS_MISMATCH:
		return cluster.TabletConsensusMismatch
	default:
		return cluster.TabletStateUnknown
	}
}

func ReplicaRoleToProto(r cluster.ReplicaRole) ReplicaRolePB {
	switch r {
	case cluster.RoleLeader:
		return ReplicaRolePB_REPLICA_LEADER
	case cluster.RoleFollower:
		return ReplicaRolePB_REPLICA_FOLLOWER
	case cluster.RoleLearner:
		return ReplicaRolePB_REPLICA_LEARNER
	default:
		return ReplicaRolePB_REPLICA_ROLE_UNKNOWN
	}
}

func ReplicaRoleFromProto(r ReplicaRolePB) cluster.ReplicaRole {
	switch r {
	case ReplicaRolePB_REPLICA_LEADER:
		return cluster.RoleLeader
	case ReplicaRolePB_REPLICA_FOLLOWER:
		return cluster.RoleFollower
	case ReplicaRolePB_REPLICA_LEARNER:
		return cluster.RoleLearner
	default:
		return cluster.RoleUnknown
	}
}

func MoveStatusToProto(s cluster.MoveStatus) MoveStatePB {
	switch s {
	case cluster.MovePending:
		return MoveStatePB_MOVE_PENDING
	case cluster.MoveSucceeded:
		return MoveStatePB_MOVE_SUCCEEDED
	case cluster.MoveFailed:
		return MoveStatePB_MOVE_FAILED
	default:
		return MoveStatePB_MOVE_STATE_UNKNOWN
	}
}

func MoveStatusFromProto(s MoveStatePB) cluster.MoveStatus {
	switch s {
	case MoveStatePB_MOVE_PENDING:
		return cluster.MovePending
	case MoveStatePB_MOVE_SUCCEEDED:
		return cluster.MoveSucceeded
	case MoveStatePB_MOVE_FAILED:
		return cluster.MoveFailed
	default:
		return cluster.MoveStatusUnknown
	}
}

// RawInfoToProto turns a snapshot into a ScanResponse.
func RawInfoToProto(raw *cluster.RawInfo) *ScanResponse {
	resp := &ScanResponse{}
	for _, s := range raw.Servers {
		resp.Servers = append(resp.Servers, &ServerSummaryPB{
			Id:      s.ID,
			Address: s.Address,
			Health:  ServerHealthToProto(s.Health),
		})
	}
	for _, t := range raw.Tables {
		resp.Tables = append(resp.Tables, &TableSummaryPB{
			Id:                t.ID,
			Name:              t.Name,
			ReplicationFactor: int32(t.ReplicationFactor),
		})
	}
	for i := range raw.Tablets {
		t := &raw.Tablets[i]
		pb := &TabletSummaryPB{
			Id:          t.ID,
			TableId:     t.TableID,
			TableName:   t.TableName,
			State:       TabletStateToProto(t.State),
			ConfigIndex: t.ConfigIndex,
			SizeBytes:   t.SizeBytes,
		}
		for _, rep := range t.Replicas {
			pb.Replicas = append(pb.Replicas, &ReplicaSummaryPB{
				ServerId: rep.ServerID,
				Role:     ReplicaRoleToProto(rep.Role),
			})
		}
		resp.Tablets = append(resp.Tablets, pb)
	}
	return resp
}

// RawInfoFromProto turns a ScanResponse back into the snapshot model.
func RawInfoFromProto(resp *ScanResponse) *cluster.RawInfo {
	raw := &cluster.RawInfo{}
	for _, s := range resp.GetServers() {
		raw.Servers = append(raw.Servers, cluster.ServerSummary{
			ID:      s.GetId(),
			Address: s.GetAddress(),
			Health:  ServerHealthFromProto(s.GetHealth()),
		})
	}
	for _, t := range resp.GetTables() {
		raw.Tables = append(raw.Tables, cluster.TableSummary{
			ID:                t.GetId(),
			Name:              t.GetName(),
			ReplicationFactor: int(t.GetReplicationFactor()),
		})
	}
	for _, t := range resp.GetTablets() {
		sum := cluster.TabletSummary{
			ID:          t.GetId(),
			TableID:     t.GetTableId(),
			TableName:   t.GetTableName(),
			State:       TabletStateFromProto(t.GetState()),
			ConfigIndex: t.GetConfigIndex(),
			SizeBytes:   t.GetSizeBytes(),
		}
		for _, rep := range t.GetReplicas() {
			sum.Replicas = append(sum.Replicas, cluster.ReplicaSummary{
				ServerID: rep.GetServerId(),
				Role:     ReplicaRoleFromProto(rep.GetRole()),
			})
		}
		raw.Tablets = append(raw.Tablets, sum)
	}
	return raw
}

// VersionCheckToProto maps a version check onto the wire: ExpectedVersion
// becomes a populated ExpectedConfigPB, NoVersionCheck stays nil.
func VersionCheckToProto(check cluster.VersionCheck) *ExpectedConfigPB {
	if v, ok := check.(cluster.ExpectedVersion); ok {
		return &ExpectedConfigPB{OpidIndex: v.Index}
	}
	return nil
}

// VersionCheckFromProto is the inverse of VersionCheckToProto.
func VersionCheckFromProto(pb *ExpectedConfigPB) cluster.VersionCheck {
	if pb == nil {
		return cluster.NoVersionCheck{}
	}
	return cluster.ExpectedVersion{Index: pb.GetOpidIndex()}
}
