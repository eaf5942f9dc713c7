package cluster

import (
	"context"
	"fmt"
)

// ScanFilters narrows a health scan. An empty filter scans everything.
type ScanFilters struct {
	// Tables restricts the scan to tables whose name matches one of the
	// entries. Empty means all tables.
	Tables []string
}

// Scanner produces cluster snapshots.
type Scanner interface {
	// Scan runs a health scan against the cluster and returns a consistent
	// point-in-time snapshot of servers, tables and tablets.
	Scan(ctx context.Context, filters ScanFilters) (*RawInfo, error)
}

// VersionCheck tells the cluster which consensus configuration a replica move
// was computed against. The cluster rejects the move if the configuration has
// changed since, so a stale plan cannot clobber concurrent membership changes.
//
// There are exactly two variants: NoVersionCheck and ExpectedVersion.
type VersionCheck interface {
	versionCheck()
}

// NoVersionCheck submits the move unconditionally.
type NoVersionCheck struct{}

func (NoVersionCheck) versionCheck() {}

func (NoVersionCheck) String() string { return "none" }

// ExpectedVersion makes the move conditional: it is applied only while the
// tablet's consensus configuration index still equals Index.
type ExpectedVersion struct {
	Index int64
}

func (ExpectedVersion) versionCheck() {}

func (v ExpectedVersion) String() string { return fmt.Sprintf("opid index %d", v.Index) }

// VersionCheckFor builds the check matching a scanned configuration index:
// a known index yields ExpectedVersion, an unknown one NoVersionCheck.
func VersionCheckFor(configIndex int64) VersionCheck {
	if configIndex < 0 {
		return NoVersionCheck{}
	}
	return ExpectedVersion{Index: configIndex}
}

// MoveStatus reports where an asynchronous replica move stands.
type MoveStatus int

const (
	MoveStatusUnknown MoveStatus = iota
	MovePending
	MoveSucceeded
	MoveFailed
)

func (s MoveStatus) String() string {
	switch s {
	case MovePending:
		return "PENDING"
	case MoveSucceeded:
		return "SUCCEEDED"
	case MoveFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// MoveReport is the result of polling one in-flight replica move.
type MoveReport struct {
	Status MoveStatus
	// Reason carries the failure cause when Status is MoveFailed.
	Reason string
}

// Mover submits and tracks replica moves. Both operations address moves by
// tablet ID; the cluster runs at most one move per tablet at a time.
type Mover interface {
	// SubmitReplicaMove asks the cluster to relocate one replica of the given
	// tablet from one server to another. A nil return means the move was
	// accepted and runs asynchronously; completion is observed via
	// PollMoveStatus. A rejected submission returns an error and leaves the
	// cluster unchanged.
	SubmitReplicaMove(ctx context.Context, tabletID, from, to string, check VersionCheck) error

	// PollMoveStatus reports the state of a previously submitted move. The
	// returned error covers RPC failures only; a move that completed
	// unsuccessfully comes back as MoveFailed with a reason.
	PollMoveStatus(ctx context.Context, tabletID string) (MoveReport, error)
}

// Client bundles the two collaborator surfaces behind a single connection.
type Client interface {
	Scanner
	Mover
	Close() error
}

// Connector establishes a client session against the given cluster endpoints.
type Connector interface {
	Connect(ctx context.Context, endpoints []string) (Client, error)
}

// ConnectorFunc adapts a plain function to the Connector interface.
type ConnectorFunc func(ctx context.Context, endpoints []string) (Client, error)

func (f ConnectorFunc) Connect(ctx context.Context, endpoints []string) (Client, error) {
	return f(ctx, endpoints)
}
