// Package testcluster provides an in-memory tablet cluster for tests. It
// implements the cluster client surfaces directly and can also be served
// over gRPC, so both the scheduling machinery and the wire client can be
// exercised against it.
package testcluster

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/dailai/kudu/pkg/cluster"
)

// NeverComplete, passed to SetCompleteAfter, keeps accepted moves pending
// forever. Timeout and staleness behavior is tested with it.
const NeverComplete = -1

type serverState struct {
	id     string
	addr   string
	health cluster.ServerHealth
}

type tableState struct {
	id   string
	name string
	rf   int
}

type tabletState struct {
	id          string
	tableID     string
	replicas    []string
	state       cluster.TabletState
	configIndex int64
	sizeBytes   int64
}

type moveState struct {
	from       string
	to         string
	pollsLeft  int
	failReason string
}

// Cluster is an in-memory tablet cluster. The zero value is not usable; use
// New. All methods are safe for concurrent use. Close is a no-op, so a
// Cluster can serve as a cluster.Client directly.
type Cluster struct {
	mu      sync.Mutex
	servers []*serverState
	tables  []*tableState
	tablets []*tabletState

	serverByID map[string]*serverState
	tableByID  map[string]*tableState
	tabletByID map[string]*tabletState

	moves   map[string]*moveState
	history map[string]cluster.MoveReport

	completeAfter int
	rejectReason  string
	failReasons   map[string]string
	scanErr       error

	inflight    map[string]int
	highwater   map[string]int
	submissions int
	doubleMoves int
	completed   int
}

// New returns an empty cluster whose accepted moves complete on the first
// status poll.
func New() *Cluster {
	return &Cluster{
		serverByID:    make(map[string]*serverState),
		tableByID:     make(map[string]*tableState),
		tabletByID:    make(map[string]*tabletState),
		moves:         make(map[string]*moveState),
		history:       make(map[string]cluster.MoveReport),
		failReasons:   make(map[string]string),
		inflight:      make(map[string]int),
		highwater:     make(map[string]int),
		completeAfter: 1,
	}
}

// AddServer registers a healthy tablet server.
func (c *Cluster) AddServer(id, addr string) *Cluster {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &serverState{id: id, addr: addr, health: cluster.ServerHealthy}
	c.servers = append(c.servers, s)
	c.serverByID[id] = s
	return c
}

// AddTable registers a table with the given replication factor.
func (c *Cluster) AddTable(id, name string, rf int) *Cluster {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &tableState{id: id, name: name, rf: rf}
	c.tables = append(c.tables, t)
	c.tableByID[id] = t
	return c
}

// AddTablet registers a healthy tablet of the given table with replicas on
// the given servers.
func (c *Cluster) AddTablet(id, tableID string, servers ...string) *Cluster {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &tabletState{
		id:          id,
		tableID:     tableID,
		replicas:    append([]string(nil), servers...),
		state:       cluster.TabletHealthy,
		configIndex: 1,
	}
	c.tablets = append(c.tablets, t)
	c.tabletByID[id] = t
	return c
}

// SetServerHealth overrides the health of a server.
func (c *Cluster) SetServerHealth(id string, h cluster.ServerHealth) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.serverByID[id]; ok {
		s.health = h
	}
}

// SetTabletState overrides the state of a tablet.
func (c *Cluster) SetTabletState(id string, s cluster.TabletState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tabletByID[id]; ok {
		t.state = s
	}
}

// SetTabletSize overrides the reported data size of a tablet.
func (c *Cluster) SetTabletSize(id string, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tabletByID[id]; ok {
		t.sizeBytes = bytes
	}
}

// SetCompleteAfter makes accepted moves complete on the n-th status poll.
// NeverComplete keeps them pending forever.
func (c *Cluster) SetCompleteAfter(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completeAfter = n
}

// RejectSubmits makes every following move submission fail with the given
// reason until AcceptSubmits is called.
func (c *Cluster) RejectSubmits(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rejectReason = reason
}

// AcceptSubmits reverts RejectSubmits.
func (c *Cluster) AcceptSubmits() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rejectReason = ""
}

// FailMove makes the next accepted move of the given tablet complete as
// failed with the given reason instead of relocating the replica.
func (c *Cluster) FailMove(tabletID, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failReasons[tabletID] = reason
}

// FailScans makes health scans fail with the given error; nil restores them.
func (c *Cluster) FailScans(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scanErr = err
}

// Replicas returns the current replica placement of a tablet.
func (c *Cluster) Replicas(tabletID string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tabletByID[tabletID]; ok {
		return append([]string(nil), t.replicas...)
	}
	return nil
}

// Submissions is the total number of move submissions seen, accepted or not.
func (c *Cluster) Submissions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submissions
}

// CompletedMoves is the number of moves that finished successfully.
func (c *Cluster) CompletedMoves() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed
}

// DoubleMoveAttempts counts submissions for tablets that already had a move
// in flight. A scheduler with intact tracking state never produces any; one
// that dropped its state legitimately may.
func (c *Cluster) DoubleMoveAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doubleMoves
}

// MaxObservedMovesPerServer is the high-water mark of concurrent in-flight
// moves any single server took part in.
func (c *Cluster) MaxObservedMovesPerServer() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	max := 0
	for _, n := range c.highwater {
		if n > max {
			max = n
		}
	}
	return max
}

// Scan implements cluster.Scanner.
func (c *Cluster) Scan(ctx context.Context, filters cluster.ScanFilters) (*cluster.RawInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scanErr != nil {
		return nil, c.scanErr
	}
	var nameFilter map[string]struct{}
	if len(filters.Tables) > 0 {
		nameFilter = make(map[string]struct{}, len(filters.Tables))
		for _, name := range filters.Tables {
			nameFilter[name] = struct{}{}
		}
	}
	included := func(tableID string) bool {
		if nameFilter == nil {
			return true
		}
		t, ok := c.tableByID[tableID]
		if !ok {
			return false
		}
		_, ok = nameFilter[t.name]
		return ok
	}

	raw := &cluster.RawInfo{}
	for _, s := range c.servers {
		raw.Servers = append(raw.Servers, cluster.ServerSummary{
			ID: s.id, Address: s.addr, Health: s.health,
		})
	}
	for _, t := range c.tables {
		if !included(t.id) {
			continue
		}
		raw.Tables = append(raw.Tables, cluster.TableSummary{
			ID: t.id, Name: t.name, ReplicationFactor: t.rf,
		})
	}
	for _, t := range c.tablets {
		if !included(t.tableID) {
			continue
		}
		sum := cluster.TabletSummary{
			ID:          t.id,
			TableID:     t.tableID,
			TableName:   c.tableByID[t.tableID].name,
			State:       t.state,
			ConfigIndex: t.configIndex,
			SizeBytes:   t.sizeBytes,
		}
		for _, s := range t.replicas {
			role := cluster.RoleFollower
			if s == t.replicas[0] {
				role = cluster.RoleLeader
			}
			sum.Replicas = append(sum.Replicas, cluster.ReplicaSummary{ServerID: s, Role: role})
		}
		raw.Tablets = append(raw.Tablets, sum)
	}
	return raw, nil
}

// SubmitReplicaMove implements cluster.Mover. An accepted move is applied
// asynchronously: the replica set changes only once the move completes via
// PollMoveStatus.
func (c *Cluster) SubmitReplicaMove(ctx context.Context, tabletID, from, to string, check cluster.VersionCheck) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submissions++
	if c.rejectReason != "" {
		return errors.Newf("%s", c.rejectReason)
	}
	t, ok := c.tabletByID[tabletID]
	if !ok {
		return errors.Newf("unknown tablet %s", tabletID)
	}
	if _, moving := c.moves[tabletID]; moving {
		c.doubleMoves++
		return errors.Newf("tablet %s already has a move in flight", tabletID)
	}
	if !contains(t.replicas, from) {
		return errors.Newf("tablet %s has no replica on %s", tabletID, from)
	}
	if contains(t.replicas, to) {
		return errors.Newf("tablet %s already has a replica on %s", tabletID, to)
	}
	if _, ok := c.serverByID[to]; !ok {
		return errors.Newf("unknown destination server %s", to)
	}
	if v, ok := check.(cluster.ExpectedVersion); ok && v.Index != t.configIndex {
		return errors.Newf("consensus config of tablet %s changed: expected opid index %d, current %d",
			tabletID, v.Index, t.configIndex)
	}
	// Accepting the move changes the consensus config right away.
	t.configIndex++
	c.moves[tabletID] = &moveState{
		from:       from,
		to:         to,
		pollsLeft:  c.completeAfter,
		failReason: c.failReasons[tabletID],
	}
	delete(c.failReasons, tabletID)
	c.trackStart(from, to)
	return nil
}

// PollMoveStatus implements cluster.Mover.
func (c *Cluster) PollMoveStatus(ctx context.Context, tabletID string) (cluster.MoveReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	mv, ok := c.moves[tabletID]
	if !ok {
		if rep, done := c.history[tabletID]; done {
			return rep, nil
		}
		return cluster.MoveReport{}, errors.Newf("no move in flight for tablet %s", tabletID)
	}
	if mv.pollsLeft < 0 {
		return cluster.MoveReport{Status: cluster.MovePending}, nil
	}
	mv.pollsLeft--
	if mv.pollsLeft > 0 {
		return cluster.MoveReport{Status: cluster.MovePending}, nil
	}

	delete(c.moves, tabletID)
	c.trackEnd(mv.from, mv.to)
	if mv.failReason != "" {
		rep := cluster.MoveReport{Status: cluster.MoveFailed, Reason: mv.failReason}
		c.history[tabletID] = rep
		return rep, nil
	}
	t := c.tabletByID[tabletID]
	for i, s := range t.replicas {
		if s == mv.from {
			t.replicas[i] = mv.to
			break
		}
	}
	t.configIndex++
	c.completed++
	rep := cluster.MoveReport{Status: cluster.MoveSucceeded}
	c.history[tabletID] = rep
	return rep, nil
}

// CompleteAll finishes every in-flight move right away, as if the cluster
// had just completed them, and applies the replica relocations. Pending
// failure injections still apply.
func (c *Cluster) CompleteAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for tabletID, mv := range c.moves {
		delete(c.moves, tabletID)
		c.trackEnd(mv.from, mv.to)
		if mv.failReason != "" {
			c.history[tabletID] = cluster.MoveReport{Status: cluster.MoveFailed, Reason: mv.failReason}
			continue
		}
		t := c.tabletByID[tabletID]
		for i, s := range t.replicas {
			if s == mv.from {
				t.replicas[i] = mv.to
				break
			}
		}
		t.configIndex++
		c.completed++
		c.history[tabletID] = cluster.MoveReport{Status: cluster.MoveSucceeded}
	}
}

// Close implements cluster.Client; the in-memory cluster has nothing to
// release.
func (c *Cluster) Close() error { return nil }

// Connector returns a cluster.Connector handing out this cluster.
func (c *Cluster) Connector() cluster.Connector {
	return cluster.ConnectorFunc(func(ctx context.Context, endpoints []string) (cluster.Client, error) {
		if len(endpoints) == 0 {
			return nil, errors.New("no cluster endpoints given")
		}
		return c, nil
	})
}

func (c *Cluster) trackStart(from, to string) {
	for _, s := range []string{from, to} {
		c.inflight[s]++
		if c.inflight[s] > c.highwater[s] {
			c.highwater[s] = c.inflight[s]
		}
	}
}

func (c *Cluster) trackEnd(from, to string) {
	c.inflight[from]--
	c.inflight[to]--
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
