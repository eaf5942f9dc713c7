package rebalance

import (
	"context"
	"log"
	"math/rand"
	"sort"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/dailai/kudu/pkg/balance"
	"github.com/dailai/kudu/pkg/cluster"
)

// Runner schedules and tracks the replica moves of one rebalancing run. All
// methods are called from the driving goroutine; implementations need no
// internal locking.
type Runner interface {
	// Init connects the runner to the cluster. It must be called once,
	// before anything else.
	Init(ctx context.Context, endpoints []string) error

	// GetNextMoves refreshes the cluster snapshot and computes the next
	// batch of moves, replacing the pending queue. It reports whether the
	// new queue is non-empty.
	GetNextMoves(ctx context.Context) (bool, error)

	// LoadMoves replaces the pending queue with the given batch.
	LoadMoves(moves []ReplicaMove)

	// ScheduleNextMove tries to start one queued move whose source and
	// destination are both under the per-server cap. A submission failure
	// surfaces as hasErrors with the move dropped from the queue; it is not
	// retried within the batch.
	ScheduleNextMove(ctx context.Context) (scheduled, hasErrors, timedOut bool)

	// UpdateMovesInProgressStatus polls every in-flight move once, releasing
	// the per-server capacity of the completed ones. A true reset return
	// means the deadline cut the poll short and the caller should discard
	// the in-flight tracking state.
	UpdateMovesInProgressStatus(ctx context.Context) (reset, hasErrors, timedOut bool)

	// Balanced reports whether the last snapshot refresh found nothing to
	// move.
	Balanced() bool

	// MovesCount is the number of moves completed successfully so far.
	MovesCount() int

	// InProgressCount is the number of moves currently tracked in flight.
	InProgressCount() int

	// ForgetInProgress drops all in-flight tracking state, releasing the
	// per-server capacity it held.
	ForgetInProgress()

	Close() error
}

// baseRunner carries the bookkeeping shared by runner implementations: the
// cluster client, the in-flight move set and the per-server operation
// counts.
type baseRunner struct {
	reb               *Rebalancer
	maxMovesPerServer int
	// deadline bounds the whole run; zero means unbounded.
	deadline time.Time

	client    cluster.Client
	scheduled MovesInProgress
	completed int
	ops       *opsTracker
	lg        *log.Logger
}

func newBaseRunner(reb *Rebalancer, deadline time.Time) baseRunner {
	return baseRunner{
		reb:               reb,
		maxMovesPerServer: reb.cfg.MaxMovesPerServer,
		deadline:          deadline,
		scheduled:         MovesInProgress{},
		ops:               newOpsTracker(),
		lg:                reb.lg,
	}
}

func (b *baseRunner) Init(ctx context.Context, endpoints []string) error {
	if b.client != nil {
		return errors.New("runner is already initialized")
	}
	c, err := b.reb.connector.Connect(ctx, endpoints)
	if err != nil {
		return errors.Wrap(err, "failed to connect to the cluster")
	}
	b.client = c
	return nil
}

func (b *baseRunner) Close() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}

func (b *baseRunner) MovesCount() int { return b.completed }

func (b *baseRunner) InProgressCount() int { return len(b.scheduled) }

func (b *baseRunner) ForgetInProgress() {
	for _, mv := range b.scheduled {
		b.ops.moveCompleted(mv.From, mv.To)
	}
	b.scheduled = MovesInProgress{}
}

func (b *baseRunner) pastDeadline() bool {
	return !b.deadline.IsZero() && time.Now().After(b.deadline)
}

// algoBasedRunner feeds snapshots to a balancing algorithm and schedules the
// moves it comes up with. The pending queue is indexed by source and by
// destination server, so the scheduler can pick moves by server load without
// scanning the queue.
type algoBasedRunner struct {
	baseRunner
	algo balance.Algorithm
	rng  *rand.Rand

	balanced bool
	queue    []ReplicaMove
	srcOps   map[string]map[int]struct{}
	dstOps   map[string]map[int]struct{}
}

func (r *algoBasedRunner) Balanced() bool { return r.balanced }

func (r *algoBasedRunner) GetNextMoves(ctx context.Context) (bool, error) {
	moves, err := r.nextBatch(ctx)
	if err != nil {
		return false, err
	}
	r.LoadMoves(moves)
	return len(moves) > 0, nil
}

func (r *algoBasedRunner) nextBatch(ctx context.Context) ([]ReplicaMove, error) {
	raw, err := r.client.Scan(ctx, cluster.ScanFilters{Tables: r.reb.cfg.TableFilters})
	if err != nil {
		return nil, errors.Wrap(err, "cluster health scan failed")
	}
	// Moving replicas around while a server is down would fight the
	// cluster's own re-replication, so insist on an all-healthy cluster.
	for _, s := range raw.Servers {
		if s.Health != cluster.ServerHealthy {
			return nil, errors.Newf("tablet server %s (%s) is %s: the cluster must be "+
				"fully healthy to rebalance", s.ID, s.Address, s.Health)
		}
	}
	info, err := r.reb.BuildClusterInfo(raw, r.scheduled)
	if err != nil {
		return nil, err
	}
	r.algo.Refresh(info)
	intents := r.algo.NextMoves()
	r.balanced = len(intents) == 0 && r.algo.IsBalanced()
	if len(intents) == 0 {
		return nil, nil
	}
	if max := r.batchCap(len(raw.Servers)); len(intents) > max {
		intents = intents[:max]
	}
	moves := composeMoves(intents, raw, r.scheduled, r.reb.cfg.MoveRF1Replicas, r.rng)
	return FilterMoves(r.scheduled, moves), nil
}

// batchCap keeps a single batch small enough to stay fresh: there is no
// point queueing more moves than the caps would ever let run at once.
func (r *algoBasedRunner) batchCap(servers int) int {
	n := r.maxMovesPerServer * servers
	if n < 1 {
		n = 1
	}
	return n
}

func (r *algoBasedRunner) LoadMoves(moves []ReplicaMove) {
	r.queue = moves
	r.srcOps = make(map[string]map[int]struct{})
	r.dstOps = make(map[string]map[int]struct{})
	for i, mv := range moves {
		addIndex(r.srcOps, mv.From, i)
		addIndex(r.dstOps, mv.To, i)
		r.ops.ensure(mv.From)
		r.ops.ensure(mv.To)
	}
}

func (r *algoBasedRunner) ScheduleNextMove(ctx context.Context) (scheduled, hasErrors, timedOut bool) {
	if r.pastDeadline() {
		return false, false, true
	}
	idx, ok := r.findNextMove()
	if !ok {
		return false, false, false
	}
	mv := r.queue[idx]
	if err := r.client.SubmitReplicaMove(ctx, mv.TabletID, mv.From, mv.To, mv.Check); err != nil {
		r.lg.Printf("failed to start move of tablet %s from %s to %s: %v",
			mv.TabletID, mv.From, mv.To, err)
		r.dropMove(idx, false)
		return false, true, false
	}
	r.dropMove(idx, true)
	r.scheduled[mv.TabletID] = mv
	r.lg.Printf("started move of tablet %s: %s -> %s (version check: %s)",
		mv.TabletID, mv.From, mv.To, mv.Check)
	return true, false, false
}

// findNextMove picks a queued move both of whose endpoints are under the
// per-server cap, preferring moves touching the least loaded servers.
// Candidates are collected from every server tied at the lowest eligible
// load and one is chosen uniformly at random.
func (r *algoBasedRunner) findNextMove() (int, bool) {
	cands := make(map[int]struct{})
	tier, found := 0, false
	r.ops.ascend(func(id string, ops int) bool {
		if ops >= r.maxMovesPerServer {
			// Everything after this point is at or over the cap.
			return false
		}
		if found && ops > tier {
			return false
		}
		hit := false
		for idx := range r.srcOps[id] {
			if r.ops.load(r.queue[idx].To) < r.maxMovesPerServer {
				cands[idx] = struct{}{}
				hit = true
			}
		}
		for idx := range r.dstOps[id] {
			if r.ops.load(r.queue[idx].From) < r.maxMovesPerServer {
				cands[idx] = struct{}{}
				hit = true
			}
		}
		if hit && !found {
			found, tier = true, ops
		}
		return true
	})
	if len(cands) == 0 {
		return 0, false
	}
	idxs := make([]int, 0, len(cands))
	for idx := range cands {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	return idxs[r.rng.Intn(len(idxs))], true
}

// dropMove removes a queued move from the candidate indexes. If the move was
// actually started, the in-flight counts of its endpoints go up.
func (r *algoBasedRunner) dropMove(idx int, started bool) {
	mv := r.queue[idx]
	removeIndex(r.srcOps, mv.From, idx)
	removeIndex(r.dstOps, mv.To, idx)
	if started {
		r.ops.moveScheduled(mv.From, mv.To)
	}
}

func (r *algoBasedRunner) UpdateMovesInProgressStatus(ctx context.Context) (reset, hasErrors, timedOut bool) {
	for tabletID, mv := range r.scheduled {
		if r.pastDeadline() {
			// Some moves are still unresolved; the caller decides whether to
			// keep the tracking state.
			return true, hasErrors, true
		}
		rep, err := r.client.PollMoveStatus(ctx, tabletID)
		if err != nil {
			hasErrors = true
			r.lg.Printf("failed to get status of the move of tablet %s: %v", tabletID, err)
			r.finishMove(mv)
			continue
		}
		switch rep.Status {
		case cluster.MovePending:
			// Still running, keep tracking it.
		case cluster.MoveSucceeded:
			r.completed++
			r.finishMove(mv)
			r.lg.Printf("tablet %s: move %s -> %s completed", tabletID, mv.From, mv.To)
		case cluster.MoveFailed:
			hasErrors = true
			r.finishMove(mv)
			r.lg.Printf("tablet %s: move %s -> %s failed: %s", tabletID, mv.From, mv.To, rep.Reason)
		default:
			hasErrors = true
			r.finishMove(mv)
			r.lg.Printf("tablet %s: move %s -> %s is in an unknown state, dropping it",
				tabletID, mv.From, mv.To)
		}
	}
	return false, hasErrors, false
}

// finishMove stops tracking an in-flight move and releases the capacity it
// held on both endpoints.
func (r *algoBasedRunner) finishMove(mv ReplicaMove) {
	delete(r.scheduled, mv.TabletID)
	r.ops.moveCompleted(mv.From, mv.To)
}

func addIndex(m map[string]map[int]struct{}, key string, idx int) {
	set, ok := m[key]
	if !ok {
		set = make(map[int]struct{})
		m[key] = set
	}
	set[idx] = struct{}{}
}

func removeIndex(m map[string]map[int]struct{}, key string, idx int) {
	if set, ok := m[key]; ok {
		delete(set, idx)
		if len(set) == 0 {
			delete(m, key)
		}
	}
}

// TwoDimensionalGreedyRunner schedules the moves computed by the
// two-dimensional greedy balancing algorithm.
type TwoDimensionalGreedyRunner struct {
	algoBasedRunner
}

// NewTwoDimensionalGreedyRunner builds a runner for one rebalancing run.
// The deadline bounds the run; pass the zero time for an unbounded one.
func NewTwoDimensionalGreedyRunner(reb *Rebalancer, deadline time.Time) *TwoDimensionalGreedyRunner {
	r := &TwoDimensionalGreedyRunner{
		algoBasedRunner: algoBasedRunner{
			baseRunner: newBaseRunner(reb, deadline),
			algo:       balance.NewTwoDimensionalGreedy(balance.WithRand(reb.rng)),
			rng:        reb.rng,
		},
	}
	return r
}
