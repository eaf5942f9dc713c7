package rebalance

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/dailai/kudu/pkg/cluster"
	"github.com/dailai/kudu/pkg/utils"
)

// ErrStalled marks a run that kept making no progress through a full
// staleness interval even after dropping its in-flight state and starting
// over. Some external actor is most likely fighting the rebalancer.
var ErrStalled = errors.New("rebalancing is not making progress")

// movePollInterval is how long the driver waits before polling in-flight
// moves again when nothing changed, and between snapshot refreshes when no
// move could be composed.
var movePollInterval = 500 * time.Millisecond

// Rebalancer drives a cluster toward a balanced replica distribution by
// scheduling replica moves batch by batch until nothing is left to do.
type Rebalancer struct {
	cfg       Config
	connector cluster.Connector
	rng       *rand.Rand
	lg        *log.Logger
}

// New builds a Rebalancer from the given configuration. Zero values of the
// tunable knobs fall back to their defaults; the configuration must name at
// least one master endpoint. The connector is only used once a run starts.
func New(cfg Config, connector cluster.Connector) (*Rebalancer, error) {
	if cfg.MaxMovesPerServer == 0 {
		cfg.MaxMovesPerServer = DefaultMaxMovesPerServer
	}
	if cfg.MaxStalenessInterval == 0 {
		cfg.MaxStalenessInterval = DefaultMaxStalenessInterval
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	lg := cfg.Logger
	if lg == nil {
		lg = utils.NamedLogger("rebalancer")
	}
	return &Rebalancer{
		cfg:       cfg,
		connector: connector,
		rng:       rng,
		lg:        lg,
	}, nil
}

// Config returns the effective configuration of the rebalancer.
func (r *Rebalancer) Config() Config { return r.cfg }

// Run rebalances the cluster until it is balanced, the maximum run time is
// hit or the run stalls. It returns the final status together with the
// number of successfully completed replica moves. A timed out run is not an
// error: the status says RunStatusTimedOut and the error is nil.
func (r *Rebalancer) Run(ctx context.Context) (RunStatus, int, error) {
	var deadline time.Time
	if r.cfg.MaxRunTime > 0 {
		deadline = time.Now().Add(r.cfg.MaxRunTime)
	}
	runner := NewTwoDimensionalGreedyRunner(r, deadline)
	if err := runner.Init(ctx, r.cfg.MasterAddresses); err != nil {
		return RunStatusUnknown, 0, err
	}
	defer runner.Close()
	status, err := r.runWith(ctx, runner, deadline)
	return status, runner.MovesCount(), err
}

// runWith is the scheduling loop: refresh the snapshot, compute a batch,
// schedule moves while capacity allows, poll the in-flight ones, repeat.
// Progress means a move got scheduled or one was seen completing; when a
// full staleness interval passes without any, the in-flight state is dropped
// once and the loop starts over, and a second dry interval ends the run with
// ErrStalled.
func (r *Rebalancer) runWith(ctx context.Context, runner Runner, deadline time.Time) (RunStatus, error) {
	lastProgress := time.Now()
	forgotten := false

	stale := func() bool {
		return time.Since(lastProgress) > r.cfg.MaxStalenessInterval
	}
	progress := func() {
		lastProgress = time.Now()
		forgotten = false
	}
	pastDeadline := func() bool {
		return !deadline.IsZero() && time.Now().After(deadline)
	}

	for {
		if err := ctx.Err(); err != nil {
			return RunStatusUnknown, errors.Wrap(err, "rebalancing interrupted")
		}
		if pastDeadline() {
			return RunStatusTimedOut, nil
		}
		if stale() {
			if forgotten {
				return RunStatusUnknown, errors.Mark(
					errors.Newf("no progress for more than %s, giving up", r.cfg.MaxStalenessInterval),
					ErrStalled)
			}
			// Something outside this run is likely interfering. Drop the
			// tracked moves and start over from the live cluster state.
			r.lg.Printf("no progress for more than %v: dropping %d tracked move(s) and re-syncing",
				r.cfg.MaxStalenessInterval, runner.InProgressCount())
			runner.ForgetInProgress()
			forgotten = true
			lastProgress = time.Now()
		}

		hasMoves, err := runner.GetNextMoves(ctx)
		if err != nil {
			return RunStatusUnknown, err
		}
		if !hasMoves && runner.InProgressCount() == 0 {
			if runner.Balanced() {
				return RunStatusBalanced, nil
			}
			// The algorithm still wants moves, but none could be bound to a
			// tablet right now. Wait for the cluster to change instead of
			// rescanning in a tight loop; the staleness interval bounds how
			// long this can go on.
			if err := sleepCtx(ctx, movePollInterval); err != nil {
				return RunStatusUnknown, errors.Wrap(err, "rebalancing interrupted")
			}
			continue
		}

		// Pump the batch: schedule while the caps allow, then poll.
		for {
			if pastDeadline() {
				return RunStatusTimedOut, nil
			}
			if stale() {
				break
			}
			scheduled, hasErrors, timedOut := runner.ScheduleNextMove(ctx)
			if timedOut {
				return RunStatusTimedOut, nil
			}
			if hasErrors {
				// The failed move is already dropped from the queue. Give the
				// cluster a beat, then refresh the snapshot for fresh
				// candidates.
				if err := sleepCtx(ctx, movePollInterval); err != nil {
					return RunStatusUnknown, errors.Wrap(err, "rebalancing interrupted")
				}
				break
			}
			if scheduled {
				progress()
				continue
			}
			if runner.InProgressCount() == 0 {
				// Nothing schedulable and nothing pending: batch exhausted.
				break
			}
			completed, pending := runner.MovesCount(), runner.InProgressCount()
			reset, hasErrors, timedOut := runner.UpdateMovesInProgressStatus(ctx)
			if runner.MovesCount() > completed || runner.InProgressCount() < pending {
				progress()
			}
			if timedOut {
				if reset {
					runner.ForgetInProgress()
				}
				return RunStatusTimedOut, nil
			}
			if reset {
				runner.ForgetInProgress()
				break
			}
			if hasErrors {
				if err := sleepCtx(ctx, movePollInterval); err != nil {
					return RunStatusUnknown, errors.Wrap(err, "rebalancing interrupted")
				}
				break
			}
			if runner.InProgressCount() < pending {
				// Capacity freed up; try to schedule more right away.
				continue
			}
			if err := sleepCtx(ctx, movePollInterval); err != nil {
				return RunStatusUnknown, errors.Wrap(err, "rebalancing interrupted")
			}
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
