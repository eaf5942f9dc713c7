package rebalance

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/dailai/kudu/pkg/balance"
	"github.com/dailai/kudu/pkg/cluster"
	"github.com/dailai/kudu/pkg/testcluster"
)

// setPollInterval shortens the driver's poll interval for the duration of a
// test so runs finish quickly.
func setPollInterval(t *testing.T, d time.Duration) {
	t.Helper()
	old := movePollInterval
	movePollInterval = d
	t.Cleanup(func() { movePollInterval = old })
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{}, nil)
	require.Error(t, err)

	_, err = New(Config{MasterAddresses: []string{"master-1:7051"}}, nil)
	require.NoError(t, err)
}

func TestRunBalancedImmediately(t *testing.T) {
	fake := balancedFake()
	reb := testRebalancer(t, Config{}, fake.Connector())

	status, moves, err := reb.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, RunStatusBalanced, status)
	require.Equal(t, 0, moves)
	require.Equal(t, 0, fake.Submissions())
}

func TestRunConvergesToBalance(t *testing.T) {
	setPollInterval(t, 2*time.Millisecond)
	fake := unbalancedFake()
	fake.AddTable("t2", "logs", 1)
	fake.AddTablet("z1", "t2", "a")
	reb := testRebalancer(t, Config{}, fake.Connector())

	status, moves, err := reb.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, RunStatusBalanced, status)
	require.Equal(t, 2, moves)
	require.Equal(t, 2, fake.CompletedMoves())
	require.Equal(t, 0, fake.DoubleMoveAttempts())
	require.LessOrEqual(t, fake.MaxObservedMovesPerServer(), DefaultMaxMovesPerServer)

	// The replication-factor-one table must not have been touched.
	require.Equal(t, []string{"a"}, fake.Replicas("z1"))

	// The final placement satisfies both balance dimensions.
	raw, err := fake.Scan(context.Background(), cluster.ScanFilters{})
	require.NoError(t, err)
	info, err := reb.BuildClusterInfo(raw, nil)
	require.NoError(t, err)
	for _, tbl := range info.Tables {
		require.LessOrEqual(t, balance.TableSkew(tbl, info.Servers), 1)
	}
	require.LessOrEqual(t, balance.TotalSkew(info), 1)
}

func TestRunSkipsRecoveringTablet(t *testing.T) {
	setPollInterval(t, 2*time.Millisecond)
	fake := unbalancedFake()
	fake.SetTabletState("x1", cluster.TabletRecovering)
	reb := testRebalancer(t, Config{}, fake.Connector())

	status, moves, err := reb.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, RunStatusBalanced, status)
	require.Equal(t, 2, moves)

	// The recovering tablet counts toward the distribution but is never
	// chosen to realize a move.
	require.Equal(t, []string{"a", "b"}, fake.Replicas("x1"))
}

func TestRunTimedOut(t *testing.T) {
	setPollInterval(t, 2*time.Millisecond)
	fake := unbalancedFake()
	fake.SetCompleteAfter(testcluster.NeverComplete)
	reb := testRebalancer(t, Config{MaxRunTime: 100 * time.Millisecond}, fake.Connector())

	start := time.Now()
	status, moves, err := reb.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, RunStatusTimedOut, status)
	require.Equal(t, 0, moves)
	require.Less(t, time.Since(start), 3*time.Second)
}

func TestRunStallsWithoutProgress(t *testing.T) {
	setPollInterval(t, 2*time.Millisecond)
	fake := unbalancedFake()
	fake.RejectSubmits("injected rejection")
	reb := testRebalancer(t, Config{MaxStalenessInterval: 50 * time.Millisecond}, fake.Connector())

	status, moves, err := reb.Run(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrStalled))
	require.Equal(t, RunStatusUnknown, status)
	require.Equal(t, 0, moves)
	require.Greater(t, fake.Submissions(), 0)
	require.Equal(t, 0, fake.CompletedMoves())
}

func TestRunRecoversAfterResync(t *testing.T) {
	setPollInterval(t, 2*time.Millisecond)
	fake := unbalancedFake()
	fake.SetCompleteAfter(testcluster.NeverComplete)
	reb := testRebalancer(t, Config{MaxStalenessInterval: 150 * time.Millisecond}, fake.Connector())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	type result struct {
		status RunStatus
		err    error
	}
	done := make(chan result, 1)
	go func() {
		status, _, err := reb.Run(ctx)
		done <- result{status, err}
	}()

	// Let the run burn through its first staleness interval so it drops its
	// in-flight tracking, then have the cluster finish everything and behave
	// normally again. Recovery has to land well before a second interval
	// elapses, or the run gives up for good.
	time.Sleep(200 * time.Millisecond)
	fake.SetCompleteAfter(1)
	fake.CompleteAll()

	res := <-done
	require.NoError(t, res.err)
	require.Equal(t, RunStatusBalanced, res.status)

	raw, err := fake.Scan(context.Background(), cluster.ScanFilters{})
	require.NoError(t, err)
	info, err := reb.BuildClusterInfo(raw, nil)
	require.NoError(t, err)
	for _, tbl := range info.Tables {
		require.LessOrEqual(t, balance.TableSkew(tbl, info.Servers), 1)
	}
	require.LessOrEqual(t, balance.TotalSkew(info), 1)
}

func TestRunInterrupted(t *testing.T) {
	setPollInterval(t, 2*time.Millisecond)
	fake := unbalancedFake()
	fake.SetCompleteAfter(testcluster.NeverComplete)
	reb := testRebalancer(t, Config{}, fake.Connector())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	status, _, err := reb.Run(ctx)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
	require.Equal(t, RunStatusUnknown, status)
}

func TestRunConnectFailure(t *testing.T) {
	connector := cluster.ConnectorFunc(func(ctx context.Context, endpoints []string) (cluster.Client, error) {
		return nil, errors.New("refused")
	})
	reb := testRebalancer(t, Config{}, connector)

	status, _, err := reb.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to connect")
	require.Equal(t, RunStatusUnknown, status)
}

func TestRunScanFailure(t *testing.T) {
	fake := unbalancedFake()
	fake.FailScans(errors.New("scan broke"))
	reb := testRebalancer(t, Config{}, fake.Connector())

	status, _, err := reb.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "health scan failed")
	require.Equal(t, RunStatusUnknown, status)
}
