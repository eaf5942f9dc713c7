package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dailai/kudu/pkg/client"
	"github.com/dailai/kudu/pkg/rebalance"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "move tablet replicas until the cluster is balanced",
	Long: `Runs the rebalancing loop: scans the cluster, schedules replica moves under
the per-server concurrency cap and keeps going until the cluster is balanced,
the time limit is reached, or no progress can be made.

Exits with 0 when the cluster ends up balanced and with 2 when the run stops
on the time limit.`,
	Args: cobra.NoArgs,
	RunE: runRebalance,
}

func init() {
	f := runCmd.Flags()
	f.Int("max-moves-per-server", rebalance.DefaultMaxMovesPerServer,
		"maximum number of concurrent replica moves any single tablet server takes part in")
	f.Duration("max-staleness-interval", rebalance.DefaultMaxStalenessInterval,
		"how long the run may go without making progress before re-syncing and, if that does not help, giving up")
	f.Duration("max-run-time", 0,
		"overall time budget for the run; 0 means no limit")
	f.Bool("move-rf1-replicas", false,
		"also move replicas of tables with replication factor 1")
	f.Bool("output-replica-distribution-details", false,
		"print per-server and per-table replica distribution before and after the run")
}

func runRebalance(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	reb, err := rebalance.New(cfg, client.Connector())
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if cfg.OutputReplicaDistributionDetails {
		if err := reb.PrintStats(ctx, os.Stdout); err != nil {
			return err
		}
	}
	status, moves, err := reb.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("rebalancing complete: %d replica move(s) (%s)\n", moves, status)
	if cfg.OutputReplicaDistributionDetails {
		if err := reb.PrintStats(ctx, os.Stdout); err != nil {
			return err
		}
	}
	if status == rebalance.RunStatusTimedOut {
		exitCode = 2
	}
	return nil
}
