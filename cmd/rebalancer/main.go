// Command rebalancer evens out the replica distribution of a tablet cluster
// by moving tablet replicas between tablet servers.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dailai/kudu/pkg/rebalance"
)

var rootCmd = &cobra.Command{
	Use:   "rebalancer",
	Short: "rebalance tablet replica distribution across a cluster",
	Long: `The rebalancer moves tablet replicas between tablet servers to even out
the number of replicas per server, both for every table and for the cluster
as a whole.`,
	SilenceUsage: true,
}

// exitCode is what main exits with when command execution itself succeeds.
// The run command sets it to 2 when rebalancing stops on the time limit.
var exitCode int

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to a YAML configuration file")
	pf.StringSlice("masters", nil, "comma-separated list of master addresses")
	pf.StringSlice("tables", nil, "rebalance only the tables with the given names")
	rootCmd.AddCommand(runCmd, reportCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// resolveConfig builds the effective configuration: defaults, then the
// configuration file if one is given, then any flags changed on the command
// line. Flags a command does not define are simply left alone.
func resolveConfig(cmd *cobra.Command) (rebalance.Config, error) {
	cfg := rebalance.DefaultConfig()
	f := cmd.Flags()
	if path, err := f.GetString("config"); err == nil && path != "" {
		cfg, err = rebalance.LoadConfig(path)
		if err != nil {
			return rebalance.Config{}, err
		}
	}
	if f.Changed("masters") {
		cfg.MasterAddresses, _ = f.GetStringSlice("masters")
	}
	if f.Changed("tables") {
		cfg.TableFilters, _ = f.GetStringSlice("tables")
	}
	if f.Changed("max-moves-per-server") {
		cfg.MaxMovesPerServer, _ = f.GetInt("max-moves-per-server")
	}
	if f.Changed("max-staleness-interval") {
		cfg.MaxStalenessInterval, _ = f.GetDuration("max-staleness-interval")
	}
	if f.Changed("max-run-time") {
		cfg.MaxRunTime, _ = f.GetDuration("max-run-time")
	}
	if f.Changed("move-rf1-replicas") {
		cfg.MoveRF1Replicas, _ = f.GetBool("move-rf1-replicas")
	}
	if f.Changed("output-replica-distribution-details") {
		cfg.OutputReplicaDistributionDetails, _ = f.GetBool("output-replica-distribution-details")
	}
	return cfg, nil
}
