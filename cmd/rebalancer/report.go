package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dailai/kudu/pkg/client"
	"github.com/dailai/kudu/pkg/rebalance"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "print the replica distribution of the cluster",
	Long: `Scans the cluster and prints per-server and per-table replica distribution
statistics without moving anything.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().Bool("output-replica-distribution-details", false,
		"include per-server and per-table detail tables in the output")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	reb, err := rebalance.New(cfg, client.Connector())
	if err != nil {
		return err
	}
	return reb.PrintStats(cmd.Context(), os.Stdout)
}
