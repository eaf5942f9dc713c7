package rebalance

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/dailai/kudu/pkg/balance"
	"github.com/dailai/kudu/pkg/cluster"
)

// PrintStats scans the cluster and writes replica distribution statistics to
// w. With OutputReplicaDistributionDetails set, per-server and per-table
// breakdowns are included.
func (r *Rebalancer) PrintStats(ctx context.Context, w io.Writer) error {
	client, err := r.connector.Connect(ctx, r.cfg.MasterAddresses)
	if err != nil {
		return errors.Wrap(err, "failed to connect to the cluster")
	}
	defer client.Close()
	raw, err := client.Scan(ctx, cluster.ScanFilters{Tables: r.cfg.TableFilters})
	if err != nil {
		return errors.Wrap(err, "cluster health scan failed")
	}
	return WriteStats(w, raw, r.cfg.OutputReplicaDistributionDetails)
}

// WriteStats renders replica distribution statistics for a snapshot.
func WriteStats(w io.Writer, raw *cluster.RawInfo, details bool) error {
	if err := raw.Validate(); err != nil {
		return errors.Wrap(err, "inconsistent cluster snapshot")
	}

	perServer := make(map[string]int, len(raw.Servers))
	sizePerServer := make(map[string]int64, len(raw.Servers))
	perTable := make(map[string]*balance.TableInfo, len(raw.Tables))
	tabletsPerTable := make(map[string]int, len(raw.Tables))
	servers := make([]string, 0, len(raw.Servers))
	for _, s := range raw.Servers {
		servers = append(servers, s.ID)
		perServer[s.ID] = 0
	}
	for _, t := range raw.Tables {
		perTable[t.ID] = &balance.TableInfo{
			ID:               t.ID,
			Name:             t.Name,
			ReplicasByServer: make(map[string]int),
		}
	}
	for i := range raw.Tablets {
		t := &raw.Tablets[i]
		tabletsPerTable[t.TableID]++
		for _, rep := range t.Replicas {
			perServer[rep.ServerID]++
			sizePerServer[rep.ServerID] += t.SizeBytes
			perTable[t.TableID].ReplicasByServer[rep.ServerID]++
		}
	}

	fmt.Fprintf(w, "Cluster: %s\n\n", raw)

	fmt.Fprintln(w, "Per-server replica distribution summary:")
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Statistic", "Value"})
	minR, maxR, total := minMaxTotal(perServer, servers)
	avg := 0.0
	if len(servers) > 0 {
		avg = float64(total) / float64(len(servers))
	}
	tw.Append([]string{"Minimum Replica Count", strconv.Itoa(minR)})
	tw.Append([]string{"Maximum Replica Count", strconv.Itoa(maxR)})
	tw.Append([]string{"Average Replica Count", fmt.Sprintf("%.6f", avg)})
	tw.Render()
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Per-table replica distribution summary:")
	tw = tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Replica Skew", "Value"})
	minS, maxS, totalS := tableSkews(perTable, servers)
	avgS := 0.0
	if len(perTable) > 0 {
		avgS = float64(totalS) / float64(len(perTable))
	}
	tw.Append([]string{"Minimum", strconv.Itoa(minS)})
	tw.Append([]string{"Maximum", strconv.Itoa(maxS)})
	tw.Append([]string{"Average", fmt.Sprintf("%.6f", avgS)})
	tw.Render()

	if !details {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Per-server replica distribution details:")
	tw = tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Server ID", "Address", "Replicas", "Data Size"})
	for _, s := range raw.Servers {
		tw.Append([]string{
			s.ID,
			s.Address,
			strconv.Itoa(perServer[s.ID]),
			humanize.IBytes(uint64(sizePerServer[s.ID])),
		})
	}
	tw.Render()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Per-table replica distribution details:")
	tw = tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Table ID", "Name", "RF", "Tablets", "Replicas", "Skew"})
	for _, t := range raw.Tables {
		info := perTable[t.ID]
		replicas := 0
		for _, n := range info.ReplicasByServer {
			replicas += n
		}
		tw.Append([]string{
			t.ID,
			t.Name,
			strconv.Itoa(t.ReplicationFactor),
			strconv.Itoa(tabletsPerTable[t.ID]),
			strconv.Itoa(replicas),
			strconv.Itoa(balance.TableSkew(*info, servers)),
		})
	}
	tw.Render()
	return nil
}

func minMaxTotal(counts map[string]int, servers []string) (minC, maxC, total int) {
	for i, s := range servers {
		n := counts[s]
		if i == 0 || n < minC {
			minC = n
		}
		if i == 0 || n > maxC {
			maxC = n
		}
		total += n
	}
	return minC, maxC, total
}

func tableSkews(tables map[string]*balance.TableInfo, servers []string) (minS, maxS, total int) {
	first := true
	for _, t := range tables {
		sk := balance.TableSkew(*t, servers)
		if first || sk < minS {
			minS = sk
		}
		if first || sk > maxS {
			maxS = sk
		}
		total += sk
		first = false
	}
	return minS, maxS, total
}
