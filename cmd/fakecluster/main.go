// Command fakecluster serves an in-memory tablet cluster over gRPC. It gives
// the rebalancer CLI something to talk to without standing up a real cluster:
//
//	fakecluster -address localhost:7051 &
//	rebalancer run --masters localhost:7051
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc/reflection"

	"github.com/dailai/kudu/pkg/testcluster"
	"github.com/dailai/kudu/pkg/utils"
)

func main() {
	address := flag.String("address", "localhost:7051", "address to listen on")
	servers := flag.Int("servers", 5, "number of tablet servers")
	tables := flag.Int("tables", 2, "number of tables")
	tablets := flag.Int("tablets", 8, "number of tablets per table")
	rf := flag.Int("rf", 3, "replication factor of every table")
	movePolls := flag.Int("move-polls", 1, "number of status polls before a replica move completes")
	flag.Parse()

	lg := utils.NamedLogger("fakecluster")
	if *rf < 1 || *servers < *rf {
		flag.Usage()
		lg.Fatalf("Replication factor %d does not fit %d tablet server(s)", *rf, *servers)
	}

	fake := buildCluster(*servers, *tables, *tablets, *rf)
	fake.SetCompleteAfter(*movePolls)
	srv := testcluster.NewServer(fake, lg)
	reflection.Register(srv)

	lis, err := net.Listen("tcp", *address)
	if err != nil {
		lg.Fatalf("Failed to listen on %s: %v", *address, err)
	}
	lg.Printf("serving %d tablet server(s), %d table(s), %d tablet(s) on %s",
		*servers, *tables, (*tables)*(*tablets), lis.Addr())
	go func() {
		if err := srv.Serve(lis); err != nil {
			lg.Fatalf("Failed to serve: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	lg.Printf("shutting down")
	srv.GracefulStop()
}

// buildCluster seeds a deliberately skewed cluster: every replica starts on
// the first rf servers, leaving the rest for the rebalancer to fill.
func buildCluster(servers, tables, tablets, rf int) *testcluster.Cluster {
	fake := testcluster.New()
	for i := 1; i <= servers; i++ {
		id := fmt.Sprintf("ts-%d", i)
		fake.AddServer(id, id+":7050")
	}
	hosts := make([]string, rf)
	for r := range hosts {
		hosts[r] = fmt.Sprintf("ts-%d", r+1)
	}
	for t := 1; t <= tables; t++ {
		tableID := fmt.Sprintf("table-%d", t)
		fake.AddTable(tableID, fmt.Sprintf("demo-%d", t), rf)
		for n := 1; n <= tablets; n++ {
			fake.AddTablet(fmt.Sprintf("%s-tablet-%d", tableID, n), tableID, hosts...)
		}
	}
	return fake
}
