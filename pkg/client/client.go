// Package client provides the gRPC-backed cluster client used by the
// rebalancer: health scans go to the ClusterHealth service, replica moves to
// the ConsensusAdmin service.
package client

import (
	"context"

	"github.com/cockroachdb/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/resolver"
	"google.golang.org/grpc/resolver/manual"

	"github.com/dailai/kudu/pkg/cluster"
	pb "github.com/dailai/kudu/pkg/clusterpb"
)

// Client talks to a live cluster over gRPC.
type Client struct {
	conn   *grpc.ClientConn
	health pb.ClusterHealthClient
	admin  pb.ConsensusAdminClient
}

// Connect builds a client for the given master endpoints. With more than one
// endpoint the requests round-robin across them. Connecting is lazy: the
// first RPC is where an unreachable cluster shows up.
func Connect(ctx context.Context, endpoints []string) (*Client, error) {
	if len(endpoints) == 0 {
		return nil, errors.New("no cluster endpoints given")
	}
	rb := manual.NewBuilderWithScheme("cluster")
	addrs := make([]resolver.Address, 0, len(endpoints))
	for _, ep := range endpoints {
		addrs = append(addrs, resolver.Address{Addr: ep})
	}
	rb.InitialState(resolver.State{Addresses: addrs})
	conn, err := grpc.NewClient(rb.Scheme()+":///masters",
		grpc.WithResolvers(rb),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultServiceConfig(`{"loadBalancingConfig": [{"round_robin":{}}]}`),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cluster connection")
	}
	return &Client{
		conn:   conn,
		health: pb.NewClusterHealthClient(conn),
		admin:  pb.NewConsensusAdminClient(conn),
	}, nil
}

// Connector adapts Connect to the cluster.Connector interface.
func Connector() cluster.Connector {
	return cluster.ConnectorFunc(func(ctx context.Context, endpoints []string) (cluster.Client, error) {
		return Connect(ctx, endpoints)
	})
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Scan runs a health scan and converts the response into the snapshot model.
func (c *Client) Scan(ctx context.Context, filters cluster.ScanFilters) (*cluster.RawInfo, error) {
	resp, err := c.health.Scan(ctx, &pb.ScanRequest{Tables: filters.Tables})
	if err != nil {
		return nil, errors.Wrap(err, "health scan RPC failed")
	}
	return pb.RawInfoFromProto(resp), nil
}

// SubmitReplicaMove asks the cluster to relocate one replica of a tablet.
func (c *Client) SubmitReplicaMove(ctx context.Context, tabletID, from, to string, check cluster.VersionCheck) error {
	req := &pb.MoveReplicaRequest{
		TabletId:       tabletID,
		FromServer:     from,
		ToServer:       to,
		ExpectedConfig: pb.VersionCheckToProto(check),
	}
	if _, err := c.admin.MoveReplica(ctx, req); err != nil {
		return errors.Wrapf(err, "failed to start move of tablet %s", tabletID)
	}
	return nil
}

// PollMoveStatus reports the state of a previously submitted move.
func (c *Client) PollMoveStatus(ctx context.Context, tabletID string) (cluster.MoveReport, error) {
	resp, err := c.admin.GetMoveStatus(ctx, &pb.MoveStatusRequest{TabletId: tabletID})
	if err != nil {
		return cluster.MoveReport{}, errors.Wrapf(err, "failed to get status of the move of tablet %s", tabletID)
	}
	return cluster.MoveReport{
		Status: pb.MoveStatusFromProto(resp.GetState()),
		Reason: resp.GetError(),
	}, nil
}
