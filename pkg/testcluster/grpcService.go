package testcluster

import (
	"context"
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dailai/kudu/pkg/cluster"
	pb "github.com/dailai/kudu/pkg/clusterpb"
	"github.com/dailai/kudu/pkg/utils"
)

// Service exposes a Cluster over the health-scan and consensus-admin gRPC
// services, so wire clients can be tested end to end.
type Service struct {
	pb.UnimplementedClusterHealthServer
	pb.UnimplementedConsensusAdminServer
	c *Cluster
}

// Register registers the cluster services on the given gRPC server.
func Register(s *grpc.Server, c *Cluster) {
	svc := &Service{c: c}
	pb.RegisterClusterHealthServer(s, svc)
	pb.RegisterConsensusAdminServer(s, svc)
}

// NewServer returns a gRPC server with the cluster services registered and
// request logging attached.
func NewServer(c *Cluster, lg *log.Logger) *grpc.Server {
	s := grpc.NewServer(grpc.UnaryInterceptor(utils.UnaryLogging(lg)))
	Register(s, c)
	return s
}

func (s *Service) Scan(ctx context.Context, req *pb.ScanRequest) (*pb.ScanResponse, error) {
	raw, err := s.c.Scan(ctx, cluster.ScanFilters{Tables: req.GetTables()})
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "cluster scan: %v", err)
	}
	return pb.RawInfoToProto(raw), nil
}

func (s *Service) MoveReplica(ctx context.Context, req *pb.MoveReplicaRequest) (*pb.MoveReplicaResponse, error) {
	check := pb.VersionCheckFromProto(req.GetExpectedConfig())
	err := s.c.SubmitReplicaMove(ctx, req.GetTabletId(), req.GetFromServer(), req.GetToServer(), check)
	if err != nil {
		return nil, status.Errorf(codes.FailedPrecondition, "%v", err)
	}
	return &pb.MoveReplicaResponse{}, nil
}

func (s *Service) GetMoveStatus(ctx context.Context, req *pb.MoveStatusRequest) (*pb.MoveStatusResponse, error) {
	rep, err := s.c.PollMoveStatus(ctx, req.GetTabletId())
	if err != nil {
		return nil, status.Errorf(codes.NotFound, "%v", err)
	}
	return &pb.MoveStatusResponse{
		State: pb.MoveStatusToProto(rep.Status),
		Error: rep.Reason,
	}, nil
}
