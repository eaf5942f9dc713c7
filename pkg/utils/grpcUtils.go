package utils

import (
	"context"
	"log"

	"google.golang.org/grpc"
)

// UnaryLogging returns a server interceptor that logs every unary RPC and
// any error it produced.
func UnaryLogging(lg *log.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		lg.Printf("rpc %s: %v", info.FullMethod, req)
		resp, err := handler(ctx, req)
		if err != nil {
			lg.Printf("rpc %s failed: %v", info.FullMethod, err)
		}
		return resp, err
	}
}
