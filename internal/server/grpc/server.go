// Package grpc serves SlotService: authenticated, per-user slot storage on
// top of any storage.Backend.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/walletcore/internal/logging"
	"github.com/dmitrijs2005/walletcore/internal/slotrpc"
	"github.com/dmitrijs2005/walletcore/internal/storage"
	"google.golang.org/grpc"
)

type SlotServer struct {
	slotrpc.UnimplementedSlotServiceServer
	address   string
	backend   storage.Backend
	logger    logging.Logger
	jwtSecret []byte
}

func NewSlotServer(a string, l logging.Logger, b storage.Backend, secretKey string) *SlotServer {
	return &SlotServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		backend:   b,
		jwtSecret: []byte(secretKey),
	}
}

func (s *SlotServer) newGRPCServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	slotrpc.RegisterSlotServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *SlotServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *SlotServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newGRPCServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
