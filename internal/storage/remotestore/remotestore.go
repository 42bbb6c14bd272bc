// Package remotestore is a slot backend that forwards every operation to a
// slot server over gRPC. Slots are namespaced per user on the server side,
// so the same slot id from two tokens never collides.
package remotestore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/walletcore/internal/common"
	"github.com/dmitrijs2005/walletcore/internal/logging"
	"github.com/dmitrijs2005/walletcore/internal/slotrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type Store struct {
	conn        *grpc.ClientConn
	client      slotrpc.SlotServiceClient
	accessToken string
	log         logging.Logger
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// New dials the slot server at addr. Every call carries accessToken.
func New(addr, accessToken string, opts ...Option) (*Store, error) {
	s := newStore(nil, accessToken, opts...)

	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return nil, fmt.Errorf("dial slot server: %w", err)
	}

	s.conn = conn
	s.client = slotrpc.NewSlotServiceClient(conn)
	return s, nil
}

func newStore(client slotrpc.SlotServiceClient, accessToken string, opts ...Option) *Store {
	s := &Store{
		client:      client,
		accessToken: accessToken,
		log:         logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = slotrpc.WithAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// Close releases the connection. It is a no-op for stores built around an
// externally owned client.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// mapError turns gRPC status codes into the sentinels backends report.
func mapError(op string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch st.Code() {
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%s: %w: %s", op, common.ErrorUnauthorized, st.Message())
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func (s *Store) Exists(ctx context.Context, slot string) (bool, error) {
	resp, err := s.client.Exists(slotrpc.WithSlot(ctx, slot), &emptypb.Empty{})
	if err != nil {
		return false, mapError("exists", err)
	}
	return resp.GetValue(), nil
}

func (s *Store) Read(ctx context.Context, slot string) ([]byte, error) {
	resp, err := s.client.Read(slotrpc.WithSlot(ctx, slot), &emptypb.Empty{})
	if err != nil {
		return nil, mapError("read", err)
	}
	return resp.GetValue(), nil
}

func (s *Store) Write(ctx context.Context, slot string, data []byte) error {
	if _, err := s.client.Write(slotrpc.WithSlot(ctx, slot), wrapperspb.Bytes(data)); err != nil {
		return mapError("write", err)
	}

	s.log.Debug(ctx, "wallet blob sent to slot server", "slot", slot, "bytes", len(data))
	return nil
}
