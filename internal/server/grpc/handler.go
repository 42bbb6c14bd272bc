package grpc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/walletcore/internal/common"
	"github.com/dmitrijs2005/walletcore/internal/slotrpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const maxNameLength = 255

// ValidateName accepts a user id or slot id: a single path element usable
// as a file name, a table key and an object key alike.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("invalid name %q", name)
	case len(name) > maxNameLength:
		return fmt.Errorf("name longer than %d bytes", maxNameLength)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}

// backendSlot maps the caller's slot to the namespaced backend slot.
func (s *SlotServer) backendSlot(ctx context.Context) (string, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing user")
	}

	slot := slotrpc.SlotFromIncoming(ctx)
	if err := ValidateName(slot); err != nil {
		return "", status.Error(codes.InvalidArgument, err.Error())
	}

	return userID + "/" + slot, nil
}

func (s *SlotServer) storageError(ctx context.Context, op, slot string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return status.Error(codes.NotFound, "slot not found")
	}
	s.logger.Error(ctx, "slot operation failed", "op", op, "slot", slot, "error", err.Error())
	return status.Error(codes.Internal, "storage error")
}

func (s *SlotServer) Exists(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	slot, err := s.backendSlot(ctx)
	if err != nil {
		return nil, err
	}

	ok, err := s.backend.Exists(ctx, slot)
	if err != nil {
		return nil, s.storageError(ctx, "exists", slot, err)
	}
	return wrapperspb.Bool(ok), nil
}

func (s *SlotServer) Read(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	slot, err := s.backendSlot(ctx)
	if err != nil {
		return nil, err
	}

	data, err := s.backend.Read(ctx, slot)
	if err != nil {
		return nil, s.storageError(ctx, "read", slot, err)
	}
	return wrapperspb.Bytes(data), nil
}

func (s *SlotServer) Write(ctx context.Context, in *wrapperspb.BytesValue) (*emptypb.Empty, error) {
	slot, err := s.backendSlot(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.backend.Write(ctx, slot, in.GetValue()); err != nil {
		return nil, s.storageError(ctx, "write", slot, err)
	}

	s.logger.Info(ctx, "slot written", "slot", slot, "bytes", len(in.GetValue()))
	return &emptypb.Empty{}, nil
}
