package slotrpc

import (
	"context"

	"github.com/dmitrijs2005/walletcore/internal/common"
	"google.golang.org/grpc/metadata"
)

func withHeader(ctx context.Context, key, value string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(key)
	md.Set(key, value)

	return metadata.NewOutgoingContext(ctx, md)
}

// WithSlot attaches the target slot id to an outgoing call.
func WithSlot(ctx context.Context, slot string) context.Context {
	return withHeader(ctx, common.SlotHeaderName, slot)
}

// WithAccessToken attaches the caller's token to an outgoing call.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return withHeader(ctx, common.AccessTokenHeaderName, token)
}

func incomingHeader(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// SlotFromIncoming returns the slot id of an incoming call, or "".
func SlotFromIncoming(ctx context.Context) string {
	return incomingHeader(ctx, common.SlotHeaderName)
}

// AccessTokenFromIncoming returns the token of an incoming call, or "".
func AccessTokenFromIncoming(ctx context.Context) string {
	return incomingHeader(ctx, common.AccessTokenHeaderName)
}
