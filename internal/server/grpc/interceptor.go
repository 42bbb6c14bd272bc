package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/walletcore/internal/common"
	"github.com/dmitrijs2005/walletcore/internal/server/auth"
	"github.com/dmitrijs2005/walletcore/internal/slotrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

func userIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok && v != ""
}

func (s *SlotServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !strings.HasPrefix(info.FullMethod, "/"+slotrpc.ServiceName+"/") {
		return handler(ctx, req)
	}

	accessToken := slotrpc.AccessTokenFromIncoming(ctx)
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if errors.Is(err, common.ErrTokenExpired) {
		return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}
	if err := ValidateName(userID); err != nil {
		return nil, status.Error(codes.PermissionDenied, "user id is not usable as a slot namespace")
	}

	ctx = context.WithValue(ctx, userIDKey, userID)
	return handler(ctx, req)
}
