package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/burakkoc5/falimatik/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// authenticate checks the authorization metadata of a non-public call and
// returns ctx carrying the session claims. Every failure is the same
// Unauthenticated status; the reason is only logged.
func (s *GRPCServer) authenticate(ctx context.Context, method string) (context.Context, error) {
	if s.isPublic(method) {
		return ctx, nil
	}

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(strings.ToLower(common.AuthorizationHeaderName))
		if len(values) > 0 {
			header = values[0]
		}
	}

	claims, err := s.guard.Authenticate(header)
	if err != nil {
		var ge *auth.GuardError
		if errors.As(err, &ge) {
			s.logger.Warn(ctx, "unauthenticated call", "method", method, "reason", string(ge.Reason), "error", ge.Err)
		} else {
			s.logger.Warn(ctx, "unauthenticated call", "method", method, "error", err)
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrUnauthenticated.Error())
	}

	return auth.WithClaims(ctx, claims), nil
}

func (s *GRPCServer) isPublic(method string) bool {
	for _, p := range s.public {
		if strings.HasPrefix(method, p) {
			return true
		}
	}
	return false
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	ctx, err := s.authenticate(ctx, info.FullMethod)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

type authedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (a *authedStream) Context() context.Context { return a.ctx }

func (s *GRPCServer) accessTokenStreamInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx, err := s.authenticate(ss.Context(), info.FullMethod)
	if err != nil {
		return err
	}
	return handler(srv, &authedStream{ServerStream: ss, ctx: ctx})
}
