package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/burakkoc5/falimatik/internal/logging"
	"github.com/burakkoc5/falimatik/internal/numbersrpc"
	"github.com/burakkoc5/falimatik/internal/server/auth"
	"github.com/burakkoc5/falimatik/internal/server/numbers"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// NumbersProvider computes the numbers served by the Numbers service.
type NumbersProvider interface {
	Daily(ctx context.Context, date time.Time) numbers.Daily
	Personal(ctx context.Context, userID string, date time.Time) (*numbers.Personal, error)
}

type numbersServer struct {
	provider NumbersProvider
	logger   logging.Logger
}

func (s *numbersServer) Daily(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	date, err := numbers.ParseDate(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	d := s.provider.Daily(ctx, date)
	return toStruct(map[string]any{
		numbersrpc.FieldDate:  d.Date.Format(numbers.DateLayout),
		numbersrpc.FieldPower: d.Power,
	})
}

func (s *numbersServer) Lucky(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.ErrUnauthenticated.Error())
	}

	date, err := numbers.ParseDate(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	p, err := s.provider.Personal(ctx, claims.UserID(), date)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toStruct(map[string]any{
		numbersrpc.FieldDate:    p.Date.Format(numbers.DateLayout),
		numbersrpc.FieldPower:   p.Power,
		numbersrpc.FieldLove:    p.Love,
		numbersrpc.FieldCareer:  p.Career,
		numbersrpc.FieldHealth:  p.Health,
		numbersrpc.FieldFinance: p.Finance,
	})
}

func (s *numbersServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "user not found")
	default:
		s.logger.Error(ctx, "numbers call failed", "error", err)
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, common.ErrorInternal.Error())
	}
	return st, nil
}
