package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/burakkoc5/falimatik/internal/numbersrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// GRPCClient talks to the server's gRPC endpoint: the public health service
// and the session guarded Numbers service.
type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	health      healthpb.HealthClient
	numbers     numbersrpc.NumbersClient
}

func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}

	return &GRPCClient{
		endpointURL: endpointURL,
		conn:        conn,
		health:      healthpb.NewHealthClient(conn),
		numbers:     numbersrpc.NewNumbersClient(conn),
	}, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// Ping succeeds when the server reports SERVING. Transport failures map to
// ErrUnavailable.
func (c *GRPCClient) Ping(ctx context.Context) error {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return mapStatus(err)
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: status %s", ErrUnavailable, resp.GetStatus())
	}
	return nil
}

// DailyNumbers fetches the power number of date (YYYY-MM-DD, empty for today).
func (c *GRPCClient) DailyNumbers(ctx context.Context, accessToken, date string) (*Numbers, error) {
	resp, err := c.numbers.Daily(withBearer(ctx, accessToken), wrapperspb.String(date))
	if err != nil {
		return nil, mapStatus(err)
	}
	return numbersFrom(resp), nil
}

// LuckyNumbers fetches the personal numbers of the session's user.
func (c *GRPCClient) LuckyNumbers(ctx context.Context, accessToken, date string) (*Numbers, error) {
	resp, err := c.numbers.Lucky(withBearer(ctx, accessToken), wrapperspb.String(date))
	if err != nil {
		return nil, mapStatus(err)
	}
	return numbersFrom(resp), nil
}

func withBearer(ctx context.Context, accessToken string) context.Context {
	return metadata.AppendToOutgoingContext(ctx,
		strings.ToLower(common.AuthorizationHeaderName), common.BearerScheme+" "+accessToken)
}

func numbersFrom(s *structpb.Struct) *Numbers {
	f := s.GetFields()
	return &Numbers{
		Date:    f[numbersrpc.FieldDate].GetStringValue(),
		Power:   f[numbersrpc.FieldPower].GetStringValue(),
		Love:    f[numbersrpc.FieldLove].GetStringValue(),
		Career:  f[numbersrpc.FieldCareer].GetStringValue(),
		Health:  f[numbersrpc.FieldHealth].GetStringValue(),
		Finance: f[numbersrpc.FieldFinance].GetStringValue(),
	}
}

func mapStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.InvalidArgument:
		return &APIError{Status: http.StatusBadRequest, Message: st.Message()}
	case codes.NotFound:
		return &APIError{Status: http.StatusNotFound, Message: st.Message()}
	default:
		return err
	}
}
