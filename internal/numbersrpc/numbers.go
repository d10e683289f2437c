// Package numbersrpc describes the falimatik.numbers.v1.Numbers gRPC service.
// Messages are protobuf well-known types: requests carry the date as a
// StringValue in YYYY-MM-DD form (empty for today) and replies are a Struct
// whose fields are the numbers keyed by name.
package numbersrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "falimatik.numbers.v1.Numbers"

	DailyFullMethodName = "/" + ServiceName + "/Daily"
	LuckyFullMethodName = "/" + ServiceName + "/Lucky"
)

// Reply field names.
const (
	FieldDate    = "date"
	FieldPower   = "power_number"
	FieldLove    = "love_number"
	FieldCareer  = "career_number"
	FieldHealth  = "health_number"
	FieldFinance = "finance_number"
)

// NumbersServer is the server API of the Numbers service. Both methods
// require a bearer session.
type NumbersServer interface {
	// Daily returns the power number shared by all users.
	Daily(ctx context.Context, date *wrapperspb.StringValue) (*structpb.Struct, error)
	// Lucky returns the personal numbers of the authenticated user.
	Lucky(ctx context.Context, date *wrapperspb.StringValue) (*structpb.Struct, error)
}

func RegisterNumbersServer(s grpc.ServiceRegistrar, srv NumbersServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func dailyHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NumbersServer).Daily(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: DailyFullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NumbersServer).Daily(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func luckyHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NumbersServer).Lucky(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: LuckyFullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NumbersServer).Lucky(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc is the grpc.ServiceDesc for the Numbers service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NumbersServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Daily", Handler: dailyHandler},
		{MethodName: "Lucky", Handler: luckyHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "falimatik/numbers/v1/numbers.proto",
}

// NumbersClient is the client API of the Numbers service.
type NumbersClient interface {
	Daily(ctx context.Context, date *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	Lucky(ctx context.Context, date *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type numbersClient struct {
	cc grpc.ClientConnInterface
}

func NewNumbersClient(cc grpc.ClientConnInterface) NumbersClient {
	return &numbersClient{cc: cc}
}

func (c *numbersClient) Daily(ctx context.Context, date *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DailyFullMethodName, date, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *numbersClient) Lucky(ctx context.Context, date *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, LuckyFullMethodName, date, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
