// Package grpc runs the gRPC edge of the server. The Numbers service sits
// behind the bearer session guard; the standard health service is public.
package grpc

import (
	"context"
	"net"

	"github.com/burakkoc5/falimatik/internal/logging"
	"github.com/burakkoc5/falimatik/internal/numbersrpc"
	"github.com/burakkoc5/falimatik/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Authenticator validates the raw authorization metadata value.
type Authenticator interface {
	Authenticate(header string) (*auth.Claims, error)
}

type GRPCServer struct {
	address string
	guard   Authenticator
	numbers NumbersProvider
	health  *health.Server
	logger  logging.Logger
	public  []string
}

// healthServicePrefix covers every method of grpc.health.v1.Health.
const healthServicePrefix = "/grpc.health.v1.Health/"

func NewGRPCServer(a string, l logging.Logger, guard Authenticator, numbers NumbersProvider) *GRPCServer {
	return &GRPCServer{
		address: a,
		guard:   guard,
		numbers: numbers,
		health:  health.NewServer(),
		logger:  l.With("module", "grpc_server"),
		public:  []string{healthServicePrefix},
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.accessTokenStreamInterceptor),
	)
	numbersrpc.RegisterNumbersServer(srv, &numbersServer{provider: s.numbers, logger: s.logger})
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(numbersrpc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on l until ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, l net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", l.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(l); err != nil {
		return err
	}

	return nil
}
