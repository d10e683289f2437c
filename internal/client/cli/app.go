package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"

	"github.com/burakkoc5/falimatik/internal/client/client"
	"github.com/burakkoc5/falimatik/internal/client/config"
)

// RPC is the gRPC side of the server: health and the numbers service.
type RPC interface {
	Ping(ctx context.Context) error
	DailyNumbers(ctx context.Context, accessToken, date string) (*client.Numbers, error)
	LuckyNumbers(ctx context.Context, accessToken, date string) (*client.Numbers, error)
	Close() error
}

type App struct {
	config  *config.Config
	api     client.Client
	rpc     RPC
	reader  *bufio.Reader
	out     io.Writer
	email   string
	session string
}

func NewApp(c *config.Config) (*App, error) {
	rpc, err := client.NewGRPCClient(c.GRPCEndpointAddr)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		api:    client.NewHTTPClient(c.ServerURL, c.RequestTimeout),
		rpc:    rpc,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.rpc.Close(); err != nil {
			log.Printf("close grpc client: %v", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session != ""
}

func (a *App) getStatus() string {
	if a.email == "" {
		return ""
	}
	return "(" + a.email + ")"
}
