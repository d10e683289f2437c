package config

import (
	"flag"
	"os"
	"time"

	"github.com/burakkoc5/falimatik/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   base URL of the HTTP API
//	-a string   address and port of the gRPC health endpoint
//	-t int      request timeout in seconds
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-a", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "base URL of the server HTTP API")
	fs.StringVar(&cfg.GRPCEndpointAddr, "a", cfg.GRPCEndpointAddr, "address and port of the server gRPC endpoint")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
