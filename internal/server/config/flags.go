package config

import (
	"flag"
	"os"
	"time"

	"github.com/burakkoc5/falimatik/internal/flagx"
)

var flagNames = []string{"-a", "-g", "-d", "-s", "-t", "-b", "-l"}

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-b string   public base URL for verification links
//	-l string   log level (debug, info, warn, error)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, so -c/-config and unknown flags do not break parsing.
func parseFlags(config *Config) {
	parseFlagArgs(config, os.Args[1:])
}

func parseFlagArgs(config *Config, osArgs []string) {
	args := flagx.FilterArgs(osArgs, flagNames)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port to run server")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	sessionTokenTTL := fs.Int("t", int(config.SessionTokenTTL.Minutes()), "session token validity (in minutes)")
	fs.StringVar(&config.BaseURL, "b", config.BaseURL, "public base URL")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only override when given, so a sub-minute TTL from JSON or env survives
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionTokenTTL = time.Duration(*sessionTokenTTL) * time.Minute
		}
	})
}
