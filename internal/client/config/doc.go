// Package config loads runtime configuration for the Falimatik CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c/-config or FALIMATIK_CONFIG.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string   base URL of the HTTP API
//	-a string   address:port of the gRPC health endpoint
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "grpc_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "10s"
//	}
package config
