package config

import (
	"encoding/json"
	"os"

	"github.com/burakkoc5/falimatik/internal/flagx"
	"github.com/burakkoc5/falimatik/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty values
// leave the current setting unchanged.
type JsonConfig struct {
	ServerURL        string         `json:"server_url"`
	GRPCEndpointAddr string         `json:"grpc_endpoint_addr"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with values loaded from a JSON file. Read and
// unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigPath()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.GRPCEndpointAddr != "" {
		cfg.GRPCEndpointAddr = jc.GRPCEndpointAddr
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
