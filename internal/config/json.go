package config

import (
	"encoding/json"
	"os"

	"github.com/slackconnect/cli/internal/flagx"
	"github.com/slackconnect/cli/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Durations
// rely on timex.Duration so the file can say "30s" or integer nanoseconds.
type JSONConfig struct {
	BaseURL            string         `json:"base_url"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	DatabasePath       string         `json:"database_path"`
	TokenCheckInterval timex.Duration `json:"token_check_interval"`
	NoPersist          bool           `json:"no_persist"`
}

// parseJSON overlays Config with values loaded from a JSON file selected via
// the -c/-config flags. Missing flag means no JSON is loaded. Unset fields
// in the file keep their earlier values. Panics on read or unmarshal errors.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.TokenCheckInterval.Duration != 0 {
		cfg.TokenCheckInterval = jc.TokenCheckInterval.Duration
	}
	if jc.NoPersist {
		cfg.NoPersist = true
	}
}
