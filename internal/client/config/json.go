package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/taskmaster/internal/flagx"
	"github.com/dmitrijs2005/taskmaster/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config. Missing keys leave the current values alone. Read and decode
// errors panic.
func parseJson(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	jc := &JsonConfig{}
	if err := json.Unmarshal(data, jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		config.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout.Duration > 0 {
		config.RequestTimeout = jc.RequestTimeout.Duration
	}
}
