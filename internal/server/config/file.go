package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/taskmaster/internal/flagx"
	"github.com/dmitrijs2005/taskmaster/internal/timex"
	"go.yaml.in/yaml/v3"
)

// FileConfig is the on-disk shape of the configuration, used only for
// decoding. Durations accept "15m" style strings or integer nanoseconds.
// Zero values mean "not set" and leave the current setting alone.
type FileConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	APIPrefix                   string         `json:"api_prefix" yaml:"api_prefix"`
	DatabaseDriver              string         `json:"database_driver" yaml:"database_driver"`
	DatabaseDSN                 string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                   string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	MaxPageSize                 int            `json:"max_page_size" yaml:"max_page_size"`
	LogBackend                  string         `json:"log_backend" yaml:"log_backend"`
	LogLevel                    string         `json:"log_level" yaml:"log_level"`
	GinMode                     string         `json:"gin_mode" yaml:"gin_mode"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// parseFile overlays values from the file named by -c/-config.
// The format is picked from the extension: .yaml and .yml are YAML,
// anything else is JSON. Unreadable or invalid files panic, like flags do.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc, err := decodeFile(path, data)
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}

func decodeFile(path string, data []byte) (*FileConfig, error) {
	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, fc); err != nil {
			return nil, fmt.Errorf("yaml config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, fc); err != nil {
			return nil, fmt.Errorf("json config %s: %w", path, err)
		}
	}
	return fc, nil
}

func (fc *FileConfig) apply(c *Config) {
	setString(&c.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setString(&c.APIPrefix, fc.APIPrefix)
	setString(&c.DatabaseDriver, fc.DatabaseDriver)
	setString(&c.DatabaseDSN, fc.DatabaseDSN)
	setString(&c.SecretKey, fc.SecretKey)
	setString(&c.LogBackend, fc.LogBackend)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.GinMode, fc.GinMode)
	if fc.AccessTokenValidityDuration.Duration > 0 {
		c.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.ShutdownTimeout.Duration > 0 {
		c.ShutdownTimeout = fc.ShutdownTimeout.Duration
	}
	if fc.MaxPageSize > 0 {
		c.MaxPageSize = fc.MaxPageSize
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
