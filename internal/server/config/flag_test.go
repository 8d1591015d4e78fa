package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-p", "/api/v2", "-r", "postgres", "-d", "db",
				"-s", "secret", "-t", "30", "-m", "50", "-l", "warn",
			},
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:9090",
				APIPrefix:                   "/api/v2",
				DatabaseDriver:              "postgres",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 30 * time.Minute,
				MaxPageSize:                 50,
				LogLevel:                    "warn",
			},
		},
		{
			name: "unset ttl keeps sub-minute value",
			args: []string{"cmd", "-d", "db"},
			expected: &Config{
				DatabaseDSN:                 "db",
				AccessTokenValidityDuration: 30 * time.Second,
			},
		},
		{
			name:        "non-numeric ttl",
			args:        []string{"cmd", "-t", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{AccessTokenValidityDuration: 30 * time.Second}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
