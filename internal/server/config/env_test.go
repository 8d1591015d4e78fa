package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv("TASKMASTER_ENDPOINT_ADDR_HTTP", ":9999")
	t.Setenv("TASKMASTER_ACCESS_TOKEN_VALIDITY_DURATION", "2h")
	t.Setenv("TASKMASTER_MAX_PAGE_SIZE", "10")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddrHTTP)
	assert.Equal(t, 2*time.Hour, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 10, cfg.MaxPageSize)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver, "unset variables keep current value")
}

func Test_parseEnv_InvalidValuePanics(t *testing.T) {
	t.Setenv("TASKMASTER_MAX_PAGE_SIZE", "lots")

	require.Panics(t, func() { parseEnv(&Config{}) })
}
