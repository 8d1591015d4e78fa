package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskmaster/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.SecretKey = "test-secret"
	c.DatabaseDSN = "file:" + filepath.Join(t.TempDir(), "app.db") + "?_pragma=foreign_keys(1)"
	c.GinMode = "test"
	c.LogLevel = "error"
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	app, err := NewApp(ctx, testConfig(t))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestNewApp_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		want   string
	}{
		{"empty secret", func(c *config.Config) { c.SecretKey = "" }, "secret key is empty"},
		{"bad log backend", func(c *config.Config) { c.LogBackend = "printf" }, "logger init error"},
		{"bad driver", func(c *config.Config) { c.DatabaseDriver = "oracle" }, "db init error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig(t)
			tt.mutate(c)

			_, err := NewApp(context.Background(), c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewApp_DefaultsRequireSecret(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret key is empty")
}
