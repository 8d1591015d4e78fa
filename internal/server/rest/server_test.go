package rest

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskmaster/internal/logging"
	"github.com/dmitrijs2005/taskmaster/internal/server/auth"
	"github.com/dmitrijs2005/taskmaster/internal/server/services"
	"github.com/dmitrijs2005/taskmaster/internal/server/testdb"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelcomeAndPing(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doJSON(t, h, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Welcome to TaskMaster API"}`, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/ping", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestNoRoute(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doJSON(t, h, http.MethodGet, prefix+"/nowhere", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, codeNotFound, decode[errorResponse](t, rec).Code)
}

func TestPanicIsInternalError(t *testing.T) {
	s := newTestServer(t)
	s.engine.GET("/boom", func(*gin.Context) { panic("kaboom") })

	rec := doJSON(t, s.Handler(), http.MethodGet, "/boom", "", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decode[errorResponse](t, rec)
	assert.Equal(t, codeInternal, resp.Code)
	assert.NotContains(t, rec.Body.String(), "kaboom")
}

func TestStorageFailureIsInternalError(t *testing.T) {
	db, m := testdb.Open(t)
	hasher := auth.NewPasswordHasher(auth.Argon2Params{Time: 1, Memory: 64, Threads: 1, KeyLen: 16})
	codec := auth.NewTokenCodec([]byte("test-secret"), time.Hour)
	us, err := services.NewUserService(db, m, hasher, codec, logging.Nop{})
	require.NoError(t, err)
	s := NewHTTPServer(newTestConfig(), logging.Nop{}, us, services.NewTaskService(db, m, 100))

	require.NoError(t, db.Close())

	rec := doJSON(t, s.Handler(), http.MethodPost, prefix+"/users/register", "", map[string]string{
		"email": "alice@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decode[errorResponse](t, rec)
	assert.Equal(t, codeInternal, resp.Code)
	assert.NotContains(t, rec.Body.String(), "closed")
}

func TestServe_StopsOnCancel(t *testing.T) {
	s := newTestServer(t)

	listen, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, listen) }()

	url := "http://" + listen.Addr().String() + "/ping"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_BadAddress(t *testing.T) {
	cfg := newTestConfig()
	cfg.EndpointAddrHTTP = "256.256.256.256:-1"
	s := newTestServerWithConfig(t, cfg)

	err := s.Run(context.Background())
	require.Error(t, err)
}
