package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskmaster/internal/logging"
	"github.com/dmitrijs2005/taskmaster/internal/server/auth"
	"github.com/dmitrijs2005/taskmaster/internal/server/config"
	"github.com/dmitrijs2005/taskmaster/internal/server/services"
	"github.com/dmitrijs2005/taskmaster/internal/server/testdb"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const prefix = "/api/v1"

func newTestConfig() *config.Config {
	return &config.Config{
		EndpointAddrHTTP: "127.0.0.1:0",
		APIPrefix:        prefix,
		MaxPageSize:      100,
		GinMode:          gin.TestMode,
		ShutdownTimeout:  time.Second,
	}
}

// newTestServer wires the real services against a fresh SQLite database.
func newTestServer(t *testing.T) *HTTPServer {
	t.Helper()
	return newTestServerWithConfig(t, newTestConfig())
}

func newTestServerWithConfig(t *testing.T, cfg *config.Config) *HTTPServer {
	t.Helper()

	db, m := testdb.Open(t)
	hasher := auth.NewPasswordHasher(auth.Argon2Params{Time: 1, Memory: 64, Threads: 1, KeyLen: 16})
	codec := auth.NewTokenCodec([]byte("test-secret"), time.Hour)

	us, err := services.NewUserService(db, m, hasher, codec, logging.Nop{})
	require.NoError(t, err)
	ts := services.NewTaskService(db, m, cfg.MaxPageSize)

	return NewHTTPServer(cfg, logging.Nop{}, us, ts)
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// registerAndLogin returns a bearer token for a freshly registered user.
func registerAndLogin(t *testing.T, h http.Handler, email string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, prefix+"/users/register", "", map[string]string{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, prefix+"/users/login", "", map[string]string{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	return decode[tokenResponse](t, rec).AccessToken
}

func createTask(t *testing.T, h http.Handler, token, title string) taskResponse {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, prefix+"/tasks", token, map[string]any{"title": title})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[taskResponse](t, rec)
}
