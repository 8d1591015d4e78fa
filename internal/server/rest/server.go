// Package rest exposes the user and task services over HTTP using gin.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskmaster/internal/logging"
	"github.com/dmitrijs2005/taskmaster/internal/server/config"
	"github.com/dmitrijs2005/taskmaster/internal/server/services"
	"github.com/gin-gonic/gin"
)

type HTTPServer struct {
	address         string
	prefix          string
	shutdownTimeout time.Duration
	users           *services.UserService
	tasks           *services.TaskService
	logger          logging.Logger
	engine          *gin.Engine
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, us *services.UserService, ts *services.TaskService) *HTTPServer {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	s := &HTTPServer{
		address:         cfg.EndpointAddrHTTP,
		prefix:          cfg.APIPrefix,
		shutdownTimeout: cfg.ShutdownTimeout,
		users:           us,
		tasks:           ts,
		logger:          l.With("module", "http_server"),
	}
	s.engine = s.newRouter()

	return s
}

// Handler returns the router, e.g. for httptest.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
