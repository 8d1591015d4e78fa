package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskmaster/internal/common"
	"github.com/dmitrijs2005/taskmaster/internal/server/models"
	"github.com/gin-gonic/gin"
)

const (
	currentUserKey  = "currentUser"
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
)

// requestLogger tags every request with an id and logs it once finished.
func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id, err := common.MakeRandHexString(8)
		if err == nil {
			c.Set(requestIDKey, id)
			c.Header(requestIDHeader, id)
		}

		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}

func (s *HTTPServer) recoverPanic(c *gin.Context, recovered any) {
	s.logger.Error(c.Request.Context(), "panic recovered",
		"request_id", c.GetString(requestIDKey),
		"panic", recovered,
	)
	writeErrorCode(c, http.StatusInternalServerError, codeInternal, "internal server error")
	c.Abort()
}

// authRequired resolves "Authorization: Bearer <token>" into the current user.
func (s *HTTPServer) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			s.writeError(c, common.ErrUnauthenticated)
			c.Abort()
			return
		}

		user, err := s.users.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.writeError(c, err)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// currentUser is only valid behind authRequired.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
