package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glorpus-work/pindex/internal/logger"
	"github.com/glorpus-work/pindex/pkg/auth"
	"github.com/glorpus-work/pindex/pkg/errutils"
)

// requestIDHeader carries the per-request correlation id.
const requestIDHeader = "X-Request-ID"

// requestID assigns a correlation id to every request, honoring one the
// client already sent.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs one line per request after it completes.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request", logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": c.GetString("request_id"),
		})
	}
}

// requireAuth gates a route on the configured capability check for the
// given action.
func (s *Server) requireAuth(action auth.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.authorize(c, action) {
			return
		}
		c.Next()
	}
}

// authorize applies the capability check for an action: actions not listed
// in the authenticate config are open; otherwise the request must carry
// acceptable basic-auth credentials. On failure the request is aborted
// with 401 or 403 and false is returned.
func (s *Server) authorize(c *gin.Context, action auth.Action) bool {
	if !s.cfg.RequiresAuth(action) {
		return true
	}

	username, password, ok := c.Request.BasicAuth()
	if !ok {
		c.Header("WWW-Authenticate", `Basic realm="pypi"`)
		c.String(http.StatusUnauthorized, "%v", errutils.ErrCredentialsRequired)
		c.Abort()
		return false
	}
	if !s.auther.Authenticate(username, password) {
		c.String(http.StatusForbidden, "%v", errutils.ErrAccessDenied)
		c.Abort()
		return false
	}

	c.Set("user", username)
	return true
}

// currentUser returns the authenticated username, or "anon".
func currentUser(c *gin.Context) string {
	if user := c.GetString("user"); user != "" {
		return user
	}
	return "anon"
}
