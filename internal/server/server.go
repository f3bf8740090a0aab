// Package server implements the HTTP surface of pindex: the PEP 503
// simple index, the package listing and download routes, and the
// distutils-style upload endpoint. All catalog work is delegated to a
// backend.Backend; the handlers only translate between HTTP and the
// catalog's typed results.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/glorpus-work/pindex/internal/logger"
	"github.com/glorpus-work/pindex/pkg/archive"
	"github.com/glorpus-work/pindex/pkg/auth"
	"github.com/glorpus-work/pindex/pkg/backend"
	"github.com/glorpus-work/pindex/pkg/config"
	"github.com/glorpus-work/pindex/pkg/hooks"
)

// Version is the reported server version. Overridden at build time via
// -ldflags.
var Version = "dev"

const shutdownTimeout = 5 * time.Second

// Server wires the HTTP routes to the catalog backend.
type Server struct {
	cfg       *config.Config
	be        backend.Backend
	auther    auth.Authenticator
	hooks     hooks.HookManager
	inspector *archive.Inspector
	engine    *gin.Engine
}

// New creates a server around the given backend. auther may be nil when no
// password checking is wanted; hookMgr may be nil when no hooks are
// configured.
func New(cfg *config.Config, be backend.Backend, auther auth.Authenticator, hookMgr hooks.HookManager) *Server {
	if auther == nil {
		auther = auth.AllowAll{}
	}
	if hookMgr == nil {
		hookMgr = hooks.NewTengoExecutor()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), requestLogger())

	s := &Server{
		cfg:       cfg,
		be:        be,
		auther:    auther,
		hooks:     hookMgr,
		inspector: archive.NewInspector(),
		engine:    engine,
	}
	s.registerRoutes()
	return s
}

// Engine exposes the underlying router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves HTTP until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(s.cfg.Server.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", logger.Fields{"addr": addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) registerRoutes() {
	e := s.engine

	e.GET("/", s.handleWelcome)
	e.POST("/", s.requireAuth(auth.ActionUpdate), s.handleUpdate)
	e.GET("/favicon.ico", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	e.POST("/RPC2", s.requireAuth(auth.ActionList), s.handleRPC)

	e.GET("/simple", s.requireAuth(auth.ActionList), redirectAppendSlash)
	e.GET("/simple/", s.requireAuth(auth.ActionList), s.handleSimpleIndex)
	e.GET("/simple/:project", s.requireAuth(auth.ActionList), redirectAppendSlash)
	e.GET("/simple/:project/", s.requireAuth(auth.ActionList), s.handleSimpleProject)

	e.GET("/packages", s.requireAuth(auth.ActionList), redirectAppendSlash)
	e.GET("/packages/*filepath", s.handlePackages)

	// /{project} and /{project}/json cannot be registered as routes
	// without conflicting with the static prefixes above, so they are
	// resolved in the NoRoute fallback.
	e.NoRoute(s.handleProjectFallback)
}

func redirectAppendSlash(c *gin.Context) {
	c.Redirect(http.StatusMovedPermanently, c.Request.URL.Path+"/")
}
