package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/jobrunner/api/v1"
	"github.com/kubev2v/jobrunner/internal/config"
	"github.com/kubev2v/jobrunner/internal/server/middlewares"
)

const (
	apiPrefix = "/api/v1"

	readHeaderTimeout = 10 * time.Second
)

type Server struct {
	srv             *http.Server
	engine          *gin.Engine
	shutdownTimeout time.Duration
	logger          *zap.SugaredLogger
}

type Option func(*gin.Engine)

// WithMetricsHandler serves h on /metrics, outside authentication.
func WithMetricsHandler(h http.Handler) Option {
	return func(e *gin.Engine) {
		e.GET("/metrics", gin.WrapH(h))
	}
}

// NewServer builds the HTTP server. registerHandlerFn receives the /api/v1 group.
func NewServer(cfg *config.Configuration, registerHandlerFn func(router *gin.RouterGroup), opts ...Option) (*Server, error) {
	if cfg.Auth.AuthEnabled && cfg.Auth.JWTSecret == "" {
		return nil, errors.New("authentication is enabled but no JWT secret is configured")
	}

	engine := gin.New()
	if cfg.Server.ServerMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
		engine.Use(ginzap.Ginzap(zap.L().Named("http"), time.RFC3339, true))
	} else {
		gin.SetMode(gin.DebugMode)
		engine.Use(middlewares.Logger())
	}
	engine.Use(ginzap.RecoveryWithZap(zap.L(), true))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	for _, opt := range opts {
		opt(engine)
	}

	api := engine.Group(apiPrefix)
	if cfg.Auth.AuthEnabled {
		api.Use(middlewares.Authenticator([]byte(cfg.Auth.JWTSecret), cfg.Auth.JWTIssuer))
	}
	registerHandlerFn(api)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, v1.ErrorResponse{Error: "not found"})
	})

	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler:           engine,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		engine:          engine,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
		logger:          zap.S().Named("server"),
	}, nil
}

// Handler returns the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until Stop is called. It returns nil after a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.srv.BaseContext = func(_ net.Listener) context.Context { return ctx }

	s.logger.Infow("server started", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop waits for in-flight requests up to the configured shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
	}

	s.logger.Info("server stopping")
	return s.srv.Shutdown(ctx)
}
