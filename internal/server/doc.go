// Package server provides the HTTP server of the jobrunner daemon.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                      HTTP Server :8000                        │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Logger (ginzap in prod, middlewares.Logger in dev)     │  │
//	│  │  Recovery (panic recovery with zap logging)             │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│  /health        liveness                                      │
//	│  /metrics       Prometheus (WithMetricsHandler)               │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Router (/api/v1)                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Authenticator (JWT, when Auth.AuthEnabled)             │  │
//	│  │  Handlers (registered via callback)                     │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	└───────────────────────────────────────────────────────────────┘
//
// # Server Modes
//
// Development Mode (ServerMode = "dev"):
//   - Gin runs in debug mode
//   - Every request is logged at start and end
//
// Production Mode (ServerMode = "prod"):
//   - Gin runs in release mode
//   - One ginzap line per request
//
// # Authentication
//
// When Auth.AuthEnabled is set, /api/v1 requires "Authorization: Bearer <jwt>".
// Tokens must be HMAC signed with Auth.JWTSecret and carry an expiry. The issuer
// is checked when Auth.JWTIssuer is set. /health and /metrics stay open.
//
// # Server Lifecycle
//
//	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
//	    handlers.RegisterHandlers(router, handler)
//	}, server.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
//
//	// Blocks until error or shutdown
//	err = srv.Start(ctx)
//
//	// Graceful shutdown bounded by Server.ShutdownTimeout
//	srv.Stop(ctx)
package server
